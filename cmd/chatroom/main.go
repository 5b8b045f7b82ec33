// Command chatroom runs a brainstorming conversation between LLM agents and
// the person at the keyboard, and offers the agents' standalone idea and code
// generators as subcommands.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
