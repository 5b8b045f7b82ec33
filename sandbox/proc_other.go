//go:build !unix

package sandbox

import "os/exec"

func configureProcess(cmd *exec.Cmd) {}

func killProcessGroup(pid int) {}
