package display

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/tailored-agentic-units/chatroom/core/protocol"
)

// Plain writes a line-oriented transcript. It is used when output is not a
// terminal or when the full-screen UI is turned off.
type Plain struct {
	mu sync.Mutex
	w  io.Writer
}

// NewPlain creates a Plain renderer writing to w.
func NewPlain(w io.Writer) *Plain {
	return &Plain{w: w}
}

func (p *Plain) OnMessage(msg protocol.Message) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.w, "%s %s\n\n", Header(msg), strings.TrimRight(msg.Content, "\n"))
}

// ReadInput injects every non-blank line read from r until r is exhausted or
// ctx is done. Rejected lines are reported to errw and skipped.
func ReadInput(ctx context.Context, r io.Reader, inject Injector, errw io.Writer) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			if err := inject.InjectUserMessage(line); err != nil && !errors.Is(err, context.Canceled) {
				fmt.Fprintf(errw, "message rejected: %v\n", err)
			}
		}
	}
}
