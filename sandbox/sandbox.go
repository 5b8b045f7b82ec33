// Package sandbox runs untrusted snippets in a short-lived subprocess. Each run
// gets a fresh working directory and a hard wall-clock deadline after which the
// whole process group is killed and the run is classified as timed out.
package sandbox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"time"

	"github.com/google/shlex"
)

// Status classifies a run.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// TimeoutMessage is the output reported for runs that exceed the deadline.
const TimeoutMessage = "Error: Code execution timed out."

// waitDelay bounds how long Wait keeps draining pipes after the process is killed.
const waitDelay = time.Second

// ErrEmptyCommand is returned by New when the interpreter command is blank.
var ErrEmptyCommand = errors.New("sandbox command is empty")

// Result is the outcome of one run. Output holds stdout on success and
// stderr on failure.
type Result struct {
	Status   Status
	Output   string
	ExitCode int
	TimedOut bool
	Duration time.Duration
}

// OK reports whether the snippet exited with status zero.
func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

// Runner executes snippets with a fixed interpreter and timeout.
type Runner struct {
	argv    []string
	timeout time.Duration
}

// New creates a Runner from configuration. The interpreter command is split
// with shell quoting rules, and the snippet is passed after "-c".
func New(cfg *Config) (*Runner, error) {
	argv, err := shlex.Split(cfg.Command)
	if err != nil {
		return nil, fmt.Errorf("invalid sandbox command %q: %w", cfg.Command, err)
	}
	if len(argv) == 0 {
		return nil, ErrEmptyCommand
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Runner{argv: argv, timeout: timeout}, nil
}

// Timeout returns the per-run deadline.
func (r *Runner) Timeout() time.Duration {
	return r.timeout
}

// Run executes code and waits for it to finish or time out. Failures are
// reported in the Result, never as a Go error.
func (r *Runner) Run(ctx context.Context, code string) Result {
	start := time.Now()

	dir, err := os.MkdirTemp("", "chatroom-sandbox-*")
	if err != nil {
		return Result{Status: StatusError, Output: fmt.Sprintf("failed to prepare sandbox: %v", err), ExitCode: -1}
	}
	defer os.RemoveAll(dir)

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	args := append(slices.Clone(r.argv[1:]), "-c", code)
	cmd := exec.CommandContext(runCtx, r.argv[0], args...)
	cmd.Dir = dir
	cmd.WaitDelay = waitDelay
	configureProcess(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	if cmd.Process != nil {
		killProcessGroup(cmd.Process.Pid)
	}
	result := Result{Duration: time.Since(start)}

	switch {
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		result.Status = StatusError
		result.Output = TimeoutMessage
		result.ExitCode = -1
		result.TimedOut = true
	case err == nil, errors.Is(err, exec.ErrWaitDelay):
		// ErrWaitDelay means the snippet exited zero but a background child
		// still held its output open.
		result.Status = StatusSuccess
		result.Output = stdout.String()
	default:
		result.Status = StatusError
		result.Output = stderr.String()
		result.ExitCode = -1

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		if result.Output == "" {
			result.Output = err.Error()
		}
	}

	return result
}
