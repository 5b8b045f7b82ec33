package chatroom

import "errors"

var (
	// ErrAlreadyRunning is returned by Start while a loop is active.
	ErrAlreadyRunning = errors.New("conversation already running")
	// ErrEmptyMessage is returned by InjectUserMessage for blank input.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrNoAgents is returned by Start when the roster is empty.
	ErrNoAgents = errors.New("no agents registered")
)
