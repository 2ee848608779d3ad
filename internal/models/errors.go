package models

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrNoActiveSession = errors.New("no active session")
	ErrQueueEmpty      = errors.New("queue is empty")
	ErrNothingPlaying  = errors.New("nothing is playing")
	ErrSessionCreate   = errors.New("could not create session")
)

// ValidationError rejects a public submission before any row is written.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
