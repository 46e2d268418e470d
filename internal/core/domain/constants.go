package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateCommand = errors.New("command already registered")
	ErrCommandNotFound  = errors.New("command not found")
	ErrActorStarted     = errors.New("actor already started")
	ErrGuildManaged     = errors.New("guild already has a running actor")
	ErrUnknownGuild     = errors.New("no actor for guild")
	ErrMailboxClosed    = errors.New("mailbox closed")
	ErrMailboxFull      = errors.New("mailbox full")
	ErrShutdownTimeout  = errors.New("actor did not drain within timeout")
)

// GenericFailureReply is what users see when a handler fails; internal detail
// stays in the logs.
const GenericFailureReply = "Something went wrong, please try again later."

// HandlerError carries a user-safe message alongside the internal error. The
// actor replies with Public and logs the wrapped error.
type HandlerError struct {
	Public string
	Err    error
}

func (e *HandlerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Public, e.Err)
	}

	return e.Public
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}

// NewHandlerError wraps an internal error with a user-safe description.
func NewHandlerError(public string, err error) *HandlerError {
	return &HandlerError{Public: public, Err: err}
}
