package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is.
var (
	ErrValidation     = errors.New("validation failed")
	ErrNotFound       = errors.New("job not found")
	ErrConflict       = errors.New("conflict")
	ErrInvalidState   = errors.New("invalid state")
	ErrRetryExhausted = errors.New("retries exhausted")
)

// Error carries the operation and job that produced a failure of a given Kind.
type Error struct {
	Kind  error
	Op    string
	JobID string
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Msg != "" {
		msg = e.Msg
	}
	prefix := e.Op
	if e.JobID != "" {
		prefix += " " + e.JobID
	}
	if prefix != "" {
		msg = prefix + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func Validationf(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(op, id string) error {
	return &Error{Kind: ErrNotFound, Op: op, JobID: id}
}

func Conflictf(op, id, format string, args ...any) error {
	return &Error{Kind: ErrConflict, Op: op, JobID: id, Msg: fmt.Sprintf(format, args...)}
}

func InvalidStatef(op, id, format string, args ...any) error {
	return &Error{Kind: ErrInvalidState, Op: op, JobID: id, Msg: fmt.Sprintf(format, args...)}
}

// Transient wraps an I/O failure whose side effect is unknown. It is
// Conflict-class: the caller re-fetches and re-attempts the whole operation.
func Transient(op, id string, err error) error {
	return &Error{Kind: ErrConflict, Op: op, JobID: id, Msg: "transient failure", Err: err}
}
