package errclass

import "fmt"

// Error is a stable, machine-readable error class.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = msg + ": " + e.Err.Error()
		}
	}
	if msg == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Code == t.Code
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WithMessage returns a new Error with the same Code but a specific message.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{Code: e.Code, Message: msg}
}

// WithMessagef returns a new Error with a formatted message.
func (e *Error) WithMessagef(format string, args ...any) *Error {
	return &Error{Code: e.Code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns a new Error with the same Code carrying err as its cause.
func (e *Error) Wrap(msg string, err error) *Error {
	return &Error{Code: e.Code, Message: msg, Err: err}
}

// All stable error classes.
var (
	ErrTimestampFormat = &Error{Code: "E_TIMESTAMP_FORMAT"}
	ErrRecordEncode    = &Error{Code: "E_RECORD_ENCODE"}
	ErrSinkWrite       = &Error{Code: "E_SINK_WRITE"}
	ErrSinkOpen        = &Error{Code: "E_SINK_OPEN"}
	ErrActionFailed    = &Error{Code: "E_ACTION_FAILED"}
	ErrConfigInvalid   = &Error{Code: "E_CONFIG_INVALID"}
)
