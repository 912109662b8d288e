package main

import (
	"errors"
	"fmt"
	"strings"
)

// userError is a failure whose message is shown to the user as written,
// e.g. "Missing source path". Error returns the usual lowercase form.
type userError struct {
	err error
}

// userErrorf formats a user-facing message. %w wraps as with fmt.Errorf.
func userErrorf(format string, args ...any) error {
	return &userError{err: fmt.Errorf(format, args...)}
}

func (e *userError) Error() string {
	msg := e.err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToLower(msg[:1]) + msg[1:]
}

// Message returns the text printed after the "Error: " prefix.
func (e *userError) Message() string {
	return e.err.Error()
}

func (e *userError) Unwrap() error {
	return errors.Unwrap(e.err)
}

// displayMessage returns the text printed for err.
func displayMessage(err error) string {
	var ue *userError
	if errors.As(err, &ue) {
		return ue.Message()
	}
	return err.Error()
}
