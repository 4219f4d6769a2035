// Package apperror carries HTTP-status hints from handlers to the error
// translator.
package apperror

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Error is an error with an explicit response status.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New returns an *Error wrapped with the caller's stack.
func New(status int, message string) error {
	return errors.WithStack(&Error{Status: status, Message: message})
}

func Wrap(status int, err error, message string) error {
	return errors.WithStack(&Error{Status: status, Message: message, Err: err})
}

func NotFound(message string) error { return New(http.StatusNotFound, message) }

func BadRequest(message string) error { return New(http.StatusBadRequest, message) }

func RouteNotFound(path string) error {
	return NotFound(fmt.Sprintf("Not Found - %s", path))
}
