package user

import (
	"errors"
	"strings"
)

var (
	ErrNotFound           = errors.New("User not found")
	ErrEmailAlreadyExists = errors.New("The email address you entered is already registered. Please use a different one or login to your existing account.")
)

type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every field that failed, in schema order.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, ", ")
}

func (e *ValidationError) add(field, msg string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: msg})
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
