package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error for translation at the HTTP boundary.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindUnprocessable
	KindMethodNotAllowed
)

var kindMessages = map[Kind]string{
	KindValidation:       "Unprocessable Entity",
	KindNotFound:         "Not found",
	KindUnprocessable:    "Unprocessable Entity",
	KindMethodNotAllowed: "Method not allowed",
}

// Message returns the default client-facing message for the kind.
func (k Kind) Message() string {
	if msg, ok := kindMessages[k]; ok {
		return msg
	}
	return "Unknown error"
}

// HTTPStatus returns the status code the kind is reported with.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusUnprocessableEntity
	}
}

// Error is an error with a kind and an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.Message()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind with a custom message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Newf creates an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind to an existing error. Nil in, nil out.
func Wrap(err error, kind Kind, msg string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: msg, Err: err}
}

// Validation reports a missing or malformed required field.
func Validation(field, reason string) *Error {
	return Newf(KindValidation, "%s %s", field, reason)
}

// NotFoundError reports a lookup miss for the named resource.
func NotFoundError(resource string) *Error {
	return Newf(KindNotFound, "%s not found", resource)
}

// Unprocessable wraps a persistence or coercion failure.
func Unprocessable(err error, msg string) *Error {
	return &Error{Kind: KindUnprocessable, Message: msg, Err: err}
}

// KindOf extracts the kind from any error; zero when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
