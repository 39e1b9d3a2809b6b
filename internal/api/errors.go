package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies where a request failed.
type Kind int

const (
	// KindTransport means no response was received
	KindTransport Kind = iota
	// KindBackend means the backend answered with a non-2xx status
	KindBackend
	// KindMalformed means a 2xx response failed schema validation
	KindMalformed
	// KindNotFound means the backend answered 2xx with no entity
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindBackend:
		return "backend"
	case KindMalformed:
		return "malformed"
	case KindNotFound:
		return "not_found"
	}
	return "unknown"
}

const (
	msgNoResponse = "No response from server"
	msgMalformed  = "Malformed response from server"
)

// Error is the normalized failure every adapter operation returns.
// Message is always non-empty and safe to show to a user.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Op      string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Detail renders the error with its operation and status for logs.
func (e *Error) Detail() string {
	s := fmt.Sprintf("%s: %s (%s", e.Op, e.Message, e.Kind)
	if e.Status != 0 {
		s += fmt.Sprintf(", status %d", e.Status)
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s + ")"
}

// AsError extracts an *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

// IsNotFound reports whether err means the requested entity does not exist.
func IsNotFound(err error) bool {
	apiErr, ok := AsError(err)
	if !ok {
		return false
	}
	return apiErr.Kind == KindNotFound || apiErr.Status == http.StatusNotFound
}

// IsUnauthorized reports whether the backend rejected the credentials.
func IsUnauthorized(err error) bool {
	apiErr, ok := AsError(err)
	return ok && (apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden)
}

func transportError(op string, err error) *Error {
	return &Error{Kind: KindTransport, Message: msgNoResponse, Op: op, Err: err}
}

func malformedError(op string, status int, err error) *Error {
	return &Error{Kind: KindMalformed, Status: status, Message: msgMalformed, Op: op, Err: err}
}

func notFoundError(op, message string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusOK, Message: message, Op: op}
}
