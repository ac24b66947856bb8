package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType classifies a failure by the stage and cause that produced it
type ErrorType string

const (
	ErrorTypeConfig      ErrorType = "config"
	ErrorTypeNetwork     ErrorType = "network"
	ErrorTypeAuth        ErrorType = "auth"
	ErrorTypeNotFound    ErrorType = "not_found"
	ErrorTypeRateLimit   ErrorType = "rate_limit"
	ErrorTypeServerError ErrorType = "server_error"
	ErrorTypeParsing     ErrorType = "parsing"
	ErrorTypeFilesystem  ErrorType = "filesystem"
	ErrorTypeUnknown     ErrorType = "unknown"
)

// Error is the error value returned by every pipeline stage
type Error struct {
	Type    ErrorType
	Message string
	Code    int
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Code != 0 {
		return fmt.Sprintf("%s error (code %d): %s", e.Type, e.Code, msg)
	}
	return fmt.Sprintf("%s error: %s", e.Type, msg)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a typed error without a cause
func New(errType ErrorType, message string) *Error {
	return &Error{Type: errType, Message: message}
}

// Wrap attaches a type and message to err. It returns nil for a nil err.
func Wrap(err error, errType ErrorType, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Type: errType, Message: message, Err: err}
}

// TypeOf reports the type of the first *Error in err's chain,
// or ErrorTypeUnknown when there is none
func TypeOf(err error) ErrorType {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return ErrorTypeUnknown
}

// IsType checks whether err carries the given type
func IsType(err error, errType ErrorType) bool {
	var e *Error
	return stderrors.As(err, &e) && e.Type == errType
}

// IsTransport reports whether err came from talking to the remote API:
// a network failure, a timeout or a non-2xx status
func IsTransport(err error) bool {
	switch TypeOf(err) {
	case ErrorTypeNetwork, ErrorTypeAuth, ErrorTypeNotFound, ErrorTypeRateLimit, ErrorTypeServerError:
		return true
	default:
		var e *Error
		return stderrors.As(err, &e) && e.Type == ErrorTypeUnknown && e.Code >= 300
	}
}

// TypeForStatus maps a non-2xx HTTP status code to an error type
func TypeForStatus(statusCode int) ErrorType {
	switch {
	case statusCode == 401 || statusCode == 403:
		return ErrorTypeAuth
	case statusCode == 404:
		return ErrorTypeNotFound
	case statusCode == 429:
		return ErrorTypeRateLimit
	case statusCode >= 500:
		return ErrorTypeServerError
	default:
		return ErrorTypeUnknown
	}
}
