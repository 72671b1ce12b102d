package domain

import (
	"errors"
	"fmt"
)

// ErrorKind tags every failure the request layer can surface.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindUnauthorized
	KindRequestFailed
	KindNetwork
	KindParse
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindRequestFailed:
		return "request_failed"
	case KindNetwork:
		return "network"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// UnauthorizedMessage is the fixed message of every 401 failure.
const UnauthorizedMessage = "401 Unauthorized"

// RequestFailedMessage is used when an error body carries no message.
const RequestFailedMessage = "Request failed"

var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrRequestFailed = errors.New("request failed")
	ErrNetwork       = errors.New("network error")
	ErrParse         = errors.New("parse error")

	// ErrValidation marks a payload that failed its validate tags.
	ErrValidation = errors.New("validation failed")
)

// APIError is the normalized failure of one dispatched request.
type APIError struct {
	Kind    ErrorKind
	Message string
	// Status is the HTTP status code; zero for network failures.
	Status int
	// Payload is the parsed error body (an empty object when unparseable).
	Payload any
	Err     error
}

func (e *APIError) Error() string {
	return e.Message
}

// Unwrap exposes both the kind sentinel and the underlying cause, so
// errors.Is works for ErrUnauthorized as well as context.Canceled.
func (e *APIError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindUnauthorized:
		return ErrUnauthorized
	case KindRequestFailed:
		return ErrRequestFailed
	case KindNetwork:
		return ErrNetwork
	case KindParse:
		return ErrParse
	}
	return nil
}

// NewUnauthorized builds the fixed 401 failure.
func NewUnauthorized() *APIError {
	return &APIError{Kind: KindUnauthorized, Message: UnauthorizedMessage, Status: 401}
}

// NewRequestFailed builds a non-2xx failure.
func NewRequestFailed(status int, message string, payload any) *APIError {
	if message == "" {
		message = RequestFailedMessage
	}
	return &APIError{Kind: KindRequestFailed, Message: message, Status: status, Payload: payload}
}

// NewNetworkError wraps a transport failure.
func NewNetworkError(err error) *APIError {
	return &APIError{Kind: KindNetwork, Message: err.Error(), Err: err}
}

// NewParseError wraps a decode failure of a success body.
func NewParseError(status int, err error) *APIError {
	return &APIError{Kind: KindParse, Message: fmt.Sprintf("parse response: %v", err), Status: status, Err: err}
}

// KindOf returns the kind of err, or KindUnknown when err is not an APIError.
func KindOf(err error) ErrorKind {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

// StatusOf returns the HTTP status carried by err, or zero.
func StatusOf(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Status
	}
	return 0
}
