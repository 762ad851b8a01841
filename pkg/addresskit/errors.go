package addresskit

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed request.
type ErrorKind int

const (
	// KindTransport covers connection, DNS, protocol and decode failures.
	KindTransport ErrorKind = iota
	// KindTimeout means the call exceeded the configured timeout.
	KindTimeout
	// KindHTTPStatus means the server answered outside the 2xx range.
	KindHTTPStatus
)

func (k ErrorKind) String() string {
	switch k {
	case KindTimeout:
		return "TIMEOUT"
	case KindHTTPStatus:
		return "HTTP_STATUS"
	default:
		return "FETCH_ERROR"
	}
}

// Sentinels for errors.Is checks against an *Error of the same kind.
var (
	ErrTransport  = errors.New("addresskit: transport error")
	ErrTimeout    = errors.New("addresskit: request timeout")
	ErrHTTPStatus = errors.New("addresskit: unexpected http status")
)

// Error is returned by every operation that propagates request failures.
type Error struct {
	Kind    ErrorKind
	Status  int // set for KindHTTPStatus
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrTimeout) and friends match by kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrTimeout:
		return e.Kind == KindTimeout
	case ErrHTTPStatus:
		return e.Kind == KindHTTPStatus
	case ErrTransport:
		return e.Kind == KindTransport
	}
	return false
}

// IsTimeout reports whether err is a timeout from this package.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// StatusCode returns the HTTP status carried by err, if any.
func StatusCode(err error) (int, bool) {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindHTTPStatus {
		return e.Status, true
	}
	return 0, false
}

func timeoutError(err error) *Error {
	return &Error{Kind: KindTimeout, Message: "request timeout", Err: err}
}

func statusError(status int) *Error {
	return &Error{Kind: KindHTTPStatus, Status: status, Message: fmt.Sprintf("HTTP error! status: %d", status)}
}

func transportError(msg string, err error) *Error {
	return &Error{Kind: KindTransport, Message: msg, Err: err}
}
