package flickr

import (
	"errors"
	"fmt"
)

// Kind classifies failures.
type Kind int

const (
	// KindTransport is a network failure or a non-2xx HTTP status.
	KindTransport Kind = iota + 1
	// KindProtocol is a well-formed response that says no: missing OAuth
	// fields or "stat":"fail".
	KindProtocol
	// KindDecode is a body that cannot be parsed or a value that cannot be
	// normalized.
	KindDecode
	// KindIO is a local filesystem failure.
	KindIO
	// KindEncoding is text that is not valid UTF-8 where it must be.
	KindEncoding
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport error"
	case KindProtocol:
		return "protocol error"
	case KindDecode:
		return "decode error"
	case KindIO:
		return "I/O error"
	case KindEncoding:
		return "encoding error"
	default:
		return "unknown error"
	}
}

// Error is a classified failure of operation Op.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// NewError wraps err as a failure of op.
func NewError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether the first *Error in err's chain has kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// ErrAuthentication means the provider rejected the authorization flow or
// the user never supplied a verification code.
var ErrAuthentication = errors.New("the request was rejected")

// APIError is a "stat":"fail" response.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("flickr error %d: %s", e.Code, e.Message)
}

// StatusError is a non-2xx HTTP response.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %s", e.Status)
}
