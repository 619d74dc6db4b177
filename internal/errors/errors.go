package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind represents the type of error
type Kind int

const (
	ErrInternal Kind = iota
	// ErrUpstream is an application-level failure reported by the scores API
	// in its envelope. Message carries the server's error text verbatim.
	ErrUpstream
	ErrTransport
	ErrDecode
	ErrInvalidInput
)

func (k Kind) String() string {
	switch k {
	case ErrUpstream:
		return "upstream"
	case ErrTransport:
		return "transport"
	case ErrDecode:
		return "decode"
	case ErrInvalidInput:
		return "invalid_input"
	default:
		return "internal"
	}
}

// Error is an application-level error with a kind for classification
type Error struct {
	Kind    Kind
	Message string
	Err     error // underlying error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Constructor functions for common error types

func Upstream(msg string) *Error {
	return &Error{Kind: ErrUpstream, Message: msg}
}

func Transport(err error) *Error {
	return &Error{Kind: ErrTransport, Message: "failed to reach scores API", Err: err}
}

func Transportf(format string, args ...interface{}) *Error {
	return &Error{Kind: ErrTransport, Message: fmt.Sprintf(format, args...)}
}

func Decode(err error) *Error {
	return &Error{Kind: ErrDecode, Message: "invalid response body", Err: err}
}

func Decodef(format string, args ...interface{}) *Error {
	return &Error{Kind: ErrDecode, Message: fmt.Sprintf(format, args...)}
}

func InvalidInputf(format string, args ...interface{}) *Error {
	return &Error{Kind: ErrInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func Internal(err error) *Error {
	return &Error{Kind: ErrInternal, Message: "internal error", Err: err}
}

func Internalf(format string, args ...interface{}) *Error {
	return &Error{Kind: ErrInternal, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context
func Wrap(err error, kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, ErrInternal otherwise
func KindOf(err error) Kind {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return ErrInternal
}

// IsUpstream reports whether err is an application-level failure from the scores API
func IsUpstream(err error) bool {
	return err != nil && KindOf(err) == ErrUpstream
}

// UserMessage returns the text shown to a viewer. Upstream failures surface the
// server's message verbatim; everything else surfaces the full error chain.
func UserMessage(err error) string {
	var appErr *Error
	if stderrors.As(err, &appErr) && appErr.Kind == ErrUpstream {
		return appErr.Message
	}
	return err.Error()
}
