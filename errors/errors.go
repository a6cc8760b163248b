package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// CodecError is a fault raised by the codec, tagged with its [Kind] and an
// optional message giving the details.
type CodecError interface {
	error
	Kind() Kind
	WithMessage(message string) CodecError
	Wrap(err error) CodecError
	Unwrap() error
}

type codecError struct {
	kind          Kind
	message       string
	originalError error
}

// Error implements the `error` object interface. When called, it returns a string
// describing the error.
func (e codecError) Error() string {
	if e.message != "" {
		return e.message
	}
	return StrError(e.kind)
}

func (e codecError) Kind() Kind {
	return e.kind
}

func (e codecError) Unwrap() error {
	return e.originalError
}

// Is reports a match against the bare sentinel of the same kind, so errors
// built with [NewWithMessage] still satisfy errors.Is(err, ErrFormat) etc.
func (e codecError) Is(target error) bool {
	sentinel, ok := target.(codecError)
	if !ok || sentinel.originalError != nil {
		return false
	}
	return sentinel.kind == e.kind && sentinel.message == StrError(sentinel.kind)
}

// WithMessage returns a new error of the same kind with `message` appended to
// this one's. The result matches this error with [errors.Is].
func (e codecError) WithMessage(message string) CodecError {
	return codecError{
		kind:          e.kind,
		message:       fmt.Sprintf("%s: %s", e.Error(), message),
		originalError: e,
	}
}

// Wrap returns a new error of the same kind that matches both this error and
// `err` with [errors.Is].
func (e codecError) Wrap(err error) CodecError {
	return codecError{
		kind:          e.kind,
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

// New creates a new [CodecError] with the default message for the fault kind.
func New(kind Kind) CodecError {
	return codecError{
		kind:    kind,
		message: StrError(kind),
	}
}

// NewWithMessage creates a new CodecError from a fault kind with a custom
// message.
func NewWithMessage(kind Kind, message string) CodecError {
	return codecError{
		kind:    kind,
		message: fmt.Sprintf("%s: %s", StrError(kind), message),
	}
}

// KindOf returns the fault kind of `err`, or [KindOK] if it's nil. Errors that
// didn't come from the codec are reported as [KindInternal].
func KindOf(err error) Kind {
	if err == nil {
		return KindOK
	}
	var codecErr CodecError
	if stderrors.As(err, &codecErr) {
		return codecErr.Kind()
	}
	return KindInternal
}
