// Package fserr defines the error kinds returned by the safefs packages.
//
// Every error produced by paths and safefs wraps exactly one of the sentinel
// values below, so callers can branch with errors.Is. Errors caused by a
// failing filesystem call additionally wrap that call's error, which keeps
// checks such as errors.Is(err, fs.ErrNotExist) working.
package fserr

import (
	"errors"
)

var (
	ErrInvalidPath       = errors.New("invalid path")
	ErrDestinationExists = errors.New("destination exists")
	ErrIOError           = errors.New("io error")
	ErrUnsupported       = errors.New("unsupported")
)

type wrapError struct {
	underlying error
	msg        string
	cause      error
}

var _ error = (*wrapError)(nil)

func NewInvalidPathError(msg string) error {
	return &wrapError{
		underlying: ErrInvalidPath,
		msg:        msg,
	}
}

func NewDestinationExistsError(path string) error {
	return &wrapError{
		underlying: ErrDestinationExists,
		msg:        path,
	}
}

func NewIOError(msg string, cause error) error {
	return &wrapError{
		underlying: ErrIOError,
		msg:        msg,
		cause:      cause,
	}
}

func NewUnsupportedError(msg string) error {
	return &wrapError{
		underlying: ErrUnsupported,
		msg:        msg,
	}
}

func (err *wrapError) Error() string {
	if err == nil {
		return "(*wrapError)(nil)"
	}
	message := err.underlying.Error() + ": " + err.msg
	if err.cause != nil {
		message += ": " + err.cause.Error()
	}
	return message
}

func (err *wrapError) Unwrap() []error {
	if err.cause == nil {
		return []error{err.underlying}
	}
	return []error{err.underlying, err.cause}
}
