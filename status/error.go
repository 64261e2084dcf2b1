package status

import (
	"github.com/pkg/errors"
)

// Kind is the category of a failed operation.
type Kind int

const (
	Unknown Kind = iota
	Configuration
	Resource
	IO
)

func (k Kind) String() string {
	switch k {
	case Configuration:
		return "configuration error"
	case Resource:
		return "resource error"
	case IO:
		return "io error"
	}
	return "unknown error"
}

// Error is a failure tagged with the operation that produced it.
type Error struct {
	Tag Tag
	Err error
}

// Wrap tags err with the operation that produced it. It returns nil if err is nil.
func Wrap(err error, tag Tag) error {
	if err == nil {
		return nil
	}
	return &Error{Tag: tag, Err: err}
}

func (e *Error) Error() string {
	return e.Tag.String() + ": " + e.Err.Error()
}

func (e *Error) Kind() Kind {
	return e.Tag.Kind()
}

func (e *Error) Cause() error { return e.Err }

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the category of the first tagged error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind()
	}
	return Unknown
}
