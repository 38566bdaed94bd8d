package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Root errors shared by all packages. Package specific errors are
// registered with codes above 1000.
var (
	// ErrUnauthorized means the request lacks a required signature or
	// authority.
	ErrUnauthorized = Register(2, "unauthorized")

	// ErrNotFound means a referenced record does not exist.
	ErrNotFound = Register(3, "not found")

	// ErrMsg means a message cannot be decoded or routed.
	ErrMsg = Register(4, "invalid message")

	// ErrModel means a record failed validation and was not stored.
	ErrModel = Register(5, "invalid model")

	// ErrDuplicate means a value that must be unique was repeated.
	ErrDuplicate = Register(6, "duplicate")

	// ErrHuman marks a code path that correct code never reaches.
	ErrHuman = Register(7, "coding error")

	// ErrImmutable means a value fixed once set was written again.
	ErrImmutable = Register(8, "cannot be modified")

	// ErrEmpty means a required value is missing.
	ErrEmpty = Register(9, "value is empty")

	// ErrState means the operation is not allowed in the current state.
	ErrState = Register(10, "invalid state")

	// ErrType means a value is not of the expected type.
	ErrType = Register(11, "invalid type")

	// ErrInput means malformed or out of range input.
	ErrInput = Register(12, "invalid input")

	// ErrDatabase means the storage backend failed.
	ErrDatabase = Register(13, "database")

	// ErrOverflow means a computed value does not fit its type.
	ErrOverflow = Register(14, "value overflow")

	// ErrPanic wraps a recovered panic. Its message must not be shown
	// to clients.
	ErrPanic = Register(111222, "panic")
)

// registry holds every registered root error by code. Code 1 is reserved
// for errors that wrap no root error.
var registry = map[uint32]*Error{
	1: {code: 1, desc: "internal"},
}

// Register declares a root error. It panics when the code is taken, so
// it must only be called from package level variable declarations.
func Register(code uint32, description string) *Error {
	if prev, ok := registry[code]; ok {
		panic(fmt.Sprintf("error code %d already registered as %q", code, prev.desc))
	}
	e := &Error{code: code, desc: description}
	registry[code] = e
	return e
}

// Error is a root error. Every error returned by a handler should wrap
// exactly one of them.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

// Code returns the unique code of the root error.
func (e Error) Code() uint32 {
	return e.code
}

// Is reports whether err is e or wraps e. A nil *Error matches only nil
// errors, including typed nil pointers.
func (e *Error) Is(err error) bool {
	if e == nil {
		return isNil(err)
	}
	for err != nil {
		if err == e {
			return true
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

// Code returns the code of the root error wrapped by err, 0 for nil and
// 1 when no root error is wrapped.
func Code(err error) uint32 {
	if isNil(err) {
		return 0
	}
	for {
		if e, ok := err.(*Error); ok {
			return e.code
		}
		c, ok := err.(causer)
		if !ok {
			return 1
		}
		err = c.Cause()
	}
}

// Wrap adds context to err and returns nil for a nil err. The first wrap
// of an error records the stack trace.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{msg: description, parent: err}
}

// Wrapf is Wrap with a formatted description.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.parent.Error()
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Recover turns a panic into an ErrPanic assigned to err. It must be
// deferred directly.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type causer interface {
	Cause() error
}

func isNil(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
