// Package safecall runs caller-supplied functions behind a recover boundary.
package safecall

import (
	"errors"
	"fmt"
)

// ErrPanic marks errors produced from a recovered panic.
var ErrPanic = errors.New("panic")

// PanicError carries the value recovered from a panicking call.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

func (e *PanicError) Is(target error) bool {
	return target == ErrPanic
}

// Unwrap exposes the panic value when it was itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Call runs fn and returns its error, converting a panic into a *PanicError.
func Call(fn func() error) (err error) {
	if fn == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	return fn()
}
