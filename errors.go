package breakpointx

import (
	"errors"
	"fmt"
)

// ErrInvalidCondition is returned when a breakpoint without a Condition is evaluated.
var ErrInvalidCondition = errors.New("breakpoint has no condition")

// Phase names the lifecycle hook being run.
type Phase int

const (
	PhaseFirstEnter Phase = iota
	PhaseEnter
	PhaseExit
)

func (p Phase) String() string {
	switch p {
	case PhaseFirstEnter:
		return "first enter"
	case PhaseEnter:
		return "enter"
	case PhaseExit:
		return "exit"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// CallbackError wraps an error returned (or a panic raised) by a hook.
type CallbackError struct {
	Breakpoint *Breakpoint
	Phase      Phase
	Err        error
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("%s hook of %s: %v", e.Phase, e.Breakpoint, e.Err)
}

func (e *CallbackError) Unwrap() error {
	return e.Err
}
