// Package breakpointx dispatches lifecycle hooks for boolean "breakpoint"
// conditions, typically viewport or terminal-size predicates.
//
// A Breakpoint pairs a Condition with optional FirstEnter, Enter and Exit hooks.
// A Registry evaluates each breakpoint when it is registered and again whenever
// one of its Sources reports an environment change:
//
//	vp := viewport.New(80, 24)
//	sig, _ := source.NewSignal(vp)
//	reg := breakpointx.New(breakpointx.WithSource(sig))
//
//	narrow := &breakpointx.Breakpoint{
//		Name:      "narrow",
//		Condition: viewport.MaxWidth(vp, 100),
//		Enter:     func(*breakpointx.Breakpoint) error { compact(); return nil },
//		Exit:      func(*breakpointx.Breakpoint) error { expand(); return nil },
//	}
//	reg.Register(narrow)
//
// # Transitions
//
// Hooks run only when a breakpoint's cached state flips. FirstEnter runs at most
// once per breakpoint, before Enter, on its first false->true flip. During a full
// pass every breakpoint that was active at the start of the pass is evaluated
// before any inactive one, so for mutually exclusive conditions an Exit always
// precedes the matching Enter.
//
// # Errors
//
// Hook errors and panics are reported to the registry's error handler as
// *CallbackError and do not stop the pass. A breakpoint without a Condition yields
// ErrInvalidCondition to whoever started the evaluation.
//
// Notifications are not debounced: every source notification runs one full pass.
package breakpointx
