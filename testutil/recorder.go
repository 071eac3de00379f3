package testutil

import (
	"errors"
	"sync"

	"github.com/comalice/breakpointx"
)

// Recorder logs hook invocations as "name:phase" in call order.
type Recorder struct {
	mu     sync.Mutex
	events []string
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// Attach installs recording FirstEnter, Enter and Exit hooks on b, replacing
// any hooks already set.
func (r *Recorder) Attach(b *breakpointx.Breakpoint) *breakpointx.Breakpoint {
	b.FirstEnter = r.Hook("first_enter", nil)
	b.Enter = r.Hook("enter", nil)
	b.Exit = r.Hook("exit", nil)
	return b
}

// Hook returns a hook that records phase and then runs then (which may be nil).
func (r *Recorder) Hook(phase string, then breakpointx.Hook) breakpointx.Hook {
	return func(b *breakpointx.Breakpoint) error {
		r.Record(b.Name + ":" + phase)
		if then != nil {
			return then(b)
		}
		return nil
	}
}

// Failing returns a hook that records phase and returns an error.
func (r *Recorder) Failing(phase string) breakpointx.Hook {
	return r.Hook(phase, func(*breakpointx.Breakpoint) error {
		return errors.New(phase + " failed")
	})
}

func (r *Recorder) Record(event string) {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	copy(out, r.events)
	return out
}

// Count returns how many times event was recorded.
func (r *Recorder) Count(event string) int {
	n := 0
	for _, e := range r.Events() {
		if e == event {
			n++
		}
	}
	return n
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
