package breakpointx

import (
	"sync"

	"github.com/google/uuid"
)

// Condition reports whether a breakpoint's environment condition currently holds.
// It is called on every check and its result is never cached by the caller.
type Condition func() bool

// Hook is a lifecycle callback. A returned error (or a panic) is reported to the
// registry's error handler and never aborts an evaluation pass.
type Hook func(b *Breakpoint) error

// Breakpoint bundles a condition with the hooks run when it flips.
// Breakpoints are identified by pointer; two breakpoints with the same fields are
// distinct registry entries.
type Breakpoint struct {
	Name      string
	Condition Condition

	// FirstEnter runs the first time Condition is observed true, before Enter.
	FirstEnter Hook
	// Enter runs on every false->true flip.
	Enter Hook
	// Exit runs on every true->false flip.
	Exit Hook

	mu           sync.Mutex
	id           string
	active       bool
	firstEntered bool
	evaluating   bool
	pending      bool
	options      Options
}

// IsActive reports the state observed by the most recent evaluation.
func (b *Breakpoint) IsActive() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active
}

// ID returns the identifier assigned on first registration, or "" before that.
func (b *Breakpoint) ID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.id
}

// Options returns a copy of the options merged at registration.
func (b *Breakpoint) Options() Options {
	b.mu.Lock()
	defer b.mu.Unlock()
	return MergeOptions(nil, b.options)
}

func (b *Breakpoint) String() string {
	id := b.ID()
	if b.Name == "" {
		return "breakpoint#" + id
	}
	return b.Name + "#" + id
}

// register assigns the diagnostic ID and records options.
func (b *Breakpoint) register(opts Options) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.id == "" {
		b.id = uuid.NewString()
	}
	b.options = opts
}

// claim latches the breakpoint for evaluation and returns its cached state.
// ok is false when another evaluation of b is already in progress; that
// evaluation is then asked to run once more before it releases the latch.
func (b *Breakpoint) claim() (active bool, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.evaluating {
		b.pending = true
		return false, false
	}
	b.evaluating = true
	return b.active, true
}

// release drops the latch unless a check arrived while it was held. In that case
// the latch is kept and again is true; active is the state to re-evaluate from.
func (b *Breakpoint) release() (active bool, again bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pending {
		b.pending = false
		return b.active, true
	}
	b.evaluating = false
	return b.active, false
}

// abandon drops the latch after a condition panicked.
func (b *Breakpoint) abandon() {
	b.mu.Lock()
	b.evaluating = false
	b.pending = false
	b.mu.Unlock()
}

func (b *Breakpoint) setActive(active bool) {
	b.mu.Lock()
	b.active = active
	b.mu.Unlock()
}

// takeFirstEnter reports whether FirstEnter is still pending and marks it spent.
func (b *Breakpoint) takeFirstEnter() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.firstEntered || b.FirstEnter == nil {
		return false
	}
	b.firstEntered = true
	return true
}

// State is a serializable view of a registered breakpoint.
type State struct {
	ID           string  `json:"id" yaml:"id"`
	Name         string  `json:"name,omitempty" yaml:"name,omitempty"`
	Active       bool    `json:"active" yaml:"active"`
	FirstEntered bool    `json:"firstEntered" yaml:"firstEntered"`
	Options      Options `json:"options,omitempty" yaml:"options,omitempty"`
}

func (b *Breakpoint) state() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return State{
		ID:           b.id,
		Name:         b.Name,
		Active:       b.active,
		FirstEntered: b.firstEntered,
		Options:      MergeOptions(nil, b.options),
	}
}
