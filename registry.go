package breakpointx

import (
	"fmt"
	"os"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"go.uber.org/atomic"

	"github.com/comalice/breakpointx/internal/safecall"
)

// Source notifies subscribers that every breakpoint should be re-checked,
// e.g. after a terminal resize.
type Source interface {
	Subscribe(notify func())
}

// Registry holds breakpoints in insertion order and dispatches their hooks.
//
// Evaluation is synchronous: Register, Check and CheckAll evaluate on the calling
// goroutine, and source-driven passes run on the goroutine delivering the
// notification. Hooks run with no lock held and may call back into the registry.
type Registry struct {
	mu          sync.Mutex
	breakpoints []*Breakpoint
	defaults    Options
	sources     []Source
	attached    bool

	debug   atomic.Bool
	log     logr.Logger
	onError func(error)
	publish chan<- Transition
}

// New creates an empty Registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		defaults: Options{},
		log:      defaultLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.onError == nil {
		r.onError = r.logError
	}
	return r
}

func defaultLogger() logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintln(os.Stderr, prefix, args)
			return
		}
		fmt.Fprintln(os.Stderr, args)
	}, funcr.Options{}).WithName("breakpointx")
}

// Register appends b, merging opts over the registry defaults, and evaluates it
// immediately. The first registration subscribes the registry to its sources.
// The returned error comes from evaluating b (see ErrInvalidCondition).
func (r *Registry) Register(b *Breakpoint, opts ...Options) error {
	r.mu.Lock()
	merged := MergeOptions(r.defaults, opts...)
	r.breakpoints = append(r.breakpoints, b)
	var subscribe []Source
	if !r.attached {
		r.attached = true
		subscribe = r.sources
	}
	r.mu.Unlock()

	b.register(merged)
	for _, src := range subscribe {
		src.Subscribe(r.notify)
	}
	return r.evaluate(b)
}

// Unregister removes every occurrence of b. It is a no-op if b is not registered.
func (r *Registry) Unregister(b *Breakpoint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.breakpoints[:0]
	for _, bp := range r.breakpoints {
		if bp != b {
			kept = append(kept, bp)
		}
	}
	clear(r.breakpoints[len(kept):])
	r.breakpoints = kept
}

// Check re-evaluates b outside of the source-driven cycle.
func (r *Registry) Check(b *Breakpoint) error {
	return r.evaluate(b)
}

// CheckAll runs one evaluation pass. Breakpoints active at the start of the pass
// are evaluated before inactive ones, so exits are flushed before entries.
// Registrations and removals made by hooks take effect on the next pass.
func (r *Registry) CheckAll() error {
	var active, inactive []*Breakpoint
	for _, b := range r.ListAll() {
		if b.IsActive() {
			active = append(active, b)
		} else {
			inactive = append(inactive, b)
		}
	}
	for _, b := range active {
		if err := r.evaluate(b); err != nil {
			return err
		}
	}
	for _, b := range inactive {
		if err := r.evaluate(b); err != nil {
			return err
		}
	}
	return nil
}

// ListAll returns a copy of the registered breakpoints in insertion order.
func (r *Registry) ListAll() []*Breakpoint {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Breakpoint, len(r.breakpoints))
	copy(out, r.breakpoints)
	return out
}

// Snapshot reports the state of every registered breakpoint in insertion order.
func (r *Registry) Snapshot() []State {
	list := r.ListAll()
	out := make([]State, 0, len(list))
	for _, b := range list {
		out = append(out, b.state())
	}
	return out
}

// Defaults returns a copy of the options merged under every registration.
func (r *Registry) Defaults() Options {
	r.mu.Lock()
	defer r.mu.Unlock()
	return MergeOptions(nil, r.defaults)
}

// SetDefaults replaces the registry defaults. Existing breakpoints keep the options
// they were registered with.
func (r *Registry) SetDefaults(defaults Options) {
	merged := MergeOptions(nil, defaults)
	r.mu.Lock()
	r.defaults = merged
	r.mu.Unlock()
}

// Debug reports whether transition diagnostics are enabled.
func (r *Registry) Debug() bool {
	return r.debug.Load()
}

// SetDebug toggles transition diagnostics.
func (r *Registry) SetDebug(enabled bool) {
	r.debug.Store(enabled)
}

// AddSource adds a change source. If breakpoints have already been registered the
// source is subscribed immediately, otherwise on the first registration.
func (r *Registry) AddSource(src Source) {
	r.mu.Lock()
	r.sources = append(r.sources, src)
	attached := r.attached
	r.mu.Unlock()
	if attached {
		src.Subscribe(r.notify)
	}
}

// notify is the listener handed to sources.
func (r *Registry) notify() {
	if err := r.CheckAll(); err != nil {
		r.onError(err)
	}
}

// evaluate applies at most one transition to b per observed change. A check that
// finds b mid-evaluation on another goroutine (or from one of b's own hooks) is
// folded into the running evaluation, which re-reads the condition before it
// releases b.
func (r *Registry) evaluate(b *Breakpoint) error {
	if b.Condition == nil {
		return fmt.Errorf("check %s: %w", b, ErrInvalidCondition)
	}
	wasActive, ok := b.claim()
	if !ok {
		return nil
	}
	released := false
	defer func() {
		if !released {
			b.abandon()
		}
	}()

	for {
		r.apply(b, wasActive)
		var again bool
		wasActive, again = b.release()
		if !again {
			released = true
			return nil
		}
	}
}

// apply runs the hooks for a flip away from wasActive, if the condition says so.
func (r *Registry) apply(b *Breakpoint, wasActive bool) {
	if wasActive {
		if b.Condition() {
			return
		}
		r.debugf("exit", b)
		r.runHook(b, PhaseExit, b.Exit)
		b.setActive(false)
		r.publishTransition(b, PhaseExit)
		return
	}

	if !b.Condition() {
		return
	}
	firstEnter := b.takeFirstEnter()
	if firstEnter {
		r.debugf("first enter", b)
		r.runHook(b, PhaseFirstEnter, b.FirstEnter)
	}
	if b.Enter != nil {
		r.debugf("enter", b)
		r.runHook(b, PhaseEnter, b.Enter)
	}
	b.setActive(true)
	if firstEnter {
		r.publishTransition(b, PhaseFirstEnter)
	}
	r.publishTransition(b, PhaseEnter)
}

func (r *Registry) runHook(b *Breakpoint, phase Phase, hook Hook) {
	if hook == nil {
		return
	}
	err := safecall.Call(func() error { return hook(b) })
	if err != nil {
		r.onError(&CallbackError{Breakpoint: b, Phase: phase, Err: err})
	}
}

func (r *Registry) debugf(transition string, b *Breakpoint) {
	if !r.debug.Load() {
		return
	}
	r.log.Info("breakpoint transition", "transition", transition, "breakpoint", b.String())
}

func (r *Registry) logError(err error) {
	r.log.Error(err, "breakpoint dispatch failed")
}
