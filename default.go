package breakpointx

import "sync"

var (
	std     *Registry
	stdOnce sync.Once
)

// Default returns the process-wide registry used by the package-level functions.
// It starts with no sources; attach one with Default().AddSource.
func Default() *Registry {
	stdOnce.Do(func() {
		std = New()
	})
	return std
}

// Register adds b to the default registry.
func Register(b *Breakpoint, opts ...Options) error {
	return Default().Register(b, opts...)
}

// Unregister removes b from the default registry.
func Unregister(b *Breakpoint) {
	Default().Unregister(b)
}

// Check re-evaluates b against the default registry.
func Check(b *Breakpoint) error {
	return Default().Check(b)
}

// ListAll lists the default registry's breakpoints.
func ListAll() []*Breakpoint {
	return Default().ListAll()
}

// SetDebug toggles diagnostics on the default registry.
func SetDebug(enabled bool) {
	Default().SetDebug(enabled)
}
