package breakpointx

import (
	"github.com/go-logr/logr"
)

// Options is the per-registration configuration merged over a registry's defaults.
// No keys are interpreted by the dispatcher itself; they are carried on the
// breakpoint for hooks and config files to use.
type Options map[string]any

// MergeOptions deep-merges srcs into a copy of dst. Later sources override earlier
// ones; nested maps are merged key by key. None of the inputs are modified.
func MergeOptions(dst Options, srcs ...Options) Options {
	out := Options{}
	mergeInto(out, dst)
	for _, src := range srcs {
		mergeInto(out, src)
	}
	return out
}

func mergeInto(dst, src map[string]any) {
	for k, v := range src {
		sub, ok := asMap(v)
		if !ok {
			dst[k] = v
			continue
		}
		existing, _ := asMap(dst[k])
		merged := make(map[string]any, len(existing)+len(sub))
		mergeInto(merged, existing)
		mergeInto(merged, sub)
		dst[k] = merged
	}
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Options:
		return m, true
	default:
		return nil, false
	}
}

// Option configures a Registry.
type Option func(*Registry)

// WithSource adds a change source. Sources are subscribed once, when the first
// breakpoint is registered.
func WithSource(src Source) Option {
	return func(r *Registry) {
		r.sources = append(r.sources, src)
	}
}

// WithLogger sets the logger used for debug diagnostics and hook failures.
func WithLogger(log logr.Logger) Option {
	return func(r *Registry) {
		r.log = log
	}
}

// WithErrorHandler replaces the default handler, which logs hook failures and
// errors from source-driven passes.
func WithErrorHandler(fn func(error)) Option {
	return func(r *Registry) {
		r.onError = fn
	}
}

// WithDefaults sets the options merged under every registration.
func WithDefaults(defaults Options) Option {
	return func(r *Registry) {
		r.defaults = MergeOptions(nil, defaults)
	}
}

// WithDebug enables transition diagnostics.
func WithDebug(enabled bool) Option {
	return func(r *Registry) {
		r.debug.Store(enabled)
	}
}
