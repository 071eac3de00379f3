package source

import "errors"

var (
	// ErrUnsupported is returned by NewSignal on platforms without SIGWINCH.
	ErrUnsupported = errors.New("terminal resize signals are not supported on this platform")
	// ErrBadReport marks a viewport report that could not be used.
	ErrBadReport = errors.New("invalid viewport report")
)
