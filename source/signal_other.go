//go:build !unix

package source

import (
	"github.com/go-logr/logr"

	"github.com/comalice/breakpointx/viewport"
)

type Signal struct {
	fanout
}

type SignalOption func(*Signal)

func WithFd(fd int) SignalOption { return func(*Signal) {} }

func WithSignalLogger(log logr.Logger) SignalOption { return func(*Signal) {} }

func NewSignal(vp *viewport.Viewport, opts ...SignalOption) (*Signal, error) {
	return nil, ErrUnsupported
}

func TerminalSize(fd int) (int, int, error) {
	return 0, 0, ErrUnsupported
}

func (s *Signal) Stop() {}
