//go:build unix

package source

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/go-logr/logr"
	"golang.org/x/sys/unix"

	"github.com/comalice/breakpointx/viewport"
)

// Signal watches SIGWINCH and re-reads the terminal size on every signal.
type Signal struct {
	fanout
	fd       int
	vp       *viewport.Viewport
	log      logr.Logger
	sigCh    chan os.Signal
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// SignalOption configures a Signal source.
type SignalOption func(*Signal)

// WithFd reads the size from fd instead of stdout.
func WithFd(fd int) SignalOption {
	return func(s *Signal) { s.fd = fd }
}

// WithSignalLogger sets the logger for size read failures.
func WithSignalLogger(log logr.Logger) SignalOption {
	return func(s *Signal) { s.log = log }
}

// NewSignal stores the current terminal size in vp and starts listening for
// resizes. It fails if the descriptor is not a terminal.
func NewSignal(vp *viewport.Viewport, opts ...SignalOption) (*Signal, error) {
	s := &Signal{
		fd:     int(os.Stdout.Fd()),
		vp:     vp,
		log:    logr.Discard(),
		sigCh:  make(chan os.Signal, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	w, h, err := TerminalSize(s.fd)
	if err != nil {
		return nil, err
	}
	vp.Set(w, h)

	signal.Notify(s.sigCh, syscall.SIGWINCH)
	go s.watchLoop()
	return s, nil
}

// TerminalSize returns the column and row count of the terminal behind fd.
func TerminalSize(fd int) (int, int, error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, fmt.Errorf("get winsize fd %d: %w", fd, err)
	}
	return int(ws.Col), int(ws.Row), nil
}

func (s *Signal) watchLoop() {
	defer close(s.doneCh)
	for {
		select {
		case <-s.stopCh:
			return
		case <-s.sigCh:
			w, h, err := TerminalSize(s.fd)
			if err != nil {
				s.log.Error(err, "terminal resize ignored")
				continue
			}
			if w <= 0 || h <= 0 {
				continue
			}
			s.vp.Set(w, h)
			s.notify()
		}
	}
}

// Stop unregisters the signal handler and waits for the watch loop to exit.
func (s *Signal) Stop() {
	s.stopOnce.Do(func() {
		signal.Stop(s.sigCh)
		close(s.stopCh)
	})
	<-s.doneCh
}
