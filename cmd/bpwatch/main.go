// Command bpwatch prints breakpoint transitions as the terminal (or a remote
// viewport) is resized.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"

	"github.com/comalice/breakpointx"
	"github.com/comalice/breakpointx/config"
	"github.com/comalice/breakpointx/source"
	"github.com/comalice/breakpointx/viewport"
)

// builtin is used when no -config is given.
var builtin = &config.File{Breakpoints: []config.Definition{
	{Name: "narrow", MaxWidth: 100},
	{Name: "wide", MinWidth: 100},
	{Name: "short", MaxHeight: 30},
}}

func main() {
	var (
		configPath = flag.String("config", "", "breakpoint definitions (.yaml, .yml or .toml)")
		debug      = flag.Bool("debug", false, "log every transition")
		mode       = flag.String("source", "signal", "change source: signal, tcell, ws or tick")
		url        = flag.String("url", "ws://localhost:8080/viewport", "websocket URL for -source=ws")
		interval   = flag.Duration("interval", 500*time.Millisecond, "poll interval for -source=tick")
	)
	flag.Parse()

	log := funcr.New(func(prefix, args string) {
		fmt.Fprintln(os.Stderr, prefix, args)
	}, funcr.Options{}).WithName("bpwatch")

	if err := run(log, *configPath, *debug, *mode, *url, *interval); err != nil {
		log.Error(err, "bpwatch failed")
		os.Exit(1)
	}
}

func run(log logr.Logger, configPath string, debug bool, mode, url string, interval time.Duration) error {
	file := builtin
	if configPath != "" {
		f, err := config.Load(configPath)
		if err != nil {
			return err
		}
		file = f
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	vp := viewport.New(80, 24)
	reg := breakpointx.New(
		breakpointx.WithLogger(log.WithName("registry")),
		breakpointx.WithDebug(debug),
	)

	var screen tcell.Screen
	var fini sync.Once
	var wait func() error
	switch mode {
	case "signal":
		src, err := source.NewSignal(vp, source.WithSignalLogger(log))
		if err != nil {
			return err
		}
		defer src.Stop()
		reg.AddSource(src)
	case "tick":
		fd := int(os.Stdout.Fd())
		refresh := func() {
			if w, h, err := source.TerminalSize(fd); err == nil {
				vp.Set(w, h)
			}
		}
		refresh()
		src := source.NewTicker(interval)
		defer src.Stop()
		// Subscribed before the registry so every pass sees a fresh size.
		src.Subscribe(refresh)
		reg.AddSource(src)
	case "ws":
		src := source.NewWebSocket(url, vp, source.WithWebSocketLogger(log))
		defer src.Close()
		reg.AddSource(src)
		errc := make(chan error, 1)
		go func() { errc <- src.Run(ctx) }()
		wait = func() error {
			select {
			case err := <-errc:
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			case <-ctx.Done():
				return nil
			}
		}
	case "tcell":
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("tcell screen: %w", err)
		}
		if err := s.Init(); err != nil {
			return fmt.Errorf("tcell init: %w", err)
		}
		screen = s
		defer fini.Do(s.Fini)
		src := source.NewTcell(vp)
		src.Sync(s)
		reg.AddSource(src)
		done := make(chan struct{})
		go func() {
			defer close(done)
			src.Pump(s, func(ev tcell.Event) bool {
				key, ok := ev.(*tcell.EventKey)
				return !ok || (key.Key() != tcell.KeyEscape && key.Key() != tcell.KeyCtrlC)
			})
		}()
		wait = func() error {
			select {
			case <-done:
			case <-ctx.Done():
			}
			return nil
		}
	default:
		return fmt.Errorf("unknown source %q", mode)
	}

	out := newPrinter(screen)
	if _, err := file.Apply(reg, vp, func(b *breakpointx.Breakpoint) {
		b.FirstEnter = func(b *breakpointx.Breakpoint) error { return out.line("first enter %s at %s", b.Name, vp) }
		b.Enter = func(b *breakpointx.Breakpoint) error { return out.line("enter %s at %s", b.Name, vp) }
		b.Exit = func(b *breakpointx.Breakpoint) error { return out.line("exit %s at %s", b.Name, vp) }
	}); err != nil {
		return err
	}

	if wait != nil {
		if err := wait(); err != nil {
			return err
		}
	} else {
		<-ctx.Done()
	}

	if screen != nil {
		fini.Do(screen.Fini)
	}
	fmt.Println("\nShutting down, final state:")
	return config.WriteSnapshot(os.Stdout, reg.Snapshot())
}
