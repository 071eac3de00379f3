package main

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// printer writes transition lines to stdout, or to a scrolling tcell screen
// when one is active.
type printer struct {
	mu     sync.Mutex
	screen tcell.Screen
	lines  []string
}

func newPrinter(screen tcell.Screen) *printer {
	return &printer{screen: screen}
}

func (p *printer) line(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.screen == nil {
		_, err := fmt.Println(msg)
		return err
	}
	p.lines = append(p.lines, msg)
	p.draw()
	return nil
}

func (p *printer) draw() {
	_, h := p.screen.Size()
	p.screen.Clear()
	start := 0
	if len(p.lines) > h {
		start = len(p.lines) - h
	}
	for y, l := range p.lines[start:] {
		for x, r := range l {
			p.screen.SetContent(x, y, r, nil, tcell.StyleDefault)
		}
	}
	p.screen.Show()
}
