package source

import (
	"github.com/gdamore/tcell/v2"

	"github.com/comalice/breakpointx/viewport"
)

// Tcell turns tcell resize events into notifications. Hosts that already run a
// PollEvent loop pass each event to Handle; others can hand the screen to Pump.
type Tcell struct {
	fanout
	vp *viewport.Viewport
}

func NewTcell(vp *viewport.Viewport) *Tcell {
	return &Tcell{vp: vp}
}

// Sync copies the screen's current size into the viewport without notifying.
func (t *Tcell) Sync(screen tcell.Screen) {
	w, h := screen.Size()
	t.vp.Set(w, h)
}

// Handle updates the viewport and notifies on *tcell.EventResize. It reports
// whether ev was a resize event.
func (t *Tcell) Handle(ev tcell.Event) bool {
	resize, ok := ev.(*tcell.EventResize)
	if !ok {
		return false
	}
	w, h := resize.Size()
	t.vp.Set(w, h)
	t.notify()
	return true
}

// Pump polls screen until it is finalized or next returns false. Resize events
// are handled before being passed to next; next may be nil.
func (t *Tcell) Pump(screen tcell.Screen, next func(tcell.Event) bool) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		t.Handle(ev)
		if next != nil && !next(ev) {
			return
		}
	}
}
