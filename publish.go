package breakpointx

import "time"

// Transition describes one hook phase applied to a breakpoint.
type Transition struct {
	Breakpoint *Breakpoint
	Phase      Phase
	Time       time.Time
}

// WithPublisher sends every transition to ch after its hook has run. Sends never
// block: a transition is dropped when ch is full. Exit and Enter are published for
// every flip whether or not the hook is set; FirstEnter only when it ran.
func WithPublisher(ch chan<- Transition) Option {
	return func(r *Registry) {
		r.publish = ch
	}
}

func (r *Registry) publishTransition(b *Breakpoint, phase Phase) {
	if r.publish == nil {
		return
	}
	select {
	case r.publish <- Transition{Breakpoint: b, Phase: phase, Time: time.Now()}:
	default:
	}
}
