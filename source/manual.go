package source

// Manual is a source triggered by hand, for tests and hosts that run their own
// event loop.
type Manual struct {
	fanout
}

// NewManual returns a source with no subscribers.
func NewManual() *Manual {
	return &Manual{}
}

// Trigger notifies every subscriber synchronously.
func (m *Manual) Trigger() {
	m.notify()
}
