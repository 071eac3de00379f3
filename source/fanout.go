package source

import "sync"

// fanout keeps the subscriber list shared by every source.
type fanout struct {
	mu   sync.Mutex
	subs []func()
}

func (f *fanout) Subscribe(notify func()) {
	f.mu.Lock()
	f.subs = append(f.subs, notify)
	f.mu.Unlock()
}

func (f *fanout) notify() {
	f.mu.Lock()
	subs := make([]func(), len(f.subs))
	copy(subs, f.subs)
	f.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

// Subscribers reports how many listeners are attached.
func (f *fanout) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}
