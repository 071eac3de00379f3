package source

import (
	"sync"
	"time"
)

// Ticker notifies subscribers on every tick. Use it when the environment cannot
// report changes itself and conditions have to be polled.
type Ticker struct {
	fanout
	ticker   *time.Ticker
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewTicker starts polling every d.
func NewTicker(d time.Duration) *Ticker {
	t := &Ticker{
		ticker: time.NewTicker(d),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go t.run()
	return t
}

func (t *Ticker) run() {
	defer close(t.done)
	for {
		select {
		case <-t.ticker.C:
			select {
			case <-t.stop:
				t.ticker.Stop()
				return
			default:
			}
			t.notify()
		case <-t.stop:
			t.ticker.Stop()
			return
		}
	}
}

// Stop halts the ticker and waits for an in-flight notification to finish.
// It is safe to call more than once. Stop must not be called from a subscriber,
// since the notification it would wait for is the caller itself; use Close there.
func (t *Ticker) Stop() {
	t.Close()
	<-t.done
}

// Close halts the ticker without waiting. The notification in progress, if any,
// is the last one delivered.
func (t *Ticker) Close() {
	t.stopOnce.Do(func() {
		close(t.stop)
	})
}

// Done is closed once the ticker has stopped delivering notifications.
func (t *Ticker) Done() <-chan struct{} {
	return t.done
}
