package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/gorilla/websocket"

	"github.com/comalice/breakpointx/viewport"
)

// Report is a viewport size sent by a remote client, e.g. a browser page posting
// window.innerWidth/innerHeight on every resize.
type Report struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// WebSocket reads viewport reports from a websocket endpoint and notifies once
// per valid report.
type WebSocket struct {
	fanout
	url    string
	header http.Header
	vp     *viewport.Viewport
	log    logr.Logger
	dialer *websocket.Dialer

	maxReconnectAttempts int
	reconnectDelay       time.Duration
	maxReconnectDelay    time.Duration

	mu        sync.Mutex
	conn      *websocket.Conn
	done      chan struct{}
	closeOnce sync.Once
}

type WebSocketOption func(*WebSocket)

// WithHeader sets request headers sent when dialing.
func WithHeader(h http.Header) WebSocketOption {
	return func(w *WebSocket) { w.header = h.Clone() }
}

func WithWebSocketLogger(log logr.Logger) WebSocketOption {
	return func(w *WebSocket) { w.log = log }
}

// WithReconnect sets the reconnect limit. The delay doubles after each failed
// attempt up to maxDelay. attempts <= 0 disables reconnecting.
func WithReconnect(attempts int, delay, maxDelay time.Duration) WebSocketOption {
	return func(w *WebSocket) {
		w.maxReconnectAttempts = attempts
		w.reconnectDelay = delay
		w.maxReconnectDelay = maxDelay
	}
}

func NewWebSocket(url string, vp *viewport.Viewport, opts ...WebSocketOption) *WebSocket {
	w := &WebSocket{
		url:                  url,
		header:               http.Header{},
		vp:                   vp,
		log:                  logr.Discard(),
		dialer:               websocket.DefaultDialer,
		maxReconnectAttempts: 10,
		reconnectDelay:       time.Second,
		maxReconnectDelay:    60 * time.Second,
		done:                 make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run connects and reads reports until ctx is cancelled, Close is called, or the
// reconnect limit is spent. A dropped connection is redialed with backoff.
func (w *WebSocket) Run(ctx context.Context) error {
	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.done:
			return nil
		default:
		}

		conn, _, err := w.dialer.DialContext(ctx, w.url, w.header)
		if err != nil {
			attempts++
			if attempts > w.maxReconnectAttempts {
				return fmt.Errorf("dial %s: giving up after %d attempts: %w", w.url, attempts, err)
			}
			delay := w.backoff(attempts)
			w.log.Info("viewport source reconnecting", "url", w.url, "attempt", attempts, "delay", delay, "error", err.Error())
			select {
			case <-time.After(delay):
				continue
			case <-ctx.Done():
				return ctx.Err()
			case <-w.done:
				return nil
			}
		}

		attempts = 0
		w.setConn(conn)
		w.readLoop(ctx, conn)
		w.setConn(nil)
	}
}

func (w *WebSocket) backoff(attempt int) time.Duration {
	delay := w.reconnectDelay * time.Duration(1<<uint(attempt-1))
	if delay > w.maxReconnectDelay || delay <= 0 {
		delay = w.maxReconnectDelay
	}
	return delay
}

func (w *WebSocket) setConn(conn *websocket.Conn) {
	w.mu.Lock()
	w.conn = conn
	w.mu.Unlock()
}

func (w *WebSocket) readLoop(ctx context.Context, conn *websocket.Conn) {
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()
	defer conn.Close()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				w.log.V(1).Info("viewport source read failed", "url", w.url, "error", err.Error())
			}
			return
		}
		if err := w.handle(message); err != nil {
			w.log.Error(err, "viewport report dropped", "url", w.url)
		}
	}
}

// handle applies one report.
func (w *WebSocket) handle(data []byte) error {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return fmt.Errorf("%w: %v", ErrBadReport, err)
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrBadReport, r.Width, r.Height)
	}
	w.vp.Set(r.Width, r.Height)
	w.notify()
	return nil
}

// Close stops Run and closes the current connection.
func (w *WebSocket) Close() {
	w.closeOnce.Do(func() { close(w.done) })
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.conn == nil {
		return
	}
	_ = w.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	w.conn.Close()
}
