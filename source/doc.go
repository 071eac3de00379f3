// Package source provides change sources for a breakpointx.Registry.
//
// A source tells its subscribers that the environment may have changed and every
// breakpoint should be re-checked. Sources that observe a size (SIGWINCH, tcell,
// websocket reports) write it to a viewport.Viewport before notifying, so
// conditions built with package viewport see the new size during the pass.
//
// Notifications are delivered synchronously on the source's own goroutine, one
// per observed change; nothing is debounced.
package source
