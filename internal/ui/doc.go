// Package ui implements strip's terminal interface with Bubble Tea.
//
// The Model never fetches comics itself. Key presses become commands that
// call the Navigator on a goroutine, and the navigator reports back through
// a Presenter that turns each view.State into a message for the event loop.
// Several navigation commands may be in flight at once; the navigator drops
// responses that arrive out of order.
//
// Layout, top to bottom: header (position, loading spinner, error flag),
// command bar (short key help), comic body (title, date, image preview or
// URL, alt text) and footer (jump entry, form errors, status messages).
// Help and the log tail open as full-screen overlays.
package ui
