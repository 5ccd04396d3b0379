// Package logtail reads the tail of strip's log file and turns its JSON
// events into single readable lines for the in-app log overlay.
package logtail
