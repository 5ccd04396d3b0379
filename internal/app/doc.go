// Package app wires strip together.
//
// Setup loads the config, opens the logger and builds the comic client. Run
// adds the navigator, the optional latest-comic poller and the image preview
// loader, then hands control to the TUI until the user quits. Show is the
// headless path used by the latest, show and random commands: it prints a
// single comic as text and returns the navigation error, if any.
//
// Logging differs by entry point. The TUI owns the terminal, so it logs to the
// rotating file from config. Headless commands log warnings and errors to the
// console writer they are given and never touch the log file.
package app
