// Package view defines the displayed comic as a plain value and the pure
// transitions applied to it. Display side effects live behind Presenter.
//
// Render, ShowError and ShowFormError all end loading. Clear is applied when
// the first fetch fails so the placeholder title stays under the error.
package view

import "github.com/five82/strip/internal/comic"

const (
	// Placeholder is the title shown while nothing has been rendered yet.
	Placeholder = "Loading..."
	// GenericError is shown for every failed fetch.
	GenericError = "There has been an error, please try again"
)

// State is everything a presenter needs to draw the comic area.
type State struct {
	Num      int
	Title    string
	ImageURL string
	Alt      string
	Loading  bool
	Error    string // fetch failure
	FormErr  string // rejected id entry
	Comic    *comic.Comic

	Current int
	Max     int
	Peeking bool // displayed comic is not the cursor position
}

// Presenter draws a State. Implementations must be safe to call from any goroutine.
type Presenter interface {
	Present(State)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(State)

// Present calls f(s).
func (f PresenterFunc) Present(s State) { f(s) }

// Initial returns the state shown before the first fetch.
func Initial() State {
	return State{Title: Placeholder}
}

// Render shows c and clears loading and error flags.
func Render(s State, c comic.Comic) State {
	cp := c
	s.Num = c.Num
	s.Title = c.Title
	s.ImageURL = c.Img
	s.Alt = c.Alt
	s.Comic = &cp
	return HideErrors(HideLoading(s))
}

// ShowLoading raises the loading indicator.
func ShowLoading(s State) State {
	s.Loading = true
	return s
}

// HideLoading lowers the loading indicator.
func HideLoading(s State) State {
	s.Loading = false
	return s
}

// ShowError clears loading and sets msg, keeping the displayed comic.
func ShowError(s State, msg string) State {
	if msg == "" {
		msg = GenericError
	}
	s = HideLoading(s)
	s.Error = msg
	return s
}

// ShowFormError clears loading and sets an id-entry error message.
func ShowFormError(s State, msg string) State {
	s = HideLoading(s)
	s.FormErr = msg
	return s
}

// HideErrors clears both error messages.
func HideErrors(s State) State {
	s.Error = ""
	s.FormErr = ""
	return s
}

// Clear resets the title to the placeholder and drops image fields.
func Clear(s State) State {
	s.Num = 0
	s.Title = Placeholder
	s.ImageURL = ""
	s.Alt = ""
	s.Comic = nil
	return s
}

// WithCursor records the navigation position shown alongside the comic.
func WithCursor(s State, current, latest int) State {
	s.Current = current
	s.Max = latest
	s.Peeking = s.Num != 0 && s.Num != current
	return s
}
