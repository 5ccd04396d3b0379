package view

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// TextPresenter writes each settled State to w as plain text. Loading states
// are skipped.
type TextPresenter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewTextPresenter returns a presenter writing to w.
func NewTextPresenter(w io.Writer) *TextPresenter {
	return &TextPresenter{w: w}
}

// Present implements Presenter.
func (p *TextPresenter) Present(s State) {
	if s.Loading {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = io.WriteString(p.w, FormatText(s))
}

// FormatText renders s as a short multi-line block.
func FormatText(s State) string {
	var b strings.Builder
	switch {
	case s.Error != "":
		fmt.Fprintf(&b, "error: %s\n", s.Error)
		return b.String()
	case s.FormErr != "":
		fmt.Fprintf(&b, "error: %s\n", s.FormErr)
		return b.String()
	}
	if s.Num > 0 {
		fmt.Fprintf(&b, "#%d %s\n", s.Num, s.Title)
	} else {
		fmt.Fprintf(&b, "%s\n", s.Title)
	}
	if s.ImageURL != "" {
		fmt.Fprintf(&b, "image: %s\n", s.ImageURL)
	}
	if s.Alt != "" {
		fmt.Fprintf(&b, "alt:   %s\n", s.Alt)
	}
	return b.String()
}
