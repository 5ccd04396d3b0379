package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderComic renders the title block, the image (or its URL) and the alt text.
func (m Model) renderComic() string {
	styles := m.theme.Styles()
	width := max(m.width-4, 20)

	var b strings.Builder

	title := m.view.Title
	if m.view.Num > 0 {
		title = fmt.Sprintf("#%d  %s", m.view.Num, m.view.Title)
	}
	b.WriteString(styles.Title.Render(truncate(title, width)))
	if c := m.view.Comic; c != nil {
		if published := c.Published(); !published.IsZero() {
			b.WriteString("  ")
			b.WriteString(styles.MutedText.Render(published.Format("2006-01-02")))
		}
	}
	b.WriteString("\n\n")

	switch {
	case m.view.ImageURL == "":
	case m.previewOn && m.previewArt != "" && m.previewURL == m.view.ImageURL:
		b.WriteString(m.previewArt)
		b.WriteString("\n")
	case m.previewOn && m.previewErr != "":
		b.WriteString(styles.WarningText.Render("Preview unavailable: " + truncate(m.previewErr, width-22)))
		b.WriteString("\n")
		b.WriteString(styles.AccentText.Render(m.view.ImageURL))
		b.WriteString("\n")
	case m.previewOn:
		b.WriteString(styles.FaintText.Render("Rendering image..."))
		b.WriteString("\n")
	default:
		b.WriteString(styles.MutedText.Render("image "))
		b.WriteString(styles.AccentText.Render(m.view.ImageURL))
		b.WriteString("\n")
	}

	if m.view.Alt != "" {
		b.WriteString("\n")
		b.WriteString(styles.Text.Italic(true).Width(width).Render(m.view.Alt))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
