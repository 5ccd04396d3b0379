package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderLogs renders the log overlay.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Title.Render("Log"))
	if m.logPath != "" {
		b.WriteString("  ")
		b.WriteString(styles.MutedText.Render(truncateMiddle(m.logPath, max(m.width-32, 10))))
	}
	if id := m.session; id != "" {
		if len(id) > 8 {
			id = id[:8]
		}
		b.WriteString("  ")
		b.WriteString(styles.FaintText.Render("session " + id))
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", max(m.width-4, 10))))
	b.WriteString("\n")

	if m.logErr != "" {
		b.WriteString(styles.WarningText.Render(m.logErr))
	} else {
		b.WriteString(m.logViewport.View())
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("j/k scroll  R reload  esc close"))

	return lipgloss.NewStyle().Padding(0, 2).Render(b.String())
}
