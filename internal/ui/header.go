package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the status bar: logo, position, and loading or error state.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("strip", styles.Logo)}

	if m.view.Max > 0 {
		parts = append(parts,
			bg.Render("Comic:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("#%d", m.view.Current), styles.Text)+
				bg.Render(fmt.Sprintf(" / %d", m.view.Max), styles.MutedText),
		)
	} else {
		parts = append(parts, bg.Render("Connecting...", styles.WarningText.Bold(true)))
	}

	if m.view.Peeking {
		parts = append(parts,
			bg.Render("PEEK", styles.InfoText.Bold(true))+bg.Space()+
				bg.Render(fmt.Sprintf("#%d", m.view.Num), styles.InfoText),
		)
	}

	if m.view.Loading {
		parts = append(parts,
			bg.Render(m.spinner.View(), styles.AccentText)+bg.Space()+
				bg.Render("Loading", styles.AccentText),
		)
	}

	if m.view.Error != "" {
		parts = append(parts, bg.Render("ERROR", styles.DangerText.Bold(true)))
	}

	if m.previewOn {
		parts = append(parts, bg.Render("preview", styles.FaintText))
	}
	parts = append(parts, bg.Render(m.theme.Name, styles.FaintText))

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Padding(0, 1).
		Width(m.width).
		Render(bg.Join(parts, "  "))
}

// renderCommandBar renders the short key help under the header.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	colon := bg.Sep(":")
	bindings := m.keys.ShortHelp()
	segments := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		segments = append(segments,
			bg.Render(h.Key, styles.AccentText)+colon+bg.Render(h.Desc, styles.MutedText))
	}

	return styles.Footer.Width(m.width).Render(bg.Join(segments, "  "))
}

// renderFooter renders the jump entry or the most relevant message.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	var content string
	switch {
	case m.jumping:
		content = m.jump.View()
		if m.jumpErr != "" {
			content += bg.Spaces(2) + bg.Render(m.jumpErr, styles.DangerText)
		}
	case m.view.FormErr != "":
		content = bg.Render(m.view.FormErr, styles.DangerText)
	case m.view.Error != "":
		content = bg.Render(m.view.Error, styles.DangerText)
	case m.status != "":
		style := styles.MutedText
		if m.statusDanger {
			style = styles.WarningText
		}
		content = bg.Render(m.status, style)
	case m.view.Comic != nil && m.view.Comic.Link != "":
		content = bg.Render(truncateMiddle(m.view.Comic.Link, max(m.width-4, 10)), styles.FaintText)
	}

	return styles.Footer.Width(m.width).Render(content)
}
