package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	sections := []helpSection{
		{
			title: "Question",
			items: []helpItem{
				{"ctrl+s", "Ask Karm AI"},
				{"ctrl+l", "Clear question and answer"},
				{"ctrl+x", "Cancel outstanding request"},
				{"tab", "Focus question"},
				{"esc", "Leave question"},
			},
		},
		{
			title: "Answer",
			items: []helpItem{
				{"j/k", "Scroll down/up"},
				{"pgdown/pgup", "Page down/up"},
			},
		},
		{
			title: "General",
			items: []helpItem{
				{"ctrl+t", "Toggle light/dark"},
				{"f1/?", "Toggle help"},
				{"ctrl+c", "Quit"},
			},
		},
	}

	var b strings.Builder

	b.WriteString(m.styles.ModalTitle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	for i, section := range sections {
		b.WriteString(m.styles.ModalTitle.Render(section.title))
		b.WriteString("\n")
		for _, item := range section.items {
			b.WriteString(m.styles.HelpKey.Render(item.key))
			b.WriteString(m.styles.HelpDesc.Render(item.desc))
			b.WriteString("\n")
		}
		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.styles.Modal.Width(44).Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.snapshot.Palette.Background)),
	)
}

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}
