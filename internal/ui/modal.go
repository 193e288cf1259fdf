package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(styles Styles, width, height int) string
}

// noticeModal blocks the screen until acknowledged.
type noticeModal struct {
	title   string
	message string
}

func newNoticeModal(title, message string) noticeModal {
	return noticeModal{title: title, message: message}
}

func (n noticeModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, keys.Dismiss) {
		return n, nil, true
	}
	return n, nil, false
}

func (n noticeModal) View(styles Styles, width, height int) string {
	var b strings.Builder
	b.WriteString(styles.ModalTitle.Render(n.title))
	b.WriteString("\n\n")
	b.WriteString(styles.ModalText.Render(n.message))
	b.WriteString("\n\n")
	b.WriteString(styles.Button.Render("OK"))

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		styles.Modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(lipgloss.Color(styles.palette.Background)),
	)
}
