package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/five82/karm/internal/state"
)

const (
	appTitle          = "Karm AI"
	appSubtitle       = "Your Intelligent Q&A Companion"
	submitLabel       = "Ask Karm AI"
	answerLabel       = "AI Response:"
	answerPlaceholder = "Your answer will appear here..."
)

// Rows used by everything except the answer body: header 2, status 1,
// input box with clear hint and border, button 1, answer label 1, answer
// border 2, footer 1, and a blank line between each of the six blocks.
const chromeRows = 2 + 1 + (questionLines + 1 + 2) + 1 + 1 + 2 + 1 + 5

func (m Model) contentWidth() int {
	w := m.width - 4
	if w > maxContentWidth {
		w = maxContentWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

// layout sizes the components for the current window.
func (m *Model) layout() {
	w := m.contentWidth()
	// Border and padding take 4 columns inside each box.
	m.input.SetWidth(w - 4)
	m.answer.Width = w - 4
	m.answer.Height = max(3, m.height-chromeRows)
	m.help.Width = w
	m.updateAnswerViewport()
}

func (m *Model) updateAnswerViewport() {
	width := m.answer.Width
	if width <= 0 {
		width = maxContentWidth
	}
	var content string
	if m.snapshot.Answer == "" {
		content = m.styles.Placeholder.Render(answerPlaceholder)
	} else {
		wrapped := wordwrap.String(m.snapshot.Answer, width)
		lines := strings.Split(wrapped, "\n")
		for i, line := range lines {
			lines[i] = m.styles.AnswerText.Render(line)
		}
		content = strings.Join(lines, "\n")
	}
	m.answer.SetContent(content)
}

// renderMain renders the full screen.
func (m Model) renderMain() string {
	w := m.contentWidth()
	blocks := []string{
		m.renderHeader(w),
		m.renderStatus(w),
		m.renderInput(w),
		m.renderSubmit(w),
		m.renderAnswer(w),
		m.help.View(m.keys),
	}
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Top,
		joinBlocks(blocks),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.snapshot.Palette.Background)),
	)
}

func joinBlocks(blocks []string) string {
	return strings.Join(blocks, "\n\n")
}

// renderHeader shows the title block on the left and the theme switch on the right.
func (m Model) renderHeader(width int) string {
	p := m.snapshot.Palette
	title := m.styles.Title.Background(lipgloss.Color(p.Gradient[0])).Render(" " + appTitle + " ")
	subtitle := m.styles.Subtitle.Render(appSubtitle)
	sw := m.styles.Switch(m.snapshot.Mode == state.ModeDark)

	gap := width - lipgloss.Width(title) - lipgloss.Width(sw)
	if gap < 1 {
		gap = 1
	}
	top := title + m.styles.App.Render(strings.Repeat(" ", gap)) + sw
	return lipgloss.JoinVertical(lipgloss.Left, top, subtitle)
}

// renderStatus reports the answering service's reachability.
func (m Model) renderStatus(width int) string {
	h := m.snapshot.Health
	var line string
	switch {
	case !m.snapshot.HasHealth:
		line = m.styles.StatusChecking.Render("◌ checking " + m.baseURL)
	case h.IsOffline():
		line = m.styles.StatusOffline.Render(fmt.Sprintf("○ offline %s (%d failed checks)", m.baseURL, h.ConsecutiveFailures))
	case h.LastError != nil:
		line = m.styles.StatusChecking.Render("◌ retrying " + m.baseURL)
	default:
		line = m.styles.StatusOnline.Render("● online " + m.baseURL)
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(line)
}

func (m Model) renderInput(width int) string {
	box := m.styles.InputBox
	if m.snapshot.Focused {
		box = m.styles.InputBoxFocused
	}
	content := m.input.View()
	if m.snapshot.Question != "" {
		content = lipgloss.JoinVertical(lipgloss.Right, content, m.styles.ClearHint.Render("✕ ctrl+l"))
	}
	return box.Width(width - 2).Render(content)
}

func (m Model) renderSubmit(width int) string {
	label := submitLabel
	style := m.styles.Button
	if m.snapshot.Outstanding {
		label = m.spinner.View() + " " + submitLabel
	}
	if !m.snapshot.CanSubmit {
		style = m.styles.ButtonDisabled
	}
	return style.Width(width).Render(label)
}

func (m Model) renderAnswer(width int) string {
	label := m.styles.AnswerLabel.Render(answerLabel)
	box := m.styles.AnswerBox.Width(width - 2).Render(m.answer.View())
	return lipgloss.JoinVertical(lipgloss.Left, label, box)
}
