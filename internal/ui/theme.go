package ui

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/karm/internal/state"
)

// Status colors are shared by both palettes.
const (
	statusOnline   = "#4cd964"
	statusChecking = "#f5dd4b"
	statusOffline  = "#ff6b6b"
)

// Styles contains pre-built Lip Gloss styles for one palette.
type Styles struct {
	palette state.Palette

	App      lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Muted    lipgloss.Style

	InputBox        lipgloss.Style
	InputBoxFocused lipgloss.Style
	ClearHint       lipgloss.Style

	Button         lipgloss.Style
	ButtonDisabled lipgloss.Style

	AnswerBox   lipgloss.Style
	AnswerLabel lipgloss.Style
	AnswerText  lipgloss.Style
	Placeholder lipgloss.Style

	StatusOnline   lipgloss.Style
	StatusChecking lipgloss.Style
	StatusOffline  lipgloss.Style

	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	Modal      lipgloss.Style
	ModalTitle lipgloss.Style
	ModalText  lipgloss.Style
}

// NewStyles builds the styles for a palette.
func NewStyles(p state.Palette) Styles {
	bg := lipgloss.Color(p.Background)
	text := lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color(p.Text))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(p.InputBorder)).
		BorderBackground(bg).
		Background(lipgloss.Color(p.InputBackground)).
		Foreground(lipgloss.Color(p.InputText)).
		Padding(0, 1)

	button := lipgloss.NewStyle().
		Background(lipgloss.Color(p.SubmitBackground)).
		Foreground(lipgloss.Color(p.SubmitText)).
		Bold(true).
		Padding(0, 3).
		Align(lipgloss.Center)

	return Styles{
		palette: p,

		App:      lipgloss.NewStyle().Background(bg),
		Title:    text.Bold(true),
		Subtitle: lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color(p.SubtitleText)).Italic(true),
		Label:    text,
		Muted:    lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color(p.SubtitleText)),

		InputBox:        box,
		InputBoxFocused: box.BorderForeground(lipgloss.Color(p.TrackOn)).Border(lipgloss.ThickBorder()),
		ClearHint: lipgloss.NewStyle().
			Background(lipgloss.Color(p.InputBackground)).
			Foreground(lipgloss.Color(p.Placeholder)),

		Button: button,
		ButtonDisabled: button.
			Background(lipgloss.Color(p.SubmitDisabled)).
			Bold(false),

		AnswerBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.InputBorder)).
			BorderBackground(bg).
			Background(lipgloss.Color(p.AnswerBackground)).
			Padding(0, 1),
		AnswerLabel: text.Bold(true),
		AnswerText: lipgloss.NewStyle().
			Background(lipgloss.Color(p.AnswerBackground)).
			Foreground(lipgloss.Color(p.AnswerText)),
		Placeholder: lipgloss.NewStyle().
			Background(lipgloss.Color(p.AnswerBackground)).
			Foreground(lipgloss.Color(p.AnswerMuted)).
			Italic(true),

		StatusOnline:   lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color(statusOnline)),
		StatusChecking: lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color(statusChecking)),
		StatusOffline:  lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color(statusOffline)).Bold(true),

		HelpKey:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Thumb)).Width(12),
		HelpDesc: lipgloss.NewStyle().Foreground(lipgloss.Color(p.InputText)),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Gradient[0])).
			Background(lipgloss.Color(p.InputBackground)).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().
			Background(lipgloss.Color(p.InputBackground)).
			Foreground(lipgloss.Color(p.InputText)).
			Bold(true),
		ModalText: lipgloss.NewStyle().
			Background(lipgloss.Color(p.InputBackground)).
			Foreground(lipgloss.Color(p.InputText)),
	}
}

// Switch renders the light/dark toggle with its label, e.g. "Light Mode ○━━".
func (s Styles) Switch(dark bool) string {
	p := s.palette
	thumb := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Thumb))
	track := p.TrackOff
	if dark {
		track = p.TrackOn
	}
	bar := lipgloss.NewStyle().Foreground(lipgloss.Color(track)).Render("━━")
	knob := thumb.Render("●")
	sw := knob + bar
	if dark {
		sw = bar + knob
	}
	return s.Label.Render(p.Label+" ") + sw
}

// applyTextarea styles the question editor for the palette.
func (s Styles) applyTextarea(ta *textarea.Model) {
	p := s.palette
	base := lipgloss.NewStyle().
		Background(lipgloss.Color(p.InputBackground)).
		Foreground(lipgloss.Color(p.InputText))
	placeholder := base.Foreground(lipgloss.Color(p.Placeholder))

	ta.FocusedStyle = textarea.Style{
		Base:        base,
		CursorLine:  base,
		EndOfBuffer: base,
		Placeholder: placeholder,
		Prompt:      base,
		Text:        base,
	}
	ta.BlurredStyle = ta.FocusedStyle
}
