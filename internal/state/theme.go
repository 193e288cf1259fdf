package state

import (
	"fmt"
	"strings"
	"sync"
)

// Mode is the light/dark palette selection.
type Mode int

const (
	ModeLight Mode = iota
	ModeDark
)

func (m Mode) String() string {
	if m == ModeDark {
		return "dark"
	}
	return "light"
}

// ParseMode accepts "light" or "dark" (case-insensitive). Empty means light.
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "light":
		return ModeLight, nil
	case "dark":
		return ModeDark, nil
	default:
		return ModeLight, fmt.Errorf("unknown theme %q (want light or dark)", value)
	}
}

// Palette is the set of named colors the screen renders with.
// Translucent panel colors are pre-blended over Background.
type Palette struct {
	Label string

	Background   string
	Gradient     [2]string
	Text         string
	SubtitleText string

	InputBackground string
	InputText       string
	InputBorder     string
	Placeholder     string

	AnswerBackground string
	AnswerText       string
	AnswerMuted      string

	SubmitBackground string
	SubmitDisabled   string
	SubmitText       string

	// Toggle switch chrome
	TrackOff string
	TrackOn  string
	Thumb    string
}

var palettes = map[Mode]Palette{
	ModeLight: {
		Label:            "Light Mode",
		Background:       "#6a11cb",
		Gradient:         [2]string{"#6a11cb", "#2575fc"},
		Text:             "#FFFFFF",
		SubtitleText:     "#e0e0e0",
		InputBackground:  "#F0E7FA",
		InputText:        "#333333",
		InputBorder:      "#FFFFFF",
		Placeholder:      "#a0a0a0",
		AnswerBackground: "#F0E7FA",
		AnswerText:       "#333333",
		AnswerMuted:      "#888888",
		SubmitBackground: "#ffffff",
		SubmitDisabled:   "#c0c0c0",
		SubmitText:       "#6a11cb",
		TrackOff:         "#767577",
		TrackOn:          "#81b0ff",
		Thumb:            "#f4f3f4",
	},
	ModeDark: {
		Label:            "Dark Mode",
		Background:       "#121212",
		Gradient:         [2]string{"#1a1a1a", "#333333"},
		Text:             "#e0e0e0",
		SubtitleText:     "#a0a0a0",
		InputBackground:  "#2F2F2F",
		InputText:        "#e0e0e0",
		InputBorder:      "#555555",
		Placeholder:      "#a0a0a0",
		AnswerBackground: "#2F2F2F",
		AnswerText:       "#e0e0e0",
		AnswerMuted:      "#888888",
		SubmitBackground: "#ffffff",
		SubmitDisabled:   "#c0c0c0",
		SubmitText:       "#6a11cb",
		TrackOff:         "#767577",
		TrackOn:          "#81b0ff",
		Thumb:            "#f5dd4b",
	},
}

// PaletteFor returns the fixed palette for mode.
func PaletteFor(mode Mode) Palette {
	if p, ok := palettes[mode]; ok {
		return p
	}
	return palettes[ModeLight]
}

// Theme holds the active Mode. It never touches question or answer state.
type Theme struct {
	mu   sync.RWMutex
	mode Mode
}

// NewTheme starts in the given mode.
func NewTheme(mode Mode) *Theme {
	return &Theme{mode: mode}
}

// Toggle flips the mode and returns the new one.
func (t *Theme) Toggle() Mode {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.mode == ModeDark {
		t.mode = ModeLight
	} else {
		t.mode = ModeDark
	}
	return t.mode
}

// Mode returns the active mode.
func (t *Theme) Mode() Mode {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.mode
}

// Current returns the palette for the active mode.
func (t *Theme) Current() Palette {
	return PaletteFor(t.Mode())
}
