package state

import "testing"

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeLight, false},
		{"light", ModeLight, false},
		{" Dark ", ModeDark, false},
		{"DARK", ModeDark, false},
		{"sepia", ModeLight, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTheme_ToggleTwiceRestoresMode(t *testing.T) {
	th := NewTheme(ModeLight)
	if got := th.Toggle(); got != ModeDark {
		t.Fatalf("Toggle() = %v, want dark", got)
	}
	if got := th.Toggle(); got != ModeLight {
		t.Fatalf("Toggle() = %v, want light", got)
	}
	if th.Mode() != ModeLight {
		t.Fatalf("Mode() = %v, want light", th.Mode())
	}
}

func TestTheme_CurrentFollowsMode(t *testing.T) {
	th := NewTheme(ModeDark)
	if got := th.Current(); got.Label != "Dark Mode" || got.Background != "#121212" {
		t.Fatalf("Current() = %+v, want dark palette", got)
	}
	th.Toggle()
	if got := th.Current(); got.Label != "Light Mode" || got.Background != "#6a11cb" {
		t.Fatalf("Current() = %+v, want light palette", got)
	}
}

func TestPaletteFor_UnknownFallsBackToLight(t *testing.T) {
	if got := PaletteFor(Mode(42)); got.Label != "Light Mode" {
		t.Fatalf("PaletteFor(42).Label = %q, want Light Mode", got.Label)
	}
	if Mode(42).String() != "light" {
		t.Fatalf("Mode(42).String() = %q, want light", Mode(42).String())
	}
}

func TestPalettes_AllColorsSet(t *testing.T) {
	for _, mode := range []Mode{ModeLight, ModeDark} {
		p := PaletteFor(mode)
		colors := []string{
			p.Background, p.Gradient[0], p.Gradient[1], p.Text, p.SubtitleText,
			p.InputBackground, p.InputText, p.InputBorder, p.Placeholder,
			p.AnswerBackground, p.AnswerText, p.AnswerMuted,
			p.SubmitBackground, p.SubmitDisabled, p.SubmitText,
			p.TrackOff, p.TrackOn, p.Thumb,
		}
		for i, c := range colors {
			if len(c) == 0 || c[0] != '#' {
				t.Fatalf("%s palette color %d = %q, want hex", mode, i, c)
			}
		}
	}
}
