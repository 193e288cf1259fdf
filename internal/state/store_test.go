package state

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/five82/karm/internal/answer"
)

type stubAsker struct {
	result answer.Result
	calls  int
}

func (s *stubAsker) Ask(context.Context, string) answer.Result {
	s.calls++
	return s.result
}

func TestStore_SnapshotReflectsModels(t *testing.T) {
	asker := &stubAsker{result: answer.Answered("Artificial Intelligence")}
	s := NewStore(asker, Options{Mode: ModeDark, Logger: discardLogger()})

	snap := s.Snapshot()
	if snap.Question != "" || snap.Answer != "" || snap.Phase != PhaseIdle {
		t.Fatalf("fresh snapshot = %+v, want empty idle", snap)
	}
	if snap.Mode != ModeDark || snap.Palette.Label != "Dark Mode" {
		t.Fatalf("fresh snapshot mode = %v palette %q, want dark", snap.Mode, snap.Palette.Label)
	}
	if snap.CanSubmit {
		t.Fatal("CanSubmit = true with empty question")
	}

	s.SetQuestion("What is AI?")
	s.SetFocused(true)
	if snap := s.Snapshot(); !snap.CanSubmit || !snap.Focused || snap.Question != "What is AI?" {
		t.Fatalf("snapshot after edit = %+v", snap)
	}

	if err := s.Controller().Submit(context.Background()); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	snap = s.Snapshot()
	if snap.Answer != "Artificial Intelligence" || snap.Phase != PhaseSucceeded {
		t.Fatalf("snapshot after submit = %+v", snap)
	}
	if asker.calls != 1 {
		t.Fatalf("calls = %d, want 1", asker.calls)
	}
}

func TestStore_ToggleThemeLeavesOtherStateAlone(t *testing.T) {
	asker := &stubAsker{result: answer.TransportFailure(errors.New("down"))}
	s := NewStore(asker, Options{Logger: discardLogger()})
	s.SetQuestion("Hi")
	if err := s.Controller().Submit(context.Background()); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	before := s.Snapshot()
	s.ToggleTheme()
	mid := s.Snapshot()
	s.ToggleTheme()
	after := s.Snapshot()

	if mid.Mode == before.Mode {
		t.Fatalf("mode did not change: %v", mid.Mode)
	}
	for _, snap := range []Snapshot{mid, after} {
		if snap.Question != before.Question || snap.Answer != before.Answer || snap.Phase != before.Phase {
			t.Fatalf("toggle changed state: before %+v, got %+v", before, snap)
		}
	}
	if after.Mode != before.Mode {
		t.Fatalf("two toggles: mode = %v, want %v", after.Mode, before.Mode)
	}
	if after.Answer != TransportFailureText || after.Phase != PhaseFailed {
		t.Fatalf("after = %+v, want failed", after)
	}
}

func TestStore_ClearResetsQuestionAndAnswer(t *testing.T) {
	s := NewStore(&stubAsker{result: answer.Malformed()}, Options{Logger: discardLogger()})
	s.SetQuestion("Hi")
	if err := s.Controller().Submit(context.Background()); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if got := s.Snapshot().Answer; got != MalformedAnswerText {
		t.Fatalf("Answer = %q, want %q", got, MalformedAnswerText)
	}
	if got := s.Snapshot().Outcome; got != answer.OutcomeMalformed {
		t.Fatalf("Outcome = %v, want %v", got, answer.OutcomeMalformed)
	}

	s.Clear()
	snap := s.Snapshot()
	if snap.Question != "" || snap.Answer != "" || snap.Phase != PhaseIdle {
		t.Fatalf("snapshot after clear = %+v, want empty idle", snap)
	}
	if s.Question() != "" {
		t.Fatalf("Question() = %q, want empty", s.Question())
	}
}

func TestStore_UpdateHealth(t *testing.T) {
	s := NewStore(&stubAsker{}, Options{Logger: discardLogger()})
	if snap := s.Snapshot(); snap.HasHealth || snap.Health.IsOffline() {
		t.Fatalf("fresh health = %+v", snap.Health)
	}

	before := time.Now()
	s.UpdateHealth("Q&A Server is running!", nil)
	snap := s.Snapshot()
	if !snap.HasHealth || snap.Health.Message != "Q&A Server is running!" {
		t.Fatalf("health = %+v", snap.Health)
	}
	if snap.Health.LastChecked.Before(before) {
		t.Fatalf("LastChecked = %v, want >= %v", snap.Health.LastChecked, before)
	}

	origErr := errors.New("connection refused")
	s.UpdateHealth("", origErr)
	snap = s.Snapshot()
	if snap.Health.Message != "Q&A Server is running!" {
		t.Fatalf("message changed on error: %q", snap.Health.Message)
	}
	if snap.Health.ConsecutiveFailures != 1 || snap.Health.IsOffline() {
		t.Fatalf("after 1 failure: %+v", snap.Health)
	}
	if snap.Health.LastError == nil || snap.Health.LastError.Error() != "connection refused" {
		t.Fatalf("LastError = %v", snap.Health.LastError)
	}
	if reflect.ValueOf(snap.Health.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatal("Snapshot should clone error instance")
	}

	s.UpdateHealth("", errors.New("again"))
	if !s.Snapshot().Health.IsOffline() {
		t.Fatal("IsOffline() = false after 2 failures")
	}

	s.UpdateHealth("back", nil)
	snap = s.Snapshot()
	if snap.Health.ConsecutiveFailures != 0 || snap.Health.LastError != nil || snap.Health.IsOffline() {
		t.Fatalf("health after recovery = %+v", snap.Health)
	}
}

func TestInput_SetTrimClear(t *testing.T) {
	var in Input
	in.SetQuestion("  spaced  ")
	if in.Question() != "  spaced  " {
		t.Fatalf("Question() = %q", in.Question())
	}
	if in.Trimmed() != "spaced" {
		t.Fatalf("Trimmed() = %q", in.Trimmed())
	}
	in.Clear()
	if in.Question() != "" {
		t.Fatalf("Question() after Clear = %q", in.Question())
	}
}
