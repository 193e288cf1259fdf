package state

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/five82/karm/internal/answer"
)

// Health records the latest reachability check of the answering service.
type Health struct {
	Message             string
	LastChecked         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive failed checks
}

// IsOffline returns true when the service has been unreachable for multiple checks.
func (h Health) IsOffline() bool {
	return h.ConsecutiveFailures >= 2
}

// Snapshot represents everything the screen renders at one instant. Outcome
// is meaningful alongside PhaseSucceeded and PhaseFailed. Outstanding stays
// true while an exchange is unresolved, even after Clear.
type Snapshot struct {
	Question    string
	Answer      string
	Phase       Phase
	Outcome     answer.Outcome
	Outstanding bool
	CanSubmit   bool
	Mode        Mode
	Palette     Palette
	Focused     bool
	Health      Health
	HasHealth   bool
}

// Options configure a Store.
type Options struct {
	Mode   Mode
	Logger *slog.Logger
}

// Store is the per-screen state container. Each screen owns one; nothing is
// shared between stores.
type Store struct {
	input      *Input
	theme      *Theme
	controller *Controller

	mu        sync.RWMutex
	focused   bool
	health    Health
	hasHealth bool
}

// NewStore builds the containers for a freshly mounted screen.
func NewStore(client answer.Asker, opts Options) *Store {
	input := &Input{}
	return &Store{
		input:      input,
		theme:      NewTheme(opts.Mode),
		controller: NewController(input, client, opts.Logger),
	}
}

// Controller returns the submission controller.
func (s *Store) Controller() *Controller { return s.controller }

// Theme returns the theme model.
func (s *Store) Theme() *Theme { return s.theme }

// SetQuestion stores an edit of the question text.
func (s *Store) SetQuestion(text string) { s.input.SetQuestion(text) }

// Question returns the raw question text.
func (s *Store) Question() string { return s.input.Question() }

// ToggleTheme flips between light and dark.
func (s *Store) ToggleTheme() Mode { return s.theme.Toggle() }

// Clear resets question and answer together.
func (s *Store) Clear() { s.controller.Clear() }

// SetFocused records whether the question input has focus.
func (s *Store) SetFocused(focused bool) {
	s.mu.Lock()
	s.focused = focused
	s.mu.Unlock()
}

// UpdateHealth records a reachability check. When err is non-nil the previous
// message is kept but the error is recorded for visibility.
func (s *Store) UpdateHealth(message string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hasHealth = true
	s.health.LastChecked = time.Now()
	if err != nil {
		s.health.LastError = err
		s.health.ConsecutiveFailures++
		return
	}
	s.health.Message = message
	s.health.LastError = nil
	s.health.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current screen state.
func (s *Store) Snapshot() Snapshot {
	mode := s.theme.Mode()
	snap := Snapshot{
		Question:  s.input.Question(),
		Mode:      mode,
		Palette:   PaletteFor(mode),
		CanSubmit: s.controller.CanSubmit(),
	}
	snap.Phase = s.controller.Phase()
	snap.Answer = s.controller.Answer()
	snap.Outcome = s.controller.Outcome()
	snap.Outstanding = s.controller.Outstanding()

	s.mu.RLock()
	defer s.mu.RUnlock()
	snap.Focused = s.focused
	snap.Health = s.health
	snap.HasHealth = s.hasHealth
	if s.health.LastError != nil {
		snap.Health.LastError = fmt.Errorf("%w", s.health.LastError)
	}
	return snap
}
