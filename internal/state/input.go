package state

import (
	"strings"
	"sync"
)

// Input holds the question text exactly as typed. It performs no validation;
// the controller decides whether the trimmed value can be submitted.
type Input struct {
	mu   sync.RWMutex
	text string
}

// SetQuestion replaces the stored text unconditionally.
func (in *Input) SetQuestion(text string) {
	in.mu.Lock()
	in.text = text
	in.mu.Unlock()
}

// Question returns the raw text.
func (in *Input) Question() string {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.text
}

// Trimmed returns the text with surrounding whitespace removed.
func (in *Input) Trimmed() string {
	return strings.TrimSpace(in.Question())
}

// Clear empties the text.
func (in *Input) Clear() {
	in.SetQuestion("")
}
