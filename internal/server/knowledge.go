package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Answerer produces the answer for one question.
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// DefaultFallback is returned for questions the knowledge base does not know.
const DefaultFallback = "I'm not sure about that one yet. Try asking something else."

// KnowledgeBase answers questions from a fixed set of question/answer pairs.
// Lookups ignore case, surrounding whitespace, repeated spaces and trailing
// punctuation.
type KnowledgeBase struct {
	entries  map[string]string
	fallback string
}

// Entry is one question/answer pair.
type Entry struct {
	Question string `toml:"question"`
	Answer   string `toml:"answer"`
}

var _ Answerer = (*KnowledgeBase)(nil)

// NewKnowledgeBase indexes entries. A blank fallback uses DefaultFallback.
// Later entries win when two questions normalize to the same key.
func NewKnowledgeBase(entries []Entry, fallback string) (*KnowledgeBase, error) {
	kb := &KnowledgeBase{
		entries:  make(map[string]string, len(entries)),
		fallback: strings.TrimSpace(fallback),
	}
	if kb.fallback == "" {
		kb.fallback = DefaultFallback
	}
	for i, e := range entries {
		key := normalizeQuestion(e.Question)
		answer := strings.TrimSpace(e.Answer)
		if key == "" {
			return nil, fmt.Errorf("entry %d: question is empty", i)
		}
		if answer == "" {
			return nil, fmt.Errorf("entry %d (%q): answer is empty", i, e.Question)
		}
		kb.entries[key] = answer
	}
	return kb, nil
}

// DefaultKnowledgeBase returns the built-in answers used when no answers file
// is configured.
func DefaultKnowledgeBase() *KnowledgeBase {
	kb, _ := NewKnowledgeBase([]Entry{
		{Question: "What is Karm AI?", Answer: "Karm AI is a small question and answer companion. Ask it anything it has been taught."},
		{Question: "Hello", Answer: "Hello! What would you like to know?"},
		{Question: "What is karma?", Answer: "Karma is the idea that a person's actions shape what comes back to them."},
		{Question: "How do I change the theme?", Answer: "Press ctrl+t to switch between light and dark mode."},
	}, "")
	return kb
}

// LoadKnowledgeBase reads a TOML answers file of the form
//
//	fallback = "..."
//
//	[[entry]]
//	question = "..."
//	answer = "..."
//
// An empty path returns DefaultKnowledgeBase.
func LoadKnowledgeBase(path string) (*KnowledgeBase, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultKnowledgeBase(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("answers file %s not found: %w", path, err)
		}
		return nil, fmt.Errorf("read answers file: %w", err)
	}

	var raw struct {
		Fallback string  `toml:"fallback"`
		Entries  []Entry `toml:"entry"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse answers file: %w", err)
	}
	kb, err := NewKnowledgeBase(raw.Entries, raw.Fallback)
	if err != nil {
		return nil, fmt.Errorf("answers file %s: %w", path, err)
	}
	return kb, nil
}

// Answer returns the stored answer or the fallback. It never fails.
func (kb *KnowledgeBase) Answer(_ context.Context, question string) (string, error) {
	if answer, ok := kb.entries[normalizeQuestion(question)]; ok {
		return answer, nil
	}
	return kb.fallback, nil
}

// Len reports how many distinct questions are known.
func (kb *KnowledgeBase) Len() int { return len(kb.entries) }

func normalizeQuestion(q string) string {
	fields := strings.Fields(strings.ToLower(q))
	joined := strings.Join(fields, " ")
	return strings.TrimRight(joined, "?!. ")
}
