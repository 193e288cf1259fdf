package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/five82/karm/internal/answer"
)

// Phase is the stage of the current question/answer exchange.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInFlight
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseInFlight:
		return "in_flight"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// User-facing strings rendered in place of an answer.
const (
	MalformedAnswerText  = "Sorry, could not get an answer."
	TransportFailureText = "Error connecting to server. Please try again."
	EmptyQuestionNotice  = "Please enter a question"
)

// ValidationError rejects a submission before any request is made. Notice is
// the text shown to the user.
type ValidationError struct {
	Notice string
	reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.reason
}

var (
	// ErrEmptyQuestion is returned by Begin when the trimmed question is blank.
	ErrEmptyQuestion error = &ValidationError{Notice: EmptyQuestionNotice, reason: "question is empty"}
	// ErrSubmissionInFlight is returned by Begin while an exchange is outstanding.
	// Callers treat it as a no-op.
	ErrSubmissionInFlight = errors.New("submission already in flight")
)

// Submission is one accepted exchange. It is created by Begin and finished by
// Resolve.
type Submission struct {
	ID        string
	Question  string
	StartedAt time.Time

	ctx       context.Context
	cancel    context.CancelFunc
	discarded bool // guarded by Controller.mu
}

// Controller drives the Idle → InFlight → Succeeded/Failed lifecycle for a
// single screen.
type Controller struct {
	input  *Input
	client answer.Asker
	logger *slog.Logger

	mu      sync.Mutex
	phase   Phase
	answer  string
	outcome answer.Outcome
	lastErr error
	// pending outlives Clear; only Resolve and Cancel release it.
	pending *Submission
}

// NewController binds a controller to its input and answer client. A nil
// logger uses slog.Default().
func NewController(input *Input, client answer.Asker, logger *slog.Logger) *Controller {
	if input == nil {
		input = &Input{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{input: input, client: client, logger: logger}
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Answer returns the rendered answer text; empty means no answer yet.
func (c *Controller) Answer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.answer
}

// Outcome returns the outcome behind the current answer. It is meaningful
// only in PhaseSucceeded and PhaseFailed.
func (c *Controller) Outcome() answer.Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outcome
}

// Outstanding reports whether an accepted exchange has not yet been resolved
// or cancelled. It can be true while the phase is Idle after a Clear.
func (c *Controller) Outstanding() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}

// LastError returns the cause of the most recent transport failure. The
// screen never shows it; it exists for logging and diagnostics.
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// CanSubmit reports whether Begin would accept a submission right now.
func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending == nil && c.input.Trimmed() != ""
}

// Begin validates the question and moves to InFlight. Any outstanding
// exchange blocks it, including one left running by Clear. That check comes
// first so a repeated submit stays silent.
func (c *Controller) Begin(ctx context.Context) (*Submission, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != nil {
		c.logger.Debug("submit ignored; exchange in flight", "id", c.pending.ID, "phase", c.phase.String())
		return nil, ErrSubmissionInFlight
	}
	question := c.input.Trimmed()
	if question == "" {
		c.logger.Debug("submit rejected; question is blank")
		return nil, ErrEmptyQuestion
	}
	if c.client == nil {
		return nil, errors.New("controller has no answer client")
	}

	subCtx, cancel := context.WithCancel(ctx)
	sub := &Submission{
		ID:        uuid.NewString(),
		Question:  question,
		StartedAt: time.Now(),
		ctx:       subCtx,
		cancel:    cancel,
	}
	c.pending = sub
	c.phase = PhaseInFlight
	c.logger.Info("submission started", "id", sub.ID, "question_chars", len(question))
	return sub, nil
}

// Exchange performs the network call for sub. It holds no locks and is the
// only blocking step, so the UI runs it off its event loop.
func (c *Controller) Exchange(sub *Submission) answer.Result {
	if sub == nil {
		return answer.TransportFailure(errors.New("nil submission"))
	}
	return c.client.Ask(sub.ctx, sub.Question)
}

// Resolve applies the result of sub. It reports false when sub was cancelled
// and its result discarded. Results arriving after Clear are still applied.
func (c *Controller) Resolve(sub *Submission, result answer.Result) bool {
	if sub == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	defer sub.cancel()

	if sub.discarded {
		c.logger.Info("discarding cancelled submission", "id", sub.ID, "outcome", result.Outcome.String())
		return false
	}
	if c.pending == sub {
		c.pending = nil
	}

	elapsed := time.Since(sub.StartedAt)
	c.outcome = result.Outcome
	switch result.Outcome {
	case answer.OutcomeAnswered:
		c.phase = PhaseSucceeded
		c.answer = result.Answer
		c.lastErr = nil
	case answer.OutcomeMalformed:
		c.phase = PhaseSucceeded
		c.answer = MalformedAnswerText
		c.lastErr = nil
	default:
		c.phase = PhaseFailed
		c.answer = TransportFailureText
		c.lastErr = result.Err
		c.logger.Warn("submission failed", "id", sub.ID, "elapsed", elapsed, "error", result.Err)
		return true
	}
	c.logger.Info("submission finished", "id", sub.ID, "outcome", result.Outcome.String(), "elapsed", elapsed)
	return true
}

// Submit runs Begin, Exchange and Resolve on the calling goroutine. Failures
// of the exchange are reported through Phase and Answer, not the error.
func (c *Controller) Submit(ctx context.Context) error {
	sub, err := c.Begin(ctx)
	if err != nil {
		return err
	}
	c.Resolve(sub, c.Exchange(sub))
	return nil
}

// Clear resets the question and answer and returns to Idle from any phase.
// An outstanding exchange is not cancelled; if it finishes later its result
// is still applied, and further submissions stay blocked until it does.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != nil {
		c.logger.Debug("clear while in flight; exchange keeps running", "id", c.pending.ID)
	}
	c.input.Clear()
	c.answer = ""
	c.lastErr = nil
	c.phase = PhaseIdle
	c.outcome = answer.OutcomeAnswered
}

// Cancel aborts the outstanding exchange, drops its eventual result and
// unblocks submission. The question and any previous answer are kept. It
// reports whether anything was cancelled.
func (c *Controller) Cancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return false
	}
	c.pending.discarded = true
	c.pending.cancel()
	c.logger.Info("submission cancelled", "id", c.pending.ID, "phase", c.phase.String())
	c.pending = nil
	if c.phase == PhaseInFlight {
		c.phase = PhaseIdle
	}
	return true
}
