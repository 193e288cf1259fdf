package ui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/karm/internal/answer"
	"github.com/five82/karm/internal/state"
)

const (
	questionPlaceholder = "What would you like to know?"
	questionLines       = 4
	maxContentWidth     = 88
)

// Options configures the UI.
type Options struct {
	Context  context.Context
	Store    *state.Store
	BaseURL  string
	Logger   *slog.Logger
	PollTick time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx      context.Context
	store    *state.Store
	baseURL  string
	logger   *slog.Logger
	pollTick time.Duration

	// UI state
	keys    keyMap
	styles  Styles
	help    help.Model
	input   textarea.Model
	spinner spinner.Model
	answer  viewport.Model
	width   int
	height  int
	ready   bool

	// Data state
	snapshot state.Snapshot

	// Overlays
	modal    Modal
	showHelp bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	store := opts.Store
	if store == nil {
		store = state.NewStore(nil, state.Options{Logger: opts.Logger})
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = time.Second
	}

	ta := textarea.New()
	ta.Placeholder = questionPlaceholder
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0 // no cap; the question is sent as typed
	ta.SetHeight(questionLines)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:      ctx,
		store:    store,
		baseURL:  opts.BaseURL,
		logger:   logger,
		pollTick: pollTick,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		input:    ta,
		spinner:  sp,
		answer:   viewport.New(0, 0),
	}
	m.store.SetFocused(true)
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		tickCmd(m.pollTick),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case tickMsg:
		m.refresh()
		return m, tickCmd(m.pollTick)

	case answerMsg:
		return m.handleAnswer(msg)

	case spinner.TickMsg:
		if !m.snapshot.Outstanding {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Cursor blink and other component messages.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.modal != nil {
		return m.modal.View(m.styles, m.width, m.height)
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// A blocking modal swallows everything until dismissed.
	if m.modal != nil {
		modal, cmd, closed := m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Clear):
		m.store.Clear()
		m.input.Reset()
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		if m.store.Controller().Cancel() {
			m.logger.Info("request cancelled by user")
		}
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.ToggleTheme):
		mode := m.store.ToggleTheme()
		m.logger.Debug("theme toggled", "mode", mode.String())
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Help) && (msg.String() != "?" || !m.input.Focused()):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Focus):
		return m.setFocus(!m.input.Focused())

	case key.Matches(msg, m.keys.Blur) && m.input.Focused():
		return m.setFocus(false)
	}

	if m.input.Focused() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != m.snapshot.Question {
			m.store.SetQuestion(m.input.Value())
			m.refresh()
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.answer.ScrollUp(1)
	case key.Matches(msg, m.keys.Down):
		m.answer.ScrollDown(1)
	case key.Matches(msg, m.keys.PageUp):
		m.answer.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.answer.PageDown()
	}
	return m, nil
}

func (m Model) setFocus(focused bool) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if focused {
		cmd = m.input.Focus()
	} else {
		m.input.Blur()
	}
	m.store.SetFocused(focused)
	m.refresh()
	return m, cmd
}

// submit begins an exchange and runs it off the update loop.
func (m Model) submit() (tea.Model, tea.Cmd) {
	controller := m.store.Controller()
	sub, err := controller.Begin(m.ctx)
	if err != nil {
		var verr *state.ValidationError
		switch {
		case errors.Is(err, state.ErrSubmissionInFlight):
		case errors.As(err, &verr):
			m.modal = newNoticeModal("Error", verr.Notice)
		default:
			m.logger.Error("submit failed", "error", err)
		}
		return m, nil
	}
	m.refresh()
	return m, tea.Batch(exchangeCmd(controller, sub), m.spinner.Tick)
}

func (m Model) handleAnswer(msg answerMsg) (tea.Model, tea.Cmd) {
	if !m.store.Controller().Resolve(msg.sub, msg.result) {
		m.logger.Debug("discarded result of cancelled submission", "submission_id", msg.sub.ID)
	}
	m.refresh()
	m.answer.GotoTop()
	return m, nil
}

// refresh re-reads the store and updates everything derived from it.
func (m *Model) refresh() {
	prevMode := m.snapshot.Mode
	first := m.snapshot.Palette.Background == ""
	m.snapshot = m.store.Snapshot()
	if first || prevMode != m.snapshot.Mode {
		m.styles = NewStyles(m.snapshot.Palette)
		m.styles.applyTextarea(&m.input)
	}
	m.keys.syncEnabled(m.snapshot.Question != "", m.snapshot.Outstanding)
	m.updateAnswerViewport()
}

// Messages

type tickMsg time.Time

type answerMsg struct {
	sub    *state.Submission
	result answer.Result
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func exchangeCmd(controller *state.Controller, sub *state.Submission) tea.Cmd {
	return func() tea.Msg {
		return answerMsg{sub: sub, result: controller.Exchange(sub)}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		progOpts = append(progOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, progOpts...)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
		return nil
	}
	return err
}
