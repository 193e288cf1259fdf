package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/karm/internal/answer"
	"github.com/five82/karm/internal/server"
	"github.com/five82/karm/internal/state"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("KARM_BASE_URL", "")
	t.Setenv("KARM_LOG_FILE", "")
	return filepath.Join(home, "missing.toml")
}

func TestNewRootCommand(t *testing.T) {
	cmd := newRootCommand()

	assert.Equal(t, "karm", cmd.Use)
	assert.True(t, cmd.HasSubCommands())
	for _, name := range []string{"config", "base-url", "poll", "timeout", "theme", "log-file", "debug"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "flag %s", name)
	}
	assert.Equal(t, "0s", cmd.PersistentFlags().Lookup("timeout").DefValue)
}

func TestServeCommandFlags(t *testing.T) {
	cmd := newServeCommand(&rootFlags{})
	assert.Equal(t, "serve", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("addr"))
	assert.NotNil(t, cmd.Flags().Lookup("answers"))
}

func TestAskCommand_RequiresQuestion(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"ask"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.ExecuteContext(context.Background())
	assert.Error(t, err)
}

func TestAskCommand_PrintsAnswer(t *testing.T) {
	cfgPath := isolate(t)
	color.NoColor = true

	srv, err := server.New("127.0.0.1:0", server.DefaultKnowledgeBase(), nil)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", cfgPath, "--base-url", ts.URL, "ask", "what", "is", "karma?"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Equal(t, "Karma is the idea that a person's actions shape what comes back to them.\n", out.String())
}

func TestAskCommand_BlankQuestion(t *testing.T) {
	cfgPath := isolate(t)

	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", cfgPath, "ask", "  "})

	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Equal(t, state.EmptyQuestionNotice, err.Error())
}

func TestPrintAnswer(t *testing.T) {
	color.NoColor = true

	var out bytes.Buffer
	err := printAnswer(&out, state.Snapshot{Phase: state.PhaseFailed, Answer: state.TransportFailureText})
	assert.ErrorIs(t, err, errSilent)
	assert.Equal(t, state.TransportFailureText+"\n", out.String())

	out.Reset()
	err = printAnswer(&out, state.Snapshot{Phase: state.PhaseSucceeded, Outcome: answer.OutcomeMalformed, Answer: state.MalformedAnswerText})
	assert.NoError(t, err)
	assert.Equal(t, state.MalformedAnswerText+"\n", out.String())
}

func TestAnswerColor_FollowsOutcome(t *testing.T) {
	tests := []struct {
		name string
		snap state.Snapshot
		want *color.Color
	}{
		{
			name: "answered",
			snap: state.Snapshot{Phase: state.PhaseSucceeded, Outcome: answer.OutcomeAnswered, Answer: "Forty-two."},
			want: color.New(color.FgGreen),
		},
		{
			name: "answered text matching the malformed notice",
			snap: state.Snapshot{Phase: state.PhaseSucceeded, Outcome: answer.OutcomeAnswered, Answer: state.MalformedAnswerText},
			want: color.New(color.FgGreen),
		},
		{
			name: "malformed",
			snap: state.Snapshot{Phase: state.PhaseSucceeded, Outcome: answer.OutcomeMalformed, Answer: state.MalformedAnswerText},
			want: color.New(color.FgYellow),
		},
		{
			name: "failed",
			snap: state.Snapshot{Phase: state.PhaseFailed, Outcome: answer.OutcomeTransportFailure, Answer: state.TransportFailureText},
			want: color.New(color.FgRed, color.Bold),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, answerColor(tt.snap).Equals(tt.want))
		})
	}
}

func TestLogsCommand_PrintsTail(t *testing.T) {
	cfgPath := isolate(t)
	color.NoColor = true

	logPath := filepath.Join(t.TempDir(), "karm.log")
	require.NoError(t, os.WriteFile(logPath, []byte("level=INFO msg=one\nlevel=WARN msg=two\nlevel=INFO msg=three\n"), 0o644))

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", cfgPath, "--log-file", logPath, "logs", "-n", "2"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Equal(t, "level=WARN msg=two\nlevel=INFO msg=three\n", out.String())
}
