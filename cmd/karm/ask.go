package main

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/five82/karm/internal/answer"
	"github.com/five82/karm/internal/app"
	"github.com/five82/karm/internal/state"
)

func newAskCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question...>",
		Short: "Ask a single question and print the answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := app.NewLogger(cmd.ErrOrStderr(), flags.level(slog.LevelWarn))
			question := strings.Join(args, " ")

			snap, err := app.Ask(cmd.Context(), flags.options(logger), question)
			var verr *state.ValidationError
			if errors.As(err, &verr) {
				return errors.New(verr.Notice)
			}
			if err != nil {
				return err
			}
			return printAnswer(cmd.OutOrStdout(), snap)
		},
	}
}

// printAnswer writes the answer colored by outcome. A failed exchange
// returns errSilent so the process exits non-zero.
func printAnswer(w io.Writer, snap state.Snapshot) error {
	_, _ = answerColor(snap).Fprintln(w, snap.Answer)
	if snap.Phase == state.PhaseFailed {
		return errSilent
	}
	return nil
}

func answerColor(snap state.Snapshot) *color.Color {
	switch {
	case snap.Phase == state.PhaseFailed:
		return color.New(color.FgRed, color.Bold)
	case snap.Outcome == answer.OutcomeMalformed:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}
