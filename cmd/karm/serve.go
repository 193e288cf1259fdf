package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/five82/karm/internal/app"
)

func newServeCommand(flags *rootFlags) *cobra.Command {
	var addr, answers string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the bundled answering service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := app.NewLogger(cmd.ErrOrStderr(), flags.level(slog.LevelInfo))
			opts := flags.options(logger)
			opts.Overrides.ServerAddr = addr
			opts.Overrides.AnswersFile = answers
			return app.Serve(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :5000)")
	cmd.Flags().StringVar(&answers, "answers", "", "TOML answers file (default built-in answers)")
	return cmd
}
