package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/karm/internal/app"
	"github.com/five82/karm/internal/logtail"
)

func newLogsCommand(flags *rootFlags) *cobra.Command {
	var lines int
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of the terminal UI log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.LoadConfig(flags.options(nil))
			if err != nil {
				return err
			}
			tail, err := logtail.Read(cfg.LogFile, lines)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, line := range tail {
				_, _ = fmt.Fprintln(out, logtail.Colorize(line))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of lines to show (0 for all)")
	return cmd
}
