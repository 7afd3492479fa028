package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrlokans/library-manager/internal/config"
)

func newTUICommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Use the library from the terminal",
		Long: `Show the library screens in the terminal.

Downloads and the log file are written to --output-dir.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), config.Load(cmd.Flags()))
		},
	}
	cmd.Flags().String("output-dir", ".", "directory for CSV and PDF downloads")
	return cmd
}
