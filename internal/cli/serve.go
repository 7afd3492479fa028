package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrlokans/library-manager/internal/config"
)

func newServeCommand(info BuildInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web front end",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd, info)
		},
	}
	addServeFlags(cmd.Flags())
	return cmd
}

func serve(cmd *cobra.Command, info BuildInfo) error {
	cfg := config.Load(cmd.Flags())
	return runServer(cmd.Context(), cfg, info.Version)
}
