// Package cli defines the library command line: serve (the default), tui and
// version.
package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mrlokans/library-manager/internal/config"
	"github.com/mrlokans/library-manager/internal/entrypoint"
)

// BuildInfo is stamped into the binary at build time via ldflags.
type BuildInfo struct {
	Version string
	Commit  string
}

// Entry points, replaced in tests.
var (
	runServer = entrypoint.Run
	runTUI    = entrypoint.RunTUI
)

func NewRootCommand(info BuildInfo) *cobra.Command {
	root := &cobra.Command{
		Use:   "library",
		Short: "Personal library manager",
		Long: `Keep track of the books you are reading, have read and want to read.

Without a subcommand the web front end is started, same as "library serve".`,
		Version:       info.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd, info)
		},
	}

	root.PersistentFlags().String("database", config.DefaultDatabasePath, "path to the library database")
	root.PersistentFlags().String("log-level", config.DefaultLogLevel, "log level: debug, info, warn or error")
	addServeFlags(root.Flags())

	root.AddCommand(newServeCommand(info))
	root.AddCommand(newTUICommand())
	root.AddCommand(newVersionCommand(info))
	return root
}

// Execute runs the command named by the process arguments.
func Execute(ctx context.Context, info BuildInfo) error {
	return NewRootCommand(info).ExecuteContext(ctx)
}

func addServeFlags(fs *pflag.FlagSet) {
	fs.String("host", config.DefaultHost, "address to listen on")
	fs.Int32("port", config.DefaultPort, "port to listen on")
}
