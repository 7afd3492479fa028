package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mrlokans/library-manager/internal/cli"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	info := cli.BuildInfo{Version: Version, Commit: Commit}
	if err := cli.Execute(context.Background(), info); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
