// Command generate_demo creates a demo database with a demo user and a few
// public domain books.
// Usage: go run ./cmd/generate_demo [--db path/to/demo.db]
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/mrlokans/library-manager/internal/config"
	"github.com/mrlokans/library-manager/internal/demo"
	"github.com/mrlokans/library-manager/internal/entrypoint"
)

const defaultDemoDatabasePath = "./demo/demo.db"

func main() {
	flags := pflag.NewFlagSet("generate_demo", pflag.ExitOnError)
	dbPath := flags.String("db", defaultDemoDatabasePath, "path to the demo database file")
	_ = flags.Parse(os.Args[1:])

	if err := run(*dbPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(dbPath string) error {
	// Start fresh
	if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove existing demo database: %w", err)
	}

	cfg := config.NewConfig()
	cfg.Database.Path = dbPath

	app, err := entrypoint.Open(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	user, err := demo.Seed(context.Background(), app.Library)
	if err != nil {
		return err
	}

	app.Logger.Info("demo database generated",
		zap.String("path", dbPath),
		zap.String("email", demo.Email),
		zap.String("password", demo.Password),
		zap.Int("books", len(demo.Books)),
		zap.Uint("user_id", user.ID))
	return nil
}
