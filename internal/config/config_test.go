package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(8188), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, 24*time.Hour, cfg.Session.Lifetime)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, DefaultLogOutput, cfg.Log.Output)
	assert.Equal(t, DefaultChartWidth, cfg.Charts.Width)
	assert.Equal(t, DefaultChartHeight, cfg.Charts.Height)
}

func TestNewConfig_Environment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_PATH", "/tmp/books.db")
	t.Setenv("SESSION_LIFETIME", "2h")

	cfg := NewConfig()

	assert.Equal(t, int32(9000), cfg.HTTP.Port)
	assert.Equal(t, "/tmp/books.db", cfg.Database.Path)
	assert.Equal(t, 2*time.Hour, cfg.Session.Lifetime)
}

func TestLoad_FlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")

	flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	flags.Int32("port", 8188, "")
	flags.String("database", DefaultDatabasePath, "")
	assert.NoError(t, flags.Parse([]string{"--port", "7000"}))

	cfg := Load(flags)

	assert.Equal(t, int32(7000), cfg.HTTP.Port)
	// Unchanged flag falls back to the default
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
}
