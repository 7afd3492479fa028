package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Session
		Log
		Charts
		Export
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path       string
		LogQueries bool
	}
	Session struct {
		Secret        string        // Also keys CSRF tokens; auto-generated if empty
		Lifetime      time.Duration
		SecureCookies bool // Set to false for local dev without HTTPS
	}
	Log struct {
		Level       string // debug, info, warn, error
		Development bool   // Console encoder instead of JSON
		Output      string // "stderr", "stdout" or a file path
	}
	Charts struct {
		Width  int
		Height int
	}
	Export struct {
		OutputDir string // Where the terminal UI writes downloads
	}
)

// flagKeys maps startup flag names to the environment keys they override.
var flagKeys = map[string]string{
	"host":       "HOST",
	"port":       "PORT",
	"database":   "DATABASE_PATH",
	"output-dir": "EXPORT_OUTPUT_DIR",
	"log-level":  "LOG_LEVEL",
}

// loadDotEnv loads variables from a .env file if present. Existing
// environment variables win over the file.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: could not load .env: %v", err)
	}
}

func NewConfig() *Config {
	return Load(nil)
}

// Load builds the configuration from defaults, the environment and, when
// flags is non-nil, any startup flags that were explicitly set.
func Load(flags *pflag.FlagSet) *Config {
	loadDotEnv()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", DefaultPort)
	v.SetDefault("host", DefaultHost)
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_log_queries", false)

	v.SetDefault("session_secret", "")      // Auto-generated if empty
	v.SetDefault("session_lifetime", "24h") // 24 hours
	v.SetDefault("session_secure_cookies", false)

	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_development", false)
	v.SetDefault("log_output", DefaultLogOutput)

	v.SetDefault("chart_width", DefaultChartWidth)
	v.SetDefault("chart_height", DefaultChartHeight)
	v.SetDefault("export_output_dir", ".")

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				_ = v.BindPFlag(key, f)
			}
		}
	}

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:       v.GetString("DATABASE_PATH"),
			LogQueries: v.GetBool("DATABASE_LOG_QUERIES"),
		},
		Session: Session{
			Secret:        v.GetString("SESSION_SECRET"),
			Lifetime:      v.GetDuration("SESSION_LIFETIME"),
			SecureCookies: v.GetBool("SESSION_SECURE_COOKIES"),
		},
		Log: Log{
			Level:       v.GetString("LOG_LEVEL"),
			Development: v.GetBool("LOG_DEVELOPMENT"),
			Output:      v.GetString("LOG_OUTPUT"),
		},
		Charts: Charts{
			Width:  v.GetInt("CHART_WIDTH"),
			Height: v.GetInt("CHART_HEIGHT"),
		},
		Export: Export{
			OutputDir: v.GetString("EXPORT_OUTPUT_DIR"),
		},
	}
}
