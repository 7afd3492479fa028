package entrypoint

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/library-manager/internal/auth"
	"github.com/mrlokans/library-manager/internal/charts"
	"github.com/mrlokans/library-manager/internal/config"
	"github.com/mrlokans/library-manager/internal/database"
	"github.com/mrlokans/library-manager/internal/database/books"
	"github.com/mrlokans/library-manager/internal/database/users"
	http_controllers "github.com/mrlokans/library-manager/internal/http"
	"github.com/mrlokans/library-manager/internal/logging"
	"github.com/mrlokans/library-manager/internal/services"
	"github.com/mrlokans/library-manager/internal/tui"
)

// tuiLogFile receives the terminal UI's logs so they do not draw over the screens.
const tuiLogFile = "library-tui.log"

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App holds the resources shared by the web server and the terminal UI.
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Database *database.Database
	Library  *services.LibraryService
}

// Open builds the logger, opens the database and wires the stores into the
// library service.
func Open(cfg *config.Config) (*App, error) {
	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return nil, err
	}

	db, err := database.NewDatabase(cfg.Database.Path, cfg.Database.LogQueries)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.Database.Path, err)
	}
	logger.Info("database ready", zap.String("path", cfg.Database.Path))

	library := services.NewLibraryService(
		users.NewRepository(db.DB),
		books.NewRepository(db.DB),
		logger,
	)

	return &App{
		Config:   cfg,
		Logger:   logger,
		Database: db,
		Library:  library,
	}, nil
}

// Close releases the database and flushes the logger.
func (a *App) Close() {
	if err := a.Database.Close(); err != nil {
		a.Logger.Error("failed to close database", zap.Error(err))
	}
	_ = a.Logger.Sync()
}

// csrfSecret decodes the configured session secret, or generates one for
// this process when none is set.
func csrfSecret(cfg config.Session, logger *zap.Logger) ([]byte, error) {
	if cfg.Secret != "" {
		secret, err := hex.DecodeString(cfg.Secret)
		if err != nil {
			// Not hex, use the raw bytes
			return []byte(cfg.Secret), nil
		}
		return secret, nil
	}

	generated, err := auth.GenerateSessionSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSRF secret: %w", err)
	}
	logger.Info("generated session secret, set SESSION_SECRET to persist it")
	return hex.DecodeString(generated)
}

// NewRouter builds the web router on top of an opened App.
func NewRouter(app *App, version string) (*gin.Engine, error) {
	sqlDB, err := app.Database.SQLDB()
	if err != nil {
		return nil, err
	}

	sessionManager, err := auth.NewSessionManager(sqlDB, app.Config.Session)
	if err != nil {
		return nil, fmt.Errorf("failed to create session manager: %w", err)
	}

	secret, err := csrfSecret(app.Config.Session, app.Logger)
	if err != nil {
		return nil, err
	}

	return http_controllers.NewRouter(http_controllers.RouterConfig{
		Library:        app.Library,
		Database:       app.Database,
		SessionManager: sessionManager,
		CSRFSecret:     secret,
		SecureCookies:  app.Config.Session.SecureCookies,
		Charts: charts.Options{
			Width:  app.Config.Charts.Width,
			Height: app.Config.Charts.Height,
		},
		Version: version,
		Logger:  app.Logger,
	}), nil
}

// Serve runs the server until ctx is cancelled or SIGINT/SIGTERM arrives,
// then shuts it down gracefully.
func Serve(ctx context.Context, handler http.Handler, cfg *config.Config, logger *zap.Logger, onShutdown ShutdownFunc) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second
	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server", zap.Duration("timeout", timeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(shutdownCtx)
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server exiting")
	return nil
}

// Run opens the library and serves the web front end until interrupted.
func Run(ctx context.Context, cfg *config.Config, version string) error {
	app, err := Open(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	app.Logger.Info("starting library manager", zap.String("version", version))

	router, err := NewRouter(app, version)
	if err != nil {
		return err
	}

	return Serve(ctx, router, cfg, app.Logger, nil)
}

// RunTUI opens the library and shows the terminal screens. Logs that would go
// to stderr are written to a file in the export directory instead.
func RunTUI(ctx context.Context, cfg *config.Config) error {
	if err := os.MkdirAll(cfg.Export.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if cfg.Log.Output == "" || cfg.Log.Output == config.DefaultLogOutput {
		cfg.Log.Output = filepath.Join(cfg.Export.OutputDir, tuiLogFile)
	}

	app, err := Open(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	app.Logger.Info("starting terminal UI", zap.String("output_dir", cfg.Export.OutputDir))
	return tui.Run(ctx, app.Library, cfg.Export.OutputDir, app.Logger)
}
