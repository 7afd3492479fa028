package http

import (
	"go.uber.org/zap"

	"github.com/mrlokans/library-manager/internal/auth"
	"github.com/mrlokans/library-manager/internal/charts"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Library  Library
	Database Pinger

	// Sessions and CSRF. An empty CSRFSecret disables CSRF protection.
	SessionManager *auth.SessionManager
	CSRFSecret     []byte
	SecureCookies  bool

	// Chart canvas size
	Charts charts.Options

	// Application info
	Version string

	// Defaults to a no-op logger
	Logger *zap.Logger
}
