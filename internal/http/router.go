package http

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/library-manager/internal/auth"
)

//go:embed templates/*.html
var templatesFS embed.FS

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.Use(AccessLogMiddleware(logger))
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())
	if cfg.SecureCookies {
		router.Use(auth.StrictTransportSecurityMiddleware())
	}

	tmpl := template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))
	router.SetHTMLTemplate(tmpl)

	// Health endpoints
	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	screens := router.Group("/")
	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		screens.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	screens.Use(cfg.SessionManager.SessionLoadSave())
	screens.Use(auth.NewMiddleware(cfg.Library, cfg.SessionManager, logger).Handler())

	controller := NewScreenController(cfg.Library, cfg.SessionManager, cfg.Charts, logger)
	screens.GET("/", controller.Show)
	screens.POST("/", controller.Act)

	return router
}
