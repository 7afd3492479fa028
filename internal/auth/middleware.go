package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/library-manager/internal/database/users"
	"github.com/mrlokans/library-manager/internal/entities"
	"github.com/mrlokans/library-manager/internal/navigation"
)

// ContextKeyState is the gin context key holding the request's navigation state.
const ContextKeyState = "navigation_state"

// UserLookup reloads the user remembered by a session.
type UserLookup interface {
	CurrentUser(ctx context.Context, id uint) (*entities.User, error)
}

// Middleware resolves the session's navigation state for each request.
type Middleware struct {
	users          UserLookup
	sessionManager *SessionManager
	logger         *zap.Logger
}

func NewMiddleware(lookup UserLookup, sessionManager *SessionManager, logger *zap.Logger) *Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Middleware{
		users:          lookup,
		sessionManager: sessionManager,
		logger:         logger,
	}
}

// Handler loads the state from the session and stores it in the gin
// context. A session whose user no longer exists is reset to the initial
// state; any other lookup failure aborts the request with a 500 and leaves
// the session untouched.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		state := m.sessionManager.LoadState(ctx)

		if state.User != nil {
			user, err := m.users.CurrentUser(ctx, state.User.UserID)
			switch {
			case errors.Is(err, users.ErrUserNotFound):
				m.logger.Warn("dropping session identity",
					zap.Uint("user_id", state.User.UserID), zap.Error(err))
				state = navigation.Initial()
				if err := m.sessionManager.SaveState(ctx, state); err != nil {
					m.logger.Error("failed to reset session", zap.Error(err))
				}
			case err != nil:
				m.logger.Error("failed to load session user",
					zap.Uint("user_id", state.User.UserID), zap.Error(err))
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			default:
				state.User.Username = user.Username
			}
		}

		c.Set(ContextKeyState, state)
		c.Next()
	}
}

// GetState retrieves the navigation state from the context.
// Returns the initial state if the middleware did not run.
func GetState(c *gin.Context) navigation.State {
	if v, exists := c.Get(ContextKeyState); exists {
		if state, ok := v.(navigation.State); ok {
			return state
		}
	}
	return navigation.Initial()
}

// GetUserID returns the logged-in user's ID, or 0.
func GetUserID(c *gin.Context) uint {
	if user := GetState(c).User; user != nil {
		return user.UserID
	}
	return 0
}

// GetUsername returns the logged-in user's username, or "".
func GetUsername(c *gin.Context) string {
	if user := GetState(c).User; user != nil {
		return user.Username
	}
	return ""
}

// IsAuthenticated returns true if a user is logged in for this request.
func IsAuthenticated(c *gin.Context) bool {
	return GetState(c).LoggedIn()
}
