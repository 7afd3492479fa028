package auth

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/mrlokans/library-manager/internal/config"
	"github.com/mrlokans/library-manager/internal/navigation"
)

// Session data keys
const (
	SessionKeyPage     = "page"
	SessionKeyUserID   = "user_id"
	SessionKeyUsername = "username"
	SessionKeyFlash    = "flash"
)

// SessionManager wraps scs.SessionManager with navigation state accessors.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager creates a configured session manager.
// The sqlDB parameter should be the underlying *sql.DB from GORM.
func NewSessionManager(sqlDB *sql.DB, cfg config.Session) (*SessionManager, error) {
	// Create sessions table if it doesn't exist
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(sqlDB)

	sm.Lifetime = cfg.Lifetime
	sm.IdleTimeout = cfg.Lifetime / 2

	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteStrictMode
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}, nil
}

// LoadState returns the navigation state held by the session. A new or
// expired session yields the initial state.
func (sm *SessionManager) LoadState(ctx context.Context) navigation.State {
	state := navigation.State{Page: navigation.Page(sm.GetString(ctx, SessionKeyPage))}
	if state.Page == "" {
		state.Page = navigation.PageHome
	}

	if id := sm.GetInt(ctx, SessionKeyUserID); id > 0 {
		state.User = &navigation.Identity{
			UserID:   uint(id),
			Username: sm.GetString(ctx, SessionKeyUsername),
		}
	}

	return state.Normalize()
}

// SaveState writes the state into the session. The token is renewed
// whenever the logged-in user changes, which covers both login and logout.
func (sm *SessionManager) SaveState(ctx context.Context, state navigation.State) error {
	var nextID uint
	if state.User != nil {
		nextID = state.User.UserID
	}
	if uint(sm.GetInt(ctx, SessionKeyUserID)) != nextID {
		if err := sm.RenewToken(ctx); err != nil {
			return err
		}
	}

	sm.Put(ctx, SessionKeyPage, string(state.Page))
	if state.User != nil {
		// Stored as int to match GetInt() retrieval
		sm.Put(ctx, SessionKeyUserID, int(state.User.UserID))
		sm.Put(ctx, SessionKeyUsername, state.User.Username)
	} else {
		sm.Remove(ctx, SessionKeyUserID)
		sm.Remove(ctx, SessionKeyUsername)
	}
	return nil
}

// Flash stores a message to be shown on the next rendered screen.
func (sm *SessionManager) Flash(ctx context.Context, message string) {
	sm.Put(ctx, SessionKeyFlash, message)
}

// PopFlash returns the pending flash message and clears it.
func (sm *SessionManager) PopFlash(ctx context.Context) string {
	return sm.PopString(ctx, SessionKeyFlash)
}
