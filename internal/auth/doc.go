// Package auth keeps the web front end's navigation state and identity in a
// server-side session, and protects the single form endpoint against CSRF.
//
// Sessions are stored in the library database through scs's sqlite3store.
// Each session holds the current screen and, once logged in, the user's ID
// and username:
//
//	page      string  one of the navigation pages
//	user_id   int     0 when logged out
//	username  string
//	flash     string  one-shot message shown after a redirect
//
// # Configuration
//
//	SESSION_SECRET=<hex>          # Keys CSRF tokens; auto-generated if empty
//	SESSION_LIFETIME=24h          # Session duration
//	SESSION_SECURE_COOKIES=true   # HTTPS-only cookies
//
// # Usage
//
//	sm, err := auth.NewSessionManager(sqlDB, cfg.Session)
//	router.Use(sm.SessionLoadSave())
//	router.Use(auth.NewMiddleware(libraryService, sm, logger).Handler())
//
// Read the state in handlers:
//
//	state := auth.GetState(c)
package auth
