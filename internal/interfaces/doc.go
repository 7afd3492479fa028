// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - UserStore: Register and authenticate users (internal/services/interfaces.go)
//   - BookStore: Add and list books per owner (internal/services/interfaces.go)
//   - Pinger: Database reachability for /health (internal/http/stores.go)
//
// ## Front End Interfaces
//
//   - http.Library: What the web screens need (internal/http/stores.go)
//   - tui.Library: What the terminal screens need (internal/tui/model.go)
//   - auth.UserLookup: Reloading the session's user (internal/auth/middleware.go)
//
// All of them are satisfied by *services.LibraryService or the GORM
// repositories; front ends never talk to the repositories directly.
//
// # Adding a New Screen
//
//  1. Add the page and the actions leading to and from it in
//     internal/navigation, together with their Transition edges.
//
//  2. Web: add a handler to ScreenController.handlers and a template named
//     after the page in internal/http/templates/.
//
//  3. Terminal: add its fields to pageFields and its buttons to
//     Model.buttons in internal/tui.
//
// # Adding a New Database Domain
//
//  1. Create sub-package: internal/database/<domain>/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Implement interface methods, passing ctx through db.WithContext
//
//  4. Add compile-time check:
//
//     var _ services.SomeStore = (*Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the checks in this repository.
package interfaces
