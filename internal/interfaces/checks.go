package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/library-manager/internal/auth"
	"github.com/mrlokans/library-manager/internal/database"
	"github.com/mrlokans/library-manager/internal/database/books"
	"github.com/mrlokans/library-manager/internal/database/users"
	"github.com/mrlokans/library-manager/internal/demo"
	"github.com/mrlokans/library-manager/internal/http"
	"github.com/mrlokans/library-manager/internal/services"
	"github.com/mrlokans/library-manager/internal/tui"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// UserStore implementations
var _ services.UserStore = (*users.Repository)(nil)

// BookStore implementations
var _ services.BookStore = (*books.Repository)(nil)

// Pinger implementations
var _ http.Pinger = (*database.Database)(nil)

// =============================================================================
// Service Layer
// =============================================================================

// The library service backs both front ends, the session middleware and the
// demo seeder.
var _ http.Library = (*services.LibraryService)(nil)
var _ tui.Library = (*services.LibraryService)(nil)
var _ auth.UserLookup = (*services.LibraryService)(nil)
var _ demo.Library = (*services.LibraryService)(nil)
