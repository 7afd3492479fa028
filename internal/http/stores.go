package http

import (
	"context"

	"github.com/mrlokans/library-manager/internal/entities"
	"github.com/mrlokans/library-manager/internal/validation"
)

// Library is everything the screens need from the service layer.
// *services.LibraryService satisfies it.
type Library interface {
	Register(ctx context.Context, in validation.Registration) (*entities.User, error)
	Login(ctx context.Context, email, password string) (*entities.User, error)
	CurrentUser(ctx context.Context, id uint) (*entities.User, error)
	AddBook(ctx context.Context, ownerID uint, in validation.BookInput) (*entities.Book, error)
	ListBooks(ctx context.Context, ownerID uint) ([]entities.Book, error)
}

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
