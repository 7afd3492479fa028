package services

import (
	"context"

	"github.com/mrlokans/library-manager/internal/entities"
)

// UserStore persists registered users and looks them up by credentials.
type UserStore interface {
	Register(ctx context.Context, username, email, password string) (*entities.User, error)
	Authenticate(ctx context.Context, email, password string) (*entities.User, error)
	GetUserByID(ctx context.Context, id uint) (*entities.User, error)
}

// BookStore persists books per owner.
type BookStore interface {
	AddBook(ctx context.Context, book *entities.Book) error
	ListBooks(ctx context.Context, ownerID uint) ([]entities.Book, error)
}
