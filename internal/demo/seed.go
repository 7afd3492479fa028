// Package demo fills a library with a demo user and public domain books, for
// trying out the front ends and for screenshots.
package demo

import (
	"context"
	"fmt"

	"github.com/mrlokans/library-manager/internal/entities"
	"github.com/mrlokans/library-manager/internal/validation"
)

// Credentials of the seeded account.
const (
	Username = "demo"
	Email    = "demo@example.com"
	Password = "demo"
)

type Library interface {
	Register(ctx context.Context, in validation.Registration) (*entities.User, error)
	AddBook(ctx context.Context, ownerID uint, in validation.BookInput) (*entities.Book, error)
}

// Books is the demo library, spread over several genres and all statuses.
var Books = []validation.BookInput{
	{Title: "Meditations", Author: "Marcus Aurelius", Genre: "Philosophy", Status: entities.BookStatusRead},
	{Title: "Letters from a Stoic", Author: "Seneca", Genre: "Philosophy", Status: entities.BookStatusReading},
	{Title: "On the Origin of Species", Author: "Charles Darwin", Genre: "Science", Status: entities.BookStatusWishlist},
	{Title: "Pride and Prejudice", Author: "Jane Austen", Genre: "Fiction", Status: entities.BookStatusRead},
	{Title: "Moby-Dick", Author: "Herman Melville", Genre: "Fiction", Status: entities.BookStatusWishlist},
	{Title: "The Time Machine", Author: "H. G. Wells", Genre: "SciFi", Status: entities.BookStatusRead},
	{Title: "Frankenstein", Author: "Mary Shelley", Genre: "Fiction", Status: entities.BookStatusReading},
	{Title: "The War of the Worlds", Author: "H. G. Wells", Genre: "SciFi", Status: entities.BookStatusWishlist},
}

// Seed registers the demo user and adds every demo book to their library.
func Seed(ctx context.Context, library Library) (*entities.User, error) {
	user, err := library.Register(ctx, validation.Registration{
		Username: Username,
		Email:    Email,
		Password: Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register demo user: %w", err)
	}

	for _, book := range Books {
		if _, err := library.AddBook(ctx, user.ID, book); err != nil {
			return nil, fmt.Errorf("failed to add %q: %w", book.Title, err)
		}
	}
	return user, nil
}
