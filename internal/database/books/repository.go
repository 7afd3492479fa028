// Package books provides the catalog store.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	books, err := repo.ListBooks(ctx, ownerID)
package books

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/library-manager/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddBook inserts the book and sets its ID. The owner reference is not
// checked here; the table declares the foreign key.
func (r *Repository) AddBook(ctx context.Context, book *entities.Book) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(book).Error; err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}
	return nil
}

// ListBooks returns every book owned by ownerID in insertion order.
func (r *Repository) ListBooks(ctx context.Context, ownerID uint) ([]entities.Book, error) {
	books := make([]entities.Book, 0)
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}
