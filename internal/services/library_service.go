package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mrlokans/library-manager/internal/database/users"
	"github.com/mrlokans/library-manager/internal/entities"
	"github.com/mrlokans/library-manager/internal/validation"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// LibraryService validates user input and hands it to the stores. Both the
// web screens and the terminal screens go through it.
type LibraryService struct {
	users     UserStore
	books     BookStore
	validator *validation.Validator
	logger    *zap.Logger
}

// NewLibraryService creates a new LibraryService. A nil logger disables logging.
func NewLibraryService(userStore UserStore, bookStore BookStore, logger *zap.Logger) *LibraryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LibraryService{
		users:     userStore,
		books:     bookStore,
		validator: validation.New(),
		logger:    logger,
	}
}

// Register validates the input and stores a new user. Nothing is stored when
// validation fails.
func (s *LibraryService) Register(ctx context.Context, in validation.Registration) (*entities.User, error) {
	if err := s.validator.ValidateRegistration(in); err != nil {
		return nil, err
	}

	user, err := s.users.Register(ctx, in.Username, in.Email, in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("user registered", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Login returns the user with exactly this email and password. Unknown emails
// and wrong passwords both yield ErrInvalidCredentials.
func (s *LibraryService) Login(ctx context.Context, email, password string) (*entities.User, error) {
	user, err := s.users.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			s.logger.Info("login rejected")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	s.logger.Info("user logged in", zap.Uint("user_id", user.ID))
	return user, nil
}

// CurrentUser reloads a user remembered by a session.
func (s *LibraryService) CurrentUser(ctx context.Context, id uint) (*entities.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %d: %w", id, err)
	}
	return user, nil
}

// AddBook validates the input and stores it as a book owned by ownerID.
func (s *LibraryService) AddBook(ctx context.Context, ownerID uint, in validation.BookInput) (*entities.Book, error) {
	if err := s.validator.ValidateBook(in); err != nil {
		return nil, err
	}

	book := &entities.Book{
		OwnerID: ownerID,
		Title:   in.Title,
		Author:  in.Author,
		Genre:   in.Genre,
		Status:  in.Status,
	}
	if err := s.books.AddBook(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to add book: %w", err)
	}

	s.logger.Info("book added", zap.Uint("user_id", ownerID), zap.Uint("book_id", book.ID))
	return book, nil
}

// ListBooks returns the owner's books in insertion order.
func (s *LibraryService) ListBooks(ctx context.Context, ownerID uint) ([]entities.Book, error) {
	books, err := s.books.ListBooks(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}
