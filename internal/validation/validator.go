// Package validation checks user input before it reaches the stores, using
// the validator/v10 library.
package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/mrlokans/library-manager/internal/entities"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrMissingFields = errors.New("all fields are required")
)

// emailPattern is anchored at the start only. Anything after a valid-looking
// address is accepted.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// Registration is the input of the register screen.
type Registration struct {
	Username string `form:"username" validate:"required"`
	Email    string `form:"email" validate:"library_email"`
	Password string `form:"password" validate:"library_password"`
}

// BookInput is the input of the add-book screen.
type BookInput struct {
	Title  string              `form:"title" validate:"required"`
	Author string              `form:"author" validate:"required"`
	Genre  string              `form:"genre" validate:"required"`
	Status entities.BookStatus `form:"status" validate:"library_status"`
}

func ValidateEmail(s string) bool {
	return emailPattern.MatchString(s)
}

func ValidatePassword(s string) bool {
	return len(s) > 0
}

// Validator wraps go-playground/validator with the library's custom tags.
type Validator struct {
	v *validator.Validate
}

// New creates a validator with the library_email, library_password and
// library_status tags registered.
func New() *Validator {
	v := validator.New()

	must(v.RegisterValidation("library_email", func(fl validator.FieldLevel) bool {
		return ValidateEmail(fl.Field().String())
	}))
	must(v.RegisterValidation("library_password", func(fl validator.FieldLevel) bool {
		return ValidatePassword(fl.Field().String())
	}))
	must(v.RegisterValidation("library_status", func(fl validator.FieldLevel) bool {
		return entities.BookStatus(fl.Field().String()).Valid()
	}))

	return &Validator{v: v}
}

// ValidateRegistration reports ErrInvalidInput for any failing field.
func (v *Validator) ValidateRegistration(r Registration) error {
	if err := v.v.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// ValidateBook reports ErrMissingFields for any failing field.
func (v *Validator) ValidateBook(b BookInput) error {
	if err := v.v.Struct(b); err != nil {
		return fmt.Errorf("%w: %v", ErrMissingFields, err)
	}
	return nil
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
