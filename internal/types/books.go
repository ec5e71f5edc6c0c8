package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// AddBookRequest represents the request to log a finished book.
type AddBookRequest struct {
	BookName   string `json:"book_name" validate:"required,min=1"`
	AuthorName string `json:"author_name" validate:"required,min=1"`
	Reflection string `json:"reflection" validate:"required,min=1"`
}

// AddToReadRequest represents the request to add a book to the to-read list.
type AddToReadRequest struct {
	BookName   string `json:"book_name" validate:"required,min=1"`
	AuthorName string `json:"author_name" validate:"required,min=1"`
}

// BookEntry represents a logged book for API responses.
type BookEntry struct {
	ID         uuid.UUID `json:"id"`
	BookName   string    `json:"book_name"`
	AuthorName string    `json:"author_name"`
	Reflection string    `json:"reflection"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToReadItem represents a to-read entry for API responses.
type ToReadItem struct {
	ID         uuid.UUID `json:"id"`
	BookName   string    `json:"book_name"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// Validate validates the AddBookRequest using the validator.
func (r *AddBookRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the AddToReadRequest using the validator.
func (r *AddToReadRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
