package db

import (
	"time"

	"github.com/google/uuid"
)

// BookLog is a finished book with the user's reflection.
type BookLog struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	BookName   string    `json:"book_name"`
	AuthorName string    `json:"author_name"`
	Reflection string    `json:"reflection"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToReadEntry is a book on the user's to-read list.
type ToReadEntry struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	BookName   string    `json:"book_name"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// User is an account record. PasswordHash never leaves this package's callers
// toward API responses.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	PasswordSet  bool      `json:"password_set"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// QuizResponse holds a user's reading-personality quiz answers. One row per
// user, replaced on retake.
type QuizResponse struct {
	UserID            uuid.UUID `json:"user_id"`
	Genres            []string  `json:"genres"`
	ReadingTime       string    `json:"reading_time"`
	ContentPreference string    `json:"content_preference"`
	Motivation        string    `json:"motivation"`
	FavoriteMovies    []string  `json:"favorite_movies"`
	LearningInterests []string  `json:"learning_interests"`
	UpdatedAt         time.Time `json:"updated_at"`
}
