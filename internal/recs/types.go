// Package recs implements the book recommendation engine: it validates
// reading-history records, builds deterministic prompts, calls the
// generative model, and enforces a strict output contract on the response.
package recs

// RecommendationCount is the number of recommendations a valid model
// response must contain. Responses of any other length are rejected.
const RecommendationCount = 3

// ReadEntry is a book the user has finished and reflected on. Entries are
// built from raw persistence-layer records at the start of a request and
// discarded after prompt construction.
type ReadEntry struct {
	Title      string `json:"book_name" validate:"required,min=1"`
	Author     string `json:"author_name" validate:"required,min=1"`
	Reflection string `json:"reflection" validate:"required,min=1"`
}

// PlannedEntry is a book on the user's to-read list. No reflection field.
type PlannedEntry struct {
	Title  string `json:"book_name" validate:"required,min=1"`
	Author string `json:"author_name" validate:"required,min=1"`
}

// QuizProfile holds the answers of the reading-personality quiz. All six
// fields are required for quiz-based prompt construction.
type QuizProfile struct {
	Genres              []string `json:"genres" validate:"required,min=1,dive,required"`
	ReadingTime         string   `json:"reading_time" validate:"required"`
	ContentPreference   string   `json:"content_preference" validate:"required"`
	Motivation          string   `json:"motivation" validate:"required"`
	FavoriteMovieGenres []string `json:"favorite_movies" validate:"required,min=1,dive,required"`
	LearningInterests   []string `json:"learning_interests" validate:"required,min=1,dive,required"`
}

// Recommendation is a single recommended book as returned to the caller.
// Link, if present, always satisfies IsValidBookLink; invalid links are
// stripped during parsing rather than rejecting the recommendation.
type Recommendation struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Link        string `json:"link,omitempty"`
}

// RecommendationSet is the ordered result of one generation request.
// A set produced by the Generator always has exactly RecommendationCount
// elements; partial sets are never returned.
type RecommendationSet []Recommendation
