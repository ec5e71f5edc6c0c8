package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UpsertQuizResponse saves a user's taste-quiz answers, replacing any
// previous submission.
func (db *DB) UpsertQuizResponse(ctx context.Context, userID uuid.UUID, resp QuizResponse) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO quiz_responses (user_id, genres, reading_time, content_preference, motivation, favorite_movies, learning_interests, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		 ON CONFLICT (user_id) DO UPDATE SET
		   genres = EXCLUDED.genres,
		   reading_time = EXCLUDED.reading_time,
		   content_preference = EXCLUDED.content_preference,
		   motivation = EXCLUDED.motivation,
		   favorite_movies = EXCLUDED.favorite_movies,
		   learning_interests = EXCLUDED.learning_interests,
		   updated_at = NOW()`,
		userID, resp.Genres, resp.ReadingTime, resp.ContentPreference,
		resp.Motivation, resp.FavoriteMovies, resp.LearningInterests,
	)
	if err != nil {
		return fmt.Errorf("failed to save quiz response: %w", err)
	}
	return nil
}

// GetQuizResponse retrieves a user's saved quiz answers. Returns nil, nil
// when the user has not taken the quiz.
func (db *DB) GetQuizResponse(ctx context.Context, userID uuid.UUID) (*QuizResponse, error) {
	var resp QuizResponse
	err := db.pool.QueryRow(ctx,
		`SELECT user_id, genres, reading_time, content_preference, motivation, favorite_movies, learning_interests, updated_at
		 FROM quiz_responses WHERE user_id = $1`,
		userID,
	).Scan(&resp.UserID, &resp.Genres, &resp.ReadingTime, &resp.ContentPreference,
		&resp.Motivation, &resp.FavoriteMovies, &resp.LearningInterests, &resp.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz response: %w", err)
	}
	return &resp, nil
}
