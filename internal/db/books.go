package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// SaveBookEntry inserts a finished book with its reflection and returns the
// new entry's ID.
func (db *DB) SaveBookEntry(ctx context.Context, userID uuid.UUID, bookName, authorName, reflection string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO book_logs (user_id, book_name, author_name, reflection)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		userID, bookName, authorName, reflection,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save book entry: %w", err)
	}
	return id, nil
}

// ListBookEntries retrieves all finished books for a user, oldest first.
func (db *DB) ListBookEntries(ctx context.Context, userID uuid.UUID) ([]BookLog, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, book_name, author_name, reflection, created_at
		 FROM book_logs WHERE user_id = $1 ORDER BY created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list book entries: %w", err)
	}
	defer rows.Close()

	var entries []BookLog
	for rows.Next() {
		var entry BookLog
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.BookName, &entry.AuthorName, &entry.Reflection, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan book entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// DeleteBookEntry removes a finished book by its details, scoped to the
// owning user. Returns false if nothing matched.
func (db *DB) DeleteBookEntry(ctx context.Context, userID uuid.UUID, bookName, authorName string) (bool, error) {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM book_logs WHERE user_id = $1 AND book_name = $2 AND author_name = $3`,
		userID, bookName, authorName,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete book entry: %w", err)
	}
	return result.RowsAffected() > 0, nil
}
