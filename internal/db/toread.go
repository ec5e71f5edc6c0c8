package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// SaveToReadEntry adds a book to the user's to-read list and returns the
// new entry's ID.
func (db *DB) SaveToReadEntry(ctx context.Context, userID uuid.UUID, bookName, authorName string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO to_read (user_id, book_name, author_name)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		userID, bookName, authorName,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save to-read entry: %w", err)
	}
	return id, nil
}

// ListToReadEntries retrieves the user's to-read list, oldest first.
func (db *DB) ListToReadEntries(ctx context.Context, userID uuid.UUID) ([]ToReadEntry, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, book_name, author_name, created_at
		 FROM to_read WHERE user_id = $1 ORDER BY created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list to-read entries: %w", err)
	}
	defer rows.Close()

	var entries []ToReadEntry
	for rows.Next() {
		var entry ToReadEntry
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.BookName, &entry.AuthorName, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan to-read entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// DeleteToReadEntry removes a to-read entry by its details, scoped to the
// owning user. Returns false if nothing matched.
func (db *DB) DeleteToReadEntry(ctx context.Context, userID uuid.UUID, bookName, authorName string) (bool, error) {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM to_read WHERE user_id = $1 AND book_name = $2 AND author_name = $3`,
		userID, bookName, authorName,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete to-read entry: %w", err)
	}
	return result.RowsAffected() > 0, nil
}
