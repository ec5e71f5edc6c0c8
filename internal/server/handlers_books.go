package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/booklog-plus/internal/server/middleware"
	"github.com/jonathan/booklog-plus/internal/types"
)

// handleAddBook logs a finished book with the user's reflection.
// POST /add
func (s *Server) handleAddBook(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.AddBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	id, err := s.store.SaveBookEntry(r.Context(), userID, req.BookName, req.AuthorName, req.Reflection)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save book entry")
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{
		"id":      id.String(),
		"message": "Book logged successfully",
	})
}

// handleListBooks returns the user's reading history, oldest first.
// GET /books
func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	logs, err := s.store.ListBookEntries(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list book entries")
		return
	}

	entries := make([]types.BookEntry, 0, len(logs))
	for _, bl := range logs {
		entries = append(entries, types.BookEntry{
			ID:         bl.ID,
			BookName:   bl.BookName,
			AuthorName: bl.AuthorName,
			Reflection: bl.Reflection,
			CreatedAt:  bl.CreatedAt,
		})
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"books": entries})
}

// handleDeleteBook removes a logged book by title and author.
// DELETE /books/delete
func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.AddToReadRequest // same shape: book_name + author_name
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	deleted, err := s.store.DeleteBookEntry(r.Context(), userID, req.BookName, req.AuthorName)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to delete book entry")
		return
	}
	if !deleted {
		s.errorResponse(w, http.StatusNotFound, "Book entry not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Book entry deleted"})
}
