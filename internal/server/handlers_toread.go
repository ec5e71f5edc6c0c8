package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/booklog-plus/internal/server/middleware"
	"github.com/jonathan/booklog-plus/internal/types"
)

// handleListToRead returns the user's to-read list, oldest first.
// GET /to-read
func (s *Server) handleListToRead(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	entries, err := s.store.ListToReadEntries(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list to-read entries")
		return
	}

	items := make([]types.ToReadItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, types.ToReadItem{
			ID:         e.ID,
			BookName:   e.BookName,
			AuthorName: e.AuthorName,
			CreatedAt:  e.CreatedAt,
		})
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"to_read": items})
}

// handleAddToRead adds a book to the user's to-read list.
// POST /to-read/add
func (s *Server) handleAddToRead(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.AddToReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	id, err := s.store.SaveToReadEntry(r.Context(), userID, req.BookName, req.AuthorName)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save to-read entry")
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{
		"id":      id.String(),
		"message": "Book added to to-read list",
	})
}

// handleDeleteToRead removes a to-read entry by title and author.
// DELETE /to-read/delete
func (s *Server) handleDeleteToRead(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.AddToReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	deleted, err := s.store.DeleteToReadEntry(r.Context(), userID, req.BookName, req.AuthorName)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to delete to-read entry")
		return
	}
	if !deleted {
		s.errorResponse(w, http.StatusNotFound, "To-read entry not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "To-read entry deleted"})
}
