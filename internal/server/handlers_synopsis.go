package server

import (
	"net/http"

	"github.com/jonathan/booklog-plus/internal/server/middleware"
	"github.com/jonathan/booklog-plus/internal/synopsis"
)

// handleSynopsis returns a short synopsis for one book. The generator never
// fails from the caller's point of view, so this endpoint always answers 200
// once the query parameters check out.
// GET /synopsis?title=...&author=...&source=history|future
func (s *Server) handleSynopsis(w http.ResponseWriter, r *http.Request) {
	if _, err := middleware.GetUserID(r); err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	title := r.URL.Query().Get("title")
	author := r.URL.Query().Get("author")
	if title == "" || author == "" {
		s.errorResponse(w, http.StatusBadRequest, "Both title and author are required")
		return
	}

	source := synopsis.SourceHistory
	switch r.URL.Query().Get("source") {
	case "", "history":
		// default
	case "future":
		source = synopsis.SourceFuture
	default:
		s.errorResponse(w, http.StatusBadRequest, "source must be either 'history' or 'future'")
		return
	}

	text := s.synopses.Synopsis(r.Context(), title, author, source)

	s.jsonResponse(w, http.StatusOK, map[string]string{
		"title":    title,
		"author":   author,
		"synopsis": text,
	})
}
