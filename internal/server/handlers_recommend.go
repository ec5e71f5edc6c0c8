package server

import (
	"encoding/json"
	"log"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/booklog-plus/internal/db"
	"github.com/jonathan/booklog-plus/internal/recs"
	"github.com/jonathan/booklog-plus/internal/server/middleware"
)

// handleRecommend generates recommendations from the user's reading history.
// The history and to-read list are fetched concurrently; both feed the prompt.
// A terminal generation failure surfaces as 502, never as an empty result.
// GET /recommend
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var logs []db.BookLog
	var toRead []db.ToReadEntry

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		logs, err = s.store.ListBookEntries(ctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		toRead, err = s.store.ListToReadEntries(ctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Printf("[server] failed to load shelves for recommendation: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load reading history")
		return
	}

	if len(logs) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "Log at least one book before asking for recommendations")
		return
	}

	read := make([]recs.ReadEntry, 0, len(logs))
	for _, bl := range logs {
		read = append(read, recs.ReadEntry{
			Title:      bl.BookName,
			Author:     bl.AuthorName,
			Reflection: bl.Reflection,
		})
	}
	planned := make([]recs.PlannedEntry, 0, len(toRead))
	for _, e := range toRead {
		planned = append(planned, recs.PlannedEntry{
			Title:  e.BookName,
			Author: e.AuthorName,
		})
	}

	set, err := s.recommender.Recommend(r.Context(), read, planned)
	if err != nil {
		log.Printf("[server] recommendation failed: %v", err)
		s.errorResponse(w, recommendationStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"recommendations": set})
}

// handleRecommendFromQuiz generates recommendations from the user's saved
// quiz answers instead of their reading history.
// GET /recommend/quiz
func (s *Server) handleRecommendFromQuiz(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	saved, err := s.store.GetQuizResponse(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load quiz answers")
		return
	}
	if saved == nil {
		s.errorResponse(w, http.StatusNotFound, "Take the reading quiz before asking for quiz recommendations")
		return
	}

	profile := recs.QuizProfile{
		Genres:              saved.Genres,
		ReadingTime:         saved.ReadingTime,
		ContentPreference:   saved.ContentPreference,
		Motivation:          saved.Motivation,
		FavoriteMovieGenres: saved.FavoriteMovies,
		LearningInterests:   saved.LearningInterests,
	}

	set, err := s.recommender.RecommendFromQuiz(r.Context(), profile)
	if err != nil {
		log.Printf("[server] quiz recommendation failed: %v", err)
		s.errorResponse(w, recommendationStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"recommendations": set})
}

// handleSaveQuiz stores the user's reading-personality quiz answers,
// replacing any previous submission.
// POST /quiz
func (s *Server) handleSaveQuiz(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var profile recs.QuizProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := profile.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	resp := db.QuizResponse{
		UserID:            userID,
		Genres:            profile.Genres,
		ReadingTime:       profile.ReadingTime,
		ContentPreference: profile.ContentPreference,
		Motivation:        profile.Motivation,
		FavoriteMovies:    profile.FavoriteMovieGenres,
		LearningInterests: profile.LearningInterests,
	}
	if err := s.store.UpsertQuizResponse(r.Context(), userID, resp); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save quiz answers")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Quiz answers saved"})
}
