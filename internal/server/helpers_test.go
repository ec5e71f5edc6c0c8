package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/booklog-plus/internal/config"
	"github.com/jonathan/booklog-plus/internal/db"
	"github.com/jonathan/booklog-plus/internal/recs"
	"github.com/jonathan/booklog-plus/internal/server/middleware"
	"github.com/jonathan/booklog-plus/internal/synopsis"
)

// fakeStore is an in-memory Store implementation for handler tests.
type fakeStore struct {
	books  []db.BookLog
	toRead []db.ToReadEntry
	quiz   *db.QuizResponse

	saveErr error
	listErr error
}

func (f *fakeStore) SaveBookEntry(_ context.Context, userID uuid.UUID, bookName, authorName, reflection string) (uuid.UUID, error) {
	if f.saveErr != nil {
		return uuid.Nil, f.saveErr
	}
	id := uuid.New()
	f.books = append(f.books, db.BookLog{
		ID:         id,
		UserID:     userID,
		BookName:   bookName,
		AuthorName: authorName,
		Reflection: reflection,
	})
	return id, nil
}

func (f *fakeStore) ListBookEntries(_ context.Context, _ uuid.UUID) ([]db.BookLog, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.books, nil
}

func (f *fakeStore) DeleteBookEntry(_ context.Context, _ uuid.UUID, bookName, authorName string) (bool, error) {
	for i, b := range f.books {
		if b.BookName == bookName && b.AuthorName == authorName {
			f.books = append(f.books[:i], f.books[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) SaveToReadEntry(_ context.Context, userID uuid.UUID, bookName, authorName string) (uuid.UUID, error) {
	if f.saveErr != nil {
		return uuid.Nil, f.saveErr
	}
	id := uuid.New()
	f.toRead = append(f.toRead, db.ToReadEntry{
		ID:         id,
		UserID:     userID,
		BookName:   bookName,
		AuthorName: authorName,
	})
	return id, nil
}

func (f *fakeStore) ListToReadEntries(_ context.Context, _ uuid.UUID) ([]db.ToReadEntry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.toRead, nil
}

func (f *fakeStore) DeleteToReadEntry(_ context.Context, _ uuid.UUID, bookName, authorName string) (bool, error) {
	for i, e := range f.toRead {
		if e.BookName == bookName && e.AuthorName == authorName {
			f.toRead = append(f.toRead[:i], f.toRead[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) UpsertQuizResponse(_ context.Context, userID uuid.UUID, resp db.QuizResponse) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	resp.UserID = userID
	f.quiz = &resp
	return nil
}

func (f *fakeStore) GetQuizResponse(_ context.Context, _ uuid.UUID) (*db.QuizResponse, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.quiz, nil
}

// stubRecommender returns a canned recommendation set or error.
type stubRecommender struct {
	set recs.RecommendationSet
	err error

	gotRead    []recs.ReadEntry
	gotPlanned []recs.PlannedEntry
	gotProfile *recs.QuizProfile
}

func (r *stubRecommender) Recommend(_ context.Context, read []recs.ReadEntry, planned []recs.PlannedEntry) (recs.RecommendationSet, error) {
	r.gotRead = read
	r.gotPlanned = planned
	if r.err != nil {
		return nil, r.err
	}
	return r.set, nil
}

func (r *stubRecommender) RecommendFromQuiz(_ context.Context, profile recs.QuizProfile) (recs.RecommendationSet, error) {
	r.gotProfile = &profile
	if r.err != nil {
		return nil, r.err
	}
	return r.set, nil
}

// stubSynopsist returns fixed text.
type stubSynopsist struct {
	text      string
	gotSource synopsis.Source
}

func (s *stubSynopsist) Synopsis(_ context.Context, _, _ string, source synopsis.Source) string {
	s.gotSource = source
	return s.text
}

func testRecommendationSet() recs.RecommendationSet {
	return recs.RecommendationSet{
		{Title: "Piranesi", Author: "Susanna Clarke", Description: "A labyrinth of halls and tides."},
		{Title: "The Dispossessed", Author: "Ursula K. Le Guin", Description: "Two worlds, one physicist."},
		{Title: "Stoner", Author: "John Williams", Description: "A quiet academic life, fully felt."},
	}
}

// newTestServer builds a Server wired to in-memory fakes.
func newTestServer() (*Server, *fakeStore, *stubRecommender, *stubSynopsist) {
	store := &fakeStore{}
	rec := &stubRecommender{set: testRecommendationSet()}
	syn := &stubSynopsist{text: "A short synopsis."}
	s := &Server{
		store:       store,
		recommender: rec,
		synopses:    syn,
	}
	return s, store, rec, syn
}

// testJWTConfig returns a JWT config usable without environment variables.
func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		Secret:          "test-secret-key",
		ExpirationHours: 24,
	}
}

// authedRequest builds a request whose context carries an authenticated user ID.
func authedRequest(method, target string, userID uuid.UUID, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	ctx := context.WithValue(req.Context(), middleware.UserIDKey(), userID)
	return req.WithContext(ctx)
}
