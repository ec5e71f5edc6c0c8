package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleAddBook(t *testing.T) {
	s, store, _, _ := newTestServer()
	userID := uuid.New()

	body := `{"book_name":"Dune","author_name":"Frank Herbert","reflection":"the cost of prophecy"}`
	req := authedRequest(http.MethodPost, "/add", userID, body)
	w := httptest.NewRecorder()

	s.handleAddBook(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, store.books, 1)
	assert.Equal(t, "Dune", store.books[0].BookName)
	assert.Equal(t, userID, store.books[0].UserID)
}

func TestHandleAddBook_InvalidBody(t *testing.T) {
	s, store, _, _ := newTestServer()

	req := authedRequest(http.MethodPost, "/add", uuid.New(), `not json`)
	w := httptest.NewRecorder()

	s.handleAddBook(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.books)
}

func TestHandleAddBook_MissingFields(t *testing.T) {
	s, store, _, _ := newTestServer()

	tests := []struct {
		name string
		body string
	}{
		{name: "missing reflection", body: `{"book_name":"Dune","author_name":"Frank Herbert"}`},
		{name: "missing author", body: `{"book_name":"Dune","reflection":"x"}`},
		{name: "empty title", body: `{"book_name":"","author_name":"Frank Herbert","reflection":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := authedRequest(http.MethodPost, "/add", uuid.New(), tt.body)
			w := httptest.NewRecorder()

			s.handleAddBook(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, store.books)
		})
	}
}

func TestHandleAddBook_Unauthenticated(t *testing.T) {
	s, _, _, _ := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/add", nil)
	w := httptest.NewRecorder()

	s.handleAddBook(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleListBooks(t *testing.T) {
	s, store, _, _ := newTestServer()
	userID := uuid.New()

	_, err := store.SaveBookEntry(t.Context(), userID, "Dune", "Frank Herbert", "prophecy")
	require.NoError(t, err)
	_, err = store.SaveBookEntry(t.Context(), userID, "Emma", "Jane Austen", "matchmaking gone wrong")
	require.NoError(t, err)

	req := authedRequest(http.MethodGet, "/books", userID, "")
	w := httptest.NewRecorder()

	s.handleListBooks(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Books []struct {
			BookName   string `json:"book_name"`
			AuthorName string `json:"author_name"`
		} `json:"books"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Books, 2)
	assert.Equal(t, "Dune", resp.Books[0].BookName)
	assert.Equal(t, "Jane Austen", resp.Books[1].AuthorName)
}

func TestHandleListBooks_Empty(t *testing.T) {
	s, _, _, _ := newTestServer()

	req := authedRequest(http.MethodGet, "/books", uuid.New(), "")
	w := httptest.NewRecorder()

	s.handleListBooks(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	// Empty shelf serializes as an empty array, not null.
	assert.Contains(t, w.Body.String(), `"books":[]`)
}

func TestHandleDeleteBook(t *testing.T) {
	s, store, _, _ := newTestServer()
	userID := uuid.New()

	_, err := store.SaveBookEntry(t.Context(), userID, "Dune", "Frank Herbert", "prophecy")
	require.NoError(t, err)

	body := `{"book_name":"Dune","author_name":"Frank Herbert"}`
	req := authedRequest(http.MethodDelete, "/books/delete", userID, body)
	w := httptest.NewRecorder()

	s.handleDeleteBook(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.books)
}

func TestHandleDeleteBook_NotFound(t *testing.T) {
	s, _, _, _ := newTestServer()

	body := `{"book_name":"Missing","author_name":"Nobody"}`
	req := authedRequest(http.MethodDelete, "/books/delete", uuid.New(), body)
	w := httptest.NewRecorder()

	s.handleDeleteBook(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
