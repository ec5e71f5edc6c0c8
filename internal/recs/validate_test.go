package recs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterReadEntries_ValidUnchanged(t *testing.T) {
	entries := []ReadEntry{
		{Title: "Dune", Author: "Frank Herbert", Reflection: "ecology and power"},
		{Title: "1984", Author: "George Orwell", Reflection: "surveillance"},
	}

	filtered := FilterReadEntries(entries)
	assert.Equal(t, entries, filtered)

	// Filtering is idempotent on already-valid records.
	assert.Equal(t, filtered, FilterReadEntries(filtered))
}

func TestFilterReadEntries_DropsInvalid(t *testing.T) {
	entries := []ReadEntry{
		{Title: "Dune", Author: "Frank Herbert", Reflection: "ecology"},
		{Title: "", Author: "Nobody", Reflection: "missing title"},
		{Title: "No Reflection", Author: "Someone", Reflection: ""},
		{Title: "1984", Author: "George Orwell", Reflection: "surveillance"},
	}

	filtered := FilterReadEntries(entries)
	require.Len(t, filtered, 2)
	assert.Equal(t, "Dune", filtered[0].Title)
	assert.Equal(t, "1984", filtered[1].Title)
}

func TestFilterReadEntries_AllInvalid(t *testing.T) {
	entries := []ReadEntry{
		{Title: "", Author: "", Reflection: ""},
	}
	filtered := FilterReadEntries(entries)
	assert.Empty(t, filtered)
}

func TestFilterPlannedEntries(t *testing.T) {
	entries := []PlannedEntry{
		{Title: "Hyperion", Author: "Dan Simmons"},
		{Title: "", Author: "Anonymous"},
		{Title: "Orphaned", Author: ""},
	}

	filtered := FilterPlannedEntries(entries)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Hyperion", filtered[0].Title)
}

func TestQuizProfileValidate(t *testing.T) {
	valid := QuizProfile{
		Genres:              []string{"fantasy"},
		ReadingTime:         "evenings",
		ContentPreference:   "balanced",
		Motivation:          "entertainment",
		FavoriteMovieGenres: []string{"drama"},
		LearningInterests:   []string{"philosophy"},
	}
	assert.NoError(t, valid.Validate())

	missingGenres := valid
	missingGenres.Genres = nil
	assert.Error(t, missingGenres.Validate())

	emptyMotivation := valid
	emptyMotivation.Motivation = ""
	assert.Error(t, emptyMotivation.Validate())

	emptyGenreElement := valid
	emptyGenreElement.Genres = []string{"fantasy", ""}
	assert.Error(t, emptyGenreElement.Validate())
}
