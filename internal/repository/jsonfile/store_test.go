package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soulsync/internal/domain"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	return New(path, nil), path
}

func TestLoadAbsentFileReturnsEmptyMapping(t *testing.T) {
	store, _ := newTestStore(t)

	users, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.NotNil(t, users)
}

func TestLoadMalformedDocumentReturnsEmptyMapping(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	users, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestLoadBackfillsMissingSequences(t *testing.T) {
	store, path := newTestStore(t)
	doc := `{"ana": {"password": "hash", "email": "ana@example.com"}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	users, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Contains(t, users, "ana")

	record := users["ana"]
	assert.Equal(t, "hash", record.PasswordHash)
	assert.NotNil(t, record.Goals)
	assert.NotNil(t, record.Moods)
	assert.NotNil(t, record.Journals)
	assert.Empty(t, record.Goals)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	due := "2025-03-01"
	users := map[string]*domain.UserRecord{
		"ana": {
			PasswordHash: "hash",
			Email:        "ana@example.com",
			Goals: []domain.Goal{
				{ID: "g1", Title: "Run 5k", DueDate: &due, Status: domain.GoalStatusInProgress},
			},
			Moods: []domain.MoodEntry{
				{Timestamp: "2025-02-01T09:00:00Z", MoodText: domain.MoodHappy, MoodEmoji: "😀"},
			},
			Journals: []domain.JournalEntry{
				{Timestamp: "2025-02-01T21:00:00Z", Content: "good day"},
			},
		},
	}

	require.NoError(t, store.Save(ctx, users))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, users, loaded)

	// Saving what was loaded must not change the document content.
	require.NoError(t, store.Save(ctx, loaded))
	again, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, loaded, again)
}

func TestSaveCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "users.json")
	store := New(path, nil)

	require.NoError(t, store.Save(context.Background(), map[string]*domain.UserRecord{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "{}", string(data))
}

func TestDocumentReturnsRawBytes(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	data, err := store.Document()
	require.NoError(t, err)
	assert.JSONEq(t, "{}", string(data))

	require.NoError(t, store.Save(ctx, map[string]*domain.UserRecord{
		"bo": {PasswordHash: "h", Goals: []domain.Goal{}, Moods: []domain.MoodEntry{}, Journals: []domain.JournalEntry{}},
	}))

	data, err = store.Document()
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "bo")
}
