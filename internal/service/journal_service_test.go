package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soulsync/internal/domain"
	"soulsync/internal/reflection"
)

type fakeProvider struct {
	reply   string
	err     error
	entries []string
}

func (f *fakeProvider) Reflect(ctx context.Context, entry string) (string, error) {
	f.entries = append(f.entries, entry)
	return f.reply, f.err
}

func TestAddEntryTrimsContent(t *testing.T) {
	store := newMemStore()
	store.addUser("ana")
	svc := NewJournalService(store, &fakeProvider{})
	stamp := time.Date(2025, 2, 1, 21, 0, 0, 0, time.UTC)
	svc.(*journalService).now = func() time.Time { return stamp }

	entry, err := svc.AddEntry(context.Background(), "ana", "  rough day, better evening  ")
	require.NoError(t, err)
	assert.Equal(t, "rough day, better evening", entry.Content)
	assert.Equal(t, stamp.Format(domain.TimestampFormat), entry.Timestamp)
	assert.Len(t, store.users["ana"].Journals, 1)
}

func TestAddEntryEmptyContentRejected(t *testing.T) {
	store := newMemStore()
	store.addUser("ana")
	svc := NewJournalService(store, &fakeProvider{})

	_, err := svc.AddEntry(context.Background(), "ana", "   \n\t ")
	assert.ErrorIs(t, err, ErrEmptyContent)
	assert.Empty(t, store.users["ana"].Journals)
}

func TestListEntriesMostRecentFirst(t *testing.T) {
	store := newMemStore()
	record := store.addUser("ana")
	base := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	for i, content := range []string{"oldest", "middle", "newest"} {
		record.Journals = append(record.Journals, domain.JournalEntry{
			Timestamp: base.Add(time.Duration(i) * time.Hour).Format(domain.TimestampFormat),
			Content:   content,
		})
	}
	svc := NewJournalService(store, &fakeProvider{})

	entries, err := svc.ListEntries(context.Background(), "ana", 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "newest", entries[0].Content)
	assert.Equal(t, "middle", entries[1].Content)

	all, err := svc.ListEntries(context.Background(), "ana", 99)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestListEntriesOrdersMixedTimestampFormats(t *testing.T) {
	store := newMemStore()
	record := store.addUser("ana")
	// Zone-less microsecond stamps written by earlier versions of the app
	// mixed with RFC 3339 ones must still order chronologically.
	record.Journals = []domain.JournalEntry{
		{Timestamp: "2025-02-01T09:00:01Z", Content: "second"},
		{Timestamp: "2025-02-01T09:00:00.500000", Content: "first"},
		{Timestamp: "2025-02-01T09:00:02.250000", Content: "third"},
	}
	svc := NewJournalService(store, &fakeProvider{})

	entries, err := svc.ListEntries(context.Background(), "ana", 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "third", entries[0].Content)
	assert.Equal(t, "second", entries[1].Content)
	assert.Equal(t, "first", entries[2].Content)
}

func TestPromptReturnsOneOfTheFixedPrompts(t *testing.T) {
	svc := NewJournalService(newMemStore(), &fakeProvider{})

	prompt := svc.Prompt()
	assert.Contains(t, writingPrompts, prompt)
}

func TestReflectDelegatesToProvider(t *testing.T) {
	provider := &fakeProvider{reply: "that sounds like a full day"}
	svc := NewJournalService(newMemStore(), provider)

	text, err := svc.Reflect(context.Background(), "today was long")
	require.NoError(t, err)
	assert.Equal(t, "that sounds like a full day", text)
	require.Len(t, provider.entries, 1)
	assert.Equal(t, "today was long", provider.entries[0])
}

func TestReflectEmptyContentRejectedBeforeProvider(t *testing.T) {
	provider := &fakeProvider{}
	svc := NewJournalService(newMemStore(), provider)

	_, err := svc.Reflect(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyContent)
	assert.Empty(t, provider.entries)
}

func TestReflectPropagatesProviderErrors(t *testing.T) {
	provider := &fakeProvider{err: reflection.ErrMissingCredential}
	svc := NewJournalService(newMemStore(), provider)

	_, err := svc.Reflect(context.Background(), "today was long")
	assert.ErrorIs(t, err, reflection.ErrMissingCredential)
}
