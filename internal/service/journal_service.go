package service

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"strings"
	"time"

	"soulsync/internal/domain"
	"soulsync/internal/reflection"
	"soulsync/internal/repository"
)

// ErrEmptyContent is returned when a journal entry is empty after trimming.
var ErrEmptyContent = errors.New("journal entry cannot be empty")

// writingPrompts are offered to users staring at a blank page.
var writingPrompts = []string{
	"What's on your mind today?",
	"How are you truly feeling right now?",
	"What's one thing you're grateful for today?",
	"What challenged you today, and how did you overcome it?",
	"If you could tell your past self one thing, what would it be?",
	"What is one small victory you had today?",
	"What are you looking forward to tomorrow?",
}

// JournalService records and lists journal entries, and delegates AI
// reflections to the configured provider.
type JournalService interface {
	AddEntry(ctx context.Context, username, content string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, username string, limit int) ([]domain.JournalEntry, error)
	Prompt() string
	Reflect(ctx context.Context, content string) (string, error)
}

type journalService struct {
	store    repository.Store
	provider reflection.Provider
	now      func() time.Time
}

func NewJournalService(store repository.Store, provider reflection.Provider) JournalService {
	return &journalService{store: store, provider: provider, now: time.Now}
}

func (s *journalService) AddEntry(ctx context.Context, username, content string) (*domain.JournalEntry, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	users, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	record, ok := users[username]
	if !ok {
		return nil, ErrUserNotFound
	}

	entry := domain.JournalEntry{
		Timestamp: s.now().Format(domain.TimestampFormat),
		Content:   content,
	}
	record.Journals = append(record.Journals, entry)

	if err := s.store.Save(ctx, users); err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListEntries returns entries most recent first, truncated like ListMoods.
func (s *journalService) ListEntries(ctx context.Context, username string, limit int) ([]domain.JournalEntry, error) {
	users, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	record, ok := users[username]
	if !ok {
		return nil, ErrUserNotFound
	}

	entries := make([]domain.JournalEntry, len(record.Journals))
	copy(entries, record.Journals)
	sort.SliceStable(entries, func(i, j int) bool {
		return domain.TimestampAfter(entries[i].Timestamp, entries[j].Timestamp)
	})

	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return entries, nil
}

// Prompt returns a random writing prompt.
func (s *journalService) Prompt() string {
	return writingPrompts[rand.Intn(len(writingPrompts))]
}

// Reflect asks the AI provider for a short reflection on the given text.
func (s *journalService) Reflect(ctx context.Context, content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrEmptyContent
	}
	return s.provider.Reflect(ctx, content)
}
