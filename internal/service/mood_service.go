package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"soulsync/internal/domain"
	"soulsync/internal/repository"
)

var (
	// ErrUnknownMood is returned when the mood label is not one of the fixed set.
	ErrUnknownMood = errors.New("unknown mood")
	// ErrDescriptionTooLong is returned when a mood description exceeds the limit.
	ErrDescriptionTooLong = errors.New("mood description is too long")
)

const maxMoodDescriptionLength = 200

// MoodService records and lists mood entries. Entries are append-only.
type MoodService interface {
	LogMood(ctx context.Context, username string, mood domain.Mood, description string) (*domain.MoodEntry, error)
	ListMoods(ctx context.Context, username string, limit int) ([]domain.MoodEntry, error)
}

type moodService struct {
	store repository.Store
	now   func() time.Time
}

func NewMoodService(store repository.Store) MoodService {
	return &moodService{store: store, now: time.Now}
}

func (s *moodService) LogMood(ctx context.Context, username string, mood domain.Mood, description string) (*domain.MoodEntry, error) {
	emoji, ok := domain.MoodEmoji(mood)
	if !ok {
		return nil, ErrUnknownMood
	}
	if len([]rune(description)) > maxMoodDescriptionLength {
		return nil, ErrDescriptionTooLong
	}

	users, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	record, found := users[username]
	if !found {
		return nil, ErrUserNotFound
	}

	entry := domain.MoodEntry{
		Timestamp:   s.now().Format(domain.TimestampFormat),
		MoodText:    mood,
		MoodEmoji:   emoji,
		Description: description,
	}
	record.Moods = append(record.Moods, entry)

	if err := s.store.Save(ctx, users); err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListMoods returns entries most recent first. A limit of zero or less, or
// one larger than the stored count, returns everything.
func (s *moodService) ListMoods(ctx context.Context, username string, limit int) ([]domain.MoodEntry, error) {
	users, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	record, found := users[username]
	if !found {
		return nil, ErrUserNotFound
	}

	entries := make([]domain.MoodEntry, len(record.Moods))
	copy(entries, record.Moods)
	sort.SliceStable(entries, func(i, j int) bool {
		return domain.TimestampAfter(entries[i].Timestamp, entries[j].Timestamp)
	})

	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return entries, nil
}
