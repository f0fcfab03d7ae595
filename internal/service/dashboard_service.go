package service

import (
	"context"
	"fmt"
	"sort"

	"soulsync/internal/domain"
	"soulsync/internal/repository"
)

const (
	// JournalInsightsEmpty is reported when the user has no journal entries.
	JournalInsightsEmpty = "insufficient data"
	// JournalInsightsPending is reported until journal analysis is built.
	JournalInsightsPending = "not yet available"
)

// DashboardService derives chart-ready series and summaries from a user's
// records. Mood entries whose timestamps fail to parse are skipped and
// reported as warnings instead of failing the whole aggregation.
type DashboardService interface {
	MoodTrend(ctx context.Context, username string) ([]domain.MoodPoint, []string, error)
	DailyMoodDistribution(ctx context.Context, username string) (map[string]map[string]int, []string, error)
	GoalSummary(ctx context.Context, username string) (*domain.GoalSummary, error)
	JournalInsights(ctx context.Context, username string) (string, error)
}

type dashboardService struct {
	store repository.Store
}

func NewDashboardService(store repository.Store) DashboardService {
	return &dashboardService{store: store}
}

// MoodTrend returns one point per valid mood entry, ascending by time.
func (s *dashboardService) MoodTrend(ctx context.Context, username string) ([]domain.MoodPoint, []string, error) {
	record, err := s.userRecord(ctx, username)
	if err != nil {
		return nil, nil, err
	}

	points := make([]domain.MoodPoint, 0, len(record.Moods))
	var warnings []string
	for _, entry := range record.Moods {
		ts, err := domain.ParseTimestamp(entry.Timestamp)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("could not parse timestamp %q, skipping mood entry", entry.Timestamp))
			continue
		}
		points = append(points, domain.MoodPoint{
			Timestamp: ts,
			Score:     domain.MoodScore(entry.MoodText),
		})
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})
	return points, warnings, nil
}

// DailyMoodDistribution groups valid mood entries by calendar date and label.
func (s *dashboardService) DailyMoodDistribution(ctx context.Context, username string) (map[string]map[string]int, []string, error) {
	record, err := s.userRecord(ctx, username)
	if err != nil {
		return nil, nil, err
	}

	distribution := map[string]map[string]int{}
	var warnings []string
	for _, entry := range record.Moods {
		ts, err := domain.ParseTimestamp(entry.Timestamp)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("could not parse timestamp %q, skipping mood entry", entry.Timestamp))
			continue
		}
		date := ts.Format("2006-01-02")
		if distribution[date] == nil {
			distribution[date] = map[string]int{}
		}
		distribution[date][string(entry.MoodText)]++
	}
	return distribution, warnings, nil
}

// GoalSummary counts all goals by status, unfiltered.
func (s *dashboardService) GoalSummary(ctx context.Context, username string) (*domain.GoalSummary, error) {
	record, err := s.userRecord(ctx, username)
	if err != nil {
		return nil, err
	}

	summary := domain.GoalSummary{Total: len(record.Goals)}
	for _, goal := range record.Goals {
		switch goal.Status {
		case domain.GoalStatusCompleted:
			summary.Completed++
		case domain.GoalStatusInProgress:
			summary.InProgress++
		case domain.GoalStatusToDo:
			summary.ToDo++
		case domain.GoalStatusCancelled:
			summary.Cancelled++
		}
	}
	return &summary, nil
}

// JournalInsights is a placeholder until keyword/sentiment analysis lands.
func (s *dashboardService) JournalInsights(ctx context.Context, username string) (string, error) {
	record, err := s.userRecord(ctx, username)
	if err != nil {
		return "", err
	}
	if len(record.Journals) == 0 {
		return JournalInsightsEmpty, nil
	}
	return JournalInsightsPending, nil
}

func (s *dashboardService) userRecord(ctx context.Context, username string) (*domain.UserRecord, error) {
	users, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	record, ok := users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return record, nil
}
