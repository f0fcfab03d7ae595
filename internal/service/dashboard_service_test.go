package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soulsync/internal/domain"
)

func TestMoodTrendAscendingWithScores(t *testing.T) {
	store := newMemStore()
	record := store.addUser("ana")
	t1 := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 2, 1, 18, 0, 0, 0, time.UTC)
	record.Moods = []domain.MoodEntry{
		// Stored out of order on purpose.
		{Timestamp: t2.Format(domain.TimestampFormat), MoodText: domain.MoodSad},
		{Timestamp: t1.Format(domain.TimestampFormat), MoodText: domain.MoodHappy},
	}
	svc := NewDashboardService(store)

	points, warnings, err := svc.MoodTrend(context.Background(), "ana")
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, points, 2)
	assert.True(t, points[0].Timestamp.Equal(t1))
	assert.Equal(t, 5, points[0].Score)
	assert.True(t, points[1].Timestamp.Equal(t2))
	assert.Equal(t, 1, points[1].Score)
}

func TestMoodTrendSkipsMalformedTimestamps(t *testing.T) {
	store := newMemStore()
	record := store.addUser("ana")
	record.Moods = []domain.MoodEntry{
		{Timestamp: "yesterday-ish", MoodText: domain.MoodHappy},
		{Timestamp: "2025-02-01T09:00:00Z", MoodText: domain.MoodNeutral},
	}
	svc := NewDashboardService(store)

	points, warnings, err := svc.MoodTrend(context.Background(), "ana")
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, 3, points[0].Score)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "yesterday-ish")
}

func TestDailyMoodDistribution(t *testing.T) {
	store := newMemStore()
	record := store.addUser("ana")
	record.Moods = []domain.MoodEntry{
		{Timestamp: "2025-02-01T09:00:00Z", MoodText: domain.MoodHappy},
		{Timestamp: "2025-02-01T18:00:00Z", MoodText: domain.MoodHappy},
		{Timestamp: "2025-02-02T09:00:00Z", MoodText: domain.MoodSad},
		{Timestamp: "garbage", MoodText: domain.MoodAngry},
	}
	svc := NewDashboardService(store)

	distribution, warnings, err := svc.DailyMoodDistribution(context.Background(), "ana")
	require.NoError(t, err)
	assert.Len(t, warnings, 1)
	assert.Equal(t, 2, distribution["2025-02-01"]["Happy"])
	assert.Equal(t, 1, distribution["2025-02-02"]["Sad"])
}

func TestGoalSummaryCountsAllStatuses(t *testing.T) {
	store := newMemStore()
	record := store.addUser("ana")
	record.Goals = []domain.Goal{
		{ID: "g1", Status: domain.GoalStatusCompleted},
		{ID: "g2", Status: domain.GoalStatusCompleted},
		{ID: "g3", Status: domain.GoalStatusInProgress},
		{ID: "g4", Status: domain.GoalStatusToDo},
		{ID: "g5", Status: domain.GoalStatusCancelled},
		{ID: "g6", Status: "Paused"},
	}
	svc := NewDashboardService(store)

	summary, err := svc.GoalSummary(context.Background(), "ana")
	require.NoError(t, err)
	assert.Equal(t, 6, summary.Total)
	assert.Equal(t, 2, summary.Completed)
	assert.Equal(t, 1, summary.InProgress)
	assert.Equal(t, 1, summary.ToDo)
	assert.Equal(t, 1, summary.Cancelled)
}

func TestJournalInsightsPlaceholder(t *testing.T) {
	store := newMemStore()
	record := store.addUser("ana")
	svc := NewDashboardService(store)
	ctx := context.Background()

	insights, err := svc.JournalInsights(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, JournalInsightsEmpty, insights)

	record.Journals = append(record.Journals, domain.JournalEntry{Timestamp: "2025-02-01T21:00:00Z", Content: "entry"})
	insights, err = svc.JournalInsights(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, JournalInsightsPending, insights)
}

func TestDashboardUnknownUser(t *testing.T) {
	svc := NewDashboardService(newMemStore())

	_, _, err := svc.MoodTrend(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
