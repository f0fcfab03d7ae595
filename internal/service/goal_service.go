package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"

	"soulsync/internal/domain"
	"soulsync/internal/repository"
)

var (
	// ErrEmptyTitle is returned when a goal title is empty or whitespace-only.
	ErrEmptyTitle = errors.New("goal title cannot be empty")
	// ErrTitleTooLong is returned when a goal title exceeds the length limit.
	ErrTitleTooLong = errors.New("goal title is too long")
	// ErrGoalNotFound is returned when no goal matches the given id.
	ErrGoalNotFound = errors.New("goal not found")
	// ErrUnknownStatus is returned when a goal status is not one of the fixed set.
	ErrUnknownStatus = errors.New("unknown goal status")
)

const maxTitleLength = 100

// GoalService manages the goal lifecycle for a user.
type GoalService interface {
	AddGoal(ctx context.Context, username, title, description string, dueDate *string, status domain.GoalStatus) (*domain.Goal, error)
	ListGoals(ctx context.Context, username string, statusFilter []domain.GoalStatus, sortKey domain.GoalSort) ([]domain.Goal, error)
	UpdateGoal(ctx context.Context, username, id, title, description string, dueDate *string, status domain.GoalStatus) (*domain.Goal, error)
	DeleteGoal(ctx context.Context, username, id string) error
}

type goalService struct {
	store repository.Store
}

func NewGoalService(store repository.Store) GoalService {
	return &goalService{store: store}
}

func (s *goalService) AddGoal(ctx context.Context, username, title, description string, dueDate *string, status domain.GoalStatus) (*domain.Goal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if len([]rune(title)) > maxTitleLength {
		return nil, ErrTitleTooLong
	}
	if status == "" {
		status = domain.GoalStatusToDo
	} else if !domain.KnownStatus(status) {
		return nil, ErrUnknownStatus
	}

	users, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	record, ok := users[username]
	if !ok {
		return nil, ErrUserNotFound
	}

	goal := domain.Goal{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Status:      status,
	}
	record.Goals = append(record.Goals, goal)

	if err := s.store.Save(ctx, users); err != nil {
		return nil, err
	}
	return &goal, nil
}

// ListGoals filters by status, then sorts. An empty filter selects nothing.
// Sorting is stable: equal keys keep their filtered order, and goals without
// a due date sort after all dated goals regardless of direction.
func (s *goalService) ListGoals(ctx context.Context, username string, statusFilter []domain.GoalStatus, sortKey domain.GoalSort) ([]domain.Goal, error) {
	users, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	record, ok := users[username]
	if !ok {
		return nil, ErrUserNotFound
	}

	wanted := make(map[domain.GoalStatus]bool, len(statusFilter))
	for _, status := range statusFilter {
		wanted[status] = true
	}

	filtered := make([]domain.Goal, 0, len(record.Goals))
	for _, goal := range record.Goals {
		if wanted[goal.Status] {
			filtered = append(filtered, goal)
		}
	}

	switch sortKey {
	case domain.GoalSortDueDateAsc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return lessByDueDate(filtered[i], filtered[j], false)
		})
	case domain.GoalSortDueDateDesc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return lessByDueDate(filtered[i], filtered[j], true)
		})
	case domain.GoalSortStatus:
		sort.SliceStable(filtered, func(i, j int) bool {
			return domain.StatusRank(filtered[i].Status) < domain.StatusRank(filtered[j].Status)
		})
	}

	return filtered, nil
}

func lessByDueDate(a, b domain.Goal, descending bool) bool {
	switch {
	case a.DueDate == nil && b.DueDate == nil:
		return false
	case a.DueDate == nil:
		return false
	case b.DueDate == nil:
		return true
	}
	if descending {
		return *a.DueDate > *b.DueDate
	}
	return *a.DueDate < *b.DueDate
}

// UpdateGoal replaces the mutable fields of the goal with the given id. The
// id itself never changes.
func (s *goalService) UpdateGoal(ctx context.Context, username, id, title, description string, dueDate *string, status domain.GoalStatus) (*domain.Goal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if len([]rune(title)) > maxTitleLength {
		return nil, ErrTitleTooLong
	}
	if status != "" && !domain.KnownStatus(status) {
		return nil, ErrUnknownStatus
	}

	users, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	record, ok := users[username]
	if !ok {
		return nil, ErrUserNotFound
	}

	for i := range record.Goals {
		if record.Goals[i].ID != id {
			continue
		}
		record.Goals[i].Title = title
		record.Goals[i].Description = description
		record.Goals[i].DueDate = dueDate
		// An omitted status keeps the stored one.
		if status != "" {
			record.Goals[i].Status = status
		}
		updated := record.Goals[i]
		if err := s.store.Save(ctx, users); err != nil {
			return nil, err
		}
		return &updated, nil
	}
	return nil, ErrGoalNotFound
}

func (s *goalService) DeleteGoal(ctx context.Context, username, id string) error {
	users, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	record, ok := users[username]
	if !ok {
		return ErrUserNotFound
	}

	for i := range record.Goals {
		if record.Goals[i].ID != id {
			continue
		}
		record.Goals = append(record.Goals[:i], record.Goals[i+1:]...)
		return s.store.Save(ctx, users)
	}
	return ErrGoalNotFound
}
