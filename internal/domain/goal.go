package domain

type GoalStatus string

const (
	GoalStatusToDo       GoalStatus = "To Do"
	GoalStatusInProgress GoalStatus = "In Progress"
	GoalStatusCompleted  GoalStatus = "Completed"
	GoalStatusCancelled  GoalStatus = "Cancelled"
)

// statusRank orders statuses for sorting. Unknown statuses sort after all
// known ones.
var statusRank = map[GoalStatus]int{
	GoalStatusToDo:       0,
	GoalStatusInProgress: 1,
	GoalStatusCompleted:  2,
	GoalStatusCancelled:  3,
}

// StatusRank returns the sort rank of a status; unknown statuses rank last.
func StatusRank(s GoalStatus) int {
	if rank, ok := statusRank[s]; ok {
		return rank
	}
	return len(statusRank)
}

// KnownStatus reports whether s is one of the four defined statuses.
func KnownStatus(s GoalStatus) bool {
	_, ok := statusRank[s]
	return ok
}

// Goal is one tracked goal belonging to a user. The ID is assigned at
// creation and never changes; everything else may be edited in place.
type Goal struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *string    `json:"due_date"`
	Status      GoalStatus `json:"status"`
}

// GoalSort selects the ordering applied by goal listing.
type GoalSort string

const (
	GoalSortNone        GoalSort = "none"
	GoalSortDueDateAsc  GoalSort = "due_date_asc"
	GoalSortDueDateDesc GoalSort = "due_date_desc"
	GoalSortStatus      GoalSort = "status"
)

// GoalSummary counts a user's goals by status.
type GoalSummary struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"in_progress"`
	ToDo       int `json:"to_do"`
	Cancelled  int `json:"cancelled"`
}
