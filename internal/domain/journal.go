package domain

// JournalEntry is one append-only journal note.
type JournalEntry struct {
	Timestamp string `json:"timestamp"`
	Content   string `json:"content"`
}
