package domain

// UserRecord holds everything the system knows about one user. The username is
// the key of the persisted document and is not repeated inside the record.
type UserRecord struct {
	// PasswordHash is a bcrypt hash. The field keeps the historical "password"
	// key so existing documents stay readable.
	PasswordHash string         `json:"password"`
	Email        string         `json:"email"`
	Goals        []Goal         `json:"goals"`
	Moods        []MoodEntry    `json:"moods"`
	Journals     []JournalEntry `json:"journals"`
}

// NewUserRecord returns a record with all sequences initialized to empty.
func NewUserRecord(passwordHash, email string) *UserRecord {
	return &UserRecord{
		PasswordHash: passwordHash,
		Email:        email,
		Goals:        []Goal{},
		Moods:        []MoodEntry{},
		Journals:     []JournalEntry{},
	}
}

// Normalize backfills any sequence a loaded document left absent, so every
// record handed out by the store has all three sequences present.
func (u *UserRecord) Normalize() {
	if u.Goals == nil {
		u.Goals = []Goal{}
	}
	if u.Moods == nil {
		u.Moods = []MoodEntry{}
	}
	if u.Journals == nil {
		u.Journals = []JournalEntry{}
	}
}
