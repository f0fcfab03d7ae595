package domain

import "time"

type Mood string

const (
	MoodHappy    Mood = "Happy"
	MoodSad      Mood = "Sad"
	MoodAngry    Mood = "Angry"
	MoodStressed Mood = "Stressed"
	MoodAnxious  Mood = "Anxious"
	MoodExcited  Mood = "Excited"
	MoodNeutral  Mood = "Neutral"
)

// moodEmojis is the fixed mood→emoji table; the emoji stored with an entry is
// derived from it at logging time.
var moodEmojis = map[Mood]string{
	MoodHappy:    "😀",
	MoodSad:      "😢",
	MoodAngry:    "😡",
	MoodStressed: "😣",
	MoodAnxious:  "😰",
	MoodExcited:  "🤩",
	MoodNeutral:  "😐",
}

// moodScores maps moods onto the numeric scale used for trend charts.
var moodScores = map[Mood]int{
	MoodHappy:    5,
	MoodExcited:  4,
	MoodNeutral:  3,
	MoodAnxious:  2,
	MoodStressed: 2,
	MoodSad:      1,
	MoodAngry:    1,
}

// MoodEmoji returns the emoji for a mood and whether the mood is a known one.
func MoodEmoji(m Mood) (string, bool) {
	emoji, ok := moodEmojis[m]
	return emoji, ok
}

// MoodScore returns the chart value for a mood; unknown moods score 0.
func MoodScore(m Mood) int {
	return moodScores[m]
}

// Moods lists the valid mood labels in display order.
func Moods() []Mood {
	return []Mood{MoodHappy, MoodSad, MoodAngry, MoodStressed, MoodAnxious, MoodExcited, MoodNeutral}
}

// MoodEntry is one append-only mood log. Timestamp is kept as the recorded
// ISO-8601 string; aggregation parses it and skips entries it cannot read.
type MoodEntry struct {
	Timestamp   string `json:"timestamp"`
	MoodText    Mood   `json:"mood_text"`
	MoodEmoji   string `json:"mood_emoji"`
	Description string `json:"description"`
}

// MoodPoint is one point of the mood trend series.
type MoodPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Score     int       `json:"score"`
}
