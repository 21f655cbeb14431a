package models

import "time"

// ProgressEntry is the per-letter learning state kept by the progress ledger.
// Completed is derived from Stage on every write and never set directly.
type ProgressEntry struct {
	Stage     int       `json:"stage"`
	Score     int       `json:"score"`
	Completed bool      `json:"completed"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProgressMap is the full letter-id → entry mapping persisted as one snapshot.
type ProgressMap map[int]ProgressEntry

// Stats is the aggregate view returned by the server's stats endpoint.
type Stats struct {
	TotalStars       int `json:"total_stars"`
	CompletedLetters int `json:"completed_letters"`
	StreakDays       int `json:"streak_days"`
}

// CheckinRecord is one server-side check-in row.
type CheckinRecord struct {
	Date           string `json:"date"`
	LettersLearned int    `json:"letters_learned"`
}

// RemoteProgress is one per-letter progress row as reported by the server.
type RemoteProgress struct {
	LetterID  int  `json:"letter_id"`
	Stage     int  `json:"stage"`
	Score     int  `json:"score"`
	Completed bool `json:"completed"`
}

// SpeechEvaluation is the scoring result for a recorded pronunciation.
type SpeechEvaluation struct {
	Score    int     `json:"score"`
	Accuracy float64 `json:"accuracy"`
	Feedback string  `json:"feedback"`
}
