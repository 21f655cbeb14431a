package models

import "time"

// Progress is one user's state for one letter. Stage and Score only ever
// grow; Completed is derived from Stage.
type Progress struct {
	UserID    string
	LetterID  int
	Stage     int
	Score     int
	Completed bool
	UpdatedAt time.Time
}

// Checkin is one user's check-in row for one calendar day (YYYY-MM-DD).
// LettersLearned counts how many times the user checked in that day.
type Checkin struct {
	UserID         string
	Date           string
	LettersLearned int
	CreatedAt      time.Time
}

// Recording is a stored pronunciation recording with its score.
type Recording struct {
	ID        string
	UserID    string
	Letter    string
	Path      string
	Score     int
	CreatedAt time.Time
}

// Stats is the aggregate view served by the stats endpoint.
type Stats struct {
	TotalStars       int `json:"total_stars"`
	CompletedLetters int `json:"completed_letters"`
	StreakDays       int `json:"streak_days"`
}
