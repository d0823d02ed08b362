package models

import "time"

// CardProgress is the persisted scheduling state of one card for one user.
type CardProgress struct {
	UserID         int64     `json:"user_id"`
	CardID         int64     `json:"card_id"`
	EaseFactor     float64   `json:"ease_factor"`
	Repetitions    int       `json:"repetitions"`
	IntervalDays   int       `json:"interval_days"`
	Streak         int       `json:"streak"`
	TotalPoints    int       `json:"total_points"`
	DueAt          time.Time `json:"due_at"`
	LastReviewedAt time.Time `json:"last_reviewed_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProgressFilter narrows the tracked cards returned for a study queue.
type ProgressFilter struct {
	UserID    int64
	DeckID    int64
	DueBefore *time.Time
	Limit     int
}

// StudyCard is a card presented to the user with its progress, if any.
type StudyCard struct {
	Card
	Progress *CardProgress `json:"progress,omitempty"`
	IsNew    bool          `json:"is_new"`
}

type ReviewHistory struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	CardID         int64     `json:"card_id"`
	Scale          string    `json:"scale"`
	Quality        int       `json:"quality"`
	Difficulty     string    `json:"difficulty"`
	ResponseTimeMs int64     `json:"response_time_ms"`
	Points         int       `json:"points"`
	IntervalDays   int       `json:"interval_days"`
	EaseFactor     float64   `json:"ease_factor"`
	WasNew         bool      `json:"was_new"`
	ReviewedAt     time.Time `json:"reviewed_at"`
}

// ReviewFilter selects review history rows.
type ReviewFilter struct {
	UserID int64
	DeckID int64
	CardID int64
	Since  *time.Time
	WasNew *bool
	Limit  int
}
