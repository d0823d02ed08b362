package models

import "time"

type UserStats struct {
	UserID         int64      `json:"user_id"`
	TotalPoints    int        `json:"total_points"`
	CurrentStreak  int        `json:"current_streak"`
	BestStreak     int        `json:"best_streak"`
	ReviewsCount   int        `json:"reviews_count"`
	LastReviewedAt *time.Time `json:"last_reviewed_at"`
}

type Achievement struct {
	UserID     int64     `json:"user_id"`
	Code       string    `json:"code"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

type StatsSummary struct {
	UserStats
	CardsTracked int           `json:"cards_tracked"`
	CardsDue     int           `json:"cards_due"`
	Achievements []Achievement `json:"achievements"`
}
