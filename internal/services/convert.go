package services

import (
	"time"

	"github.com/vytor/quizflash/internal/models"
	"github.com/vytor/quizflash/internal/srs"
)

func stateFromProgress(p *models.CardProgress) srs.State {
	if p == nil {
		return srs.NewState()
	}
	return srs.State{
		EaseFactor:   p.EaseFactor,
		Repetitions:  p.Repetitions,
		Interval:     p.IntervalDays,
		Streak:       p.Streak,
		DueDate:      p.DueAt,
		LastReviewed: p.LastReviewedAt,
		TotalPoints:  p.TotalPoints,
	}
}

func progressFromState(userID, cardID int64, s srs.State) models.CardProgress {
	return models.CardProgress{
		UserID:         userID,
		CardID:         cardID,
		EaseFactor:     s.EaseFactor,
		Repetitions:    s.Repetitions,
		IntervalDays:   s.Interval,
		Streak:         s.Streak,
		TotalPoints:    s.TotalPoints,
		DueAt:          s.DueDate,
		LastReviewedAt: s.LastReviewed,
		UpdatedAt:      s.LastReviewed,
	}
}

// startOfDay truncates t to midnight UTC, the boundary for daily study caps.
func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
