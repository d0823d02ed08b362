package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vytor/quizflash/internal/logger"
	"github.com/vytor/quizflash/internal/models"
	"github.com/vytor/quizflash/internal/repository"
)

type statsRepository struct {
	db DBTX
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db DBTX) repository.StatsRepository {
	return &statsRepository{db: db}
}

// Get returns zeroed stats for users that have not reviewed anything yet.
func (r *statsRepository) Get(ctx context.Context, userID int64) (*models.UserStats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")

	s := models.UserStats{UserID: userID}
	var last sql.NullTime
	err := r.db.QueryRowContext(ctx, `
SELECT total_points, current_streak, best_streak, reviews_count, last_reviewed_at
FROM user_stats
WHERE user_id = ?
`, userID).Scan(&s.TotalPoints, &s.CurrentStreak, &s.BestStreak, &s.ReviewsCount, &last)
	if errors.Is(err, sql.ErrNoRows) {
		return &s, nil
	}
	if err != nil {
		log.Error("failed to get user stats: %v", err)
		return nil, err
	}
	if last.Valid {
		s.LastReviewedAt = &last.Time
	}
	return &s, nil
}

func (r *statsRepository) AddReview(ctx context.Context, userID int64, points, streak int, at time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("adding review to stats: user_id=%d, points=%d, streak=%d", userID, points, streak)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO user_stats (user_id, total_points, current_streak, best_streak, reviews_count, last_reviewed_at)
VALUES (?, ?, ?, ?, 1, ?)
ON CONFLICT(user_id) DO UPDATE SET
    total_points = total_points + excluded.total_points,
    current_streak = excluded.current_streak,
    best_streak = MAX(best_streak, excluded.current_streak),
    reviews_count = reviews_count + 1,
    last_reviewed_at = excluded.last_reviewed_at
`, userID, points, streak, streak, dbTime(at))
	if err != nil {
		log.Error("failed to update user stats: %v", err)
	}
	return err
}
