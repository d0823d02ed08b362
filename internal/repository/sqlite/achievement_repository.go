package sqlite

import (
	"context"
	"time"

	"github.com/vytor/quizflash/internal/logger"
	"github.com/vytor/quizflash/internal/models"
	"github.com/vytor/quizflash/internal/repository"
)

type achievementRepository struct {
	db DBTX
}

// NewAchievementRepository creates a new AchievementRepository implementation
func NewAchievementRepository(db DBTX) repository.AchievementRepository {
	return &achievementRepository{db: db}
}

// Unlock records an achievement once. It reports whether this call unlocked it.
func (r *achievementRepository) Unlock(ctx context.Context, userID int64, code string, at time.Time) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("achievement_repo")

	res, err := r.db.ExecContext(ctx, `
INSERT OR IGNORE INTO achievements (user_id, code, unlocked_at)
VALUES (?, ?, ?)
`, userID, code, dbTime(at))
	if err != nil {
		log.Error("failed to unlock achievement %s: %v", code, err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *achievementRepository) List(ctx context.Context, userID int64) ([]models.Achievement, error) {
	log := logger.FromContext(ctx).WithPrefix("achievement_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT user_id, code, unlocked_at
FROM achievements
WHERE user_id = ?
ORDER BY unlocked_at, code
`, userID)
	if err != nil {
		log.Error("failed to list achievements: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.Achievement
	for rows.Next() {
		var a models.Achievement
		if err := rows.Scan(&a.UserID, &a.Code, &a.UnlockedAt); err != nil {
			log.Error("failed to scan achievement row: %v", err)
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
