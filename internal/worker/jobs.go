package worker

import (
	"context"

	"github.com/vytor/quizflash/internal/achievements"
	"github.com/vytor/quizflash/internal/logger"
	"github.com/vytor/quizflash/internal/repository"
	"github.com/vytor/quizflash/internal/srs"
)

// AchievementJob unlocks every milestone a user's stats now satisfy.
type AchievementJob struct {
	StatsRepo       repository.StatsRepository
	AchievementRepo repository.AchievementRepository
	Clock           srs.Clock
	UserID          int64
}

func (j *AchievementJob) Name() string { return "check_achievements" }

func (j *AchievementJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("user_id", j.UserID)

	stats, err := j.StatsRepo.Get(ctx, j.UserID)
	if err != nil {
		log.Error("failed to load stats: %v", err)
		return err
	}

	at := j.Clock.Now()
	for _, code := range achievements.Earned(*stats) {
		unlocked, err := j.AchievementRepo.Unlock(ctx, j.UserID, code, at)
		if err != nil {
			log.Error("failed to unlock %s: %v", code, err)
			return err
		}
		if unlocked {
			log.Info("achievement unlocked: %s", code)
		}
	}
	return nil
}
