package worker_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/vytor/quizflash/internal/achievements"
	"github.com/vytor/quizflash/internal/models"
	"github.com/vytor/quizflash/internal/srs"
	"github.com/vytor/quizflash/internal/testutil/mocks"
	"github.com/vytor/quizflash/internal/worker"
)

var unlockedAt = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func TestAchievementJob_UnlocksEarnedMilestones(t *testing.T) {
	stats := new(mocks.MockStatsRepository)
	unlocks := new(mocks.MockAchievementRepository)

	stats.On("Get", mock.Anything, int64(5)).Return(&models.UserStats{UserID: 5, ReviewsCount: 30, TotalPoints: 1200}, nil)
	unlocks.On("Unlock", mock.Anything, int64(5), achievements.FirstReview, unlockedAt).Return(false, nil)
	unlocks.On("Unlock", mock.Anything, int64(5), achievements.Points1000, unlockedAt).Return(true, nil)

	job := &worker.AchievementJob{
		StatsRepo:       stats,
		AchievementRepo: unlocks,
		Clock:           srs.FixedClock{T: unlockedAt},
		UserID:          5,
	}
	assert.Equal(t, "check_achievements", job.Name())
	assert.NoError(t, job.Run(context.Background()))

	stats.AssertExpectations(t)
	unlocks.AssertExpectations(t)
}

func TestAchievementJob_StatsFailure(t *testing.T) {
	stats := new(mocks.MockStatsRepository)
	unlocks := new(mocks.MockAchievementRepository)

	stats.On("Get", mock.Anything, int64(5)).Return(nil, stderrors.New("locked"))

	job := &worker.AchievementJob{StatsRepo: stats, AchievementRepo: unlocks, Clock: srs.FixedClock{T: unlockedAt}, UserID: 5}
	assert.Error(t, job.Run(context.Background()))
	unlocks.AssertNotCalled(t, "Unlock", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
