package jobs

import (
	"github.com/vytor/quizflash/internal/repository"
	"github.com/vytor/quizflash/internal/srs"
	"github.com/vytor/quizflash/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	pool  *worker.Pool
	store repository.Repositories
	clock srs.Clock
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(pool *worker.Pool, store repository.Repositories, clock srs.Clock) JobQueue {
	return &WorkerQueue{
		pool:  pool,
		store: store,
		clock: clock,
	}
}

func (q *WorkerQueue) EnqueueAchievementCheck(userID int64) error {
	return q.pool.Submit(&worker.AchievementJob{
		StatsRepo:       q.store.Stats(),
		AchievementRepo: q.store.Achievements(),
		Clock:           q.clock,
		UserID:          userID,
	})
}
