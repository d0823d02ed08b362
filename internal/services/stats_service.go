package services

import (
	"context"

	"github.com/vytor/quizflash/internal/errors"
	"github.com/vytor/quizflash/internal/logger"
	"github.com/vytor/quizflash/internal/models"
	"github.com/vytor/quizflash/internal/repository"
	"github.com/vytor/quizflash/internal/srs"
)

// StatsService handles statistics-related business logic
type StatsService interface {
	Summary(ctx context.Context, userID int64) (*models.StatsSummary, error)
}

type statsService struct {
	store repository.Store
	clock srs.Clock
}

// NewStatsService creates a new StatsService
func NewStatsService(store repository.Store, clock srs.Clock) StatsService {
	return &statsService{store: store, clock: clock}
}

func (s *statsService) Summary(ctx context.Context, userID int64) (*models.StatsSummary, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting stats summary: user_id=%d", userID)

	stats, err := s.store.Stats().Get(ctx, userID)
	if err != nil {
		log.Error("failed to get user stats: %v", err)
		return nil, errors.NewInternalError(err)
	}

	tracked, err := s.store.Progress().CountTracked(ctx, userID, nil)
	if err != nil {
		log.Error("failed to count tracked cards: %v", err)
		return nil, errors.NewInternalError(err)
	}

	now := s.clock.Now()
	due, err := s.store.Progress().CountTracked(ctx, userID, &now)
	if err != nil {
		log.Error("failed to count due cards: %v", err)
		return nil, errors.NewInternalError(err)
	}

	unlocked, err := s.store.Achievements().List(ctx, userID)
	if err != nil {
		log.Error("failed to list achievements: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if unlocked == nil {
		unlocked = []models.Achievement{}
	}

	return &models.StatsSummary{
		UserStats:    *stats,
		CardsTracked: tracked,
		CardsDue:     due,
		Achievements: unlocked,
	}, nil
}
