package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/quizflash/internal/repository"
)

// MockStore is a repository.Store whose transactions run inline on the same mocks.
type MockStore struct {
	DeckRepo        *MockDeckRepository
	ProgressRepo    *MockProgressRepository
	ReviewRepo      *MockReviewRepository
	StatsRepo       *MockStatsRepository
	AchievementRepo *MockAchievementRepository
	TxCount         int
}

// NewMockStore returns a MockStore with fresh repository mocks.
func NewMockStore() *MockStore {
	return &MockStore{
		DeckRepo:        new(MockDeckRepository),
		ProgressRepo:    new(MockProgressRepository),
		ReviewRepo:      new(MockReviewRepository),
		StatsRepo:       new(MockStatsRepository),
		AchievementRepo: new(MockAchievementRepository),
	}
}

func (m *MockStore) Decks() repository.DeckRepository               { return m.DeckRepo }
func (m *MockStore) Progress() repository.ProgressRepository         { return m.ProgressRepo }
func (m *MockStore) Reviews() repository.ReviewRepository            { return m.ReviewRepo }
func (m *MockStore) Stats() repository.StatsRepository               { return m.StatsRepo }
func (m *MockStore) Achievements() repository.AchievementRepository { return m.AchievementRepo }

func (m *MockStore) WithTx(ctx context.Context, fn func(repository.Repositories) error) error {
	m.TxCount++
	return fn(m)
}

// AssertExpectations checks every repository mock.
func (m *MockStore) AssertExpectations(t mock.TestingT) {
	m.DeckRepo.AssertExpectations(t)
	m.ProgressRepo.AssertExpectations(t)
	m.ReviewRepo.AssertExpectations(t)
	m.StatsRepo.AssertExpectations(t)
	m.AchievementRepo.AssertExpectations(t)
}
