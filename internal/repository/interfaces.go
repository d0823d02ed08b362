package repository

import (
	"context"
	"time"

	"github.com/vytor/quizflash/internal/models"
)

// DeckRepository handles deck and card data access
type DeckRepository interface {
	Create(ctx context.Context, deck models.Deck) (int64, error)
	Get(ctx context.Context, id int64) (*models.Deck, error)
	List(ctx context.Context, ownerID int64) ([]models.Deck, error)
	AddCard(ctx context.Context, card models.Card) (int64, error)
	GetCard(ctx context.Context, id int64) (*models.Card, error)
	Cards(ctx context.Context, deckID int64) ([]models.Card, error)
}

// ProgressRepository handles per-user scheduling state. A missing row means the
// card has never been reviewed.
type ProgressRepository interface {
	Get(ctx context.Context, userID, cardID int64) (*models.CardProgress, error)
	Upsert(ctx context.Context, progress models.CardProgress) error
	DeleteForDeck(ctx context.Context, userID, deckID int64) (int64, error)
	Tracked(ctx context.Context, filter models.ProgressFilter) ([]models.StudyCard, error)
	NewCards(ctx context.Context, userID, deckID int64, limit int) ([]models.Card, error)
	CountTracked(ctx context.Context, userID int64, dueBefore *time.Time) (int, error)
}

// ReviewRepository handles review history
type ReviewRepository interface {
	Insert(ctx context.Context, review models.ReviewHistory) (int64, error)
	List(ctx context.Context, filter models.ReviewFilter) ([]models.ReviewHistory, error)
	Count(ctx context.Context, filter models.ReviewFilter) (int, error)
}

// StatsRepository handles per-user gamification totals
type StatsRepository interface {
	Get(ctx context.Context, userID int64) (*models.UserStats, error)
	AddReview(ctx context.Context, userID int64, points, streak int, at time.Time) error
}

// AchievementRepository handles unlocked achievements
type AchievementRepository interface {
	Unlock(ctx context.Context, userID int64, code string, at time.Time) (bool, error)
	List(ctx context.Context, userID int64) ([]models.Achievement, error)
}

// Repositories groups the repositories that share one connection or transaction.
type Repositories interface {
	Decks() DeckRepository
	Progress() ProgressRepository
	Reviews() ReviewRepository
	Stats() StatsRepository
	Achievements() AchievementRepository
}

// Store is the persistence collaborator used by services. WithTx runs fn with
// repositories bound to a single transaction; fn's error rolls it back.
type Store interface {
	Repositories
	WithTx(ctx context.Context, fn func(Repositories) error) error
}
