package sqlite

import (
	"context"
	"database/sql"

	"github.com/vytor/quizflash/internal/repository"
)

type repositories struct {
	decks        repository.DeckRepository
	progress     repository.ProgressRepository
	reviews      repository.ReviewRepository
	stats        repository.StatsRepository
	achievements repository.AchievementRepository
}

func newRepositories(q DBTX) *repositories {
	return &repositories{
		decks:        &deckRepository{db: q},
		progress:     &progressRepository{db: q},
		reviews:      &reviewRepository{db: q},
		stats:        &statsRepository{db: q},
		achievements: &achievementRepository{db: q},
	}
}

func (r *repositories) Decks() repository.DeckRepository               { return r.decks }
func (r *repositories) Progress() repository.ProgressRepository         { return r.progress }
func (r *repositories) Reviews() repository.ReviewRepository            { return r.reviews }
func (r *repositories) Stats() repository.StatsRepository               { return r.stats }
func (r *repositories) Achievements() repository.AchievementRepository { return r.achievements }

type store struct {
	*repositories
	db *sql.DB
}

// NewStore creates a repository.Store backed by SQLite
func NewStore(db *sql.DB) repository.Store {
	return &store{repositories: newRepositories(db), db: db}
}

func (s *store) WithTx(ctx context.Context, fn func(repository.Repositories) error) error {
	return tx(ctx, s.db, func(t *sql.Tx) error {
		return fn(newRepositories(t))
	})
}
