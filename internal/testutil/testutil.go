package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/vytor/quizflash/internal/db"
	"github.com/vytor/quizflash/internal/models"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// It is pinned to a single connection so every query sees the same database.
func NewTestDB(t *testing.T) *sql.DB {
	sqlDB, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(context.Background(), sqlDB), "failed to apply migrations")
	return sqlDB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// SeedDeck inserts a deck owned by ownerID with n cards and returns their ids.
func SeedDeck(t *testing.T, sqlDB *sql.DB, ownerID int64, n int) (int64, []int64) {
	ctx := context.Background()

	res, err := sqlDB.ExecContext(ctx, `INSERT INTO decks (owner_id, name) VALUES (?, ?)`, ownerID, "biology")
	require.NoError(t, err)
	deckID, err := res.LastInsertId()
	require.NoError(t, err)

	cardIDs := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		res, err := sqlDB.ExecContext(ctx, `INSERT INTO cards (deck_id, front, back) VALUES (?, ?, ?)`, deckID, "front", "back")
		require.NoError(t, err)
		id, err := res.LastInsertId()
		require.NoError(t, err)
		cardIDs = append(cardIDs, id)
	}
	return deckID, cardIDs
}

// Progress builds a tracked CardProgress row for tests.
func Progress(userID, cardID int64, interval int, reviewedAt time.Time) models.CardProgress {
	return models.CardProgress{
		UserID:         userID,
		CardID:         cardID,
		EaseFactor:     2.5,
		Repetitions:    1,
		IntervalDays:   interval,
		DueAt:          reviewedAt.AddDate(0, 0, interval),
		LastReviewedAt: reviewedAt,
	}
}
