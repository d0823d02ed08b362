package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/quizflash/internal/logger"
	"github.com/vytor/quizflash/internal/models"
	"github.com/vytor/quizflash/internal/repository"
)

const defaultQueueLimit = 200

type progressRepository struct {
	db DBTX
}

// NewProgressRepository creates a new ProgressRepository implementation
func NewProgressRepository(db DBTX) repository.ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) Get(ctx context.Context, userID, cardID int64) (*models.CardProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("getting progress: user_id=%d, card_id=%d", userID, cardID)

	var p models.CardProgress
	err := r.db.QueryRowContext(ctx, `
SELECT user_id, card_id, ease_factor, repetitions, interval_days, streak, total_points, due_at, last_reviewed_at, updated_at
FROM card_progress
WHERE user_id = ? AND card_id = ?
`, userID, cardID).Scan(&p.UserID, &p.CardID, &p.EaseFactor, &p.Repetitions, &p.IntervalDays, &p.Streak, &p.TotalPoints, &p.DueAt, &p.LastReviewedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no progress yet: user_id=%d, card_id=%d", userID, cardID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get progress: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *progressRepository) Upsert(ctx context.Context, p models.CardProgress) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("upserting progress: user_id=%d, card_id=%d, interval=%d, ease=%.2f", p.UserID, p.CardID, p.IntervalDays, p.EaseFactor)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO card_progress (user_id, card_id, ease_factor, repetitions, interval_days, streak, total_points, due_at, last_reviewed_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(user_id, card_id) DO UPDATE SET
    ease_factor = excluded.ease_factor,
    repetitions = excluded.repetitions,
    interval_days = excluded.interval_days,
    streak = excluded.streak,
    total_points = excluded.total_points,
    due_at = excluded.due_at,
    last_reviewed_at = excluded.last_reviewed_at,
    updated_at = excluded.updated_at
`, p.UserID, p.CardID, p.EaseFactor, p.Repetitions, p.IntervalDays, p.Streak, p.TotalPoints,
		dbTime(p.DueAt), dbTime(p.LastReviewedAt), dbTime(p.LastReviewedAt))
	if err != nil {
		log.Error("failed to upsert progress: %v", err)
	}
	return err
}

func (r *progressRepository) DeleteForDeck(ctx context.Context, userID, deckID int64) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("resetting deck progress: user_id=%d, deck_id=%d", userID, deckID)

	res, err := r.db.ExecContext(ctx, `
DELETE FROM card_progress
WHERE user_id = ? AND card_id IN (SELECT id FROM cards WHERE deck_id = ?)
`, userID, deckID)
	if err != nil {
		log.Error("failed to reset deck progress: %v", err)
		return 0, err
	}
	return res.RowsAffected()
}

func (r *progressRepository) Tracked(ctx context.Context, filter models.ProgressFilter) ([]models.StudyCard, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("listing tracked cards: user_id=%d, deck_id=%d", filter.UserID, filter.DeckID)

	query := sqlBuilder.Select(
		"c.id", "c.deck_id", "c.front", "c.back", "c.created_at",
		"p.user_id", "p.card_id", "p.ease_factor", "p.repetitions", "p.interval_days",
		"p.streak", "p.total_points", "p.due_at", "p.last_reviewed_at", "p.updated_at",
	).
		From("card_progress p").
		Join("cards c ON c.id = p.card_id").
		Where(squirrel.Eq{"p.user_id": filter.UserID})

	if filter.DeckID != 0 {
		query = query.Where(squirrel.Eq{"c.deck_id": filter.DeckID})
	}
	if filter.DueBefore != nil {
		query = query.Where(squirrel.LtOrEq{"p.due_at": dbTime(*filter.DueBefore)})
	}
	query = query.OrderBy("p.due_at ASC", "c.id ASC").Limit(limitOr(filter.Limit, defaultQueueLimit))

	sql, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sql, args...)
	if err != nil {
		log.Error("failed to list tracked cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.StudyCard
	for rows.Next() {
		var sc models.StudyCard
		var p models.CardProgress
		if err := rows.Scan(&sc.ID, &sc.DeckID, &sc.Front, &sc.Back, &sc.CreatedAt,
			&p.UserID, &p.CardID, &p.EaseFactor, &p.Repetitions, &p.IntervalDays,
			&p.Streak, &p.TotalPoints, &p.DueAt, &p.LastReviewedAt, &p.UpdatedAt); err != nil {
			log.Error("failed to scan tracked card row: %v", err)
			return nil, err
		}
		sc.Progress = &p
		cards = append(cards, sc)
	}
	log.Debug("found %d tracked cards", len(cards))
	return cards, rows.Err()
}

func (r *progressRepository) NewCards(ctx context.Context, userID, deckID int64, limit int) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("listing new cards: user_id=%d, deck_id=%d, limit=%d", userID, deckID, limit)

	if limit <= 0 {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT c.id, c.deck_id, c.front, c.back, c.created_at
FROM cards c
LEFT JOIN card_progress p ON p.card_id = c.id AND p.user_id = ?
WHERE c.deck_id = ? AND p.card_id IS NULL
ORDER BY c.id
LIMIT ?
`, userID, deckID, limit)
	if err != nil {
		log.Error("failed to list new cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		var c models.Card
		if err := rows.Scan(&c.ID, &c.DeckID, &c.Front, &c.Back, &c.CreatedAt); err != nil {
			log.Error("failed to scan new card row: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (r *progressRepository) CountTracked(ctx context.Context, userID int64, dueBefore *time.Time) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")

	query := sqlBuilder.Select("COUNT(*)").From("card_progress").Where(squirrel.Eq{"user_id": userID})
	if dueBefore != nil {
		query = query.Where(squirrel.LtOrEq{"due_at": dbTime(*dueBefore)})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sql, args...).Scan(&count); err != nil {
		log.Error("failed to count tracked cards: %v", err)
		return 0, err
	}
	return count, nil
}
