package sqlite

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/quizflash/internal/logger"
	"github.com/vytor/quizflash/internal/models"
	"github.com/vytor/quizflash/internal/repository"
)

type reviewRepository struct {
	db DBTX
}

// NewReviewRepository creates a new ReviewRepository implementation
func NewReviewRepository(db DBTX) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Insert(ctx context.Context, h models.ReviewHistory) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("inserting review history: card_id=%d, quality=%d, time=%dms", h.CardID, h.Quality, h.ResponseTimeMs)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO review_history (user_id, card_id, scale, quality, difficulty, response_time_ms, points, interval_days, ease_factor, was_new, reviewed_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, h.UserID, h.CardID, h.Scale, h.Quality, h.Difficulty, h.ResponseTimeMs, h.Points, h.IntervalDays, h.EaseFactor, h.WasNew, dbTime(h.ReviewedAt))
	if err != nil {
		log.Error("failed to insert review history: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func applyReviewFilter(query squirrel.SelectBuilder, filter models.ReviewFilter) squirrel.SelectBuilder {
	query = query.Where(squirrel.Eq{"h.user_id": filter.UserID})
	if filter.DeckID != 0 {
		query = query.Join("cards c ON c.id = h.card_id").Where(squirrel.Eq{"c.deck_id": filter.DeckID})
	}
	if filter.CardID != 0 {
		query = query.Where(squirrel.Eq{"h.card_id": filter.CardID})
	}
	if filter.Since != nil {
		query = query.Where(squirrel.GtOrEq{"h.reviewed_at": dbTime(*filter.Since)})
	}
	if filter.WasNew != nil {
		query = query.Where(squirrel.Eq{"h.was_new": *filter.WasNew})
	}
	return query
}

func (r *reviewRepository) List(ctx context.Context, filter models.ReviewFilter) ([]models.ReviewHistory, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")

	query := sqlBuilder.Select(
		"h.id", "h.user_id", "h.card_id", "h.scale", "h.quality", "h.difficulty", "h.response_time_ms",
		"h.points", "h.interval_days", "h.ease_factor", "h.was_new", "h.reviewed_at",
	).From("review_history h")
	query = applyReviewFilter(query, filter).
		OrderBy("h.reviewed_at DESC", "h.id DESC").
		Limit(limitOr(filter.Limit, 100))

	sql, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sql, args...)
	if err != nil {
		log.Error("failed to list review history: %v", err)
		return nil, err
	}
	defer rows.Close()

	var history []models.ReviewHistory
	for rows.Next() {
		var h models.ReviewHistory
		if err := rows.Scan(&h.ID, &h.UserID, &h.CardID, &h.Scale, &h.Quality, &h.Difficulty, &h.ResponseTimeMs,
			&h.Points, &h.IntervalDays, &h.EaseFactor, &h.WasNew, &h.ReviewedAt); err != nil {
			log.Error("failed to scan review row: %v", err)
			return nil, err
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

func (r *reviewRepository) Count(ctx context.Context, filter models.ReviewFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")

	query := applyReviewFilter(sqlBuilder.Select("COUNT(*)").From("review_history h"), filter)
	sql, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sql, args...).Scan(&count); err != nil {
		log.Error("failed to count reviews: %v", err)
		return 0, err
	}
	return count, nil
}
