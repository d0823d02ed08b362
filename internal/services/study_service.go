package services

import (
	"context"
	"sort"
	"time"

	"github.com/vytor/quizflash/internal/errors"
	"github.com/vytor/quizflash/internal/jobs"
	"github.com/vytor/quizflash/internal/logger"
	"github.com/vytor/quizflash/internal/models"
	"github.com/vytor/quizflash/internal/repository"
	"github.com/vytor/quizflash/internal/srs"
)

// ReviewInput is one answer as submitted by a client. Difficulty is read on the
// three-level scale, Quality on the six-level one.
type ReviewInput struct {
	Scale          srs.Scale
	Difficulty     string
	Quality        *int
	ResponseTimeMs int64
}

// Grade maps the raw answer onto the scheduler's grade.
func (in ReviewInput) Grade() (srs.Grade, error) {
	switch in.Scale {
	case srs.SixLevel:
		if in.Quality == nil {
			return srs.Grade{}, errors.NewInvalidInputError("quality", "required on the six-level scale")
		}
		return srs.GradeQuality(*in.Quality)
	case srs.ThreeLevel:
		d, err := srs.ParseDifficulty(in.Difficulty)
		if err != nil {
			return srs.Grade{}, err
		}
		return srs.GradeDifficulty(d)
	default:
		return srs.Grade{}, errors.NewInvalidInputError("scale", in.Scale.String())
	}
}

// ReviewOutcome is what the client sees after a review.
type ReviewOutcome struct {
	Progress    models.CardProgress `json:"progress"`
	Points      int                 `json:"points"`
	Passed      bool                `json:"passed"`
	WasNew      bool                `json:"was_new"`
	UserStreak  int                 `json:"user_streak"`
	TotalPoints int                 `json:"total_points"`
}

// StudyLimits caps how many cards are presented per UTC day.
type StudyLimits struct {
	NewCardsPerDay int
	DueCardsPerDay int
}

// StudyService handles reviews and the study queue
type StudyService interface {
	Review(ctx context.Context, userID, cardID int64, in ReviewInput) (*ReviewOutcome, error)
	NextCards(ctx context.Context, userID, deckID int64) ([]models.StudyCard, error)
	ResetDeck(ctx context.Context, userID, deckID int64) (int64, error)
	History(ctx context.Context, userID, cardID int64, limit int) ([]models.ReviewHistory, error)
}

type studyService struct {
	store     repository.Store
	scheduler *srs.Scheduler
	queue     jobs.JobQueue
	limits    StudyLimits
}

// NewStudyService creates a new StudyService. queue may be nil, in which case
// achievements are not checked after reviews.
func NewStudyService(store repository.Store, scheduler *srs.Scheduler, queue jobs.JobQueue, limits StudyLimits) StudyService {
	return &studyService{
		store:     store,
		scheduler: scheduler,
		queue:     queue,
		limits:    limits,
	}
}

func (s *studyService) Review(ctx context.Context, userID, cardID int64, in ReviewInput) (*ReviewOutcome, error) {
	log := logger.FromContext(ctx).WithUser(userID).WithCard(cardID)

	grade, err := in.Grade()
	if err != nil {
		log.Debug("rejected review input: %v", err)
		return nil, err
	}
	event := srs.Event{Grade: grade, ResponseTimeMs: in.ResponseTimeMs}

	card, err := s.store.Decks().GetCard(ctx, cardID)
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", cardID)
	}

	var out ReviewOutcome
	err = s.store.WithTx(ctx, func(repos repository.Repositories) error {
		current, err := repos.Progress().Get(ctx, userID, cardID)
		if err != nil {
			return errors.NewInternalError(err)
		}

		res, err := s.scheduler.Review(stateFromProgress(current), event)
		if err != nil {
			return err
		}

		progress := progressFromState(userID, cardID, res.State)
		if err := repos.Progress().Upsert(ctx, progress); err != nil {
			return errors.NewInternalError(err)
		}

		_, err = repos.Reviews().Insert(ctx, models.ReviewHistory{
			UserID:         userID,
			CardID:         cardID,
			Scale:          grade.Scale.String(),
			Quality:        grade.Quality,
			Difficulty:     string(grade.Difficulty),
			ResponseTimeMs: in.ResponseTimeMs,
			Points:         res.Points,
			IntervalDays:   res.Interval,
			EaseFactor:     res.EaseFactor,
			WasNew:         current == nil,
			ReviewedAt:     res.LastReviewed,
		})
		if err != nil {
			return errors.NewInternalError(err)
		}

		stats, err := repos.Stats().Get(ctx, userID)
		if err != nil {
			return errors.NewInternalError(err)
		}
		userStreak := srs.NextStreak(stats.CurrentStreak, grade.Difficulty)
		if err := repos.Stats().AddReview(ctx, userID, res.Points, userStreak, res.LastReviewed); err != nil {
			return errors.NewInternalError(err)
		}

		out = ReviewOutcome{
			Progress:    progress,
			Points:      res.Points,
			Passed:      res.Passed,
			WasNew:      current == nil,
			UserStreak:  userStreak,
			TotalPoints: stats.TotalPoints + res.Points,
		}
		return nil
	})
	if err != nil {
		appErr, ok := errors.As(err)
		if !ok {
			appErr = errors.NewInternalError(err)
		}
		if appErr.Code == errors.ErrCodeInternal {
			log.Error("failed to record review: %v", err)
		} else {
			log.Warn("review rejected: %v", err)
		}
		return nil, appErr
	}

	log.Info("reviewed card: scale=%s quality=%d points=%d interval=%d", grade.Scale, grade.Quality, out.Points, out.Progress.IntervalDays)

	if s.queue != nil {
		if err := s.queue.EnqueueAchievementCheck(userID); err != nil {
			log.Warn("failed to enqueue achievement check: %v", err)
		}
	}

	return &out, nil
}

func (s *studyService) NextCards(ctx context.Context, userID, deckID int64) ([]models.StudyCard, error) {
	log := logger.FromContext(ctx).WithUser(userID).WithDeck(deckID)

	if err := s.requireDeck(ctx, deckID); err != nil {
		return nil, err
	}

	now := s.scheduler.Now()
	dayStart := startOfDay(now)

	newToday, err := s.countReviews(ctx, userID, deckID, dayStart, true)
	if err != nil {
		log.Error("failed to count new reviews: %v", err)
		return nil, errors.NewInternalError(err)
	}
	dueToday, err := s.countReviews(ctx, userID, deckID, dayStart, false)
	if err != nil {
		log.Error("failed to count due reviews: %v", err)
		return nil, errors.NewInternalError(err)
	}

	var cards []models.StudyCard

	if remaining := s.limits.DueCardsPerDay - dueToday; remaining > 0 {
		tracked, err := s.store.Progress().Tracked(ctx, models.ProgressFilter{
			UserID:    userID,
			DeckID:    deckID,
			DueBefore: &now,
			Limit:     remaining,
		})
		if err != nil {
			log.Error("failed to load due cards: %v", err)
			return nil, errors.NewInternalError(err)
		}
		for _, c := range tracked {
			if c.Progress != nil && srs.IsDue(now, c.Progress.DueAt) {
				cards = append(cards, c)
			}
		}
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].Progress.DueAt.Before(cards[j].Progress.DueAt)
		})
		if len(cards) > remaining {
			cards = cards[:remaining]
		}
	}

	if remaining := s.limits.NewCardsPerDay - newToday; remaining > 0 {
		fresh, err := s.store.Progress().NewCards(ctx, userID, deckID, remaining)
		if err != nil {
			log.Error("failed to load new cards: %v", err)
			return nil, errors.NewInternalError(err)
		}
		for _, c := range fresh {
			cards = append(cards, models.StudyCard{Card: c, IsNew: true})
		}
	}

	log.Debug("study queue built: cards=%d new_today=%d due_today=%d", len(cards), newToday, dueToday)
	return cards, nil
}

func (s *studyService) countReviews(ctx context.Context, userID, deckID int64, since time.Time, wasNew bool) (int, error) {
	return s.store.Reviews().Count(ctx, models.ReviewFilter{
		UserID: userID,
		DeckID: deckID,
		Since:  &since,
		WasNew: &wasNew,
	})
}

func (s *studyService) ResetDeck(ctx context.Context, userID, deckID int64) (int64, error) {
	log := logger.FromContext(ctx)

	if err := s.requireDeck(ctx, deckID); err != nil {
		return 0, err
	}

	n, err := s.store.Progress().DeleteForDeck(ctx, userID, deckID)
	if err != nil {
		log.Error("failed to reset deck %d: %v", deckID, err)
		return 0, errors.NewInternalError(err)
	}
	log.Info("reset deck %d for user %d: %d cards back to new", deckID, userID, n)
	return n, nil
}

func (s *studyService) History(ctx context.Context, userID, cardID int64, limit int) ([]models.ReviewHistory, error) {
	history, err := s.store.Reviews().List(ctx, models.ReviewFilter{
		UserID: userID,
		CardID: cardID,
		Limit:  limit,
	})
	if err != nil {
		logger.FromContext(ctx).Error("failed to list review history: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return history, nil
}

func (s *studyService) requireDeck(ctx context.Context, deckID int64) error {
	deck, err := s.store.Decks().Get(ctx, deckID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get deck: %v", err)
		return errors.NewInternalError(err)
	}
	if deck == nil {
		return errors.NewNotFoundError("deck", deckID)
	}
	return nil
}
