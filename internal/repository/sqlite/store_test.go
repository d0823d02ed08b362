package sqlite_test

import (
	"context"
	"database/sql"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/quizflash/internal/models"
	"github.com/vytor/quizflash/internal/repository"
	"github.com/vytor/quizflash/internal/repository/sqlite"
	"github.com/vytor/quizflash/internal/testutil"
)

var base = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

type StoreSuite struct {
	suite.Suite
	db    *sql.DB
	store repository.Store
}

func (s *StoreSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.store = sqlite.NewStore(s.db)
}

func (s *StoreSuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *StoreSuite) TestProgressGetMissingIsNil() {
	p, err := s.store.Progress().Get(context.Background(), 1, 99)
	s.Require().NoError(err)
	s.Assert().Nil(p)
}

func (s *StoreSuite) TestProgressUpsertRoundTrip() {
	ctx := context.Background()
	_, cards := testutil.SeedDeck(s.T(), s.db, 1, 1)

	p := testutil.Progress(1, cards[0], 6, base)
	p.Streak = 2
	p.TotalPoints = 40
	s.Require().NoError(s.store.Progress().Upsert(ctx, p))

	got, err := s.store.Progress().Get(ctx, 1, cards[0])
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal(6, got.IntervalDays)
	s.Assert().Equal(2.5, got.EaseFactor)
	s.Assert().Equal(2, got.Streak)
	s.Assert().Equal(40, got.TotalPoints)
	s.Assert().True(base.AddDate(0, 0, 6).Equal(got.DueAt))
	s.Assert().True(base.Equal(got.LastReviewedAt))

	p.IntervalDays = 15
	p.EaseFactor = 2.6
	p.DueAt = base.AddDate(0, 0, 15)
	s.Require().NoError(s.store.Progress().Upsert(ctx, p))

	got, err = s.store.Progress().Get(ctx, 1, cards[0])
	s.Require().NoError(err)
	s.Assert().Equal(15, got.IntervalDays)
	s.Assert().Equal(2.6, got.EaseFactor)
}

func (s *StoreSuite) TestProgressRejectsEaseBelowFloor() {
	ctx := context.Background()
	_, cards := testutil.SeedDeck(s.T(), s.db, 1, 1)

	p := testutil.Progress(1, cards[0], 1, base)
	p.EaseFactor = 1.0
	s.Assert().Error(s.store.Progress().Upsert(ctx, p))
}

func (s *StoreSuite) TestTrackedOrdersByDueDate() {
	ctx := context.Background()
	deckID, cards := testutil.SeedDeck(s.T(), s.db, 1, 3)

	s.Require().NoError(s.store.Progress().Upsert(ctx, testutil.Progress(1, cards[0], 10, base)))
	s.Require().NoError(s.store.Progress().Upsert(ctx, testutil.Progress(1, cards[1], 1, base)))
	s.Require().NoError(s.store.Progress().Upsert(ctx, testutil.Progress(1, cards[2], 3, base)))

	now := base.AddDate(0, 0, 3)
	due, err := s.store.Progress().Tracked(ctx, models.ProgressFilter{UserID: 1, DeckID: deckID, DueBefore: &now})
	s.Require().NoError(err)
	s.Require().Len(due, 2)
	s.Assert().Equal(cards[1], due[0].ID)
	s.Assert().Equal(cards[2], due[1].ID, "card due exactly now is included")
	s.Assert().NotNil(due[0].Progress)

	all, err := s.store.Progress().Tracked(ctx, models.ProgressFilter{UserID: 1, Limit: 2})
	s.Require().NoError(err)
	s.Assert().Len(all, 2)

	count, err := s.store.Progress().CountTracked(ctx, 1, &now)
	s.Require().NoError(err)
	s.Assert().Equal(2, count)
}

func (s *StoreSuite) TestNewCardsExcludesTracked() {
	ctx := context.Background()
	deckID, cards := testutil.SeedDeck(s.T(), s.db, 1, 3)
	s.Require().NoError(s.store.Progress().Upsert(ctx, testutil.Progress(1, cards[1], 1, base)))

	fresh, err := s.store.Progress().NewCards(ctx, 1, deckID, 10)
	s.Require().NoError(err)
	s.Require().Len(fresh, 2)
	s.Assert().Equal(cards[0], fresh[0].ID)
	s.Assert().Equal(cards[2], fresh[1].ID)

	// Another user has not studied anything.
	fresh, err = s.store.Progress().NewCards(ctx, 2, deckID, 10)
	s.Require().NoError(err)
	s.Assert().Len(fresh, 3)

	fresh, err = s.store.Progress().NewCards(ctx, 1, deckID, 0)
	s.Require().NoError(err)
	s.Assert().Empty(fresh)
}

func (s *StoreSuite) TestDeleteForDeckOnlyTouchesUserAndDeck() {
	ctx := context.Background()
	deckA, cardsA := testutil.SeedDeck(s.T(), s.db, 1, 2)
	_, cardsB := testutil.SeedDeck(s.T(), s.db, 1, 1)

	s.Require().NoError(s.store.Progress().Upsert(ctx, testutil.Progress(1, cardsA[0], 1, base)))
	s.Require().NoError(s.store.Progress().Upsert(ctx, testutil.Progress(1, cardsA[1], 1, base)))
	s.Require().NoError(s.store.Progress().Upsert(ctx, testutil.Progress(2, cardsA[0], 1, base)))
	s.Require().NoError(s.store.Progress().Upsert(ctx, testutil.Progress(1, cardsB[0], 1, base)))

	n, err := s.store.Progress().DeleteForDeck(ctx, 1, deckA)
	s.Require().NoError(err)
	s.Assert().Equal(int64(2), n)

	p, err := s.store.Progress().Get(ctx, 2, cardsA[0])
	s.Require().NoError(err)
	s.Assert().NotNil(p)

	p, err = s.store.Progress().Get(ctx, 1, cardsB[0])
	s.Require().NoError(err)
	s.Assert().NotNil(p)
}

func (s *StoreSuite) TestReviewHistoryFilters() {
	ctx := context.Background()
	deckID, cards := testutil.SeedDeck(s.T(), s.db, 1, 2)

	reviews := []models.ReviewHistory{
		{UserID: 1, CardID: cards[0], Scale: "three", Quality: 2, Difficulty: "easy", ResponseTimeMs: 5000, Points: 18, IntervalDays: 1, EaseFactor: 2.5, WasNew: true, ReviewedAt: base},
		{UserID: 1, CardID: cards[1], Scale: "three", Quality: 0, Difficulty: "hard", ResponseTimeMs: 9000, Points: 14, IntervalDays: 1, EaseFactor: 2.18, WasNew: true, ReviewedAt: base.Add(time.Hour)},
		{UserID: 1, CardID: cards[0], Scale: "three", Quality: 1, Difficulty: "medium", ResponseTimeMs: 4000, Points: 25, IntervalDays: 4, EaseFactor: 2.36, WasNew: false, ReviewedAt: base.AddDate(0, 0, 1)},
	}
	for _, r := range reviews {
		id, err := s.store.Reviews().Insert(ctx, r)
		s.Require().NoError(err)
		s.Assert().Greater(id, int64(0))
	}

	all, err := s.store.Reviews().List(ctx, models.ReviewFilter{UserID: 1})
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Assert().Equal("medium", all[0].Difficulty, "newest first")
	s.Assert().False(all[0].WasNew)

	since := base.AddDate(0, 0, 1)
	n, err := s.store.Reviews().Count(ctx, models.ReviewFilter{UserID: 1, Since: &since})
	s.Require().NoError(err)
	s.Assert().Equal(1, n)

	wasNew := true
	n, err = s.store.Reviews().Count(ctx, models.ReviewFilter{UserID: 1, DeckID: deckID, WasNew: &wasNew})
	s.Require().NoError(err)
	s.Assert().Equal(2, n)

	n, err = s.store.Reviews().Count(ctx, models.ReviewFilter{UserID: 1, CardID: cards[0]})
	s.Require().NoError(err)
	s.Assert().Equal(2, n)
}

func (s *StoreSuite) TestStatsAccumulate() {
	ctx := context.Background()

	st, err := s.store.Stats().Get(ctx, 7)
	s.Require().NoError(err)
	s.Assert().Equal(0, st.TotalPoints)
	s.Assert().Nil(st.LastReviewedAt)

	s.Require().NoError(s.store.Stats().AddReview(ctx, 7, 20, 1, base))
	s.Require().NoError(s.store.Stats().AddReview(ctx, 7, 30, 2, base.Add(time.Minute)))
	s.Require().NoError(s.store.Stats().AddReview(ctx, 7, 14, 0, base.Add(2*time.Minute)))

	st, err = s.store.Stats().Get(ctx, 7)
	s.Require().NoError(err)
	s.Assert().Equal(64, st.TotalPoints)
	s.Assert().Equal(0, st.CurrentStreak)
	s.Assert().Equal(2, st.BestStreak)
	s.Assert().Equal(3, st.ReviewsCount)
	s.Require().NotNil(st.LastReviewedAt)
	s.Assert().True(base.Add(2 * time.Minute).Equal(*st.LastReviewedAt))
}

func (s *StoreSuite) TestAchievementUnlockIsIdempotent() {
	ctx := context.Background()

	unlocked, err := s.store.Achievements().Unlock(ctx, 1, "first_review", base)
	s.Require().NoError(err)
	s.Assert().True(unlocked)

	unlocked, err = s.store.Achievements().Unlock(ctx, 1, "first_review", base.Add(time.Hour))
	s.Require().NoError(err)
	s.Assert().False(unlocked)

	list, err := s.store.Achievements().List(ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Assert().Equal("first_review", list[0].Code)
}

func (s *StoreSuite) TestWithTxRollsBackOnError() {
	ctx := context.Background()
	_, cards := testutil.SeedDeck(s.T(), s.db, 1, 1)
	boom := stderrors.New("boom")

	err := s.store.WithTx(ctx, func(r repository.Repositories) error {
		if err := r.Progress().Upsert(ctx, testutil.Progress(1, cards[0], 1, base)); err != nil {
			return err
		}
		return boom
	})
	s.Require().ErrorIs(err, boom)

	p, err := s.store.Progress().Get(ctx, 1, cards[0])
	s.Require().NoError(err)
	s.Assert().Nil(p)

	err = s.store.WithTx(ctx, func(r repository.Repositories) error {
		return r.Progress().Upsert(ctx, testutil.Progress(1, cards[0], 1, base))
	})
	s.Require().NoError(err)

	p, err = s.store.Progress().Get(ctx, 1, cards[0])
	s.Require().NoError(err)
	s.Assert().NotNil(p)
}

func (s *StoreSuite) TestDecksAndCards() {
	ctx := context.Background()

	deckID, err := s.store.Decks().Create(ctx, models.Deck{OwnerID: 3, Name: "chemistry"})
	s.Require().NoError(err)

	cardID, err := s.store.Decks().AddCard(ctx, models.Card{DeckID: deckID, Front: "H2O", Back: "water"})
	s.Require().NoError(err)

	deck, err := s.store.Decks().Get(ctx, deckID)
	s.Require().NoError(err)
	s.Require().NotNil(deck)
	s.Assert().Equal("chemistry", deck.Name)

	card, err := s.store.Decks().GetCard(ctx, cardID)
	s.Require().NoError(err)
	s.Require().NotNil(card)
	s.Assert().Equal("water", card.Back)

	decks, err := s.store.Decks().List(ctx, 3)
	s.Require().NoError(err)
	s.Assert().Len(decks, 1)

	cards, err := s.store.Decks().Cards(ctx, deckID)
	s.Require().NoError(err)
	s.Assert().Len(cards, 1)

	missing, err := s.store.Decks().Get(ctx, 999)
	s.Require().NoError(err)
	s.Assert().Nil(missing)
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}
