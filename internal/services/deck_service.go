package services

import (
	"context"
	"strings"

	"github.com/vytor/quizflash/internal/errors"
	"github.com/vytor/quizflash/internal/logger"
	"github.com/vytor/quizflash/internal/models"
	"github.com/vytor/quizflash/internal/repository"
)

// DeckService handles decks and their cards
type DeckService interface {
	CreateDeck(ctx context.Context, ownerID int64, name, description string) (*models.Deck, error)
	GetDeck(ctx context.Context, id int64) (*models.Deck, error)
	ListDecks(ctx context.Context, ownerID int64) ([]models.Deck, error)
	AddCard(ctx context.Context, deckID int64, front, back string) (*models.Card, error)
	Cards(ctx context.Context, deckID int64) ([]models.Card, error)
}

type deckService struct {
	decks repository.DeckRepository
}

// NewDeckService creates a new DeckService
func NewDeckService(decks repository.DeckRepository) DeckService {
	return &deckService{decks: decks}
}

func (s *deckService) CreateDeck(ctx context.Context, ownerID int64, name, description string) (*models.Deck, error) {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("name", "must not be empty")
	}

	deck := models.Deck{OwnerID: ownerID, Name: name, Description: description}
	id, err := s.decks.Create(ctx, deck)
	if err != nil {
		log.Error("failed to create deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	deck.ID = id
	log.Info("created deck %d for owner %d", id, ownerID)
	return &deck, nil
}

func (s *deckService) GetDeck(ctx context.Context, id int64) (*models.Deck, error) {
	deck, err := s.decks.Get(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", id)
	}
	return deck, nil
}

func (s *deckService) ListDecks(ctx context.Context, ownerID int64) ([]models.Deck, error) {
	decks, err := s.decks.List(ctx, ownerID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list decks: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return decks, nil
}

func (s *deckService) AddCard(ctx context.Context, deckID int64, front, back string) (*models.Card, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(front) == "" {
		return nil, errors.NewValidationError("front", "must not be empty")
	}
	if strings.TrimSpace(back) == "" {
		return nil, errors.NewValidationError("back", "must not be empty")
	}
	if _, err := s.GetDeck(ctx, deckID); err != nil {
		return nil, err
	}

	card := models.Card{DeckID: deckID, Front: front, Back: back}
	id, err := s.decks.AddCard(ctx, card)
	if err != nil {
		log.Error("failed to add card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	card.ID = id
	log.Debug("added card %d to deck %d", id, deckID)
	return &card, nil
}

func (s *deckService) Cards(ctx context.Context, deckID int64) ([]models.Card, error) {
	if _, err := s.GetDeck(ctx, deckID); err != nil {
		return nil, err
	}
	cards, err := s.decks.Cards(ctx, deckID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list cards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return cards, nil
}
