package deck

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/youruser/binderbase/internal/apperr"
	"github.com/youruser/binderbase/internal/store"
)

// MaxQuantity bounds the copies of one card a deck row may hold.
const MaxQuantity = 9999

// Service owns the deck/card reconciliation rules. It holds no state of its
// own beyond its injected dependencies.
type Service struct {
	repo   store.Repository
	lookup CardLookup
	logger *zap.Logger
}

func NewService(repo store.Repository, lookup CardLookup, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, lookup: lookup, logger: logger.Named("deck")}
}

func (s *Service) ListDecks(ctx context.Context) ([]store.Deck, error) {
	return s.repo.ListDecks(ctx)
}

// CreateDeck inserts a new deck. Names need not be unique.
func (s *Service) CreateDeck(ctx context.Context, name, format, commander string) (*store.Deck, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("Deck name is required")
	}
	format = strings.TrimSpace(format)
	if format == "" {
		format = store.DefaultFormat
	}
	d := &store.Deck{Name: name, Format: format, Commander: optional(commander)}
	if err := s.repo.CreateDeck(ctx, d); err != nil {
		return nil, err
	}
	s.logger.Info("deck created", zap.Uint("deck_id", d.ID), zap.String("name", d.Name))
	return d, nil
}

// GetDeck returns the deck header and its cards, fetched as two scoped queries.
func (s *Service) GetDeck(ctx context.Context, deckID uint) (*Detail, error) {
	d, err := s.repo.GetDeck(ctx, deckID)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.DeckCards(ctx, deckID)
	if err != nil {
		return nil, err
	}
	return &Detail{Deck: *d, Cards: rows}, nil
}

// SetCommander replaces the deck's commander; an empty name clears it.
func (s *Service) SetCommander(ctx context.Context, deckID uint, commander string) (*store.Deck, error) {
	return s.repo.SetCommander(ctx, deckID, optional(commander))
}

// DeleteDeck removes the deck's cards and then its header in one transaction.
// Deleting a deck that does not exist succeeds.
func (s *Service) DeleteDeck(ctx context.Context, deckID uint) error {
	var cardsRemoved, decksRemoved int64
	err := s.repo.WithinTx(ctx, func(tx store.Repository) error {
		n, err := tx.DeleteDeckCards(ctx, deckID)
		if err != nil {
			return err
		}
		cardsRemoved = n
		decksRemoved, err = tx.DeleteDeck(ctx, deckID)
		return err
	})
	if err != nil {
		return err
	}
	s.logger.Info("deck deleted",
		zap.Uint("deck_id", deckID),
		zap.Int64("cards_removed", cardsRemoved),
		zap.Bool("existed", decksRemoved > 0))
	return nil
}

// AddCard resolves rawName to its canonical card and adds quantity copies to
// the deck. A card already in the deck has its quantity increased instead of
// gaining a second row.
//
// The read and the write are not isolated: two concurrent adds of the same
// card can lose one of the increments.
func (s *Service) AddCard(ctx context.Context, deckID uint, rawName string, quantity int) (*store.DeckCard, error) {
	rawName = strings.TrimSpace(rawName)
	if rawName == "" {
		return nil, apperr.Validation("Card name is required")
	}
	if quantity < 1 {
		return nil, apperr.Validation("Quantity must be a positive integer")
	}
	if quantity > MaxQuantity {
		return nil, apperr.Validation("Quantity must be at most %d", MaxQuantity)
	}
	if _, err := s.repo.GetDeck(ctx, deckID); err != nil {
		return nil, err
	}

	card, err := s.lookup.ByExactName(ctx, rawName)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindDeckCard(ctx, deckID, card.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Quantity > MaxQuantity-quantity {
			return nil, apperr.Validation("Quantity must be at most %d", MaxQuantity)
		}
		if err := s.repo.SetDeckCardQuantity(ctx, existing, existing.Quantity+quantity); err != nil {
			return nil, err
		}
		s.logger.Debug("card merged",
			zap.Uint("deck_id", deckID), zap.String("card", card.Name), zap.Int("quantity", existing.Quantity))
		return existing, nil
	}

	row := &store.DeckCard{
		DeckID:    deckID,
		CardName:  card.Name,
		CardImage: optional(card.Image),
		Quantity:  quantity,
	}
	if err := s.repo.InsertDeckCard(ctx, row); err != nil {
		return nil, err
	}
	s.logger.Debug("card added",
		zap.Uint("deck_id", deckID), zap.String("card", card.Name), zap.Int("quantity", quantity))
	return row, nil
}

// SetCardQuantity sets a row's quantity. Zero deletes the row and succeeds
// whether or not it existed; it returns a nil row. A positive quantity on a
// row that is not in this deck is a not-found error.
func (s *Service) SetCardQuantity(ctx context.Context, deckID, cardID uint, quantity int) (*store.DeckCard, error) {
	if quantity < 0 {
		return nil, apperr.Validation("Valid quantity is required")
	}
	if quantity > MaxQuantity {
		return nil, apperr.Validation("Quantity must be at most %d", MaxQuantity)
	}
	if quantity == 0 {
		n, err := s.repo.DeleteDeckCard(ctx, deckID, cardID)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("card removed",
			zap.Uint("deck_id", deckID), zap.Uint("card_id", cardID), zap.Bool("existed", n > 0))
		return nil, nil
	}

	row, err := s.repo.GetDeckCard(ctx, deckID, cardID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetDeckCardQuantity(ctx, row, quantity); err != nil {
		return nil, err
	}
	return row, nil
}

// RemoveCard is SetCardQuantity with zero.
func (s *Service) RemoveCard(ctx context.Context, deckID, cardID uint) error {
	_, err := s.SetCardQuantity(ctx, deckID, cardID, 0)
	return err
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
