package deck

import (
	"context"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/youruser/binderbase/internal/store"
)

// deckCards adapts membership rows to fuzzy.Source.
type deckCards []store.DeckCard

func (c deckCards) Len() int            { return len(c) }
func (c deckCards) String(i int) string { return c[i].CardName }

// FindCards fuzzy-matches query against the card names in a deck, best match
// first. An empty query returns every card in name order.
func (s *Service) FindCards(ctx context.Context, deckID uint, query string) ([]store.DeckCard, error) {
	d, err := s.GetDeck(ctx, deckID)
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return d.Cards, nil
	}
	matches := fuzzy.FindFrom(query, deckCards(d.Cards))
	out := make([]store.DeckCard, 0, len(matches))
	for _, m := range matches {
		out = append(out, d.Cards[m.Index])
	}
	return out, nil
}
