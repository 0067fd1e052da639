// Package deck reconciles a user's deck contents against canonical card
// records: name resolution, merge-on-insert, quantity updates and cascading
// deck deletion.
package deck

import (
	"context"

	"github.com/youruser/binderbase/internal/cards"
	"github.com/youruser/binderbase/internal/store"
)

// Detail is a deck header together with its membership rows ordered by card name.
type Detail struct {
	store.Deck
	Cards []store.DeckCard `json:"cards"`
}

// CardLookup resolves a user-typed card name to its canonical record.
type CardLookup interface {
	ByExactName(ctx context.Context, name string) (cards.Card, error)
}
