package deck

import (
	"context"
	"strconv"
	"strings"
)

// ExportText renders a deck as a plain-text decklist: a "# name" line, the
// commander, then "<qty> <name>" per card.
func ExportText(d Detail) string {
	lines := []string{}
	if d.Name != "" {
		lines = append(lines, "# "+d.Name)
	}
	if d.Commander != nil {
		lines = append(lines, "1 "+*d.Commander)
	}
	for _, c := range d.Cards {
		lines = append(lines, strconv.Itoa(c.Quantity)+" "+c.CardName)
	}
	return strings.Join(lines, "\n") + "\n"
}

// Export loads a deck and renders it with ExportText.
func (s *Service) Export(ctx context.Context, deckID uint) (string, error) {
	d, err := s.GetDeck(ctx, deckID)
	if err != nil {
		return "", err
	}
	return ExportText(*d), nil
}
