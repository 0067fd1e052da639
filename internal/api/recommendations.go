package api

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/youruser/binderbase/internal/apperr"
)

func (s *Server) commanderRecommendations(c *gin.Context) {
	recs, err := s.recs.ByCommander(c.Request.Context(), c.Param("name"))
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, gin.H{"recommendations": recs})
}

func (s *Server) deckRecommendations(c *gin.Context) {
	id, err := idParam(c, "deckId", "deck")
	if err != nil {
		s.fail(c, err)
		return
	}
	d, err := s.decks.GetDeck(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if d.Commander == nil {
		s.fail(c, apperr.Validation("Deck %d has no commander", id))
		return
	}
	recs, err := s.recs.ByCommander(c.Request.Context(), *d.Commander)
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, gin.H{"recommendations": recs})
}

// colorRecommendations accepts "WG", "W,G" or "w g".
func (s *Server) colorRecommendations(c *gin.Context) {
	var colors []string
	for _, r := range c.Query("colors") {
		if r == ',' || r == ' ' {
			continue
		}
		colors = append(colors, strings.ToUpper(string(r)))
	}
	ok(c, gin.H{"recommendations": s.recs.ByColorIdentity(c.Request.Context(), colors)})
}
