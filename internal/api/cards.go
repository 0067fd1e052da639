package api

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/youruser/binderbase/internal/cards"
)

const (
	defaultSearchLimit = 175
	maxSearchLimit     = 1000
)

// splitList turns "a, b,c" into [a b c].
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (s *Server) searchCards(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		s.fail(c, badRequest("Search query is required"))
		return
	}
	limit := defaultSearchLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.fail(c, badRequest("limit must be a positive integer"))
			return
		}
		limit = min(n, maxSearchLimit)
	}
	opt := cards.FilterOptions{
		Colors:    splitList(strings.ToUpper(c.Query("colors"))),
		Types:     splitList(c.Query("type")),
		FreeWords: c.Query("words"),
	}

	out := []cards.Card{}
	for card := range cards.Filter(s.cards.Search(c.Request.Context(), q), opt) {
		out = append(out, card)
		if len(out) >= limit {
			break
		}
	}
	ok(c, gin.H{"cards": out})
}

func (s *Server) autocomplete(c *gin.Context) {
	ok(c, gin.H{"suggestions": s.cards.Autocomplete(c.Request.Context(), c.Query("q"))})
}

func (s *Server) searchCommanders(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		s.fail(c, badRequest("Search query is required"))
		return
	}
	ok(c, gin.H{"commanders": s.cards.SearchCommanders(c.Request.Context(), q)})
}
