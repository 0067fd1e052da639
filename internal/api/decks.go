package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type createDeckRequest struct {
	Name      string `json:"name"`
	Format    string `json:"format"`
	Commander string `json:"commander"`
}

type commanderRequest struct {
	Commander *string `json:"commander"`
}

type addCardRequest struct {
	CardName string `json:"cardName"`
	Quantity *int   `json:"quantity"`
}

type quantityRequest struct {
	Quantity *int `json:"quantity"`
}

func (s *Server) listDecks(c *gin.Context) {
	decks, err := s.decks.ListDecks(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, gin.H{"decks": decks})
}

func (s *Server) createDeck(c *gin.Context) {
	var req createDeckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, badRequest("Deck name is required"))
		return
	}
	d, err := s.decks.CreateDeck(c.Request.Context(), req.Name, req.Format, req.Commander)
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, gin.H{"deck": d})
}

func (s *Server) getDeck(c *gin.Context) {
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
	ok(c, gin.H{"deck": d})
}

func (s *Server) deleteDeck(c *gin.Context) {
	id, err := idParam(c, "deckId", "deck")
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := s.decks.DeleteDeck(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	ok(c, gin.H{"message": "Deck deleted successfully"})
}

func (s *Server) setCommander(c *gin.Context) {
	id, err := idParam(c, "deckId", "deck")
	if err != nil {
		s.fail(c, err)
		return
	}
	var req commanderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, badRequest("Invalid request body"))
		return
	}
	name := ""
	if req.Commander != nil {
		name = *req.Commander
	}
	d, err := s.decks.SetCommander(c.Request.Context(), id, name)
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, gin.H{"deck": d})
}

func (s *Server) addCard(c *gin.Context) {
	id, err := idParam(c, "deckId", "deck")
	if err != nil {
		s.fail(c, err)
		return
	}
	var req addCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, badRequest("Card name is required"))
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	row, err := s.decks.AddCard(c.Request.Context(), id, req.CardName, quantity)
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, gin.H{"card": row})
}

func (s *Server) updateCard(c *gin.Context) {
	deckID, err := idParam(c, "deckId", "deck")
	if err != nil {
		s.fail(c, err)
		return
	}
	cardID, err := idParam(c, "cardId", "card")
	if err != nil {
		s.fail(c, err)
		return
	}
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		s.fail(c, badRequest("Valid quantity is required"))
		return
	}
	row, err := s.decks.SetCardQuantity(c.Request.Context(), deckID, cardID, *req.Quantity)
	if err != nil {
		s.fail(c, err)
		return
	}
	if row == nil {
		ok(c, gin.H{"message": "Card removed from deck"})
		return
	}
	ok(c, gin.H{"card": row})
}

func (s *Server) removeCard(c *gin.Context) {
	deckID, err := idParam(c, "deckId", "deck")
	if err != nil {
		s.fail(c, err)
		return
	}
	cardID, err := idParam(c, "cardId", "card")
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := s.decks.RemoveCard(c.Request.Context(), deckID, cardID); err != nil {
		s.fail(c, err)
		return
	}
	ok(c, gin.H{"message": "Card removed from deck"})
}

func (s *Server) findCards(c *gin.Context) {
	id, err := idParam(c, "deckId", "deck")
	if err != nil {
		s.fail(c, err)
		return
	}
	rows, err := s.decks.FindCards(c.Request.Context(), id, c.Query("q"))
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, gin.H{"cards": rows})
}

func (s *Server) exportDeck(c *gin.Context) {
	id, err := idParam(c, "deckId", "deck")
	if err != nil {
		s.fail(c, err)
		return
	}
	text, err := s.decks.Export(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"deck-%d.txt\"", id))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}
