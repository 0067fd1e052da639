package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	api := r.Group("/api")
	{
		api.GET("/health", s.health)
		api.GET("/test-db", s.testDB)

		api.GET("/decks", s.listDecks)
		api.POST("/decks", s.createDeck)
		api.GET("/decks/:deckId", s.getDeck)
		api.DELETE("/decks/:deckId", s.deleteDeck)
		api.PUT("/decks/:deckId/commander", s.setCommander)
		api.POST("/decks/:deckId/cards", s.addCard)
		api.PUT("/decks/:deckId/cards/:cardId", s.updateCard)
		api.DELETE("/decks/:deckId/cards/:cardId", s.removeCard)
		api.GET("/decks/:deckId/find", s.findCards)
		api.GET("/decks/:deckId/export", s.exportDeck)
		api.GET("/decks/:deckId/image", s.deckImage)
		api.GET("/decks/:deckId/qr", s.deckQR)
		api.GET("/decks/:deckId/recommendations", s.deckRecommendations)

		api.GET("/cards/search", s.searchCards)
		api.GET("/cards/autocomplete", s.autocomplete)
		api.GET("/commanders/search", s.searchCommanders)

		api.GET("/recommendations/commander/:name", s.commanderRecommendations)
		api.GET("/recommendations/colors", s.colorRecommendations)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Endpoint not found"})
	})
}
