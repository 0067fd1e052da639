package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "BinderBase API is running"})
}

func (s *Server) testDB(c *gin.Context) {
	if err := s.db.Ping(c.Request.Context()); err != nil {
		s.fail(c, err)
		return
	}
	ok(c, gin.H{
		"message":   "Database connection successful",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
