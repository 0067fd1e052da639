package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/youruser/binderbase/internal/apperr"
	"github.com/youruser/binderbase/internal/logging"
)

// ok writes a success envelope: {"success": true, ...body}.
func ok(c *gin.Context, body gin.H) {
	if body == nil {
		body = gin.H{}
	}
	body["success"] = true
	c.JSON(http.StatusOK, body)
}

// fail writes an error envelope with the status mapped from err's kind.
// In debug mode, server errors also carry their error chain as details.
func (s *Server) fail(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	msg := err.Error()
	var ae *apperr.Error
	if errors.As(err, &ae) {
		msg = ae.Msg
	}
	body := gin.H{"success": false, "error": msg}
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		s.logger.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(logging.RequestIDKey)),
			zap.Error(err))
		if s.debug {
			body["details"] = err.Error()
		}
	}
	c.AbortWithStatusJSON(status, body)
}

func badRequest(msg string) error {
	return apperr.Validation("%s", msg)
}

// idParam parses a positive integer path parameter.
func idParam(c *gin.Context, name, label string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, apperr.Validation("Invalid %s id: %s", label, c.Param(name))
	}
	return uint(v), nil
}
