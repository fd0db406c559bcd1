package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/poiesic/toolshelf/core"
	"github.com/poiesic/toolshelf/search"
	"github.com/poiesic/toolshelf/storage"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgNotFound         = "item not found"
	msgInternal         = "internal error"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func writeError(c *gin.Context, status int, message string, details any) {
	c.JSON(status, ErrorResponse{Error: message, Details: details})
}

func writeOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// handleError maps domain errors to HTTP responses.
// Returns true if an error was handled, false otherwise.
func (s *Server) handleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, search.ErrInvalidInput),
		errors.Is(err, core.ErrMalformedConditions),
		errors.Is(err, storage.ErrInvalidQuery):
		writeError(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		writeError(c, http.StatusNotFound, msgNotFound, nil)
	default:
		s.logger.Error("request failed", "path", c.FullPath(), "err", err)
		writeError(c, http.StatusInternalServerError, msgInternal, nil)
	}
	return true
}
