package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/arabchat/arabchat-server/internal/directory"
)

// APIHandlers provides HTTP handlers for REST API endpoints.
type APIHandlers struct {
	directory *directory.Directory
	log       *zerolog.Logger
}

// NewAPIHandlers creates a new API handlers instance.
func NewAPIHandlers(dir *directory.Directory, logger *zerolog.Logger) *APIHandlers {
	return &APIHandlers{
		directory: dir,
		log:       logger,
	}
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Health reports liveness.
// GET /api/health
func (h *APIHandlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// CheckUsername reports whether a candidate username is free to register.
// Malformed candidates come back unavailable, never as an HTTP error.
// GET /api/check-username?u=name
func (h *APIHandlers) CheckUsername(c *gin.Context) {
	candidate := c.Query("u")

	result, err := h.directory.CheckAvailability(c.Request.Context(), candidate)
	if err != nil {
		h.log.Error().Err(err).Str("candidate", candidate).Msg("failed to check username")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, result)
}
