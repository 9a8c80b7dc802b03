package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harshl7081/ecowaste/internal/infrastructure/database/mongo"
)

// HealthHandler reports service liveness and database reachability.
type HealthHandler struct {
	logger *zap.Logger
	db     *mongo.Client
}

// NewHealthHandler creates the handler.
func NewHealthHandler(logger *zap.Logger, db *mongo.Client) *HealthHandler {
	return &HealthHandler{
		logger: logger.Named("health_handler"),
		db:     db,
	}
}

// Health handles GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		h.logger.Error("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unavailable",
			"database": "down",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": "up",
	})
}
