package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/campusflow/catalogue-api/internal/service"
	"github.com/campusflow/catalogue-api/pkg/response"
)

// HealthHandler exposes liveness, readiness, and stats endpoints.
type HealthHandler struct {
	db      *sqlx.DB
	metrics *service.MetricsService
}

// NewHealthHandler constructs a health handler.
func NewHealthHandler(db *sqlx.DB, metrics *service.MetricsService) *HealthHandler {
	return &HealthHandler{db: db, metrics: metrics}
}

// Health reports process liveness.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports readiness, checking database connectivity.
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.db != nil {
		if err := h.db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "database unreachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// Stats godoc
// @Summary Aggregated runtime statistics
// @Tags System
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /stats [get]
func (h *HealthHandler) Stats(c *gin.Context) {
	response.OK(c, h.metrics.Snapshot())
}
