package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tomasvik/geovisits/internal/models"
	"github.com/tomasvik/geovisits/internal/service"
	"github.com/tomasvik/geovisits/pkg/response"
)

// PingHandler handles HTTP requests for GPS ping ingestion
type PingHandler struct {
	detection *service.DetectionService
}

// NewPingHandler creates a new ping handler
func NewPingHandler(detection *service.DetectionService) *PingHandler {
	return &PingHandler{detection: detection}
}

// ProcessPing handles POST /api/v1/pings
func (h *PingHandler) ProcessPing(c *gin.Context) {
	var ping models.Ping
	if err := c.ShouldBindJSON(&ping); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid ping payload")
		return
	}

	outcome, err := h.detection.ProcessPing(ping)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to process ping")
		return
	}

	response.Outcome(c, outcome)
}
