package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tomasvik/geovisits/internal/models"
	"github.com/tomasvik/geovisits/internal/service"
	"github.com/tomasvik/geovisits/pkg/response"
)

// SettingsHandler handles HTTP requests for the detection policy and the
// manual cleanup trigger
type SettingsHandler struct {
	policy  *service.PolicyService
	cleanup *service.CleanupService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(policy *service.PolicyService, cleanup *service.CleanupService) *SettingsHandler {
	return &SettingsHandler{policy: policy, cleanup: cleanup}
}

// GetPolicy handles GET /api/v1/settings/detection
func (h *SettingsHandler) GetPolicy(c *gin.Context) {
	response.OK(c, h.policy.Current())
}

// UpdatePolicy handles PUT /api/v1/settings/detection
func (h *SettingsHandler) UpdatePolicy(c *gin.Context) {
	var policy models.DetectionPolicy
	if err := c.ShouldBindJSON(&policy); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid policy payload")
		return
	}

	err := h.policy.Update(policy)
	if errors.Is(err, models.ErrInvalidPolicy) {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to update policy")
		return
	}

	response.OK(c, h.policy.Current())
}

// RunCleanup handles POST /api/v1/admin/cleanup
func (h *SettingsHandler) RunCleanup(c *gin.Context) {
	if err := h.cleanup.Run(time.Now()); err != nil {
		response.Fail(c, http.StatusInternalServerError, "Cleanup failed")
		return
	}
	response.OK(c, nil)
}
