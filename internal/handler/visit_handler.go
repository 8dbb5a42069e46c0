package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tomasvik/geovisits/internal/models"
	"github.com/tomasvik/geovisits/internal/service"
	"github.com/tomasvik/geovisits/pkg/response"
)

// VisitHandler handles HTTP requests for visit events
type VisitHandler struct {
	service *service.VisitService
}

// NewVisitHandler creates a new visit handler
func NewVisitHandler(service *service.VisitService) *VisitHandler {
	return &VisitHandler{service: service}
}

// ListVisits handles GET /api/v1/visits
func (h *VisitHandler) ListVisits(c *gin.Context) {
	var filter models.VisitFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	filter.Normalize()
	visits, total, err := h.service.List(filter)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to list visits")
		return
	}

	totalPages := int(total) / filter.PageSize
	if int(total)%filter.PageSize > 0 {
		totalPages++
	}

	response.OK(c, models.VisitsResponse{
		Data:       visits,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	})
}

// GetVisit handles GET /api/v1/visits/:id
func (h *VisitHandler) GetVisit(c *gin.Context) {
	visit, err := h.service.Get(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to get visit")
		return
	}
	if visit == nil {
		response.NotFound(c, "Visit not found")
		return
	}
	response.OK(c, visit)
}

// EndVisit handles POST /api/v1/visits/:id/end
func (h *VisitHandler) EndVisit(c *gin.Context) {
	err := h.service.End(c.Param("id"))
	if errors.Is(err, models.ErrNotFound) {
		response.NotFound(c, "Visit not found")
		return
	}
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to end visit")
		return
	}
	response.OK(c, nil)
}

// DeleteVisit handles DELETE /api/v1/visits/:id
func (h *VisitHandler) DeleteVisit(c *gin.Context) {
	err := h.service.Delete(c.Param("id"))
	if errors.Is(err, models.ErrNotFound) {
		response.NotFound(c, "Visit not found")
		return
	}
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to delete visit")
		return
	}
	response.OK(c, nil)
}
