package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tomasvik/geovisits/internal/models"
	"github.com/tomasvik/geovisits/internal/service"
	"github.com/tomasvik/geovisits/pkg/response"
)

// PlaceHandler handles HTTP requests for the trip/region/place hierarchy
type PlaceHandler struct {
	service *service.PlaceService
}

// NewPlaceHandler creates a new place handler
func NewPlaceHandler(service *service.PlaceService) *PlaceHandler {
	return &PlaceHandler{service: service}
}

type createTripRequest struct {
	UserID string `json:"userId" binding:"required"`
	Name   string `json:"name" binding:"required"`
}

// CreateTrip handles POST /api/v1/trips
func (h *PlaceHandler) CreateTrip(c *gin.Context) {
	var req createTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid trip payload")
		return
	}
	trip, err := h.service.CreateTrip(req.UserID, req.Name)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to create trip")
		return
	}
	response.Created(c, trip)
}

type createRegionRequest struct {
	TripID string `json:"tripId" binding:"required"`
	Name   string `json:"name" binding:"required"`
}

// CreateRegion handles POST /api/v1/regions
func (h *PlaceHandler) CreateRegion(c *gin.Context) {
	var req createRegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid region payload")
		return
	}
	region, err := h.service.CreateRegion(req.TripID, req.Name)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to create region")
		return
	}
	response.Created(c, region)
}

type createPlaceRequest struct {
	RegionID  string  `json:"regionId" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Latitude  float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude float64 `json:"longitude" binding:"min=-180,max=180"`
	Icon      string  `json:"icon"`
	Color     string  `json:"color"`
	Notes     string  `json:"notes"`
}

// CreatePlace handles POST /api/v1/places
func (h *PlaceHandler) CreatePlace(c *gin.Context) {
	var req createPlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid place payload")
		return
	}
	place, err := h.service.CreatePlace(models.Place{
		RegionID:  req.RegionID,
		Name:      req.Name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Icon:      req.Icon,
		Color:     req.Color,
		Notes:     req.Notes,
	})
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to create place")
		return
	}
	response.Created(c, place)
}

// GetPlace handles GET /api/v1/places/:id
func (h *PlaceHandler) GetPlace(c *gin.Context) {
	place, err := h.service.GetPlace(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to get place")
		return
	}
	if place == nil {
		response.NotFound(c, "Place not found")
		return
	}
	response.OK(c, place)
}

// DeletePlace handles DELETE /api/v1/places/:id
func (h *PlaceHandler) DeletePlace(c *gin.Context) {
	err := h.service.DeletePlace(c.Param("id"))
	if errors.Is(err, models.ErrNotFound) {
		response.NotFound(c, "Place not found")
		return
	}
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to delete place")
		return
	}
	response.OK(c, nil)
}
