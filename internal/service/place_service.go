package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/tomasvik/geovisits/internal/models"
	"github.com/tomasvik/geovisits/internal/repository"
	"github.com/tomasvik/geovisits/internal/spatial"
)

// PlaceService handles business logic for the trip/region/place hierarchy
type PlaceService struct {
	repo *repository.PlaceRepository
}

// NewPlaceService creates a new place service
func NewPlaceService(repo *repository.PlaceRepository) *PlaceService {
	return &PlaceService{repo: repo}
}

// CreateTrip creates a trip for a user
func (s *PlaceService) CreateTrip(userID, name string) (*models.Trip, error) {
	trip := models.Trip{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now().UTC().Unix(),
	}
	if err := s.repo.CreateTrip(trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

// CreateRegion creates a region within a trip
func (s *PlaceService) CreateRegion(tripID, name string) (*models.Region, error) {
	region := models.Region{
		ID:        uuid.NewString(),
		TripID:    tripID,
		Name:      name,
		CreatedAt: time.Now().UTC().Unix(),
	}
	if err := s.repo.CreateRegion(region); err != nil {
		return nil, err
	}
	return &region, nil
}

// CreatePlace creates a place within a region, stamping its geohash for the
// proximity index
func (s *PlaceService) CreatePlace(place models.Place) (*models.Place, error) {
	place.ID = uuid.NewString()
	place.Geohash = spatial.EncodeGeohash(place.Latitude, place.Longitude, spatial.PlaceGeohashPrecision)
	place.CreatedAt = time.Now().UTC().Unix()
	if err := s.repo.CreatePlace(place); err != nil {
		return nil, err
	}
	return &place, nil
}

// GetPlace retrieves a single place by ID
func (s *PlaceService) GetPlace(id string) (*models.Place, error) {
	return s.repo.GetPlace(id)
}

// DeletePlace removes a place. Visit events referencing it keep their
// snapshot fields; their place_id becomes null.
func (s *PlaceService) DeletePlace(id string) error {
	return s.repo.DeletePlace(id)
}
