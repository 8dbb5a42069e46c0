package service

import (
	"github.com/tomasvik/geovisits/internal/models"
	"github.com/tomasvik/geovisits/internal/repository"
)

// VisitService exposes visit lifecycle operations outside the ping path:
// read access for display/export plus the manual end/delete actions.
type VisitService struct {
	visits     *repository.VisitRepository
	candidates *repository.CandidateRepository
}

// NewVisitService creates a new visit service
func NewVisitService(visits *repository.VisitRepository, candidates *repository.CandidateRepository) *VisitService {
	return &VisitService{visits: visits, candidates: candidates}
}

// List retrieves visit events with filtering and pagination
func (s *VisitService) List(filter models.VisitFilter) ([]models.VisitEvent, int64, error) {
	return s.visits.List(filter)
}

// Get retrieves a single visit event by ID
func (s *VisitService) Get(id string) (*models.VisitEvent, error) {
	return s.visits.GetByID(id)
}

// End closes a visit at its last confirmed sighting and clears any lingering
// candidate for the same (user, place), so a half-accumulated sequence cannot
// immediately resurrect the visit.
func (s *VisitService) End(id string) error {
	v, err := s.visits.GetByID(id)
	if err != nil {
		return err
	}
	if v == nil {
		return models.ErrNotFound
	}
	if err := s.visits.End(id); err != nil {
		return err
	}
	if v.PlaceID != nil {
		return s.candidates.DeleteByUserPlace(v.UserID, *v.PlaceID)
	}
	return nil
}

// Delete removes a visit event entirely (user-initiated), clearing any
// lingering candidate for the same (user, place)
func (s *VisitService) Delete(id string) error {
	v, err := s.visits.GetByID(id)
	if err != nil {
		return err
	}
	if v == nil {
		return models.ErrNotFound
	}
	if err := s.visits.Delete(id); err != nil {
		return err
	}
	if v.PlaceID != nil {
		return s.candidates.DeleteByUserPlace(v.UserID, *v.PlaceID)
	}
	return nil
}
