package service

import (
	"log"
	"time"

	"github.com/tomasvik/geovisits/internal/repository"
)

// CleanupService evicts abandoned candidates and force-closes idle visits.
// It is the only component that mutates state outside the ping path; it only
// touches expired rows, so it is idempotent and safe to run concurrently
// with ping processing.
type CleanupService struct {
	candidates *repository.CandidateRepository
	visits     *repository.VisitRepository
	policy     *PolicyService
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(candidates *repository.CandidateRepository, visits *repository.VisitRepository, policy *PolicyService) *CleanupService {
	return &CleanupService{candidates: candidates, visits: visits, policy: policy}
}

// Run performs one cleanup pass at the given time
func (s *CleanupService) Run(now time.Time) error {
	policy := s.policy.Current()
	nowUTC := now.UTC().Unix()

	evicted, err := s.candidates.DeleteStale(nowUTC, int64(policy.CandidateStaleAfter().Seconds()))
	if err != nil {
		return err
	}

	closed, err := s.visits.CloseIdle(nowUTC, int64(policy.EndVisitAfter().Seconds()))
	if err != nil {
		return err
	}

	if evicted > 0 || closed > 0 {
		log.Printf("[CleanupService] evicted %d stale candidates, closed %d idle visits", evicted, closed)
	}
	return nil
}
