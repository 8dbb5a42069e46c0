package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/tomasvik/geovisits/internal/models"
	"github.com/tomasvik/geovisits/internal/repository"
)

// PolicyService caches the detection policy as an immutable snapshot and
// hands it to each component call. Updates validate, persist, then swap the
// snapshot, so in-flight pings keep the policy they started with.
type PolicyService struct {
	repo *repository.SettingsRepository

	mu      sync.RWMutex
	current models.DetectionPolicy
}

// NewPolicyService loads the stored policy (or the default) and caches it.
// A stored policy that fails validation is a fatal configuration error.
func NewPolicyService(repo *repository.SettingsRepository) (*PolicyService, error) {
	p, err := repo.Get()
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("stored detection policy is invalid: %w", err)
	}
	return &PolicyService{repo: repo, current: p}, nil
}

// Current returns the live policy snapshot
func (s *PolicyService) Current() models.DetectionPolicy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update validates, persists and activates a new policy
func (s *PolicyService) Update(p models.DetectionPolicy) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.repo.Save(p, time.Now().UTC().Unix()); err != nil {
		return err
	}
	s.mu.Lock()
	s.current = p
	s.mu.Unlock()
	return nil
}
