package models

import (
	"fmt"
	"time"
)

// DetectionPolicy is the bundle of numeric knobs governing visit detection.
// It is persisted as a single app_settings row and injected as an immutable
// snapshot into each component call; the three time windows are derived from
// BaseWindowMinutes, never stored independently.
type DetectionPolicy struct {
	RequiredHits         int     `json:"requiredHits" db:"required_hits"`
	MinRadiusMeters      float64 `json:"minRadiusMeters" db:"min_radius_meters"`
	MaxRadiusMeters      float64 `json:"maxRadiusMeters" db:"max_radius_meters"`
	AccuracyMultiplier   float64 `json:"accuracyMultiplier" db:"accuracy_multiplier"`
	AccuracyRejectMeters float64 `json:"accuracyRejectMeters" db:"accuracy_reject_meters"` // 0 disables rejection
	SearchRadiusMeters   float64 `json:"searchRadiusMeters" db:"search_radius_meters"`
	BaseWindowMinutes    float64 `json:"baseWindowMinutes" db:"base_window_minutes"`
	MaxNoteChars         int     `json:"maxNoteChars" db:"max_note_chars"`
}

// DefaultDetectionPolicy returns the policy used until an operator tunes one.
func DefaultDetectionPolicy() DetectionPolicy {
	return DetectionPolicy{
		RequiredHits:         2,
		MinRadiusMeters:      35,
		MaxRadiusMeters:      100,
		AccuracyMultiplier:   2.0,
		AccuracyRejectMeters: 200,
		SearchRadiusMeters:   500,
		BaseWindowMinutes:    5,
		MaxNoteChars:         2000,
	}
}

// HitWindow is the maximum gap between consecutive pings that still counts
// toward the same confirmation sequence.
func (p DetectionPolicy) HitWindow() time.Duration {
	return time.Duration(p.BaseWindowMinutes * 1.6 * float64(time.Minute))
}

// CandidateStaleAfter is how long an unconfirmed candidate may sit without
// hits before cleanup evicts it.
func (p DetectionPolicy) CandidateStaleAfter() time.Duration {
	return time.Duration(p.BaseWindowMinutes * 12 * float64(time.Minute))
}

// EndVisitAfter is how long an open visit may go without pings before it is
// closed at its last confirmed sighting.
func (p DetectionPolicy) EndVisitAfter() time.Duration {
	return time.Duration(p.BaseWindowMinutes * 9 * float64(time.Minute))
}

// EffectiveRadius converts a ping's reported GPS accuracy into the distance
// threshold used to decide whether the ping counts as "at" a place. Returns
// ok=false when the accuracy is beyond the reject threshold; a nil accuracy
// falls back to the maximum radius.
func (p DetectionPolicy) EffectiveRadius(accuracyMeters *float64) (radius float64, ok bool) {
	if accuracyMeters == nil {
		return p.MaxRadiusMeters, true
	}
	acc := *accuracyMeters
	if p.AccuracyRejectMeters > 0 && acc > p.AccuracyRejectMeters {
		return 0, false
	}
	radius = acc * p.AccuracyMultiplier
	if radius < p.MinRadiusMeters {
		radius = p.MinRadiusMeters
	}
	if radius > p.MaxRadiusMeters {
		radius = p.MaxRadiusMeters
	}
	return radius, true
}

// Validate checks every knob against its allowed range, plus the
// search-vs-confirmation radius invariant. Violations are configuration
// errors, fatal at load/update time.
func (p DetectionPolicy) Validate() error {
	checks := []struct {
		name     string
		value    float64
		min, max float64
	}{
		{"requiredHits", float64(p.RequiredHits), 2, 5},
		{"minRadiusMeters", p.MinRadiusMeters, 10, 200},
		{"maxRadiusMeters", p.MaxRadiusMeters, 50, 500},
		{"accuracyMultiplier", p.AccuracyMultiplier, 0.5, 5.0},
		{"accuracyRejectMeters", p.AccuracyRejectMeters, 0, 1000},
		{"searchRadiusMeters", p.SearchRadiusMeters, 50, 2000},
		{"baseWindowMinutes", p.BaseWindowMinutes, 2, 30},
		{"maxNoteChars", float64(p.MaxNoteChars), 0, 10000},
	}
	for _, c := range checks {
		if c.value < c.min || c.value > c.max {
			return fmt.Errorf("%w: %s=%v outside [%v, %v]", ErrInvalidPolicy, c.name, c.value, c.min, c.max)
		}
	}
	if p.SearchRadiusMeters < p.MaxRadiusMeters {
		return fmt.Errorf("%w: searchRadiusMeters (%v) must be >= maxRadiusMeters (%v)",
			ErrInvalidPolicy, p.SearchRadiusMeters, p.MaxRadiusMeters)
	}
	if p.MinRadiusMeters > p.MaxRadiusMeters {
		return fmt.Errorf("%w: minRadiusMeters (%v) must be <= maxRadiusMeters (%v)",
			ErrInvalidPolicy, p.MinRadiusMeters, p.MaxRadiusMeters)
	}
	return nil
}
