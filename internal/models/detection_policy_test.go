package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomasvik/geovisits/internal/models"
)

func TestDetectionPolicy_DefaultIsValid(t *testing.T) {
	require.NoError(t, models.DefaultDetectionPolicy().Validate())
}

func TestDetectionPolicy_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.DetectionPolicy)
	}{
		{"requiredHits too low", func(p *models.DetectionPolicy) { p.RequiredHits = 1 }},
		{"requiredHits too high", func(p *models.DetectionPolicy) { p.RequiredHits = 6 }},
		{"minRadius too small", func(p *models.DetectionPolicy) { p.MinRadiusMeters = 5 }},
		{"maxRadius too large", func(p *models.DetectionPolicy) { p.MaxRadiusMeters = 600 }},
		{"multiplier too small", func(p *models.DetectionPolicy) { p.AccuracyMultiplier = 0.1 }},
		{"reject negative", func(p *models.DetectionPolicy) { p.AccuracyRejectMeters = -1 }},
		{"search radius too large", func(p *models.DetectionPolicy) { p.SearchRadiusMeters = 5000 }},
		{"search below max radius", func(p *models.DetectionPolicy) {
			p.SearchRadiusMeters = 80
			p.MaxRadiusMeters = 100
		}},
		{"base window too small", func(p *models.DetectionPolicy) { p.BaseWindowMinutes = 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := models.DefaultDetectionPolicy()
			tt.mutate(&p)
			err := p.Validate()
			assert.ErrorIs(t, err, models.ErrInvalidPolicy)
		})
	}
}

func TestDetectionPolicy_DerivedWindows(t *testing.T) {
	p := models.DefaultDetectionPolicy()
	p.BaseWindowMinutes = 5

	assert.Equal(t, 8*time.Minute, p.HitWindow())
	assert.Equal(t, 60*time.Minute, p.CandidateStaleAfter())
	assert.Equal(t, 45*time.Minute, p.EndVisitAfter())
}

func floatPtr(f float64) *float64 { return &f }

func TestDetectionPolicy_EffectiveRadius(t *testing.T) {
	p := models.DefaultDetectionPolicy() // min 35, max 100, mult 2.0, reject 200

	tests := []struct {
		name     string
		accuracy *float64
		want     float64
		ok       bool
	}{
		{"absent accuracy uses max radius", nil, 100, true},
		{"beyond reject threshold", floatPtr(201), 0, false},
		{"scaled within bounds", floatPtr(30), 60, true},
		{"clamped to min", floatPtr(5), 35, true},
		{"clamped to max", floatPtr(80), 100, true},
		{"doubled mid-range accuracy", floatPtr(20), 40, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.EffectiveRadius(tt.accuracy)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDetectionPolicy_EffectiveRadius_Monotonic(t *testing.T) {
	// Worse accuracy never shrinks the radius, and the radius never leaves
	// [min, max].
	p := models.DefaultDetectionPolicy()
	p.AccuracyRejectMeters = 0 // disabled

	prev := 0.0
	for acc := 1.0; acc <= 1000; acc += 7 {
		r, ok := p.EffectiveRadius(&acc)
		require.True(t, ok)
		assert.GreaterOrEqual(t, r, prev)
		assert.GreaterOrEqual(t, r, p.MinRadiusMeters)
		assert.LessOrEqual(t, r, p.MaxRadiusMeters)
		prev = r
	}
}
