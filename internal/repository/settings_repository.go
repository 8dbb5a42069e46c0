package repository

import (
	"database/sql"
	"fmt"

	"github.com/tomasvik/geovisits/internal/models"
)

// SettingsRepository handles persistence of the single detection policy row
type SettingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get retrieves the stored detection policy. When no row has been saved yet,
// the compiled-in default is returned.
func (r *SettingsRepository) Get() (models.DetectionPolicy, error) {
	var p models.DetectionPolicy
	err := r.db.QueryRow(
		`SELECT required_hits, min_radius_meters, max_radius_meters,
			accuracy_multiplier, accuracy_reject_meters, search_radius_meters,
			base_window_minutes, max_note_chars
		FROM app_settings WHERE id = 1`,
	).Scan(&p.RequiredHits, &p.MinRadiusMeters, &p.MaxRadiusMeters,
		&p.AccuracyMultiplier, &p.AccuracyRejectMeters, &p.SearchRadiusMeters,
		&p.BaseWindowMinutes, &p.MaxNoteChars)
	if err == sql.ErrNoRows {
		return models.DefaultDetectionPolicy(), nil
	}
	if err != nil {
		return models.DetectionPolicy{}, fmt.Errorf("failed to get detection policy: %w", err)
	}
	return p, nil
}

// Save stores the detection policy as the single app_settings row. Callers
// must validate the policy first.
func (r *SettingsRepository) Save(p models.DetectionPolicy, nowUTC int64) error {
	_, err := r.db.Exec(
		`INSERT INTO app_settings (id, required_hits, min_radius_meters, max_radius_meters,
			accuracy_multiplier, accuracy_reject_meters, search_radius_meters,
			base_window_minutes, max_note_chars, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			required_hits = excluded.required_hits,
			min_radius_meters = excluded.min_radius_meters,
			max_radius_meters = excluded.max_radius_meters,
			accuracy_multiplier = excluded.accuracy_multiplier,
			accuracy_reject_meters = excluded.accuracy_reject_meters,
			search_radius_meters = excluded.search_radius_meters,
			base_window_minutes = excluded.base_window_minutes,
			max_note_chars = excluded.max_note_chars,
			updated_at = excluded.updated_at`,
		p.RequiredHits, p.MinRadiusMeters, p.MaxRadiusMeters,
		p.AccuracyMultiplier, p.AccuracyRejectMeters, p.SearchRadiusMeters,
		p.BaseWindowMinutes, p.MaxNoteChars, nowUTC,
	)
	if err != nil {
		return fmt.Errorf("failed to save detection policy: %w", err)
	}
	return nil
}
