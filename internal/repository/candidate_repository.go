package repository

import (
	"database/sql"
	"fmt"

	"github.com/tomasvik/geovisits/internal/models"
)

// CandidateRepository handles database operations for visit candidates
type CandidateRepository struct {
	db *sql.DB
}

// NewCandidateRepository creates a new candidate repository
func NewCandidateRepository(db *sql.DB) *CandidateRepository {
	return &CandidateRepository{db: db}
}

// Upsert records one accepted hit for (userID, placeID) at hitUTC in a single
// atomic statement. The UNIQUE(user_id, place_id) constraint resolves
// concurrent pings: whichever insert loses turns into the update arm. A hit
// within windowSeconds of the previous one extends the sequence; a later hit
// resets it to a fresh sequence of one. last_hit_utc never moves backwards,
// so an out-of-order ping still counts but cannot rewind the window clock.
func (r *CandidateRepository) Upsert(userID, placeID string, hitUTC, windowSeconds int64) (*models.VisitCandidate, error) {
	query := `
		INSERT INTO visit_candidates (user_id, place_id, first_hit_utc, last_hit_utc, consecutive_hits)
		VALUES (?, ?, ?, ?, 1)
		ON CONFLICT(user_id, place_id) DO UPDATE SET
			consecutive_hits = CASE
				WHEN excluded.last_hit_utc - visit_candidates.last_hit_utc <= ?
				THEN visit_candidates.consecutive_hits + 1
				ELSE 1
			END,
			first_hit_utc = CASE
				WHEN excluded.last_hit_utc - visit_candidates.last_hit_utc <= ?
				THEN visit_candidates.first_hit_utc
				ELSE excluded.first_hit_utc
			END,
			last_hit_utc = MAX(visit_candidates.last_hit_utc, excluded.last_hit_utc)
		RETURNING id, user_id, place_id, first_hit_utc, last_hit_utc, consecutive_hits`

	var c models.VisitCandidate
	err := r.db.QueryRow(query, userID, placeID, hitUTC, hitUTC, windowSeconds, windowSeconds).
		Scan(&c.ID, &c.UserID, &c.PlaceID, &c.FirstHitUTC, &c.LastHitUTC, &c.ConsecutiveHits)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert visit candidate: %w", err)
	}
	return &c, nil
}

// Get retrieves the candidate for (userID, placeID), or nil when absent
func (r *CandidateRepository) Get(userID, placeID string) (*models.VisitCandidate, error) {
	var c models.VisitCandidate
	err := r.db.QueryRow(
		`SELECT id, user_id, place_id, first_hit_utc, last_hit_utc, consecutive_hits
		FROM visit_candidates WHERE user_id = ? AND place_id = ?`,
		userID, placeID,
	).Scan(&c.ID, &c.UserID, &c.PlaceID, &c.FirstHitUTC, &c.LastHitUTC, &c.ConsecutiveHits)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get visit candidate: %w", err)
	}
	return &c, nil
}

// DeleteTx removes a candidate by ID within a transaction. Used by promotion,
// which must delete the candidate in the same logical operation that records
// the visit.
func (r *CandidateRepository) DeleteTx(tx *sql.Tx, id int64) error {
	if _, err := tx.Exec("DELETE FROM visit_candidates WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete visit candidate: %w", err)
	}
	return nil
}

// DeleteByUserPlace removes any lingering candidate for (userID, placeID).
// Used when a visit is manually ended or deleted.
func (r *CandidateRepository) DeleteByUserPlace(userID, placeID string) error {
	if _, err := r.db.Exec(
		"DELETE FROM visit_candidates WHERE user_id = ? AND place_id = ?",
		userID, placeID,
	); err != nil {
		return fmt.Errorf("failed to delete visit candidate: %w", err)
	}
	return nil
}

// DeleteStale evicts abandoned candidates whose last hit is older than
// staleSeconds before nowUTC. Returns the number of rows removed.
func (r *CandidateRepository) DeleteStale(nowUTC, staleSeconds int64) (int64, error) {
	res, err := r.db.Exec(
		"DELETE FROM visit_candidates WHERE ? - last_hit_utc > ?",
		nowUTC, staleSeconds,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale candidates: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n, nil
}
