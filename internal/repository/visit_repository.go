package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/tomasvik/geovisits/internal/models"
)

const visitColumns = `id, user_id, place_id, arrived_at_utc, last_seen_at_utc, ended_at_utc,
	trip_id, trip_name, region_name, place_name, place_lat, place_lon,
	icon, color, notes, source`

// VisitRepository handles database operations for visit events
type VisitRepository struct {
	db *sql.DB
}

// NewVisitRepository creates a new visit repository
func NewVisitRepository(db *sql.DB) *VisitRepository {
	return &VisitRepository{db: db}
}

func scanVisit(row interface{ Scan(...interface{}) error }) (*models.VisitEvent, error) {
	var v models.VisitEvent
	err := row.Scan(&v.ID, &v.UserID, &v.PlaceID, &v.ArrivedAtUTC, &v.LastSeenAtUTC, &v.EndedAtUTC,
		&v.TripID, &v.TripName, &v.RegionName, &v.PlaceName, &v.PlaceLat, &v.PlaceLon,
		&v.Icon, &v.Color, &v.Notes, &v.Source)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// InsertTx inserts a new visit event within a transaction. A unique-index
// violation on (user_id, place_id, UTC day) means a concurrent promotion won
// the race; callers must fall back to extending the winner's row.
func (r *VisitRepository) InsertTx(tx *sql.Tx, v models.VisitEvent) error {
	_, err := tx.Exec(
		`INSERT INTO visit_events (`+visitColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.UserID, v.PlaceID, v.ArrivedAtUTC, v.LastSeenAtUTC, v.EndedAtUTC,
		v.TripID, v.TripName, v.RegionName, v.PlaceName, v.PlaceLat, v.PlaceLon,
		v.Icon, v.Color, v.Notes, v.Source,
	)
	if err != nil {
		return fmt.Errorf("failed to insert visit event: %w", err)
	}
	return nil
}

// IsUniqueConflict reports whether err is a sqlite unique-constraint
// violation, i.e. a lost promotion race on the day-scoped index.
func IsUniqueConflict(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsForeignKeyConflict reports whether err is a sqlite foreign-key violation,
// i.e. the referenced place vanished mid-operation.
func IsForeignKeyConflict(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// GetByID retrieves a single visit event, or nil when absent
func (r *VisitRepository) GetByID(id string) (*models.VisitEvent, error) {
	v, err := scanVisit(r.db.QueryRow(
		`SELECT `+visitColumns+` FROM visit_events WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get visit event: %w", err)
	}
	return v, nil
}

// FindOpen returns the open visit event for (userID, placeID), or nil
func (r *VisitRepository) FindOpen(userID, placeID string) (*models.VisitEvent, error) {
	v, err := scanVisit(r.db.QueryRow(
		`SELECT `+visitColumns+` FROM visit_events
		WHERE user_id = ? AND place_id = ? AND ended_at_utc IS NULL`,
		userID, placeID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find open visit: %w", err)
	}
	return v, nil
}

// FindSameDayTx returns the visit event (open or ended) for (userID, placeID)
// whose arrival falls on the same UTC calendar day as dayUTC, or nil.
func (r *VisitRepository) FindSameDayTx(tx *sql.Tx, userID, placeID string, dayUTC int64) (*models.VisitEvent, error) {
	v, err := scanVisit(tx.QueryRow(
		`SELECT `+visitColumns+` FROM visit_events
		WHERE user_id = ? AND place_id = ?
		AND date(arrived_at_utc, 'unixepoch') = date(?, 'unixepoch')`,
		userID, placeID, dayUTC))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find same-day visit: %w", err)
	}
	return v, nil
}

// ExtendTx advances last_seen_at_utc (never backwards) and reopens the event.
// Same-day re-entries merge into the existing row through this path.
func (r *VisitRepository) ExtendTx(tx *sql.Tx, id string, seenUTC int64) error {
	_, err := tx.Exec(
		`UPDATE visit_events
		SET last_seen_at_utc = MAX(last_seen_at_utc, ?), ended_at_utc = NULL
		WHERE id = ?`,
		seenUTC, id,
	)
	if err != nil {
		return fmt.Errorf("failed to extend visit event: %w", err)
	}
	return nil
}

// Touch advances last_seen_at_utc of an open visit on a continued ping
func (r *VisitRepository) Touch(id string, seenUTC int64) error {
	_, err := r.db.Exec(
		`UPDATE visit_events SET last_seen_at_utc = MAX(last_seen_at_utc, ?)
		WHERE id = ? AND ended_at_utc IS NULL`,
		seenUTC, id,
	)
	if err != nil {
		return fmt.Errorf("failed to touch visit event: %w", err)
	}
	return nil
}

// CloseIdle ends every open visit with no sightings for more than idleSeconds
// before nowUTC. The visit is deemed to have ended at the last confirmed
// sighting, not at the moment of detection. Returns the number closed.
func (r *VisitRepository) CloseIdle(nowUTC, idleSeconds int64) (int64, error) {
	res, err := r.db.Exec(
		`UPDATE visit_events SET ended_at_utc = last_seen_at_utc
		WHERE ended_at_utc IS NULL AND ? - last_seen_at_utc > ?`,
		nowUTC, idleSeconds,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to close idle visits: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n, nil
}

// End closes a visit at its last confirmed sighting. No-op when already ended.
func (r *VisitRepository) End(id string) error {
	_, err := r.db.Exec(
		`UPDATE visit_events SET ended_at_utc = last_seen_at_utc
		WHERE id = ? AND ended_at_utc IS NULL`, id,
	)
	if err != nil {
		return fmt.Errorf("failed to end visit event: %w", err)
	}
	return nil
}

// Delete hard-deletes a visit event (user-initiated, outside the detection
// state machine)
func (r *VisitRepository) Delete(id string) error {
	res, err := r.db.Exec("DELETE FROM visit_events WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete visit event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// List retrieves visit events with filtering and pagination
func (r *VisitRepository) List(filter models.VisitFilter) ([]models.VisitEvent, int64, error) {
	filter.Normalize()

	var conditions []string
	var args []interface{}

	if filter.UserID != "" {
		conditions = append(conditions, "user_id = ?")
		args = append(args, filter.UserID)
	}
	if filter.PlaceID != "" {
		conditions = append(conditions, "place_id = ?")
		args = append(args, filter.PlaceID)
	}
	if filter.OpenOnly {
		conditions = append(conditions, "ended_at_utc IS NULL")
	}
	if filter.StartTime > 0 {
		conditions = append(conditions, "arrived_at_utc >= ?")
		args = append(args, filter.StartTime)
	}
	if filter.EndTime > 0 {
		conditions = append(conditions, "arrived_at_utc <= ?")
		args = append(args, filter.EndTime)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM visit_events"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count visit events: %w", err)
	}

	offset := (filter.Page - 1) * filter.PageSize

	query := `SELECT ` + visitColumns + ` FROM visit_events` + where +
		` ORDER BY arrived_at_utc DESC LIMIT ? OFFSET ?`
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query visit events: %w", err)
	}
	defer rows.Close()

	var visits []models.VisitEvent
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan visit event: %w", err)
		}
		visits = append(visits, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate visit events: %w", err)
	}

	return visits, total, nil
}
