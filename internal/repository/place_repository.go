package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/tomasvik/geovisits/internal/models"
	"github.com/tomasvik/geovisits/internal/spatial"
)

// PlaceRepository handles database operations for trips, regions and places
type PlaceRepository struct {
	db *sql.DB
}

// NewPlaceRepository creates a new place repository
func NewPlaceRepository(db *sql.DB) *PlaceRepository {
	return &PlaceRepository{db: db}
}

// CreateTrip inserts a new trip
func (r *PlaceRepository) CreateTrip(trip models.Trip) error {
	_, err := r.db.Exec(
		"INSERT INTO trips (id, user_id, name, created_at) VALUES (?, ?, ?, ?)",
		trip.ID, trip.UserID, trip.Name, trip.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}
	return nil
}

// CreateRegion inserts a new region
func (r *PlaceRepository) CreateRegion(region models.Region) error {
	_, err := r.db.Exec(
		"INSERT INTO regions (id, trip_id, name, created_at) VALUES (?, ?, ?, ?)",
		region.ID, region.TripID, region.Name, region.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert region: %w", err)
	}
	return nil
}

// CreatePlace inserts a new place. The geohash must already be set.
func (r *PlaceRepository) CreatePlace(place models.Place) error {
	_, err := r.db.Exec(
		`INSERT INTO places (id, region_id, name, latitude, longitude, geohash, icon, color, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		place.ID, place.RegionID, place.Name, place.Latitude, place.Longitude,
		place.Geohash, place.Icon, place.Color, place.Notes, place.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert place: %w", err)
	}
	return nil
}

// GetPlace retrieves a single place by ID
func (r *PlaceRepository) GetPlace(id string) (*models.Place, error) {
	var p models.Place
	err := r.db.QueryRow(
		`SELECT id, region_id, name, latitude, longitude, geohash, icon, color, notes, created_at
		FROM places WHERE id = ?`, id,
	).Scan(&p.ID, &p.RegionID, &p.Name, &p.Latitude, &p.Longitude, &p.Geohash,
		&p.Icon, &p.Color, &p.Notes, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get place: %w", err)
	}
	return &p, nil
}

// GetPlaceContext retrieves a place joined with its owning region and trip,
// as needed for visit snapshots. Returns nil when the place no longer exists.
func (r *PlaceRepository) GetPlaceContext(id string) (*models.PlaceContext, error) {
	var pc models.PlaceContext
	err := r.db.QueryRow(
		`SELECT p.id, p.region_id, p.name, p.latitude, p.longitude, p.geohash,
			p.icon, p.color, p.notes, p.created_at,
			r.name, t.id, t.name
		FROM places p
		JOIN regions r ON r.id = p.region_id
		JOIN trips t ON t.id = r.trip_id
		WHERE p.id = ?`, id,
	).Scan(&pc.Place.ID, &pc.Place.RegionID, &pc.Place.Name, &pc.Place.Latitude,
		&pc.Place.Longitude, &pc.Place.Geohash, &pc.Place.Icon, &pc.Place.Color,
		&pc.Place.Notes, &pc.Place.CreatedAt, &pc.RegionName, &pc.TripID, &pc.TripName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get place context: %w", err)
	}
	return &pc, nil
}

// DeletePlace removes a place. Foreign keys null out visit_events.place_id and
// cascade-delete any lingering candidates.
func (r *PlaceRepository) DeletePlace(id string) error {
	res, err := r.db.Exec("DELETE FROM places WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete place: %w", err)
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

// NearbyPlaces returns all places owned by the user's trips within
// searchRadiusMeters of the given point. The geohash index narrows the scan
// to the cell covering the radius plus its 8 neighbors; exact distance is
// re-verified with Haversine before returning. Ordering is unspecified.
func (r *PlaceRepository) NearbyPlaces(userID string, lat, lon, searchRadiusMeters float64) ([]models.Place, error) {
	precision := spatial.CoverPrecisionForRadius(searchRadiusMeters, lat)
	center := spatial.EncodeGeohash(lat, lon, precision)
	cells := append(spatial.GeohashNeighbors(center), center)

	globs := make([]string, 0, len(cells))
	args := []interface{}{userID}
	seen := make(map[string]bool)
	for _, cell := range cells {
		if seen[cell] {
			continue
		}
		seen[cell] = true
		globs = append(globs, "p.geohash GLOB ?")
		args = append(args, cell+"*")
	}

	query := `SELECT p.id, p.region_id, p.name, p.latitude, p.longitude, p.geohash,
			p.icon, p.color, p.notes, p.created_at
		FROM places p
		JOIN regions r ON r.id = p.region_id
		JOIN trips t ON t.id = r.trip_id
		WHERE t.user_id = ? AND (` + strings.Join(globs, " OR ") + `)`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query nearby places: %w", err)
	}
	defer rows.Close()

	var places []models.Place
	for rows.Next() {
		var p models.Place
		if err := rows.Scan(&p.ID, &p.RegionID, &p.Name, &p.Latitude, &p.Longitude,
			&p.Geohash, &p.Icon, &p.Color, &p.Notes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan place: %w", err)
		}
		if spatial.HaversineDistance(lat, lon, p.Latitude, p.Longitude) <= searchRadiusMeters {
			places = append(places, p)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate nearby places: %w", err)
	}

	return places, nil
}
