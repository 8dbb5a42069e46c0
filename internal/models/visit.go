package models

// VisitCandidate is an ephemeral, per (user, place) accumulation of
// consecutive in-radius pings. At most one row exists per (userId, placeId),
// enforced by a uniqueness constraint in the store.
type VisitCandidate struct {
	ID              int64  `json:"id" db:"id"`
	UserID          string `json:"userId" db:"user_id"`
	PlaceID         string `json:"placeId" db:"place_id"`
	FirstHitUTC     int64  `json:"firstHitUtc" db:"first_hit_utc"` // Unix timestamp in seconds
	LastHitUTC      int64  `json:"lastHitUtc" db:"last_hit_utc"`
	ConsecutiveHits int    `json:"consecutiveHits" db:"consecutive_hits"`
}

// VisitEvent is a confirmed, time-bounded visit to a place. Snapshot fields
// are captured at promotion time and never re-derived, so history survives
// deletion of the underlying place/region/trip (placeId goes null, the
// snapshot stays).
type VisitEvent struct {
	ID            string  `json:"id" db:"id"`
	UserID        string  `json:"userId" db:"user_id"`
	PlaceID       *string `json:"placeId" db:"place_id"` // nil once the place is deleted
	ArrivedAtUTC  int64   `json:"arrivedAtUtc" db:"arrived_at_utc"`
	LastSeenAtUTC int64   `json:"lastSeenAtUtc" db:"last_seen_at_utc"`
	EndedAtUTC    *int64  `json:"endedAtUtc" db:"ended_at_utc"` // nil while open

	// Snapshot fields
	TripID     string  `json:"tripId" db:"trip_id"`
	TripName   string  `json:"tripName" db:"trip_name"`
	RegionName string  `json:"regionName" db:"region_name"`
	PlaceName  string  `json:"placeName" db:"place_name"`
	PlaceLat   float64 `json:"placeLat" db:"place_lat"`
	PlaceLon   float64 `json:"placeLon" db:"place_lon"`
	Icon       string  `json:"icon,omitempty" db:"icon"`
	Color      string  `json:"color,omitempty" db:"color"`
	Notes      string  `json:"notes,omitempty" db:"notes"`
	Source     string  `json:"source,omitempty" db:"source"`
}

// IsOpen reports whether the visit has not ended yet
func (v *VisitEvent) IsOpen() bool {
	return v.EndedAtUTC == nil
}

// ObservedDwellSeconds returns the observed dwell time, or 0 when the visit
// has only a single confirmed sighting
func (v *VisitEvent) ObservedDwellSeconds() int64 {
	if v.LastSeenAtUTC > v.ArrivedAtUTC {
		return v.LastSeenAtUTC - v.ArrivedAtUTC
	}
	return 0
}

// VisitFilter represents filter parameters for querying visit events
type VisitFilter struct {
	UserID    string `form:"userId"`
	PlaceID   string `form:"placeId"`
	OpenOnly  bool   `form:"openOnly"`
	StartTime int64  `form:"startTime"` // Unix timestamp
	EndTime   int64  `form:"endTime"`
	Page      int    `form:"page"`
	PageSize  int    `form:"pageSize"`
}

// Normalize clamps paging parameters to their effective values. Queries and
// response metadata both go through this, so the pageSize a caller sees
// always matches the page that was actually fetched.
func (f *VisitFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 100
	}
	if f.PageSize > 1000 {
		f.PageSize = 1000
	}
}

// VisitsResponse represents a paginated response of visit events
type VisitsResponse struct {
	Data       []VisitEvent `json:"data"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"pageSize"`
	TotalPages int          `json:"totalPages"`
}
