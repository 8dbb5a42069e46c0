package models

// Trip groups regions (and their places) under one journey for a user
type Trip struct {
	ID        string `json:"id" db:"id"`
	UserID    string `json:"userId" db:"user_id"`
	Name      string `json:"name" db:"name"`
	CreatedAt int64  `json:"createdAt" db:"created_at"` // Unix timestamp in seconds
}

// Region is a named area within a trip
type Region struct {
	ID        string `json:"id" db:"id"`
	TripID    string `json:"tripId" db:"trip_id"`
	Name      string `json:"name" db:"name"`
	CreatedAt int64  `json:"createdAt" db:"created_at"`
}

// Place is a point of interest within a region. The detection engine treats
// places as read-only except for deletion, which it must tolerate.
type Place struct {
	ID        string  `json:"id" db:"id"`
	RegionID  string  `json:"regionId" db:"region_id"`
	Name      string  `json:"name" db:"name"`
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
	Geohash   string  `json:"-" db:"geohash"`
	Icon      string  `json:"icon,omitempty" db:"icon"`
	Color     string  `json:"color,omitempty" db:"color"`
	Notes     string  `json:"notes,omitempty" db:"notes"`
	CreatedAt int64   `json:"createdAt" db:"created_at"`
}

// PlaceContext is a place joined with its owning region and trip, as needed
// for visit snapshots
type PlaceContext struct {
	Place      Place
	RegionName string
	TripID     string
	TripName   string
}
