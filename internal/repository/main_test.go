package repository_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/tomasvik/geovisits/internal/models"
	"github.com/tomasvik/geovisits/internal/repository"
	"github.com/tomasvik/geovisits/internal/spatial"
	"github.com/tomasvik/geovisits/internal/testutil"
)

// seedPlace creates a trip -> region -> place chain for userID and returns
// the place.
func seedPlace(t *testing.T, db *sql.DB, userID string, lat, lon float64) models.Place {
	t.Helper()
	repo := repository.NewPlaceRepository(db)
	now := time.Now().UTC().Unix()

	trip := models.Trip{ID: uuid.NewString(), UserID: userID, Name: "Summer trip", CreatedAt: now}
	require.NoError(t, repo.CreateTrip(trip))

	region := models.Region{ID: uuid.NewString(), TripID: trip.ID, Name: "Old town", CreatedAt: now}
	require.NoError(t, repo.CreateRegion(region))

	place := models.Place{
		ID:        uuid.NewString(),
		RegionID:  region.ID,
		Name:      "Cafe Central",
		Latitude:  lat,
		Longitude: lon,
		Geohash:   spatial.EncodeGeohash(lat, lon, spatial.PlaceGeohashPrecision),
		Icon:      "coffee",
		Color:     "#aa3322",
		Notes:     "try the strudel",
		CreatedAt: now,
	}
	require.NoError(t, repo.CreatePlace(place))
	return place
}

// insertVisit inserts a visit event directly, for repository-level tests
func insertVisit(t *testing.T, db *sql.DB, v models.VisitEvent) {
	t.Helper()
	repo := repository.NewVisitRepository(db)
	tx, err := db.Begin()
	require.NoError(t, err)
	require.NoError(t, repo.InsertTx(tx, v))
	require.NoError(t, tx.Commit())
}

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	return testutil.OpenTestDB(t)
}
