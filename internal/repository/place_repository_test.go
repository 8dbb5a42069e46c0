package repository_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomasvik/geovisits/internal/repository"
	"github.com/tomasvik/geovisits/internal/spatial"
)

func TestPlaceRepository_NearbyPlaces(t *testing.T) {
	db := openDB(t)
	repo := repository.NewPlaceRepository(db)

	place := seedPlace(t, db, "user-1", 48.2082, 16.3738)
	seedPlace(t, db, "user-1", 48.25, 16.45) // ~5.5km away
	seedPlace(t, db, "user-2", 48.2082, 16.3738)

	nearby, err := repo.NearbyPlaces("user-1", 48.2082, 16.3738, 500)
	require.NoError(t, err)
	require.Len(t, nearby, 1)
	assert.Equal(t, place.ID, nearby[0].ID)
}

func TestPlaceRepository_NearbyPlacesAcrossCellBoundary(t *testing.T) {
	db := openDB(t)
	repo := repository.NewPlaceRepository(db)
	place := seedPlace(t, db, "user-1", 48.2082, 16.3738)

	// 450m north of the place: still inside a 500m search radius even when
	// the ping lands in a neighboring geohash cell.
	lat, lon := spatial.DestinationPoint(48.2082, 16.3738, 0, 450)
	nearby, err := repo.NearbyPlaces("user-1", lat, lon, 500)
	require.NoError(t, err)
	require.Len(t, nearby, 1)
	assert.Equal(t, place.ID, nearby[0].ID)

	// 600m out is beyond the radius.
	lat, lon = spatial.DestinationPoint(48.2082, 16.3738, 90, 600)
	nearby, err = repo.NearbyPlaces("user-1", lat, lon, 500)
	require.NoError(t, err)
	assert.Empty(t, nearby)
}

func TestPlaceRepository_NearbyPlacesHighLatitude(t *testing.T) {
	db := openDB(t)
	repo := repository.NewPlaceRepository(db)

	// At lat 70 geohash cells are squeezed east-west, so the cover has to
	// pick a coarser precision; a place 450m east must still be found.
	pingLat, pingLon := 70.0, 25.78
	placeLat, placeLon := spatial.DestinationPoint(pingLat, pingLon, 90, 450)
	place := seedPlace(t, db, "user-1", placeLat, placeLon)
	require.LessOrEqual(t, spatial.HaversineDistance(pingLat, pingLon, placeLat, placeLon), 500.0)

	nearby, err := repo.NearbyPlaces("user-1", pingLat, pingLon, 500)
	require.NoError(t, err)
	require.Len(t, nearby, 1)
	assert.Equal(t, place.ID, nearby[0].ID)
}

func TestPlaceRepository_GetPlaceContext(t *testing.T) {
	db := openDB(t)
	repo := repository.NewPlaceRepository(db)
	place := seedPlace(t, db, "user-1", 48.2082, 16.3738)

	ctx, err := repo.GetPlaceContext(place.ID)
	require.NoError(t, err)
	require.NotNil(t, ctx)
	assert.Equal(t, "Cafe Central", ctx.Place.Name)
	assert.Equal(t, "Old town", ctx.RegionName)
	assert.Equal(t, "Summer trip", ctx.TripName)

	require.NoError(t, repo.DeletePlace(place.ID))

	ctx, err = repo.GetPlaceContext(place.ID)
	require.NoError(t, err)
	assert.Nil(t, ctx)
}
