package repository_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomasvik/geovisits/internal/models"
	"github.com/tomasvik/geovisits/internal/repository"
)

func visitFor(userID, placeID string, arrived int64) models.VisitEvent {
	return models.VisitEvent{
		ID:            uuid.NewString(),
		UserID:        userID,
		PlaceID:       &placeID,
		ArrivedAtUTC:  arrived,
		LastSeenAtUTC: arrived,
		TripName:      "Summer trip",
		RegionName:    "Old town",
		PlaceName:     "Cafe Central",
		PlaceLat:      48.2082,
		PlaceLon:      16.3738,
		Source:        "mobile",
	}
}

func TestVisitRepository_DayUniqueness(t *testing.T) {
	db := openDB(t)
	place := seedPlace(t, db, "user-1", 48.2082, 16.3738)
	repo := repository.NewVisitRepository(db)

	arrived := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC).Unix()
	insertVisit(t, db, visitFor("user-1", place.ID, arrived))

	// A second row for the same user/place/UTC day must violate the index.
	tx, err := db.Begin()
	require.NoError(t, err)
	err = repo.InsertTx(tx, visitFor("user-1", place.ID, arrived+3600))
	require.Error(t, err)
	assert.True(t, repository.IsUniqueConflict(err))
	tx.Rollback()

	// A different UTC day is a distinct visit.
	nextDay := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC).Unix()
	insertVisit(t, db, visitFor("user-1", place.ID, nextDay))
}

func TestVisitRepository_FindSameDayAndExtend(t *testing.T) {
	db := openDB(t)
	place := seedPlace(t, db, "user-1", 48.2082, 16.3738)
	repo := repository.NewVisitRepository(db)

	arrived := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC).Unix()
	v := visitFor("user-1", place.ID, arrived)
	ended := arrived + 1800
	v.LastSeenAtUTC = ended
	v.EndedAtUTC = &ended
	insertVisit(t, db, v)

	tx, err := db.Begin()
	require.NoError(t, err)
	found, err := repo.FindSameDayTx(tx, "user-1", place.ID, arrived+7*3600)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, v.ID, found.ID)

	// Extending reopens the ended event and advances last seen.
	require.NoError(t, repo.ExtendTx(tx, found.ID, arrived+8*3600))
	require.NoError(t, tx.Commit())

	got, err := repo.GetByID(v.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.IsOpen())
	assert.Equal(t, arrived+8*3600, got.LastSeenAtUTC)
	assert.Equal(t, arrived, got.ArrivedAtUTC)
}

func TestVisitRepository_TouchNeverMovesBackwards(t *testing.T) {
	db := openDB(t)
	place := seedPlace(t, db, "user-1", 48.2082, 16.3738)
	repo := repository.NewVisitRepository(db)

	arrived := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC).Unix()
	v := visitFor("user-1", place.ID, arrived)
	v.LastSeenAtUTC = arrived + 600
	insertVisit(t, db, v)

	// An out-of-order ping must not rewind last_seen_at_utc.
	require.NoError(t, repo.Touch(v.ID, arrived+300))
	got, err := repo.GetByID(v.ID)
	require.NoError(t, err)
	assert.Equal(t, arrived+600, got.LastSeenAtUTC)

	require.NoError(t, repo.Touch(v.ID, arrived+900))
	got, err = repo.GetByID(v.ID)
	require.NoError(t, err)
	assert.Equal(t, arrived+900, got.LastSeenAtUTC)
}

func TestVisitRepository_CloseIdle(t *testing.T) {
	db := openDB(t)
	place := seedPlace(t, db, "user-1", 48.2082, 16.3738)
	other := seedPlace(t, db, "user-2", 48.21, 16.37)
	repo := repository.NewVisitRepository(db)

	arrived := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC).Unix()
	idle := visitFor("user-1", place.ID, arrived)
	insertVisit(t, db, idle)

	fresh := visitFor("user-2", other.ID, arrived+3000)
	insertVisit(t, db, fresh)

	// 45-minute idle horizon one hour after the first arrival.
	n, err := repo.CloseIdle(arrived+3600, 2700)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := repo.GetByID(idle.ID)
	require.NoError(t, err)
	require.NotNil(t, got.EndedAtUTC)
	// Closed at the last confirmed sighting, not at detection time.
	assert.Equal(t, got.LastSeenAtUTC, *got.EndedAtUTC)

	still, err := repo.FindOpen("user-2", other.ID)
	require.NoError(t, err)
	require.NotNil(t, still)
}

func TestVisitRepository_PlaceDeletionPreservesSnapshot(t *testing.T) {
	db := openDB(t)
	place := seedPlace(t, db, "user-1", 48.2082, 16.3738)
	visitRepo := repository.NewVisitRepository(db)
	placeRepo := repository.NewPlaceRepository(db)

	arrived := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC).Unix()
	v := visitFor("user-1", place.ID, arrived)
	insertVisit(t, db, v)

	require.NoError(t, placeRepo.DeletePlace(place.ID))

	got, err := visitRepo.GetByID(v.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.PlaceID)
	assert.Equal(t, "Cafe Central", got.PlaceName)
	assert.Equal(t, "Summer trip", got.TripName)
	assert.Equal(t, 48.2082, got.PlaceLat)
}

func TestVisitRepository_ListFilters(t *testing.T) {
	db := openDB(t)
	place := seedPlace(t, db, "user-1", 48.2082, 16.3738)
	repo := repository.NewVisitRepository(db)

	day1 := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC).Unix()
	day2 := time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC).Unix()

	open := visitFor("user-1", place.ID, day1)
	insertVisit(t, db, open)

	closed := visitFor("user-1", place.ID, day2)
	endedAt := day2 + 1800
	closed.LastSeenAtUTC = endedAt
	closed.EndedAtUTC = &endedAt
	insertVisit(t, db, closed)

	all, total, err := repo.List(models.VisitFilter{UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)
	// Newest arrival first.
	assert.Equal(t, closed.ID, all[0].ID)

	openOnly, total, err := repo.List(models.VisitFilter{UserID: "user-1", OpenOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, openOnly, 1)
	assert.Equal(t, open.ID, openOnly[0].ID)

	none, total, err := repo.List(models.VisitFilter{UserID: "someone-else"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, none)
}
