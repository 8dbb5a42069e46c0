package service

import (
	"database/sql"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/tomasvik/geovisits/internal/database"
	"github.com/tomasvik/geovisits/internal/models"
	"github.com/tomasvik/geovisits/internal/repository"
	"github.com/tomasvik/geovisits/internal/spatial"
)

// DetectionService is the candidate-accumulation state machine: it converts
// accepted pings into candidate hits and promotes candidates that reach the
// required hit count into visit events.
type DetectionService struct {
	db         *sql.DB
	places     *repository.PlaceRepository
	candidates *repository.CandidateRepository
	visits     *repository.VisitRepository
	policy     *PolicyService
}

// NewDetectionService creates a new detection service
func NewDetectionService(
	db *sql.DB,
	places *repository.PlaceRepository,
	candidates *repository.CandidateRepository,
	visits *repository.VisitRepository,
	policy *PolicyService,
) *DetectionService {
	return &DetectionService{
		db:         db,
		places:     places,
		candidates: candidates,
		visits:     visits,
		policy:     policy,
	}
}

// ProcessPing runs one GPS sample through the detection pipeline. All "no
// match", "too inaccurate" and "place deleted" outcomes are normal control
// flow, reported through the outcome, never as errors.
func (s *DetectionService) ProcessPing(ping models.Ping) (models.PingOutcome, error) {
	now := ping.Timestamp
	if now == 0 {
		now = time.Now().UTC().Unix()
	}

	if ping.Latitude < -90 || ping.Latitude > 90 || ping.Longitude < -180 || ping.Longitude > 180 {
		return models.OutcomeIgnored, nil
	}

	policy := s.policy.Current()

	effectiveRadius, ok := policy.EffectiveRadius(ping.Accuracy)
	if !ok {
		return models.OutcomeIgnored, nil
	}

	// The search radius is intentionally looser than the confirmation radius;
	// exact distance decides below.
	nearby, err := s.places.NearbyPlaces(ping.UserID, ping.Latitude, ping.Longitude, policy.SearchRadiusMeters)
	if err != nil {
		return models.OutcomeIgnored, err
	}

	place := nearestWithin(nearby, ping.Latitude, ping.Longitude, effectiveRadius)
	if place == nil {
		return models.OutcomeIgnored, nil
	}

	// A ping for a place with an open visit is a keep-alive, not a new hit.
	open, err := s.visits.FindOpen(ping.UserID, place.ID)
	if err != nil {
		return models.OutcomeIgnored, err
	}
	if open != nil {
		if err := s.visits.Touch(open.ID, now); err != nil {
			return models.OutcomeIgnored, err
		}
		return models.OutcomeVisitExtended, nil
	}

	windowSeconds := int64(policy.HitWindow().Seconds())
	candidate, err := s.candidates.Upsert(ping.UserID, place.ID, now, windowSeconds)
	if err != nil {
		return models.OutcomeIgnored, err
	}

	if candidate.ConsecutiveHits < policy.RequiredHits {
		return models.OutcomeAccumulating, nil
	}

	return s.promote(candidate, now, policy, ping.Source)
}

// nearestWithin picks the single place a ping credits: the nearest one whose
// exact distance is within the effective radius. Ties break on the smaller
// place ID so concurrent pings agree.
func nearestWithin(places []models.Place, lat, lon, radiusMeters float64) *models.Place {
	var best *models.Place
	var bestDist float64
	for i := range places {
		d := spatial.HaversineDistance(lat, lon, places[i].Latitude, places[i].Longitude)
		if d > radiusMeters {
			continue
		}
		if best == nil || d < bestDist || (d == bestDist && places[i].ID < best.ID) {
			best = &places[i]
			bestDist = d
		}
	}
	return best
}

// promote builds a confirmed visit event from an accumulated candidate,
// snapshotting trip/region/place metadata, and deletes the candidate in the
// same transaction. A same-UTC-day event (open or ended) absorbs the
// promotion instead of producing a second row.
func (s *DetectionService) promote(candidate *models.VisitCandidate, nowUTC int64, policy models.DetectionPolicy, source string) (models.PingOutcome, error) {
	ctx, err := s.places.GetPlaceContext(candidate.PlaceID)
	if err != nil {
		return models.OutcomeIgnored, err
	}
	if ctx == nil {
		// Place deleted mid-accumulation: the candidate row is already gone
		// via the foreign key cascade and no visit is recorded.
		return models.OutcomeIgnored, nil
	}

	outcome := models.OutcomeIgnored
	err = database.Transaction(s.db, func(tx *sql.Tx) error {
		existing, err := s.visits.FindSameDayTx(tx, candidate.UserID, candidate.PlaceID, candidate.FirstHitUTC)
		if err != nil {
			return err
		}
		if existing != nil {
			if err := s.visits.ExtendTx(tx, existing.ID, nowUTC); err != nil {
				return err
			}
			outcome = models.OutcomeVisitExtended
			return s.candidates.DeleteTx(tx, candidate.ID)
		}

		placeID := candidate.PlaceID
		event := models.VisitEvent{
			ID:            uuid.NewString(),
			UserID:        candidate.UserID,
			PlaceID:       &placeID,
			ArrivedAtUTC:  candidate.FirstHitUTC,
			LastSeenAtUTC: nowUTC,
			TripID:        ctx.TripID,
			TripName:      ctx.TripName,
			RegionName:    ctx.RegionName,
			PlaceName:     ctx.Place.Name,
			PlaceLat:      ctx.Place.Latitude,
			PlaceLon:      ctx.Place.Longitude,
			Icon:          ctx.Place.Icon,
			Color:         ctx.Place.Color,
			Notes:         truncateRunes(ctx.Place.Notes, policy.MaxNoteChars),
			Source:        source,
		}

		if err := s.visits.InsertTx(tx, event); err != nil {
			if repository.IsForeignKeyConflict(err) {
				// Place deleted between the context read and the insert:
				// discard the candidate, record nothing.
				outcome = models.OutcomeIgnored
				return s.candidates.DeleteTx(tx, candidate.ID)
			}
			if !repository.IsUniqueConflict(err) {
				return err
			}
			// Lost the promotion race: merge into the winner's row.
			winner, err := s.visits.FindSameDayTx(tx, candidate.UserID, candidate.PlaceID, candidate.FirstHitUTC)
			if err != nil {
				return err
			}
			if winner != nil {
				if err := s.visits.ExtendTx(tx, winner.ID, nowUTC); err != nil {
					return err
				}
			}
			outcome = models.OutcomeVisitExtended
			return s.candidates.DeleteTx(tx, candidate.ID)
		}

		outcome = models.OutcomeVisitStarted
		return s.candidates.DeleteTx(tx, candidate.ID)
	})
	if err != nil {
		return models.OutcomeIgnored, err
	}

	if outcome == models.OutcomeVisitStarted {
		log.Printf("[DetectionService] visit started: user=%s place=%s", candidate.UserID, candidate.PlaceID)
	}
	return outcome, nil
}

// truncateRunes caps s at max runes, guarding against multi-byte splits
func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
