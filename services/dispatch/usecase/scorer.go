package usecase

import (
	"time"

	"github.com/piresc/antar/internal/pkg/models"
	"github.com/piresc/antar/internal/utils"
	"github.com/piresc/antar/services/dispatch"
)

// EligibleDrivers keeps drivers that are available, hold no order and reported a location within window.
// Ineligible drivers are dropped rather than scored.
func EligibleDrivers(drivers []*models.Driver, now time.Time, window time.Duration) []*models.Driver {
	eligible := make([]*models.Driver, 0, len(drivers))
	for _, d := range drivers {
		if d != nil && d.IsEligible(now, window) {
			eligible = append(eligible, d)
		}
	}
	return eligible
}

// ScoreDriver ranks one driver for an order picked up at restaurant
func ScoreDriver(order *models.Order, driver *models.Driver, restaurant models.Location, w models.ScoringWeights) (models.AssignmentScore, error) {
	distance, err := utils.Distance(driver.Location, restaurant)
	if err != nil {
		return models.AssignmentScore{}, err
	}

	s := models.AssignmentScore{
		DriverID:       driver.ID,
		DistanceKm:     distance,
		DistanceFactor: 1 / (1 + distance),
		RatingFactor:   driver.Rating / 5.0,
		OnTimeFactor:   driver.OnTimeRate / 100.0,
		LoadFactor:     1.0,
		PriorityMult:   order.Priority.Multiplier(),
	}
	if driver.CurrentOrderID != nil {
		s.LoadFactor = 0.5
	}

	s.Score = s.DistanceFactor*w.Distance +
		s.RatingFactor*w.Rating +
		s.OnTimeFactor*w.OnTime +
		s.LoadFactor*w.Load +
		s.PriorityMult*w.Priority

	return s, nil
}

// ScoreDrivers scores every candidate; a driver with an invalid position is skipped
func ScoreDrivers(order *models.Order, drivers []*models.Driver, w models.ScoringWeights) []models.AssignmentScore {
	scores := make([]models.AssignmentScore, 0, len(drivers))
	for _, d := range drivers {
		s, err := ScoreDriver(order, d, order.RestaurantLocation, w)
		if err != nil {
			continue
		}
		scores = append(scores, s)
	}
	return scores
}

// SelectBest returns the highest score, breaking ties by lowest driver id
func SelectBest(scores []models.AssignmentScore) (models.AssignmentScore, error) {
	if len(scores) == 0 {
		return models.AssignmentScore{}, dispatch.ErrNoDriverAvailable
	}

	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score || (s.Score == best.Score && s.DriverID < best.DriverID) {
			best = s
		}
	}
	return best, nil
}
