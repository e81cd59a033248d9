package usecase

import (
	"testing"
	"time"

	"github.com/piresc/antar/internal/pkg/models"
	"github.com/piresc/antar/services/dispatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreDriver_ConcreteScenario(t *testing.T) {
	order := nycOrder()
	driver := availableDriver("driver-1", nycDriverPos)

	s, err := ScoreDriver(order, driver, order.RestaurantLocation, models.DefaultScoringWeights())
	require.NoError(t, err)

	// the driver is about 1.51 km from the restaurant
	assert.InDelta(t, 1.5105, s.DistanceKm, 0.001)
	assert.InDelta(t, 1/(1+s.DistanceKm), s.DistanceFactor, 1e-12)
	assert.InDelta(t, 0.9, s.RatingFactor, 1e-12)
	assert.InDelta(t, 0.9, s.OnTimeFactor, 1e-12)
	assert.Equal(t, 1.0, s.LoadFactor)
	assert.Equal(t, 1.0, s.PriorityMult)

	want := 0.3*s.DistanceFactor + 0.3*0.9 + 0.2*0.9 + 0.1*1.0 + 0.1*1.0
	assert.InDelta(t, want, s.Score, 1e-12)
	assert.InDelta(t, 0.7695, s.Score, 0.0001)
}

func TestScoreDriver_Factors(t *testing.T) {
	w := models.DefaultScoringWeights()
	order := nycOrder()

	t.Run("priority multiplier", func(t *testing.T) {
		driver := availableDriver("d", nycDriverPos)
		for priority, mult := range map[models.OrderPriority]float64{
			models.PriorityNormal: 1.0,
			models.PriorityHigh:   1.5,
			models.PriorityUrgent: 2.0,
			"unknown":             1.0,
		} {
			o := *order
			o.Priority = priority
			s, err := ScoreDriver(&o, driver, o.RestaurantLocation, w)
			require.NoError(t, err)
			assert.Equal(t, mult, s.PriorityMult, string(priority))
		}
	})

	t.Run("driver carrying an order counts half load", func(t *testing.T) {
		driver := availableDriver("d", nycDriverPos)
		driver.CurrentOrderID = strPtr("order-0")

		s, err := ScoreDriver(order, driver, order.RestaurantLocation, w)
		require.NoError(t, err)
		assert.Equal(t, 0.5, s.LoadFactor)
	})

	t.Run("driver at the restaurant", func(t *testing.T) {
		driver := availableDriver("d", nycRestaurant)

		s, err := ScoreDriver(order, driver, order.RestaurantLocation, w)
		require.NoError(t, err)
		assert.Equal(t, 0.0, s.DistanceKm)
		assert.Equal(t, 1.0, s.DistanceFactor)
	})

	t.Run("invalid driver position", func(t *testing.T) {
		driver := availableDriver("d", models.Location{Latitude: 95, Longitude: 0})

		_, err := ScoreDriver(order, driver, order.RestaurantLocation, w)
		assert.ErrorIs(t, err, dispatch.ErrInvalidCoordinate)
	})
}

func TestScoreDriver_Monotonic(t *testing.T) {
	w := models.DefaultScoringWeights()
	order := nycOrder()

	t.Run("higher rating never lowers the score", func(t *testing.T) {
		prev := -1.0
		for rating := 0.0; rating <= 5.0; rating += 0.25 {
			driver := availableDriver("d", nycDriverPos)
			driver.Rating = rating

			s, err := ScoreDriver(order, driver, order.RestaurantLocation, w)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, s.Score, prev)
			prev = s.Score
		}
	})

	t.Run("farther drivers never get a larger distance factor", func(t *testing.T) {
		prev := 2.0
		for step := 0; step < 40; step++ {
			pos := models.Location{
				Latitude:  nycRestaurant.Latitude + float64(step)*0.01,
				Longitude: nycRestaurant.Longitude,
			}
			s, err := ScoreDriver(order, availableDriver("d", pos), order.RestaurantLocation, w)
			require.NoError(t, err)
			assert.LessOrEqual(t, s.DistanceFactor, prev)
			prev = s.DistanceFactor
		}
	})
}

func TestEligibleDrivers(t *testing.T) {
	window := 10 * time.Minute

	fresh := availableDriver("fresh", nycDriverPos)
	busy := availableDriver("busy", nycDriverPos)
	busy.Availability = models.DriverBusy
	offline := availableDriver("offline", nycDriverPos)
	offline.Availability = models.DriverOffline
	holding := availableDriver("holding", nycDriverPos)
	holding.CurrentOrderID = strPtr("order-0")
	stale := availableDriver("stale", nycDriverPos)
	stale.LocationUpdatedAt = fixedNow.Add(-11 * time.Minute)
	edge := availableDriver("edge", nycDriverPos)
	edge.LocationUpdatedAt = fixedNow.Add(-window)
	never := availableDriver("never", nycDriverPos)
	never.LocationUpdatedAt = time.Time{}

	eligible := EligibleDrivers([]*models.Driver{fresh, busy, offline, holding, stale, edge, never, nil}, fixedNow, window)

	ids := make([]string, 0, len(eligible))
	for _, d := range eligible {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []string{"fresh", "edge"}, ids)
}

func TestScoreDrivers_SkipsInvalidPositions(t *testing.T) {
	order := nycOrder()
	drivers := []*models.Driver{
		availableDriver("ok", nycDriverPos),
		availableDriver("bad", models.Location{Latitude: 200, Longitude: 0}),
	}

	scores := ScoreDrivers(order, drivers, models.DefaultScoringWeights())
	require.Len(t, scores, 1)
	assert.Equal(t, "ok", scores[0].DriverID)
}

func TestSelectBest(t *testing.T) {
	t.Run("empty pool", func(t *testing.T) {
		_, err := SelectBest(nil)
		assert.ErrorIs(t, err, dispatch.ErrNoDriverAvailable)
	})

	t.Run("highest score wins", func(t *testing.T) {
		best, err := SelectBest([]models.AssignmentScore{
			{DriverID: "a", Score: 0.5},
			{DriverID: "b", Score: 0.9},
			{DriverID: "c", Score: 0.7},
		})
		require.NoError(t, err)
		assert.Equal(t, "b", best.DriverID)
	})

	t.Run("tie goes to lowest id", func(t *testing.T) {
		best, err := SelectBest([]models.AssignmentScore{
			{DriverID: "driver-9", Score: 0.8},
			{DriverID: "driver-2", Score: 0.8},
			{DriverID: "driver-5", Score: 0.8},
			{DriverID: "driver-1", Score: 0.3},
		})
		require.NoError(t, err)
		assert.Equal(t, "driver-2", best.DriverID)
	})
}
