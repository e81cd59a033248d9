package usecase

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/piresc/antar/internal/pkg/models"
	"github.com/piresc/antar/services/dispatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// square around the east village destination
func eastVillage(id string, priority, order int, base, perKm float64, minutes int) *models.DeliveryZone {
	return &models.DeliveryZone{
		ID:           id,
		RestaurantID: "rest-1",
		Polygon: []models.ZonePoint{
			{Latitude: 40.72, Longitude: -73.95},
			{Latitude: 40.72, Longitude: -73.92},
			{Latitude: 40.74, Longitude: -73.92},
			{Latitude: 40.74, Longitude: -73.95},
		},
		Priority:         priority,
		BaseFee:          base,
		PerKmFee:         perKm,
		EstimatedMinutes: minutes,
		DefinitionOrder:  order,
	}
}

func midtown(id string, priority, order int) *models.DeliveryZone {
	return &models.DeliveryZone{
		ID:           id,
		RestaurantID: "rest-1",
		Polygon: []models.ZonePoint{
			{Latitude: 40.75, Longitude: -74.00},
			{Latitude: 40.75, Longitude: -73.97},
			{Latitude: 40.77, Longitude: -73.97},
			{Latitude: 40.77, Longitude: -74.00},
		},
		Priority:        priority,
		BaseFee:         0.99,
		DefinitionOrder: order,
	}
}

func defaultFees() FeeDefaults {
	return FeeDefaults{BaseFee: 2.99, PerKmFee: 0.50, EstimatedMinutes: 30}
}

func TestResolveZoneFee(t *testing.T) {
	tests := []struct {
		name        string
		zones       []*models.DeliveryZone
		wantZone    string
		wantFee     float64
		wantMinutes int
	}{
		{
			name:        "no zones uses default formula",
			wantFee:     6.13,
			wantMinutes: 30,
		},
		{
			name:        "zone not containing destination",
			zones:       []*models.DeliveryZone{midtown("mid", 5, 0)},
			wantFee:     6.13,
			wantMinutes: 30,
		},
		{
			name:        "containing zone",
			zones:       []*models.DeliveryZone{midtown("mid", 5, 0), eastVillage("ev", 1, 1, 1.5, 0.3, 25)},
			wantZone:    "ev",
			wantFee:     3.39,
			wantMinutes: 25,
		},
		{
			name: "highest priority wins regardless of order",
			zones: []*models.DeliveryZone{
				eastVillage("low", 1, 0, 1.0, 0.1, 40),
				eastVillage("high", 3, 1, 2.0, 0.2, 20),
			},
			wantZone:    "high",
			wantFee:     3.26,
			wantMinutes: 20,
		},
		{
			name: "priority tie goes to first defined",
			zones: []*models.DeliveryZone{
				eastVillage("second", 2, 1, 9.0, 0, 50),
				eastVillage("first", 2, 0, 4.0, 0, 15),
			},
			wantZone:    "first",
			wantFee:     4.0,
			wantMinutes: 15,
		},
		{
			name: "priority and definition tie goes to lowest id",
			zones: []*models.DeliveryZone{
				eastVillage("b", 2, 0, 9.0, 0, 50),
				eastVillage("a", 2, 0, 4.0, 0, 15),
			},
			wantZone:    "a",
			wantFee:     4.0,
			wantMinutes: 15,
		},
		{
			name:        "negative policy clamps to zero",
			zones:       []*models.DeliveryZone{eastVillage("promo", 1, 0, -10, 0.1, 20)},
			wantZone:    "promo",
			wantFee:     0,
			wantMinutes: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ResolveZoneFee(nycRestaurant, nycDestination, tt.zones, defaultFees())
			require.NoError(t, err)

			if tt.wantZone == "" {
				assert.Nil(t, result.ZoneID)
			} else {
				require.NotNil(t, result.ZoneID)
				assert.Equal(t, tt.wantZone, *result.ZoneID)
			}
			assert.InDelta(t, tt.wantFee, result.Fee, 1e-9)
			assert.Equal(t, tt.wantMinutes, result.EstimatedMinutes)
			assert.InDelta(t, 6.29, result.DistanceKm, 0.01)
		})
	}
}

func TestResolveZoneFee_NeverNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		a := models.Location{Latitude: rng.Float64()*180 - 90, Longitude: rng.Float64()*360 - 180}
		b := models.Location{Latitude: rng.Float64()*180 - 90, Longitude: rng.Float64()*360 - 180}
		zone := &models.DeliveryZone{
			ID: "z",
			Polygon: []models.ZonePoint{
				{Latitude: -90, Longitude: -180}, {Latitude: -90, Longitude: 180},
				{Latitude: 90, Longitude: 180}, {Latitude: 90, Longitude: -180},
			},
			BaseFee:  rng.Float64()*20 - 10,
			PerKmFee: rng.Float64()*2 - 1,
		}

		result, err := ResolveZoneFee(a, b, []*models.DeliveryZone{zone}, defaultFees())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.Fee, 0.0)
	}
}

func TestMatchZone_OpenAndClosedRings(t *testing.T) {
	open := eastVillage("open", 1, 0, 0, 0, 0)
	closed := eastVillage("closed", 1, 1, 0, 0, 0)
	closed.Polygon = append(closed.Polygon, closed.Polygon[0])

	assert.Equal(t, "open", MatchZone(nycDestination, []*models.DeliveryZone{open}).ID)
	assert.Equal(t, "closed", MatchZone(nycDestination, []*models.DeliveryZone{closed}).ID)

	degenerate := &models.DeliveryZone{ID: "line", Polygon: open.Polygon[:2]}
	assert.Nil(t, MatchZone(nycDestination, []*models.DeliveryZone{degenerate, nil}))
}

func TestResolveFee(t *testing.T) {
	t.Run("uses catalog zones", func(t *testing.T) {
		d := newTestUC(t)
		order := nycOrder()

		d.zones.EXPECT().
			GetZonesForRestaurant(gomock.Any(), "rest-1").
			Return([]*models.DeliveryZone{eastVillage("ev", 1, 0, 1.5, 0.3, 25)}, nil)

		result, err := d.uc.ResolveFee(context.Background(), order)
		require.NoError(t, err)
		require.NotNil(t, result.ZoneID)
		assert.Equal(t, "ev", *result.ZoneID)
		assert.Equal(t, 3.39, result.Fee)
	})

	t.Run("invalid destination never reaches the catalog", func(t *testing.T) {
		d := newTestUC(t)
		order := nycOrder()
		order.Destination.Latitude = 200

		_, err := d.uc.ResolveFee(context.Background(), order)
		assert.ErrorIs(t, err, dispatch.ErrInvalidCoordinate)
	})

	t.Run("catalog failure", func(t *testing.T) {
		d := newTestUC(t)
		boom := errors.New("catalog unavailable")

		d.zones.EXPECT().GetZonesForRestaurant(gomock.Any(), "rest-1").Return(nil, boom)

		_, err := d.uc.ResolveFee(context.Background(), nycOrder())
		assert.ErrorIs(t, err, boom)
	})
}

func TestResolveOrderFee(t *testing.T) {
	d := newTestUC(t)

	d.orders.EXPECT().GetOrder(gomock.Any(), "order-1").Return(nycOrder(), nil)
	d.zones.EXPECT().GetZonesForRestaurant(gomock.Any(), "rest-1").Return(nil, nil)

	result, err := d.uc.ResolveOrderFee(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Nil(t, result.ZoneID)
	assert.Equal(t, 6.13, result.Fee)
	assert.Equal(t, 30, result.EstimatedMinutes)

	d.orders.EXPECT().GetOrder(gomock.Any(), "missing").Return(nil, dispatch.ErrOrderNotFound)
	_, err = d.uc.ResolveOrderFee(context.Background(), "missing")
	assert.ErrorIs(t, err, dispatch.ErrOrderNotFound)
}
