package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/piresc/antar/internal/pkg/models"
	"github.com/piresc/antar/services/dispatch"
	"github.com/piresc/antar/services/dispatch/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder(t *testing.T) {
	t.Run("fills defaults", func(t *testing.T) {
		d := newTestUC(t)
		order := &models.Order{
			ID:                 "order-1",
			RestaurantID:       "rest-1",
			RestaurantLocation: nycRestaurant,
			Destination:        nycDestination,
		}

		d.orders.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, o *models.Order) error {
				assert.Equal(t, models.PriorityNormal, o.Priority)
				assert.Equal(t, models.OrderStatusPending, o.Status)
				assert.Equal(t, fixedNow, o.CreatedAt)
				return nil
			})

		require.NoError(t, d.uc.CreateOrder(context.Background(), order))
	})

	t.Run("rejects invalid restaurant location", func(t *testing.T) {
		d := newTestUC(t)
		order := nycOrder()
		order.RestaurantLocation.Longitude = -190

		err := d.uc.CreateOrder(context.Background(), order)
		assert.ErrorIs(t, err, dispatch.ErrInvalidCoordinate)
	})

	t.Run("duplicate", func(t *testing.T) {
		d := newTestUC(t)
		d.orders.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(dispatch.ErrOrderExists)

		err := d.uc.CreateOrder(context.Background(), nycOrder())
		assert.ErrorIs(t, err, dispatch.ErrOrderExists)
	})
}

func TestUpsertDriver(t *testing.T) {
	t.Run("computes geohash for a located driver", func(t *testing.T) {
		d := newTestUC(t)
		driver := availableDriver("driver-1", nycDriverPos)

		d.drivers.EXPECT().UpsertDriver(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, got *models.Driver) error {
				assert.Len(t, got.Geohash, 7)
				assert.Equal(t, "dr5r", got.Geohash[:4])
				return nil
			})

		require.NoError(t, d.uc.UpsertDriver(context.Background(), driver))
	})

	t.Run("profile without location", func(t *testing.T) {
		d := newTestUC(t)
		driver := &models.Driver{ID: "driver-1", Rating: 5, OnTimeRate: 100}

		d.drivers.EXPECT().UpsertDriver(gomock.Any(), driver).Return(nil)

		require.NoError(t, d.uc.UpsertDriver(context.Background(), driver))
		assert.Empty(t, driver.Geohash)
	})

	t.Run("clamps a future location stamp to now", func(t *testing.T) {
		d := newTestUC(t)
		driver := availableDriver("driver-1", nycDriverPos)
		driver.LocationUpdatedAt = fixedNow.Add(365 * 24 * time.Hour)

		d.drivers.EXPECT().UpsertDriver(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, got *models.Driver) error {
				assert.Equal(t, fixedNow, got.LocationUpdatedAt)
				return nil
			})

		require.NoError(t, d.uc.UpsertDriver(context.Background(), driver))
	})

	t.Run("range errors are invalid driver", func(t *testing.T) {
		d := newTestUC(t)
		driver := availableDriver("driver-1", nycDriverPos)
		driver.OnTimeRate = 140

		err := d.uc.UpsertDriver(context.Background(), driver)
		assert.ErrorIs(t, err, dispatch.ErrInvalidDriver)
	})

	tests := []struct {
		name   string
		mutate func(*models.Driver)
	}{
		{name: "rating above five", mutate: func(d *models.Driver) { d.Rating = 5.1 }},
		{name: "negative rating", mutate: func(d *models.Driver) { d.Rating = -1 }},
		{name: "on-time above hundred", mutate: func(d *models.Driver) { d.OnTimeRate = 101 }},
		{name: "bad location", mutate: func(d *models.Driver) { d.Location.Latitude = 91 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestUC(t)
			driver := availableDriver("driver-1", nycDriverPos)
			tt.mutate(driver)

			assert.Error(t, d.uc.UpsertDriver(context.Background(), driver))
		})
	}
}

func TestUpsertDriver_FutureStampDoesNotFreezePosition(t *testing.T) {
	store := repository.NewMemoryStore(nil)
	ctx := context.Background()
	uc := NewDispatchUC(testConfig(), store, store, store, nil,
		WithClock(func() time.Time { return fixedNow }))

	driver := availableDriver("driver-1", nycDriverPos)
	driver.LocationUpdatedAt = fixedNow.Add(time.Hour)
	require.NoError(t, uc.UpsertDriver(ctx, driver))

	moved := models.Location{Latitude: 40.75, Longitude: -73.99, Timestamp: fixedNow}
	require.NoError(t, uc.UpdateDriverLocation(ctx, models.DriverLocationEvent{DriverID: "driver-1", Location: moved}))

	got, err := store.GetDriver(ctx, "driver-1")
	require.NoError(t, err)
	assert.Equal(t, 40.75, got.Location.Latitude)
	assert.Equal(t, -73.99, got.Location.Longitude)
	assert.Equal(t, fixedNow, got.LocationUpdatedAt)
	assert.True(t, got.IsFresh(fixedNow, 10*time.Minute))
}

func TestUpdateDriverLocation(t *testing.T) {
	t.Run("keeps a past timestamp", func(t *testing.T) {
		d := newTestUC(t)
		seen := fixedNow.Add(-30 * time.Second)
		loc := nycDriverPos
		loc.Timestamp = seen

		d.drivers.EXPECT().UpdateLocation(gomock.Any(), "driver-1", loc, gomock.Any()).Return(nil)

		err := d.uc.UpdateDriverLocation(context.Background(), models.DriverLocationEvent{DriverID: "driver-1", Location: loc})
		require.NoError(t, err)
	})

	t.Run("clamps future and missing timestamps to now", func(t *testing.T) {
		for _, ts := range []time.Time{{}, fixedNow.Add(time.Hour)} {
			d := newTestUC(t)
			loc := nycDriverPos
			loc.Timestamp = ts

			want := nycDriverPos
			want.Timestamp = fixedNow
			d.drivers.EXPECT().UpdateLocation(gomock.Any(), "driver-1", want, gomock.Any()).Return(nil)

			err := d.uc.UpdateDriverLocation(context.Background(), models.DriverLocationEvent{DriverID: "driver-1", Location: loc})
			require.NoError(t, err)
		}
	})

	t.Run("invalid coordinate", func(t *testing.T) {
		d := newTestUC(t)
		err := d.uc.UpdateDriverLocation(context.Background(), models.DriverLocationEvent{
			DriverID: "driver-1",
			Location: models.Location{Latitude: 200, Longitude: 0},
		})
		assert.ErrorIs(t, err, dispatch.ErrInvalidCoordinate)
	})

	t.Run("unknown driver", func(t *testing.T) {
		d := newTestUC(t)
		d.drivers.EXPECT().UpdateLocation(gomock.Any(), "ghost", gomock.Any(), gomock.Any()).Return(dispatch.ErrDriverNotFound)

		err := d.uc.UpdateDriverLocation(context.Background(), models.DriverLocationEvent{DriverID: "ghost", Location: nycDriverPos})
		assert.ErrorIs(t, err, dispatch.ErrDriverNotFound)
	})
}

func TestSetDriverAvailability(t *testing.T) {
	t.Run("available and offline are accepted", func(t *testing.T) {
		d := newTestUC(t)
		d.drivers.EXPECT().SetAvailability(gomock.Any(), "driver-1", models.DriverAvailable).Return(nil)
		d.drivers.EXPECT().SetAvailability(gomock.Any(), "driver-1", models.DriverOffline).Return(nil)

		ctx := context.Background()
		require.NoError(t, d.uc.SetDriverAvailability(ctx, models.DriverAvailabilityEvent{DriverID: "driver-1", Availability: models.DriverAvailable}))
		require.NoError(t, d.uc.SetDriverAvailability(ctx, models.DriverAvailabilityEvent{DriverID: "driver-1", Availability: models.DriverOffline}))
	})

	t.Run("busy is not settable", func(t *testing.T) {
		d := newTestUC(t)
		err := d.uc.SetDriverAvailability(context.Background(), models.DriverAvailabilityEvent{DriverID: "driver-1", Availability: models.DriverBusy})
		assert.ErrorIs(t, err, dispatch.ErrInvalidAvailability)
	})

	t.Run("driver on a delivery", func(t *testing.T) {
		d := newTestUC(t)
		d.drivers.EXPECT().SetAvailability(gomock.Any(), "driver-1", models.DriverOffline).Return(dispatch.ErrDriverBusy)

		err := d.uc.SetDriverAvailability(context.Background(), models.DriverAvailabilityEvent{DriverID: "driver-1", Availability: models.DriverOffline})
		assert.ErrorIs(t, err, dispatch.ErrDriverBusy)
	})
}

func TestReleaseDriver(t *testing.T) {
	d := newTestUC(t)
	boom := errors.New("redis down")

	d.drivers.EXPECT().ReleaseDriver(gomock.Any(), "driver-1", "order-1").Return(nil)
	d.drivers.EXPECT().ReleaseDriver(gomock.Any(), "driver-2", "order-2").Return(boom)

	require.NoError(t, d.uc.ReleaseDriver(context.Background(), "driver-1", "order-1"))
	assert.ErrorIs(t, d.uc.ReleaseDriver(context.Background(), "driver-2", "order-2"), boom)
}
