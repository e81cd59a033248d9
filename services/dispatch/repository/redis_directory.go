package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/piresc/antar/internal/pkg/constants"
	"github.com/piresc/antar/internal/pkg/database"
	"github.com/piresc/antar/internal/pkg/models"
	"github.com/piresc/antar/services/dispatch"
)

const (
	// ClaimTTL bounds how long an order claim survives without a release
	ClaimTTL = 24 * time.Hour
)

type driverDirectory struct {
	redisClient *database.RedisClient
}

// NewDriverDirectory creates a Redis-backed driver directory.
// Each driver is a hash; per-driver mutations run under WATCH on that hash.
func NewDriverDirectory(redisClient *database.RedisClient) dispatch.DriverDirectory {
	return &driverDirectory{
		redisClient: redisClient,
	}
}

func driverKey(driverID string) string {
	return fmt.Sprintf(constants.KeyDriver, driverID)
}

func claimKey(orderID string) string {
	return fmt.Sprintf(constants.KeyOrderAssignment, orderID)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// decodeDriver rebuilds a driver from its hash fields
func decodeDriver(driverID string, fields map[string]string) (*models.Driver, error) {
	d := &models.Driver{
		ID:           driverID,
		Name:         fields[constants.FieldName],
		VehicleType:  fields[constants.FieldVehicleType],
		Geohash:      fields[constants.FieldGeohash],
		Availability: models.DriverAvailability(fields[constants.FieldAvailability]),
	}

	var err error
	parse := func(field string) float64 {
		raw, ok := fields[field]
		if !ok || raw == "" || err != nil {
			return 0
		}
		var v float64
		v, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			err = fmt.Errorf("invalid %s for driver %s: %w", field, driverID, err)
		}
		return v
	}
	d.Location.Latitude = parse(constants.FieldLatitude)
	d.Location.Longitude = parse(constants.FieldLongitude)
	d.Rating = parse(constants.FieldRating)
	d.OnTimeRate = parse(constants.FieldOnTimeRate)
	if err != nil {
		return nil, err
	}

	if raw := fields[constants.FieldTimestamp]; raw != "" {
		ms, perr := strconv.ParseInt(raw, 10, 64)
		if perr != nil {
			return nil, fmt.Errorf("invalid timestamp for driver %s: %w", driverID, perr)
		}
		d.LocationUpdatedAt = time.UnixMilli(ms).UTC()
		d.Location.Timestamp = d.LocationUpdatedAt
	}

	if orderID := fields[constants.FieldCurrentOrder]; orderID != "" {
		d.CurrentOrderID = &orderID
	}
	if d.Availability == "" {
		d.Availability = models.DriverOffline
	}
	return d, nil
}

func locationFields(d *models.Driver) map[string]interface{} {
	return map[string]interface{}{
		constants.FieldLatitude:  formatFloat(d.Location.Latitude),
		constants.FieldLongitude: formatFloat(d.Location.Longitude),
		constants.FieldTimestamp: strconv.FormatInt(d.LocationUpdatedAt.UnixMilli(), 10),
		constants.FieldGeohash:   d.Geohash,
	}
}

// candidateIDs returns the ids to inspect, using the geo index when a radius is given
func (r *driverDirectory) candidateIDs(ctx context.Context, query dispatch.DriverQuery) ([]string, error) {
	if query.Near != nil && query.RadiusKm > 0 {
		nearby, err := r.redisClient.GeoRadius(ctx, constants.KeyDriversGeo,
			query.Near.Longitude, query.Near.Latitude, query.RadiusKm, "km")
		if err != nil {
			return nil, fmt.Errorf("failed to search nearby drivers: %w", err)
		}
		ids := make([]string, 0, len(nearby))
		for _, loc := range nearby {
			ids = append(ids, loc.Name)
		}
		return ids, nil
	}

	ids, err := r.redisClient.Client.SMembers(ctx, constants.KeyDriversAvailable).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list available drivers: %w", err)
	}
	return ids, nil
}

// GetAvailableDrivers loads available drivers in one pipeline and drops stale ones
func (r *driverDirectory) GetAvailableDrivers(ctx context.Context, query dispatch.DriverQuery) ([]*models.Driver, error) {
	ids, err := r.candidateIDs(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	pipe := r.redisClient.Client.Pipeline()
	cmds := make([]*redis.StringStringMapCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, driverKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to load drivers: %w", err)
	}

	now := query.Now
	if now.IsZero() {
		now = time.Now()
	}

	drivers := make([]*models.Driver, 0, len(ids))
	for i, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			continue
		}
		d, err := decodeDriver(ids[i], fields)
		if err != nil {
			return nil, err
		}
		if d.Availability != models.DriverAvailable {
			continue
		}
		if query.FreshnessWindow > 0 && !d.IsFresh(now, query.FreshnessWindow) {
			continue
		}
		drivers = append(drivers, d)
	}

	sort.Slice(drivers, func(i, j int) bool { return drivers[i].ID < drivers[j].ID })
	return drivers, nil
}

// GetDriver loads one driver hash
func (r *driverDirectory) GetDriver(ctx context.Context, driverID string) (*models.Driver, error) {
	fields, err := r.redisClient.Client.HGetAll(ctx, driverKey(driverID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: %s", dispatch.ErrDriverNotFound, driverID)
	}
	return decodeDriver(driverID, fields)
}

// watch runs fn as an optimistic transaction over keys, mapping a lost race to ErrAssignmentConflict
func (r *driverDirectory) watch(ctx context.Context, fn func(tx *redis.Tx) error, keys ...string) error {
	err := r.redisClient.Client.Watch(ctx, fn, keys...)
	if errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("%w: %v", dispatch.ErrAssignmentConflict, err)
	}
	return err
}

// UpsertDriver creates a driver hash or refreshes its profile fields.
// Availability and the current order of an existing driver are kept.
func (r *driverDirectory) UpsertDriver(ctx context.Context, driver *models.Driver) error {
	key := driverKey(driver.ID)

	return r.watch(ctx, func(tx *redis.Tx) error {
		exists, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return fmt.Errorf("failed to check driver: %w", err)
		}

		fields := map[string]interface{}{
			constants.FieldName:        driver.Name,
			constants.FieldVehicleType: driver.VehicleType,
			constants.FieldRating:      formatFloat(driver.Rating),
			constants.FieldOnTimeRate:  formatFloat(driver.OnTimeRate),
		}
		hasLocation := !driver.LocationUpdatedAt.IsZero()
		if hasLocation {
			for k, v := range locationFields(driver) {
				fields[k] = v
			}
		}

		availability := driver.Availability
		if availability == "" || availability == models.DriverBusy {
			availability = models.DriverOffline
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if exists == 0 {
				fields[constants.FieldAvailability] = string(availability)
				if availability == models.DriverAvailable {
					pipe.SAdd(ctx, constants.KeyDriversAvailable, driver.ID)
				}
			}
			pipe.HSet(ctx, key, fields)
			if hasLocation {
				pipe.GeoAdd(ctx, constants.KeyDriversGeo, &redis.GeoLocation{
					Name:      driver.ID,
					Longitude: driver.Location.Longitude,
					Latitude:  driver.Location.Latitude,
				})
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to upsert driver: %w", err)
		}
		return nil
	}, key)
}

// UpdateLocation stores the latest position and refreshes the geo index
func (r *driverDirectory) UpdateLocation(ctx context.Context, driverID string, location models.Location, geohash string) error {
	key := driverKey(driverID)

	return r.watch(ctx, func(tx *redis.Tx) error {
		vals, err := tx.HMGet(ctx, key, constants.FieldTimestamp, constants.FieldAvailability).Result()
		if err != nil {
			return fmt.Errorf("failed to read driver: %w", err)
		}
		if vals[1] == nil {
			return fmt.Errorf("%w: %s", dispatch.ErrDriverNotFound, driverID)
		}
		// out-of-order reports must not move the driver back in time
		if raw, ok := vals[0].(string); ok && raw != "" {
			if last, err := strconv.ParseInt(raw, 10, 64); err == nil && location.Timestamp.UnixMilli() < last {
				return nil
			}
		}

		d := &models.Driver{Location: location, LocationUpdatedAt: location.Timestamp, Geohash: geohash}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, locationFields(d))
			pipe.GeoAdd(ctx, constants.KeyDriversGeo, &redis.GeoLocation{
				Name:      driverID,
				Longitude: location.Longitude,
				Latitude:  location.Latitude,
			})
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to store driver location: %w", err)
		}
		return nil
	}, key)
}

// SetAvailability toggles a driver that holds no order
func (r *driverDirectory) SetAvailability(ctx context.Context, driverID string, availability models.DriverAvailability) error {
	key := driverKey(driverID)

	return r.watch(ctx, func(tx *redis.Tx) error {
		vals, err := tx.HMGet(ctx, key, constants.FieldAvailability, constants.FieldCurrentOrder).Result()
		if err != nil {
			return fmt.Errorf("failed to read driver: %w", err)
		}
		if vals[0] == nil {
			return fmt.Errorf("%w: %s", dispatch.ErrDriverNotFound, driverID)
		}
		if orderID, ok := vals[1].(string); ok && orderID != "" {
			return fmt.Errorf("%w: %s holds order %s", dispatch.ErrDriverBusy, driverID, orderID)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, constants.FieldAvailability, string(availability))
			if availability == models.DriverAvailable {
				pipe.SAdd(ctx, constants.KeyDriversAvailable, driverID)
			} else {
				pipe.SRem(ctx, constants.KeyDriversAvailable, driverID)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to set availability: %w", err)
		}
		return nil
	}, key)
}

// AssignOrder re-checks eligibility while watching the driver hash and the order claim,
// then marks the driver busy and claims the order in one MULTI block
func (r *driverDirectory) AssignOrder(ctx context.Context, driverID, orderID string, now time.Time, freshness time.Duration) error {
	dKey := driverKey(driverID)
	cKey := claimKey(orderID)

	return r.watch(ctx, func(tx *redis.Tx) error {
		fields, err := tx.HGetAll(ctx, dKey).Result()
		if err != nil {
			return fmt.Errorf("failed to read driver: %w", err)
		}
		if len(fields) == 0 {
			return fmt.Errorf("%w: %s", dispatch.ErrDriverNotFound, driverID)
		}
		d, err := decodeDriver(driverID, fields)
		if err != nil {
			return err
		}
		if !d.IsEligible(now, freshness) {
			return fmt.Errorf("%w: driver %s is no longer eligible", dispatch.ErrAssignmentConflict, driverID)
		}

		holder, err := tx.Get(ctx, cKey).Result()
		switch {
		case err == nil:
			return fmt.Errorf("%w: order %s already held by %s", dispatch.ErrAssignmentConflict, orderID, holder)
		case !errors.Is(err, redis.Nil):
			return fmt.Errorf("failed to read order claim: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, dKey,
				constants.FieldAvailability, string(models.DriverBusy),
				constants.FieldCurrentOrder, orderID)
			pipe.SRem(ctx, constants.KeyDriversAvailable, driverID)
			pipe.Set(ctx, cKey, driverID, ClaimTTL)
			return nil
		})
		return err
	}, dKey, cKey)
}

// ReleaseDriver frees the driver and drops the order claim when it still holds orderID
func (r *driverDirectory) ReleaseDriver(ctx context.Context, driverID, orderID string) error {
	dKey := driverKey(driverID)
	cKey := claimKey(orderID)

	return r.watch(ctx, func(tx *redis.Tx) error {
		vals, err := tx.HMGet(ctx, dKey, constants.FieldAvailability, constants.FieldCurrentOrder).Result()
		if err != nil {
			return fmt.Errorf("failed to read driver: %w", err)
		}
		if vals[0] == nil {
			return fmt.Errorf("%w: %s", dispatch.ErrDriverNotFound, driverID)
		}
		if current, _ := vals[1].(string); current != orderID {
			return nil
		}

		holder, err := tx.Get(ctx, cKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("failed to read order claim: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, dKey, constants.FieldAvailability, string(models.DriverAvailable))
			pipe.HDel(ctx, dKey, constants.FieldCurrentOrder)
			pipe.SAdd(ctx, constants.KeyDriversAvailable, driverID)
			if holder == driverID {
				pipe.Del(ctx, cKey)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to release driver: %w", err)
		}
		return nil
	}, dKey, cKey)
}
