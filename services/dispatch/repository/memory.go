package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/piresc/antar/internal/pkg/models"
	"github.com/piresc/antar/internal/utils"
	"github.com/piresc/antar/services/dispatch"
)

type driverEntry struct {
	// guards driver; never held while acquiring MemoryStore.mu for writing orders
	mu     sync.Mutex
	driver models.Driver
}

// MemoryStore is a process-local driver directory, order repository and zone catalog.
// It backs single-instance deployments and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	drivers map[string]*driverEntry
	orders  map[string]*models.Order
	// order id -> driver id holding it
	claims map[string]string
	zones  map[string][]*models.DeliveryZone
}

var (
	_ dispatch.DriverDirectory = (*MemoryStore)(nil)
	_ dispatch.OrderRepo       = (*MemoryStore)(nil)
	_ dispatch.ZoneCatalog     = (*MemoryStore)(nil)
)

// NewMemoryStore creates an empty store seeded with the given zones
func NewMemoryStore(zones []*models.DeliveryZone) *MemoryStore {
	s := &MemoryStore{
		drivers: make(map[string]*driverEntry),
		orders:  make(map[string]*models.Order),
		claims:  make(map[string]string),
		zones:   make(map[string][]*models.DeliveryZone),
	}
	s.SetZones(zones)
	return s
}

// SetZones replaces the zone catalog, grouping zones by restaurant in definition order
func (s *MemoryStore) SetZones(zones []*models.DeliveryZone) {
	grouped := make(map[string][]*models.DeliveryZone)
	for _, z := range zones {
		grouped[z.RestaurantID] = append(grouped[z.RestaurantID], z)
	}
	for _, list := range grouped {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].DefinitionOrder < list[j].DefinitionOrder
		})
	}

	s.mu.Lock()
	s.zones = grouped
	s.mu.Unlock()
}

// GetZonesForRestaurant returns a copy of the restaurant's zones
func (s *MemoryStore) GetZonesForRestaurant(ctx context.Context, restaurantID string) ([]*models.DeliveryZone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	zones := make([]*models.DeliveryZone, 0, len(s.zones[restaurantID]))
	for _, z := range s.zones[restaurantID] {
		cp := *z
		zones = append(zones, &cp)
	}
	return zones, nil
}

func (s *MemoryStore) entry(driverID string) (*driverEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.drivers[driverID]
	return e, ok
}

func (s *MemoryStore) entries() []*driverEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]*driverEntry, 0, len(s.drivers))
	for _, e := range s.drivers {
		list = append(list, e)
	}
	return list
}

func snapshot(d *models.Driver) *models.Driver {
	cp := *d
	if d.CurrentOrderID != nil {
		id := *d.CurrentOrderID
		cp.CurrentOrderID = &id
	}
	return &cp
}

// GetAvailableDrivers returns snapshots of available, fresh drivers, optionally within a radius
func (s *MemoryStore) GetAvailableDrivers(ctx context.Context, query dispatch.DriverQuery) ([]*models.Driver, error) {
	now := query.Now
	if now.IsZero() {
		now = time.Now()
	}

	var drivers []*models.Driver
	for _, e := range s.entries() {
		e.mu.Lock()
		d := snapshot(&e.driver)
		e.mu.Unlock()

		if d.Availability != models.DriverAvailable {
			continue
		}
		if query.FreshnessWindow > 0 && !d.IsFresh(now, query.FreshnessWindow) {
			continue
		}
		if query.Near != nil && query.RadiusKm > 0 {
			km, err := utils.Distance(d.Location, *query.Near)
			if err != nil || km > query.RadiusKm {
				continue
			}
		}
		drivers = append(drivers, d)
	}

	sort.Slice(drivers, func(i, j int) bool { return drivers[i].ID < drivers[j].ID })
	return drivers, nil
}

// GetDriver returns a snapshot of one driver
func (s *MemoryStore) GetDriver(ctx context.Context, driverID string) (*models.Driver, error) {
	e, ok := s.entry(driverID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", dispatch.ErrDriverNotFound, driverID)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return snapshot(&e.driver), nil
}

// UpsertDriver creates a driver or refreshes its profile.
// Availability and the current order of an existing driver are kept.
func (s *MemoryStore) UpsertDriver(ctx context.Context, driver *models.Driver) error {
	s.mu.Lock()
	e, ok := s.drivers[driver.ID]
	if !ok {
		d := *snapshot(driver)
		d.CurrentOrderID = nil
		if d.Availability == "" || d.Availability == models.DriverBusy {
			d.Availability = models.DriverOffline
		}
		s.drivers[driver.ID] = &driverEntry{driver: d}
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.driver.Name = driver.Name
	e.driver.VehicleType = driver.VehicleType
	e.driver.Rating = driver.Rating
	e.driver.OnTimeRate = driver.OnTimeRate
	if !driver.LocationUpdatedAt.IsZero() {
		e.driver.Location = driver.Location
		e.driver.LocationUpdatedAt = driver.LocationUpdatedAt
		e.driver.Geohash = driver.Geohash
	}
	return nil
}

// UpdateLocation records the latest position of a known driver
func (s *MemoryStore) UpdateLocation(ctx context.Context, driverID string, location models.Location, geohash string) error {
	e, ok := s.entry(driverID)
	if !ok {
		return fmt.Errorf("%w: %s", dispatch.ErrDriverNotFound, driverID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	// out-of-order reports must not move the driver back in time
	if location.Timestamp.Before(e.driver.LocationUpdatedAt) {
		return nil
	}
	e.driver.Location = location
	e.driver.LocationUpdatedAt = location.Timestamp
	e.driver.Geohash = geohash
	return nil
}

// SetAvailability toggles a driver that holds no order
func (s *MemoryStore) SetAvailability(ctx context.Context, driverID string, availability models.DriverAvailability) error {
	e, ok := s.entry(driverID)
	if !ok {
		return fmt.Errorf("%w: %s", dispatch.ErrDriverNotFound, driverID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.driver.CurrentOrderID != nil {
		return fmt.Errorf("%w: %s holds order %s", dispatch.ErrDriverBusy, driverID, *e.driver.CurrentOrderID)
	}
	e.driver.Availability = availability
	return nil
}

// AssignOrder marks the driver busy with orderID under the driver's guard
func (s *MemoryStore) AssignOrder(ctx context.Context, driverID, orderID string, now time.Time, freshness time.Duration) error {
	e, ok := s.entry(driverID)
	if !ok {
		return fmt.Errorf("%w: %s", dispatch.ErrDriverNotFound, driverID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.driver.IsEligible(now, freshness) {
		return fmt.Errorf("%w: driver %s is no longer eligible", dispatch.ErrAssignmentConflict, driverID)
	}

	s.mu.Lock()
	if holder, taken := s.claims[orderID]; taken {
		s.mu.Unlock()
		return fmt.Errorf("%w: order %s already held by %s", dispatch.ErrAssignmentConflict, orderID, holder)
	}
	s.claims[orderID] = driverID
	s.mu.Unlock()

	id := orderID
	e.driver.CurrentOrderID = &id
	e.driver.Availability = models.DriverBusy
	return nil
}

// ReleaseDriver frees the driver when it still holds orderID
func (s *MemoryStore) ReleaseDriver(ctx context.Context, driverID, orderID string) error {
	e, ok := s.entry(driverID)
	if !ok {
		return fmt.Errorf("%w: %s", dispatch.ErrDriverNotFound, driverID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.driver.CurrentOrderID == nil || *e.driver.CurrentOrderID != orderID {
		return nil
	}
	e.driver.CurrentOrderID = nil
	e.driver.Availability = models.DriverAvailable

	s.mu.Lock()
	if s.claims[orderID] == driverID {
		delete(s.claims, orderID)
	}
	s.mu.Unlock()
	return nil
}

// CreateOrder stores a new order
func (s *MemoryStore) CreateOrder(ctx context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orders[order.ID]; exists {
		return fmt.Errorf("%w: %s", dispatch.ErrOrderExists, order.ID)
	}
	cp := *order
	s.orders[order.ID] = &cp
	return nil
}

// GetOrder returns a copy of the order
func (s *MemoryStore) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dispatch.ErrOrderNotFound, orderID)
	}
	cp := *o
	if o.AssignedDriverID != nil {
		id := *o.AssignedDriverID
		cp.AssignedDriverID = &id
	}
	return &cp, nil
}

// MarkOutForDelivery binds the driver to the order while it is still unassigned
func (s *MemoryStore) MarkOutForDelivery(ctx context.Context, orderID, driverID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok {
		return fmt.Errorf("%w: %s", dispatch.ErrOrderNotFound, orderID)
	}
	if !o.Assignable() {
		return fmt.Errorf("%w: order %s is %s", dispatch.ErrAssignmentConflict, orderID, o.Status)
	}

	id := driverID
	o.AssignedDriverID = &id
	o.Status = models.OrderStatusOutForDelivery
	return nil
}
