package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/piresc/antar/internal/pkg/models"
)

// ZoneRepo reads delivery zones from PostgreSQL
type ZoneRepo struct {
	db *sqlx.DB
}

// NewZoneRepository creates a new zone repository
func NewZoneRepository(db *sqlx.DB) *ZoneRepo {
	return &ZoneRepo{db: db}
}

// GetZonesForRestaurant returns the restaurant's zones in definition order
func (r *ZoneRepo) GetZonesForRestaurant(ctx context.Context, restaurantID string) ([]*models.DeliveryZone, error) {
	query := `
		SELECT
			id, restaurant_id, name, polygon, priority,
			base_fee, per_km_fee, estimated_minutes, definition_order
		FROM delivery_zones
		WHERE restaurant_id = $1
		ORDER BY definition_order, id
	`

	var dtos []models.DeliveryZoneDTO
	if err := r.db.SelectContext(ctx, &dtos, query, restaurantID); err != nil {
		return nil, fmt.Errorf("failed to get zones: %w", err)
	}

	zones := make([]*models.DeliveryZone, 0, len(dtos))
	for i := range dtos {
		zone, err := zoneFromDTO(&dtos[i])
		if err != nil {
			return nil, err
		}
		zones = append(zones, zone)
	}
	return zones, nil
}

// SaveZones replaces the zones of every restaurant present in zones
func (r *ZoneRepo) SaveZones(ctx context.Context, zones []*models.DeliveryZone) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	cleared := make(map[string]bool)
	for _, z := range zones {
		if cleared[z.RestaurantID] {
			continue
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM delivery_zones WHERE restaurant_id = $1`, z.RestaurantID); err != nil {
			return fmt.Errorf("failed to clear zones for restaurant %s: %w", z.RestaurantID, err)
		}
		cleared[z.RestaurantID] = true
	}

	insertQuery := `
		INSERT INTO delivery_zones (
			id, restaurant_id, name, polygon, priority,
			base_fee, per_km_fee, estimated_minutes, definition_order
		) VALUES (
			:id, :restaurant_id, :name, :polygon, :priority,
			:base_fee, :per_km_fee, :estimated_minutes, :definition_order
		)
	`
	for _, z := range zones {
		dto, err := zoneToDTO(z)
		if err != nil {
			return err
		}
		if _, err := tx.NamedExecContext(ctx, insertQuery, dto); err != nil {
			return fmt.Errorf("failed to insert zone %s: %w", z.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func zoneFromDTO(dto *models.DeliveryZoneDTO) (*models.DeliveryZone, error) {
	var polygon []models.ZonePoint
	if err := json.Unmarshal([]byte(dto.Polygon), &polygon); err != nil {
		return nil, fmt.Errorf("invalid polygon for zone %s: %w", dto.ID, err)
	}
	return &models.DeliveryZone{
		ID:               dto.ID,
		RestaurantID:     dto.RestaurantID,
		Name:             dto.Name,
		Polygon:          polygon,
		Priority:         dto.Priority,
		BaseFee:          dto.BaseFee,
		PerKmFee:         dto.PerKmFee,
		EstimatedMinutes: dto.EstimatedMinutes,
		DefinitionOrder:  dto.DefinitionOrder,
	}, nil
}

func zoneToDTO(z *models.DeliveryZone) (*models.DeliveryZoneDTO, error) {
	polygon, err := json.Marshal(z.Polygon)
	if err != nil {
		return nil, fmt.Errorf("failed to encode polygon for zone %s: %w", z.ID, err)
	}
	return &models.DeliveryZoneDTO{
		ID:               z.ID,
		RestaurantID:     z.RestaurantID,
		Name:             z.Name,
		Polygon:          string(polygon),
		Priority:         z.Priority,
		BaseFee:          z.BaseFee,
		PerKmFee:         z.PerKmFee,
		EstimatedMinutes: z.EstimatedMinutes,
		DefinitionOrder:  z.DefinitionOrder,
	}, nil
}
