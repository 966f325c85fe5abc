// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"time"

	"github.com/Landcsgirl1999/hostthub-pricing/models"
	"github.com/google/uuid"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// PropertyRepository defines operations for rental properties
type PropertyRepository interface {
	Repository[models.Property, models.PropertyFilter]
	ByUUID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	ByUUIDWithPricing(ctx context.Context, id uuid.UUID) (*models.Property, error)
	ListActive(ctx context.Context) ([]*models.Property, error)
}

// PricingConfigRepository defines operations for pricing configs
type PricingConfigRepository interface {
	Repository[models.PricingConfig, models.PricingConfigFilter]
	ByPropertyID(ctx context.Context, propertyID uint) (*models.PricingConfig, error)
}

// PricingRuleRepository defines operations for operator pricing rules
type PricingRuleRepository interface {
	Repository[models.PricingRule, models.PricingRuleFilter]
	ActiveByPropertyID(ctx context.Context, propertyID uint) ([]*models.PricingRule, error)
}

// SeasonalAdjustmentRepository defines operations for seasonal adjustments
type SeasonalAdjustmentRepository interface {
	Repository[models.SeasonalAdjustment, models.SeasonalAdjustmentFilter]
	ActiveByPropertyID(ctx context.Context, propertyID uint) ([]*models.SeasonalAdjustment, error)
}

// AmenityMultiplierRepository defines operations for amenity multipliers
type AmenityMultiplierRepository interface {
	Repository[models.AmenityMultiplier, models.AmenityMultiplierFilter]
	ActiveByPropertyID(ctx context.Context, propertyID uint) ([]*models.AmenityMultiplier, error)
}

// MarketDataRepository defines operations for market data snapshots
type MarketDataRepository interface {
	Repository[models.MarketDataSnapshot, models.MarketDataFilter]
	// LatestWithinWindow returns the most recent snapshot dated within
	// +/-windowDays of date, or nil when none exists.
	LatestWithinWindow(ctx context.Context, propertyID uint, date time.Time, windowDays int) (*models.MarketDataSnapshot, error)
	// Upsert writes a snapshot keyed by (property, date, location),
	// overwriting a prior observation for the same key.
	Upsert(ctx context.Context, snapshot *models.MarketDataSnapshot) error
}

// CompetitorPriceRepository defines operations for competitor price snapshots
type CompetitorPriceRepository interface {
	Repository[models.CompetitorPriceSnapshot, models.CompetitorPriceFilter]
	// WithinWindow returns all snapshots dated within +/-windowDays of date.
	WithinWindow(ctx context.Context, propertyID uint, date time.Time, windowDays int) ([]*models.CompetitorPriceSnapshot, error)
	// UpsertBatch writes snapshots keyed by (property, competitor, date).
	UpsertBatch(ctx context.Context, snapshots []*models.CompetitorPriceSnapshot) error
}

// PricingHistoryRepository defines operations for the pricing history cache
type PricingHistoryRepository interface {
	Repository[models.PricingHistory, models.PricingHistoryFilter]
	// Upsert idempotently writes the record keyed by (property, date).
	Upsert(ctx context.Context, record *models.PricingHistory) error
	ByPropertyAndDate(ctx context.Context, propertyID uint, date time.Time) (*models.PricingHistory, error)
	ByPropertyAndMonth(ctx context.Context, propertyID uint, year int, month time.Month) ([]*models.PricingHistory, error)
}

// ReservationRepository defines read operations on reservations used for
// occupancy derivation
type ReservationRepository interface {
	Repository[models.Reservation, models.ReservationFilter]
	// OccupancyRate returns the percentage of the month's nights that are
	// reserved for the property (0-100).
	OccupancyRate(ctx context.Context, propertyID uint, year int, month time.Month) (float64, error)
}
