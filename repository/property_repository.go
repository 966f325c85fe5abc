package repository

import (
	"context"
	"errors"

	"github.com/Landcsgirl1999/hostthub-pricing/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PropertyRepositoryImpl implements PropertyRepository
type PropertyRepositoryImpl struct {
	*BaseRepository[models.Property, models.PropertyFilter]
}

// NewPropertyRepository creates a new repository for rental properties
func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &PropertyRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Property, models.PropertyFilter](db),
	}
}

// ByUUID retrieves a property by its UUID.
func (r *PropertyRepositoryImpl) ByUUID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	db := r.getDB(ctx)

	var property models.Property
	err := db.Where("uuid = ?", id).First(&property).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &property, nil
}

// ByUUIDWithPricing retrieves a property with its pricing config, active
// rules (priority descending), seasonal adjustments and amenity
// multipliers preloaded in one round trip.
func (r *PropertyRepositoryImpl) ByUUIDWithPricing(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	db := r.getDB(ctx)

	var property models.Property
	err := db.
		Preload("PricingConfig").
		Preload("PricingRules", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("priority DESC, id ASC")
		}).
		Preload("SeasonalAdjustments", "is_active = ?", true).
		Preload("AmenityMultipliers", "is_active = ?", true).
		Where("uuid = ?", id).
		First(&property).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &property, nil
}

// ListActive returns all active properties.
func (r *PropertyRepositoryImpl) ListActive(ctx context.Context) ([]*models.Property, error) {
	db := r.getDB(ctx)

	var properties []*models.Property
	err := db.Where("is_active = ?", true).Order("id ASC").Find(&properties).Error
	if err != nil {
		return nil, err
	}
	return properties, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *PropertyRepositoryImpl) applyFilter(db *gorm.DB, filter models.PropertyFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.City != nil {
		db = db.Where("city = ?", *filter.City)
	}
	if filter.State != nil {
		db = db.Where("state = ?", *filter.State)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}
	return db
}

// ByFilter retrieves properties based on filter criteria.
func (r *PropertyRepositoryImpl) ByFilter(ctx context.Context, filter models.PropertyFilter, orderBy string, limit, offset int) ([]*models.Property, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Property{}), filter)

	if orderBy == "" {
		orderBy = "created_at DESC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.Property
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of properties matching the filter.
func (r *PropertyRepositoryImpl) Count(ctx context.Context, filter models.PropertyFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Property{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any property matching the filter exists.
func (r *PropertyRepositoryImpl) Exists(ctx context.Context, filter models.PropertyFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
