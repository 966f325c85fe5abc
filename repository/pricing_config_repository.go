package repository

import (
	"context"
	"errors"

	"github.com/Landcsgirl1999/hostthub-pricing/models"
	"gorm.io/gorm"
)

// PricingConfigRepositoryImpl implements PricingConfigRepository
type PricingConfigRepositoryImpl struct {
	*BaseRepository[models.PricingConfig, models.PricingConfigFilter]
}

// NewPricingConfigRepository creates a new repository for pricing configs
func NewPricingConfigRepository(db *gorm.DB) PricingConfigRepository {
	return &PricingConfigRepositoryImpl{
		BaseRepository: NewBaseRepository[models.PricingConfig, models.PricingConfigFilter](db),
	}
}

// ByPropertyID returns the property's pricing config, or nil when the
// property has not been configured for dynamic pricing.
func (r *PricingConfigRepositoryImpl) ByPropertyID(ctx context.Context, propertyID uint) (*models.PricingConfig, error) {
	db := r.getDB(ctx)

	var config models.PricingConfig
	err := db.Where("property_id = ?", propertyID).First(&config).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &config, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *PricingConfigRepositoryImpl) applyFilter(db *gorm.DB, filter models.PricingConfigFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.PropertyID != nil {
		db = db.Where("property_id = ?", *filter.PropertyID)
	}
	return db
}

// ByFilter retrieves pricing configs based on filter criteria.
func (r *PricingConfigRepositoryImpl) ByFilter(ctx context.Context, filter models.PricingConfigFilter, orderBy string, limit, offset int) ([]*models.PricingConfig, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.PricingConfig{}), filter)

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

	var rows []*models.PricingConfig
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of pricing configs matching the filter.
func (r *PricingConfigRepositoryImpl) Count(ctx context.Context, filter models.PricingConfigFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.PricingConfig{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any pricing config matching the filter exists.
func (r *PricingConfigRepositoryImpl) Exists(ctx context.Context, filter models.PricingConfigFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
