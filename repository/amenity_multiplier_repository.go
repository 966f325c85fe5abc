package repository

import (
	"context"

	"github.com/Landcsgirl1999/hostthub-pricing/models"
	"gorm.io/gorm"
)

// AmenityMultiplierRepositoryImpl implements AmenityMultiplierRepository
type AmenityMultiplierRepositoryImpl struct {
	*BaseRepository[models.AmenityMultiplier, models.AmenityMultiplierFilter]
}

// NewAmenityMultiplierRepository creates a new repository for amenity multipliers
func NewAmenityMultiplierRepository(db *gorm.DB) AmenityMultiplierRepository {
	return &AmenityMultiplierRepositoryImpl{
		BaseRepository: NewBaseRepository[models.AmenityMultiplier, models.AmenityMultiplierFilter](db),
	}
}

// ActiveByPropertyID returns the property's active amenity multipliers.
func (r *AmenityMultiplierRepositoryImpl) ActiveByPropertyID(ctx context.Context, propertyID uint) ([]*models.AmenityMultiplier, error) {
	db := r.getDB(ctx)

	var multipliers []*models.AmenityMultiplier
	err := db.
		Where("property_id = ? AND is_active = ?", propertyID, true).
		Order("id ASC").
		Find(&multipliers).Error
	if err != nil {
		return nil, err
	}
	return multipliers, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *AmenityMultiplierRepositoryImpl) applyFilter(db *gorm.DB, filter models.AmenityMultiplierFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.PropertyID != nil {
		db = db.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}
	return db
}

// ByFilter retrieves amenity multipliers based on filter criteria.
func (r *AmenityMultiplierRepositoryImpl) ByFilter(ctx context.Context, filter models.AmenityMultiplierFilter, orderBy string, limit, offset int) ([]*models.AmenityMultiplier, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.AmenityMultiplier{}), filter)

	if orderBy == "" {
		orderBy = "id ASC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.AmenityMultiplier
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of amenity multipliers matching the filter.
func (r *AmenityMultiplierRepositoryImpl) Count(ctx context.Context, filter models.AmenityMultiplierFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.AmenityMultiplier{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any amenity multiplier matching the filter exists.
func (r *AmenityMultiplierRepositoryImpl) Exists(ctx context.Context, filter models.AmenityMultiplierFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
