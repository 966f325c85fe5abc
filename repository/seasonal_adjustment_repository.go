package repository

import (
	"context"

	"github.com/Landcsgirl1999/hostthub-pricing/models"
	"gorm.io/gorm"
)

// SeasonalAdjustmentRepositoryImpl implements SeasonalAdjustmentRepository
type SeasonalAdjustmentRepositoryImpl struct {
	*BaseRepository[models.SeasonalAdjustment, models.SeasonalAdjustmentFilter]
}

// NewSeasonalAdjustmentRepository creates a new repository for seasonal adjustments
func NewSeasonalAdjustmentRepository(db *gorm.DB) SeasonalAdjustmentRepository {
	return &SeasonalAdjustmentRepositoryImpl{
		BaseRepository: NewBaseRepository[models.SeasonalAdjustment, models.SeasonalAdjustmentFilter](db),
	}
}

// ActiveByPropertyID returns the property's active seasonal adjustments.
func (r *SeasonalAdjustmentRepositoryImpl) ActiveByPropertyID(ctx context.Context, propertyID uint) ([]*models.SeasonalAdjustment, error) {
	db := r.getDB(ctx)

	var adjustments []*models.SeasonalAdjustment
	err := db.
		Where("property_id = ? AND is_active = ?", propertyID, true).
		Order("id ASC").
		Find(&adjustments).Error
	if err != nil {
		return nil, err
	}
	return adjustments, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *SeasonalAdjustmentRepositoryImpl) applyFilter(db *gorm.DB, filter models.SeasonalAdjustmentFilter) *gorm.DB {
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

// ByFilter retrieves seasonal adjustments based on filter criteria.
func (r *SeasonalAdjustmentRepositoryImpl) ByFilter(ctx context.Context, filter models.SeasonalAdjustmentFilter, orderBy string, limit, offset int) ([]*models.SeasonalAdjustment, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.SeasonalAdjustment{}), filter)

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

	var rows []*models.SeasonalAdjustment
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of seasonal adjustments matching the filter.
func (r *SeasonalAdjustmentRepositoryImpl) Count(ctx context.Context, filter models.SeasonalAdjustmentFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.SeasonalAdjustment{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any seasonal adjustment matching the filter exists.
func (r *SeasonalAdjustmentRepositoryImpl) Exists(ctx context.Context, filter models.SeasonalAdjustmentFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
