package repository

import (
	"context"

	"github.com/Landcsgirl1999/hostthub-pricing/models"
	"gorm.io/gorm"
)

// PricingRuleRepositoryImpl implements PricingRuleRepository
type PricingRuleRepositoryImpl struct {
	*BaseRepository[models.PricingRule, models.PricingRuleFilter]
}

// NewPricingRuleRepository creates a new repository for pricing rules
func NewPricingRuleRepository(db *gorm.DB) PricingRuleRepository {
	return &PricingRuleRepositoryImpl{
		BaseRepository: NewBaseRepository[models.PricingRule, models.PricingRuleFilter](db),
	}
}

// ActiveByPropertyID returns the property's active rules ordered by
// priority descending (id ascending as a stable tie-break).
func (r *PricingRuleRepositoryImpl) ActiveByPropertyID(ctx context.Context, propertyID uint) ([]*models.PricingRule, error) {
	db := r.getDB(ctx)

	var rules []*models.PricingRule
	err := db.
		Where("property_id = ? AND is_active = ?", propertyID, true).
		Order("priority DESC, id ASC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *PricingRuleRepositoryImpl) applyFilter(db *gorm.DB, filter models.PricingRuleFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.PropertyID != nil {
		db = db.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.PriceType != nil {
		db = db.Where("price_type = ?", *filter.PriceType)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}
	return db
}

// ByFilter retrieves pricing rules based on filter criteria.
func (r *PricingRuleRepositoryImpl) ByFilter(ctx context.Context, filter models.PricingRuleFilter, orderBy string, limit, offset int) ([]*models.PricingRule, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.PricingRule{}), filter)

	if orderBy == "" {
		orderBy = "priority DESC, id ASC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.PricingRule
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of pricing rules matching the filter.
func (r *PricingRuleRepositoryImpl) Count(ctx context.Context, filter models.PricingRuleFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.PricingRule{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any pricing rule matching the filter exists.
func (r *PricingRuleRepositoryImpl) Exists(ctx context.Context, filter models.PricingRuleFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
