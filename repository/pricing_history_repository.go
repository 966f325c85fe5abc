package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Landcsgirl1999/hostthub-pricing/models"
	"github.com/Landcsgirl1999/hostthub-pricing/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PricingHistoryRepositoryImpl implements PricingHistoryRepository
type PricingHistoryRepositoryImpl struct {
	*BaseRepository[models.PricingHistory, models.PricingHistoryFilter]
}

// NewPricingHistoryRepository creates a new repository for pricing history
func NewPricingHistoryRepository(db *gorm.DB) PricingHistoryRepository {
	return &PricingHistoryRepositoryImpl{
		BaseRepository: NewBaseRepository[models.PricingHistory, models.PricingHistoryFilter](db),
	}
}

// Upsert idempotently writes the record keyed by (property, date).
// Recomputation overwrites the previous values; no trail is kept.
func (r *PricingHistoryRepositoryImpl) Upsert(ctx context.Context, record *models.PricingHistory) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	record.Date = utils.DateOnly(record.Date)
	err = db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "property_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]any{
			"base_price":     clause.Expr{SQL: "EXCLUDED.base_price"},
			"final_price":    clause.Expr{SQL: "EXCLUDED.final_price"},
			"applied_rules":  clause.Expr{SQL: "EXCLUDED.applied_rules"},
			"market_factors": clause.Expr{SQL: "EXCLUDED.market_factors"},
			"confidence":     clause.Expr{SQL: "EXCLUDED.confidence"},
			"updated_at":     utils.UTCNow(),
		}),
	}).Create(record).Error
	return err
}

// ByPropertyAndDate returns the record for (property, date), or nil.
func (r *PricingHistoryRepositoryImpl) ByPropertyAndDate(ctx context.Context, propertyID uint, date time.Time) (*models.PricingHistory, error) {
	db := r.getDB(ctx)

	var record models.PricingHistory
	err := db.
		Where("property_id = ? AND date = ?", propertyID, utils.DateOnly(date)).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// ByPropertyAndMonth returns the month's records ordered by date.
func (r *PricingHistoryRepositoryImpl) ByPropertyAndMonth(ctx context.Context, propertyID uint, year int, month time.Month) ([]*models.PricingHistory, error) {
	db := r.getDB(ctx)

	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	var records []*models.PricingHistory
	err := db.
		Where("property_id = ? AND date >= ? AND date < ?", propertyID, from, to).
		Order("date ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *PricingHistoryRepositoryImpl) applyFilter(db *gorm.DB, filter models.PricingHistoryFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.PropertyID != nil {
		db = db.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.DateAfter != nil {
		db = db.Where("date >= ?", *filter.DateAfter)
	}
	if filter.DateBefore != nil {
		db = db.Where("date <= ?", *filter.DateBefore)
	}
	return db
}

// ByFilter retrieves pricing history records based on filter criteria.
func (r *PricingHistoryRepositoryImpl) ByFilter(ctx context.Context, filter models.PricingHistoryFilter, orderBy string, limit, offset int) ([]*models.PricingHistory, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.PricingHistory{}), filter)

	if orderBy == "" {
		orderBy = "date ASC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.PricingHistory
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of pricing history records matching the filter.
func (r *PricingHistoryRepositoryImpl) Count(ctx context.Context, filter models.PricingHistoryFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.PricingHistory{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any pricing history record matching the filter exists.
func (r *PricingHistoryRepositoryImpl) Exists(ctx context.Context, filter models.PricingHistoryFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
