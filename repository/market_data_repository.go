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

// MarketDataRepositoryImpl implements MarketDataRepository
type MarketDataRepositoryImpl struct {
	*BaseRepository[models.MarketDataSnapshot, models.MarketDataFilter]
}

// NewMarketDataRepository creates a new repository for market data snapshots
func NewMarketDataRepository(db *gorm.DB) MarketDataRepository {
	return &MarketDataRepositoryImpl{
		BaseRepository: NewBaseRepository[models.MarketDataSnapshot, models.MarketDataFilter](db),
	}
}

// LatestWithinWindow returns the most recent snapshot dated within
// +/-windowDays of the stay date, or nil when no snapshot qualifies.
func (r *MarketDataRepositoryImpl) LatestWithinWindow(ctx context.Context, propertyID uint, date time.Time, windowDays int) (*models.MarketDataSnapshot, error) {
	db := r.getDB(ctx)

	day := utils.DateOnly(date)
	from := day.AddDate(0, 0, -windowDays)
	to := day.AddDate(0, 0, windowDays)

	var snapshot models.MarketDataSnapshot
	err := db.
		Where("property_id = ? AND date BETWEEN ? AND ?", propertyID, from, to).
		Order("date DESC, created_at DESC").
		First(&snapshot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &snapshot, nil
}

// Upsert writes a snapshot keyed by (property, date, location). A prior
// observation for the same key is overwritten.
func (r *MarketDataRepositoryImpl) Upsert(ctx context.Context, snapshot *models.MarketDataSnapshot) error {
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

	snapshot.Date = utils.DateOnly(snapshot.Date)
	err = db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "property_id"}, {Name: "date"}, {Name: "location"}},
		DoUpdates: clause.Assignments(map[string]any{
			"price_trend":      clause.Expr{SQL: "EXCLUDED.price_trend"},
			"demand_score":     clause.Expr{SQL: "EXCLUDED.demand_score"},
			"competitor_count": clause.Expr{SQL: "EXCLUDED.competitor_count"},
			"average_price":    clause.Expr{SQL: "EXCLUDED.average_price"},
			"updated_at":       utils.UTCNow(),
		}),
	}).Create(snapshot).Error
	return err
}

// applyFilter applies filter conditions to the GORM query
func (r *MarketDataRepositoryImpl) applyFilter(db *gorm.DB, filter models.MarketDataFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.PropertyID != nil {
		db = db.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.Location != nil {
		db = db.Where("location = ?", *filter.Location)
	}
	if filter.DateAfter != nil {
		db = db.Where("date >= ?", *filter.DateAfter)
	}
	if filter.DateBefore != nil {
		db = db.Where("date <= ?", *filter.DateBefore)
	}
	return db
}

// ByFilter retrieves market data snapshots based on filter criteria.
func (r *MarketDataRepositoryImpl) ByFilter(ctx context.Context, filter models.MarketDataFilter, orderBy string, limit, offset int) ([]*models.MarketDataSnapshot, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.MarketDataSnapshot{}), filter)

	if orderBy == "" {
		orderBy = "date DESC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.MarketDataSnapshot
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of market data snapshots matching the filter.
func (r *MarketDataRepositoryImpl) Count(ctx context.Context, filter models.MarketDataFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.MarketDataSnapshot{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any market data snapshot matching the filter exists.
func (r *MarketDataRepositoryImpl) Exists(ctx context.Context, filter models.MarketDataFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
