package repository

import (
	"context"
	"time"

	"github.com/Landcsgirl1999/hostthub-pricing/models"
	"github.com/Landcsgirl1999/hostthub-pricing/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CompetitorPriceRepositoryImpl implements CompetitorPriceRepository
type CompetitorPriceRepositoryImpl struct {
	*BaseRepository[models.CompetitorPriceSnapshot, models.CompetitorPriceFilter]
}

// NewCompetitorPriceRepository creates a new repository for competitor price snapshots
func NewCompetitorPriceRepository(db *gorm.DB) CompetitorPriceRepository {
	return &CompetitorPriceRepositoryImpl{
		BaseRepository: NewBaseRepository[models.CompetitorPriceSnapshot, models.CompetitorPriceFilter](db),
	}
}

// WithinWindow returns every competitor snapshot dated within
// +/-windowDays of the stay date.
func (r *CompetitorPriceRepositoryImpl) WithinWindow(ctx context.Context, propertyID uint, date time.Time, windowDays int) ([]*models.CompetitorPriceSnapshot, error) {
	db := r.getDB(ctx)

	day := utils.DateOnly(date)
	from := day.AddDate(0, 0, -windowDays)
	to := day.AddDate(0, 0, windowDays)

	var snapshots []*models.CompetitorPriceSnapshot
	err := db.
		Where("property_id = ? AND date BETWEEN ? AND ?", propertyID, from, to).
		Order("date DESC, competitor_name ASC").
		Find(&snapshots).Error
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}

// UpsertBatch writes snapshots keyed by (property, competitor, date),
// overwriting prior observations for the same key.
func (r *CompetitorPriceRepositoryImpl) UpsertBatch(ctx context.Context, snapshots []*models.CompetitorPriceSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

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

	for _, s := range snapshots {
		s.Date = utils.DateOnly(s.Date)
	}
	err = db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "property_id"}, {Name: "competitor_name"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]any{
			"price":      clause.Expr{SQL: "EXCLUDED.price"},
			"updated_at": utils.UTCNow(),
		}),
	}).Create(&snapshots).Error
	return err
}

// applyFilter applies filter conditions to the GORM query
func (r *CompetitorPriceRepositoryImpl) applyFilter(db *gorm.DB, filter models.CompetitorPriceFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.PropertyID != nil {
		db = db.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.CompetitorName != nil {
		db = db.Where("competitor_name = ?", *filter.CompetitorName)
	}
	if filter.DateAfter != nil {
		db = db.Where("date >= ?", *filter.DateAfter)
	}
	if filter.DateBefore != nil {
		db = db.Where("date <= ?", *filter.DateBefore)
	}
	return db
}

// ByFilter retrieves competitor price snapshots based on filter criteria.
func (r *CompetitorPriceRepositoryImpl) ByFilter(ctx context.Context, filter models.CompetitorPriceFilter, orderBy string, limit, offset int) ([]*models.CompetitorPriceSnapshot, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.CompetitorPriceSnapshot{}), filter)

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

	var rows []*models.CompetitorPriceSnapshot
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of competitor price snapshots matching the filter.
func (r *CompetitorPriceRepositoryImpl) Count(ctx context.Context, filter models.CompetitorPriceFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.CompetitorPriceSnapshot{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any competitor price snapshot matching the filter exists.
func (r *CompetitorPriceRepositoryImpl) Exists(ctx context.Context, filter models.CompetitorPriceFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
