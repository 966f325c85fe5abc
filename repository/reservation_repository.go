package repository

import (
	"context"
	"time"

	"github.com/Landcsgirl1999/hostthub-pricing/models"
	"github.com/Landcsgirl1999/hostthub-pricing/utils"
	"gorm.io/gorm"
)

// ReservationRepositoryImpl implements ReservationRepository
type ReservationRepositoryImpl struct {
	*BaseRepository[models.Reservation, models.ReservationFilter]
}

// NewReservationRepository creates a new repository for reservations
func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &ReservationRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Reservation, models.ReservationFilter](db),
	}
}

// OccupancyRate returns the percentage of the month's nights reserved for
// the property (0-100). Pending and confirmed stays count; reservations
// straddling month boundaries contribute only their in-month nights.
func (r *ReservationRepositoryImpl) OccupancyRate(ctx context.Context, propertyID uint, year int, month time.Month) (float64, error) {
	db := r.getDB(ctx)

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	var reservations []*models.Reservation
	err := db.
		Where("property_id = ? AND status IN ? AND check_in < ? AND check_out > ?",
			propertyID,
			[]models.ReservationStatus{models.ReservationStatusPending, models.ReservationStatusConfirmed},
			monthEnd, monthStart).
		Find(&reservations).Error
	if err != nil {
		return 0, err
	}

	reserved := 0
	for _, res := range reservations {
		reserved += res.NightsWithin(monthStart, monthEnd)
	}

	nights := utils.DaysInMonth(year, month)
	if nights == 0 {
		return 0, nil
	}
	rate := float64(reserved) / float64(nights) * 100
	if rate > 100 {
		rate = 100
	}
	return rate, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *ReservationRepositoryImpl) applyFilter(db *gorm.DB, filter models.ReservationFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.PropertyID != nil {
		db = db.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	if filter.CheckInAfter != nil {
		db = db.Where("check_in >= ?", *filter.CheckInAfter)
	}
	if filter.CheckInBefore != nil {
		db = db.Where("check_in <= ?", *filter.CheckInBefore)
	}
	return db
}

// ByFilter retrieves reservations based on filter criteria.
func (r *ReservationRepositoryImpl) ByFilter(ctx context.Context, filter models.ReservationFilter, orderBy string, limit, offset int) ([]*models.Reservation, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Reservation{}), filter)

	if orderBy == "" {
		orderBy = "check_in ASC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.Reservation
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of reservations matching the filter.
func (r *ReservationRepositoryImpl) Count(ctx context.Context, filter models.ReservationFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Reservation{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any reservation matching the filter exists.
func (r *ReservationRepositoryImpl) Exists(ctx context.Context, filter models.ReservationFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
