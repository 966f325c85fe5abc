package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/Landcsgirl1999/hostthub-pricing/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusCompleted ReservationStatus = "completed"
)

// String returns the string representation of the status
func (s ReservationStatus) String() string {
	return string(s)
}

// Valid checks if the status is valid
func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed,
		ReservationStatusCancelled, ReservationStatusCompleted:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for ReservationStatus
func (s *ReservationStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*s = ReservationStatus(v)
	case []byte:
		*s = ReservationStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into ReservationStatus", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for ReservationStatus
func (s ReservationStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid ReservationStatus: %s", s)
	}
	return string(s), nil
}

// CountsTowardOccupancy reports whether the reservation blocks nights.
func (s ReservationStatus) CountsTowardOccupancy() bool {
	return s == ReservationStatusPending || s == ReservationStatusConfirmed
}

// Reservation represents a booked stay. The pricing engine only reads
// reservations to derive a property's monthly occupancy rate; booking
// workflows live elsewhere.
type Reservation struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	UUID       uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:uk_reservations_uuid" json:"uuid"`
	PropertyID uint              `gorm:"not null;index:idx_reservations_property_id" json:"property_id"`
	CheckIn    time.Time         `gorm:"type:date;not null;index:idx_reservations_check_in" json:"check_in"`
	CheckOut   time.Time         `gorm:"type:date;not null" json:"check_out"`
	GuestCount int               `gorm:"not null;default:1" json:"guest_count"`
	Status     ReservationStatus `gorm:"type:varchar(16);not null;default:'pending'" json:"status"`
	CreatedAt  time.Time         `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt  *time.Time        `json:"updated_at,omitempty"`

	// Relations
	Property *Property `gorm:"foreignKey:PropertyID;references:ID" json:"property,omitempty"`
}

// TableName returns the table name for the model
func (Reservation) TableName() string {
	return "reservations"
}

// BeforeCreate is called before creating a new record
func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.UUID == uuid.Nil {
		r.UUID = uuid.New()
	}
	if r.Status == "" {
		r.Status = ReservationStatusPending
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = utils.UTCNow()
	}
	return nil
}

// NightsWithin returns how many of the reservation's nights fall inside
// [from, to) where both bounds are midnight UTC dates.
func (r *Reservation) NightsWithin(from, to time.Time) int {
	start := utils.DateOnly(r.CheckIn)
	end := utils.DateOnly(r.CheckOut)
	if start.Before(from) {
		start = from
	}
	if end.After(to) {
		end = to
	}
	if !end.After(start) {
		return 0
	}
	return int(end.Sub(start).Hours() / 24)
}

// ReservationFilter represents filter criteria for reservations
type ReservationFilter struct {
	ID            *uint              `json:"id,omitempty"`
	UUID          *uuid.UUID         `json:"uuid,omitempty"`
	PropertyID    *uint              `json:"property_id,omitempty"`
	Status        *ReservationStatus `json:"status,omitempty"`
	CheckInAfter  *time.Time         `json:"check_in_after,omitempty"`
	CheckInBefore *time.Time         `json:"check_in_before,omitempty"`
}
