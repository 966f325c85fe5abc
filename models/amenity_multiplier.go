package models

import (
	"time"

	"github.com/Landcsgirl1999/hostthub-pricing/utils"
	"gorm.io/gorm"
)

// AmenityMultiplier prices in a property amenity (hot tub, pool, ...).
// An entry applies unconditionally when GuestCountRequired is nil, otherwise
// only when the requested guest count meets the gate. All applicable
// entries compose by multiplication.
type AmenityMultiplier struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	PropertyID         uint       `gorm:"not null;index:idx_amenity_multipliers_property_id" json:"property_id"`
	Amenity            string     `gorm:"type:varchar(128);not null" json:"amenity"`
	Multiplier         float64    `gorm:"not null" json:"multiplier"`
	GuestCountRequired *int       `json:"guest_count_required,omitempty"`
	IsActive           *bool      `gorm:"default:true" json:"is_active"`
	CreatedAt          time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`

	// Relations
	Property *Property `gorm:"foreignKey:PropertyID;references:ID" json:"property,omitempty"`
}

// TableName returns the table name for the model
func (AmenityMultiplier) TableName() string {
	return "amenity_multipliers"
}

// BeforeCreate is called before creating a new record
func (a *AmenityMultiplier) BeforeCreate(tx *gorm.DB) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = utils.UTCNow()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (a *AmenityMultiplier) BeforeUpdate(tx *gorm.DB) error {
	a.UpdatedAt = utils.UTCNowPtr()
	return nil
}

// AppliesTo reports whether the entry participates for the guest count.
func (a *AmenityMultiplier) AppliesTo(guestCount int) bool {
	if a.GuestCountRequired == nil {
		return true
	}
	return guestCount >= *a.GuestCountRequired
}

// AmenityMultiplierFilter represents filter criteria for amenity multipliers
type AmenityMultiplierFilter struct {
	ID         *uint `json:"id,omitempty"`
	PropertyID *uint `json:"property_id,omitempty"`
	IsActive   *bool `json:"is_active,omitempty"`
}
