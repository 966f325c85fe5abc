package models

import (
	"time"

	"github.com/Landcsgirl1999/hostthub-pricing/utils"
	"gorm.io/gorm"
)

// SeasonalAdjustment is an operator-authored override for a month range.
// The range may wrap over year end (e.g. Dec-Feb). When a stay date falls
// inside an active adjustment, its multiplier replaces the config's default
// season bands.
type SeasonalAdjustment struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	PropertyID uint       `gorm:"not null;index:idx_seasonal_adjustments_property_id" json:"property_id"`
	Name       string     `gorm:"type:varchar(128)" json:"name"`
	StartMonth int        `gorm:"not null" json:"start_month"`
	EndMonth   int        `gorm:"not null" json:"end_month"`
	Multiplier float64    `gorm:"not null" json:"multiplier"`
	IsActive   *bool      `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`

	// Relations
	Property *Property `gorm:"foreignKey:PropertyID;references:ID" json:"property,omitempty"`
}

// TableName returns the table name for the model
func (SeasonalAdjustment) TableName() string {
	return "seasonal_adjustments"
}

// BeforeCreate is called before creating a new record
func (a *SeasonalAdjustment) BeforeCreate(tx *gorm.DB) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = utils.UTCNow()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (a *SeasonalAdjustment) BeforeUpdate(tx *gorm.DB) error {
	a.UpdatedAt = utils.UTCNowPtr()
	return nil
}

// ContainsMonth reports whether the adjustment covers the given month,
// wrap-safe: startMonth=11, endMonth=2 matches Nov, Dec, Jan and Feb.
func (a *SeasonalAdjustment) ContainsMonth(m time.Month) bool {
	return utils.MonthInRange(m, time.Month(a.StartMonth), time.Month(a.EndMonth))
}

// SeasonalAdjustmentFilter represents filter criteria for seasonal adjustments
type SeasonalAdjustmentFilter struct {
	ID         *uint `json:"id,omitempty"`
	PropertyID *uint `json:"property_id,omitempty"`
	IsActive   *bool `json:"is_active,omitempty"`
}
