package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/Landcsgirl1999/hostthub-pricing/utils"
	"gorm.io/gorm"
)

// PriceType represents how a pricing rule's value is applied
type PriceType string

const (
	PriceTypeMultiplier  PriceType = "MULTIPLIER"
	PriceTypePercentage  PriceType = "PERCENTAGE"
	PriceTypeFixedAmount PriceType = "FIXED_AMOUNT"
)

// String returns the string representation of the price type
func (t PriceType) String() string {
	return string(t)
}

// Valid checks if the price type is valid
func (t PriceType) Valid() bool {
	switch t {
	case PriceTypeMultiplier, PriceTypePercentage, PriceTypeFixedAmount:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for PriceType
func (t *PriceType) Scan(value any) error {
	if value == nil {
		*t = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*t = PriceType(v)
	case []byte:
		*t = PriceType(string(v))
	default:
		return fmt.Errorf("cannot scan %T into PriceType", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for PriceType
func (t PriceType) Value() (driver.Value, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid PriceType: %s", t)
	}
	return string(t), nil
}

// PricingRule is an operator-authored price override. Optional gates
// (date range, day of week, exact guest count) exclude the rule when the
// query does not satisfy them. Priority orders the audit trail; all
// matching multiplicative rules compose.
type PricingRule struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	PropertyID uint       `gorm:"not null;index:idx_pricing_rules_property_id" json:"property_id"`
	Name       string     `gorm:"type:varchar(128);not null" json:"name"`
	Priority   int        `gorm:"not null;default:0;index:idx_pricing_rules_priority" json:"priority"`
	PriceType  PriceType  `gorm:"type:varchar(16);not null" json:"price_type"`
	Value      float64    `gorm:"not null" json:"value"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	DayOfWeek  *int       `json:"day_of_week,omitempty"`
	GuestCount *int       `json:"guest_count,omitempty"`
	IsActive   *bool      `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`

	// Relations
	Property *Property `gorm:"foreignKey:PropertyID;references:ID" json:"property,omitempty"`
}

// TableName returns the table name for the model
func (PricingRule) TableName() string {
	return "pricing_rules"
}

// BeforeCreate is called before creating a new record
func (r *PricingRule) BeforeCreate(tx *gorm.DB) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = utils.UTCNow()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (r *PricingRule) BeforeUpdate(tx *gorm.DB) error {
	r.UpdatedAt = utils.UTCNowPtr()
	return nil
}

// AppliesTo reports whether the rule participates for a stay date and
// guest count. A rule whose date range, day-of-week, or guest-count gate
// excludes the query does not participate.
func (r *PricingRule) AppliesTo(date time.Time, guestCount int) bool {
	day := utils.DateOnly(date)
	if r.StartDate != nil && day.Before(utils.DateOnly(*r.StartDate)) {
		return false
	}
	if r.EndDate != nil && day.After(utils.DateOnly(*r.EndDate)) {
		return false
	}
	if r.DayOfWeek != nil && int(day.Weekday()) != *r.DayOfWeek {
		return false
	}
	if r.GuestCount != nil && guestCount != *r.GuestCount {
		return false
	}
	return true
}

// Multiplier converts a multiplicative rule's value into a multiplier.
// FIXED_AMOUNT rules are additive and handled separately.
func (r *PricingRule) Multiplier() float64 {
	switch r.PriceType {
	case PriceTypeMultiplier:
		return r.Value
	case PriceTypePercentage:
		return 1 + r.Value/100
	default:
		return 1
	}
}

// PricingRuleFilter represents filter criteria for pricing rules
type PricingRuleFilter struct {
	ID         *uint      `json:"id,omitempty"`
	PropertyID *uint      `json:"property_id,omitempty"`
	PriceType  *PriceType `json:"price_type,omitempty"`
	IsActive   *bool      `json:"is_active,omitempty"`
}
