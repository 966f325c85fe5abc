package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Landcsgirl1999/hostthub-pricing/utils"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// MarketFactors is the typed audit record of the sub-multipliers that fed
// a price computation. It is stored as jsonb with fixed keys so typos are
// caught at compile time rather than at read time.
type MarketFactors struct {
	MarketTrend          *float64 `json:"marketTrend,omitempty"`
	DemandScore          *float64 `json:"demandScore,omitempty"`
	CompetitorAdjustment *float64 `json:"competitorAdjustment,omitempty"`
	OccupancyRate        *float64 `json:"occupancyRate,omitempty"`
	LocationMultiplier   *float64 `json:"locationMultiplier,omitempty"`
	LeadTimeDays         *int     `json:"leadTimeDays,omitempty"`
}

// Value implements the driver.Valuer interface for MarketFactors
func (f MarketFactors) Value() (driver.Value, error) {
	return json.Marshal(f)
}

// Scan implements the sql.Scanner interface for MarketFactors
func (f *MarketFactors) Scan(value any) error {
	if value == nil {
		*f = MarketFactors{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into MarketFactors", value)
	}

	return json.Unmarshal(bytes, f)
}

// DemandScoreOrDefault returns the recorded demand score, or the neutral
// default when no market data backed the computation.
func (f MarketFactors) DemandScoreOrDefault() float64 {
	if f.DemandScore != nil {
		return *f.DemandScore
	}
	return utils.DefaultDemandScore
}

// PricingHistory is the "latest known price" record for a (property, date)
// pair. Recomputation overwrites the row; no append-only trail is kept.
type PricingHistory struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	PropertyID   uint           `gorm:"not null;uniqueIndex:uk_pricing_history_property_date;index:idx_pricing_history_property_id" json:"property_id"`
	Date         time.Time      `gorm:"type:date;not null;uniqueIndex:uk_pricing_history_property_date" json:"date"`
	BasePrice    float64        `gorm:"not null" json:"base_price"`
	FinalPrice   float64        `gorm:"not null" json:"final_price"`
	AppliedRules pq.StringArray `gorm:"type:text[]" json:"applied_rules"`
	Factors      MarketFactors  `gorm:"type:jsonb;not null;column:market_factors" json:"market_factors"`
	Confidence   float64        `gorm:"not null;default:0" json:"confidence"`
	CreatedAt    time.Time      `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt    *time.Time     `json:"updated_at,omitempty"`

	// Relations
	Property *Property `gorm:"foreignKey:PropertyID;references:ID" json:"property,omitempty"`
}

// TableName returns the table name for the model
func (PricingHistory) TableName() string {
	return "pricing_history"
}

// BeforeCreate is called before creating a new record
func (h *PricingHistory) BeforeCreate(tx *gorm.DB) error {
	if h.CreatedAt.IsZero() {
		h.CreatedAt = utils.UTCNow()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (h *PricingHistory) BeforeUpdate(tx *gorm.DB) error {
	h.UpdatedAt = utils.UTCNowPtr()
	return nil
}

// PricingHistoryFilter represents filter criteria for pricing history
type PricingHistoryFilter struct {
	ID         *uint      `json:"id,omitempty"`
	PropertyID *uint      `json:"property_id,omitempty"`
	DateAfter  *time.Time `json:"date_after,omitempty"`
	DateBefore *time.Time `json:"date_before,omitempty"`
}
