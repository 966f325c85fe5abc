package models

import (
	"time"

	"github.com/Landcsgirl1999/hostthub-pricing/utils"
	"gorm.io/gorm"
)

// PricingConfig holds the per-property knobs for the dynamic pricing engine.
// Exactly one active config exists per property; it is created at onboarding
// and mutated by the operator.
type PricingConfig struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	PropertyID uint `gorm:"not null;uniqueIndex:uk_pricing_configs_property_id" json:"property_id"`

	BaseMultiplier float64 `gorm:"not null;default:1.0" json:"base_multiplier"`
	MinPrice       float64 `gorm:"not null" json:"min_price"`
	MaxPrice       float64 `gorm:"not null" json:"max_price"`

	WeekdayMultiplier float64 `gorm:"not null;default:1.0" json:"weekday_multiplier"`
	WeekendMultiplier float64 `gorm:"not null;default:1.0" json:"weekend_multiplier"`

	PeakSeasonMultiplier     float64 `gorm:"not null;default:1.0" json:"peak_season_multiplier"`
	OffSeasonMultiplier      float64 `gorm:"not null;default:1.0" json:"off_season_multiplier"`
	ShoulderSeasonMultiplier float64 `gorm:"not null;default:1.0" json:"shoulder_season_multiplier"`

	OccupancyThreshold      float64 `gorm:"not null;default:80" json:"occupancy_threshold"`
	HighOccupancyMultiplier float64 `gorm:"not null;default:1.0" json:"high_occupancy_multiplier"`
	LowOccupancyMultiplier  float64 `gorm:"not null;default:1.0" json:"low_occupancy_multiplier"`

	LastMinuteDiscount  float64 `gorm:"not null;default:1.0" json:"last_minute_discount"`
	EarlyBirdMultiplier float64 `gorm:"not null;default:1.0" json:"early_bird_multiplier"`

	MarketTrendAnalysis *bool `gorm:"default:false" json:"market_trend_analysis"`
	CompetitorTracking  *bool `gorm:"default:false" json:"competitor_tracking"`

	CreatedAt time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	// Relations
	Property *Property `gorm:"foreignKey:PropertyID;references:ID" json:"property,omitempty"`
}

// TableName returns the table name for the model
func (PricingConfig) TableName() string {
	return "pricing_configs"
}

// BeforeCreate is called before creating a new record
func (c *PricingConfig) BeforeCreate(tx *gorm.DB) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = utils.UTCNow()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (c *PricingConfig) BeforeUpdate(tx *gorm.DB) error {
	c.UpdatedAt = utils.UTCNowPtr()
	return nil
}

// Valid checks the config invariants: min <= max and all multipliers positive.
func (c *PricingConfig) Valid() bool {
	if c.MinPrice > c.MaxPrice {
		return false
	}
	for _, m := range []float64{
		c.BaseMultiplier,
		c.WeekdayMultiplier, c.WeekendMultiplier,
		c.PeakSeasonMultiplier, c.OffSeasonMultiplier, c.ShoulderSeasonMultiplier,
		c.HighOccupancyMultiplier, c.LowOccupancyMultiplier,
		c.LastMinuteDiscount, c.EarlyBirdMultiplier,
	} {
		if m <= 0 {
			return false
		}
	}
	return true
}

// SeasonalMultiplierFor returns the default season-band multiplier for a
// month: Jun-Aug peak, Dec-Feb off, everything else shoulder.
func (c *PricingConfig) SeasonalMultiplierFor(m time.Month) (float64, string) {
	switch {
	case m >= time.June && m <= time.August:
		return c.PeakSeasonMultiplier, "Peak season"
	case m == time.December || m <= time.February:
		return c.OffSeasonMultiplier, "Off season"
	default:
		return c.ShoulderSeasonMultiplier, "Shoulder season"
	}
}

// PricingConfigFilter represents filter criteria for pricing configs
type PricingConfigFilter struct {
	ID         *uint `json:"id,omitempty"`
	PropertyID *uint `json:"property_id,omitempty"`
}
