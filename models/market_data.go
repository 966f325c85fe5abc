package models

import (
	"time"

	"github.com/Landcsgirl1999/hostthub-pricing/utils"
	"gorm.io/gorm"
)

// MarketDataSnapshot is a dated observation of a property's market:
// price trend (signed ratio), demand score (0-100), competitor count and
// market average price. Written by out-of-process collection jobs and
// read by the pricing pipeline, which picks the most recent snapshot
// within a +/-7 day window of the stay date.
type MarketDataSnapshot struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	PropertyID      uint       `gorm:"not null;uniqueIndex:uk_market_data_property_date_location;index:idx_market_data_property_id" json:"property_id"`
	Date            time.Time  `gorm:"type:date;not null;uniqueIndex:uk_market_data_property_date_location" json:"date"`
	Location        string     `gorm:"type:varchar(128);not null;default:'';uniqueIndex:uk_market_data_property_date_location" json:"location"`
	PriceTrend      float64    `gorm:"not null;default:0" json:"price_trend"`
	DemandScore     float64    `gorm:"not null;default:0" json:"demand_score"`
	CompetitorCount int        `gorm:"not null;default:0" json:"competitor_count"`
	AveragePrice    float64    `gorm:"not null;default:0" json:"average_price"`
	CreatedAt       time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`

	// Relations
	Property *Property `gorm:"foreignKey:PropertyID;references:ID" json:"property,omitempty"`
}

// TableName returns the table name for the model
func (MarketDataSnapshot) TableName() string {
	return "market_data_snapshots"
}

// BeforeCreate is called before creating a new record
func (s *MarketDataSnapshot) BeforeCreate(tx *gorm.DB) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = utils.UTCNow()
	}
	return nil
}

// MarketDataFilter represents filter criteria for market data snapshots
type MarketDataFilter struct {
	ID         *uint      `json:"id,omitempty"`
	PropertyID *uint      `json:"property_id,omitempty"`
	Location   *string    `json:"location,omitempty"`
	DateAfter  *time.Time `json:"date_after,omitempty"`
	DateBefore *time.Time `json:"date_before,omitempty"`
}

// CompetitorPriceSnapshot is a dated price observation for a named
// competitor of a property. The pipeline averages all snapshots within a
// +/-3 day window of the stay date.
type CompetitorPriceSnapshot struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	PropertyID     uint       `gorm:"not null;uniqueIndex:uk_competitor_prices_property_name_date;index:idx_competitor_prices_property_id" json:"property_id"`
	CompetitorName string     `gorm:"type:varchar(255);not null;uniqueIndex:uk_competitor_prices_property_name_date" json:"competitor_name"`
	Date           time.Time  `gorm:"type:date;not null;uniqueIndex:uk_competitor_prices_property_name_date" json:"date"`
	Price          float64    `gorm:"not null" json:"price"`
	CreatedAt      time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`

	// Relations
	Property *Property `gorm:"foreignKey:PropertyID;references:ID" json:"property,omitempty"`
}

// TableName returns the table name for the model
func (CompetitorPriceSnapshot) TableName() string {
	return "competitor_price_snapshots"
}

// BeforeCreate is called before creating a new record
func (s *CompetitorPriceSnapshot) BeforeCreate(tx *gorm.DB) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = utils.UTCNow()
	}
	return nil
}

// CompetitorPriceFilter represents filter criteria for competitor prices
type CompetitorPriceFilter struct {
	ID             *uint      `json:"id,omitempty"`
	PropertyID     *uint      `json:"property_id,omitempty"`
	CompetitorName *string    `json:"competitor_name,omitempty"`
	DateAfter      *time.Time `json:"date_after,omitempty"`
	DateBefore     *time.Time `json:"date_before,omitempty"`
}
