// Package models contains the GORM models for the pricing engine.
package models

import (
	"time"

	"github.com/Landcsgirl1999/hostthub-pricing/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Property represents a rental property in the database
type Property struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UUID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uk_properties_uuid" json:"uuid"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	Address     string     `gorm:"type:text" json:"address"`
	City        string     `gorm:"type:varchar(128);not null;index:idx_properties_city" json:"city"`
	State       string     `gorm:"type:varchar(64)" json:"state"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	MaxGuests   int        `gorm:"not null;default:2" json:"max_guests"`
	BasePrice   float64    `gorm:"not null" json:"base_price"`
	MinimumStay int        `gorm:"not null;default:1" json:"minimum_stay"`
	IsActive    *bool      `gorm:"default:true;index:idx_properties_is_active" json:"is_active"`
	CreatedAt   time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`

	// Relations
	PricingConfig       *PricingConfig       `gorm:"foreignKey:PropertyID" json:"pricing_config,omitempty"`
	PricingRules        []PricingRule        `gorm:"foreignKey:PropertyID" json:"pricing_rules,omitempty"`
	SeasonalAdjustments []SeasonalAdjustment `gorm:"foreignKey:PropertyID" json:"seasonal_adjustments,omitempty"`
	AmenityMultipliers  []AmenityMultiplier  `gorm:"foreignKey:PropertyID" json:"amenity_multipliers,omitempty"`
}

// TableName returns the table name for the model
func (Property) TableName() string {
	return "properties"
}

// BeforeCreate is called before creating a new record
func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == uuid.Nil {
		p.UUID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = utils.UTCNow()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (p *Property) BeforeUpdate(tx *gorm.DB) error {
	p.UpdatedAt = utils.UTCNowPtr()
	return nil
}

// PropertyFilter represents filter criteria for properties
type PropertyFilter struct {
	ID       *uint      `json:"id,omitempty"`
	UUID     *uuid.UUID `json:"uuid,omitempty"`
	City     *string    `json:"city,omitempty"`
	State    *string    `json:"state,omitempty"`
	IsActive *bool      `json:"is_active,omitempty"`
}
