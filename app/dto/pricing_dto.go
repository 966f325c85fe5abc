package dto

import "github.com/Landcsgirl1999/hostthub-pricing/models"

// ComputePriceRequest represents a request to price one night of one property
type ComputePriceRequest struct {
	PropertyID string `json:"-" validate:"required,uuid"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	GuestCount int    `json:"guest_count" validate:"omitempty,min=1,max=50"`
}

// ComputePriceResponse represents the priced night with its audit trail
type ComputePriceResponse struct {
	PropertyID    string               `json:"property_id"`
	Date          string               `json:"date"`
	BasePrice     float64              `json:"base_price"`
	FinalPrice    float64              `json:"final_price"`
	AppliedRules  []string             `json:"applied_rules"`
	MarketFactors models.MarketFactors `json:"market_factors"`
	Confidence    float64              `json:"confidence"`
	// HistoryWritten is false when the price was computed but the audit
	// record could not be persisted.
	HistoryWritten bool `json:"history_written"`
}
