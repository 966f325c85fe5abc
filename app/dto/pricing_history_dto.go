package dto

import "github.com/Landcsgirl1999/hostthub-pricing/models"

// ListPricingHistoryRequest represents a request for a property's computed prices
type ListPricingHistoryRequest struct {
	PropertyID string `json:"-" validate:"required,uuid"`
	Year       int    `json:"year" validate:"required,min=2000,max=2200"`
	Month      int    `json:"month" validate:"required,min=1,max=12"`
}

// PricingHistoryItem is one stored (property, date) price record
type PricingHistoryItem struct {
	Date          string               `json:"date"`
	BasePrice     float64              `json:"base_price"`
	FinalPrice    float64              `json:"final_price"`
	AppliedRules  []string             `json:"applied_rules"`
	MarketFactors models.MarketFactors `json:"market_factors"`
	Confidence    float64              `json:"confidence"`
}

// ListPricingHistoryResponse represents a month of stored price records
type ListPricingHistoryResponse struct {
	PropertyID string               `json:"property_id"`
	Year       int                  `json:"year"`
	Month      int                  `json:"month"`
	Items      []PricingHistoryItem `json:"items"`
	Total      int                  `json:"total"`
}

// ExportPricingHistoryRequest represents a request for an XLSX export of stored prices
type ExportPricingHistoryRequest struct {
	PropertyID string `json:"-" validate:"required,uuid"`
	Year       int    `json:"year" validate:"required,min=2000,max=2200"`
	Month      int    `json:"month" validate:"required,min=1,max=12"`
}

// ExportPricingHistoryResponse carries the generated spreadsheet
type ExportPricingHistoryResponse struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}
