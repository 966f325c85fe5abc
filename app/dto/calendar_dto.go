package dto

// MonthDemandRequest represents a request for a property's monthly pricing calendar
type MonthDemandRequest struct {
	PropertyID string `json:"-" validate:"required,uuid"`
	Year       int    `json:"year" validate:"required,min=2000,max=2200"`
	Month      int    `json:"month" validate:"required,min=1,max=12"`
}

// DayDemand is one calendar day's price and demand classification
type DayDemand struct {
	Date         string   `json:"date"`
	Price        float64  `json:"price"`
	DemandScore  float64  `json:"demand_score"`
	DemandLevel  string   `json:"demand_level"`
	Color        string   `json:"color"`
	MinimumStay  int      `json:"minimum_stay"`
	AppliedRules []string `json:"applied_rules"`
}

// MonthDemandResponse represents the monthly calendar with aggregates
type MonthDemandResponse struct {
	PropertyID   string      `json:"property_id"`
	Year         int         `json:"year"`
	Month        int         `json:"month"`
	Days         []DayDemand `json:"days"`
	AveragePrice float64     `json:"average_price"`
	MinPrice     float64     `json:"min_price"`
	MaxPrice     float64     `json:"max_price"`
	MinimumStay  int         `json:"minimum_stay"`
}
