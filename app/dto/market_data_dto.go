package dto

// RecordMarketDataRequest represents a market snapshot write from a collection job
type RecordMarketDataRequest struct {
	PropertyID      string  `json:"-" validate:"required,uuid"`
	Date            string  `json:"date" validate:"required,datetime=2006-01-02"`
	Location        string  `json:"location" validate:"omitempty,max=128"`
	PriceTrend      float64 `json:"price_trend" validate:"gte=-1,lte=1"`
	DemandScore     float64 `json:"demand_score" validate:"gte=0,lte=100"`
	CompetitorCount int     `json:"competitor_count" validate:"gte=0"`
	AveragePrice    float64 `json:"average_price" validate:"gte=0"`
}

// RecordMarketDataResponse confirms a market snapshot write
type RecordMarketDataResponse struct {
	Message string `json:"message"`
	Date    string `json:"date"`
}

// CompetitorPriceEntry is one competitor price observation
type CompetitorPriceEntry struct {
	CompetitorName string  `json:"competitor_name" validate:"required,max=255"`
	Date           string  `json:"date" validate:"required,datetime=2006-01-02"`
	Price          float64 `json:"price" validate:"gte=0"`
}

// RecordCompetitorPricesRequest represents a batch of competitor price observations
type RecordCompetitorPricesRequest struct {
	PropertyID string                 `json:"-" validate:"required,uuid"`
	Prices     []CompetitorPriceEntry `json:"prices" validate:"required,min=1,max=500,dive"`
}

// RecordCompetitorPricesResponse confirms a competitor price batch write
type RecordCompetitorPricesResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}
