package models

import "time"

// LocationFactors are the derived neighborhood scores for a property,
// each on a 0-100 scale. They are consumed transiently per computation
// and are not stored authoritatively here.
type LocationFactors struct {
	City                      string  `json:"city"`
	State                     string  `json:"state"`
	Latitude                  float64 `json:"latitude"`
	Longitude                 float64 `json:"longitude"`
	ProximityToAttractions    float64 `json:"proximity_to_attractions"`
	ProximityToTransportation float64 `json:"proximity_to_transportation"`
	SafetyScore               float64 `json:"safety_score"`
	WalkabilityScore          float64 `json:"walkability_score"`
}

// NeutralLocationFactors returns mid-scale scores that leave the locale
// multiplier at exactly 1.0. Callers substitute it when the scores
// provider is unavailable so a lookup failure never moves the price.
func NeutralLocationFactors(city, state string) LocationFactors {
	return LocationFactors{
		City:                      city,
		State:                     state,
		ProximityToAttractions:    50,
		ProximityToTransportation: 50,
		SafetyScore:               50,
		WalkabilityScore:          50,
	}
}

// EventImpact classifies how strongly a local event moves prices
type EventImpact string

const (
	EventImpactHigh   EventImpact = "high"
	EventImpactMedium EventImpact = "medium"
	EventImpactLow    EventImpact = "low"
)

// Valid checks if the impact level is valid
func (i EventImpact) Valid() bool {
	switch i {
	case EventImpactHigh, EventImpactMedium, EventImpactLow:
		return true
	default:
		return false
	}
}

// HolidayEvent is a local event or holiday near a property. It affects
// pricing when the stay date falls within 3 days of the event date.
type HolidayEvent struct {
	Name       string      `json:"name"`
	Date       time.Time   `json:"date"`
	Type       string      `json:"type"`
	Impact     EventImpact `json:"impact"`
	Multiplier float64     `json:"multiplier"`
}

// WeatherObservation is the forecast signal consumed by the location
// engine. Found reports whether the provider had data for the date.
type WeatherObservation struct {
	TemperatureF float64 `json:"temperature_f"`
	Condition    string  `json:"condition"`
	Found        bool    `json:"found"`
}

// CitySeasonBand is one named season band of a city's seasonal pattern.
// Month ranges may wrap over year end.
type CitySeasonBand struct {
	Name       string     `json:"name"`
	StartMonth time.Month `json:"start_month"`
	EndMonth   time.Month `json:"end_month"`
	Multiplier float64    `json:"multiplier"`
}
