package businessflow

import (
	"math"
	"strings"
	"time"

	"github.com/Landcsgirl1999/hostthub-pricing/models"
	"github.com/Landcsgirl1999/hostthub-pricing/utils"
)

// LocationEngine folds a property's geography into a single multiplier:
// locale desirability, nearby events, the city's seasonal pattern and
// weather. It is pure computation; the pipeline fetches the signals and
// hands them in, so the engine stays trivially deterministic.
type LocationEngine struct {
	citySeasons map[string][]models.CitySeasonBand
}

// LocationBreakdown carries the composite multiplier and its sub-factors
// for the audit trail.
type LocationBreakdown struct {
	Composite      float64
	Locale         float64
	Events         float64
	CitySeasonal   float64
	Weather        float64
	AppliedEvents  []string
	SeasonBandName string
}

// NewLocationEngine creates a location engine with the built-in city
// season table.
func NewLocationEngine() *LocationEngine {
	return &LocationEngine{citySeasons: defaultCitySeasons}
}

// Composite derives the location multiplier for a property and date from
// pre-fetched signals. No clamping happens here; bounds are applied
// globally after the full fold.
func (e *LocationEngine) Composite(
	property *models.Property,
	date time.Time,
	factors models.LocationFactors,
	events []models.HolidayEvent,
	weather models.WeatherObservation,
) LocationBreakdown {
	breakdown := LocationBreakdown{
		Locale:  localeMultiplier(factors),
		Weather: weatherMultiplier(weather),
	}
	breakdown.Events, breakdown.AppliedEvents = eventMultiplier(events, date)
	breakdown.CitySeasonal, breakdown.SeasonBandName = e.citySeasonalMultiplier(property.City, date.Month())

	breakdown.Composite = breakdown.Locale * breakdown.Events * breakdown.CitySeasonal * breakdown.Weather
	return breakdown
}

// localeMultiplier is a monotonic step function of the four 0-100
// neighborhood scores. Steps compose multiplicatively.
func localeMultiplier(f models.LocationFactors) float64 {
	multiplier := 1.0

	switch {
	case f.ProximityToAttractions >= 80:
		multiplier *= 1.3
	case f.ProximityToAttractions >= 60:
		multiplier *= 1.15
	case f.ProximityToAttractions <= 20:
		multiplier *= 0.9
	}

	switch {
	case f.ProximityToTransportation >= 80:
		multiplier *= 1.2
	case f.ProximityToTransportation >= 60:
		multiplier *= 1.1
	case f.ProximityToTransportation <= 30:
		multiplier *= 0.9
	}

	switch {
	case f.SafetyScore >= 80:
		multiplier *= 1.15
	case f.SafetyScore >= 60:
		multiplier *= 1.05
	case f.SafetyScore <= 40:
		multiplier *= 0.85
	}

	switch {
	case f.WalkabilityScore >= 80:
		multiplier *= 1.1
	case f.WalkabilityScore >= 60:
		multiplier *= 1.05
	case f.WalkabilityScore <= 30:
		multiplier *= 0.95
	}

	return multiplier
}

// eventMultiplier folds every event within 3 days (inclusive) of the
// stay date. High impact applies the raw multiplier, medium the average
// with 1.0, low a dampened blend.
func eventMultiplier(events []models.HolidayEvent, date time.Time) (float64, []string) {
	multiplier := 1.0
	var applied []string

	day := utils.DateOnly(date)
	for _, event := range events {
		distance := math.Abs(utils.DateOnly(event.Date).Sub(day).Hours() / 24)
		if distance > utils.EventImpactWindowDays {
			continue
		}

		var contribution float64
		switch event.Impact {
		case models.EventImpactHigh:
			contribution = event.Multiplier
		case models.EventImpactMedium:
			contribution = (event.Multiplier + 1.0) / 2
		default:
			contribution = 1 + (event.Multiplier-1)*0.3
		}
		multiplier *= contribution
		applied = append(applied, event.Name)
	}
	return multiplier, applied
}

// citySeasonalMultiplier looks up the city's season band for the month,
// falling back to the generic pattern for unknown cities.
func (e *LocationEngine) citySeasonalMultiplier(city string, month time.Month) (float64, string) {
	bands, ok := e.citySeasons[strings.ToLower(city)]
	if !ok {
		bands = genericSeasonBands
	}
	for _, band := range bands {
		if utils.MonthInRange(month, band.StartMonth, band.EndMonth) {
			return band.Multiplier, band.Name
		}
	}
	return 1.0, "unclassified"
}

// weatherMultiplier prices in comfortable weather: 70-85F boosts, extreme
// cold or heat discounts, anything else (or no data) is neutral.
func weatherMultiplier(w models.WeatherObservation) float64 {
	if !w.Found {
		return 1.0
	}
	switch {
	case w.TemperatureF >= 70 && w.TemperatureF <= 85:
		return 1.1
	case w.TemperatureF < 40 || w.TemperatureF > 95:
		return 0.9
	default:
		return 1.0
	}
}

// genericSeasonBands is the fallback seasonal pattern for cities absent
// from the table: peak Jun-Aug, shoulder Mar-May, off Sep-Feb.
var genericSeasonBands = []models.CitySeasonBand{
	{Name: "peak", StartMonth: time.June, EndMonth: time.August, Multiplier: 1.2},
	{Name: "shoulder", StartMonth: time.March, EndMonth: time.May, Multiplier: 1.0},
	{Name: "off", StartMonth: time.September, EndMonth: time.February, Multiplier: 0.8},
}

// defaultCitySeasons captures markets whose demand pattern inverts or
// shifts the generic bands.
var defaultCitySeasons = map[string][]models.CitySeasonBand{
	"miami": {
		{Name: "peak", StartMonth: time.December, EndMonth: time.April, Multiplier: 1.35},
		{Name: "shoulder", StartMonth: time.May, EndMonth: time.June, Multiplier: 1.0},
		{Name: "off", StartMonth: time.July, EndMonth: time.November, Multiplier: 0.85},
	},
	"orlando": {
		{Name: "peak", StartMonth: time.June, EndMonth: time.August, Multiplier: 1.3},
		{Name: "shoulder", StartMonth: time.March, EndMonth: time.May, Multiplier: 1.1},
		{Name: "off", StartMonth: time.September, EndMonth: time.February, Multiplier: 0.9},
	},
	"denver": {
		{Name: "peak", StartMonth: time.December, EndMonth: time.March, Multiplier: 1.3},
		{Name: "shoulder", StartMonth: time.June, EndMonth: time.September, Multiplier: 1.15},
		{Name: "off", StartMonth: time.April, EndMonth: time.May, Multiplier: 0.85},
	},
	"new york": {
		{Name: "peak", StartMonth: time.September, EndMonth: time.December, Multiplier: 1.25},
		{Name: "shoulder", StartMonth: time.April, EndMonth: time.August, Multiplier: 1.1},
		{Name: "off", StartMonth: time.January, EndMonth: time.March, Multiplier: 0.85},
	},
}
