// Package tests contains test cases for models and repository packages to avoid circular imports
package tests

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Landcsgirl1999/hostthub-pricing/models"
	"github.com/Landcsgirl1999/hostthub-pricing/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceType(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.True(t, models.PriceTypeMultiplier.Valid())
		assert.True(t, models.PriceTypePercentage.Valid())
		assert.True(t, models.PriceTypeFixedAmount.Valid())
		assert.False(t, models.PriceType("DISCOUNT").Valid())
		assert.False(t, models.PriceType("").Valid())
	})

	t.Run("ScanAndValue", func(t *testing.T) {
		var priceType models.PriceType
		require.NoError(t, priceType.Scan("MULTIPLIER"))
		assert.Equal(t, models.PriceTypeMultiplier, priceType)

		require.NoError(t, priceType.Scan([]byte("FIXED_AMOUNT")))
		assert.Equal(t, models.PriceTypeFixedAmount, priceType)

		value, err := models.PriceTypePercentage.Value()
		require.NoError(t, err)
		assert.Equal(t, "PERCENTAGE", value)

		_, err = models.PriceType("bogus").Value()
		assert.Error(t, err)
	})
}

func TestPricingRule(t *testing.T) {
	saturday := time.Date(2026, time.March, 21, 0, 0, 0, 0, time.UTC)

	t.Run("UngatedRuleAlwaysApplies", func(t *testing.T) {
		rule := &models.PricingRule{Name: "Base surge", PriceType: models.PriceTypeMultiplier, Value: 1.2}
		assert.True(t, rule.AppliesTo(saturday, 2))
	})

	t.Run("DateRangeGate", func(t *testing.T) {
		rule := &models.PricingRule{
			StartDate: utils.ToPtr(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)),
			EndDate:   utils.ToPtr(time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)),
		}
		assert.True(t, rule.AppliesTo(saturday, 2))
		assert.True(t, rule.AppliesTo(time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC), 2))
		assert.False(t, rule.AppliesTo(time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), 2))
		assert.False(t, rule.AppliesTo(time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC), 2))
	})

	t.Run("DayOfWeekGate", func(t *testing.T) {
		rule := &models.PricingRule{DayOfWeek: utils.ToPtr(int(time.Saturday))}
		assert.True(t, rule.AppliesTo(saturday, 2))
		assert.False(t, rule.AppliesTo(saturday.AddDate(0, 0, 1), 2))
	})

	t.Run("GuestCountGate", func(t *testing.T) {
		rule := &models.PricingRule{GuestCount: utils.ToPtr(4)}
		assert.True(t, rule.AppliesTo(saturday, 4))
		assert.False(t, rule.AppliesTo(saturday, 3))
		assert.False(t, rule.AppliesTo(saturday, 5))
	})

	t.Run("Multiplier", func(t *testing.T) {
		multiplier := &models.PricingRule{PriceType: models.PriceTypeMultiplier, Value: 1.3}
		assert.Equal(t, 1.3, multiplier.Multiplier())

		percentage := &models.PricingRule{PriceType: models.PriceTypePercentage, Value: 25}
		assert.Equal(t, 1.25, percentage.Multiplier())

		discount := &models.PricingRule{PriceType: models.PriceTypePercentage, Value: -20}
		assert.InDelta(t, 0.8, discount.Multiplier(), 1e-9)

		fixed := &models.PricingRule{PriceType: models.PriceTypeFixedAmount, Value: 50}
		assert.Equal(t, 1.0, fixed.Multiplier())
	})

	t.Run("TableName", func(t *testing.T) {
		assert.Equal(t, "pricing_rules", models.PricingRule{}.TableName())
	})
}

func TestSeasonalAdjustment(t *testing.T) {
	t.Run("ContainsMonth", func(t *testing.T) {
		summer := &models.SeasonalAdjustment{StartMonth: 6, EndMonth: 8}
		assert.True(t, summer.ContainsMonth(time.June))
		assert.True(t, summer.ContainsMonth(time.July))
		assert.True(t, summer.ContainsMonth(time.August))
		assert.False(t, summer.ContainsMonth(time.May))
		assert.False(t, summer.ContainsMonth(time.September))
	})

	t.Run("ContainsMonthWrapsYearEnd", func(t *testing.T) {
		winter := &models.SeasonalAdjustment{StartMonth: 11, EndMonth: 2}
		assert.True(t, winter.ContainsMonth(time.November))
		assert.True(t, winter.ContainsMonth(time.December))
		assert.True(t, winter.ContainsMonth(time.January))
		assert.True(t, winter.ContainsMonth(time.February))
		assert.False(t, winter.ContainsMonth(time.March))
		assert.False(t, winter.ContainsMonth(time.October))
	})
}

func TestAmenityMultiplier(t *testing.T) {
	t.Run("UngatedAppliesToAnyCount", func(t *testing.T) {
		amenity := &models.AmenityMultiplier{Amenity: "Pool", Multiplier: 1.1}
		assert.True(t, amenity.AppliesTo(1))
		assert.True(t, amenity.AppliesTo(10))
	})

	t.Run("GuestCountGateIsMinimum", func(t *testing.T) {
		amenity := &models.AmenityMultiplier{Amenity: "Hot tub", Multiplier: 1.15, GuestCountRequired: utils.ToPtr(4)}
		assert.False(t, amenity.AppliesTo(3))
		assert.True(t, amenity.AppliesTo(4))
		assert.True(t, amenity.AppliesTo(6))
	})
}

func TestPricingConfig(t *testing.T) {
	valid := func() *models.PricingConfig {
		return &models.PricingConfig{
			BaseMultiplier:           1.0,
			MinPrice:                 50,
			MaxPrice:                 500,
			WeekdayMultiplier:        1.0,
			WeekendMultiplier:        1.2,
			PeakSeasonMultiplier:     1.3,
			OffSeasonMultiplier:      0.8,
			ShoulderSeasonMultiplier: 1.0,
			HighOccupancyMultiplier:  1.2,
			LowOccupancyMultiplier:   0.9,
			LastMinuteDiscount:       0.85,
			EarlyBirdMultiplier:      1.05,
		}
	}

	t.Run("Valid", func(t *testing.T) {
		assert.True(t, valid().Valid())
	})

	t.Run("MinAboveMaxInvalid", func(t *testing.T) {
		config := valid()
		config.MinPrice = 600
		assert.False(t, config.Valid())
	})

	t.Run("NonPositiveMultiplierInvalid", func(t *testing.T) {
		config := valid()
		config.WeekendMultiplier = 0
		assert.False(t, config.Valid())

		config = valid()
		config.LastMinuteDiscount = -0.5
		assert.False(t, config.Valid())
	})

	t.Run("SeasonalMultiplierFor", func(t *testing.T) {
		config := valid()

		multiplier, label := config.SeasonalMultiplierFor(time.July)
		assert.Equal(t, 1.3, multiplier)
		assert.Equal(t, "Peak season", label)

		multiplier, label = config.SeasonalMultiplierFor(time.January)
		assert.Equal(t, 0.8, multiplier)
		assert.Equal(t, "Off season", label)

		multiplier, label = config.SeasonalMultiplierFor(time.December)
		assert.Equal(t, 0.8, multiplier)
		assert.Equal(t, "Off season", label)

		multiplier, label = config.SeasonalMultiplierFor(time.April)
		assert.Equal(t, 1.0, multiplier)
		assert.Equal(t, "Shoulder season", label)
	})
}

func TestReservation(t *testing.T) {
	t.Run("StatusValid", func(t *testing.T) {
		assert.True(t, models.ReservationStatusPending.Valid())
		assert.True(t, models.ReservationStatusConfirmed.Valid())
		assert.True(t, models.ReservationStatusCancelled.Valid())
		assert.True(t, models.ReservationStatusCompleted.Valid())
		assert.False(t, models.ReservationStatus("held").Valid())
	})

	t.Run("CountsTowardOccupancy", func(t *testing.T) {
		assert.True(t, models.ReservationStatusPending.CountsTowardOccupancy())
		assert.True(t, models.ReservationStatusConfirmed.CountsTowardOccupancy())
		assert.False(t, models.ReservationStatusCancelled.CountsTowardOccupancy())
		assert.False(t, models.ReservationStatusCompleted.CountsTowardOccupancy())
	})

	t.Run("NightsWithinClipsToMonth", func(t *testing.T) {
		monthStart := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
		monthEnd := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)

		inside := &models.Reservation{
			CheckIn:  time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
			CheckOut: time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC),
		}
		assert.Equal(t, 4, inside.NightsWithin(monthStart, monthEnd))

		straddlesStart := &models.Reservation{
			CheckIn:  time.Date(2026, time.February, 27, 0, 0, 0, 0, time.UTC),
			CheckOut: time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC),
		}
		assert.Equal(t, 2, straddlesStart.NightsWithin(monthStart, monthEnd))

		straddlesEnd := &models.Reservation{
			CheckIn:  time.Date(2026, time.March, 30, 0, 0, 0, 0, time.UTC),
			CheckOut: time.Date(2026, time.April, 5, 0, 0, 0, 0, time.UTC),
		}
		assert.Equal(t, 2, straddlesEnd.NightsWithin(monthStart, monthEnd))

		outside := &models.Reservation{
			CheckIn:  time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC),
			CheckOut: time.Date(2026, time.May, 5, 0, 0, 0, 0, time.UTC),
		}
		assert.Equal(t, 0, outside.NightsWithin(monthStart, monthEnd))
	})
}

func TestMarketFactors(t *testing.T) {
	t.Run("RoundTripsThroughJSON", func(t *testing.T) {
		factors := models.MarketFactors{
			MarketTrend:        utils.ToPtr(0.2),
			DemandScore:        utils.ToPtr(75.0),
			LocationMultiplier: utils.ToPtr(1.15),
			LeadTimeDays:       utils.ToPtr(12),
		}

		value, err := factors.Value()
		require.NoError(t, err)

		var decoded models.MarketFactors
		require.NoError(t, decoded.Scan(value))
		assert.Equal(t, factors, decoded)
	})

	t.Run("OmitsUnsetFactors", func(t *testing.T) {
		value, err := models.MarketFactors{LeadTimeDays: utils.ToPtr(5)}.Value()
		require.NoError(t, err)

		var raw map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(value.([]byte), &raw))
		assert.Len(t, raw, 1)
		assert.Contains(t, raw, "leadTimeDays")
	})

	t.Run("ScanNilResets", func(t *testing.T) {
		factors := models.MarketFactors{DemandScore: utils.ToPtr(80.0)}
		require.NoError(t, factors.Scan(nil))
		assert.Nil(t, factors.DemandScore)
	})

	t.Run("DemandScoreOrDefault", func(t *testing.T) {
		assert.Equal(t, 50.0, models.MarketFactors{}.DemandScoreOrDefault())
		assert.Equal(t, 80.0, models.MarketFactors{DemandScore: utils.ToPtr(80.0)}.DemandScoreOrDefault())
	})
}

func TestEventImpact(t *testing.T) {
	assert.True(t, models.EventImpactHigh.Valid())
	assert.True(t, models.EventImpactMedium.Valid())
	assert.True(t, models.EventImpactLow.Valid())
	assert.False(t, models.EventImpact("extreme").Valid())
}
