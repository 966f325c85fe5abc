package testing

import (
	"fmt"
	"time"

	"github.com/Landcsgirl1999/hostthub-pricing/models"
	"github.com/Landcsgirl1999/hostthub-pricing/utils"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	db *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{db: db}
}

// CreateTestProperty creates an active property with a pricing config
func (tf *TestFixtures) CreateTestProperty(basePrice float64) (*models.Property, error) {
	property := &models.Property{
		Name:        "Test Cottage",
		Address:     "12 Shoreline Dr",
		City:        "Testville",
		State:       "VT",
		Latitude:    utils.ToPtr(44.46),
		Longitude:   utils.ToPtr(-72.68),
		MaxGuests:   6,
		BasePrice:   basePrice,
		MinimumStay: 2,
		IsActive:    utils.ToPtr(true),
	}
	if err := tf.db.DB.Create(property).Error; err != nil {
		return nil, fmt.Errorf("failed to create test property: %w", err)
	}

	config := &models.PricingConfig{
		PropertyID:               property.ID,
		BaseMultiplier:           1.0,
		MinPrice:                 1,
		MaxPrice:                 100000,
		WeekdayMultiplier:        1.0,
		WeekendMultiplier:        1.2,
		PeakSeasonMultiplier:     1.0,
		OffSeasonMultiplier:      1.0,
		ShoulderSeasonMultiplier: 1.0,
		OccupancyThreshold:       80,
		HighOccupancyMultiplier:  1.0,
		LowOccupancyMultiplier:   1.0,
		LastMinuteDiscount:       1.0,
		EarlyBirdMultiplier:      1.0,
		MarketTrendAnalysis:      utils.ToPtr(false),
		CompetitorTracking:       utils.ToPtr(false),
	}
	if err := tf.db.DB.Create(config).Error; err != nil {
		return nil, fmt.Errorf("failed to create test pricing config: %w", err)
	}
	property.PricingConfig = config

	return property, nil
}

// CreateTestRule creates an active pricing rule for a property
func (tf *TestFixtures) CreateTestRule(propertyID uint, name string, priceType models.PriceType, value float64) (*models.PricingRule, error) {
	rule := &models.PricingRule{
		PropertyID: propertyID,
		Name:       name,
		PriceType:  priceType,
		Value:      value,
		IsActive:   utils.ToPtr(true),
	}
	if err := tf.db.DB.Create(rule).Error; err != nil {
		return nil, fmt.Errorf("failed to create test pricing rule: %w", err)
	}
	return rule, nil
}

// CreateTestMarketSnapshot creates a market data snapshot for a property
func (tf *TestFixtures) CreateTestMarketSnapshot(propertyID uint, date time.Time, trend, demand float64) (*models.MarketDataSnapshot, error) {
	snapshot := &models.MarketDataSnapshot{
		PropertyID:      propertyID,
		Date:            utils.DateOnly(date),
		PriceTrend:      trend,
		DemandScore:     demand,
		CompetitorCount: 3,
		AveragePrice:    210,
	}
	if err := tf.db.DB.Create(snapshot).Error; err != nil {
		return nil, fmt.Errorf("failed to create test market snapshot: %w", err)
	}
	return snapshot, nil
}

// CreateTestReservation creates a reservation covering [checkIn, checkOut)
func (tf *TestFixtures) CreateTestReservation(propertyID uint, checkIn, checkOut time.Time, status models.ReservationStatus) (*models.Reservation, error) {
	reservation := &models.Reservation{
		PropertyID: propertyID,
		CheckIn:    utils.DateOnly(checkIn),
		CheckOut:   utils.DateOnly(checkOut),
		GuestCount: 2,
		Status:     status,
	}
	if err := tf.db.DB.Create(reservation).Error; err != nil {
		return nil, fmt.Errorf("failed to create test reservation: %w", err)
	}
	return reservation, nil
}
