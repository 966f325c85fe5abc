package tests

import (
	"context"
	"testing"
	"time"

	"github.com/Landcsgirl1999/hostthub-pricing/models"
	"github.com/Landcsgirl1999/hostthub-pricing/repository"
	testingutil "github.com/Landcsgirl1999/hostthub-pricing/testing"
	"github.com/Landcsgirl1999/hostthub-pricing/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRepositoryTest provisions a throwaway database, skipping the test
// when no PostgreSQL instance is reachable.
func setupRepositoryTest(t *testing.T) (*testingutil.TestDB, *testingutil.TestFixtures) {
	t.Helper()

	testDB, err := testingutil.SetupTestDB()
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}
	t.Cleanup(func() {
		if err := testDB.TeardownTestDB(); err != nil {
			t.Logf("failed to teardown test database: %v", err)
		}
	})

	return testDB, testingutil.NewTestFixtures(testDB)
}

func TestPropertyRepository(t *testing.T) {
	testDB, fixtures := setupRepositoryTest(t)
	ctx := context.Background()

	propertyRepo := repository.NewPropertyRepository(testDB.DB)

	t.Run("ByUUID", func(t *testing.T) {
		property, err := fixtures.CreateTestProperty(200)
		require.NoError(t, err)

		found, err := propertyRepo.ByUUID(ctx, property.UUID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, property.ID, found.ID)
		assert.Equal(t, "Test Cottage", found.Name)
		assert.Equal(t, 200.0, found.BasePrice)
	})

	t.Run("ByUUIDMissingReturnsNil", func(t *testing.T) {
		found, err := propertyRepo.ByUUID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("ByUUIDWithPricingPreloadsRelations", func(t *testing.T) {
		property, err := fixtures.CreateTestProperty(200)
		require.NoError(t, err)

		_, err = fixtures.CreateTestRule(property.ID, "Holiday surge", models.PriceTypeMultiplier, 1.3)
		require.NoError(t, err)

		adjustment := &models.SeasonalAdjustment{
			PropertyID: property.ID,
			Name:       "Ski season",
			StartMonth: 12,
			EndMonth:   3,
			Multiplier: 1.4,
			IsActive:   utils.ToPtr(true),
		}
		require.NoError(t, testDB.DB.Create(adjustment).Error)

		amenity := &models.AmenityMultiplier{
			PropertyID: property.ID,
			Amenity:    "Hot tub",
			Multiplier: 1.15,
			IsActive:   utils.ToPtr(true),
		}
		require.NoError(t, testDB.DB.Create(amenity).Error)

		found, err := propertyRepo.ByUUIDWithPricing(ctx, property.UUID)
		require.NoError(t, err)
		require.NotNil(t, found)
		require.NotNil(t, found.PricingConfig)
		assert.Equal(t, 1.2, found.PricingConfig.WeekendMultiplier)
		require.Len(t, found.PricingRules, 1)
		assert.Equal(t, "Holiday surge", found.PricingRules[0].Name)
		require.Len(t, found.SeasonalAdjustments, 1)
		assert.Equal(t, "Ski season", found.SeasonalAdjustments[0].Name)
		require.Len(t, found.AmenityMultipliers, 1)
		assert.Equal(t, "Hot tub", found.AmenityMultipliers[0].Amenity)
	})

	t.Run("ListActiveExcludesInactive", func(t *testing.T) {
		require.NoError(t, testDB.ClearAllTables())

		active, err := fixtures.CreateTestProperty(200)
		require.NoError(t, err)

		inactive, err := fixtures.CreateTestProperty(150)
		require.NoError(t, err)
		require.NoError(t, testDB.DB.Model(inactive).Update("is_active", false).Error)

		properties, err := propertyRepo.ListActive(ctx)
		require.NoError(t, err)
		require.Len(t, properties, 1)
		assert.Equal(t, active.ID, properties[0].ID)
	})
}

func TestPricingConfigAndRuleRepositories(t *testing.T) {
	testDB, fixtures := setupRepositoryTest(t)
	ctx := context.Background()

	property, err := fixtures.CreateTestProperty(200)
	require.NoError(t, err)

	t.Run("ConfigByPropertyID", func(t *testing.T) {
		configRepo := repository.NewPricingConfigRepository(testDB.DB)

		config, err := configRepo.ByPropertyID(ctx, property.ID)
		require.NoError(t, err)
		require.NotNil(t, config)
		assert.Equal(t, 1.2, config.WeekendMultiplier)

		missing, err := configRepo.ByPropertyID(ctx, 99999)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("ActiveRulesOnly", func(t *testing.T) {
		ruleRepo := repository.NewPricingRuleRepository(testDB.DB)

		_, err := fixtures.CreateTestRule(property.ID, "Active rule", models.PriceTypeMultiplier, 1.1)
		require.NoError(t, err)

		disabled, err := fixtures.CreateTestRule(property.ID, "Disabled rule", models.PriceTypePercentage, 10)
		require.NoError(t, err)
		require.NoError(t, testDB.DB.Model(disabled).Update("is_active", false).Error)

		rules, err := ruleRepo.ActiveByPropertyID(ctx, property.ID)
		require.NoError(t, err)
		require.Len(t, rules, 1)
		assert.Equal(t, "Active rule", rules[0].Name)
	})

	t.Run("ActiveSeasonalAdjustments", func(t *testing.T) {
		adjustmentRepo := repository.NewSeasonalAdjustmentRepository(testDB.DB)

		require.NoError(t, testDB.DB.Create(&models.SeasonalAdjustment{
			PropertyID: property.ID,
			Name:       "Summer",
			StartMonth: 6,
			EndMonth:   8,
			Multiplier: 1.25,
			IsActive:   utils.ToPtr(true),
		}).Error)

		adjustments, err := adjustmentRepo.ActiveByPropertyID(ctx, property.ID)
		require.NoError(t, err)
		require.Len(t, adjustments, 1)
		assert.Equal(t, "Summer", adjustments[0].Name)
	})

	t.Run("ActiveAmenityMultipliers", func(t *testing.T) {
		amenityRepo := repository.NewAmenityMultiplierRepository(testDB.DB)

		require.NoError(t, testDB.DB.Create(&models.AmenityMultiplier{
			PropertyID: property.ID,
			Amenity:    "Pool",
			Multiplier: 1.1,
			IsActive:   utils.ToPtr(true),
		}).Error)

		amenities, err := amenityRepo.ActiveByPropertyID(ctx, property.ID)
		require.NoError(t, err)
		require.Len(t, amenities, 1)
		assert.Equal(t, "Pool", amenities[0].Amenity)
	})
}

func TestMarketDataRepository(t *testing.T) {
	testDB, fixtures := setupRepositoryTest(t)
	ctx := context.Background()

	marketRepo := repository.NewMarketDataRepository(testDB.DB)

	property, err := fixtures.CreateTestProperty(200)
	require.NoError(t, err)

	stayDate := time.Date(2026, time.July, 15, 0, 0, 0, 0, time.UTC)

	t.Run("UpsertOverwritesSameKey", func(t *testing.T) {
		require.NoError(t, marketRepo.Upsert(ctx, &models.MarketDataSnapshot{
			PropertyID:  property.ID,
			Date:        stayDate,
			PriceTrend:  0.1,
			DemandScore: 60,
		}))
		require.NoError(t, marketRepo.Upsert(ctx, &models.MarketDataSnapshot{
			PropertyID:  property.ID,
			Date:        stayDate,
			PriceTrend:  0.3,
			DemandScore: 75,
		}))

		count, err := marketRepo.Count(ctx, models.MarketDataFilter{PropertyID: &property.ID})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		snapshot, err := marketRepo.LatestWithinWindow(ctx, property.ID, stayDate, utils.MarketDataWindowDays)
		require.NoError(t, err)
		require.NotNil(t, snapshot)
		assert.Equal(t, 0.3, snapshot.PriceTrend)
		assert.Equal(t, 75.0, snapshot.DemandScore)
	})

	t.Run("WindowSelection", func(t *testing.T) {
		old := &models.MarketDataSnapshot{
			PropertyID:  property.ID,
			Date:        stayDate.AddDate(0, 0, -20),
			PriceTrend:  -0.5,
			DemandScore: 10,
		}
		require.NoError(t, marketRepo.Upsert(ctx, old))

		snapshot, err := marketRepo.LatestWithinWindow(ctx, property.ID, stayDate, utils.MarketDataWindowDays)
		require.NoError(t, err)
		require.NotNil(t, snapshot)
		assert.Equal(t, 0.3, snapshot.PriceTrend)

		none, err := marketRepo.LatestWithinWindow(ctx, property.ID, stayDate.AddDate(0, 6, 0), utils.MarketDataWindowDays)
		require.NoError(t, err)
		assert.Nil(t, none)
	})
}

func TestCompetitorPriceRepository(t *testing.T) {
	testDB, fixtures := setupRepositoryTest(t)
	ctx := context.Background()

	compRepo := repository.NewCompetitorPriceRepository(testDB.DB)

	property, err := fixtures.CreateTestProperty(200)
	require.NoError(t, err)

	stayDate := time.Date(2026, time.July, 15, 0, 0, 0, 0, time.UTC)

	t.Run("UpsertBatchIdempotent", func(t *testing.T) {
		batch := []*models.CompetitorPriceSnapshot{
			{PropertyID: property.ID, CompetitorName: "Lakeview Lodge", Date: stayDate, Price: 250},
			{PropertyID: property.ID, CompetitorName: "Pine Retreat", Date: stayDate, Price: 270},
		}
		require.NoError(t, compRepo.UpsertBatch(ctx, batch))

		rewrite := []*models.CompetitorPriceSnapshot{
			{PropertyID: property.ID, CompetitorName: "Lakeview Lodge", Date: stayDate, Price: 260},
		}
		require.NoError(t, compRepo.UpsertBatch(ctx, rewrite))

		count, err := compRepo.Count(ctx, models.CompetitorPriceFilter{PropertyID: &property.ID})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("WithinWindow", func(t *testing.T) {
		outside := []*models.CompetitorPriceSnapshot{
			{PropertyID: property.ID, CompetitorName: "Far Inn", Date: stayDate.AddDate(0, 0, 10), Price: 300},
		}
		require.NoError(t, compRepo.UpsertBatch(ctx, outside))

		prices, err := compRepo.WithinWindow(ctx, property.ID, stayDate, utils.CompetitorWindowDays)
		require.NoError(t, err)
		require.Len(t, prices, 2)

		var names []string
		for _, price := range prices {
			names = append(names, price.CompetitorName)
		}
		assert.ElementsMatch(t, []string{"Lakeview Lodge", "Pine Retreat"}, names)
	})
}

func TestPricingHistoryRepository(t *testing.T) {
	testDB, fixtures := setupRepositoryTest(t)
	ctx := context.Background()

	historyRepo := repository.NewPricingHistoryRepository(testDB.DB)

	property, err := fixtures.CreateTestProperty(200)
	require.NoError(t, err)

	date := time.Date(2026, time.March, 21, 0, 0, 0, 0, time.UTC)

	record := func(finalPrice float64) *models.PricingHistory {
		return &models.PricingHistory{
			PropertyID:   property.ID,
			Date:         date,
			BasePrice:    200,
			FinalPrice:   finalPrice,
			AppliedRules: pq.StringArray{"Base multiplier: 1.00x", "Weekend rate: 1.20x"},
			Factors: models.MarketFactors{
				OccupancyRate:      utils.ToPtr(50.0),
				LocationMultiplier: utils.ToPtr(1.0),
				LeadTimeDays:       utils.ToPtr(19),
			},
			Confidence: 0.6,
		}
	}

	t.Run("UpsertOverwrites", func(t *testing.T) {
		require.NoError(t, historyRepo.Upsert(ctx, record(240)))
		require.NoError(t, historyRepo.Upsert(ctx, record(250)))

		stored, err := historyRepo.ByPropertyAndDate(ctx, property.ID, date)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, 250.0, stored.FinalPrice)
		assert.Equal(t, pq.StringArray{"Base multiplier: 1.00x", "Weekend rate: 1.20x"}, stored.AppliedRules)
		require.NotNil(t, stored.Factors.LeadTimeDays)
		assert.Equal(t, 19, *stored.Factors.LeadTimeDays)

		count, err := historyRepo.Count(ctx, models.PricingHistoryFilter{PropertyID: &property.ID})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("ByPropertyAndMonthOrdered", func(t *testing.T) {
		earlier := record(230)
		earlier.Date = time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC)
		require.NoError(t, historyRepo.Upsert(ctx, earlier))

		otherMonth := record(260)
		otherMonth.Date = time.Date(2026, time.April, 4, 0, 0, 0, 0, time.UTC)
		require.NoError(t, historyRepo.Upsert(ctx, otherMonth))

		records, err := historyRepo.ByPropertyAndMonth(ctx, property.ID, 2026, time.March)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, 7, records[0].Date.Day())
		assert.Equal(t, 21, records[1].Date.Day())
	})
}

func TestReservationRepository(t *testing.T) {
	testDB, fixtures := setupRepositoryTest(t)
	ctx := context.Background()

	reservationRepo := repository.NewReservationRepository(testDB.DB)

	property, err := fixtures.CreateTestProperty(200)
	require.NoError(t, err)

	t.Run("OccupancyRateCountsPendingAndConfirmed", func(t *testing.T) {
		// March 2026 has 31 nights; 10 confirmed plus 5 pending and a
		// cancelled stay that must not count.
		_, err := fixtures.CreateTestReservation(property.ID,
			time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC),
			models.ReservationStatusConfirmed)
		require.NoError(t, err)

		_, err = fixtures.CreateTestReservation(property.ID,
			time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC),
			models.ReservationStatusPending)
		require.NoError(t, err)

		_, err = fixtures.CreateTestReservation(property.ID,
			time.Date(2026, time.March, 22, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.March, 28, 0, 0, 0, 0, time.UTC),
			models.ReservationStatusCancelled)
		require.NoError(t, err)

		rate, err := reservationRepo.OccupancyRate(ctx, property.ID, 2026, time.March)
		require.NoError(t, err)
		assert.InDelta(t, 15.0/31.0*100, rate, 1e-9)
	})

	t.Run("StraddlingReservationClipped", func(t *testing.T) {
		// Runs into April: only the March 30 and 31 nights count here.
		_, err := fixtures.CreateTestReservation(property.ID,
			time.Date(2026, time.March, 30, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.April, 3, 0, 0, 0, 0, time.UTC),
			models.ReservationStatusConfirmed)
		require.NoError(t, err)

		rate, err := reservationRepo.OccupancyRate(ctx, property.ID, 2026, time.March)
		require.NoError(t, err)
		assert.InDelta(t, 17.0/31.0*100, rate, 1e-9)

		aprilRate, err := reservationRepo.OccupancyRate(ctx, property.ID, 2026, time.April)
		require.NoError(t, err)
		assert.InDelta(t, 2.0/30.0*100, aprilRate, 1e-9)
	})

	t.Run("EmptyMonthIsZero", func(t *testing.T) {
		rate, err := reservationRepo.OccupancyRate(ctx, property.ID, 2026, time.September)
		require.NoError(t, err)
		assert.Equal(t, 0.0, rate)
	})
}
