package businessflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Landcsgirl1999/hostthub-pricing/app/dto"
	"github.com/Landcsgirl1999/hostthub-pricing/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordMarketData(t *testing.T) {
	ctx := context.Background()
	metadata := NewClientMetadata("10.0.0.5", "collector/1.0")

	property := newTestProperty(200)
	propertyRepo := &fakePropertyRepo{property: property}

	t.Run("RecordsSnapshot", func(t *testing.T) {
		marketRepo := &fakeMarketRepo{}
		flow := NewMarketDataFlow(propertyRepo, marketRepo, &fakeCompetitorRepo{}, nil)

		resp, err := flow.RecordMarketData(ctx, &dto.RecordMarketDataRequest{
			PropertyID:      property.UUID.String(),
			Date:            "2026-07-04",
			Location:        "downtown",
			PriceTrend:      0.15,
			DemandScore:     72,
			CompetitorCount: 8,
			AveragePrice:    230,
		}, metadata)
		require.NoError(t, err)
		assert.Equal(t, "2026-07-04", resp.Date)

		require.NotNil(t, marketRepo.snapshot)
		assert.Equal(t, property.ID, marketRepo.snapshot.PropertyID)
		assert.Equal(t, utils.DateOnly(time.Date(2026, time.July, 4, 0, 0, 0, 0, time.UTC)), marketRepo.snapshot.Date)
		assert.Equal(t, "downtown", marketRepo.snapshot.Location)
		assert.Equal(t, 0.15, marketRepo.snapshot.PriceTrend)
		assert.Equal(t, 72.0, marketRepo.snapshot.DemandScore)
	})

	t.Run("DateRequired", func(t *testing.T) {
		flow := NewMarketDataFlow(propertyRepo, &fakeMarketRepo{}, &fakeCompetitorRepo{}, nil)

		_, err := flow.RecordMarketData(ctx, &dto.RecordMarketDataRequest{
			PropertyID: property.UUID.String(),
		}, metadata)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrSnapshotDateRequired))
	})

	t.Run("NegativeAveragePriceRejected", func(t *testing.T) {
		flow := NewMarketDataFlow(propertyRepo, &fakeMarketRepo{}, &fakeCompetitorRepo{}, nil)

		_, err := flow.RecordMarketData(ctx, &dto.RecordMarketDataRequest{
			PropertyID:   property.UUID.String(),
			Date:         "2026-07-04",
			AveragePrice: -5,
		}, metadata)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNegativePrice))
	})

	t.Run("UnknownProperty", func(t *testing.T) {
		flow := NewMarketDataFlow(propertyRepo, &fakeMarketRepo{}, &fakeCompetitorRepo{}, nil)

		_, err := flow.RecordMarketData(ctx, &dto.RecordMarketDataRequest{
			PropertyID: uuid.NewString(),
			Date:       "2026-07-04",
		}, metadata)
		require.Error(t, err)
		assert.True(t, IsPropertyNotFound(err))
	})
}

func TestRecordCompetitorPrices(t *testing.T) {
	ctx := context.Background()
	metadata := NewClientMetadata("10.0.0.5", "collector/1.0")

	property := newTestProperty(200)
	propertyRepo := &fakePropertyRepo{property: property}

	t.Run("RecordsBatch", func(t *testing.T) {
		compRepo := &fakeCompetitorRepo{}
		flow := NewMarketDataFlow(propertyRepo, &fakeMarketRepo{}, compRepo, nil)

		resp, err := flow.RecordCompetitorPrices(ctx, &dto.RecordCompetitorPricesRequest{
			PropertyID: property.UUID.String(),
			Prices: []dto.CompetitorPriceEntry{
				{CompetitorName: "Lakeview Lodge", Date: "2026-07-04", Price: 250},
				{CompetitorName: "Pine Retreat", Date: "2026-07-05", Price: 270},
			},
		}, metadata)
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Count)

		require.Len(t, compRepo.prices, 2)
		assert.Equal(t, "Lakeview Lodge", compRepo.prices[0].CompetitorName)
		assert.Equal(t, 250.0, compRepo.prices[0].Price)
		assert.Equal(t, property.ID, compRepo.prices[0].PropertyID)
	})

	t.Run("NameRequired", func(t *testing.T) {
		flow := NewMarketDataFlow(propertyRepo, &fakeMarketRepo{}, &fakeCompetitorRepo{}, nil)

		_, err := flow.RecordCompetitorPrices(ctx, &dto.RecordCompetitorPricesRequest{
			PropertyID: property.UUID.String(),
			Prices: []dto.CompetitorPriceEntry{
				{Date: "2026-07-04", Price: 250},
			},
		}, metadata)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrCompetitorNameRequired))
	})

	t.Run("BadEntryRejectsWholeBatch", func(t *testing.T) {
		compRepo := &fakeCompetitorRepo{}
		flow := NewMarketDataFlow(propertyRepo, &fakeMarketRepo{}, compRepo, nil)

		_, err := flow.RecordCompetitorPrices(ctx, &dto.RecordCompetitorPricesRequest{
			PropertyID: property.UUID.String(),
			Prices: []dto.CompetitorPriceEntry{
				{CompetitorName: "Lakeview Lodge", Date: "2026-07-04", Price: 250},
				{CompetitorName: "Pine Retreat", Date: "2026-07-05", Price: -1},
			},
		}, metadata)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNegativePrice))
		assert.Empty(t, compRepo.prices)
	})
}
