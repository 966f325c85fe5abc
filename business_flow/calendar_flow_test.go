package businessflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Landcsgirl1999/hostthub-pricing/app/dto"
	"github.com/Landcsgirl1999/hostthub-pricing/models"
	"github.com/Landcsgirl1999/hostthub-pricing/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePricingFlow struct {
	fn func(ctx context.Context, req *dto.ComputePriceRequest, metadata *ClientMetadata) (*dto.ComputePriceResponse, error)
}

func (f *fakePricingFlow) ComputePrice(ctx context.Context, req *dto.ComputePriceRequest, metadata *ClientMetadata) (*dto.ComputePriceResponse, error) {
	return f.fn(ctx, req, metadata)
}

// dayPricer prices each day at its day-of-month so aggregates are easy
// to assert against.
func dayPricer(property *models.Property) *fakePricingFlow {
	return &fakePricingFlow{fn: func(ctx context.Context, req *dto.ComputePriceRequest, metadata *ClientMetadata) (*dto.ComputePriceResponse, error) {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, err
		}
		return &dto.ComputePriceResponse{
			PropertyID:     property.UUID.String(),
			Date:           req.Date,
			BasePrice:      property.BasePrice,
			FinalPrice:     float64(date.Day()),
			AppliedRules:   []string{"Base multiplier: 1.00x"},
			HistoryWritten: true,
		}, nil
	}}
}

func TestComputeMonthDemand(t *testing.T) {
	ctx := context.Background()
	metadata := NewClientMetadata("127.0.0.1", "test-agent")

	property := newTestProperty(200)
	propertyRepo := &fakePropertyRepo{property: property}

	monthRequest := func(year, month int) *dto.MonthDemandRequest {
		return &dto.MonthDemandRequest{
			PropertyID: property.UUID.String(),
			Year:       year,
			Month:      month,
		}
	}

	t.Run("FullMonthAscending", func(t *testing.T) {
		flow := NewCalendarFlow(propertyRepo, dayPricer(property), nil)

		resp, err := flow.ComputeMonthDemand(ctx, monthRequest(2026, 2), metadata)
		require.NoError(t, err)
		require.Len(t, resp.Days, 28)

		for i, day := range resp.Days {
			expected := time.Date(2026, time.February, i+1, 0, 0, 0, 0, time.UTC)
			assert.Equal(t, expected.Format("2006-01-02"), day.Date)
			assert.Equal(t, float64(i+1), day.Price)
			assert.Equal(t, property.MinimumStay, day.MinimumStay)
			assert.Equal(t, []string{"Base multiplier: 1.00x"}, day.AppliedRules)
		}

		assert.Equal(t, 14.5, resp.AveragePrice)
		assert.Equal(t, 1.0, resp.MinPrice)
		assert.Equal(t, 28.0, resp.MaxPrice)
		assert.Equal(t, property.MinimumStay, resp.MinimumStay)
		assert.Equal(t, 2026, resp.Year)
		assert.Equal(t, 2, resp.Month)
	})

	t.Run("LeapYearFebruary", func(t *testing.T) {
		flow := NewCalendarFlow(propertyRepo, dayPricer(property), nil)

		resp, err := flow.ComputeMonthDemand(ctx, monthRequest(2028, 2), metadata)
		require.NoError(t, err)
		assert.Len(t, resp.Days, 29)
	})

	t.Run("DemandClassification", func(t *testing.T) {
		pricer := &fakePricingFlow{fn: func(ctx context.Context, req *dto.ComputePriceRequest, metadata *ClientMetadata) (*dto.ComputePriceResponse, error) {
			date, _ := time.Parse("2006-01-02", req.Date)
			resp := &dto.ComputePriceResponse{
				PropertyID: property.UUID.String(),
				Date:       req.Date,
				FinalPrice: 100,
			}
			switch date.Day() {
			case 1:
				resp.MarketFactors.DemandScore = utils.ToPtr(85.0)
			case 2:
				resp.MarketFactors.DemandScore = utils.ToPtr(20.0)
			}
			return resp, nil
		}}
		flow := NewCalendarFlow(propertyRepo, pricer, nil)

		resp, err := flow.ComputeMonthDemand(ctx, monthRequest(2026, 2), metadata)
		require.NoError(t, err)

		assert.Equal(t, utils.DemandLevelHigh, resp.Days[0].DemandLevel)
		assert.Equal(t, utils.DemandColorHigh, resp.Days[0].Color)
		assert.Equal(t, 85.0, resp.Days[0].DemandScore)

		assert.Equal(t, utils.DemandLevelLow, resp.Days[1].DemandLevel)
		assert.Equal(t, utils.DemandColorLow, resp.Days[1].Color)

		// No market data: neutral default classifies as average.
		assert.Equal(t, utils.DemandLevelAverage, resp.Days[2].DemandLevel)
		assert.Equal(t, utils.DemandColorAverage, resp.Days[2].Color)
		assert.Equal(t, utils.DefaultDemandScore, resp.Days[2].DemandScore)
	})

	t.Run("ToleratesHistoryWriteFailures", func(t *testing.T) {
		pricer := &fakePricingFlow{fn: func(ctx context.Context, req *dto.ComputePriceRequest, metadata *ClientMetadata) (*dto.ComputePriceResponse, error) {
			return &dto.ComputePriceResponse{
				PropertyID: property.UUID.String(),
				Date:       req.Date,
				FinalPrice: 100,
			}, NewBusinessError("HISTORY_WRITE_FAILED", "pricing history write failed", ErrHistoryWriteFailed)
		}}
		flow := NewCalendarFlow(propertyRepo, pricer, nil)

		resp, err := flow.ComputeMonthDemand(ctx, monthRequest(2026, 2), metadata)
		require.NoError(t, err)
		assert.Len(t, resp.Days, 28)
	})

	t.Run("FailingDayFailsMonth", func(t *testing.T) {
		pricer := &fakePricingFlow{fn: func(ctx context.Context, req *dto.ComputePriceRequest, metadata *ClientMetadata) (*dto.ComputePriceResponse, error) {
			date, _ := time.Parse("2006-01-02", req.Date)
			if date.Day() == 5 {
				return nil, errors.New("boom")
			}
			return &dto.ComputePriceResponse{Date: req.Date, FinalPrice: 100}, nil
		}}
		flow := NewCalendarFlow(propertyRepo, pricer, nil)

		_, err := flow.ComputeMonthDemand(ctx, monthRequest(2026, 2), metadata)
		require.Error(t, err)

		var businessErr *BusinessError
		require.ErrorAs(t, err, &businessErr)
		assert.Equal(t, "MONTH_COMPUTATION_FAILED", businessErr.Code)
	})

	t.Run("InvalidMonth", func(t *testing.T) {
		flow := NewCalendarFlow(propertyRepo, dayPricer(property), nil)

		_, err := flow.ComputeMonthDemand(ctx, monthRequest(2026, 13), metadata)
		require.Error(t, err)
		assert.True(t, IsInvalidMonth(err))
	})

	t.Run("YearOutOfRange", func(t *testing.T) {
		flow := NewCalendarFlow(propertyRepo, dayPricer(property), nil)

		_, err := flow.ComputeMonthDemand(ctx, monthRequest(1999, 6), metadata)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidYear))
	})

	t.Run("PropertyNotFound", func(t *testing.T) {
		flow := NewCalendarFlow(propertyRepo, dayPricer(property), nil)

		req := &dto.MonthDemandRequest{PropertyID: uuid.NewString(), Year: 2026, Month: 2}
		_, err := flow.ComputeMonthDemand(ctx, req, metadata)
		require.Error(t, err)
		assert.True(t, IsPropertyNotFound(err))
	})

	t.Run("InactiveProperty", func(t *testing.T) {
		inactive := newTestProperty(200)
		inactive.IsActive = utils.ToPtr(false)
		flow := NewCalendarFlow(&fakePropertyRepo{property: inactive}, dayPricer(inactive), nil)

		req := &dto.MonthDemandRequest{PropertyID: inactive.UUID.String(), Year: 2026, Month: 2}
		_, err := flow.ComputeMonthDemand(ctx, req, metadata)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrPropertyInactive))
	})
}

func TestMonthDemandCacheKey(t *testing.T) {
	id := uuid.MustParse("a2f4b9a0-7c1d-4e8f-9b6a-0d3c2e1f4a5b")
	key := MonthDemandCacheKey(id, 2026, time.July)
	assert.Equal(t, "pricing:month-demand:a2f4b9a0-7c1d-4e8f-9b6a-0d3c2e1f4a5b:2026-07", key)
}

func TestClassifyDemand(t *testing.T) {
	level, color := classifyDemand(70)
	assert.Equal(t, utils.DemandLevelHigh, level)
	assert.Equal(t, utils.DemandColorHigh, color)

	level, color = classifyDemand(40)
	assert.Equal(t, utils.DemandLevelLow, level)
	assert.Equal(t, utils.DemandColorLow, color)

	level, color = classifyDemand(55)
	assert.Equal(t, utils.DemandLevelAverage, level)
	assert.Equal(t, utils.DemandColorAverage, color)
}
