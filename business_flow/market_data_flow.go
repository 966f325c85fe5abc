package businessflow

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Landcsgirl1999/hostthub-pricing/app/dto"
	"github.com/Landcsgirl1999/hostthub-pricing/models"
	"github.com/Landcsgirl1999/hostthub-pricing/repository"
	"github.com/Landcsgirl1999/hostthub-pricing/utils"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// MarketDataFlow is the write path used by out-of-process collection
// jobs to feed market and competitor observations into the engine.
type MarketDataFlow interface {
	RecordMarketData(ctx context.Context, req *dto.RecordMarketDataRequest, metadata *ClientMetadata) (*dto.RecordMarketDataResponse, error)
	RecordCompetitorPrices(ctx context.Context, req *dto.RecordCompetitorPricesRequest, metadata *ClientMetadata) (*dto.RecordCompetitorPricesResponse, error)
}

// MarketDataFlowImpl implements the market data business flow
type MarketDataFlowImpl struct {
	propertyRepo   repository.PropertyRepository
	marketRepo     repository.MarketDataRepository
	competitorRepo repository.CompetitorPriceRepository
	rc             *redis.Client
}

// NewMarketDataFlow creates a new market data flow instance. rc may be
// nil, in which case no cache invalidation happens on writes.
func NewMarketDataFlow(
	propertyRepo repository.PropertyRepository,
	marketRepo repository.MarketDataRepository,
	competitorRepo repository.CompetitorPriceRepository,
	rc *redis.Client,
) MarketDataFlow {
	return &MarketDataFlowImpl{
		propertyRepo:   propertyRepo,
		marketRepo:     marketRepo,
		competitorRepo: competitorRepo,
		rc:             rc,
	}
}

func (f *MarketDataFlowImpl) RecordMarketData(ctx context.Context, req *dto.RecordMarketDataRequest, metadata *ClientMetadata) (*dto.RecordMarketDataResponse, error) {
	property, err := f.resolveProperty(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}

	if req.Date == "" {
		return nil, NewBusinessError("SNAPSHOT_DATE_REQUIRED", "snapshot date is required", ErrSnapshotDateRequired)
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, NewBusinessError("INVALID_DATE", "date must be in YYYY-MM-DD format", err)
	}
	if req.AveragePrice < 0 {
		return nil, NewBusinessError("NEGATIVE_PRICE", "average price cannot be negative", ErrNegativePrice)
	}

	snapshot := &models.MarketDataSnapshot{
		PropertyID:      property.ID,
		Date:            utils.DateOnly(date),
		Location:        req.Location,
		PriceTrend:      req.PriceTrend,
		DemandScore:     req.DemandScore,
		CompetitorCount: req.CompetitorCount,
		AveragePrice:    req.AveragePrice,
	}
	if err := f.marketRepo.Upsert(ctx, snapshot); err != nil {
		return nil, NewBusinessError("MARKET_DATA_WRITE_FAILED", "failed to write market snapshot", err)
	}

	f.invalidateMonths(ctx, property.UUID, date)

	return &dto.RecordMarketDataResponse{
		Message: "market snapshot recorded",
		Date:    date.Format("2006-01-02"),
	}, nil
}

func (f *MarketDataFlowImpl) RecordCompetitorPrices(ctx context.Context, req *dto.RecordCompetitorPricesRequest, metadata *ClientMetadata) (*dto.RecordCompetitorPricesResponse, error) {
	property, err := f.resolveProperty(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}

	snapshots := make([]*models.CompetitorPriceSnapshot, 0, len(req.Prices))
	var dates []time.Time
	for _, entry := range req.Prices {
		if entry.CompetitorName == "" {
			return nil, NewBusinessError("COMPETITOR_NAME_REQUIRED", "competitor name is required", ErrCompetitorNameRequired)
		}
		date, err := parseDate(entry.Date)
		if err != nil {
			return nil, NewBusinessError("INVALID_DATE", fmt.Sprintf("invalid date for competitor %s", entry.CompetitorName), err)
		}
		if entry.Price < 0 {
			return nil, NewBusinessError("NEGATIVE_PRICE", fmt.Sprintf("negative price for competitor %s", entry.CompetitorName), ErrNegativePrice)
		}
		snapshots = append(snapshots, &models.CompetitorPriceSnapshot{
			PropertyID:     property.ID,
			CompetitorName: entry.CompetitorName,
			Date:           utils.DateOnly(date),
			Price:          entry.Price,
		})
		dates = append(dates, date)
	}

	if err := f.competitorRepo.UpsertBatch(ctx, snapshots); err != nil {
		return nil, NewBusinessError("COMPETITOR_PRICE_WRITE_FAILED", "failed to write competitor prices", err)
	}

	for _, date := range dates {
		f.invalidateMonths(ctx, property.UUID, date)
	}

	return &dto.RecordCompetitorPricesResponse{
		Message: "competitor prices recorded",
		Count:   len(snapshots),
	}, nil
}

func (f *MarketDataFlowImpl) resolveProperty(ctx context.Context, id string) (*models.Property, error) {
	propertyID, err := uuid.Parse(id)
	if err != nil {
		return nil, NewBusinessError("INVALID_PROPERTY_ID", "property id must be a UUID", err)
	}
	property, err := f.propertyRepo.ByUUID(ctx, propertyID)
	if err != nil {
		return nil, NewBusinessError("PROPERTY_LOOKUP_FAILED", "failed to load property", err)
	}
	if property == nil {
		return nil, NewBusinessError("PROPERTY_NOT_FOUND", "property not found", ErrPropertyNotFound)
	}
	return property, nil
}

// invalidateMonths drops the cached month views a dated write can
// affect. A snapshot near a month boundary feeds the adjacent month's
// window too, so both neighbors are dropped.
func (f *MarketDataFlowImpl) invalidateMonths(ctx context.Context, propertyID uuid.UUID, date time.Time) {
	if f.rc == nil {
		return
	}
	for _, offset := range []int{-1, 0, 1} {
		shifted := date.AddDate(0, offset, 0)
		key := MonthDemandCacheKey(propertyID, shifted.Year(), shifted.Month())
		if err := f.rc.Del(ctx, key).Err(); err != nil {
			log.Printf("month demand cache invalidation failed for %s: %v", key, err)
		}
	}
}
