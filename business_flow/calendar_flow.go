package businessflow

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/Landcsgirl1999/hostthub-pricing/app/dto"
	"github.com/Landcsgirl1999/hostthub-pricing/repository"
	"github.com/Landcsgirl1999/hostthub-pricing/utils"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentDays bounds the per-day fan-out of a month computation so
// a 31-day month does not open 31 simultaneous signal fetches.
const maxConcurrentDays = 4

// CalendarFlow aggregates per-day prices into a monthly demand calendar.
type CalendarFlow interface {
	ComputeMonthDemand(ctx context.Context, req *dto.MonthDemandRequest, metadata *ClientMetadata) (*dto.MonthDemandResponse, error)
}

// CalendarFlowImpl implements the calendar business flow
type CalendarFlowImpl struct {
	propertyRepo repository.PropertyRepository
	pricing      PricingFlow
	rc           *redis.Client
	cacheTTL     time.Duration
}

// NewCalendarFlow creates a new calendar flow instance. rc may be nil,
// in which case caching is disabled.
func NewCalendarFlow(
	propertyRepo repository.PropertyRepository,
	pricing PricingFlow,
	rc *redis.Client,
) CalendarFlow {
	return &CalendarFlowImpl{
		propertyRepo: propertyRepo,
		pricing:      pricing,
		rc:           rc,
		cacheTTL:     utils.MonthDemandCacheTTL,
	}
}

func (f *CalendarFlowImpl) ComputeMonthDemand(ctx context.Context, req *dto.MonthDemandRequest, metadata *ClientMetadata) (*dto.MonthDemandResponse, error) {
	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		return nil, NewBusinessError("INVALID_PROPERTY_ID", "property id must be a UUID", err)
	}
	if req.Month < 1 || req.Month > 12 {
		return nil, NewBusinessError("INVALID_MONTH", "month must be between 1 and 12", ErrInvalidMonth)
	}
	if req.Year < 2000 || req.Year > 2200 {
		return nil, NewBusinessError("INVALID_YEAR", "year is out of range", ErrInvalidYear)
	}

	cacheKey := MonthDemandCacheKey(propertyID, req.Year, time.Month(req.Month))
	if cached := f.cachedResponse(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	property, err := f.propertyRepo.ByUUID(ctx, propertyID)
	if err != nil {
		return nil, NewBusinessError("PROPERTY_LOOKUP_FAILED", "failed to load property", err)
	}
	if property == nil {
		return nil, NewBusinessError("PROPERTY_NOT_FOUND", "property not found", ErrPropertyNotFound)
	}
	if !utils.IsTrue(property.IsActive) {
		return nil, NewBusinessError("PROPERTY_INACTIVE", "property is inactive", ErrPropertyInactive)
	}

	month := time.Month(req.Month)
	daysInMonth := utils.DaysInMonth(req.Year, month)
	days := make([]dto.DayDemand, daysInMonth)

	// Days are computed concurrently but land in their slice slot, so
	// the emitted order is ascending by date regardless of scheduling.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentDays)
	for day := 1; day <= daysInMonth; day++ {
		g.Go(func() error {
			date := time.Date(req.Year, month, day, 0, 0, 0, 0, time.UTC)
			quote, err := f.pricing.ComputePrice(gctx, &dto.ComputePriceRequest{
				PropertyID: req.PropertyID,
				Date:       date.Format("2006-01-02"),
				GuestCount: 1,
			}, metadata)
			if err != nil && !IsHistoryWriteFailed(err) {
				return fmt.Errorf("day %d: %w", day, err)
			}

			score := quote.MarketFactors.DemandScoreOrDefault()
			level, color := classifyDemand(score)
			days[day-1] = dto.DayDemand{
				Date:         quote.Date,
				Price:        quote.FinalPrice,
				DemandScore:  score,
				DemandLevel:  level,
				Color:        color,
				MinimumStay:  property.MinimumStay,
				AppliedRules: quote.AppliedRules,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, NewBusinessError("MONTH_COMPUTATION_FAILED", "failed to compute month demand", err)
	}

	var sum float64
	minPrice, maxPrice := days[0].Price, days[0].Price
	for _, d := range days {
		sum += d.Price
		if d.Price < minPrice {
			minPrice = d.Price
		}
		if d.Price > maxPrice {
			maxPrice = d.Price
		}
	}

	resp := &dto.MonthDemandResponse{
		PropertyID:   property.UUID.String(),
		Year:         req.Year,
		Month:        req.Month,
		Days:         days,
		AveragePrice: utils.Round2(sum / float64(daysInMonth)),
		MinPrice:     utils.Round2(minPrice),
		MaxPrice:     utils.Round2(maxPrice),
		MinimumStay:  property.MinimumStay,
	}

	f.cacheResponse(ctx, cacheKey, resp)
	return resp, nil
}

// classifyDemand maps a demand score to the calendar level and color.
func classifyDemand(score float64) (string, string) {
	switch {
	case score >= utils.HighDemandScore:
		return utils.DemandLevelHigh, utils.DemandColorHigh
	case score <= utils.LowDemandScore:
		return utils.DemandLevelLow, utils.DemandColorLow
	default:
		return utils.DemandLevelAverage, utils.DemandColorAverage
	}
}

// MonthDemandCacheKey builds the cache key for a property's month view.
// Shared with the market data flow, which invalidates it on writes.
func MonthDemandCacheKey(propertyID uuid.UUID, year int, month time.Month) string {
	return fmt.Sprintf("%s:%s:%04d-%02d", utils.MonthDemandCachePrefix, propertyID, year, int(month))
}

func (f *CalendarFlowImpl) cachedResponse(ctx context.Context, key string) *dto.MonthDemandResponse {
	if f.rc == nil {
		return nil
	}
	payload, err := f.rc.Get(ctx, key).Bytes()
	if err != nil {
		monthDemandCacheHits.WithLabelValues("miss").Inc()
		return nil
	}
	var resp dto.MonthDemandResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		monthDemandCacheHits.WithLabelValues("miss").Inc()
		return nil
	}
	monthDemandCacheHits.WithLabelValues("hit").Inc()
	return &resp
}

func (f *CalendarFlowImpl) cacheResponse(ctx context.Context, key string, resp *dto.MonthDemandResponse) {
	if f.rc == nil {
		return
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := f.rc.Set(ctx, key, payload, f.cacheTTL).Err(); err != nil {
		log.Printf("month demand cache write failed for %s: %v", key, err)
	}
}
