package businessflow

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Landcsgirl1999/hostthub-pricing/app/dto"
	"github.com/Landcsgirl1999/hostthub-pricing/app/services"
	"github.com/Landcsgirl1999/hostthub-pricing/models"
	"github.com/Landcsgirl1999/hostthub-pricing/repository"
	"github.com/Landcsgirl1999/hostthub-pricing/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/sync/errgroup"
)

// PricingFlow computes the nightly price for a property.
type PricingFlow interface {
	// ComputePrice prices one (property, date, guestCount) night and
	// upserts the result into pricing history. When the computation
	// succeeds but the history write fails, the response is returned
	// alongside an error satisfying IsHistoryWriteFailed: the price is
	// still valid and callers may use it while retrying the write.
	ComputePrice(ctx context.Context, req *dto.ComputePriceRequest, metadata *ClientMetadata) (*dto.ComputePriceResponse, error)
}

// PricingFlowImpl implements the pricing business flow
type PricingFlowImpl struct {
	propertyRepo    repository.PropertyRepository
	marketRepo      repository.MarketDataRepository
	competitorRepo  repository.CompetitorPriceRepository
	reservationRepo repository.ReservationRepository
	historyRepo     repository.PricingHistoryRepository
	weather         services.WeatherService
	events          services.LocalEventsService
	neighborhood    services.NeighborhoodService
	location        *LocationEngine
	now             func() time.Time
}

// NewPricingFlow creates a new pricing flow instance
func NewPricingFlow(
	propertyRepo repository.PropertyRepository,
	marketRepo repository.MarketDataRepository,
	competitorRepo repository.CompetitorPriceRepository,
	reservationRepo repository.ReservationRepository,
	historyRepo repository.PricingHistoryRepository,
	weather services.WeatherService,
	events services.LocalEventsService,
	neighborhood services.NeighborhoodService,
) PricingFlow {
	return &PricingFlowImpl{
		propertyRepo:    propertyRepo,
		marketRepo:      marketRepo,
		competitorRepo:  competitorRepo,
		reservationRepo: reservationRepo,
		historyRepo:     historyRepo,
		weather:         weather,
		events:          events,
		neighborhood:    neighborhood,
		location:        NewLocationEngine(),
		now:             utils.UTCNow,
	}
}

// signalSet is the joined result of the parallel signal fetches.
type signalSet struct {
	market      *models.MarketDataSnapshot
	competitors []*models.CompetitorPriceSnapshot
	occupancy   float64
	occupancyOK bool
	weather     models.WeatherObservation
	events      []models.HolidayEvent
	factors     models.LocationFactors
}

func (f *PricingFlowImpl) ComputePrice(ctx context.Context, req *dto.ComputePriceRequest, metadata *ClientMetadata) (*dto.ComputePriceResponse, error) {
	started := f.now()

	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		priceComputationsTotal.WithLabelValues("invalid_input").Inc()
		return nil, NewBusinessError("INVALID_PROPERTY_ID", "property id must be a UUID", err)
	}

	date, err := parseDate(req.Date)
	if err != nil {
		priceComputationsTotal.WithLabelValues("invalid_input").Inc()
		return nil, NewBusinessError("INVALID_DATE", "date must be in YYYY-MM-DD format", err)
	}

	guestCount := req.GuestCount
	if guestCount < 1 {
		guestCount = 1
	}

	property, err := f.propertyRepo.ByUUIDWithPricing(ctx, propertyID)
	if err != nil {
		priceComputationsTotal.WithLabelValues("error").Inc()
		return nil, NewBusinessError("PROPERTY_LOOKUP_FAILED", "failed to load property", err)
	}
	if property == nil {
		priceComputationsTotal.WithLabelValues("not_found").Inc()
		return nil, NewBusinessError("PROPERTY_NOT_FOUND", "property not found", ErrPropertyNotFound)
	}
	if !utils.IsTrue(property.IsActive) {
		priceComputationsTotal.WithLabelValues("not_found").Inc()
		return nil, NewBusinessError("PROPERTY_INACTIVE", "property is inactive", ErrPropertyInactive)
	}

	cfg := property.PricingConfig
	if cfg == nil {
		priceComputationsTotal.WithLabelValues("not_found").Inc()
		return nil, NewBusinessError("PRICING_CONFIG_NOT_FOUND", "pricing config not found", ErrPricingConfigNotFound)
	}
	if !cfg.Valid() {
		priceComputationsTotal.WithLabelValues("invalid_input").Inc()
		return nil, NewBusinessError("PRICING_CONFIG_INVALID", "pricing config violates its invariants", ErrPricingConfigInvalid)
	}

	signals, err := f.fetchSignals(ctx, property, cfg, date)
	if err != nil {
		priceComputationsTotal.WithLabelValues("error").Inc()
		return nil, NewBusinessError("SIGNAL_FETCH_FAILED", "failed to load pricing signals", err)
	}

	quote := f.fold(property, cfg, date, guestCount, signals)

	resp := &dto.ComputePriceResponse{
		PropertyID:     property.UUID.String(),
		Date:           date.Format("2006-01-02"),
		BasePrice:      property.BasePrice,
		FinalPrice:     quote.finalPrice,
		AppliedRules:   quote.applied,
		MarketFactors:  quote.factors,
		Confidence:     quote.confidence,
		HistoryWritten: true,
	}

	record := &models.PricingHistory{
		PropertyID:   property.ID,
		Date:         utils.DateOnly(date),
		BasePrice:    property.BasePrice,
		FinalPrice:   quote.finalPrice,
		AppliedRules: pq.StringArray(quote.applied),
		Factors:      quote.factors,
		Confidence:   quote.confidence,
	}
	if err := f.historyRepo.Upsert(ctx, record); err != nil {
		log.Printf("pricing history upsert failed for property %s date %s: %v", property.UUID, resp.Date, err)
		priceComputationsTotal.WithLabelValues("history_write_failed").Inc()
		resp.HistoryWritten = false
		return resp, NewBusinessError("HISTORY_WRITE_FAILED", "pricing history write failed", ErrHistoryWriteFailed)
	}

	priceComputationsTotal.WithLabelValues("success").Inc()
	priceComputationDuration.Observe(f.now().Sub(started).Seconds())
	return resp, nil
}

// fetchSignals fans out the independent signal fetches and joins them
// before the fold. Repository failures abort the computation; external
// provider failures degrade to neutral signals.
func (f *PricingFlowImpl) fetchSignals(ctx context.Context, property *models.Property, cfg *models.PricingConfig, date time.Time) (*signalSet, error) {
	signals := &signalSet{}
	g, gctx := errgroup.WithContext(ctx)

	if utils.IsTrue(cfg.MarketTrendAnalysis) {
		g.Go(func() error {
			snapshot, err := f.marketRepo.LatestWithinWindow(gctx, property.ID, date, utils.MarketDataWindowDays)
			if err != nil {
				return fmt.Errorf("market snapshot lookup: %w", err)
			}
			signals.market = snapshot
			return nil
		})
	}

	if utils.IsTrue(cfg.CompetitorTracking) {
		g.Go(func() error {
			prices, err := f.competitorRepo.WithinWindow(gctx, property.ID, date, utils.CompetitorWindowDays)
			if err != nil {
				return fmt.Errorf("competitor price lookup: %w", err)
			}
			signals.competitors = prices
			return nil
		})
	}

	g.Go(func() error {
		rate, err := f.reservationRepo.OccupancyRate(gctx, property.ID, date.Year(), date.Month())
		if err != nil {
			return fmt.Errorf("occupancy derivation: %w", err)
		}
		signals.occupancy = rate
		signals.occupancyOK = true
		return nil
	})

	if property.Latitude != nil && property.Longitude != nil {
		g.Go(func() error {
			obs, err := f.weather.ForecastFor(gctx, *property.Latitude, *property.Longitude, date)
			if err != nil {
				log.Printf("weather lookup failed for property %s: %v", property.UUID, err)
				return nil
			}
			signals.weather = obs
			return nil
		})
	}

	g.Go(func() error {
		events, err := f.events.EventsNear(gctx, property.City, property.State, date)
		if err != nil {
			log.Printf("events lookup failed for property %s: %v", property.UUID, err)
			return nil
		}
		signals.events = events
		return nil
	})

	g.Go(func() error {
		factors, err := f.neighborhood.FactorsFor(gctx, property)
		if err != nil {
			log.Printf("neighborhood lookup failed for property %s: %v", property.UUID, err)
			signals.factors = models.NeutralLocationFactors(property.City, property.State)
			return nil
		}
		signals.factors = factors
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return signals, nil
}

// foldResult is the outcome of the multiplier fold for one night.
type foldResult struct {
	finalPrice float64
	applied    []string
	factors    models.MarketFactors
	confidence float64
}

// fold runs the multiplier pipeline over the joined signals. Factors
// compose multiplicatively in a fixed order; fixed-amount rules are
// added after the fold; bounds clamp before the final 2-decimal
// rounding so boundary prices are exact.
func (f *PricingFlowImpl) fold(property *models.Property, cfg *models.PricingConfig, date time.Time, guestCount int, signals *signalSet) foldResult {
	price := property.BasePrice
	applied := make([]string, 0, 8)
	var factors models.MarketFactors

	record := func(label string, multiplier float64) {
		price *= multiplier
		applied = append(applied, fmt.Sprintf("%s: %.2fx", label, multiplier))
	}

	record("Base multiplier", cfg.BaseMultiplier)

	seasonalMultiplier, seasonalLabel := cfg.SeasonalMultiplierFor(date.Month())
	for i := range property.SeasonalAdjustments {
		adj := &property.SeasonalAdjustments[i]
		if !utils.IsTrue(adj.IsActive) || !adj.ContainsMonth(date.Month()) {
			continue
		}
		seasonalMultiplier = adj.Multiplier
		seasonalLabel = adj.Name
		if seasonalLabel == "" {
			seasonalLabel = "Seasonal adjustment"
		}
		break
	}
	record(seasonalLabel, seasonalMultiplier)

	if utils.IsWeekend(date) {
		record("Weekend rate", cfg.WeekendMultiplier)
	} else {
		record("Weekday rate", cfg.WeekdayMultiplier)
	}

	// With no snapshot in window the market fields stay unset rather
	// than recording a neutral marker, so readers of the stored factors
	// can tell absent data from a genuine 50.
	var marketTrend, demandScore float64
	if snapshot := signals.market; snapshot != nil {
		marketTrend = snapshot.PriceTrend
		demandScore = snapshot.DemandScore
		factors.MarketTrend = utils.ToPtr(snapshot.PriceTrend)
		factors.DemandScore = utils.ToPtr(snapshot.DemandScore)

		multiplier := 1 + marketTrend*0.05
		if marketTrend > 0 {
			multiplier = 1 + marketTrend*0.1
		}
		multiplier += (demandScore - utils.DefaultDemandScore) / utils.DefaultDemandScore * 0.2
		multiplier = utils.Clamp(multiplier, utils.MarketMultiplierFloor, utils.MarketMultiplierCeiling)
		record("Market trend", multiplier)
	}

	if len(signals.competitors) > 0 && property.BasePrice > 0 {
		var sum float64
		for _, snapshot := range signals.competitors {
			sum += snapshot.Price
		}
		ratio := sum / float64(len(signals.competitors)) / property.BasePrice

		multiplier := 1.0
		switch {
		case ratio > utils.CompetitorHighRatio:
			multiplier = 1.1
		case ratio < utils.CompetitorLowRatio:
			multiplier = 0.9
		}
		factors.CompetitorAdjustment = utils.ToPtr(multiplier)
		if multiplier != 1 {
			record("Competitor pricing", multiplier)
		}
	}

	if signals.occupancyOK {
		factors.OccupancyRate = utils.ToPtr(signals.occupancy)
		switch {
		case signals.occupancy > cfg.OccupancyThreshold:
			record("High occupancy", cfg.HighOccupancyMultiplier)
		case signals.occupancy < utils.LowOccupancyCutoff:
			record("Low occupancy", cfg.LowOccupancyMultiplier)
		}
	}

	leadDays := utils.DaysUntil(f.now(), date)
	factors.LeadTimeDays = utils.ToPtr(leadDays)
	switch {
	case leadDays <= utils.LastMinuteLeadDays:
		record("Last minute discount", cfg.LastMinuteDiscount)
	case leadDays >= utils.EarlyBirdLeadDays:
		record("Early bird rate", cfg.EarlyBirdMultiplier)
	}

	for i := range property.AmenityMultipliers {
		amenity := &property.AmenityMultipliers[i]
		if !utils.IsTrue(amenity.IsActive) || !amenity.AppliesTo(guestCount) {
			continue
		}
		record(amenity.Amenity, amenity.Multiplier)
	}

	appliedRuleCount := 0
	var fixedRules []*models.PricingRule
	for i := range property.PricingRules {
		rule := &property.PricingRules[i]
		if !utils.IsTrue(rule.IsActive) || !rule.AppliesTo(date, guestCount) {
			continue
		}
		appliedRuleCount++
		if rule.PriceType == models.PriceTypeFixedAmount {
			fixedRules = append(fixedRules, rule)
			continue
		}
		multiplier := rule.Multiplier()
		if multiplier == 1 {
			price *= multiplier
			continue
		}
		record(rule.Name, multiplier)
	}

	breakdown := f.location.Composite(property, date, signals.factors, signals.events, signals.weather)
	factors.LocationMultiplier = utils.ToPtr(breakdown.Composite)
	if breakdown.Composite != 1 {
		record("Location composite", breakdown.Composite)
	} else {
		price *= breakdown.Composite
	}

	for _, rule := range fixedRules {
		price += rule.Value
		applied = append(applied, fmt.Sprintf("%s: %+.2f", rule.Name, rule.Value))
	}

	price = utils.Clamp(price, cfg.MinPrice, cfg.MaxPrice)
	price = utils.Round2(price)

	confidence := confidenceScore(confidenceInputs{
		CompetitorCount:  len(signals.competitors),
		MarketTrend:      marketTrend,
		DemandScore:      demandScore,
		OccupancyRate:    signals.occupancy,
		AppliedRuleCount: appliedRuleCount,
	})

	return foldResult{
		finalPrice: price,
		applied:    applied,
		factors:    factors,
		confidence: confidence,
	}
}
