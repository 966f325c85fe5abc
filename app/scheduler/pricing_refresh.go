// Package scheduler contains background jobs for the pricing service
package scheduler

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/Landcsgirl1999/hostthub-pricing/app/dto"
	businessflow "github.com/Landcsgirl1999/hostthub-pricing/business_flow"
	"github.com/Landcsgirl1999/hostthub-pricing/config"
	"github.com/Landcsgirl1999/hostthub-pricing/repository"
	"github.com/Landcsgirl1999/hostthub-pricing/utils"
	"golang.org/x/sync/errgroup"
)

// PricingRefreshScheduler periodically recomputes the current month's
// prices for every active property so that pricing history and the
// calendar cache stay warm without waiting for API traffic.
type PricingRefreshScheduler struct {
	propertyRepo repository.PropertyRepository
	calendarFlow businessflow.CalendarFlow
	interval     time.Duration
	batchSize    int
	logger       *log.Logger
}

// NewPricingRefreshScheduler creates a new refresh scheduler
func NewPricingRefreshScheduler(
	propertyRepo repository.PropertyRepository,
	calendarFlow businessflow.CalendarFlow,
	cfg config.SchedulerConfig,
) *PricingRefreshScheduler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 20
	}

	return &PricingRefreshScheduler{
		propertyRepo: propertyRepo,
		calendarFlow: calendarFlow,
		interval:     interval,
		batchSize:    batchSize,
		logger:       log.Default(),
	}
}

// Start launches the refresh loop and returns a cancel function.
func (s *PricingRefreshScheduler) Start(parent context.Context) func() {
	ctx, cancel := context.WithCancel(parent)

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.runOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.runOnce(ctx)
			}
		}
	}()

	return cancel
}

// runOnce recomputes the current month for all active properties, a
// bounded batch at a time.
func (s *PricingRefreshScheduler) runOnce(ctx context.Context) {
	started := utils.UTCNow()
	properties, err := s.propertyRepo.ListActive(ctx)
	if err != nil {
		s.logger.Printf("scheduler: failed to list active properties: %v", err)
		return
	}

	now := utils.UTCNow()
	var refreshed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchSize)
	for _, property := range properties {
		g.Go(func() error {
			_, err := s.calendarFlow.ComputeMonthDemand(gctx, &dto.MonthDemandRequest{
				PropertyID: property.UUID.String(),
				Year:       now.Year(),
				Month:      int(now.Month()),
			}, businessflow.NewClientMetadata("scheduler", "pricing-refresh"))
			if err != nil {
				s.logger.Printf("scheduler: refresh failed for property %s: %v", property.UUID, err)
				return nil
			}
			refreshed.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	s.logger.Printf("scheduler: refreshed %d/%d properties in %s", refreshed.Load(), len(properties), time.Since(started).Round(time.Millisecond))
}
