package businessflow

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds client-related information for request tracking
type ClientMetadata struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	RequestID string `json:"request_id,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
}

// parseDate parses a YYYY-MM-DD string into a UTC date.
func parseDate(value string) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

var (
	priceComputationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_computations_total",
		Help: "Total price computations by outcome",
	}, []string{"outcome"})

	priceComputationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pricing_computation_duration_seconds",
		Help:    "Duration of single-night price computations",
		Buckets: prometheus.DefBuckets,
	})

	monthDemandCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_month_demand_cache_total",
		Help: "Month demand cache lookups by result",
	}, []string{"result"})
)
