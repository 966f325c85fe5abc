package utils

import "time"

// Context keys shared between handlers and business flows
const (
	RequestIDKey  = "request_id"
	UserAgentKey  = "user_agent"
	IPAddressKey  = "ip_address"
	EndpointKey   = "endpoint"
	TimeoutKey    = "timeout"
	CancelFuncKey = "cancel_func"
)

// Signal selection windows
const (
	// MarketDataWindowDays is the half-width of the window used to pick the
	// most recent market snapshot around a stay date.
	MarketDataWindowDays = 7

	// CompetitorWindowDays is the half-width of the window used to average
	// competitor prices around a stay date.
	CompetitorWindowDays = 3

	// EventImpactWindowDays is the half-width of the window inside which a
	// local event affects a stay date.
	EventImpactWindowDays = 3
)

// Lead-time thresholds
const (
	LastMinuteLeadDays = 7
	EarlyBirdLeadDays  = 90
)

// Occupancy thresholds (percent)
const (
	LowOccupancyCutoff = 30.0
)

// Market multiplier bounds
const (
	MarketMultiplierFloor   = 0.5
	MarketMultiplierCeiling = 2.0
)

// Competitor price ratio thresholds
const (
	CompetitorHighRatio = 1.2
	CompetitorLowRatio  = 0.8
)

// Demand classification thresholds for the calendar view
const (
	HighDemandScore    = 70.0
	LowDemandScore     = 40.0
	DefaultDemandScore = 50.0
)

// Demand levels and their calendar colors
const (
	DemandLevelHigh    = "high"
	DemandLevelAverage = "average"
	DemandLevelLow     = "low"

	DemandColorHigh    = "red"
	DemandColorAverage = "yellow"
	DemandColorLow     = "green"
)

// Cache keys and TTLs
const (
	MonthDemandCacheTTL    = 15 * time.Minute
	MonthDemandCachePrefix = "pricing:month-demand"
)
