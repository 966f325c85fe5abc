package businessflow

import "github.com/Landcsgirl1999/hostthub-pricing/utils"

// confidenceInputs summarizes how much real signal backed a computation.
type confidenceInputs struct {
	CompetitorCount  int
	MarketTrend      float64
	DemandScore      float64
	OccupancyRate    float64
	AppliedRuleCount int
}

// confidenceScore starts at the 0.5 baseline and adds a fixed increment
// per signal class that actually contributed, capped at 1.0.
func confidenceScore(in confidenceInputs) float64 {
	score := 0.5
	if in.CompetitorCount > 0 {
		score += 0.2
	}
	if in.MarketTrend != 0 {
		score += 0.1
	}
	if in.DemandScore > 0 {
		score += 0.1
	}
	if in.OccupancyRate > 0 {
		score += 0.1
	}
	if in.AppliedRuleCount > 0 {
		score += min(0.1, float64(in.AppliedRuleCount)*0.02)
	}
	return utils.Clamp(score, 0, 1)
}
