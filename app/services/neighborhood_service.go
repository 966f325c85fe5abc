package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/Landcsgirl1999/hostthub-pricing/config"
	"github.com/Landcsgirl1999/hostthub-pricing/models"
)

// NeighborhoodService resolves a property's derived location scores
// (attraction/transit proximity, safety, walkability, each 0-100).
// When no data source can score the property, neutral mid-scale scores
// are returned so the locale multiplier stays close to 1.
type NeighborhoodService interface {
	FactorsFor(ctx context.Context, property *models.Property) (models.LocationFactors, error)
}

// NeighborhoodServiceImpl implements NeighborhoodService against a
// geocoding/walk-score style HTTP API with a per-city static fallback.
type NeighborhoodServiceImpl struct {
	config *config.GeocodingConfig
	client *http.Client
}

// neighborhoodAPIResponse represents the scores API payload
type neighborhoodAPIResponse struct {
	ProximityToAttractions    float64 `json:"proximity_to_attractions"`
	ProximityToTransportation float64 `json:"proximity_to_transportation"`
	SafetyScore               float64 `json:"safety_score"`
	WalkabilityScore          float64 `json:"walkability_score"`
}

// NewNeighborhoodService creates a new neighborhood service instance
func NewNeighborhoodService(cfg *config.GeocodingConfig) NeighborhoodService {
	return &NeighborhoodServiceImpl{
		config: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// FactorsFor resolves scores for the property, falling back to the static
// city table and finally to neutral scores.
func (s *NeighborhoodServiceImpl) FactorsFor(ctx context.Context, property *models.Property) (models.LocationFactors, error) {
	factors := fallbackFactors(property)

	if !s.config.Enabled || property.Latitude == nil || property.Longitude == nil {
		return factors, nil
	}

	reqURL := fmt.Sprintf("%s/scores?lat=%f&lon=%f&city=%s",
		s.config.BaseURL, *property.Latitude, *property.Longitude, url.QueryEscape(property.City))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return factors, fmt.Errorf("failed to create neighborhood request: %w", err)
	}
	req.Header.Set("x-api-key", s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("Neighborhood lookup failed, using static scores: %v", err)
		return factors, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Neighborhood lookup returned status %d, using static scores", resp.StatusCode)
		return factors, nil
	}

	var payload neighborhoodAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("Neighborhood payload decode failed, using static scores: %v", err)
		return factors, nil
	}

	factors.ProximityToAttractions = clampScore(payload.ProximityToAttractions)
	factors.ProximityToTransportation = clampScore(payload.ProximityToTransportation)
	factors.SafetyScore = clampScore(payload.SafetyScore)
	factors.WalkabilityScore = clampScore(payload.WalkabilityScore)
	return factors, nil
}

// cityScores are static fallbacks for markets where the scores API has
// no coverage yet.
var cityScores = map[string]neighborhoodAPIResponse{
	"new york":      {ProximityToAttractions: 90, ProximityToTransportation: 95, SafetyScore: 60, WalkabilityScore: 95},
	"san francisco": {ProximityToAttractions: 85, ProximityToTransportation: 85, SafetyScore: 55, WalkabilityScore: 90},
	"miami":         {ProximityToAttractions: 85, ProximityToTransportation: 60, SafetyScore: 55, WalkabilityScore: 70},
	"orlando":       {ProximityToAttractions: 90, ProximityToTransportation: 45, SafetyScore: 60, WalkabilityScore: 45},
	"denver":        {ProximityToAttractions: 65, ProximityToTransportation: 55, SafetyScore: 70, WalkabilityScore: 60},
	"austin":        {ProximityToAttractions: 70, ProximityToTransportation: 50, SafetyScore: 70, WalkabilityScore: 55},
	"nashville":     {ProximityToAttractions: 75, ProximityToTransportation: 45, SafetyScore: 65, WalkabilityScore: 50},
}

func fallbackFactors(property *models.Property) models.LocationFactors {
	factors := models.NeutralLocationFactors(property.City, property.State)
	if property.Latitude != nil {
		factors.Latitude = *property.Latitude
	}
	if property.Longitude != nil {
		factors.Longitude = *property.Longitude
	}
	if scores, ok := cityScores[strings.ToLower(property.City)]; ok {
		factors.ProximityToAttractions = scores.ProximityToAttractions
		factors.ProximityToTransportation = scores.ProximityToTransportation
		factors.SafetyScore = scores.SafetyScore
		factors.WalkabilityScore = scores.WalkabilityScore
	}
	return factors
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// MockNeighborhoodService implements NeighborhoodService for testing
type MockNeighborhoodService struct {
	Factors models.LocationFactors
	HasData bool
	Err     error
}

// NewMockNeighborhoodService creates a new mock neighborhood service
func NewMockNeighborhoodService() *MockNeighborhoodService {
	return &MockNeighborhoodService{}
}

func (m *MockNeighborhoodService) FactorsFor(ctx context.Context, property *models.Property) (models.LocationFactors, error) {
	if m.Err != nil {
		return models.LocationFactors{}, m.Err
	}
	if !m.HasData {
		return models.NeutralLocationFactors(property.City, property.State), nil
	}
	return m.Factors, nil
}
