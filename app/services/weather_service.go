// Package services provides external service integrations and technical concerns like weather, events and geocoding lookups
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Landcsgirl1999/hostthub-pricing/config"
	"github.com/Landcsgirl1999/hostthub-pricing/models"
)

// WeatherService provides forecast data for a coordinate and date.
// Missing data is reported via Found=false, never as an error: the
// pricing pipeline treats absent weather as a neutral multiplier.
type WeatherService interface {
	ForecastFor(ctx context.Context, lat, lon float64, date time.Time) (models.WeatherObservation, error)
}

// WeatherServiceImpl implements WeatherService against an HTTP forecast API
type WeatherServiceImpl struct {
	config *config.WeatherConfig
	client *http.Client
}

// weatherAPIResponse represents the forecast API payload
type weatherAPIResponse struct {
	Daily []struct {
		Date         string  `json:"date"`
		TemperatureF float64 `json:"temperature_f"`
		Condition    string  `json:"condition"`
	} `json:"daily"`
}

// NewWeatherService creates a new weather service instance
func NewWeatherService(cfg *config.WeatherConfig) WeatherService {
	return &WeatherServiceImpl{
		config: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// ForecastFor fetches the forecast for a coordinate and date. Transport
// failures and empty payloads degrade to Found=false so a slow or down
// provider never fails a price computation.
func (s *WeatherServiceImpl) ForecastFor(ctx context.Context, lat, lon float64, date time.Time) (models.WeatherObservation, error) {
	if !s.config.Enabled {
		return models.WeatherObservation{}, nil
	}

	url := fmt.Sprintf("%s/forecast?lat=%f&lon=%f&date=%s", s.config.BaseURL, lat, lon, date.Format("2006-01-02"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.WeatherObservation{}, fmt.Errorf("failed to create weather request: %w", err)
	}
	req.Header.Set("x-api-key", s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("Weather lookup failed, continuing without weather signal: %v", err)
		return models.WeatherObservation{}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Weather lookup returned status %d, continuing without weather signal", resp.StatusCode)
		return models.WeatherObservation{}, nil
	}

	var payload weatherAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("Weather payload decode failed, continuing without weather signal: %v", err)
		return models.WeatherObservation{}, nil
	}

	target := date.Format("2006-01-02")
	for _, day := range payload.Daily {
		if day.Date == target {
			return models.WeatherObservation{
				TemperatureF: day.TemperatureF,
				Condition:    day.Condition,
				Found:        true,
			}, nil
		}
	}
	return models.WeatherObservation{}, nil
}

// MockWeatherService implements WeatherService for testing
type MockWeatherService struct {
	Observation models.WeatherObservation
}

// NewMockWeatherService creates a new mock weather service
func NewMockWeatherService() *MockWeatherService {
	return &MockWeatherService{}
}

func (m *MockWeatherService) ForecastFor(ctx context.Context, lat, lon float64, date time.Time) (models.WeatherObservation, error) {
	return m.Observation, nil
}
