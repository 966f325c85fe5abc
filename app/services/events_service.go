package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/Landcsgirl1999/hostthub-pricing/config"
	"github.com/Landcsgirl1999/hostthub-pricing/models"
)

// LocalEventsService provides local events and holidays near a city for
// a date. Absence of events is an empty slice, never an error.
type LocalEventsService interface {
	EventsNear(ctx context.Context, city, state string, date time.Time) ([]models.HolidayEvent, error)
}

// LocalEventsServiceImpl implements LocalEventsService. It queries an
// events API when configured and always folds in the built-in holiday
// calendar so pricing still sees major holidays when the API is down.
type LocalEventsServiceImpl struct {
	config *config.EventsConfig
	client *http.Client
}

// eventsAPIResponse represents the events API payload
type eventsAPIResponse struct {
	Events []struct {
		Name       string  `json:"name"`
		Date       string  `json:"date"`
		Type       string  `json:"type"`
		Impact     string  `json:"impact"`
		Multiplier float64 `json:"multiplier"`
	} `json:"events"`
}

// NewLocalEventsService creates a new local events service instance
func NewLocalEventsService(cfg *config.EventsConfig) LocalEventsService {
	return &LocalEventsServiceImpl{
		config: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// EventsNear returns the events near a city whose dates could affect the
// given stay date.
func (s *LocalEventsServiceImpl) EventsNear(ctx context.Context, city, state string, date time.Time) ([]models.HolidayEvent, error) {
	events := holidaysAround(date)

	if !s.config.Enabled {
		return events, nil
	}

	reqURL := fmt.Sprintf("%s/events?city=%s&state=%s&date=%s",
		s.config.BaseURL, url.QueryEscape(city), url.QueryEscape(state), date.Format("2006-01-02"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return events, fmt.Errorf("failed to create events request: %w", err)
	}
	req.Header.Set("x-api-key", s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("Events lookup failed, using holiday calendar only: %v", err)
		return events, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Events lookup returned status %d, using holiday calendar only", resp.StatusCode)
		return events, nil
	}

	var payload eventsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("Events payload decode failed, using holiday calendar only: %v", err)
		return events, nil
	}

	for _, e := range payload.Events {
		eventDate, err := time.Parse("2006-01-02", e.Date)
		if err != nil {
			continue
		}
		impact := models.EventImpact(e.Impact)
		if !impact.Valid() {
			impact = models.EventImpactLow
		}
		multiplier := e.Multiplier
		if multiplier <= 0 {
			multiplier = 1
		}
		events = append(events, models.HolidayEvent{
			Name:       e.Name,
			Date:       eventDate,
			Type:       e.Type,
			Impact:     impact,
			Multiplier: multiplier,
		})
	}
	return events, nil
}

// fixedHoliday is a holiday that falls on the same month/day every year
type fixedHoliday struct {
	name       string
	month      time.Month
	day        int
	impact     models.EventImpact
	multiplier float64
}

var fixedHolidays = []fixedHoliday{
	{"New Year's Day", time.January, 1, models.EventImpactHigh, 1.4},
	{"Valentine's Day", time.February, 14, models.EventImpactMedium, 1.2},
	{"Memorial Day Weekend", time.May, 25, models.EventImpactHigh, 1.3},
	{"Independence Day", time.July, 4, models.EventImpactHigh, 1.5},
	{"Labor Day Weekend", time.September, 1, models.EventImpactHigh, 1.3},
	{"Halloween", time.October, 31, models.EventImpactLow, 1.1},
	{"Thanksgiving", time.November, 26, models.EventImpactHigh, 1.4},
	{"Christmas Eve", time.December, 24, models.EventImpactHigh, 1.5},
	{"Christmas Day", time.December, 25, models.EventImpactHigh, 1.5},
	{"New Year's Eve", time.December, 31, models.EventImpactHigh, 1.6},
}

// holidaysAround returns built-in calendar holidays dated within the
// years adjacent to the date, so year-end stays still see January 1.
func holidaysAround(date time.Time) []models.HolidayEvent {
	var events []models.HolidayEvent
	for _, year := range []int{date.Year() - 1, date.Year(), date.Year() + 1} {
		for _, h := range fixedHolidays {
			d := time.Date(year, h.month, h.day, 0, 0, 0, 0, time.UTC)
			// Keep the list small: only holidays near the query date matter.
			if abs(int(d.Sub(date).Hours()/24)) > 31 {
				continue
			}
			events = append(events, models.HolidayEvent{
				Name:       h.name,
				Date:       d,
				Type:       "holiday",
				Impact:     h.impact,
				Multiplier: h.multiplier,
			})
		}
	}
	return events
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// MockLocalEventsService implements LocalEventsService for testing
type MockLocalEventsService struct {
	Events []models.HolidayEvent
}

// NewMockLocalEventsService creates a new mock events service
func NewMockLocalEventsService() *MockLocalEventsService {
	return &MockLocalEventsService{}
}

func (m *MockLocalEventsService) EventsNear(ctx context.Context, city, state string, date time.Time) ([]models.HolidayEvent, error) {
	return m.Events, nil
}
