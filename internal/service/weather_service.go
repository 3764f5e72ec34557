package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/cropdoctor/cropdoctor/internal/domain"
	"github.com/cropdoctor/cropdoctor/pkg/utils"
)

const defaultWeatherBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// WeatherService fetches current conditions and derives crop advice
// from them.
type WeatherService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewWeatherService creates a new weather service.
func NewWeatherService(apiKey string, logger *zap.Logger) *WeatherService {
	return &WeatherService{
		apiKey:  apiKey,
		baseURL: defaultWeatherBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// openWeatherResponse mirrors the fields of the OpenWeatherMap current
// weather payload that the advisory needs.
type openWeatherResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Name string `json:"name"`
}

// CurrentWeather fetches conditions at the given coordinates. Without
// an API key it returns demo conditions so the advisory flow still
// works in development; with a key, provider failures are returned to
// the caller for retry.
func (s *WeatherService) CurrentWeather(ctx context.Context, latitude, longitude float64) (domain.Weather, error) {
	if s.apiKey == "" {
		return s.demoWeather(), nil
	}

	url := fmt.Sprintf("%s?lat=%f&lon=%f&appid=%s&units=metric", s.baseURL, latitude, longitude, s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Weather{}, fmt.Errorf("weather: failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return domain.Weather{}, fmt.Errorf("weather: failed to reach provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Weather{}, fmt.Errorf("weather: provider returned status %d", resp.StatusCode)
	}

	var owResp openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&owResp); err != nil {
		return domain.Weather{}, fmt.Errorf("weather: failed to decode response: %w", err)
	}

	weather := domain.Weather{
		Location:    owResp.Name,
		Temperature: utils.RoundTo(owResp.Main.Temp, 1),
		Humidity:    owResp.Main.Humidity,
		Condition:   "Unknown",
	}
	if weather.Location == "" {
		weather.Location = "Unknown"
	}
	if len(owResp.Weather) > 0 {
		weather.Condition = owResp.Weather[0].Main
	}

	return weather, nil
}

// Advisory fetches current conditions and derives crop advice.
func (s *WeatherService) Advisory(ctx context.Context, latitude, longitude float64) (domain.WeatherAdvisory, error) {
	weather, err := s.CurrentWeather(ctx, latitude, longitude)
	if err != nil {
		return domain.WeatherAdvisory{}, err
	}

	if weather.IsDemo {
		s.logger.Debug("weather advisory served from demo conditions")
	}

	return domain.AdvisoryFor(weather), nil
}

// demoWeather returns mild fixed conditions for keyless development
// setups.
func (s *WeatherService) demoWeather() domain.Weather {
	return domain.Weather{
		Location:    "Your Location",
		Temperature: 28.0,
		Humidity:    65.0,
		Condition:   "Clear",
		IsDemo:      true,
	}
}
