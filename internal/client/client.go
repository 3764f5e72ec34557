// Package client provides a typed HTTP client for the crop doctor API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cropdoctor/cropdoctor/internal/domain"
)

// DetectTimeout bounds a single disease detection round trip. Vision
// analysis is slow, so this is far above the default request timeout.
const DetectTimeout = 60 * time.Second

// quickTimeout bounds history, weather and health requests.
const quickTimeout = 15 * time.Second

// ErrTimeout reports that a request exceeded its timeout. Callers may
// retry the same call; the server keeps no partial state for failed
// detections.
var ErrTimeout = errors.New("client: request timed out")

// APIError is a non-2xx response from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("client: API returned status %d: %s", e.Status, e.Message)
}

// Client calls the crop doctor backend.
type Client struct {
	baseURL    string
	httpClient *http.Client

	detectTimeout time.Duration
	fetchTimeout  time.Duration
}

// New creates a client for the given base URL, e.g.
// "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		httpClient:    &http.Client{},
		detectTimeout: DetectTimeout,
		fetchTimeout:  quickTimeout,
	}
}

// DetectRequest is the detect-disease request body.
type DetectRequest struct {
	Image    string `json:"image"`
	CropType string `json:"crop_type"`
	Language string `json:"language"`
}

// HealthStatus is the health endpoint payload.
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// DetectDisease submits a base64 crop image for analysis and returns
// the stored detection record. The call is side-effect free on
// failure, so callers can retry the same arguments.
func (c *Client) DetectDisease(ctx context.Context, image, cropType, language string) (domain.DetectionRecord, error) {
	body, err := json.Marshal(DetectRequest{
		Image:    image,
		CropType: cropType,
		Language: language,
	})
	if err != nil {
		return domain.DetectionRecord{}, fmt.Errorf("client: failed to marshal request: %w", err)
	}

	var record domain.DetectionRecord
	if err := c.do(ctx, http.MethodPost, "/api/detect-disease", body, &record, c.detectTimeout); err != nil {
		return domain.DetectionRecord{}, err
	}
	return record, nil
}

// History fetches the newest stored detections.
func (c *Client) History(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	path := "/api/history"
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}

	var entries []domain.HistoryEntry
	if err := c.do(ctx, http.MethodGet, path, nil, &entries, c.fetchTimeout); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}
	return entries, nil
}

// WeatherAdvisory fetches weather-derived crop advice for coordinates.
func (c *Client) WeatherAdvisory(ctx context.Context, latitude, longitude float64, cropType string) (domain.WeatherAdvisory, error) {
	path := fmt.Sprintf("/api/weather-advisory?latitude=%f&longitude=%f&crop_type=%s",
		latitude, longitude, url.QueryEscape(cropType))

	var advisory domain.WeatherAdvisory
	if err := c.do(ctx, http.MethodGet, path, nil, &advisory, c.fetchTimeout); err != nil {
		return domain.WeatherAdvisory{}, err
	}
	return advisory, nil
}

// Health fetches the backend health payload.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	var health HealthStatus
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &health, c.fetchTimeout); err != nil {
		return HealthStatus{}, err
	}
	return health, nil
}

// do runs one request with the given timeout and decodes the response
// into out. Non-2xx responses become *APIError; timeouts map to
// ErrTimeout.
func (c *Client) do(ctx context.Context, method, path string, body []byte, out any, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("client: failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return fmt.Errorf("client: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: failed to decode response: %w", err)
	}
	return nil
}

// isTimeout reports whether the request error is a deadline or network
// timeout.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr) && urlErr.Timeout()
}

// apiError parses the API's error envelope, falling back to the raw
// body when the envelope is absent.
func apiError(resp *http.Response) *APIError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Message != "" {
		return &APIError{Status: resp.StatusCode, Message: envelope.Message}
	}

	message := strings.TrimSpace(string(raw))
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Message: message}
}
