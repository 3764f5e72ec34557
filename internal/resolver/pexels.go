package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultPexelsBaseURL = "https://api.pexels.com/v1"

// PexelsProvider searches the Pexels photo API. It is the primary
// provider; Pexels allows a higher request rate than Pixabay.
type PexelsProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewPexelsProvider creates a Pexels provider. An empty API key leaves
// the provider disabled: searches return no result without a network
// call.
func NewPexelsProvider(apiKey string) *PexelsProvider {
	return &PexelsProvider{
		apiKey:  apiKey,
		baseURL: defaultPexelsBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Name identifies the provider in logs.
func (p *PexelsProvider) Name() string { return "pexels" }

type pexelsResponse struct {
	Photos []struct {
		Src struct {
			Large string `json:"large"`
		} `json:"src"`
	} `json:"photos"`
}

// Search returns the large URL of the first matching photo, or "" when
// nothing matches.
func (p *PexelsProvider) Search(ctx context.Context, cropName string) (string, error) {
	if p.apiKey == "" {
		return "", nil
	}

	query := url.QueryEscape(cropName + " crop plant")
	endpoint := fmt.Sprintf("%s/search?query=%s&per_page=1", p.baseURL, query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("pexels: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("pexels: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("pexels: API returned status %d", resp.StatusCode)
	}

	var parsed pexelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("pexels: failed to decode response: %w", err)
	}

	if len(parsed.Photos) == 0 {
		return "", nil
	}
	return parsed.Photos[0].Src.Large, nil
}
