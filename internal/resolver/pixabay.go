package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultPixabayBaseURL = "https://pixabay.com/api/"

// PixabayProvider searches the Pixabay photo API, used as the fallback
// when Pexels yields nothing.
type PixabayProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewPixabayProvider creates a Pixabay provider. An empty API key
// leaves the provider disabled: searches return no result without a
// network call.
func NewPixabayProvider(apiKey string) *PixabayProvider {
	return &PixabayProvider{
		apiKey:  apiKey,
		baseURL: defaultPixabayBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Name identifies the provider in logs.
func (p *PixabayProvider) Name() string { return "pixabay" }

type pixabayResponse struct {
	Hits []struct {
		LargeImageURL string `json:"largeImageURL"`
	} `json:"hits"`
}

// Search returns the large URL of the first matching photo, or "" when
// nothing matches. Pixabay rejects per_page below 3, so the minimum is
// requested and only the first hit used.
func (p *PixabayProvider) Search(ctx context.Context, cropName string) (string, error) {
	if p.apiKey == "" {
		return "", nil
	}

	query := url.QueryEscape(cropName + " crop plant")
	endpoint := fmt.Sprintf("%s?key=%s&q=%s&image_type=photo&per_page=3", p.baseURL, p.apiKey, query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("pixabay: failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("pixabay: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("pixabay: API returned status %d", resp.StatusCode)
	}

	var parsed pixabayResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("pixabay: failed to decode response: %w", err)
	}

	if len(parsed.Hits) == 0 {
		return "", nil
	}
	return parsed.Hits[0].LargeImageURL, nil
}
