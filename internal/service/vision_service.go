package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cropdoctor/cropdoctor/internal/domain"
	"github.com/cropdoctor/cropdoctor/internal/imaging"
)

const (
	defaultVisionBaseURL = "https://api.openai.com/v1"
	defaultVisionModel   = "gpt-4o"

	visionMaxAttempts = 3
	visionBackoffBase = 2 * time.Second

	systemInstruction = "You are an expert agricultural pathologist specializing in crop disease identification. " +
		"Provide detailed, accurate disease diagnosis and treatment recommendations."
)

// VisionService analyzes crop images through an OpenAI-compatible
// vision chat completions API.
type VisionService struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewVisionService creates a new vision analysis service. Empty baseURL
// or model fall back to the OpenAI defaults.
func NewVisionService(apiKey, baseURL, model string, logger *zap.Logger) *VisionService {
	if baseURL == "" {
		baseURL = defaultVisionBaseURL
	}
	if model == "" {
		model = defaultVisionModel
	}
	return &VisionService{
		apiKey:     apiKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: 55 * time.Second},
		logger:     logger,
	}
}

// Ready reports whether the service has credentials to reach the model.
func (s *VisionService) Ready() bool {
	return s.apiKey != ""
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *imageURLPart `json:"image_url,omitempty"`
}

type imageURLPart struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Analyze sends the normalized image to the vision model and returns
// its diagnosis. Transport and API errors are returned to the caller;
// a reply that is not parseable JSON degrades to a fallback diagnosis
// instead of failing the request.
func (s *VisionService) Analyze(ctx context.Context, imageB64 string, crop domain.Crop, lang domain.Language) (domain.Diagnosis, error) {
	if s.apiKey == "" {
		return domain.Diagnosis{}, fmt.Errorf("vision: no API key configured")
	}

	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: []contentPart{{Type: "text", Text: systemInstruction}},
			},
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: buildDiagnosisPrompt(crop, lang)},
					{Type: "image_url", ImageURL: &imageURLPart{URL: imaging.DataURL(imageB64)}},
				},
			},
		},
		MaxTokens: 1500,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return domain.Diagnosis{}, fmt.Errorf("vision: failed to marshal request: %w", err)
	}

	content, err := s.complete(ctx, body)
	if err != nil {
		return domain.Diagnosis{}, err
	}

	diagnosis := parseDiagnosis(content)
	diagnosis.Normalize()
	return diagnosis, nil
}

// complete posts the chat request, retrying transient failures with
// exponential backoff, and returns the first choice's content.
func (s *VisionService) complete(ctx context.Context, body []byte) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= visionMaxAttempts; attempt++ {
		content, retryable, err := s.completeOnce(ctx, body)
		if err == nil {
			return content, nil
		}
		lastErr = err

		if !retryable {
			return "", err
		}

		if attempt < visionMaxAttempts {
			backoff := visionBackoffBase * time.Duration(1<<(attempt-1))
			s.logger.Warn("vision request failed, retrying",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
				zap.Error(err))

			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return "", lastErr
}

// completeOnce performs a single chat completion round trip. The second
// return value reports whether the failure is worth retrying.
func (s *VisionService) completeOnce(ctx context.Context, body []byte) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("vision: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("vision: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return "", retryable, fmt.Errorf("vision: API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", false, fmt.Errorf("vision: failed to decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", false, fmt.Errorf("vision: response contained no choices")
	}

	return parsed.Choices[0].Message.Content, false, nil
}

// buildDiagnosisPrompt assembles the analysis instruction for one crop,
// priming the model with the known diseases and the required JSON shape.
func buildDiagnosisPrompt(crop domain.Crop, lang domain.Language) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Analyze this %s plant/fruit leaf or fruit image for diseases.\n\n", crop)
	b.WriteString("You are an expert agricultural pathologist. Analyze the image carefully and identify any diseases, pests, or health issues.\n\n")
	b.WriteString("Common diseases by crop type:\n")

	for _, c := range domain.Crops {
		label := string(c)
		if c == domain.CropOrange {
			label = "Orange/Citrus"
		}
		fmt.Fprintf(&b, "- %s: %s\n", label, strings.Join(domain.CommonDiseases[c], ", "))
	}

	b.WriteString(`
Provide your response in the following JSON format:
{
    "disease_name": "Name of the disease (or 'Healthy' if no disease detected)",
    "confidence_score": 0.0-1.0,
    "treatment_steps": ["Step 1", "Step 2", "Step 3"],
    "fertilizer_suggestions": ["Fertilizer 1", "Fertilizer 2"],
    "prevention_tips": ["Tip 1", "Tip 2", "Tip 3"]
}

Be specific and practical. If the image shows a healthy plant/fruit, indicate that.
For fruits, also check for signs of rot, fungal infections, pest damage, or ripening issues.
`)
	fmt.Fprintf(&b, "Provide treatment in %s language context but keep JSON keys in English.", lang.Name())

	return b.String()
}

// parseDiagnosis extracts the structured diagnosis from the model's
// reply. Markdown fences and surrounding prose are tolerated; a reply
// with no usable JSON becomes a generic diagnosis carrying the raw
// text so the farmer still sees something actionable.
func parseDiagnosis(content string) domain.Diagnosis {
	cleaned := extractJSON(content)

	var diagnosis domain.Diagnosis
	if err := json.Unmarshal([]byte(cleaned), &diagnosis); err != nil || diagnosis.DiseaseName == "" {
		return fallbackDiagnosis(content)
	}
	return diagnosis
}

// extractJSON strips markdown code fences and trims the reply to the
// outermost brace pair.
func extractJSON(content string) string {
	cleaned := strings.TrimSpace(content)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		cleaned = cleaned[start : end+1]
	}
	return cleaned
}

// fallbackDiagnosis wraps an unparseable model reply in a usable record.
func fallbackDiagnosis(content string) domain.Diagnosis {
	summary := strings.TrimSpace(content)
	if runes := []rune(summary); len(runes) > 200 {
		summary = string(runes[:200])
	}
	if summary == "" {
		summary = "No analysis details available"
	}

	return domain.Diagnosis{
		DiseaseName:           "Analysis completed",
		ConfidenceScore:       0.75,
		TreatmentSteps:        []string{summary},
		FertilizerSuggestions: []string{"Consult local agricultural expert for specific recommendations"},
		PreventionTips:        []string{"Regular monitoring", "Proper irrigation", "Balanced fertilization"},
	}
}
