package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mgdevhub/gym-meals/internal/model"

	"github.com/goccy/go-json"
)

const visionPrompt = `You are a nutritional analysis engine. Look at the image.
If it does not show food, a beverage or a supplement, return exactly:
{"is_food": false}
Otherwise return a single JSON object:
{"is_food": true, "name": "<short dish name>", "calories": <int kcal>,
"protein": <grams>, "carbs": <grams>, "fat": <grams>,
"verdict": "<one blunt coaching sentence>", "score": <0-100>}
Return JSON only, no prose, no markdown.`

type VisionConfig struct {
	APIKey  string `yaml:"apiKey"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"baseUrl"`
}

// GeminiVisionClient calls the hosted vision model's generateContent
// endpoint. The prompt/response contract stays opaque to the rest of the
// app; only the parsed estimate shape leaves this file.
type GeminiVisionClient struct {
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string
}

func NewGeminiVisionClient(cfg VisionConfig) *GeminiVisionClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}
	return &GeminiVisionClient{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		baseURL:    baseURL,
	}
}

type generateContentRequest struct {
	Contents         []visionContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type visionContent struct {
	Parts []visionPart `json:"parts"`
}

type visionPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type visionEstimate struct {
	IsFood   bool    `json:"is_food"`
	Name     string  `json:"name"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Verdict  string  `json:"verdict"`
	Score    int     `json:"score"`
}

func (c *GeminiVisionClient) AnalyzeFoodPhoto(ctx context.Context, imageBase64, mimeType string) (*model.FoodAnalysis, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	reqBody := generateContentRequest{
		Contents: []visionContent{{
			Parts: []visionPart{
				{Text: visionPrompt},
				{InlineData: &inlineData{MimeType: mimeType, Data: imageBase64}},
			},
		}},
		GenerationConfig: generationConfig{Temperature: 0, MaxOutputTokens: 2048},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode vision request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vision request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read vision response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vision api returned status %d", resp.StatusCode)
	}

	var gcr generateContentResponse
	if err := json.Unmarshal(body, &gcr); err != nil {
		return nil, fmt.Errorf("failed to decode vision response: %w", err)
	}
	if len(gcr.Candidates) == 0 || len(gcr.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty vision response")
	}

	text := stripCodeFence(gcr.Candidates[0].Content.Parts[0].Text)

	var estimate visionEstimate
	if err := json.Unmarshal([]byte(text), &estimate); err != nil {
		return nil, fmt.Errorf("unparseable vision estimate: %w", err)
	}
	if !estimate.IsFood {
		return nil, ErrNotFood
	}

	return &model.FoodAnalysis{
		Name:     estimate.Name,
		Calories: estimate.Calories,
		Protein:  estimate.Protein,
		Carbs:    estimate.Carbs,
		Fat:      estimate.Fat,
		Verdict:  estimate.Verdict,
		Score:    estimate.Score,
	}, nil
}

// stripCodeFence removes a ```json ... ``` wrapper the model sometimes
// adds despite the prompt.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
