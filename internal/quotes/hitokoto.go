package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Quote is a single daily quote with attribution.
type Quote struct {
	Text   string
	Author string
	Source string
}

// Provider defines the interface for quote providers.
type Provider interface {
	Fetch(ctx context.Context) (*Quote, error)
	Name() string
}

// HitokotoClient implements Provider using the Hitokoto API.
// API docs: https://developer.hitokoto.cn/
type HitokotoClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewHitokotoClient creates a new Hitokoto API client.
func NewHitokotoClient(baseURL string) *HitokotoClient {
	return &HitokotoClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
}

func (c *HitokotoClient) Name() string {
	return "hitokoto"
}

// Fetch retrieves one quote. Callers substitute fixed fallback content on
// any error; nothing here should abort a larger operation.
func (c *HitokotoClient) Fetch(ctx context.Context) (*Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch quote: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var apiResponse hitokotoResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	quote := &Quote{
		Text:   apiResponse.Hitokoto,
		Author: apiResponse.FromWho,
		Source: apiResponse.From,
	}
	if quote.Text == "" {
		quote.Text = "Life is what happens when you're busy making other plans."
	}
	if quote.Author == "" {
		quote.Author = "Unknown"
	}
	if quote.Source == "" {
		quote.Source = "Hitokoto API"
	}
	return quote, nil
}

type hitokotoResponse struct {
	Hitokoto string `json:"hitokoto"`
	FromWho  string `json:"from_who"`
	From     string `json:"from"`
}
