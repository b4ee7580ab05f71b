// Package quotes fetches motivational quotes from an external quote API,
// keyed off an emotion label.
package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/your-org/emoup/internal/config"
	"github.com/your-org/emoup/internal/models"
)

const defaultBaseURL = "https://api.quotable.io"

// tagsByEmotion maps our emotion labels onto the quote API's tag vocabulary.
// Low moods get lifting tags; everything else gets general inspiration.
var tagsByEmotion = map[models.EmotionLabel]string{
	models.EmotionSad:      "hope",
	models.EmotionAngry:    "calm",
	models.EmotionFear:     "courage",
	models.EmotionDisgust:  "perspective",
	models.EmotionHappy:    "happiness",
	models.EmotionSurprise: "wisdom",
	models.EmotionNeutral:  "inspirational",
}

// Quote is a single retrieved quote.
type Quote struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

// Client talks to the quote API with a client-side rate cap, as the free
// tiers of these services throttle aggressively.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(cfg config.QuotesConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), 1),
	}
}

// Random fetches a random quote tagged for the given emotion.
func (c *Client) Random(ctx context.Context, emotion models.EmotionLabel) (*Quote, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	tag := tagsByEmotion[emotion]
	if tag == "" {
		tag = tagsByEmotion[models.EmotionNeutral]
	}

	reqURL := fmt.Sprintf("%s/random?tags=%s", c.baseURL, url.QueryEscape(tag))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build quote request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch quote: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote API returned HTTP %d", resp.StatusCode)
	}

	var q Quote
	if err := json.NewDecoder(resp.Body).Decode(&q); err != nil {
		return nil, fmt.Errorf("decode quote: %w", err)
	}
	return &q, nil
}
