package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/mealcart/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client calls the external language-model extraction service that turns a
// free-text meal request into an ingredient list.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// extractRequest is the wire format sent to the extraction service.
type extractRequest struct {
	Text string `json:"text"`
}

// extractResponse is the wire format returned by the extraction service.
type extractResponse struct {
	Ingredients []domain.Ingredient `json:"ingredients"`
}

// NewClient creates a new extraction API client.
func NewClient(apiKey, baseURL string) *Client {
	// The extraction service allows 600 requests per hour:
	// 600/3600 ≈ 0.167 requests/sec, with a small burst.
	limiter := rate.NewLimiter(rate.Limit(0.167), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		rateLimiter: limiter,
	}
}

// SetDebug toggles request/response logging.
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// ExtractIngredients sends the meal text to the extraction service and
// returns the parsed ingredient list. Retries up to 3 times on transient
// failures with exponential backoff.
func (c *Client) ExtractIngredients(ctx context.Context, mealText string) ([]domain.Ingredient, error) {
	if strings.TrimSpace(mealText) == "" {
		return nil, fmt.Errorf("%w: empty meal text", domain.ErrExtractionFailure)
	}

	if c.debug {
		log.Printf("[EXTRACT] ExtractIngredients called with %d chars of meal text", len(mealText))
	}

	payload, err := json.Marshal(extractRequest{Text: mealText})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/v1/extract", c.baseURL)

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		// Wait for rate limiter
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
		}

		resp, err := c.doRequest(ctx, reqURL, payload)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if c.debug {
				log.Printf("[EXTRACT] request error (attempt %d): %v", attempt, err)
			}
			lastErr = err
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			if c.debug {
				log.Printf("[EXTRACT] API error (attempt %d) - status: %d, body: %s",
					attempt, resp.StatusCode, string(body))
			}
			if resp.StatusCode == http.StatusTooManyRequests {
				lastErr = domain.ErrRateLimited
			} else {
				lastErr = fmt.Errorf("%w: status %d", domain.ErrExtractionFailure, resp.StatusCode)
			}
			// Client errors other than rate limiting will not improve on retry.
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return nil, lastErr
			}
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		var extracted extractResponse
		if err := json.Unmarshal(body, &extracted); err != nil {
			return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrExtractionFailure, err)
		}

		if len(extracted.Ingredients) == 0 {
			return nil, fmt.Errorf("%w: no ingredients extracted", domain.ErrExtractionFailure)
		}

		if c.debug {
			log.Printf("[EXTRACT] extracted %d ingredients", len(extracted.Ingredients))
		}
		return extracted.Ingredients, nil
	}

	return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailure, lastErr)
}

// doRequest executes an HTTP POST request with proper headers.
func (c *Client) doRequest(ctx context.Context, reqURL string, payload []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "MealCart/1.0")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailure, err)
	}
	return resp, nil
}

// exponentialBackoff returns the wait before the next retry attempt.
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}
