// Package catalog talks to the upstream book source: a JSON service exposing
// the full book collection at /books. The service owns no book data itself;
// every listing starts from a fresh fetch, optionally short-circuited by a
// redis cache.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"booktime/internal/models"
)

const rateBurst = 10

// Client fetches the book collection with client-side rate limiting so a
// burst of UI refreshes cannot hammer the upstream service.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

func NewClient(baseURL string, requestsPerSecond float64) *Client {
	return &Client{
		baseURL:     baseURL,
		rateLimiter: rate.NewLimiter(rate.Limit(requestsPerSecond), rateBurst),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Books fetches the full collection. The upstream has no pagination or
// filtering; the response is decoded into the typed Book shape at the
// boundary so malformed upstream data surfaces as an error here, not as a
// panic deeper in.
func (c *Client) Books(ctx context.Context) ([]models.Book, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/books", nil)
	if err != nil {
		return nil, fmt.Errorf("build books request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch books: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch books: upstream returned %d: %s", resp.StatusCode, body)
	}

	var books []models.Book
	if err := json.NewDecoder(resp.Body).Decode(&books); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}
	if books == nil {
		books = []models.Book{}
	}
	return books, nil
}
