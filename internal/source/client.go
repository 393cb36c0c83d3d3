// Package source is the HTTP boundary to the quote backend. The core only
// consumes the shapes defined here; transport failures surface as a single
// wrapped error and never crash computations that don't need the data.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	apperrors "metalwatch/internal/errors"
	"metalwatch/internal/logging"
	"metalwatch/internal/models"
	"metalwatch/internal/performance"
)

// QuoteSource is the read boundary the rest of the application depends on.
type QuoteSource interface {
	Latest(ctx context.Context, metal string) (models.Quote, error)
	Comparison(ctx context.Context, metal string) (models.ComparisonQuotes, error)
	History(ctx context.Context, metal, month string) (models.PriceHistory, error)
}

// Client fetches quotes over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *performance.RateLimiter
	logger  zerolog.Logger
}

// NewClient creates a quote source client.
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		limiter: performance.NewRateLimiter(5, 10),
		logger:  logger,
	}
}

// Latest returns the newest quote for a metal.
func (c *Client) Latest(ctx context.Context, metal string) (models.Quote, error) {
	var q models.Quote
	err := c.getJSON(ctx, fmt.Sprintf("/prices/%s/latest", url.PathEscape(metal)), &q)
	return q, err
}

// Comparison returns today's and yesterday's quotes for a metal.
func (c *Client) Comparison(ctx context.Context, metal string) (models.ComparisonQuotes, error) {
	var cq models.ComparisonQuotes
	err := c.getJSON(ctx, fmt.Sprintf("/prices/%s/comparison", url.PathEscape(metal)), &cq)
	return cq, err
}

// History returns the ordered quote run for a month, newest month when
// month is empty, plus the available-month index.
func (c *Client) History(ctx context.Context, metal, month string) (models.PriceHistory, error) {
	endpoint := fmt.Sprintf("/prices/%s/history", url.PathEscape(metal))
	if month != "" {
		endpoint += "?month=" + url.QueryEscape(month)
	}
	var h models.PriceHistory
	err := c.getJSON(ctx, endpoint, &h)
	return h, err
}

func (c *Client) getJSON(ctx context.Context, endpoint string, target interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return apperrors.NewTransportError(endpoint, 0, err)
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return apperrors.NewTransportError(endpoint, 0, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	logging.LogFetch(c.logger, endpoint, time.Since(start), err)
	if err != nil {
		return apperrors.NewTransportError(endpoint, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return apperrors.Wrapf(apperrors.ErrMetalNotFound, "%s", endpoint)
	}
	if resp.StatusCode != http.StatusOK {
		return apperrors.NewTransportError(endpoint, resp.StatusCode, nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return apperrors.NewTransportError(endpoint, 0, fmt.Errorf("decoding response: %w", err))
	}
	return nil
}
