package marketdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Client fetches the raw CSV price table over HTTP.
type Client struct {
	url        string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a new CSV client for the given dataset URL.
func NewClient(url string, log zerolog.Logger) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log.With().Str("component", "csv_client").Logger(),
	}
}

// URL returns the dataset location this client fetches.
func (c *Client) URL() string {
	return c.url
}

// Fetch downloads the raw CSV payload, retrying transient failures with
// backoff.
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	backoffs := []time.Duration{200 * time.Millisecond, 500 * time.Millisecond, 1 * time.Second}

	var lastErr error
	for attempt := 0; attempt <= len(backoffs); attempt++ {
		payload, err := c.fetchOnce(ctx)
		if err == nil {
			c.log.Debug().Int("bytes", len(payload)).Int("attempt", attempt+1).Msg("Fetched dataset")
			return payload, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		if attempt < len(backoffs) {
			select {
			case <-time.After(backoffs[attempt]):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, fmt.Errorf("failed to fetch dataset from %s: %w", c.url, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/csv, text/plain, */*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 120))
		return nil, fmt.Errorf("dataset host returned %d: %s", resp.StatusCode, string(body))
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset body: %w", err)
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("dataset host returned an empty body")
	}
	return payload, nil
}
