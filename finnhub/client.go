// Package finnhub fetches historical stock candles from the Finnhub
// API (https://finnhub.io/docs/api#stock-candles) and caches them
// locally as CSV so repeat backtests never re-hit the network.
package finnhub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/rustyeddy/gobbletick/market"
)

// DefaultBaseURL is the production Finnhub REST endpoint.
const DefaultBaseURL = "https://finnhub.io/api/v1"

const (
	// Free-tier quota is 60 calls/min; stay at 1/s with a small burst.
	callsPerSec = 1
	burst       = 5

	maxRetries    = 3
	baseRetryWait = 500 * time.Millisecond
)

// Client is a Finnhub API client with rate limiting and retries.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a client. An empty baseURL selects production.
func NewClient(token, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(callsPerSec, burst),
	}
}

// CandlesRequest identifies one candle dataset. Either Count or the
// From/To range must be set; Count wins when both are.
type CandlesRequest struct {
	Symbol     string    // required, e.g. "SLAB"
	Resolution string    // required: 1, 5, 15, 30, 60, D, W, M
	Count      int       // number of most recent bars
	From       time.Time // range start (unix seconds on the wire)
	To         time.Time // range end
}

func (r CandlesRequest) Validate() error {
	if r.Symbol == "" {
		return fmt.Errorf("finnhub: symbol is required")
	}
	if r.Resolution == "" {
		return fmt.Errorf("finnhub: resolution is required")
	}
	if r.Count <= 0 && (r.From.IsZero() || r.To.IsZero()) {
		return fmt.Errorf("finnhub: need count or both from and to")
	}
	return nil
}

// ID is the deterministic identifier for this dataset, used as the
// cache file stem and the journal's dataset label.
// Examples: "SLAB_52W", "AAPL_1700000000_to_1710000000_by_D".
func (r CandlesRequest) ID() string {
	if r.Count > 0 {
		return fmt.Sprintf("%s_%d%s", r.Symbol, r.Count, r.Resolution)
	}
	return fmt.Sprintf("%s_%d_to_%d_by_%s", r.Symbol, r.From.Unix(), r.To.Unix(), r.Resolution)
}

// candlesResponse is the column-oriented wire format.
type candlesResponse struct {
	Open   []float64 `json:"o"`
	High   []float64 `json:"h"`
	Low    []float64 `json:"l"`
	Close  []float64 `json:"c"`
	Volume []float64 `json:"v"`
	Time   []int64   `json:"t"`
	Status string    `json:"s"` // "ok" or "no_data"
}

// Candles fetches candles from the API.
func (c *Client) Candles(ctx context.Context, req CandlesRequest) (*market.CandleSet, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("symbol", req.Symbol)
	params.Set("resolution", req.Resolution)
	if req.Count > 0 {
		params.Set("count", fmt.Sprintf("%d", req.Count))
	} else {
		params.Set("from", fmt.Sprintf("%d", req.From.Unix()))
		params.Set("to", fmt.Sprintf("%d", req.To.Unix()))
	}
	params.Set("token", c.token)

	apiURL := fmt.Sprintf("%s/stock/candle?%s", c.baseURL, params.Encode())

	var resp candlesResponse
	if err := c.get(ctx, apiURL, &resp); err != nil {
		return nil, err
	}

	if resp.Status != "ok" {
		return nil, fmt.Errorf("finnhub: no data for %s (status %q)", req.ID(), resp.Status)
	}
	n := len(resp.Time)
	if len(resp.Open) != n || len(resp.High) != n || len(resp.Low) != n || len(resp.Close) != n {
		return nil, fmt.Errorf("finnhub: ragged candle response for %s", req.ID())
	}

	candles := make([]market.Candle, 0, n)
	for i := 0; i < n; i++ {
		vol := 0.0
		if i < len(resp.Volume) {
			vol = resp.Volume[i]
		}
		candles = append(candles, market.Candle{
			Time:   time.Unix(resp.Time[i], 0).UTC(),
			Open:   resp.Open[i],
			High:   resp.High[i],
			Low:    resp.Low[i],
			Close:  resp.Close[i],
			Volume: vol,
		})
	}

	return &market.CandleSet{
		Symbol:     req.Symbol,
		Resolution: req.Resolution,
		Candles:    candles,
	}, nil
}

// get performs a rate-limited GET with retries on 429 and 5xx.
func (c *Client) get(ctx context.Context, apiURL string, out any) error {
	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("finnhub: rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
		if err != nil {
			return fmt.Errorf("finnhub: create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			if attempt == maxRetries {
				return fmt.Errorf("finnhub: request failed after %d retries: %w", maxRetries, err)
			}
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			resp.Body.Close()
			if attempt == maxRetries {
				return fmt.Errorf("finnhub: status %d after %d retries", resp.StatusCode, maxRetries)
			}
			slog.Warn("finnhub retrying", "status", resp.StatusCode, "attempt", attempt+1)
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return fmt.Errorf("finnhub: API error (status %d): %s", resp.StatusCode, string(body))
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("finnhub: decode response: %w", err)
		}
		return nil
	}
}

func (c *Client) sleep(ctx context.Context, attempt int) {
	wait := baseRetryWait << attempt
	select {
	case <-ctx.Done():
	case <-time.After(wait):
	}
}
