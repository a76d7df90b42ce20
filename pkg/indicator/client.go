package indicator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"tiendascan/pkg/config"
	"tiendascan/pkg/logger"
)

// ErrRateUnavailable is the soft failure of the rate lookup. Callers degrade
// to CLP-only display instead of aborting.
var ErrRateUnavailable = errors.New("dollar rate unavailable")

// Client fetches the current CLP per USD value from a mindicador-style API
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// serieResponse mirrors the relevant part of the mindicador payload
type serieResponse struct {
	Serie []struct {
		Fecha string  `json:"fecha"`
		Valor float64 `json:"valor"`
	} `json:"serie"`
}

// NewClient creates a rate provider client
func NewClient(cfg *config.IndicatorConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
	}
}

// FetchRate returns today's CLP per USD value. Any transport error, non-2xx
// status, malformed body, empty series or non-positive value maps to
// ErrRateUnavailable. The value is never cached: each search fetches fresh.
func (c *Client) FetchRate(ctx context.Context) (float64, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRateUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRateUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("Dollar rate request failed", zap.Error(err))
		return 0, fmt.Errorf("%w: %v", ErrRateUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Warn("Dollar rate request returned bad status", zap.Int("status", resp.StatusCode))
		return 0, fmt.Errorf("%w: status %d", ErrRateUnavailable, resp.StatusCode)
	}

	var payload serieResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRateUnavailable, err)
	}

	if len(payload.Serie) == 0 {
		return 0, fmt.Errorf("%w: empty serie", ErrRateUnavailable)
	}

	valor := payload.Serie[0].Valor
	if valor <= 0 {
		return 0, fmt.Errorf("%w: non-positive value %v", ErrRateUnavailable, valor)
	}

	logger.Debug("Fetched dollar rate", zap.Float64("clp_per_usd", valor))
	return valor, nil
}
