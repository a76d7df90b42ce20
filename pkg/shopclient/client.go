package shopclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"tiendascan/pkg/catalog"
	"tiendascan/pkg/config"
	"tiendascan/pkg/logger"
)

// Client talks to the product search endpoint of the store backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type searchResponse struct {
	Resultados []catalog.SearchRecord `json:"resultados"`
}

// NewClient creates a product search client
func NewClient(cfg *config.SearchConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// Search queries branch offers for a product name. A failed request or a
// non-2xx status maps to ErrSearchFailed; an empty result list is not an
// error.
func (c *Client) Search(ctx context.Context, name string) ([]catalog.SearchRecord, error) {
	endpoint := fmt.Sprintf("%s/buscar_producto?nombre=%s", c.baseURL, url.QueryEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("Product search request failed", zap.String("name", name), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Warn("Product search returned bad status",
			zap.String("name", name),
			zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d", ErrSearchFailed, resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}

	return payload.Resultados, nil
}
