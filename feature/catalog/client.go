package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// FetchError indicates a network failure or non-success status from the
// catalog service. It is recoverable: the affected product is skipped and
// the run continues.
type FetchError struct {
	Product    string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	target := "product list"
	if e.Product != "" {
		target = "product " + e.Product
	}
	if e.Err != nil {
		return fmt.Sprintf("catalog fetch failed for %s: %v", target, e.Err)
	}
	return fmt.Sprintf("catalog fetch failed for %s: HTTP %d", target, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Client talks to the upstream catalog service.
//
// Configurations are cached per product code so a product fetched once is
// never fetched again within a run. Cross-run staleness of the upstream
// catalog is a real correctness concern, so a long-lived client must have
// its cache flushed between runs via ResetCache.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger
	cache  *gocache.Cache
}

// NewClient creates a catalog client with a per-run configuration cache.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 20
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: time.Duration(timeout) * time.Second},
		logger: logger,
		cache:  gocache.New(gocache.NoExpiration, 0),
	}
}

// ResetCache drops every cached configuration. Called at the start of each
// run so one run never serves another run's snapshot of the catalog.
func (c *Client) ResetCache() {
	c.cache.Flush()
}

// ListProducts fetches all product descriptors for the configured customer.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	url := fmt.Sprintf("%s/%s/listcustomerproducts", strings.TrimSuffix(c.cfg.BaseURL, "/"), c.cfg.CustomerID)

	var payload struct {
		Products []Product `json:"products"`
	}
	if err := c.getJSON(ctx, url, "", &payload); err != nil {
		return nil, err
	}
	return payload.Products, nil
}

// GetConfiguration fetches the configuration for a single product.
// Results are cached by product code until the next ResetCache.
func (c *Client) GetConfiguration(ctx context.Context, code string) (*Configuration, error) {
	if cached, found := c.cache.Get(code); found {
		return cached.(*Configuration), nil
	}

	url := fmt.Sprintf("%s/%s/products/%s/configuration", strings.TrimSuffix(c.cfg.BaseURL, "/"), c.cfg.CustomerID, code)

	var cfg Configuration
	if err := c.getJSON(ctx, url, code, &cfg); err != nil {
		return nil, err
	}

	c.cache.Set(code, &cfg, gocache.NoExpiration)
	return &cfg, nil
}

func (c *Client) getJSON(ctx context.Context, url, product string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &FetchError{Product: product, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &FetchError{Product: product, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FetchError{Product: product, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &FetchError{Product: product, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
