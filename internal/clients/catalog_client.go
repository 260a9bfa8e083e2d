// Package clients provides HTTP clients for upstream API communication.
package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"storefront-service/internal/models"
)

// CatalogClient consumes the upstream catalog REST API. The product list
// is cached briefly in memory; everything else is fetched on demand. The
// upstream is treated as an opaque, already-authenticated data source.
type CatalogClient struct {
	baseURL    string
	httpClient *http.Client

	mu       sync.RWMutex
	cached   []models.RawProduct
	cachedAt time.Time
	cacheTTL time.Duration
}

type productListResponse struct {
	Data []models.RawProduct `json:"data"`
}

type productResponse struct {
	Data models.RawProduct `json:"data"`
}

type categoryListResponse struct {
	Data []models.Category `json:"data"`
}

// NewCatalogClient creates a catalog client for the given base URL.
func NewCatalogClient(baseURL string) *CatalogClient {
	if baseURL == "" {
		baseURL = "http://127.0.0.1:8000/api"
	}

	return &CatalogClient{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		cacheTTL: 1 * time.Minute, // short TTL so price changes show up quickly
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ListProducts fetches the full product collection, serving from cache
// within the TTL.
func (c *CatalogClient) ListProducts(ctx context.Context) ([]models.RawProduct, error) {
	c.mu.RLock()
	if c.cached != nil && time.Since(c.cachedAt) < c.cacheTTL {
		products := c.cached
		c.mu.RUnlock()
		return products, nil
	}
	c.mu.RUnlock()

	var resp productListResponse
	if err := c.getJSON(ctx, "/products", &resp); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cached = resp.Data
	c.cachedAt = time.Now()
	c.mu.Unlock()

	return resp.Data, nil
}

// GetProduct fetches a single product by ID.
func (c *CatalogClient) GetProduct(ctx context.Context, id int64) (*models.RawProduct, error) {
	var resp productResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/products/%d", id), &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// ListCategories fetches the category collection.
func (c *CatalogClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	var resp categoryListResponse
	if err := c.getJSON(ctx, "/categories", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// InvalidateCache drops the cached product list.
func (c *CatalogClient) InvalidateCache() {
	c.mu.Lock()
	c.cached = nil
	c.mu.Unlock()
}

func (c *CatalogClient) getJSON(ctx context.Context, path string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach catalog API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog API returned status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode catalog response: %w", err)
	}
	return nil
}
