// Package backend talks to the clinic backend for live inventory and disease
// statistics. Every call is bounded by its own timeout.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/medicore/ai-service/interfaces"
	"github.com/medicore/ai-service/inventory"
	"github.com/medicore/ai-service/logging"
	"github.com/medicore/ai-service/metrics"
	"github.com/medicore/ai-service/prediction"
	"golang.org/x/text/encoding/charmap"
)

const (
	inventoryPath    = "/inventory"
	diseaseStatsPath = "/analytics/disease-stats"
	maxBodySize      = 5 * 1024 * 1024
	unknownMedicine  = "Unknown"
)

// Defaults for per-call timeouts
const (
	DefaultInventoryTimeout = 3 * time.Second
	DefaultAnalyticsTimeout = 5 * time.Second
)

// ErrNotConfigured is returned by every call when no backend URL is set
var ErrNotConfigured = errors.New("backend URL not configured")

// StatusError is returned when the backend answers with a non-200 status
type StatusError struct {
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend %s returned status %d", e.Path, e.StatusCode)
}

// Config holds the backend connection settings
type Config struct {
	BaseURL          string
	Token            string
	InventoryTimeout time.Duration
	AnalyticsTimeout time.Duration
}

// Client is the clinic backend HTTP client
type Client struct {
	baseURL          string
	token            string
	inventoryTimeout time.Duration
	analyticsTimeout time.Duration
	http             *http.Client
}

var _ interfaces.BackendClient = (*Client)(nil)

// NewClient creates a client. Zero timeouts fall back to the defaults.
func NewClient(cfg Config) *Client {
	c := &Client{
		baseURL:          strings.TrimRight(cfg.BaseURL, "/"),
		token:            cfg.Token,
		inventoryTimeout: cfg.InventoryTimeout,
		analyticsTimeout: cfg.AnalyticsTimeout,
		http:             &http.Client{},
	}
	if c.inventoryTimeout <= 0 {
		c.inventoryTimeout = DefaultInventoryTimeout
	}
	if c.analyticsTimeout <= 0 {
		c.analyticsTimeout = DefaultAnalyticsTimeout
	}
	return c
}

// Configured reports whether a backend URL is set
func (c *Client) Configured() bool {
	return c.baseURL != ""
}

// inventoryItem accepts both field spellings used by backend versions
type inventoryItem struct {
	Name          *string  `json:"name"`
	MedicineName  *string  `json:"medicine_name"`
	StockQuantity *float64 `json:"stock_quantity"`
	Quantity      *float64 `json:"quantity"`
}

// FetchInventory returns the live stock levels. The backend may answer with a
// bare list or with an object carrying the list under "items".
func (c *Client) FetchInventory(ctx context.Context) ([]inventory.StockItem, error) {
	body, err := c.get(ctx, inventoryPath, nil, c.inventoryTimeout)
	if err != nil {
		return nil, err
	}

	var raw []inventoryItem
	if err := json.Unmarshal(body, &raw); err != nil {
		var wrapped struct {
			Items []inventoryItem `json:"items"`
		}
		if err := json.Unmarshal(body, &wrapped); err != nil {
			return nil, fmt.Errorf("failed to decode inventory: %w", err)
		}
		raw = wrapped.Items
	}

	items := make([]inventory.StockItem, 0, len(raw))
	for _, r := range raw {
		items = append(items, r.toStockItem())
	}

	logging.Debug("Fetched live inventory", "items", len(items))
	return items, nil
}

func (r inventoryItem) toStockItem() inventory.StockItem {
	item := inventory.StockItem{Name: unknownMedicine}
	switch {
	case r.Name != nil:
		item.Name = *r.Name
	case r.MedicineName != nil:
		item.Name = *r.MedicineName
	}
	switch {
	case r.StockQuantity != nil:
		item.Stock = int(*r.StockQuantity)
	case r.Quantity != nil:
		item.Stock = int(*r.Quantity)
	}
	return item
}

// FetchDiseaseStats returns per-disease case counts observed over the last days
func (c *Client) FetchDiseaseStats(ctx context.Context, days int) ([]prediction.ObservedCount, error) {
	query := url.Values{"days": []string{strconv.Itoa(days)}}
	body, err := c.get(ctx, diseaseStatsPath, query, c.analyticsTimeout)
	if err != nil {
		return nil, err
	}

	var counts []prediction.ObservedCount
	if err := json.Unmarshal(body, &counts); err != nil {
		return nil, fmt.Errorf("failed to decode disease stats: %w", err)
	}

	logging.Debug("Fetched disease stats", "days", days, "diseases", len(counts))
	return counts, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, timeout time.Duration) ([]byte, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	start := time.Now()
	body, err := c.do(ctx, path, query, timeout)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.BackendRequestDuration.WithLabelValues(path, outcome).Observe(time.Since(start).Seconds())
	return body, err
}

func (c *Client) do(ctx context.Context, path string, query url.Values, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call backend %s: %w", path, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn("Failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Path: path, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	// Older backend builds serve Latin-1
	if !utf8.Valid(body) {
		body, err = io.ReadAll(charmap.ISO8859_1.NewDecoder().Reader(bytes.NewReader(body)))
		if err != nil {
			return nil, fmt.Errorf("failed to decode response from %s: %w", path, err)
		}
	}
	return body, nil
}
