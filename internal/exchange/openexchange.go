package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/staymarket/listing-service/internal/entity"
	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://openexchangerates.org/api"
	cacheTTL       = 10 * time.Second
	requestTimeout = 15 * time.Second
)

// Client fetches USD-based rates from openexchangerates.org and rebases them
// to the requested currency. Successful fetches are cached per base code for
// a short window to bound outbound call volume.
type Client struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
	logger  *zap.Logger
	now     func() time.Time

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	table     RateTable
	fetchedAt time.Time
}

func NewClient(apiKey, baseURL string, logger *zap.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("exchange: open exchange API key is not set")
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: requestTimeout},
		logger:  logger,
		now:     time.Now,
		cache:   make(map[string]cacheEntry),
	}, nil
}

// LatestRates returns the latest rates relative to baseCode. Any upstream
// failure is logged and degrades to an empty table; failures are not cached.
func (c *Client) LatestRates(ctx context.Context, baseCode string) RateTable {
	if table, ok := c.cached(baseCode); ok {
		return table
	}

	usdTable, ok := c.fetch(ctx)
	if !ok {
		return RateTable{}
	}

	table := Rebase(usdTable, baseCode)
	c.store(baseCode, table)
	return table
}

func (c *Client) cached(baseCode string) (RateTable, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.cache[baseCode]
	if !ok || c.now().Sub(entry.fetchedAt) >= cacheTTL {
		return nil, false
	}
	return entry.table, true
}

func (c *Client) store(baseCode string, table RateTable) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[baseCode] = cacheEntry{table: table, fetchedAt: c.now()}
}

// fetch requests the USD-based rate table for the catalog's currency codes.
func (c *Client) fetch(ctx context.Context) (RateTable, bool) {
	params := url.Values{}
	params.Set("app_id", c.apiKey)
	params.Set("symbols", strings.Join(entity.CurrencyCodes(), ","))
	endpoint := c.baseURL + "/latest.json?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		c.logger.Error("Failed to build exchange rate request", zap.Error(err))
		return nil, false
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Error("Failed to reach exchange rate feed", zap.Error(err))
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Warn("Unable to get exchange rates",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return nil, false
	}

	var payload struct {
		Rates RateTable `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Error("Failed to decode exchange rate response", zap.Error(err))
		return nil, false
	}
	return payload.Rates, true
}
