// Package market fetches currency rates and stock quotes from the
// outside world. Both clients are best-effort per code: a currency or
// symbol the API cannot price is skipped, never a whole-call failure.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"finlens/internal/cache"
	"finlens/internal/core"
	"finlens/internal/log"
)

// RateClient talks to an open.er-api.com-style latest-rates endpoint.
type RateClient struct {
	baseURL string
	base    string
	client  *http.Client
	log     *log.Logger
	cache   *cache.LRU[map[string]float64]
}

// NewRateClient builds a rate client. A nil httpClient gets a 10s
// timeout default; ttl controls how long a fetched rate table stays
// fresh before the next report call re-fetches it.
func NewRateClient(baseURL, baseCurrency string, httpClient *http.Client, ttl time.Duration, logger *log.Logger) *RateClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &RateClient{
		baseURL: baseURL,
		base:    baseCurrency,
		client:  httpClient,
		log:     logger.WithComponent(log.ComponentMarket),
		cache:   cache.NewLRU[map[string]float64](4, ttl),
	}
}

// FetchRates returns rates for the requested codes against the base
// currency. One API call covers all codes. When the API is unreachable a
// stale cached table is used; a code absent from the table is skipped
// with a warning.
func (c *RateClient) FetchRates(ctx context.Context, codes []string) ([]core.CurrencyRate, error) {
	if len(codes) == 0 {
		return []core.CurrencyRate{}, nil
	}

	rates, ok := c.cache.Get(c.base)
	if !ok {
		fetched, err := c.fetch(ctx)
		if err != nil {
			stale, haveStale := c.cache.GetStale(c.base)
			if !haveStale {
				return nil, err
			}
			c.log.Warn("rate API failed, using stale cached rates", log.FieldError, err)
			fetched = stale
		} else {
			c.cache.Set(c.base, fetched)
		}
		rates = fetched
	}

	out := make([]core.CurrencyRate, 0, len(codes))
	for _, code := range codes {
		rate, found := rates[code]
		if !found {
			c.log.Warn("no rate for currency, skipping", log.FieldCurrency, code)
			continue
		}
		out = append(out, core.CurrencyRate{Currency: code, Rate: rate})
	}
	return out, nil
}

func (c *RateClient) fetch(ctx context.Context) (map[string]float64, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, c.base)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build rate request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate API returned status %d", resp.StatusCode)
	}

	var parsed struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode rate response: %w", err)
	}
	if parsed.Rates == nil {
		return nil, fmt.Errorf("rate response has no rates object")
	}

	c.log.Debug("fetched currency rates", "base", c.base, "count", len(parsed.Rates))
	return parsed.Rates, nil
}
