package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"finlens/internal/cache"
	"finlens/internal/core"
	"finlens/internal/log"
)

// StockClient fetches quotes from an Alpha Vantage-style endpoint, one
// request per symbol.
type StockClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     *log.Logger
	cache   *cache.LRU[decimal.Decimal]
}

func NewStockClient(baseURL, apiKey string, httpClient *http.Client, ttl time.Duration, logger *log.Logger) *StockClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &StockClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  httpClient,
		log:     logger.WithComponent(log.ComponentMarket),
		cache:   cache.NewLRU[decimal.Decimal](64, ttl),
	}
}

// FetchPrices returns quotes for the requested symbols. A symbol that
// cannot be priced (request failure, malformed payload, rate-limited
// API) is logged and skipped; stale cached prices stand in when the API
// fails outright.
func (c *StockClient) FetchPrices(ctx context.Context, symbols []string) ([]core.StockPrice, error) {
	out := make([]core.StockPrice, 0, len(symbols))
	for _, symbol := range symbols {
		price, ok := c.cache.Get(symbol)
		if !ok {
			fetched, err := c.fetchQuote(ctx, symbol)
			if err != nil {
				if stale, haveStale := c.cache.GetStale(symbol); haveStale {
					c.log.Warn("quote API failed, using stale cached price",
						log.FieldSymbol, symbol, log.FieldError, err)
					out = append(out, core.StockPrice{Symbol: symbol, Price: stale})
				} else {
					c.log.Warn("no price for symbol, skipping",
						log.FieldSymbol, symbol, log.FieldError, err)
				}
				continue
			}
			c.cache.Set(symbol, fetched)
			price = fetched
		}
		out = append(out, core.StockPrice{Symbol: symbol, Price: price})
	}
	return out, nil
}

func (c *StockClient) fetchQuote(ctx context.Context, symbol string) (decimal.Decimal, error) {
	query := url.Values{}
	query.Set("function", "GLOBAL_QUOTE")
	query.Set("symbol", symbol)
	query.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("build quote request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("quote request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("quote API returned status %d", resp.StatusCode)
	}

	var parsed struct {
		Quote struct {
			Price string `json:"05. price"`
		} `json:"Global Quote"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return decimal.Zero, fmt.Errorf("decode quote response: %w", err)
	}
	if parsed.Quote.Price == "" {
		return decimal.Zero, core.ErrNoQuote
	}
	price, err := decimal.NewFromString(parsed.Quote.Price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse price %q: %w", parsed.Quote.Price, err)
	}

	c.log.Debug("fetched quote", log.FieldSymbol, symbol, "price", price)
	return price, nil
}
