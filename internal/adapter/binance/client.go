// Package binance implements domain.QuoteSource on the public Binance spot API.
package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"dashboard/internal/domain"
)

// DefaultBaseURL is the public spot API endpoint.
const DefaultBaseURL = "https://api.binance.com"

// Client fetches prices from Binance. No credentials are needed.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ domain.QuoteSource = (*Client)(nil)

// New returns a client for baseURL with the given request timeout.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// FetchQuote gets the current price and the previous daily close of pair.
// Both requests run concurrently and the first failure cancels the other.
func (c *Client) FetchQuote(ctx context.Context, pair string) (domain.PairPrice, error) {
	var out domain.PairPrice
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := c.tickerPrice(ctx, pair)
		if err != nil {
			return err
		}
		out.Price = p
		return nil
	})
	g.Go(func() error {
		p, err := c.previousClose(ctx, pair)
		if err != nil {
			return err
		}
		out.PreviousClose = p
		return nil
	})

	if err := g.Wait(); err != nil {
		return domain.PairPrice{}, err
	}
	return out, nil
}

type tickerResponse struct {
	Symbol string          `json:"symbol"`
	Price  decimal.Decimal `json:"price"`
}

func (c *Client) tickerPrice(ctx context.Context, pair string) (decimal.Decimal, error) {
	q := url.Values{"symbol": {pair}}
	var resp tickerResponse
	if err := c.get(ctx, "/api/v3/ticker/price", q, &resp); err != nil {
		return decimal.Zero, fmt.Errorf("ticker %s: %w", pair, err)
	}
	return resp.Price, nil
}

// previousClose reads yesterday's close from the last two daily candles.
// Each candle is a heterogeneous array whose fifth element is the close.
func (c *Client) previousClose(ctx context.Context, pair string) (decimal.Decimal, error) {
	q := url.Values{"symbol": {pair}, "interval": {"1d"}, "limit": {"2"}}
	var candles [][]json.RawMessage
	if err := c.get(ctx, "/api/v3/klines", q, &candles); err != nil {
		return decimal.Zero, fmt.Errorf("klines %s: %w", pair, err)
	}
	if len(candles) == 0 || len(candles[0]) < 5 {
		return decimal.Zero, nil
	}
	var closePrice decimal.Decimal
	if err := closePrice.UnmarshalJSON(candles[0][4]); err != nil {
		return decimal.Zero, fmt.Errorf("klines %s: decode close: %w", pair, err)
	}
	return closePrice, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
