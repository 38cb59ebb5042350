package domain

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PriceFeed describes one price widget: a trading pair and how to label it.
type PriceFeed struct {
	Symbol   string `json:"symbol"`
	Pair     string `json:"pair"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

var cryptoNames = map[string]string{
	"BTC":  "Bitcoin",
	"ETH":  "Ethereum",
	"SOL":  "Solana",
	"ADA":  "Cardano",
	"DOGE": "Dogecoin",
	"XRP":  "XRP",
	"BNB":  "BNB",
}

// CryptoFeed returns the USDT-quoted feed for a crypto symbol.
func CryptoFeed(symbol string) PriceFeed {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	name, ok := cryptoNames[symbol]
	if !ok {
		name = symbol
	}
	return PriceFeed{Symbol: symbol, Pair: symbol + "USDT", Name: name, Currency: "USD"}
}

// FXFeed returns the dollar feed for a USDT pair such as USDTARS. The quote
// currency is the part of the pair after "USDT".
func FXFeed(pair string) PriceFeed {
	pair = strings.ToUpper(strings.TrimSpace(pair))
	return PriceFeed{
		Symbol:   "USD",
		Pair:     pair,
		Name:     "Dollar",
		Currency: strings.TrimPrefix(pair, "USDT"),
	}
}

// Trend compares the current price with the previous daily close.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// TrendOf returns the direction of price against prev. Missing (zero)
// values give TrendFlat.
func TrendOf(price, prev decimal.Decimal) Trend {
	if price.IsZero() || prev.IsZero() {
		return TrendFlat
	}
	switch price.Cmp(prev) {
	case 1:
		return TrendUp
	case -1:
		return TrendDown
	default:
		return TrendFlat
	}
}

// FormatPrice renders v for display: whole units when v >= 10, otherwise two
// decimals.
func FormatPrice(currency string, v decimal.Decimal) string {
	if v.GreaterThanOrEqual(decimal.NewFromInt(10)) {
		return currency + " " + v.Truncate(0).String()
	}
	return currency + " " + v.StringFixed(2)
}

// PairPrice is the raw data fetched for a trading pair.
type PairPrice struct {
	Price         decimal.Decimal
	PreviousClose decimal.Decimal
}

// QuoteSource is the port for a market data provider.
type QuoteSource interface {
	FetchQuote(ctx context.Context, pair string) (PairPrice, error)
}

// Quote is the latest known price of a feed.
type Quote struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	Pair          string          `json:"pair"`
	Currency      string          `json:"currency"`
	Price         decimal.Decimal `json:"price"`
	PreviousClose decimal.Decimal `json:"previousClose"`
	Trend         Trend           `json:"trend"`
	Display       string          `json:"display"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// NewQuote builds the quote for feed from fetched prices.
func NewQuote(feed PriceFeed, p PairPrice, at time.Time) Quote {
	return Quote{
		Symbol:        feed.Symbol,
		Name:          feed.Name,
		Pair:          feed.Pair,
		Currency:      feed.Currency,
		Price:         p.Price,
		PreviousClose: p.PreviousClose,
		Trend:         TrendOf(p.Price, p.PreviousClose),
		Display:       FormatPrice(feed.Currency, p.Price),
		UpdatedAt:     at,
	}
}
