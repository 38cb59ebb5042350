package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"dashboard/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		currency, value, want string
	}{
		{"USD", "67234.98000000", "USD 67234"},
		{"USD", "10.00", "USD 10"},
		{"USD", "9.999", "USD 10.00"},
		{"USD", "0.2345", "USD 0.23"},
		{"ARS", "1425.70", "ARS 1425"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, domain.FormatPrice(tc.currency, dec(tc.value)))
	}
}

func TestTrendOf(t *testing.T) {
	assert.Equal(t, domain.TrendUp, domain.TrendOf(dec("101"), dec("100")))
	assert.Equal(t, domain.TrendDown, domain.TrendOf(dec("99.5"), dec("100")))
	assert.Equal(t, domain.TrendFlat, domain.TrendOf(dec("100"), dec("100.000")))
	assert.Equal(t, domain.TrendFlat, domain.TrendOf(dec("100"), decimal.Zero))
}

func TestFeeds(t *testing.T) {
	assert.Equal(t, domain.PriceFeed{Symbol: "BTC", Pair: "BTCUSDT", Name: "Bitcoin", Currency: "USD"}, domain.CryptoFeed("btc"))
	assert.Equal(t, domain.PriceFeed{Symbol: "PEPE", Pair: "PEPEUSDT", Name: "PEPE", Currency: "USD"}, domain.CryptoFeed(" pepe "))
	assert.Equal(t, domain.PriceFeed{Symbol: "USD", Pair: "USDTARS", Name: "Dollar", Currency: "ARS"}, domain.FXFeed("usdtars"))
}

func TestNewQuote(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	q := domain.NewQuote(domain.CryptoFeed("SOL"), domain.PairPrice{Price: dec("142.37"), PreviousClose: dec("150")}, at)
	assert.Equal(t, "SOL", q.Symbol)
	assert.Equal(t, "Solana", q.Name)
	assert.Equal(t, domain.TrendDown, q.Trend)
	assert.Equal(t, "USD 142", q.Display)
	assert.Equal(t, at, q.UpdatedAt)
}
