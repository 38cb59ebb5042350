package binance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeBinance(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/ticker/price", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("symbol") {
		case "BTCUSDT":
			_, _ = w.Write([]byte(`{"symbol":"BTCUSDT","price":"97123.45000000"}`))
		case "USDTARS":
			_, _ = w.Write([]byte(`{"symbol":"USDTARS","price":"1215.30000000"}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"code":-1121,"msg":"Invalid symbol."}`))
		}
	})
	mux.HandleFunc("/api/v3/klines", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("interval") != "1d" || q.Get("limit") != "2" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		switch q.Get("symbol") {
		case "BTCUSDT":
			_, _ = w.Write([]byte(`[
				[1760659200000,"95000.00","98000.00","94000.00","96500.10","1200.5",1760745599999,"0",100,"0","0","0"],
				[1760745600000,"96500.10","97500.00","96000.00","97123.45","300.1",1760831999999,"0",50,"0","0","0"]
			]`))
		case "USDTARS":
			_, _ = w.Write([]byte(`[]`))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_FetchQuote(t *testing.T) {
	srv := newFakeBinance(t)
	c := New(srv.URL, 2*time.Second)

	got, err := c.FetchQuote(context.Background(), "BTCUSDT")
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("97123.45")), "price = %s", got.Price)
	assert.True(t, got.PreviousClose.Equal(decimal.RequireFromString("96500.10")), "previous close = %s", got.PreviousClose)
}

func TestClient_FetchQuote_NoCandles(t *testing.T) {
	srv := newFakeBinance(t)
	c := New(srv.URL+"/", 2*time.Second)

	got, err := c.FetchQuote(context.Background(), "USDTARS")
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("1215.3")))
	assert.True(t, got.PreviousClose.IsZero())
}

func TestClient_FetchQuote_BadStatus(t *testing.T) {
	srv := newFakeBinance(t)
	c := New(srv.URL, 2*time.Second)

	_, err := c.FetchQuote(context.Background(), "NOPE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 400")
}

func TestClient_FetchQuote_ContextCanceled(t *testing.T) {
	srv := newFakeBinance(t)
	c := New(srv.URL, 2*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.FetchQuote(ctx, "BTCUSDT")
	require.Error(t, err)
}

func TestNew_DefaultBaseURL(t *testing.T) {
	c := New("", time.Second)
	assert.Equal(t, DefaultBaseURL, c.baseURL)
}
