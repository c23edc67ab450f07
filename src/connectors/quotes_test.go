package connectors

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

func quoteServer(t *testing.T, handler http.HandlerFunc) *QuotesClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewQuotesClient(server.URL, 2*time.Second, 0)
}

func TestFetchDailyQuote(t *testing.T) {
	client := quoteServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/quotes/DYCA", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"ticker": "DYCA",
			"date": "2024-03-08",
			"open": "250.00",
			"high": "260.00",
			"low": "248.50",
			"close": "257.00",
			"previousClose": "255.10"
		}`))
	})

	quote, err := client.FetchDailyQuote(context.Background(), "dyca")
	require.NoError(t, err)

	assert.Equal(t, "DYCA", quote.Ticker)
	assert.True(t, quote.Close.Equal(decimal.RequireFromString("257.00")))

	date, err := quote.ParsedDate()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC), date)
}

func TestFetchDailyQuoteUpstreamError(t *testing.T) {
	client := quoteServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	_, err := client.FetchDailyQuote(context.Background(), "NOPE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFetchDailyQuoteMissingClose(t *testing.T) {
	client := quoteServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ticker": "DYCA", "date": "2024-03-08"}`))
	})

	_, err := client.FetchDailyQuote(context.Background(), "DYCA")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no close price")
}

func TestFetchDailyQuoteEmptyTicker(t *testing.T) {
	client := NewQuotesClient("http://localhost:0", time.Second, 0)

	_, err := client.FetchDailyQuote(context.Background(), "   ")
	assert.Error(t, err)
}
