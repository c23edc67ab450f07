package connectors

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"
)

// DailyQuote is one end-of-day price as returned by the quotes
// provider.
type DailyQuote struct {
	Ticker        string          `json:"ticker"`
	Date          string          `json:"date"` // YYYY-MM-DD
	Open          decimal.Decimal `json:"open"`
	High          decimal.Decimal `json:"high"`
	Low           decimal.Decimal `json:"low"`
	Close         decimal.Decimal `json:"close"`
	PreviousClose decimal.Decimal `json:"previousClose"`
}

// ParsedDate returns the quote's trading date.
func (q *DailyQuote) ParsedDate() (time.Time, error) {
	return time.Parse("2006-01-02", q.Date)
}

// QuotesClient pulls end-of-day prices from an external quotes API.
type QuotesClient struct {
	baseURL string
	http    *resty.Client
}

func NewQuotesClient(baseURL string, timeout time.Duration, retries int) *QuotesClient {
	baseURL = strings.TrimRight(baseURL, "/")

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(retries).
		SetHeader("Accept", "application/json")

	return &QuotesClient{
		baseURL: baseURL,
		http:    client,
	}
}

// NewQuotesClientFromEnv builds a client from the connector env config.
func NewQuotesClientFromEnv() *QuotesClient {
	config := GetConfig()
	return NewQuotesClient(
		config.QuotesBaseURL,
		time.Duration(config.QuotesTimeout)*time.Second,
		config.QuotesRetries,
	)
}

// FetchDailyQuote returns the latest end-of-day quote for the ticker.
func (c *QuotesClient) FetchDailyQuote(ctx context.Context, ticker string) (*DailyQuote, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, fmt.Errorf("ticker must not be empty")
	}

	var quote DailyQuote

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&quote).
		SetPathParam("ticker", ticker).
		Get("/v1/quotes/{ticker}")

	if err != nil {
		logger.WithFields(map[string]interface{}{
			"connector": "QuotesClient",
			"ticker":    ticker,
		}).WithError(err).Error("Quotes request failed")

		return nil, err
	}

	if resp.IsError() {
		return nil, fmt.Errorf("quotes API returned status %d for %s", resp.StatusCode(), ticker)
	}

	if quote.Close.IsZero() {
		return nil, fmt.Errorf("quotes API returned no close price for %s", ticker)
	}

	logger.WithFields(map[string]interface{}{
		"connector": "QuotesClient",
		"ticker":    ticker,
		"close":     quote.Close.String(),
		"date":      quote.Date,
	}).Debug("Daily quote fetched")

	return &quote, nil
}
