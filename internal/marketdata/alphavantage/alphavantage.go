// Package alphavantage implements the Alpha Vantage daily time series
// provider.
package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantfolio/folio/internal/core"
)

const defaultBaseURL = "https://www.alphavantage.co/query"

// validTicker matches symbols like AAPL, BRK.B, 0700.HK
var validTicker = regexp.MustCompile(`^[A-Za-z0-9]{1,10}(\.[A-Za-z]{1,4})?$`)

// validateTicker checks if a ticker has valid format
func validateTicker(ticker string) error {
	if ticker == "" {
		return fmt.Errorf("ticker cannot be empty")
	}
	if !validTicker.MatchString(ticker) {
		return fmt.Errorf("invalid ticker format: %s", ticker)
	}
	return nil
}

// Config holds Alpha Vantage client settings.
type Config struct {
	APIKey      string
	BaseURL     string        // defaults to the public endpoint
	HistoryDays int           // series is trimmed to this many newest bars; 0 keeps all
	Timeout     time.Duration // defaults to 10s
}

// Client fetches daily bars from the Alpha Vantage TIME_SERIES_DAILY API.
type Client struct {
	apiKey      string
	baseURL     string
	historyDays int
	client      *http.Client
}

// New creates a new Alpha Vantage client.
func New(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:      cfg.APIKey,
		baseURL:     baseURL,
		historyDays: cfg.HistoryDays,
		client:      &http.Client{Timeout: timeout},
	}
}

func (c *Client) Name() string {
	return "alphavantage"
}

// dailyResponse mirrors the TIME_SERIES_DAILY payload. The API reports
// failures in-band: ErrorMessage for bad symbols, Note/Information for
// throttling.
type dailyResponse struct {
	ErrorMessage string              `json:"Error Message"`
	Note         string              `json:"Note"`
	Information  string              `json:"Information"`
	Series       map[string]dailyBar `json:"Time Series (Daily)"`
}

type dailyBar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

// FetchDaily fetches the daily series for ticker, newest bar first,
// trimmed to the configured history window.
func (c *Client) FetchDaily(ctx context.Context, ticker string) ([]core.Bar, error) {
	if err := validateTicker(ticker); err != nil {
		return nil, core.WrapError(core.ErrDataUnavailable, err)
	}

	q := url.Values{}
	q.Set("function", "TIME_SERIES_DAILY")
	q.Set("symbol", ticker)
	q.Set("outputsize", "full")
	q.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, core.WrapError(core.ErrDataUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, core.WrapError(core.ErrDataUnavailable,
			fmt.Errorf("unexpected status: %d", resp.StatusCode))
	}

	var result dailyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, core.WrapError(core.ErrDataUnavailable,
			fmt.Errorf("decoding response: %w", err))
	}

	if result.ErrorMessage != "" {
		return nil, core.WrapError(core.ErrDataUnavailable,
			fmt.Errorf("alphavantage error: %s", result.ErrorMessage))
	}
	if result.Note != "" {
		return nil, core.WrapError(core.ErrDataUnavailable,
			fmt.Errorf("alphavantage throttled: %s", result.Note))
	}
	if len(result.Series) == 0 {
		if result.Information != "" {
			return nil, core.WrapError(core.ErrDataUnavailable,
				fmt.Errorf("alphavantage: %s", result.Information))
		}
		return nil, core.WrapError(core.ErrDataUnavailable,
			fmt.Errorf("no data for ticker: %s", ticker))
	}

	bars := make([]core.Bar, 0, len(result.Series))
	for date, raw := range result.Series {
		bar, err := parseBar(ticker, date, raw)
		if err != nil {
			continue // skip malformed rows
		}
		bars = append(bars, bar)
	}
	if len(bars) == 0 {
		return nil, core.WrapError(core.ErrDataUnavailable,
			fmt.Errorf("no parseable bars for ticker: %s", ticker))
	}

	// Newest first
	sort.Slice(bars, func(i, j int) bool {
		return bars[i].Date.After(bars[j].Date)
	})

	if c.historyDays > 0 && len(bars) > c.historyDays {
		bars = bars[:c.historyDays]
	}

	return bars, nil
}

func parseBar(ticker, date string, raw dailyBar) (core.Bar, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return core.Bar{}, err
	}

	open, err := decimal.NewFromString(raw.Open)
	if err != nil {
		return core.Bar{}, err
	}
	high, err := decimal.NewFromString(raw.High)
	if err != nil {
		return core.Bar{}, err
	}
	low, err := decimal.NewFromString(raw.Low)
	if err != nil {
		return core.Bar{}, err
	}
	closePrice, err := decimal.NewFromString(raw.Close)
	if err != nil {
		return core.Bar{}, err
	}
	volume, err := strconv.ParseInt(raw.Volume, 10, 64)
	if err != nil {
		return core.Bar{}, err
	}

	return core.Bar{
		Ticker: ticker,
		Date:   day,
		Open:   open,
		High:   high,
		Low:    low,
		Close:  closePrice,
		Volume: volume,
	}, nil
}
