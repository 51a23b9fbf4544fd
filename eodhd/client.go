// Package eodhd implements a cigarbutt.Provider over the EOD Historical Data
// API (https://eodhd.com).
package eodhd

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/etnz/cigarbutt"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

const (
	// DefaultBaseURL is the root of the EODHD REST API.
	DefaultBaseURL = "https://eodhd.com/api"
	// DefaultExchange is the EODHD exchange code of tickers that do not name one.
	DefaultExchange = "US"
)

// Client is a cigarbutt.Provider backed by EODHD.
//
// The fundamentals of the last ticker asked for are kept and shared by
// BalanceSheet, MarketCap and Currency, asking for another ticker drops them.
// A Client is not safe for concurrent use.
type Client struct {
	BaseURL  string // defaults to DefaultBaseURL
	Exchange string // defaults to DefaultExchange

	key  string
	http *http.Client

	// fundamentals of the last ticker fetched.
	lastTicker   string
	fundamentals gjson.Result
}

// New returns a Client using apiKey. A nil client means http.DefaultClient.
func New(apiKey string, client *http.Client) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{
		BaseURL:  DefaultBaseURL,
		Exchange: DefaultExchange,
		key:      apiKey,
		http:     client,
	}
}

// symbol returns the EODHD symbol for ticker, "CODE.EXCHANGE".
func (c *Client) symbol(ticker string) string {
	if strings.Contains(ticker, ".") || c.Exchange == "" {
		return ticker
	}
	return ticker + "." + c.Exchange
}

func (c *Client) addr(endpoint, ticker string, query ...string) string {
	base := strings.TrimSuffix(c.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	addr := fmt.Sprintf("%s/%s/%s?fmt=json&api_token=%s", base, endpoint, url.PathEscape(c.symbol(ticker)), url.QueryEscape(c.key))
	for _, q := range query {
		addr += "&" + q
	}
	return addr
}

// LatestClose implements cigarbutt.Provider.
func (c *Client) LatestClose(ctx context.Context, ticker string) (decimal.NullDecimal, error) {
	// the last trading day is at most a long weekend away.
	from := cigarbutt.Today().Add(-lookback)
	body, err := wget(ctx, c.http, ticker, c.addr("eod", ticker, "from="+from.String()))
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return parseLatestClose(ticker, body)
}

// BalanceSheet implements cigarbutt.Provider.
func (c *Client) BalanceSheet(ctx context.Context, ticker string) (*cigarbutt.BalanceSheet, error) {
	f, err := c.fundamentalsOf(ctx, ticker)
	if err != nil {
		return nil, err
	}
	return parseBalanceSheet(f), nil
}

// MarketCap implements cigarbutt.Provider.
func (c *Client) MarketCap(ctx context.Context, ticker string) (decimal.NullDecimal, error) {
	f, err := c.fundamentalsOf(ctx, ticker)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	v, ok := parseDecimal(f.Get("Highlights.MarketCapitalization"))
	return decimal.NullDecimal{Decimal: v, Valid: ok}, nil
}

// Currency implements cigarbutt.Provider.
func (c *Client) Currency(ctx context.Context, ticker string) (string, error) {
	f, err := c.fundamentalsOf(ctx, ticker)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(f.Get("General.CurrencyCode").String()), nil
}

func (c *Client) fundamentalsOf(ctx context.Context, ticker string) (gjson.Result, error) {
	if c.fundamentals.Exists() && c.lastTicker == ticker {
		return c.fundamentals, nil
	}
	c.lastTicker, c.fundamentals = "", gjson.Result{}
	body, err := wget(ctx, c.http, ticker, c.addr("fundamentals", ticker))
	if err != nil {
		return gjson.Result{}, err
	}
	f, err := parseFundamentals(ticker, body)
	if err != nil {
		return gjson.Result{}, err
	}
	c.lastTicker, c.fundamentals = ticker, f
	return f, nil
}
