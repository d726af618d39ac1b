// Package provider implements the client for the Alpha Vantage NEWS_SENTIMENT endpoint
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/umputun/finfeed/pkg/domain"
)

// DefaultEndpoint is the public Alpha Vantage query endpoint
const DefaultEndpoint = "https://www.alphavantage.co/query"

var (
	// ErrQuotaExceeded returned when the provider reports the request volume limit was hit
	ErrQuotaExceeded = errors.New("provider quota exceeded")
	// ErrMalformedResponse returned when the payload has no feed or can't be decoded
	ErrMalformedResponse = errors.New("malformed provider response")
	// ErrNoAPIKey returned when the client has no API key configured
	ErrNoAPIKey = errors.New("provider api key is not set")
)

// Response is a raw NEWS_SENTIMENT payload
type Response struct {
	Items        string    `json:"items"`
	Feed         []Article `json:"feed"`
	Note         string    `json:"Note,omitempty"`
	Information  string    `json:"Information,omitempty"`
	ErrorMessage string    `json:"Error Message,omitempty"`
}

// Article is a raw provider article, any field may be missing
type Article struct {
	Title                 string            `json:"title"`
	URL                   string            `json:"url"`
	TimePublished         string            `json:"time_published"`
	Authors               []string          `json:"authors"`
	Summary               string            `json:"summary"`
	BannerImage           string            `json:"banner_image"`
	Source                string            `json:"source"`
	SourceDomain          string            `json:"source_domain"`
	Topics                []Topic           `json:"topics"`
	OverallSentimentScore *float64          `json:"overall_sentiment_score"`
	OverallSentimentLabel string            `json:"overall_sentiment_label"`
	TickerSentiment       []TickerSentiment `json:"ticker_sentiment"`
}

// Topic is a provider topic with relevance
type Topic struct {
	Topic          string `json:"topic"`
	RelevanceScore string `json:"relevance_score"`
}

// TickerSentiment is raw per-ticker sentiment
type TickerSentiment struct {
	Ticker         string `json:"ticker"`
	RelevanceScore string `json:"relevance_score"`
	SentimentScore string `json:"ticker_sentiment_score"`
	SentimentLabel string `json:"ticker_sentiment_label"`
}

// Client is the NEWS_SENTIMENT http client
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// Params for Client
type Params struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

// New makes a provider client. Timeout applies to every single request.
func New(p Params) *Client {
	if p.Endpoint == "" {
		p.Endpoint = DefaultEndpoint
	}
	if p.Timeout <= 0 {
		p.Timeout = 15 * time.Second
	}
	return &Client{
		endpoint:   p.Endpoint,
		apiKey:     p.APIKey,
		httpClient: &http.Client{Timeout: p.Timeout},
	}
}

// Fetch requests news for the query. Transport and non-200 responses return plain errors,
// rate limit and missing feed are reported with ErrQuotaExceeded and ErrMalformedResponse.
func (c *Client) Fetch(ctx context.Context, q domain.Query) (*Response, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+c.values(q).Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("make request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch news: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: status %d", ErrQuotaExceeded, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var res Response
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	switch {
	case res.Note != "":
		return nil, fmt.Errorf("%w: %s", ErrQuotaExceeded, res.Note)
	case res.Information != "" && len(res.Feed) == 0:
		return nil, fmt.Errorf("%w: %s", ErrQuotaExceeded, res.Information)
	case res.ErrorMessage != "":
		return nil, fmt.Errorf("%w: %s", ErrMalformedResponse, res.ErrorMessage)
	case len(res.Feed) == 0:
		return nil, fmt.Errorf("%w: no feed in response", ErrMalformedResponse)
	}
	return &res, nil
}

// values builds query string parameters, empty filters are omitted
func (c *Client) values(q domain.Query) url.Values {
	v := url.Values{}
	v.Set("function", "NEWS_SENTIMENT")
	v.Set("apikey", c.apiKey)
	if len(q.Tickers) > 0 {
		v.Set("tickers", strings.ToUpper(strings.Join(q.Tickers, ",")))
	}
	if len(q.Topics) > 0 {
		v.Set("topics", strings.Join(q.Topics, ","))
	}
	if q.TimeFrom != "" {
		v.Set("time_from", q.TimeFrom)
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}
