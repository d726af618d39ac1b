package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// Sentiment is a categorical market-sentiment label
type Sentiment string

// sentiment labels as reported by the provider
const (
	SentimentBullish         Sentiment = "Bullish"
	SentimentSomewhatBullish Sentiment = "Somewhat-Bullish"
	SentimentNeutral         Sentiment = "Neutral"
	SentimentSomewhatBearish Sentiment = "Somewhat-Bearish"
	SentimentBearish         Sentiment = "Bearish"
)

// ParseSentiment normalizes label variants like "somewhat_bullish" or "Somewhat Bullish".
// Returns false for empty or unknown labels.
func ParseSentiment(label string) (Sentiment, bool) {
	key := strings.ToLower(strings.TrimSpace(label))
	key = strings.NewReplacer("_", "", "-", "", " ", "").Replace(key)
	switch key {
	case "bullish":
		return SentimentBullish, true
	case "somewhatbullish":
		return SentimentSomewhatBullish, true
	case "neutral":
		return SentimentNeutral, true
	case "somewhatbearish":
		return SentimentSomewhatBearish, true
	case "bearish":
		return SentimentBearish, true
	}
	return SentimentNeutral, false
}

// SentimentFromScore maps overall sentiment score to a label using provider thresholds
func SentimentFromScore(score float64) Sentiment {
	switch {
	case score <= -0.35:
		return SentimentBearish
	case score <= -0.15:
		return SentimentSomewhatBearish
	case score < 0.15:
		return SentimentNeutral
	case score < 0.35:
		return SentimentSomewhatBullish
	default:
		return SentimentBullish
	}
}

// TimeUnavailable is rendered in place of a publish time that could not be parsed
const TimeUnavailable = "unavailable"

// PublishedTime is an article publish time, zero value means unavailable
type PublishedTime struct {
	time.Time
}

// Available reports whether the publish time is known
func (p PublishedTime) Available() bool {
	return !p.IsZero()
}

// String returns RFC3339 time in UTC or TimeUnavailable
func (p PublishedTime) String() string {
	if !p.Available() {
		return TimeUnavailable
	}
	return p.UTC().Format(time.RFC3339)
}

// MarshalJSON renders the time as RFC3339 string or the unavailable sentinel
func (p PublishedTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON accepts RFC3339 strings, anything else becomes unavailable
func (p *PublishedTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		p.Time = time.Time{}
		return nil
	}
	p.Time = t
	return nil
}

// TickerSentiment is sentiment attached to a single ticker within an article
type TickerSentiment struct {
	Ticker string    `json:"ticker"`
	Label  Sentiment `json:"ticker_sentiment_label"`
}

// Article is a canonical news article, URL is its identity
type Article struct {
	Title            string            `json:"title"`
	Summary          string            `json:"summary"`
	URL              string            `json:"url"`
	Published        PublishedTime     `json:"time_published"`
	Source           string            `json:"source,omitempty"`
	BannerImage      string            `json:"banner_image,omitempty"`
	Authors          []string          `json:"authors"`
	Sentiment        Sentiment         `json:"overall_sentiment_label"`
	SentimentScore   *float64          `json:"overall_sentiment_score,omitempty"`
	TickerSentiments []TickerSentiment `json:"ticker_sentiment"`
}

// HasTicker checks if any ticker sentiment matches one of tickers, case-insensitive
func (a Article) HasTicker(tickers []string) bool {
	for _, ts := range a.TickerSentiments {
		for _, t := range tickers {
			if strings.EqualFold(ts.Ticker, strings.TrimSpace(t)) {
				return true
			}
		}
	}
	return false
}
