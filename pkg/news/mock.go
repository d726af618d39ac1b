package news

import (
	"strings"
	"time"

	"github.com/umputun/finfeed/pkg/domain"
)

// MockFeed returns the fixed sample articles, optionally filtered by tickers and topic keywords.
// Filters combine with AND, values within one filter with OR. Every call builds new articles.
func MockFeed(tickers, topics []string) []domain.Article {
	res := []domain.Article{}
	for _, art := range mockArticles() {
		if len(tickers) > 0 && !art.HasTicker(tickers) {
			continue
		}
		if len(topics) > 0 && !mentionsTopic(art, topics) {
			continue
		}
		res = append(res, art)
	}
	return res
}

// mentionsTopic checks title and summary for any topic keyword, "financial_markets" matches "financial markets"
func mentionsTopic(art domain.Article, topics []string) bool {
	text := strings.ToLower(art.Title + " " + art.Summary)
	for _, t := range topics {
		kw := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(t, "_", " ")))
		if kw != "" && strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func mockArticles() []domain.Article {
	published := func(hour, minute int) domain.PublishedTime {
		return domain.PublishedTime{Time: time.Date(2024, time.April, 16, hour, minute, 0, 0, time.UTC)}
	}
	return []domain.Article{
		{
			Title:     "Market Analysis: Tech Stocks Show Strong Growth",
			Summary:   "Major tech companies reported better-than-expected earnings, leading to a surge in stock prices.",
			URL:       "https://example.com/article1",
			Published: published(14, 30),
			Source:    "Mock Markets",
			Authors:   []string{"John Smith", "Jane Doe"},
			Sentiment: domain.SentimentBullish,
			TickerSentiments: []domain.TickerSentiment{
				{Ticker: "AAPL", Label: domain.SentimentBullish},
				{Ticker: "MSFT", Label: domain.SentimentSomewhatBullish},
			},
		},
		{
			Title:     "Federal Reserve Announces Interest Rate Decision",
			Summary:   "The Federal Reserve has decided to maintain current interest rates, citing stable economic indicators.",
			URL:       "https://example.com/article2",
			Published: published(14, 0),
			Source:    "Mock Markets",
			Authors:   []string{"Robert Johnson"},
			Sentiment: domain.SentimentNeutral,
			TickerSentiments: []domain.TickerSentiment{
				{Ticker: "JPM", Label: domain.SentimentNeutral},
				{Ticker: "BAC", Label: domain.SentimentNeutral},
			},
		},
		{
			Title:     "Energy Sector Faces Challenges Amid Market Volatility",
			Summary:   "Oil prices fluctuate as geopolitical tensions impact global energy markets.",
			URL:       "https://example.com/article3",
			Published: published(13, 30),
			Source:    "Mock Markets",
			Authors:   []string{"Sarah Williams"},
			Sentiment: domain.SentimentBearish,
			TickerSentiments: []domain.TickerSentiment{
				{Ticker: "XOM", Label: domain.SentimentBearish},
				{Ticker: "CVX", Label: domain.SentimentSomewhatBearish},
			},
		},
		{
			Title:     "Cryptocurrency Market Shows Signs of Recovery",
			Summary:   "Bitcoin and Ethereum show strong recovery after recent market correction.",
			URL:       "https://example.com/article4",
			Published: published(13, 0),
			Source:    "Mock Markets",
			Authors:   []string{"Michael Chen"},
			Sentiment: domain.SentimentSomewhatBullish,
			TickerSentiments: []domain.TickerSentiment{
				{Ticker: "BTC", Label: domain.SentimentBullish},
				{Ticker: "ETH", Label: domain.SentimentSomewhatBullish},
			},
		},
		{
			Title:     "Retail Sector Faces Headwinds",
			Summary:   "Major retailers report declining sales amid changing consumer behavior.",
			URL:       "https://example.com/article5",
			Published: published(12, 0),
			Source:    "Mock Markets",
			Authors:   []string{"Emily Brown"},
			Sentiment: domain.SentimentSomewhatBearish,
			TickerSentiments: []domain.TickerSentiment{
				{Ticker: "WMT", Label: domain.SentimentNeutral},
				{Ticker: "TGT", Label: domain.SentimentBearish},
			},
		},
	}
}
