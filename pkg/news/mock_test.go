package news

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/finfeed/pkg/domain"
)

func TestMockFeed(t *testing.T) {
	tbl := []struct {
		name    string
		tickers []string
		topics  []string
		want    []string
	}{
		{name: "no filters", want: []string{
			"https://example.com/article1", "https://example.com/article2", "https://example.com/article3",
			"https://example.com/article4", "https://example.com/article5",
		}},
		{name: "single ticker", tickers: []string{"AAPL"}, want: []string{"https://example.com/article1"}},
		{name: "ticker case insensitive", tickers: []string{"xom"}, want: []string{"https://example.com/article3"}},
		{name: "tickers or", tickers: []string{"BTC", "WMT"},
			want: []string{"https://example.com/article4", "https://example.com/article5"}},
		{name: "topic keyword", topics: []string{"energy"}, want: []string{"https://example.com/article3"}},
		{name: "topic underscore", topics: []string{"interest_rates"}, want: []string{"https://example.com/article2"}},
		{name: "ticker and topic", tickers: []string{"AAPL", "XOM"}, topics: []string{"energy"},
			want: []string{"https://example.com/article3"}},
		{name: "nothing matches", tickers: []string{"NOPE"}, want: []string{}},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			res := MockFeed(tt.tickers, tt.topics)
			require.NotNil(t, res)
			urls := []string{}
			for _, a := range res {
				urls = append(urls, a.URL)
			}
			assert.Equal(t, tt.want, urls)
		})
	}
}

func TestMockFeed_Shape(t *testing.T) {
	for _, a := range MockFeed(nil, nil) {
		assert.NotEmpty(t, a.Title)
		assert.NotEmpty(t, a.Summary)
		assert.True(t, a.Published.Available())
		assert.NotEmpty(t, a.Authors)
		assert.NotEmpty(t, a.TickerSentiments)
		_, ok := domain.ParseSentiment(string(a.Sentiment))
		assert.True(t, ok, "sentiment %q", a.Sentiment)
	}
}

func TestMockFeed_FreshCopies(t *testing.T) {
	first := MockFeed(nil, nil)
	first[0].Title = "changed"
	first[0].TickerSentiments[0].Ticker = "ZZZ"

	second := MockFeed(nil, nil)
	assert.Equal(t, "Market Analysis: Tech Stocks Show Strong Growth", second[0].Title)
	assert.Equal(t, "AAPL", second[0].TickerSentiments[0].Ticker)
}
