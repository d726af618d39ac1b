package news

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/finfeed/pkg/domain"
	"github.com/umputun/finfeed/pkg/provider"
)

func TestFormatter_Format(t *testing.T) {
	score := 0.22
	raw := []provider.Article{
		{
			Title:                 "Apple <b>beats</b> estimates",
			Summary:               "Strong iPhone sales &amp; services",
			URL:                   "https://example.com/apple",
			TimePublished:         "20240416T143000",
			Authors:               []string{"John Smith", " ", "Jane Doe"},
			Source:                "Reuters",
			OverallSentimentScore: &score,
			OverallSentimentLabel: "Somewhat-Bullish",
			TickerSentiment: []provider.TickerSentiment{
				{Ticker: "AAPL", SentimentLabel: "Bullish"},
				{Ticker: "", SentimentLabel: "Bearish"},
				{Ticker: "MSFT", SentimentLabel: "somewhat_bearish"},
			},
		},
		{}, // everything missing
	}

	res := NewFormatter().Format(raw)
	require.Len(t, res, 2)

	a := res[0]
	assert.Equal(t, "Apple beats estimates", a.Title)
	assert.Equal(t, "Strong iPhone sales & services", a.Summary)
	assert.Equal(t, "https://example.com/apple", a.URL)
	assert.Equal(t, time.Date(2024, 4, 16, 14, 30, 0, 0, time.UTC), a.Published.Time)
	assert.Equal(t, []string{"John Smith", "Jane Doe"}, a.Authors)
	assert.Equal(t, "Reuters", a.Source)
	assert.Equal(t, domain.SentimentSomewhatBullish, a.Sentiment)
	require.NotNil(t, a.SentimentScore)
	assert.Equal(t, []domain.TickerSentiment{
		{Ticker: "AAPL", Label: domain.SentimentBullish},
		{Ticker: "MSFT", Label: domain.SentimentSomewhatBearish},
	}, a.TickerSentiments)

	b := res[1]
	assert.Equal(t, NoTitle, b.Title)
	assert.Equal(t, NoSummary, b.Summary)
	assert.Equal(t, NoURL, b.URL)
	assert.False(t, b.Published.Available())
	assert.NotNil(t, b.Authors)
	assert.Empty(t, b.Authors)
	assert.NotNil(t, b.TickerSentiments)
	assert.Empty(t, b.TickerSentiments)
	assert.Equal(t, domain.SentimentNeutral, b.Sentiment)
}

func TestFormatter_MissingSummaryAlwaysPlaceholder(t *testing.T) {
	f := NewFormatter()
	for _, summary := range []string{"", "   ", "<p></p>", "<script>alert(1)</script>"} {
		res := f.Format([]provider.Article{{Title: "t", Summary: summary}})
		require.Len(t, res, 1)
		assert.Equal(t, NoSummary, res[0].Summary, "summary %q", summary)
	}
}

func TestFormatter_SentimentFallbacks(t *testing.T) {
	f := NewFormatter()
	tbl := []struct {
		label string
		score *float64
		want  domain.Sentiment
	}{
		{"Bearish", nil, domain.SentimentBearish},
		{"SOMEWHAT BULLISH", nil, domain.SentimentSomewhatBullish},
		{"", ptr(-0.5), domain.SentimentBearish},
		{"", ptr(-0.2), domain.SentimentSomewhatBearish},
		{"", ptr(0.0), domain.SentimentNeutral},
		{"", ptr(0.2), domain.SentimentSomewhatBullish},
		{"", ptr(0.35), domain.SentimentBullish},
		{"unknown", nil, domain.SentimentNeutral},
		{"", nil, domain.SentimentNeutral},
	}
	for _, tt := range tbl {
		res := f.Format([]provider.Article{{OverallSentimentLabel: tt.label, OverallSentimentScore: tt.score}})
		require.Len(t, res, 1)
		assert.Equal(t, tt.want, res[0].Sentiment, "label %q", tt.label)
	}
}

func TestFormatter_MalformedTimeKeepsBatch(t *testing.T) {
	raw := []provider.Article{
		{Title: "one", TimePublished: "garbage"},
		{Title: "two", TimePublished: "20240230T250000"},
		{Title: "three", TimePublished: "20240101T000000"},
	}
	res := NewFormatter().Format(raw)
	require.Len(t, res, 3)
	assert.False(t, res[0].Published.Available())
	assert.False(t, res[1].Published.Available())
	assert.True(t, res[2].Published.Available())
	assert.Equal(t, "three", res[2].Title)
}

func TestParsePublished(t *testing.T) {
	t.Run("compact format round trip", func(t *testing.T) {
		inputs := []string{"20240416T143000", "19991231T235959", "20000229T000001", "20301001T120000"}
		for _, in := range inputs {
			p := ParsePublished(in)
			require.True(t, p.Available(), in)
			assert.Equal(t, in, p.UTC().Format("20060102T150405"))
		}
	})

	t.Run("short and rfc3339 formats", func(t *testing.T) {
		p := ParsePublished("20240416T1430")
		require.True(t, p.Available())
		assert.Equal(t, time.Date(2024, 4, 16, 14, 30, 0, 0, time.UTC), p.Time)

		p = ParsePublished("2024-04-16T14:30:00+02:00")
		require.True(t, p.Available())
		assert.Equal(t, time.Date(2024, 4, 16, 12, 30, 0, 0, time.UTC), p.Time)
	})

	t.Run("malformed gives sentinel", func(t *testing.T) {
		for _, in := range []string{"", "2024", "not a date", "20241301T000000", "20240416 143000"} {
			p := ParsePublished(in)
			assert.False(t, p.Available(), in)
			assert.Equal(t, domain.TimeUnavailable, p.String())
		}
	})
}

func ptr(v float64) *float64 { return &v }
