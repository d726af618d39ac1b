package news

import (
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/finfeed/pkg/domain"
	"github.com/umputun/finfeed/pkg/provider"
)

// placeholders for missing article fields
const (
	NoTitle   = "No title available"
	NoSummary = "No summary available"
	NoURL     = "#"
)

// provider layouts, full compact form first
var publishedLayouts = []string{"20060102T150405", "20060102T1504", time.RFC3339}

// Formatter converts raw provider articles to domain articles
type Formatter struct {
	policy *bluemonday.Policy
}

// NewFormatter makes a formatter stripping any markup from provider text
func NewFormatter() *Formatter {
	return &Formatter{policy: bluemonday.StrictPolicy()}
}

// Format converts the whole batch, a bad article gets placeholders instead of failing others
func (f *Formatter) Format(raw []provider.Article) []domain.Article {
	res := make([]domain.Article, 0, len(raw))
	for _, r := range raw {
		res = append(res, f.article(r))
	}
	return res
}

func (f *Formatter) article(r provider.Article) domain.Article {
	art := domain.Article{
		Title:            f.text(r.Title, NoTitle),
		Summary:          f.text(r.Summary, NoSummary),
		URL:              strings.TrimSpace(r.URL),
		Published:        ParsePublished(r.TimePublished),
		Source:           strings.TrimSpace(r.Source),
		BannerImage:      strings.TrimSpace(r.BannerImage),
		Authors:          make([]string, 0, len(r.Authors)),
		Sentiment:        overallSentiment(r),
		SentimentScore:   r.OverallSentimentScore,
		TickerSentiments: make([]domain.TickerSentiment, 0, len(r.TickerSentiment)),
	}
	if art.URL == "" {
		art.URL = NoURL
	}

	for _, a := range r.Authors {
		if a = strings.TrimSpace(a); a != "" {
			art.Authors = append(art.Authors, a)
		}
	}

	for _, ts := range r.TickerSentiment {
		if ts.Ticker == "" {
			continue
		}
		label, _ := domain.ParseSentiment(ts.SentimentLabel)
		art.TickerSentiments = append(art.TickerSentiments, domain.TickerSentiment{Ticker: ts.Ticker, Label: label})
	}
	return art
}

// text strips markup from s and returns placeholder if nothing left.
// Sanitized text is unescaped back as it goes to json, not html.
func (f *Formatter) text(s, placeholder string) string {
	clean := strings.TrimSpace(html.UnescapeString(f.policy.Sanitize(s)))
	if clean == "" {
		return placeholder
	}
	return clean
}

// overallSentiment uses the label if known, falls back to score, then to neutral
func overallSentiment(r provider.Article) domain.Sentiment {
	if label, ok := domain.ParseSentiment(r.OverallSentimentLabel); ok {
		return label
	}
	if r.OverallSentimentScore != nil {
		return domain.SentimentFromScore(*r.OverallSentimentScore)
	}
	return domain.SentimentNeutral
}

// ParsePublished parses provider timestamp as UTC, unparsable input gives unavailable time
func ParsePublished(s string) domain.PublishedTime {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.PublishedTime{}
	}
	for _, layout := range publishedLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return domain.PublishedTime{Time: t.UTC()}
		}
	}
	return domain.PublishedTime{}
}
