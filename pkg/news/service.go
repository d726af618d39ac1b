// Package news serves the news feed: provider calls with retries, a single-slot cache with
// rate-limit cooldown and the mock feed fallback.
package news

import (
	"context"
	"errors"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/singleflight"

	"github.com/umputun/finfeed/pkg/domain"
	"github.com/umputun/finfeed/pkg/provider"
)

//go:generate moq -out mocks/provider.go -pkg mocks -skip-ensure -fmt goimports . Provider

// DefaultCooldown is how long a rate-limited provider is left alone
const DefaultCooldown = 60 * time.Second

// Provider fetches raw news from the external api
type Provider interface {
	Fetch(ctx context.Context, q domain.Query) (*provider.Response, error)
}

// Service gets news from provider or cache, falling back to the mock feed.
// It never fails because of the provider.
type Service struct {
	provider  Provider
	cache     *Cache
	retry     *RetryPolicy
	formatter *Formatter
	cooldown  time.Duration
	defaults  domain.Query
	group     singleflight.Group
}

// Params for NewService, zero values get defaults
type Params struct {
	Provider Provider
	Cache    *Cache
	Retry    *RetryPolicy
	Cooldown time.Duration
	Defaults domain.Query // per field for empty query fields, topics only if no tickers given
}

// Options alter a single GetNews call
type Options struct {
	ForceRefresh bool // skip cache lookup
	UseMock      bool // return mock feed right away
}

// NewService makes news service
func NewService(p Params) *Service {
	res := &Service{
		provider:  p.Provider,
		cache:     p.Cache,
		retry:     p.Retry,
		formatter: NewFormatter(),
		cooldown:  p.Cooldown,
		defaults:  p.Defaults,
	}
	if res.cache == nil {
		res.cache = NewCache(DefaultTTL)
	}
	if res.retry == nil {
		res.retry = NewRetryPolicy(3, 2*time.Second, 30*time.Second, TerminalErrors()...)
	}
	if res.cooldown <= 0 {
		res.cooldown = DefaultCooldown
	}
	return res
}

// TerminalErrors are provider errors not worth retrying
func TerminalErrors() []error {
	return []error{provider.ErrQuotaExceeded, provider.ErrMalformedResponse, provider.ErrNoAPIKey}
}

// GetNews returns the feed for query. Cache is global, a valid entry is served for any query.
// Concurrent refreshes share a single provider call, which isn't cancelled with ctx so its
// result still lands in the cache. A shared mock fallback is filtered per caller.
func (s *Service) GetNews(ctx context.Context, q domain.Query, opts Options) domain.Feed {
	if opts.UseMock {
		lgr.Printf("[DEBUG] mock feed requested")
		return domain.NewFeed(MockFeed(q.Tickers, q.Topics), domain.SourceMock)
	}

	if !opts.ForceRefresh {
		if e, ok := s.cache.Get(); ok {
			lgr.Printf("[DEBUG] serving cached feed, %d articles, rate limited: %v", len(e.Feed), e.RateLimited)
			feed := domain.NewFeed(e.Feed, domain.SourceCache)
			feed.RateLimited = e.RateLimited
			return feed
		}
	}

	fetchCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan("refresh", func() (any, error) {
		return s.refresh(fetchCtx, q), nil
	})

	select {
	case res := <-ch:
		feed := res.Val.(domain.Feed)
		if res.Shared && feed.Source == domain.SourceMock {
			// mock fallback of a joined refresh is filtered by the first caller's query, refilter for this one
			rateLimited := feed.RateLimited
			feed = domain.NewFeed(MockFeed(q.Tickers, q.Topics), domain.SourceMock)
			feed.RateLimited = rateLimited
		}
		return feed
	case <-ctx.Done():
		lgr.Printf("[DEBUG] request gone before refresh completed: %v", ctx.Err())
		return domain.NewFeed(MockFeed(q.Tickers, q.Topics), domain.SourceMock)
	}
}

// refresh calls provider with retries and updates cache. Fallback mock is filtered by
// the caller's query, without defaults.
func (s *Service) refresh(ctx context.Context, q domain.Query) domain.Feed {
	var resp *provider.Response
	err := s.retry.Execute(ctx, func(ctx context.Context) error {
		r, err := s.provider.Fetch(ctx, s.withDefaults(q))
		if err != nil {
			lgr.Printf("[WARN] provider fetch failed: %v", err)
			return err
		}
		resp = r
		return nil
	})

	switch {
	case errors.Is(err, provider.ErrQuotaExceeded):
		lgr.Printf("[WARN] provider rate limited, serving mock feed for %v", s.cooldown)
		mock := MockFeed(q.Tickers, q.Topics)
		s.cache.PutRateLimited(mock, s.cooldown)
		feed := domain.NewFeed(mock, domain.SourceMock)
		feed.RateLimited = true
		return feed
	case err != nil:
		lgr.Printf("[WARN] serving mock feed, %v", err)
		return domain.NewFeed(MockFeed(q.Tickers, q.Topics), domain.SourceMock)
	case resp == nil || len(resp.Feed) == 0:
		lgr.Printf("[WARN] serving mock feed, empty provider response")
		return domain.NewFeed(MockFeed(q.Tickers, q.Topics), domain.SourceMock)
	}

	articles := s.formatter.Format(resp.Feed)
	s.cache.Put(articles)
	lgr.Printf("[INFO] fetched %d articles from provider", len(articles))
	return domain.NewFeed(articles, domain.SourceProvider)
}

// withDefaults fills empty query fields from service defaults
func (s *Service) withDefaults(q domain.Query) domain.Query {
	if len(q.Topics) == 0 && len(q.Tickers) == 0 {
		q.Topics = s.defaults.Topics
	}
	if q.Sort == "" {
		q.Sort = s.defaults.Sort
	}
	if q.Limit == 0 {
		q.Limit = s.defaults.Limit
	}
	return q
}
