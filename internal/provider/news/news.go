// Package news serves breaking headlines from RSS and Atom feeds.
//
// Sources are fetched concurrently, each under its own timeout, and the
// merged result is cached briefly so consecutive batches and searches share
// one round of requests.
package news

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"github.com/abelbrown/scroll/internal/content"
	"github.com/abelbrown/scroll/internal/logging"
	"github.com/abelbrown/scroll/internal/provider"
)

const (
	DefaultTimeout  = 10 * time.Second
	DefaultCacheTTL = 5 * time.Minute

	maxConcurrentFetches = 5
	userAgent            = "scroll/0.1 (https://github.com/abelbrown/scroll)"
)

// ErrNoSources is returned when every source failed and nothing is cached.
var ErrNoSources = errors.New("news: no source returned items")

// Source is one feed.
type Source struct {
	Name string
	URL  string
}

// Options configures a Provider. Zero fields take the defaults.
type Options struct {
	Sources    []Source
	Timeout    time.Duration
	CacheTTL   time.Duration
	HTTPClient *http.Client
	Now        func() time.Time

	// MaxAge drops older headlines. Zero keeps everything.
	MaxAge time.Duration

	// MaxPerSource caps each source's share of the cache. Zero means no cap.
	MaxPerSource int
}

// Provider fetches and caches headlines. Safe for concurrent use.
type Provider struct {
	sources  []Source
	timeout  time.Duration
	cacheTTL time.Duration
	maxAge   time.Duration
	perSrc   int
	client   *http.Client
	now      func() time.Time

	mu        sync.Mutex
	cached    []content.Item
	fetchedAt time.Time
}

// New creates a Provider.
func New(opts Options) *Provider {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	sources := make([]Source, len(opts.Sources))
	copy(sources, opts.Sources)

	return &Provider{
		sources:  sources,
		timeout:  opts.Timeout,
		cacheTTL: opts.CacheTTL,
		maxAge:   opts.MaxAge,
		perSrc:   opts.MaxPerSource,
		client:   opts.HTTPClient,
		now:      opts.Now,
	}
}

func (p *Provider) Name() string { return "news" }

// Fetch returns up to req.Count headlines, newest first, preferring items
// with an image.
func (p *Provider) Fetch(ctx context.Context, req provider.Request) ([]content.Item, error) {
	items, err := p.items(ctx)
	if err != nil {
		return nil, err
	}

	withImage := make([]content.Item, 0, len(items))
	rest := make([]content.Item, 0)
	for _, item := range items {
		if content.HasRealImage(item) {
			withImage = append(withImage, item)
		} else {
			rest = append(rest, item)
		}
	}
	out := append(withImage, rest...)
	if len(out) > req.Count {
		out = out[:max(0, req.Count)]
	}
	return out, nil
}

// Search returns cached headlines matching every query term.
func (p *Provider) Search(ctx context.Context, query string, limit int) ([]content.Item, error) {
	items, err := p.items(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]content.Item, 0)
	for _, item := range items {
		if content.Matches(item, query) {
			out = append(out, item)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// Refresh re-fetches every source and replaces the cache when anything
// came back. Readers keep the old cache while the requests run.
func (p *Provider) Refresh(ctx context.Context) (int, error) {
	fresh := p.fetchAll(ctx)
	if len(fresh) == 0 {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		return 0, ErrNoSources
	}

	p.mu.Lock()
	p.cached = fresh
	p.fetchedAt = p.now()
	p.mu.Unlock()
	return len(fresh), nil
}

// items returns the cache, refreshing it when stale. A failed refresh
// serves the stale cache if there is one. Holding mu across the refresh
// makes concurrent callers share one round of requests.
func (p *Provider) items(ctx context.Context) ([]content.Item, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.cached) > 0 && p.now().Sub(p.fetchedAt) < p.cacheTTL {
		return p.cached, nil
	}

	fresh := p.fetchAll(ctx)
	if len(fresh) == 0 {
		if len(p.cached) > 0 {
			return p.cached, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNoSources
	}

	p.cached = fresh
	p.fetchedAt = p.now()
	return p.cached, nil
}

// fetchAll fetches every source in parallel. Failed sources contribute
// nothing; the group itself never fails. Each source is aged and capped
// before the merge, and repeated stories keep their newest copy.
func (p *Provider) fetchAll(ctx context.Context) []content.Item {
	var g errgroup.Group
	g.SetLimit(maxConcurrentFetches)

	now := p.now()
	perSource := make([][]content.Item, len(p.sources))

	for i, src := range p.sources {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			fetchCtx, cancel := context.WithTimeout(ctx, p.timeout)
			defer cancel()

			items, err := p.fetchSource(fetchCtx, src)
			if err != nil {
				logging.Warn("news source failed", "source", src.Name, "error", err)
				return nil
			}
			perSource[i] = capSource(byAge(items, p.maxAge, now), p.perSrc)
			return nil
		})
	}
	_ = g.Wait()

	var all []content.Item
	for _, items := range perSource {
		all = append(all, items...)
	}
	newestFirst(all)
	return dedupStories(content.Dedup(all))
}

func (p *Provider) fetchSource(ctx context.Context, src Source) ([]content.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	now := p.now()
	items := make([]content.Item, 0, len(feed.Items))
	for _, fi := range feed.Items {
		items = append(items, convertFeedItem(fi, src, now))
	}
	return items, nil
}
