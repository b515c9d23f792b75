// Package wiki fetches Wikipedia articles through the MediaWiki action API.
//
// Every lookup is one generator query returning intro extracts, thumbnails
// and canonical URLs, so a batch of N articles costs a single request.
package wiki

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/abelbrown/scroll/internal/content"
)

const (
	defaultBaseURL   = "https://en.wikipedia.org"
	defaultUserAgent = "scroll/0.1 (https://github.com/abelbrown/scroll)"

	// The extracts module caps intro extracts per request.
	maxBatch = 20

	wordsPerMinute = 200
)

// HTTPClient allows injection for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL points the client at another wiki (or a test server).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithRateLimit sets the request rate.
func WithRateLimit(every time.Duration, burst int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Every(every), max(1, burst))
	}
}

// WithUserAgent sets the User-Agent Wikimedia asks API clients to send.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// Client is a Wikipedia API client. Safe for concurrent use.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient HTTPClient
	limiter    *rate.Limiter
}

// NewClient creates a client for English Wikipedia.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		userAgent:  defaultUserAgent,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(200*time.Millisecond), 5),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Random returns up to n random main-namespace articles.
func (c *Client) Random(ctx context.Context, n int) ([]content.Item, error) {
	return c.query(ctx, url.Values{
		"generator":    {"random"},
		"grnnamespace": {"0"},
		"grnlimit":     {strconv.Itoa(clampBatch(n))},
	}, n)
}

// Search returns articles matching query, best match first.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]content.Item, error) {
	if strings.TrimSpace(query) == "" {
		return []content.Item{}, nil
	}
	return c.query(ctx, url.Values{
		"generator":    {"search"},
		"gsrsearch":    {query},
		"gsrnamespace": {"0"},
		"gsrlimit":     {strconv.Itoa(clampBatch(limit))},
	}, limit)
}

// Related returns articles similar to the given title.
func (c *Client) Related(ctx context.Context, title string, n int) ([]content.Item, error) {
	if strings.TrimSpace(title) == "" {
		return []content.Item{}, nil
	}
	items, err := c.Search(ctx, "morelike:"+title, n+1)
	if err != nil {
		return nil, err
	}

	out := make([]content.Item, 0, len(items))
	for _, item := range items {
		if !strings.EqualFold(item.Title, title) {
			out = append(out, item)
		}
	}
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

type queryResponse struct {
	Query struct {
		Pages []page `json:"pages"`
	} `json:"query"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

type page struct {
	PageID      int64      `json:"pageid"`
	Title       string     `json:"title"`
	Extract     string     `json:"extract"`
	Description string     `json:"description"`
	FullURL     string     `json:"fullurl"`
	Index       int        `json:"index"`
	Missing     bool       `json:"missing"`
	Thumbnail   *thumbnail `json:"thumbnail"`
}

type thumbnail struct {
	Source string `json:"source"`
}

func (c *Client) query(ctx context.Context, params url.Values, n int) ([]content.Item, error) {
	if n <= 0 {
		return []content.Item{}, nil
	}

	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("formatversion", "2")
	params.Set("prop", "extracts|pageimages|info|description")
	params.Set("exintro", "1")
	params.Set("explaintext", "1")
	params.Set("exlimit", "max")
	params.Set("piprop", "thumbnail")
	params.Set("pithumbsize", "800")
	params.Set("inprop", "url")

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wiki: rate limiter wait failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/w/api.php?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("wiki: failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wiki: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("wiki: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var qr queryResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 10<<20)).Decode(&qr); err != nil {
		return nil, fmt.Errorf("wiki: failed to parse response: %w", err)
	}
	if qr.Error != nil {
		return nil, fmt.Errorf("wiki: api error %s: %s", qr.Error.Code, qr.Error.Info)
	}

	pages := qr.Query.Pages
	sort.SliceStable(pages, func(i, j int) bool { return pages[i].Index < pages[j].Index })

	items := make([]content.Item, 0, len(pages))
	for _, p := range pages {
		if p.Missing || p.PageID == 0 {
			continue
		}
		items = append(items, toItem(p))
		if len(items) == n {
			break
		}
	}
	return items, nil
}

func toItem(p page) content.Item {
	item := content.Item{
		ID:       strconv.FormatInt(p.PageID, 10),
		Kind:     content.KindWiki,
		Title:    p.Title,
		Body:     strings.TrimSpace(p.Extract),
		URL:      p.FullURL,
		Category: p.Description,
		ReadTime: readTime(p.Extract),
	}
	if p.Thumbnail != nil {
		item.Image = p.Thumbnail.Source
	}
	return item
}

// readTime estimates minutes to read, at least one.
func readTime(text string) int {
	return max(1, len(strings.Fields(text))/wordsPerMinute)
}

func clampBatch(n int) int {
	return min(max(n, 1), maxBatch)
}
