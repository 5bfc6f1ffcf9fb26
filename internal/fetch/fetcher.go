// Package fetch retrieves and parses RSS/Atom feeds, converting them to
// feeds.Item values for the poller.
package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"

	"github.com/abelbrown/tickerd/internal/config"
	"github.com/abelbrown/tickerd/internal/feeds"
)

// hostRateInterval is the minimum spacing between requests to one host.
// NYT serves several of the default feeds from the same host; retries
// during backoff must not hammer it.
const hostRateInterval = 500 * time.Millisecond

// Fetcher retrieves items from feed sources.
type Fetcher struct {
	client    *http.Client
	userAgent string

	mu       sync.Mutex
	limiters map[string]*rate.Limiter // per-host
}

// New creates a Fetcher with the given HTTP timeout and user agent.
func New(timeout time.Duration, userAgent string) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		limiters:  make(map[string]*rate.Limiter),
	}
}

// Fetch retrieves and parses one source. Returns the parsed items or a
// *FetchError / *ParseError. Respects context cancellation.
func (f *Fetcher) Fetch(ctx context.Context, src config.Source) ([]feeds.Item, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if err := f.waitForHost(ctx, src.URL); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, &FetchError{Source: src.Name, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml, */*")

	resp, err := f.client.Do(req)
	if err != nil {
		// Cancellation is not a feed failure
		if errors.Is(err, context.Canceled) {
			return nil, context.Canceled
		}
		return nil, &FetchError{Source: src.Name, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Source: src.Name, Err: fmt.Errorf("HTTP %d %s", resp.StatusCode, resp.Status)}
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, &ParseError{Source: src.Name, Err: err}
	}
	if len(feed.Items) == 0 {
		return nil, &ParseError{Source: src.Name, Err: errors.New("no entries found in feed")}
	}

	now := time.Now()
	items := make([]feeds.Item, 0, len(feed.Items))
	for _, feedItem := range feed.Items {
		items = append(items, convertFeedItem(feedItem, src, now))
	}
	return items, nil
}

// waitForHost blocks until the per-host rate limiter admits a request.
func (f *Fetcher) waitForHost(ctx context.Context, rawURL string) error {
	host := ""
	if u, err := url.Parse(rawURL); err == nil {
		host = u.Host
	}

	f.mu.Lock()
	limiter, ok := f.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(hostRateInterval), 1)
		f.limiters[host] = limiter
	}
	f.mu.Unlock()

	return limiter.Wait(ctx)
}

// convertFeedItem converts a gofeed.Item to a feeds.Item.
func convertFeedItem(feedItem *gofeed.Item, src config.Source, fetchTime time.Time) feeds.Item {
	// Published time falls back to fetch time
	published := fetchTime
	if feedItem.PublishedParsed != nil {
		published = *feedItem.PublishedParsed
	} else if feedItem.UpdatedParsed != nil {
		published = *feedItem.UpdatedParsed
	}

	author := ""
	if feedItem.Author != nil {
		author = feedItem.Author.Name
	}

	// Prefer Description; fall back to a content snippet
	summary := feedItem.Description
	if summary == "" && feedItem.Content != "" {
		summary = truncate(feedItem.Content, 500)
	}

	return feeds.Item{
		ID:         generateID(feedItem),
		SourceName: src.Name,
		SourceURL:  src.URL,
		Title:      feedItem.Title,
		Summary:    summary,
		URL:        feedItem.Link,
		Author:     author,
		Category:   src.Category,
		Published:  published,
		Fetched:    fetchTime,
	}
}

// generateID creates a deterministic ID for a feed item.
// Uses the GUID if available, otherwise hashes the URL.
func generateID(feedItem *gofeed.Item) string {
	if feedItem.GUID != "" {
		return hashString(feedItem.GUID)
	}
	if feedItem.Link != "" {
		return hashString(feedItem.Link)
	}
	key := feedItem.Title
	if feedItem.PublishedParsed != nil {
		key += feedItem.PublishedParsed.String()
	}
	return hashString(key)
}

func hashString(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:8]) // 16 character hex string
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
