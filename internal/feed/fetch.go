package feed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"podtag/internal/config"
)

const userAgent = "Mozilla/5.0 (compatible; podtag/1.0)"

// Fetcher retrieves feed documents over HTTP.
type Fetcher struct {
	client      *http.Client
	urlTemplate string
}

// NewFetcher builds a Fetcher from feed configuration.
func NewFetcher(cfg config.Feed) *Fetcher {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Fetcher{
		client:      &http.Client{Timeout: timeout},
		urlTemplate: cfg.URLTemplate,
	}
}

// URL expands the configured template with the album id.
func (f *Fetcher) URL(albumID string) string {
	return fmt.Sprintf(f.urlTemplate, albumID)
}

// Fetch downloads and parses the feed for an album.
func (f *Fetcher) Fetch(ctx context.Context, albumID string) (*Channel, error) {
	if !strings.Contains(f.urlTemplate, "%s") {
		return nil, fmt.Errorf("feed url template %q must contain %%s", f.urlTemplate)
	}
	feedURL := f.URL(albumID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", feedURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch feed %s: unexpected status %s", feedURL, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read feed body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("fetch feed %s: empty response body", feedURL)
	}

	return Parse(body)
}
