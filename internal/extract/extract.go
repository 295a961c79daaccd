package extract

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	// minFragmentLen filters out navigation crumbs and other short noise.
	minFragmentLen = 10
	// maxFragments bounds the per-page excerpt.
	maxFragments = 20
	// maxFallbackChars bounds the whole-document fallback.
	maxFallbackChars = 2000

	maxBodyBytes = 512 * 1024
)

// selectors are tried in order; site-specific content containers first,
// generic block elements as the last resort. The first selector that
// matches at least one element wins and all of its matches are used.
var selectors = []string{
	`div[data-dtype="d"]`,
	".zfr3Q",
	".uGdb3",
	"p, h1, h2, h3, li",
}

// Extractor fetches a page and reduces it to a readable text excerpt.
type Extractor struct {
	client *http.Client
}

func New(timeout time.Duration) *Extractor {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Extractor{
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Extract retrieves url and returns a bounded excerpt of its content.
// Failures are recovered into descriptive text, never returned as errors:
// the caller always needs some text to hand back to the user.
func (e *Extractor) Extract(ctx context.Context, url string) string {
	slog.Debug("extract: fetching", "url", url)

	doc, err := e.fetch(ctx, url)
	if err != nil {
		slog.Warn("extract: fetch failed", "url", url, "error", err)
		return fmt.Sprintf("Unable to fetch content from %s. Error: %v", url, err)
	}

	for _, sel := range selectors {
		matches := doc.Find(sel)
		if matches.Length() == 0 {
			continue
		}

		var fragments []string
		matches.Each(func(_ int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if len(text) > minFragmentLen {
				fragments = append(fragments, text)
			}
		})

		if len(fragments) > 0 {
			if len(fragments) > maxFragments {
				fragments = fragments[:maxFragments]
			}
			slog.Debug("extract: done", "url", url, "selector", sel, "fragments", len(fragments))
			return strings.Join(fragments, "\n\n")
		}
		break
	}

	// Fallback: all document text, bounded.
	text := strings.TrimSpace(doc.Text())
	text = strings.Join(strings.Fields(text), " ")
	text = truncate(text, maxFallbackChars)
	if text == "" {
		return fmt.Sprintf("No readable content found at %s.", url)
	}
	slog.Debug("extract: fallback text", "url", url, "bytes", len(text))
	return text
}

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

func (e *Extractor) fetch(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "vita/1.0")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d %s", resp.StatusCode, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	return doc, nil
}
