package provider

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// minMatchLen drops fragments too short to be useful as search hits.
	minMatchLen = 20
	// maxMatchesPerSource bounds hits reported per profile page.
	maxMatchesPerSource = 3
	// summaryLen truncates each hit for the summary line.
	summaryLen = 200
)

// handleSearch performs a case-insensitive substring search across every
// configured profile source. Sources without a match are omitted; zero
// matches overall yields a deterministic "no results" message, never an
// empty result.
func (p *Provider) handleSearch(ctx context.Context, _ *mcp.CallToolRequest, args searchArgs) (*mcp.CallToolResult, any, error) {
	query := strings.TrimSpace(args.Query)
	if query == "" {
		return errorResult("Error: query parameter is required for search"), nil, nil
	}

	needle := strings.ToLower(query)

	var b strings.Builder
	found := false

	for _, source := range p.cfg.Sources {
		content := p.extractor.Extract(ctx, source.URL)
		if !strings.Contains(strings.ToLower(content), needle) {
			continue
		}

		matches := matchingFragments(content, needle)
		if len(matches) == 0 {
			continue
		}

		if !found {
			fmt.Fprintf(&b, "Search results for '%s':\n\n", query)
			found = true
		}
		fmt.Fprintf(&b, "**%s:**\n", titleCase(source.Name))
		for _, m := range matches {
			fmt.Fprintf(&b, "• %s...\n", m)
		}
		fmt.Fprintf(&b, "Source: %s\n\n", source.URL)
	}

	if !found {
		slog.Debug("provider: search had no hits", "query", query)
		return textResult(fmt.Sprintf("No results found for '%s' in the profile content.", query)), nil, nil
	}

	return textResult(b.String()), nil, nil
}

// matchingFragments splits extracted content on blank lines and keeps
// fragments that contain the needle and exceed the minimum length.
func matchingFragments(content, needle string) []string {
	var matches []string
	for _, fragment := range strings.Split(content, "\n\n") {
		trimmed := strings.TrimSpace(fragment)
		if len(trimmed) <= minMatchLen {
			continue
		}
		if !strings.Contains(strings.ToLower(trimmed), needle) {
			continue
		}
		matches = append(matches, truncate(trimmed, summaryLen))
		if len(matches) == maxMatchesPerSource {
			break
		}
	}
	return matches
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
