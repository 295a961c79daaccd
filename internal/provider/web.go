package provider

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	bravesearch "github.com/cnosuke/go-brave-search"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type webMentionsArgs struct {
	Query string `json:"query" jsonschema:"What to look for alongside the person's name"`
	Count int    `json:"count,omitempty" jsonschema:"Number of results to return (default 5, max 20)"`
}

// registerWebTool adds the web-mentions search when a Brave API key is
// configured. Without a key the catalog simply omits the tool.
func (p *Provider) registerWebTool() {
	apiKey := p.cfg.Secrets.BraveAPIKey
	if apiKey == "" {
		return
	}

	client, err := bravesearch.NewClient(apiKey)
	if err != nil {
		slog.Warn("provider: brave client init failed, web tool disabled", "error", err)
		return
	}

	mcp.AddTool(p.server, &mcp.Tool{
		Name:        "search_web_mentions",
		Description: fmt.Sprintf("Search the web for pages mentioning %s", p.cfg.Person),
	}, traced("search_web_mentions", func(ctx context.Context, _ *mcp.CallToolRequest, args webMentionsArgs) (*mcp.CallToolResult, any, error) {
		query := strings.TrimSpace(args.Query)
		if query == "" {
			return errorResult("Error: query parameter is required"), nil, nil
		}

		count := args.Count
		if count <= 0 {
			count = 5
		}
		if count > 20 {
			count = 20
		}

		slog.Debug("provider: web mentions search", "query", query, "count", count)

		resp, err := client.WebSearch(ctx, p.cfg.Person+" "+query, &bravesearch.WebSearchParams{
			Count: count,
		})
		if err != nil {
			return errorResult(fmt.Sprintf("Error: web search failed: %v", err)), nil, nil
		}

		results := resp.GetWebResults()
		if len(results) == 0 {
			return textResult("No results found."), nil, nil
		}

		var b strings.Builder
		for i, r := range results {
			if i > 0 {
				b.WriteString("\n---\n")
			}
			fmt.Fprintf(&b, "%s\n%s\n%s", r.Title, r.URL, r.Description)
		}
		return textResult(b.String()), nil, nil
	}))
}
