package provider

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type pageArgs struct{}

type socialLinksArgs struct {
	Platform string `json:"platform,omitempty" jsonschema:"Specific platform (linkedin, instagram, facebook, youtube) or 'all' for all platforms"`
}

type searchArgs struct {
	Query string `json:"query" jsonschema:"Search query to find specific information"`
}

func (p *Provider) registerTools() {
	mcp.AddTool(p.server, &mcp.Tool{
		Name:        "get_profile_overview",
		Description: fmt.Sprintf("Fetch %s's professional overview and background information", p.cfg.Person),
	}, traced("get_profile_overview", p.pageHandler("overview")))

	mcp.AddTool(p.server, &mcp.Tool{
		Name:        "get_experience",
		Description: "Fetch detailed work experience and professional history",
	}, traced("get_experience", p.pageHandler("experience")))

	mcp.AddTool(p.server, &mcp.Tool{
		Name:        "get_publications",
		Description: "Fetch scientific publications and conference presentations",
	}, traced("get_publications", p.pageHandler("publications")))

	mcp.AddTool(p.server, &mcp.Tool{
		Name:        "get_career_timeline",
		Description: "Fetch career timeline and professional milestones",
	}, traced("get_career_timeline", p.pageHandler("career_timeline")))

	mcp.AddTool(p.server, &mcp.Tool{
		Name:        "get_social_links",
		Description: "Get social media profiles and links",
	}, traced("get_social_links", p.handleSocialLinks))

	mcp.AddTool(p.server, &mcp.Tool{
		Name:        "search_profile_content",
		Description: "Search across all profile content for specific information",
	}, traced("search_profile_content", p.handleSearch))

	p.registerWebTool()
}

// pageHandler builds the handler for a single informational page tool.
// Extraction failures are already recovered into text by the extractor, so
// the handler itself cannot fail.
func (p *Provider) pageHandler(sourceName string) func(context.Context, *mcp.CallToolRequest, pageArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ pageArgs) (*mcp.CallToolResult, any, error) {
		source, ok := p.cfg.SourceByName(sourceName)
		if !ok {
			return errorResult(fmt.Sprintf("Error: source %q is not configured", sourceName)), nil, nil
		}

		content := p.extractor.Extract(ctx, source.URL)
		slog.Debug("provider: page fetched", "source", sourceName, "bytes", len(content))

		text := fmt.Sprintf("%s:\n\n%s\n\nSource: %s", source.Title, content, source.URL)
		return textResult(text), nil, nil
	}
}

func (p *Provider) handleSocialLinks(ctx context.Context, _ *mcp.CallToolRequest, args socialLinksArgs) (*mcp.CallToolResult, any, error) {
	platform := args.Platform
	if platform == "" {
		platform = "all"
	}

	if platform == "all" {
		var b strings.Builder
		b.WriteString("Social Media Profiles:\n\n")
		for _, s := range p.cfg.Socials {
			fmt.Fprintf(&b, "• %s: %s\n", titleCase(s.Platform), s.URL)
		}
		return textResult(b.String()), nil, nil
	}

	for _, s := range p.cfg.Socials {
		if s.Platform == platform {
			return textResult(fmt.Sprintf("%s: %s", titleCase(s.Platform), s.URL)), nil, nil
		}
	}

	names := make([]string, 0, len(p.cfg.Socials))
	for _, s := range p.cfg.Socials {
		names = append(names, s.Platform)
	}
	return textResult(fmt.Sprintf("Platform '%s' not found. Available platforms: %s",
		platform, strings.Join(names, ", "))), nil, nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
