// Package provider exposes the profile capability catalog over MCP.
package provider

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"vita/internal/config"
	"vita/internal/extract"
	"vita/internal/trace"
)

// Provider wraps the MCP server with the configured profile catalog.
// The catalog is fixed at construction time and never mutated.
type Provider struct {
	cfg       *config.Config
	extractor *extract.Extractor
	server    *mcp.Server
}

func New(cfg *config.Config, extractor *extract.Extractor, version string) *Provider {
	p := &Provider{
		cfg:       cfg,
		extractor: extractor,
	}

	impl := &mcp.Implementation{
		Name:    "vita-profile-server",
		Version: version,
	}
	p.server = mcp.NewServer(impl, nil)

	p.registerTools()
	p.registerPrompts()

	return p
}

// Run serves MCP over stdio until the context is cancelled.
func (p *Provider) Run(ctx context.Context) error {
	return p.server.Run(ctx, &mcp.StdioTransport{})
}

// HTTPHandler serves the same catalog over the streamable HTTP transport.
func (p *Provider) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return p.server
	}, nil)
}

// textResult wraps plain text in a tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// errorResult reports a recovered tool failure as a textual payload rather
// than a transport fault, so the client can display it inline.
func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

// traced wraps a tool handler in a span covering the whole invocation.
func traced[T any](name string, h func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args T) (*mcp.CallToolResult, any, error) {
		ctx, span := trace.Tracer().Start(ctx, "tool."+name,
			oteltrace.WithAttributes(attribute.String("tool.name", name)),
		)
		defer span.End()

		res, out, err := h(ctx, req, args)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return res, out, err
	}
}
