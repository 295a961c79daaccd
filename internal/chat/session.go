// Package chat implements the interactive client side: an MCP session to
// the profile server and the REPL that drives it.
package chat

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolInfo is the subset of the catalog shown to the user.
type ToolInfo struct {
	Name        string
	Description string
}

// Session wraps an MCP client session to the profile server. Connection
// failure is the one fatal error class: without a session there is nothing
// to chat with.
type Session struct {
	session *mcp.ClientSession
}

// Connect spawns the server command and performs the MCP handshake over
// its stdio.
func Connect(ctx context.Context, command string, args ...string) (*Session, error) {
	client := mcp.NewClient(&mcp.Implementation{
		Name:    "vita-chat",
		Version: "1.0.0",
	}, nil)

	cmd := exec.Command(command, args...)
	cmd.Stderr = os.Stderr

	session, err := client.Connect(ctx, &mcp.CommandTransport{Command: cmd}, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to profile server: %w", err)
	}
	return &Session{session: session}, nil
}

func (s *Session) Close() error {
	return s.session.Close()
}

// Tools lists the server's capability catalog.
func (s *Session) Tools(ctx context.Context) ([]ToolInfo, error) {
	res, err := s.session.ListTools(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("listing tools: %w", err)
	}

	tools := make([]ToolInfo, 0, len(res.Tools))
	for _, t := range res.Tools {
		tools = append(tools, ToolInfo{Name: t.Name, Description: t.Description})
	}
	return tools, nil
}

// CallTool invokes a tool and joins its text content blocks. Tool-level
// failures (unknown name, bad arguments) come back as text: the server
// reports them as payloads, not transport faults.
func (s *Session) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	res, err := s.session.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		return "", fmt.Errorf("calling tool %s: %w", name, err)
	}

	var parts []string
	for _, c := range res.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n"), nil
}

// Prompt fetches the profile assistant prompt template.
func (s *Session) Prompt(ctx context.Context, queryType string) (string, error) {
	args := map[string]string{}
	if queryType != "" {
		args["query_type"] = queryType
	}

	res, err := s.session.GetPrompt(ctx, &mcp.GetPromptParams{
		Name:      "profile_assistant",
		Arguments: args,
	})
	if err != nil {
		return "", fmt.Errorf("getting prompt: %w", err)
	}

	var parts []string
	for _, m := range res.Messages {
		if tc, ok := m.Content.(*mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n"), nil
}
