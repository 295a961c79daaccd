package provider

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (p *Provider) registerPrompts() {
	p.server.AddPrompt(&mcp.Prompt{
		Name:        "profile_assistant",
		Description: fmt.Sprintf("Template prompt for the %s profile information assistant", p.cfg.Person),
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "query_type",
				Description: "Type of information requested (overview, experience, publications, career, social)",
				Required:    false,
			},
		},
	}, p.handleGetPrompt)
}

func (p *Provider) handleGetPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	queryType := "general"
	if req.Params != nil && req.Params.Arguments != nil {
		if qt := req.Params.Arguments["query_type"]; qt != "" {
			queryType = qt
		}
	}

	text := fmt.Sprintf(`You are an AI assistant with access to comprehensive information about %[1]s, a professional with expertise in technology and research. You have access to the following information sources:

**Available Information:**
- Professional overview and background
- Work experience and career history
- Scientific publications and conference presentations
- Career timeline and milestones
- Social media profiles and content

**Your Role:**
- Provide accurate, comprehensive information about %[1]s based on the available data
- Answer questions about professional background, research, experience, and achievements
- Share relevant social media links when appropriate
- Maintain a professional and informative tone
- If asked about information not available in your sources, clearly state the limitations

**Current Query Context:** %[2]s

Please use the available tools to fetch the most relevant and up-to-date information to answer the user's questions about %[1]s.`, p.cfg.Person, queryType)

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Profile information assistant for %s", p.cfg.Person),
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: text},
			},
		},
	}, nil
}
