package answer

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Ollama queries a local Ollama instance. First in the chain: local
// inference costs nothing and keeps profile data on the machine.
type Ollama struct {
	client *resty.Client
	url    string
	model  string
	person string
}

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

func NewOllama(url, model, person string, timeout time.Duration) *Ollama {
	client := resty.New().
		SetTimeout(timeout).
		SetTransport(otelhttp.NewTransport(http.DefaultTransport))
	return &Ollama{client: client, url: url, model: model, person: person}
}

func (o *Ollama) Name() string { return "ollama" }

func (o *Ollama) Generate(ctx context.Context, query, contextText string) (string, error) {
	var out ollamaResponse
	resp, err := o.client.R().
		SetContext(ctx).
		SetBody(ollamaRequest{
			Model:  o.model,
			Prompt: composePrompt(o.person, query, contextText),
			Stream: false,
		}).
		SetResult(&out).
		Post(o.url + "/api/generate")
	if err != nil {
		return "", fmt.Errorf("ollama request: %w", err)
	}
	if !resp.IsSuccess() {
		return "", fmt.Errorf("ollama HTTP %d", resp.StatusCode())
	}
	return out.Response, nil
}
