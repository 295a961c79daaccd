package answer

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// hfContextLimit bounds the context sent to the hosted endpoint; the free
// tier rejects oversized inputs.
const hfContextLimit = 1000

// HuggingFace queries the hosted inference API. The token is optional:
// without one the request rides the unauthenticated rate limits, and a
// rejection is absorbed like any other backend failure.
type HuggingFace struct {
	client *resty.Client
	url    string
	token  string
}

type hfRequest struct {
	Inputs string `json:"inputs"`
}

type hfGeneration struct {
	GeneratedText string `json:"generated_text"`
}

func NewHuggingFace(url, token string, timeout time.Duration) *HuggingFace {
	client := resty.New().
		SetTimeout(timeout).
		SetTransport(otelhttp.NewTransport(http.DefaultTransport))
	return &HuggingFace{client: client, url: url, token: token}
}

func (h *HuggingFace) Name() string { return "huggingface" }

func (h *HuggingFace) Generate(ctx context.Context, query, contextText string) (string, error) {
	if len(contextText) > hfContextLimit {
		contextText = contextText[:hfContextLimit]
	}
	prompt := fmt.Sprintf("Context: %s\n\nQuestion: %s\n\nAnswer:", contextText, query)

	req := h.client.R().
		SetContext(ctx).
		SetBody(hfRequest{Inputs: prompt})
	if h.token != "" {
		req.SetAuthToken(h.token)
	}

	var out []hfGeneration
	resp, err := req.SetResult(&out).Post(h.url)
	if err != nil {
		return "", fmt.Errorf("huggingface request: %w", err)
	}
	if !resp.IsSuccess() {
		return "", fmt.Errorf("huggingface HTTP %d", resp.StatusCode())
	}
	if len(out) == 0 {
		return "", fmt.Errorf("huggingface returned no generations")
	}

	// The API echoes the prompt ahead of the generated continuation.
	return strings.TrimSpace(strings.TrimPrefix(out[0].GeneratedText, prompt)), nil
}
