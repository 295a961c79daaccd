// Package answer turns a query plus gathered context into a final answer,
// degrading through a fixed chain of generation backends.
package answer

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"vita/internal/trace"
)

// Backend attempts to generate an answer. Any error means "unavailable"
// and the chain moves on; a backend is tried at most once per turn.
type Backend interface {
	Name() string
	Generate(ctx context.Context, query, contextText string) (string, error)
}

// Chain tries backends in fixed priority order. The terminal backend must
// never fail, so Generate always produces an answer.
type Chain struct {
	backends []Backend
}

func NewChain(backends ...Backend) *Chain {
	return &Chain{backends: backends}
}

// Generate returns the first successful answer and the name of the backend
// that produced it.
func (c *Chain) Generate(ctx context.Context, query, contextText string) (answer, backend string) {
	for _, b := range c.backends {
		text, err := c.attempt(ctx, b, query, contextText)
		if err != nil {
			slog.Warn("answer: backend unavailable", "backend", b.Name(), "error", err)
			continue
		}
		return text, b.Name()
	}
	// Unreachable when the chain is built with a terminal formatter; kept
	// so a misconfigured chain still returns something.
	return "No answer could be generated.", "none"
}

func (c *Chain) attempt(ctx context.Context, b Backend, query, contextText string) (string, error) {
	ctx, span := trace.Tracer().Start(ctx, "answer.attempt",
		oteltrace.WithAttributes(attribute.String("backend", b.Name())),
	)
	defer span.End()

	text, err := b.Generate(ctx, query, contextText)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	if text == "" {
		err := fmt.Errorf("empty answer from %s", b.Name())
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return text, nil
}

// composePrompt builds the instruction given to the model backends.
func composePrompt(person, query, contextText string) string {
	return fmt.Sprintf(`Based on the following information about %s, please answer the user's question:

Context Information:
%s

User Question: %s

Please provide a comprehensive and helpful answer based on the available information.`, person, contextText, query)
}
