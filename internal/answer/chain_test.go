package answer

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	name   string
	text   string
	err    error
	called bool
}

func (f *fakeBackend) Name() string { return f.name }

func (f *fakeBackend) Generate(context.Context, string, string) (string, error) {
	f.called = true
	return f.text, f.err
}

func TestChainFirstSuccessWins(t *testing.T) {
	first := &fakeBackend{name: "first", text: "answer one"}
	second := &fakeBackend{name: "second", text: "answer two"}

	text, backend := NewChain(first, second).Generate(context.Background(), "q", "ctx")

	assert.Equal(t, "answer one", text)
	assert.Equal(t, "first", backend)
	assert.False(t, second.called, "second backend must not be tried after a success")
}

func TestChainProgressesOnFailure(t *testing.T) {
	first := &fakeBackend{name: "first", err: errors.New("connection refused")}
	second := &fakeBackend{name: "second", text: ""}
	third := &fakeBackend{name: "third", text: "answer three"}

	text, backend := NewChain(first, second, third).Generate(context.Background(), "q", "ctx")

	assert.Equal(t, "answer three", text)
	assert.Equal(t, "third", backend)
	assert.True(t, first.called)
	assert.True(t, second.called, "empty answers count as failures")
}

func TestChainAllBackendsDown(t *testing.T) {
	// Both model backends point at a port nothing listens on; the formatter
	// must produce the exact deterministic fallback.
	ollama := NewOllama("http://127.0.0.1:1", "llama2", "Haris Gulzar", time.Second)
	hf := NewHuggingFace("http://127.0.0.1:1", "", time.Second)
	chain := NewChain(ollama, hf, NewFormatter("Haris Gulzar"))

	query := "find information about internships"
	contextData := "=== get_experience ===\nInternship at a research lab."

	text, backend := chain.Generate(context.Background(), query, contextData)

	require.Equal(t, "formatter", backend)
	expected := fmt.Sprintf(`Based on the available information about Haris Gulzar:

%s

Your question: "%s"

I've provided the relevant information above. For more detailed analysis, please consider setting up a local LLM (like Ollama) or using a cloud LLM service.`, contextData, query)
	assert.Equal(t, expected, text)
}

func TestFormatterNeverFails(t *testing.T) {
	f := NewFormatter("Haris Gulzar")

	text, err := f.Generate(context.Background(), "anything", "")
	require.NoError(t, err)
	assert.NotEmpty(t, text)
	assert.Contains(t, text, `Your question: "anything"`)
}
