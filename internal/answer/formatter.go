package answer

import (
	"context"
	"fmt"
)

// Formatter is the terminal backend: it formats the raw context around the
// query without any model. It cannot fail, which is what guarantees that
// every turn produces an answer.
type Formatter struct {
	person string
}

func NewFormatter(person string) *Formatter {
	return &Formatter{person: person}
}

func (f *Formatter) Name() string { return "formatter" }

func (f *Formatter) Generate(_ context.Context, query, contextText string) (string, error) {
	return fmt.Sprintf(`Based on the available information about %s:

%s

Your question: "%s"

I've provided the relevant information above. For more detailed analysis, please consider setting up a local LLM (like Ollama) or using a cloud LLM service.`, f.person, contextText, query), nil
}
