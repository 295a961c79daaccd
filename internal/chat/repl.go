package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"vita/internal/answer"
	"vita/internal/history"
	"vita/internal/rank"
	"vita/internal/trace"
)

// REPL is the interactive chat loop: rank tools, gather context, generate
// an answer, repeat until the user quits or the context is cancelled.
type REPL struct {
	session *Session
	ranker  *rank.Ranker
	chain   *answer.Chain
	store   *history.Store // nil disables transcript persistence
	person  string

	in  io.Reader
	out io.Writer
}

func NewREPL(session *Session, ranker *rank.Ranker, chain *answer.Chain, store *history.Store, person string, in io.Reader, out io.Writer) *REPL {
	return &REPL{
		session: session,
		ranker:  ranker,
		chain:   chain,
		store:   store,
		person:  person,
		in:      in,
		out:     out,
	}
}

func (r *REPL) Run(ctx context.Context) error {
	fmt.Fprintf(r.out, "=== %s Profile Assistant ===\n", r.person)
	fmt.Fprintf(r.out, "Ask questions about the profile, experience, publications, etc.\n")
	r.printHelp()
	fmt.Fprintln(r.out)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		fmt.Fprint(r.out, "You: ")

		var input string
		var open bool
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.out)
			return nil
		case input, open = <-lines:
			if !open {
				return nil
			}
		}

		input = strings.TrimSpace(input)
		switch strings.ToLower(input) {
		case "":
			continue
		case "/quit", "/exit", "quit", "exit":
			return nil
		case "/help":
			r.printHelp()
			continue
		case "/tools":
			r.printTools(ctx)
			continue
		case "/prompt":
			r.printPrompt(ctx)
			continue
		case "/history":
			r.printHistory(ctx)
			continue
		}

		r.turn(ctx, input)
	}
}

// turn runs one full query cycle: rank, invoke, assemble, answer.
func (r *REPL) turn(ctx context.Context, query string) {
	ctx, span := trace.Tracer().Start(ctx, "chat.turn")
	defer span.End()

	selections := r.ranker.Select(query)

	var contextParts []string
	var toolNames []string
	for _, sel := range selections {
		fmt.Fprintf(r.out, "Fetching information from %s...\n", sel.Tool)

		result, err := r.session.CallTool(ctx, sel.Tool, sel.Args)
		if err != nil {
			// Absorbed: the failure text still goes into the context so the
			// user sees what went wrong inline.
			result = fmt.Sprintf("Error: %v", err)
		}
		contextParts = append(contextParts, fmt.Sprintf("=== %s ===\n%s", sel.Tool, result))
		toolNames = append(toolNames, sel.Tool)
	}
	contextData := strings.Join(contextParts, "\n\n")

	span.SetAttributes(
		attribute.StringSlice("tools", toolNames),
		attribute.Int("context_bytes", len(contextData)),
	)

	fmt.Fprintln(r.out, "Generating response...")
	text, backend := r.chain.Generate(ctx, query, contextData)
	span.SetAttributes(attribute.String("backend", backend))

	fmt.Fprintf(r.out, "Assistant: %s\n\n", text)

	if r.store != nil {
		if err := r.store.SaveTurn(ctx, query, toolNames, backend, text); err != nil {
			slog.Warn("chat: failed to save turn", "error", err)
		}
	}
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.out, "Available commands:")
	fmt.Fprintln(r.out, "- /tools : List available tools")
	fmt.Fprintln(r.out, "- /prompt : Show the assistant prompt template")
	fmt.Fprintln(r.out, "- /history : Show recent turns")
	fmt.Fprintln(r.out, "- /help : Show this help")
	fmt.Fprintln(r.out, "- /quit : Exit")
}

func (r *REPL) printTools(ctx context.Context) {
	tools, err := r.session.Tools(ctx)
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(r.out, "Available tools:")
	for _, t := range tools {
		fmt.Fprintf(r.out, "- %s: %s\n", t.Name, t.Description)
	}
}

func (r *REPL) printPrompt(ctx context.Context) {
	text, err := r.session.Prompt(ctx, "")
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(r.out, text)
}

func (r *REPL) printHistory(ctx context.Context) {
	if r.store == nil {
		fmt.Fprintln(r.out, "History is disabled.")
		return
	}
	turns, err := r.store.Recent(ctx, 10)
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	if len(turns) == 0 {
		fmt.Fprintln(r.out, "No history yet.")
		return
	}
	for _, t := range turns {
		fmt.Fprintf(r.out, "[%s] (%s) You: %s\n", t.CreatedAt.Format("2006-01-02 15:04"), t.Backend, t.Query)
	}
}
