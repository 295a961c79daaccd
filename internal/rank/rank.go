// Package rank selects which profile tools to invoke for a user query.
package rank

import (
	"log/slog"
	"strings"

	"vita/internal/config"
)

const (
	// maxSelected caps tool invocations per turn: each one is a network
	// round trip and more context for the answer backends.
	maxSelected = 3

	searchTool = "search_profile_content"
)

// defaultTools are used when no trigger matches, so the selection is
// never empty.
var defaultTools = []string{"get_profile_overview", "get_experience"}

// searchIntent marks queries that ask to look something up; longer phrases
// first so stripping removes "search for" before "search".
var searchIntent = []string{"search for", "look for", "search", "find"}

// Selection names a tool to invoke along with its arguments.
type Selection struct {
	Tool string
	Args map[string]any
}

// Ranker matches queries against an ordered trigger table. Table order is
// the tie-break: earlier rows win when the cap truncates.
type Ranker struct {
	triggers []config.Trigger
}

func New(triggers []config.Trigger) *Ranker {
	return &Ranker{triggers: triggers}
}

// Select returns between 1 and 3 tool selections for the query.
func (r *Ranker) Select(query string) []Selection {
	lowered := strings.ToLower(query)

	var selected []Selection
	for _, t := range r.triggers {
		for _, kw := range t.Keywords {
			if strings.Contains(lowered, kw) {
				selected = append(selected, Selection{Tool: t.Tool})
				break
			}
		}
	}

	if len(selected) == 0 {
		for _, name := range defaultTools {
			selected = append(selected, Selection{Tool: name})
		}
	}

	if hasSearchIntent(lowered) {
		if residual := stripSearchIntent(query); residual != "" {
			selected = append([]Selection{{
				Tool: searchTool,
				Args: map[string]any{"query": residual},
			}}, selected...)
		}
	}

	if len(selected) > maxSelected {
		selected = selected[:maxSelected]
	}

	names := make([]string, len(selected))
	for i, s := range selected {
		names[i] = s.Tool
	}
	slog.Debug("rank: tools selected", "query_len", len(query), "tools", names)

	return selected
}

func hasSearchIntent(lowered string) bool {
	for _, kw := range searchIntent {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// stripSearchIntent removes the intent keywords from the query and returns
// the trimmed residual to use as the search argument.
func stripSearchIntent(query string) string {
	residual := query
	for _, kw := range searchIntent {
		for {
			idx := strings.Index(strings.ToLower(residual), kw)
			if idx < 0 {
				break
			}
			residual = residual[:idx] + residual[idx+len(kw):]
		}
	}
	return strings.Join(strings.Fields(residual), " ")
}
