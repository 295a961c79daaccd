package chat

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"vita/internal/answer"
	"vita/internal/chat"
	"vita/internal/config"
	"vita/internal/db"
	"vita/internal/history"
	"vita/internal/rank"
	"vita/internal/trace"
)

var serverCommand string

var Cmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat against the profile server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		if tc := (trace.Config{Endpoint: cfg.Trace.Endpoint, URLPath: cfg.Trace.URLPath, APIKey: cfg.Trace.APIKey}); tc.Enabled() {
			shutdown, err := trace.Init(ctx, tc)
			if err != nil {
				return fmt.Errorf("initializing tracing: %w", err)
			}
			defer shutdown(ctx)
		}

		name, cmdArgs, err := serverCmdline()
		if err != nil {
			return err
		}

		fmt.Println("Connecting to profile server...")
		session, err := chat.Connect(ctx, name, cmdArgs...)
		if err != nil {
			// Channel establishment is the one failure that ends the session.
			return fmt.Errorf("failed to connect to server: %w", err)
		}
		defer session.Close()
		slog.Info("connected to profile server")

		store := openHistory(cfg)

		repl := chat.NewREPL(
			session,
			rank.New(cfg.Triggers),
			buildChain(cfg),
			store,
			cfg.Person,
			os.Stdin,
			os.Stdout,
		)
		if err := repl.Run(ctx); err != nil {
			return err
		}
		fmt.Println("Goodbye!")
		return nil
	},
}

func init() {
	Cmd.Flags().StringVarP(&serverCommand, "server", "s", "", "command to launch the profile server (default: this binary with 'serve')")
}

// serverCmdline resolves the provider subprocess command line.
func serverCmdline() (string, []string, error) {
	if serverCommand != "" {
		fields := strings.Fields(serverCommand)
		return fields[0], fields[1:], nil
	}
	self, err := os.Executable()
	if err != nil {
		return "", nil, fmt.Errorf("resolving own executable: %w", err)
	}
	return self, []string{"serve"}, nil
}

// buildChain assembles the fixed-priority backend chain: local model first,
// then an OpenAI-compatible endpoint when configured, then the hosted free
// tier, with the deterministic formatter as the terminal guarantee.
func buildChain(cfg *config.Config) *answer.Chain {
	timeout := cfg.BackendTimeout()

	backends := []answer.Backend{
		answer.NewOllama(cfg.Backends.Ollama.URL, cfg.Backends.Ollama.Model, cfg.Person, timeout),
	}
	if cfg.Backends.OpenAI.APIKey != "" {
		backends = append(backends, answer.NewOpenAI(
			cfg.Backends.OpenAI.BaseURL,
			cfg.Backends.OpenAI.APIKey,
			cfg.Backends.OpenAI.Model,
			cfg.Person,
		))
	}
	backends = append(backends,
		answer.NewHuggingFace(cfg.Backends.HuggingFace.URL, cfg.Backends.HuggingFace.Token, timeout),
		answer.NewFormatter(cfg.Person),
	)
	return answer.NewChain(backends...)
}

// openHistory opens the transcript store; persistence is best-effort and
// never blocks chatting.
func openHistory(cfg *config.Config) *history.Store {
	database, err := db.Open(cfg.DB.Path)
	if err != nil {
		slog.Warn("history disabled: cannot open database", "path", cfg.DB.Path, "error", err)
		return nil
	}
	if err := database.Migrate(); err != nil {
		slog.Warn("history disabled: migration failed", "error", err)
		database.Close()
		return nil
	}
	return history.NewStore(database)
}
