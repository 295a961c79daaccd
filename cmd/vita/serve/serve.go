package serve

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"vita/internal/config"
	"vita/internal/extract"
	"vita/internal/provider"
	"vita/internal/trace"
)

var httpAddr string

var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the profile capability server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		ctx := cmd.Context()

		if tc := (trace.Config{Endpoint: cfg.Trace.Endpoint, URLPath: cfg.Trace.URLPath, APIKey: cfg.Trace.APIKey}); tc.Enabled() {
			shutdown, err := trace.Init(ctx, tc)
			if err != nil {
				return fmt.Errorf("initializing tracing: %w", err)
			}
			defer shutdown(ctx)
		}

		extractor := extract.New(cfg.FetchTimeout())
		p := provider.New(cfg, extractor, "1.0.0")

		if httpAddr != "" {
			slog.Info("starting profile server over HTTP", "addr", httpAddr, "sources", len(cfg.Sources))
			return http.ListenAndServe(httpAddr, p.HTTPHandler())
		}

		slog.Info("starting profile server on stdio", "sources", len(cfg.Sources))
		return p.Run(ctx)
	},
}

func init() {
	Cmd.Flags().StringVar(&httpAddr, "http", "", "serve MCP over HTTP on this address instead of stdio")
}
