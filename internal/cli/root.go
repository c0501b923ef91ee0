// Package cli implements the insightctl command line tool.
package cli

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"textinsight/internal/app"
	"textinsight/internal/config"
	"textinsight/internal/logging"
)

// NewRootCmd builds the insightctl command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "insightctl",
		Short: "Analyze text and query stored analyses",
		Long: `insightctl runs the same analysis as the textinsight server from the
command line: keywords, sentiment, title, summary and topics.

Configuration comes from the environment and an optional config.yaml, exactly
as for the server. Set OPENAI_API_KEY (or the key of the selected
LLM_PROVIDER) for generated summaries; without one the deterministic
summarizer is used. Set STORE_DRIVER=sqlite or DATABASE_URL to persist.`,
		SilenceUsage: true,
	}

	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newSearchCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newPruneCmd())
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// loadApp loads configuration, configures logging and wires the app.
// The returned cleanup closes the app and the log file.
func loadApp(ctx context.Context) (*app.App, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger, logCloser, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
	if err != nil {
		return nil, nil, err
	}

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logCloser.Close()
		return nil, nil, err
	}
	return a, func() {
		a.Close()
		logCloser.Close()
	}, nil
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
