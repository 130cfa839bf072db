package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/matchload/internal/config"
	"github.com/roach88/matchload/internal/ingest"
	"github.com/roach88/matchload/internal/staging"
	"github.com/roach88/matchload/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Config     string
	Database   string
	StagingDir string
	Pattern    string

	// TokenGenerator allows overriding the run token generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	TokenGenerator ingest.RunTokenGenerator

	// Clock allows overriding the ingestion clock (for testing).
	Clock ingest.Clock
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute one ingestion run",
		Long: `Execute one ingestion run over the staging area.

Every staged file matching the pattern is parsed, merged into the
canonical match table and audited, newest file first. A failed file is
recorded and skipped; the run carries on with the rest. The command
prints a per-file report and exits 0 even when individual files failed.

Example:
  matchload run --db ./matches.db --staging ./staging
  matchload run --config matchload.yaml --pattern "UCL_*_matches.csv"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngestion(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "path to YAML config file")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database")
	cmd.Flags().StringVar(&opts.StagingDir, "staging", "", "path to the staging area")
	cmd.Flags().StringVar(&opts.Pattern, "pattern", "", "staged file name pattern (default *_matches.csv)")

	return cmd
}

// resolveConfig merges the config file (if given) with flag overrides.
// Flags win over file values; db and staging must be set by one of the
// two sources.
func resolveConfig(opts *RunOptions, cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if opts.Config != "" {
		loaded, err := config.Load(opts.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("db") {
		cfg.Database = opts.Database
	}
	if cmd.Flags().Changed("staging") {
		cfg.StagingDir = opts.StagingDir
	}
	if cmd.Flags().Changed("pattern") {
		cfg.Pattern = opts.Pattern
	}

	if cfg.Database == "" {
		return nil, fmt.Errorf("no database configured: set --db or the config file's database field")
	}
	if cfg.StagingDir == "" {
		return nil, fmt.Errorf("no staging area configured: set --staging or the config file's staging_dir field")
	}
	return cfg, nil
}

func runIngestion(opts *RunOptions, cmd *cobra.Command) error {
	// Configure logging based on verbose flag
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg, err := resolveConfig(opts, cmd)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	slog.Info("opening database", "path", cfg.Database)
	st, err := store.Open(cfg.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	src := staging.NewDir(cfg.StagingDir)

	ingestOpts := []ingest.Option{ingest.WithPattern(cfg.Pattern)}
	if opts.TokenGenerator != nil {
		ingestOpts = append(ingestOpts, ingest.WithRunTokenGenerator(opts.TokenGenerator))
	}
	if opts.Clock != nil {
		ingestOpts = append(ingestOpts, ingest.WithClock(opts.Clock))
	}
	in := ingest.New(st, src, ingestOpts...)

	// Setup signal handling for graceful shutdown.
	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, finishing current file", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	report, err := in.Run(ctx)
	if err != nil {
		switch {
		case ingest.IsDiscoveryError(err):
			return WrapExitError(ExitCommandError, "staging discovery failed", err)
		case ingest.IsRunActiveError(err):
			return WrapExitError(ExitCommandError, "run rejected", err)
		default:
			return WrapExitError(ExitFailure, "ingestion run failed", err)
		}
	}

	return formatter.SuccessText(report, report.Render())
}
