package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/matchload/internal/config"
	"github.com/roach88/matchload/internal/parser"
	"github.com/roach88/matchload/internal/staging"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Config     string
	StagingDir string
	Pattern    string
}

// FileValidation is the dry-run result for one staged file.
type FileValidation struct {
	File      string `json:"file"`
	Rows      int    `json:"rows"`
	Malformed int    `json:"malformed"`
	Error     string `json:"error,omitempty"`
}

// ValidationResult aggregates a validate run.
type ValidationResult struct {
	Valid bool             `json:"valid"`
	Files []FileValidation `json:"files"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Dry-run parse of staged files",
		Long: `Parse every staged feed file without touching the database.

Reports the clean and malformed row counts per file, in the same order
a run would process them. Exits 1 if any file is unreadable as a feed,
so a pre-flight check can gate a real run.

Example:
  matchload validate --staging ./staging
  matchload validate --config matchload.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidation(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "path to YAML config file")
	cmd.Flags().StringVar(&opts.StagingDir, "staging", "", "path to the staging area")
	cmd.Flags().StringVar(&opts.Pattern, "pattern", "", "staged file name pattern (default *_matches.csv)")

	return cmd
}

func runValidation(opts *ValidateOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg := config.Default()
	if opts.Config != "" {
		loaded, err := config.Load(opts.Config)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid configuration", err)
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("staging") {
		cfg.StagingDir = opts.StagingDir
	}
	if cmd.Flags().Changed("pattern") {
		cfg.Pattern = opts.Pattern
	}
	if cfg.StagingDir == "" {
		return WrapExitError(ExitCommandError, "invalid configuration",
			fmt.Errorf("no staging area configured: set --staging or the config file's staging_dir field"))
	}

	files, err := staging.NewDir(cfg.StagingDir).List(cfg.Pattern)
	if err != nil {
		if errors.Is(err, staging.ErrNotFound) {
			return WrapExitError(ExitCommandError, "staging area unavailable", err)
		}
		return WrapExitError(ExitCommandError, "staging discovery failed", err)
	}

	result := ValidationResult{Valid: true, Files: []FileValidation{}}
	for _, f := range files {
		fv := validateFile(f)
		if fv.Error != "" {
			result.Valid = false
		}
		result.Files = append(result.Files, fv)
		formatter.VerboseLog("checked %s: %d row(s), %d malformed", f.Name, fv.Rows, fv.Malformed)
	}

	if err := formatter.SuccessText(result, renderValidation(result)); err != nil {
		return err
	}
	if !result.Valid {
		return NewExitError(ExitFailure, "validation failed")
	}
	return nil
}

// validateFile parses one staged file to completion without merging.
func validateFile(f staging.File) FileValidation {
	fv := FileValidation{File: f.Name}

	cur, err := parser.Open(f.Path)
	if err != nil {
		fv.Error = err.Error()
		return fv
	}
	defer cur.Close()

	for {
		row, err := cur.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			fv.Error = err.Error()
			return fv
		}
		if row.Err != nil {
			fv.Malformed++
			continue
		}
		fv.Rows++
	}
	return fv
}

// renderValidation formats a dry-run result in the run report's style.
func renderValidation(result ValidationResult) string {
	var b strings.Builder
	bad := 0
	for _, fv := range result.Files {
		if fv.Error != "" {
			bad++
			fmt.Fprintf(&b, "✗ %s: %s\n", fv.File, fv.Error)
			continue
		}
		if fv.Malformed > 0 {
			fmt.Fprintf(&b, "✓ %s: %d row(s), %d malformed\n", fv.File, fv.Rows, fv.Malformed)
			continue
		}
		fmt.Fprintf(&b, "✓ %s: %d row(s)\n", fv.File, fv.Rows)
	}
	fmt.Fprintf(&b, "Checked %d file(s): %d readable, %d unreadable\n", len(result.Files), len(result.Files)-bad, bad)
	return b.String()
}
