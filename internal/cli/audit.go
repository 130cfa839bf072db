package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/matchload/internal/match"
	"github.com/roach88/matchload/internal/store"
)

// AuditOptions holds flags for the audit command.
type AuditOptions struct {
	*RootOptions
	Database string
	RunToken string
	Limit    int
}

// NewAuditCommand creates the audit command.
func NewAuditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AuditOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect the load audit log",
		Long: `Inspect the append-only load audit log.

Shows the most recent file attempts with their run token, timestamp,
row count and status. Use --run to see every attempt of one run in
processing order.

Example:
  matchload audit --db ./matches.db
  matchload audit --db ./matches.db --limit 50
  matchload audit --db ./matches.db --run 0198c0de-...`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.RunToken, "run", "", "show entries for one run token only")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "max entries to show (0 = all, ignored with --run)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runAudit(opts *AuditOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var entries []match.AuditEntry
	if opts.RunToken != "" {
		entries, err = st.ReadAuditForRun(ctx, opts.RunToken)
	} else {
		entries, err = st.ReadAudit(ctx, opts.Limit)
	}
	if err != nil {
		return WrapExitError(ExitFailure, "failed to read audit log", err)
	}

	return formatter.SuccessText(entries, renderAudit(entries))
}

// renderAudit formats audit entries as an aligned text table.
func renderAudit(entries []match.AuditEntry) string {
	if len(entries) == 0 {
		return "No audit entries.\n"
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LOGGED AT\tRUN\tFILE\tROWS\tSTATUS")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			e.LoggedAt.UTC().Format("2006-01-02 15:04:05"),
			shortToken(e.RunToken),
			e.FileName,
			e.RowsInserted,
			e.Status,
		)
	}
	w.Flush()
	return b.String()
}

// shortToken abbreviates a run token for table display.
func shortToken(token string) string {
	if len(token) > 8 {
		return token[:8]
	}
	return token
}
