package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/dosio/internal/store"
)

// RunList is the output of the runs command.
type RunList struct {
	Runs []store.Run `json:"runs"`
}

// RenderText prints one run per line.
func (l RunList) RenderText(w io.Writer) error {
	if len(l.Runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded.")
		return err
	}
	for _, r := range l.Runs {
		line := fmt.Sprintf("%s  %-10s %4d ticks  %s", r.ID, r.Status, r.Ticks, r.Scenario)
		if r.Error != "" {
			msg, _, _ := strings.Cut(r.Error, "\n")
			line += "  (" + msg + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded runs",
		Long: `List every run recorded in a database, ordered by run ID.

Example:
  dosio runs --db ./runs.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)

			st, err := store.Open(dbPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to open database", err)
			}
			defer st.Close()

			runs, err := st.ListRuns(context.Background())
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to list runs", err)
			}
			return f.Success(RunList{Runs: runs})
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

