package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/dosio/internal/catalog"
	"github.com/roach88/dosio/internal/harness"
	"github.com/roach88/dosio/internal/signal"
	"github.com/roach88/dosio/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	RunID    string
	Kind     string // optional - show one kind tick by tick
	Stage    string // optional - filter to one producing stage
}

// TraceRow is one recorded sample with its statistics.
type TraceRow struct {
	Tick   int64           `json:"tick"`
	Stage  string          `json:"stage"`
	Values []harness.Value `json:"values"`
	Mean   harness.Value   `json:"mean"`
	Var    harness.Value   `json:"var"`
	Std    harness.Value   `json:"std"`
}

// TraceStats summarizes every element recorded for a kind.
type TraceStats struct {
	Samples int           `json:"samples"`
	Absent  int           `json:"absent"`
	Mean    harness.Value `json:"mean"`
	Var     harness.Value `json:"var"`
	Std     harness.Value `json:"std"`
	RMS     harness.Value `json:"rms"`
}

// TraceResult holds the complete trace output.
type TraceResult struct {
	Run   store.Run   `json:"run"`
	Kinds []string    `json:"kinds,omitempty"`
	Kind  string      `json:"kind,omitempty"`
	Rows  []TraceRow  `json:"rows,omitempty"`
	Stats *TraceStats `json:"stats,omitempty"`

	verbose bool
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Inspect a recorded run",
		Long: `Inspect a run recorded by "dosio run".

Without --kind, lists the signal kinds the run recorded. With --kind,
shows every recorded payload of that kind tick by tick, with the mean,
variance and standard deviation of each payload and of the whole series.

Examples:
  dosio trace --db ./runs.db --run test-run-1
  dosio trace --db ./runs.db --run test-run-1 --kind M1HPLC
  dosio trace --db ./runs.db --run test-run-1 --kind M1HPLC --stage lag --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "run ID to trace (required)")
	_ = cmd.MarkFlagRequired("run")
	cmd.Flags().StringVar(&opts.Kind, "kind", "", "signal kind to show")
	cmd.Flags().StringVar(&opts.Stage, "stage", "", "filter to the outputs of one stage")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	ctx := context.Background()
	f := newFormatter(opts.RootOptions, cmd)

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	run, err := st.ReadRun(ctx, opts.RunID)
	if err != nil {
		if errors.Is(err, store.ErrRunNotFound) {
			_ = f.Error(ErrCodeRunNotFound, err.Error(), nil)
		}
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}
	if run.CatalogFingerprint != catalog.Fingerprint() {
		f.VerboseLog("run %s was recorded with catalog %s, this binary has %s",
			run.ID, run.CatalogFingerprint, catalog.Fingerprint())
	}

	result := TraceResult{Run: run, verbose: opts.Verbose}

	if opts.Kind == "" {
		kinds, err := st.RecordedKinds(ctx, run.ID)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list recorded kinds", err)
		}
		result.Kinds = make([]string, len(kinds))
		for i, k := range kinds {
			result.Kinds[i] = k.String()
		}
		return f.Success(result)
	}

	kind, ok := catalog.Lookup(opts.Kind)
	if !ok {
		msg := fmt.Sprintf("unknown signal kind %q", opts.Kind)
		_ = f.Error(ErrCodeKindNotRecorded, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	samples, err := st.ReadSamples(ctx, run.ID, kind)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read samples", err)
	}
	result.Kind = kind.String()
	result.Rows, result.Stats = summarize(samples, opts.Stage)
	return f.Success(result)
}

// summarize builds the per-tick rows of samples, keeping only stage's when
// it is set, and the statistics of every element they carry.
func summarize(samples []store.Sample, stage string) ([]TraceRow, *TraceStats) {
	rows := []TraceRow{}
	stats := &TraceStats{}
	var all []float64
	for _, smp := range samples {
		if stage != "" && smp.Stage != stage {
			continue
		}
		row := TraceRow{
			Tick:  smp.Tick,
			Stage: smp.Stage,
			Mean:  harness.Value(signal.Mean(smp.Signal)),
			Var:   harness.Value(signal.Var(smp.Signal)),
			Std:   harness.Value(signal.Std(smp.Signal)),
		}
		if values, ok := smp.Signal.Get(); ok {
			row.Values = toValues(values)
			all = append(all, values...)
		} else {
			stats.Absent++
		}
		stats.Samples++
		rows = append(rows, row)
	}

	series := signal.With(catalog.Invalid, all)
	stats.Mean = harness.Value(signal.Mean(series))
	stats.Var = harness.Value(signal.Var(series))
	stats.Std = harness.Value(signal.Std(series))
	stats.RMS = harness.Value(math.Sqrt(signal.MeanSumSquared(series)))
	return rows, stats
}

func toValues(values []float64) []harness.Value {
	out := make([]harness.Value, len(values))
	for i, v := range values {
		out[i] = harness.Value(v)
	}
	return out
}

// RenderText prints either the recorded kinds or the per-tick table.
func (r TraceResult) RenderText(w io.Writer) error {
	fmt.Fprintf(w, "Trace for Run: %s\n", r.Run.ID)
	fmt.Fprintf(w, "Scenario: %s\n", r.Run.Scenario)
	fmt.Fprintf(w, "Status: %s after %d ticks\n", r.Run.Status, r.Run.Ticks)
	if r.verbose {
		fmt.Fprintf(w, "Catalog: %s (%d kinds)\n", r.Run.CatalogFingerprint, r.Run.CatalogSize)
	}
	fmt.Fprintln(w)

	if r.Kind == "" {
		fmt.Fprintln(w, "=== Recorded Kinds ===")
		if len(r.Kinds) == 0 {
			fmt.Fprintln(w, "  (no samples)")
		}
		for _, k := range r.Kinds {
			fmt.Fprintf(w, "  %s\n", k)
		}
		return nil
	}

	fmt.Fprintf(w, "=== %s ===\n", r.Kind)
	if len(r.Rows) == 0 {
		fmt.Fprintln(w, "  (no samples)")
		return nil
	}
	for _, row := range r.Rows {
		fmt.Fprintf(w, "  [%d] %s %s", row.Tick, row.Stage, formatValues(row.Values))
		if row.Values != nil {
			fmt.Fprintf(w, "  mean=%g var=%g std=%g", float64(row.Mean), float64(row.Var), float64(row.Std))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Stats ===")
	fmt.Fprintf(w, "  Samples: %d (%d absent)\n", r.Stats.Samples, r.Stats.Absent)
	fmt.Fprintf(w, "  Mean:    %g\n", float64(r.Stats.Mean))
	fmt.Fprintf(w, "  Var:     %g\n", float64(r.Stats.Var))
	fmt.Fprintf(w, "  Std:     %g\n", float64(r.Stats.Std))
	fmt.Fprintf(w, "  RMS:     %g\n", float64(r.Stats.RMS))
	return nil
}

// formatValues formats a payload for display; nil is an absent payload.
func formatValues(values []harness.Value) string {
	if values == nil {
		return "(absent)"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%g", float64(v))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
