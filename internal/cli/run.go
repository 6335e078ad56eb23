package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/dosio/internal/engine"
	"github.com/roach88/dosio/internal/harness"
	"github.com/roach88/dosio/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database string
	Steps    int64
	RunID    string

	// RunIDs allows overriding the run ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDs engine.RunIDGenerator
}

// RunReport is the output of the run command.
type RunReport struct {
	Run    store.Run `json:"run"`
	Pass   bool      `json:"pass"`
	Errors []string  `json:"errors,omitempty"`
}

// RenderText prints the run header and any assertion failures.
func (r RunReport) RenderText(w io.Writer) error {
	fmt.Fprintf(w, "Run:      %s\n", r.Run.ID)
	fmt.Fprintf(w, "Scenario: %s\n", r.Run.Scenario)
	fmt.Fprintf(w, "Status:   %s\n", r.Run.Status)
	fmt.Fprintf(w, "Ticks:    %d\n", r.Run.Ticks)
	if r.Run.Error != "" {
		fmt.Fprintf(w, "Error:    %s\n", r.Run.Error)
	}
	for _, e := range r.Errors {
		fmt.Fprintf(w, "  %s\n", e)
	}
	if r.Pass {
		_, err := fmt.Fprintln(w, "✓ All assertions passed")
		return err
	}
	return nil
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run a scenario and record it",
		Long: `Run the pipeline described by a scenario file and record every tick
into a SQLite database (created if it doesn't exist).

The run stops when the tick budget is spent, a component runs out of
input, a stage fails, or on Ctrl-C. Scenario assertions are checked
against the recorded run.

Exit codes:
  0 - Run finished and all assertions passed
  1 - A stage failed unexpectedly or an assertion failed
  2 - Command error (bad scenario, database error, duplicate run ID)

Example:
  dosio run --db ./runs.db ./scenarios/hardpoint_loop.yaml
  dosio run --db ./runs.db --steps 100 --run-id trial-3 ./scenarios/hardpoint_loop.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarioFile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().Int64Var(&opts.Steps, "steps", 0, "tick budget, overrides the scenario's")
	cmd.Flags().StringVar(&opts.RunID, "run-id", "", "run ID, overrides the scenario's")

	return cmd
}

func runScenarioFile(opts *RunOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)

	scenario, err := harness.LoadScenario(path)
	if err != nil {
		_ = f.Error(ErrCodeScenarioInvalid, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load scenario", err)
	}
	if opts.Steps < 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("--steps must be non-negative, got %d", opts.Steps))
	}
	if opts.Steps > 0 {
		scenario.Steps = opts.Steps
	}
	if opts.RunID != "" {
		scenario.RunID = opts.RunID
	}

	slog.Info("opening database", "path", opts.Database)
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	runIDs := opts.RunIDs
	if runIDs == nil {
		runIDs = engine.UUIDv7Generator{}
	}

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
			slog.Info("received signal, stopping run", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	runner := &harness.Runner{
		Store:  st,
		RunIDs: runIDs,
		Logger: slog.Default(),
	}
	result, err := runner.Execute(ctx, scenario)
	if err != nil {
		code := ErrCodePipelineInvalid
		if errors.Is(err, store.ErrRunExists) {
			code = ErrCodeRunExists
		}
		_ = f.Error(code, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to run scenario", err)
	}

	run, err := st.ReadRun(context.WithoutCancel(ctx), result.RunID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}
	report := RunReport{Run: run, Pass: result.Pass, Errors: result.Errors}

	if !result.Pass {
		msg := fmt.Sprintf("run %s: %d check(s) failed", run.ID, len(result.Errors))
		if err := f.Failure(ErrCodeGeneric, msg, report); err != nil {
			return err
		}
		return NewExitError(ExitFailure, msg)
	}
	return f.Success(report)
}
