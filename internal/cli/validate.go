package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/dosio/internal/catalog"
	"github.com/roach88/dosio/internal/component"
	"github.com/roach88/dosio/internal/dos"
	"github.com/roach88/dosio/internal/engine"
	"github.com/roach88/dosio/internal/harness"
	"github.com/roach88/dosio/internal/signal"
)

// StageInfo describes one built stage.
type StageInfo struct {
	Name      string   `json:"name"`
	Component string   `json:"component"`
	Inputs    []string `json:"inputs"`
	Outputs   []string `json:"outputs"`

	// Declared is false for components that do not declare their signals;
	// they receive the whole bus.
	Declared bool `json:"declared"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool        `json:"valid"`
	Scenario string      `json:"scenario"`
	Stages   []StageInfo `json:"stages"`

	// Warnings lists declared inputs that no earlier stage or initial
	// signal provides on the first tick.
	Warnings []string `json:"warnings,omitempty"`
}

// RenderText prints the pipeline, one stage per line.
func (r ValidationResult) RenderText(w io.Writer) error {
	fmt.Fprintf(w, "✓ %s is valid (%d stages)\n", r.Scenario, len(r.Stages))
	for _, s := range r.Stages {
		if !s.Declared {
			fmt.Fprintf(w, "  %s (%s): whole bus\n", s.Name, s.Component)
			continue
		}
		fmt.Fprintf(w, "  %s (%s): %v -> %v\n", s.Name, s.Component, s.Inputs, s.Outputs)
	}
	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", warn)
	}
	return nil
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenario.yaml>",
		Short: "Validate a scenario without running it",
		Long: `Validate a scenario file: parse it, build every stage from its
component parameters and check the pipeline, without running a tick.

Declared inputs that nothing provides on the first tick are reported as
warnings: a component may legitimately wait for a signal that appears
later.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)

	scenario, err := harness.LoadScenario(path)
	if err != nil {
		_ = f.Error(ErrCodeScenarioInvalid, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid scenario", err)
	}
	f.VerboseLog("Loaded scenario %s with %d stage(s)", scenario.Name, len(scenario.Stages))

	stages, err := harness.BuildStages(component.Default(), scenario)
	if err != nil {
		_ = f.Error(ErrCodePipelineInvalid, err.Error(), nil)
		return WrapExitError(ExitFailure, "invalid pipeline", err)
	}
	if _, err := engine.New(stages, engine.WithRunID("validate")); err != nil {
		_ = f.Error(ErrCodePipelineInvalid, err.Error(), nil)
		return WrapExitError(ExitFailure, "invalid pipeline", err)
	}

	return f.Success(describePipeline(scenario, stages))
}

// describePipeline lists the declared signals of every stage and warns
// about inputs nothing provides on the first tick.
func describePipeline(scenario *harness.Scenario, stages []engine.Stage) ValidationResult {
	result := ValidationResult{
		Valid:    true,
		Scenario: scenario.Name,
		Stages:   make([]StageInfo, 0, len(stages)),
	}

	provided := make(map[catalog.Kind]bool)
	for _, in := range scenario.Initial {
		provided[in.Kind] = true
	}

	for i, s := range stages {
		info := StageInfo{Name: s.Name, Component: scenario.Stages[i].Component}
		t, ok := s.Component.(dos.Tagger)
		if !ok {
			result.Stages = append(result.Stages, info)
			continue
		}
		info.Declared = true
		info.Inputs = tagNames(t.InputsTags())
		info.Outputs = tagNames(t.OutputsTags())
		for _, tag := range t.InputsTags() {
			if !provided[tag.Kind()] {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("stage %s: input %s is not provided on the first tick", s.Name, tag.Kind()))
			}
		}
		for _, tag := range t.OutputsTags() {
			provided[tag.Kind()] = true
		}
		result.Stages = append(result.Stages, info)
	}
	return result
}

func tagNames(tags []signal.Tag) []string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name()
	}
	return names
}
