package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/planpipe/internal/pipeline"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Filter string // scenario filter (glob pattern on the file name)
}

// ScenarioResult holds the result of a single scenario execution.
type ScenarioResult struct {
	Name   string   `json:"name"`
	File   string   `json:"file"`
	Pass   bool     `json:"pass"`
	Steps  int      `json:"steps"`
	Errors []string `json:"errors,omitempty"`
}

// TestResult holds the overall test result.
type TestResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenario-file-or-dir>...",
		Short: "Run scenario files against the pipeline",
		Long: `Run YAML scenario files. Each scenario lists (kind, arg) steps and the
shape, debug labels, explain text or error each step must produce.
Directories are searched recursively for .yaml and .yml files.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (missing path, unreadable or invalid scenario file, bad policy)

Examples:
  planpipe test ./scenarios
  planpipe test ./scenarios --filter "sort-*"
  planpipe test limit.yaml sort.yaml --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")

	return cmd
}

type loadedScenario struct {
	file     string
	scenario *pipeline.Scenario
}

func runTests(opts *TestOptions, paths []string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	f.TraceID = opts.nextRunID()

	var files []string
	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			_ = f.Error(ErrCodeNotFound, fmt.Sprintf("scenario path not found: %s", path), nil)
			return NewExitError(ExitCommandError, fmt.Sprintf("scenario path not found: %s", path))
		}
		found, err := findScenarioFiles(path, opts.Filter)
		if err != nil {
			_ = f.Error(ErrCodeScenario, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to find scenarios", err)
		}
		files = append(files, found...)
	}

	if len(files) == 0 {
		if opts.Format == "json" {
			return outputTestJSON(cmd, f.TraceID, TestResult{Scenarios: []ScenarioResult{}})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No scenarios found.")
		return nil
	}

	// Load every file before running any, so a broken file is a command
	// error rather than a half-finished run.
	scenarios := make([]loadedScenario, 0, len(files))
	for _, file := range files {
		s, err := pipeline.LoadScenario(file)
		if err != nil {
			_ = f.Error(ErrCodeScenario, err.Error(), nil)
			return WrapExitError(ExitCommandError, ErrCodeScenario, err)
		}
		scenarios = append(scenarios, loadedScenario{file: file, scenario: s})
	}

	p, err := opts.newPipeline(cmd.ErrOrStderr())
	if err != nil {
		return f.Fail(err)
	}
	f.VerboseLog("run %s: %d scenario file(s)", f.TraceID, len(scenarios))

	result := TestResult{
		Scenarios: make([]ScenarioResult, 0, len(scenarios)),
		Total:     len(scenarios),
	}
	for _, ls := range scenarios {
		sr := runScenario(p, ls, opts, cmd)
		result.Scenarios = append(result.Scenarios, sr)
		if sr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if opts.Format == "json" {
		return outputTestJSON(cmd, f.TraceID, result)
	}
	return outputTestText(cmd, result)
}

// findScenarioFiles returns path itself when it is a file, or every YAML
// file under it when it is a directory.
func findScenarioFiles(path string, filter string) ([]string, error) {
	var files []string

	err := filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		ext := filepath.Ext(p)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(p), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, p)
		return nil
	})

	return files, err
}

// runScenario executes a single scenario and returns the result.
func runScenario(p *pipeline.Pipeline, ls loadedScenario, opts *TestOptions, cmd *cobra.Command) ScenarioResult {
	w := cmd.OutOrStdout()

	result := p.RunScenario(ls.scenario)
	sr := ScenarioResult{
		Name:   result.Name,
		File:   ls.file,
		Pass:   result.Pass,
		Steps:  len(result.Steps),
		Errors: result.Failures(),
	}

	if opts.Format != "json" {
		if sr.Pass {
			fmt.Fprintf(w, "✓ %s (%d steps)\n", sr.Name, sr.Steps)
		} else {
			fmt.Fprintf(w, "✗ %s\n", sr.Name)
			for _, e := range sr.Errors {
				fmt.Fprintf(w, "  %s\n", e)
			}
		}
	}
	return sr
}

// outputTestJSON outputs the test result as JSON.
func outputTestJSON(cmd *cobra.Command, traceID string, result TestResult) error {
	status := "ok"
	if result.Failed > 0 {
		status = "error"
	}

	response := CLIResponse{
		Status:  status,
		Data:    result,
		TraceID: traceID,
	}

	if result.Failed > 0 {
		response.Error = &CLIError{
			Code:    ErrCodeScenarioFailed,
			Message: fmt.Sprintf("%d scenario(s) failed", result.Failed),
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", result.Failed))
	}
	return nil
}

// outputTestText outputs the test result as text.
func outputTestText(cmd *cobra.Command, result TestResult) error {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Test Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", result.Failed))
	}

	fmt.Fprintln(w, "✓ All scenarios passed")
	return nil
}
