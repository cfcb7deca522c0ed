package pipeline

import (
	"fmt"
	"strings"
)

// ExpectationError describes one expectation a step did not meet.
type ExpectationError struct {
	Field    string
	Expected string
	Actual   string
}

func (e *ExpectationError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Field, e.Expected, e.Actual)
}

// StepResult is the outcome of one scenario step.
type StepResult struct {
	Index  int      `json:"index"`
	Kind   string   `json:"kind"`
	Arg    string   `json:"arg"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
	Report *Report  `json:"report,omitempty"`
}

// ScenarioResult is the outcome of a whole scenario. Pass is true only when
// every step passed.
type ScenarioResult struct {
	Name  string       `json:"name"`
	Pass  bool         `json:"pass"`
	Steps []StepResult `json:"steps"`
}

// Failures returns "steps[i]: message" for every failed expectation.
func (r *ScenarioResult) Failures() []string {
	var out []string
	for _, step := range r.Steps {
		for _, msg := range step.Errors {
			out = append(out, fmt.Sprintf("steps[%d] %s %q: %s", step.Index, step.Kind, step.Arg, msg))
		}
	}
	return out
}

// RunScenario runs every step, checking each against its expectations.
// A failing step does not stop the ones after it.
func (p *Pipeline) RunScenario(s *Scenario) *ScenarioResult {
	result := &ScenarioResult{Name: s.Name, Pass: true, Steps: make([]StepResult, 0, len(s.Steps))}

	for i, step := range s.Steps {
		report, runErr := p.Run(step.Kind, step.Arg)
		sr := StepResult{Index: i, Kind: step.Kind, Arg: step.Arg, Report: report}

		for _, err := range checkStep(step.Expect, report, runErr) {
			sr.Errors = append(sr.Errors, err.Error())
		}
		sr.Pass = len(sr.Errors) == 0
		if !sr.Pass {
			result.Pass = false
			p.logger.Debug("step failed", "scenario", s.Name, "step", i, "errors", sr.Errors)
		}
		result.Steps = append(result.Steps, sr)
	}

	return result
}

func checkStep(expect *Expect, report *Report, runErr error) []error {
	if expect != nil && expect.Error != "" {
		if runErr == nil {
			return []error{&ExpectationError{Field: "error", Expected: fmt.Sprintf("error containing %q", expect.Error), Actual: "success"}}
		}
		if !strings.Contains(runErr.Error(), expect.Error) {
			return []error{&ExpectationError{Field: "error", Expected: fmt.Sprintf("error containing %q", expect.Error), Actual: fmt.Sprintf("%q", runErr.Error())}}
		}
		return nil
	}

	if runErr != nil {
		return []error{&ExpectationError{Field: "run", Expected: "success", Actual: runErr.Error()}}
	}
	if expect == nil {
		return nil
	}

	var errs []error
	check := func(field, want, got string) {
		if want != "" && want != got {
			errs = append(errs, &ExpectationError{Field: field, Expected: fmt.Sprintf("%q", want), Actual: fmt.Sprintf("%q", got)})
		}
	}
	check("shape", expect.Shape, report.Shape)
	check("ast_debug", expect.ASTDebug, report.ASTDebug)
	check("logical_debug", expect.LogicalDebug, report.LogicalDebug)
	check("explain", expect.Explain, report.Explain)

	for _, want := range expect.ExplainContains {
		if !strings.Contains(report.Explain, want) {
			errs = append(errs, &ExpectationError{Field: "explain_contains", Expected: fmt.Sprintf("%q", want), Actual: "not found in explain report"})
		}
	}
	return errs
}
