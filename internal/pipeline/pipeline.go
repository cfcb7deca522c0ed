// Package pipeline runs a single (kind, argument) pair through the parse,
// AST and logical stages and collects what each stage reports.
//
// The stages themselves live in package plan; a Pipeline only chains the
// dynamic path (Registry.Lookup, plan.Transform, plan.Lower), logs each step,
// and fingerprints the parameter record each stage produced.
//
// Scenario files drive many runs at once and check their reports. See
// scenario.go for the file format.
package pipeline

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/planpipe/internal/canonical"
	"github.com/roach88/planpipe/internal/plan"
)

// Pipeline runs kinds from one registry. It holds no per-run state, so one
// Pipeline may serve concurrent callers.
type Pipeline struct {
	registry *plan.Registry
	logger   *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger stage progress is reported to.
// The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a Pipeline over reg.
func New(reg *plan.Registry, opts ...Option) *Pipeline {
	p := &Pipeline{
		registry: reg,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Registry returns the registry the pipeline resolves kinds from.
func (p *Pipeline) Registry() *plan.Registry {
	return p.registry
}

// Run builds the parse node for kind from arg and drives it to an explain
// report. On error no report is returned; the error is a
// *plan.UnknownKindError or a *plan.ArgumentError from the kind's parser.
func (p *Pipeline) Run(kind, arg string) (*Report, error) {
	parsed, err := p.registry.Lookup(kind, arg)
	if err != nil {
		p.logger.Debug("parse failed", "kind", kind, "arg", arg, "error", err)
		return nil, err
	}
	p.logger.Debug("parsed", "kind", kind, "shape", parsed.Shape())

	analyzed := plan.Transform(parsed)
	p.logger.Debug("analyzed", "kind", kind, "node", analyzed.DebugName())

	planned := plan.Lower(analyzed)
	p.logger.Debug("planned", "kind", kind, "node", planned.DebugName())

	fps, err := fingerprint(parsed, analyzed, planned)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}

	return &Report{
		Kind:         planned.Kind(),
		Input:        arg,
		Shape:        parsed.Shape(),
		ASTDebug:     analyzed.DebugName(),
		LogicalDebug: planned.DebugName(),
		Explain:      planned.Explain(),
		Fingerprints: fps,
	}, nil
}

// Report is everything one run produced.
type Report struct {
	Kind         plan.Kind    `json:"kind"`
	Input        string       `json:"input"`
	Shape        string       `json:"shape"`
	ASTDebug     string       `json:"ast_debug"`
	LogicalDebug string       `json:"logical_debug"`
	Explain      string       `json:"explain"`
	Fingerprints Fingerprints `json:"fingerprints"`
}

// Fingerprints identify each stage's parameter record by content. Two runs
// whose records are equal get equal fingerprints, whatever the input text.
type Fingerprints struct {
	Parse   string `json:"parse"`
	AST     string `json:"ast"`
	Logical string `json:"logical"`
}

// Render prints the report in stage order:
//
//	[1] Parse: <shape>
//	[2] AST: <ast debug name>
//	[3] Logical: <logical debug name>
//	[4] Execution Plan:
//	<explain report>
func (r *Report) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[1] Parse: %s\n", r.Shape)
	fmt.Fprintf(&b, "[2] AST: %s\n", r.ASTDebug)
	fmt.Fprintf(&b, "[3] Logical: %s\n", r.LogicalDebug)
	fmt.Fprintf(&b, "[4] Execution Plan:\n%s\n", r.Explain)
	return b.String()
}

func fingerprint(parsed plan.Parsed, analyzed plan.Analyzed, planned plan.Planned) (Fingerprints, error) {
	var fps Fingerprints
	var err error
	if fps.Parse, err = canonical.Fingerprint(canonical.DomainParse, parsed.Record()); err != nil {
		return Fingerprints{}, err
	}
	if fps.AST, err = canonical.Fingerprint(canonical.DomainAST, analyzed.Record()); err != nil {
		return Fingerprints{}, err
	}
	if fps.Logical, err = canonical.Fingerprint(canonical.DomainLogical, planned.Record()); err != nil {
		return Fingerprints{}, err
	}
	return fps, nil
}
