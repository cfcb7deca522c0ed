package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/planpipe/internal/config"
	"github.com/roach88/planpipe/internal/kinds"
	"github.com/roach88/planpipe/internal/pipeline"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	PolicyFile string // optional cost policy YAML

	// RunIDs supplies trace IDs. Nil means UUIDv7Generator.
	RunIDs RunIDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the planpipe CLI.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWithOptions(&RootOptions{})
}

// NewRootCommandWithOptions creates the root command around opts, letting
// callers inject a RunIDGenerator.
func NewRootCommandWithOptions(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "planpipe",
		Short: "planpipe - typed parse/AST/logical plan pipeline",
		Long: `Turn a (kind, argument) pair into a logical plan node and explain it.

Each run goes through three stages: the parse node for the kind, its AST
node, and the logical plan node that renders an EXPLAIN-style cost report.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.PolicyFile, "policy", "", "cost policy YAML file")

	cmd.AddCommand(NewExplainCommand(opts))
	cmd.AddCommand(NewKindsCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewPolicyCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// formatter builds the output formatter for one command invocation.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// nextRunID returns a fresh trace ID.
func (o *RootOptions) nextRunID() string {
	if o.RunIDs == nil {
		return UUIDv7Generator{}.Generate()
	}
	return o.RunIDs.Generate()
}

// logger returns a debug-level text logger on w when verbose, else a
// logger that discards.
func (o *RootOptions) logger(w io.Writer) *slog.Logger {
	if !o.Verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// loadPolicy reads --policy, falling back to the default policy.
func (o *RootOptions) loadPolicy() (kinds.Policy, error) {
	return config.LoadPolicy(o.PolicyFile)
}

// newPipeline builds the reference registry under the effective policy.
func (o *RootOptions) newPipeline(logW io.Writer) (*pipeline.Pipeline, error) {
	policy, err := o.loadPolicy()
	if err != nil {
		return nil, err
	}
	reg, err := kinds.NewRegistry(policy)
	if err != nil {
		return nil, err
	}
	return pipeline.New(reg, pipeline.WithLogger(o.logger(logW))), nil
}
