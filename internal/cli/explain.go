package cli

import (
	"github.com/spf13/cobra"
)

// NewExplainCommand creates the explain command.
func NewExplainCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain <kind> <arg>",
		Short: "Run one kind through the pipeline and print its plan",
		Long: `Run one kind through parse, AST and logical stages and print each
stage's label followed by the explain report.

Exit codes:
  0 - Plan produced
  2 - Unknown kind, malformed argument, or bad policy file

Examples:
  planpipe explain limit 100
  planpipe explain sort "field1,field2:desc"
  planpipe explain set_metadata "score:sum(user_score,daily_bonus)"
  planpipe explain bar a,b --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runExplain(opts *RootOptions, kind, arg string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	f.TraceID = opts.nextRunID()

	p, err := opts.newPipeline(cmd.ErrOrStderr())
	if err != nil {
		return f.Fail(err)
	}

	report, err := p.Run(kind, arg)
	if err != nil {
		return f.Fail(err)
	}

	f.VerboseLog("run %s: %s %q", f.TraceID, kind, arg)
	return f.Success(report)
}
