package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/planpipe/internal/config"
	"github.com/roach88/planpipe/internal/kinds"
)

// PolicyOptions holds flags for the policy command.
type PolicyOptions struct {
	*RootOptions
	Schema bool // print the CUE schema instead of the policy
}

// policyView renders the effective policy as YAML in text mode.
type policyView struct {
	kinds.Policy
}

func (v policyView) Render() string {
	out, err := yaml.Marshal(v.Policy)
	if err != nil {
		return fmt.Sprintf("# unable to render policy: %v\n", err)
	}
	return string(out)
}

type schemaView string

func (s schemaView) Render() string { return string(s) }

// NewPolicyCommand creates the policy command.
func NewPolicyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PolicyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Print the effective cost policy",
		Long: `Print the cost policy the kinds are built with: the defaults, overlaid
with --policy when given. A policy file that fails schema validation exits 2.

Examples:
  planpipe policy
  planpipe policy --policy ./policy.yaml
  planpipe policy --schema`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showPolicy(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Schema, "schema", false, "print the CUE schema policies are validated against")

	return cmd
}

func showPolicy(opts *PolicyOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	f.TraceID = opts.nextRunID()

	if opts.Schema {
		return f.Success(schemaView(config.Schema()))
	}

	policy, err := opts.loadPolicy()
	if err != nil {
		return f.Fail(err)
	}
	if opts.PolicyFile != "" {
		f.VerboseLog("loaded policy from %s", opts.PolicyFile)
	}
	return f.Success(policyView{Policy: policy})
}
