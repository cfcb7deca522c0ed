package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/planpipe/internal/plan"
)

// KindInfo describes one registered kind.
type KindInfo struct {
	Name  string `json:"name"`
	Shape string `json:"shape"`
}

// KindList is the kinds command payload.
type KindList struct {
	Kinds []KindInfo `json:"kinds"`
}

// Render lists one kind per line with its shape label.
func (l KindList) Render() string {
	var b strings.Builder
	for _, k := range l.Kinds {
		fmt.Fprintf(&b, "%-14s %s\n", k.Name, k.Shape)
	}
	return b.String()
}

// NewKindsCommand creates the kinds command.
func NewKindsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds [kind...]",
		Short: "List registered node kinds",
		Long: `List registered node kinds with their shape labels, or only the named
kinds. Naming a kind that is not registered exits 2.

Examples:
  planpipe kinds
  planpipe kinds sort limit --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listKinds(rootOpts, args, cmd)
		},
	}
}

func listKinds(opts *RootOptions, names []string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	f.TraceID = opts.nextRunID()

	p, err := opts.newPipeline(cmd.ErrOrStderr())
	if err != nil {
		return f.Fail(err)
	}

	reg := p.Registry()
	for _, name := range names {
		if !reg.Has(name) {
			return f.Fail(&plan.UnknownKindError{Name: name})
		}
	}
	if len(names) == 0 {
		for _, kind := range reg.Kinds() {
			names = append(names, string(kind))
		}
	}

	list := KindList{Kinds: make([]KindInfo, 0, len(names))}
	for _, name := range names {
		entry, err := reg.Entry(name)
		if err != nil {
			return f.Fail(err)
		}
		list.Kinds = append(list.Kinds, KindInfo{Name: name, Shape: entry.Shape()})
	}
	return f.Success(list)
}
