package kinds

import (
	"fmt"
	"slices"

	"github.com/roach88/planpipe/internal/plan"
)

// KindBar is a multi-item lookup that may be served by an index.
const KindBar plan.Kind = "bar"

// BarParams is the parse record: the raw text and its comma-separated items.
type BarParams struct {
	Data  string   `json:"data"`
	Items []string `json:"items"`
}

// BarASTParams expands the items into a flag and a float cost estimate.
type BarASTParams struct {
	NodeType     string   `json:"node_type"`
	DebugInfo    string   `json:"debug_info"`
	Items        []string `json:"items"`
	Flag         bool     `json:"flag"`
	CostEstimate float64  `json:"cost_estimate"`
}

// BarLogicalParams carries the optimizer-relevant estimates.
type BarLogicalParams struct {
	NodeType         string  `json:"node_type"`
	OptimizationHint string  `json:"optimization_hint"`
	CanUseIndex      bool    `json:"can_use_index"`
	EstimatedRows    int     `json:"estimated_rows"`
	Selectivity      float64 `json:"selectivity"`
}

// BarSpec is the catalog entry type for bar.
type BarSpec = plan.Spec[BarParams, BarASTParams, BarLogicalParams]

func newBarSpec(p BarPolicy) *BarSpec {
	return &BarSpec{
		Kind:  KindBar,
		Label: "bar_shape",
		Parse: func(arg string) (BarParams, error) {
			return BarParams{Data: arg, Items: splitList(arg)}, nil
		},
		ToAST: func(b BarParams) BarASTParams {
			n := len(b.Items)
			return BarASTParams{
				NodeType:     string(KindBar),
				DebugInfo:    fmt.Sprintf("BarNode from parse layer with %d items", n),
				Items:        slices.Clone(b.Items),
				Flag:         n > 0,
				CostEstimate: float64(n) * p.ItemCost,
			}
		},
		Derive: func(a BarASTParams) BarLogicalParams {
			hint, selectivity := "full_scan", 1.0
			if a.Flag {
				hint, selectivity = "can_use_index", p.IndexedSelectivity
			}
			return BarLogicalParams{
				NodeType:         a.NodeType,
				OptimizationHint: hint,
				CanUseIndex:      a.Flag,
				EstimatedRows:    len(a.Items) * p.RowsPerItem,
				Selectivity:      selectivity,
			}
		},
		ASTName: func(a BarASTParams) string {
			return fmt.Sprintf("BarAstNode[%s]: %s (items=%d, flag=%t, cost=%s)",
				a.NodeType, a.DebugInfo, len(a.Items), a.Flag, formatFloat(a.CostEstimate))
		},
		LogicalName: func(l BarLogicalParams) string {
			return fmt.Sprintf("BarLogicalNode[%s]", l.NodeType)
		},
		Explain: func(l BarLogicalParams) string {
			cost := p.ScanCost
			if l.CanUseIndex {
				cost = p.IndexCost
			}
			return newPlan("BarOperation").
				field("Type", "%s", l.NodeType).
				field("Optimization", "%s", l.OptimizationHint).
				field("Index Available", "%s", yesNo(l.CanUseIndex)).
				field("Estimated Rows", "%d", l.EstimatedRows).
				field("Selectivity", "%s", formatFloat(l.Selectivity)).
				field("Estimated Cost", "%d units", cost).
				String()
		},
	}
}
