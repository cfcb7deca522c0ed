package kinds

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/planpipe/internal/plan"
)

// KindFoo is a pushdown-friendly operation carrying one scalar payload.
const KindFoo plan.Kind = "foo"

// FooParams is the parse record: the argument text, unchanged.
type FooParams struct {
	Data string `json:"data"`
}

// FooASTParams adds the resolved scalar payload.
type FooASTParams struct {
	NodeType  string `json:"node_type"`
	DebugInfo string `json:"debug_info"`
	Payload   int    `json:"payload"`
}

// FooLogicalParams carries the optimizer hint and cost multiplier.
type FooLogicalParams struct {
	NodeType         string `json:"node_type"`
	OptimizationHint string `json:"optimization_hint"`
	CostMultiplier   int    `json:"cost_multiplier"`
}

// FooSpec is the catalog entry type for foo.
type FooSpec = plan.Spec[FooParams, FooASTParams, FooLogicalParams]

func newFooSpec(p FooPolicy) *FooSpec {
	return &FooSpec{
		Kind:  KindFoo,
		Label: "foo_shape",
		Parse: func(arg string) (FooParams, error) {
			return FooParams{Data: arg}, nil
		},
		ToAST: func(f FooParams) FooASTParams {
			payload := p.DefaultPayload
			if n, err := strconv.Atoi(strings.TrimSpace(f.Data)); err == nil {
				payload = n
			}
			return FooASTParams{
				NodeType:  string(KindFoo),
				DebugInfo: "FooNode from parse layer with data: " + f.Data,
				Payload:   payload,
			}
		},
		Derive: func(a FooASTParams) FooLogicalParams {
			multiplier := 1
			if a.Payload > p.PayloadThreshold {
				multiplier = p.BoostedMultiplier
			}
			return FooLogicalParams{
				NodeType:         a.NodeType,
				OptimizationHint: "can_be_pushed_down",
				CostMultiplier:   multiplier,
			}
		},
		ASTName: func(a FooASTParams) string {
			return fmt.Sprintf("FooAstNode[%s]: %s (data=%d)", a.NodeType, a.DebugInfo, a.Payload)
		},
		LogicalName: func(l FooLogicalParams) string {
			return fmt.Sprintf("FooLogicalNode[%s]", l.NodeType)
		},
		Explain: func(l FooLogicalParams) string {
			return newPlan("FooOperation").
				field("Type", "%s", l.NodeType).
				field("Optimization", "%s", l.OptimizationHint).
				field("Cost Multiplier", "%d", l.CostMultiplier).
				field("Estimated Cost", "%d units", p.BaseCost*l.CostMultiplier).
				String()
		},
	}
}
