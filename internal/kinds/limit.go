package kinds

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/planpipe/internal/plan"
)

// KindLimit caps the number of rows an operation produces.
const KindLimit plan.Kind = "limit"

// LimitParams is the limit record for all three stages.
type LimitParams struct {
	LimitValue int `json:"limit_value"`
}

// LimitSpec is the catalog entry type for limit.
type LimitSpec = plan.Spec[LimitParams, LimitParams, LimitParams]

func newLimitSpec(p LimitPolicy) *LimitSpec {
	return &LimitSpec{
		Kind:   KindLimit,
		Label:  "limit_shape",
		Parse:  parseLimit,
		ToAST:  plan.Same[LimitParams],
		Derive: plan.Same[LimitParams],
		ASTName: func(a LimitParams) string {
			return fmt.Sprintf("LimitAstNode: (limit=%d)", a.LimitValue)
		},
		LogicalName: func(LimitParams) string {
			return "LimitLogicalNode"
		},
		Explain: func(l LimitParams) string {
			return newPlan("Limit").
				field("Row Limit", "%d", l.LimitValue).
				field("Estimated Memory", "%d bytes", int64(l.LimitValue)*int64(p.BytesPerRow)).
				String()
		},
	}
}

// parseLimit accepts a non-negative 32-bit decimal integer, ignoring
// surrounding whitespace.
func parseLimit(arg string) (LimitParams, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 32)
	if errors.Is(err, strconv.ErrRange) {
		return LimitParams{}, plan.NewArgumentError(KindLimit, arg, "limit out of range", err)
	}
	if err != nil {
		return LimitParams{}, plan.NewArgumentError(KindLimit, arg, "limit must be a decimal integer", err)
	}
	if n < 0 {
		return LimitParams{}, plan.NewArgumentError(KindLimit, arg, "limit must not be negative", nil)
	}
	return LimitParams{LimitValue: int(n)}, nil
}
