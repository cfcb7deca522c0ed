package kinds

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/planpipe/internal/plan"
)

// KindSort orders rows by one or more keys.
const KindSort plan.Kind = "sort"

// SortParams is the sort record for all three stages.
type SortParams struct {
	SortKeys  []string `json:"sort_keys"`
	Ascending bool     `json:"ascending"`
}

// SortSpec is the catalog entry type for sort.
type SortSpec = plan.Spec[SortParams, SortParams, SortParams]

func newSortSpec(p SortPolicy) *SortSpec {
	return &SortSpec{
		Kind:   KindSort,
		Label:  "sort_shape",
		Parse:  parseSort,
		ToAST:  cloneSort,
		Derive: cloneSort,
		ASTName: func(a SortParams) string {
			return fmt.Sprintf("SortAstNode: (keys=%d, direction=%s)", len(a.SortKeys), direction(a.Ascending, "ASC", "DESC"))
		},
		LogicalName: func(SortParams) string {
			return "SortLogicalNode"
		},
		Explain: func(l SortParams) string {
			algorithm := "QuickSort"
			if len(l.SortKeys) > p.ExternalSortThreshold {
				algorithm = "External Sort"
			}
			return newPlan("Sort").
				field("Sort Keys", "[%s]", strings.Join(l.SortKeys, ", ")).
				field("Direction", "%s", direction(l.Ascending, "ASCENDING", "DESCENDING")).
				field("Algorithm", "%s", algorithm).
				field("Estimated Cost", "%d units", len(l.SortKeys)*p.CostPerKey).
				String()
		},
	}
}

// parseSort reads "key1,key2[:asc|:desc]". The optional direction suffix
// applies to the whole key list and must be the text after the only ':'.
func parseSort(arg string) (SortParams, error) {
	keyList, dir, hasDir := strings.Cut(arg, ":")
	ascending := true
	if hasDir {
		switch strings.TrimSpace(dir) {
		case "asc":
		case "desc":
			ascending = false
		default:
			return SortParams{}, plan.NewArgumentError(KindSort, arg, `sort direction must be a trailing ":asc" or ":desc"`, nil)
		}
	}
	keys := splitList(keyList)
	if len(keys) == 0 {
		return SortParams{}, plan.NewArgumentError(KindSort, arg, "sort needs at least one key", nil)
	}
	return SortParams{SortKeys: keys, Ascending: ascending}, nil
}

func cloneSort(s SortParams) SortParams {
	return SortParams{SortKeys: slices.Clone(s.SortKeys), Ascending: s.Ascending}
}

func direction(ascending bool, asc, desc string) string {
	if ascending {
		return asc
	}
	return desc
}
