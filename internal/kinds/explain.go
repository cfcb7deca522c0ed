package kinds

import (
	"fmt"
	"strconv"
	"strings"
)

// planBuilder accumulates the lines of a LOGICAL_PLAN report.
type planBuilder struct {
	lines []string
}

func newPlan(operation string) *planBuilder {
	b := &planBuilder{}
	return b.field("Operation", "%s", operation)
}

func (b *planBuilder) field(label, format string, args ...any) *planBuilder {
	b.lines = append(b.lines, "  "+label+": "+fmt.Sprintf(format, args...))
	return b
}

func (b *planBuilder) String() string {
	return "LOGICAL_PLAN:\n" + strings.Join(b.lines, "\n")
}

// formatFloat renders the shortest representation that round-trips,
// e.g. 0.1, 1, 21.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// splitList splits a comma-separated list, trimming blanks and dropping
// empty entries. Returns nil when nothing remains.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
