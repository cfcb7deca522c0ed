package kinds

import (
	"fmt"
	"slices"
	"strings"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"

	"github.com/roach88/planpipe/internal/plan"
)

// KindSetMetadata computes a named metadata value from an expression.
const KindSetMetadata plan.Kind = "set_metadata"

// defaultMetaName is used when the argument has no "name:" prefix.
const defaultMetaName = "default_meta"

// SetMetadataParams is the set_metadata record for all three stages.
type SetMetadataParams struct {
	MetaName   string `json:"meta_name"`
	Expression string `json:"expression"`
}

// SetMetadataSpec is the catalog entry type for set_metadata.
type SetMetadataSpec = plan.Spec[SetMetadataParams, SetMetadataParams, SetMetadataParams]

func newSetMetadataSpec(p SetMetadataPolicy) *SetMetadataSpec {
	return &SetMetadataSpec{
		Kind:   KindSetMetadata,
		Label:  "set_metadata_shape",
		Parse:  parseSetMetadata,
		ToAST:  plan.Same[SetMetadataParams],
		Derive: plan.Same[SetMetadataParams],
		ASTName: func(a SetMetadataParams) string {
			return fmt.Sprintf("SetMetadataAstNode: (name=%s, expr=%s)", a.MetaName, a.Expression)
		},
		LogicalName: func(SetMetadataParams) string {
			return "SetMetadataLogicalNode"
		},
		Explain: func(l SetMetadataParams) string {
			fields := "(unparsed)"
			if refs, ok := ReferencedFields(l.Expression); ok {
				fields = "[" + strings.Join(refs, ", ") + "]"
			}
			return newPlan("SetMetadata").
				field("Metadata Name", "%s", l.MetaName).
				field("Expression", "%s", l.Expression).
				field("Referenced Fields", "%s", fields).
				field("Side Effects", "Yes (metadata write)").
				field("Estimated Cost", "%d units", p.Cost).
				String()
		},
	}
}

// parseSetMetadata splits "name:expression" on the first ':'. Without a ':'
// the whole argument is the expression and the name is defaultMetaName.
func parseSetMetadata(arg string) (SetMetadataParams, error) {
	name, expression, found := strings.Cut(arg, ":")
	if !found {
		return SetMetadataParams{MetaName: defaultMetaName, Expression: arg}, nil
	}
	return SetMetadataParams{MetaName: name, Expression: expression}, nil
}

// ReferencedFields parses expression with the expr-lang grammar and returns
// the sorted, de-duplicated identifiers it reads. Names used only as a
// function callee are excluded. ok is false when the expression does not
// parse.
func ReferencedFields(expression string) (fields []string, ok bool) {
	tree, err := parser.Parse(expression)
	if err != nil {
		return nil, false
	}
	c := &fieldCollector{
		idents:  map[string]struct{}{},
		callees: map[string]struct{}{},
	}
	ast.Walk(&tree.Node, c)

	fields = []string{}
	for name := range c.idents {
		if _, isCallee := c.callees[name]; !isCallee {
			fields = append(fields, name)
		}
	}
	slices.Sort(fields)
	return fields, true
}

type fieldCollector struct {
	idents  map[string]struct{}
	callees map[string]struct{}
}

func (c *fieldCollector) Visit(node *ast.Node) {
	switch n := (*node).(type) {
	case *ast.IdentifierNode:
		c.idents[n.Value] = struct{}{}
	case *ast.CallNode:
		if callee, ok := n.Callee.(*ast.IdentifierNode); ok {
			c.callees[callee.Value] = struct{}{}
		}
	}
}
