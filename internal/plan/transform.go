package plan

// ParseToAST maps a parse node to the AST node of the same kind.
//
// The result keeps the kind's full parameter types, so callers on the static
// path can read AST parameters without any assertion.
func ParseToAST[P, A, L any](n *ParseNode[P, A, L]) *ASTNode[P, A, L] {
	return &ASTNode[P, A, L]{spec: n.spec, params: n.spec.ToAST(n.params)}
}

// ASTToLogical maps an AST node to the logical node of the same kind.
func ASTToLogical[P, A, L any](n *ASTNode[P, A, L]) *LogicalNode[P, A, L] {
	return &LogicalNode[P, A, L]{spec: n.spec, params: n.LogicalParams()}
}

// Transform maps a type-erased parse node to its AST node.
// The node supplies its own mapping, so no kind is ever inspected here.
func Transform(n Parsed) Analyzed {
	return n.Analyze()
}

// Lower maps a type-erased AST node to its logical node.
func Lower(n Analyzed) Planned {
	return n.Plan()
}
