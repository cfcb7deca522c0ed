package plan

// Parsed is the type-erased view of a parse-stage node.
//
// Values are produced by Registry.Lookup when the kind is chosen at run time.
// Analyze manufactures the matching AST node using the mapping bound to the
// node when it was constructed.
type Parsed interface {
	Kind() Kind
	Shape() string
	Record() any
	Analyze() Analyzed
}

// Analyzed is the type-erased view of an AST-stage node.
type Analyzed interface {
	Kind() Kind
	DebugName() string
	Record() any
	Plan() Planned
}

// Planned is the type-erased view of a logical-stage node.
type Planned interface {
	Kind() Kind
	DebugName() string
	Record() any
	Explain() string
}

var (
	_ Parsed   = (*ParseNode[struct{}, struct{}, struct{}])(nil)
	_ Analyzed = (*ASTNode[struct{}, struct{}, struct{}])(nil)
	_ Planned  = (*LogicalNode[struct{}, struct{}, struct{}])(nil)
)

// ParseNode owns the parse-stage parameters of one kind.
type ParseNode[P, A, L any] struct {
	spec   *Spec[P, A, L]
	params P
}

// Kind returns the node's kind.
func (n *ParseNode[P, A, L]) Kind() Kind {
	return n.spec.Kind
}

// Shape returns the kind's diagnostic shape label.
func (n *ParseNode[P, A, L]) Shape() string {
	return n.spec.Label
}

// Params returns the parse-stage record. Callers must treat it as read-only.
func (n *ParseNode[P, A, L]) Params() P {
	return n.params
}

// Record returns the parse-stage record as an untyped value for
// serialization.
func (n *ParseNode[P, A, L]) Record() any {
	return n.params
}

// Analyze manufactures the matching AST node.
func (n *ParseNode[P, A, L]) Analyze() Analyzed {
	return ParseToAST(n)
}

// ASTNode owns the AST-stage parameters of one kind.
type ASTNode[P, A, L any] struct {
	spec   *Spec[P, A, L]
	params A
}

// Kind returns the node's kind.
func (n *ASTNode[P, A, L]) Kind() Kind {
	return n.spec.Kind
}

// DebugName renders the AST node's debug label.
func (n *ASTNode[P, A, L]) DebugName() string {
	return n.spec.ASTName(n.params)
}

// Params returns the AST-stage record. Callers must treat it as read-only.
func (n *ASTNode[P, A, L]) Params() A {
	return n.params
}

// Record returns the AST-stage record as an untyped value for serialization.
func (n *ASTNode[P, A, L]) Record() any {
	return n.params
}

// LogicalParams derives the logical-stage record. Pure and deterministic.
func (n *ASTNode[P, A, L]) LogicalParams() L {
	return n.spec.Derive(n.params)
}

// Plan manufactures the matching logical node.
func (n *ASTNode[P, A, L]) Plan() Planned {
	return ASTToLogical(n)
}

// LogicalNode owns the logical-stage parameters of one kind.
type LogicalNode[P, A, L any] struct {
	spec   *Spec[P, A, L]
	params L
}

// Kind returns the node's kind.
func (n *LogicalNode[P, A, L]) Kind() Kind {
	return n.spec.Kind
}

// DebugName renders the logical node's debug label.
func (n *LogicalNode[P, A, L]) DebugName() string {
	return n.spec.LogicalName(n.params)
}

// Params returns the logical-stage record. Callers must treat it as
// read-only.
func (n *LogicalNode[P, A, L]) Params() L {
	return n.params
}

// Record returns the logical-stage record as an untyped value for
// serialization.
func (n *LogicalNode[P, A, L]) Record() any {
	return n.params
}

// Explain renders the explain report. Repeated calls return identical text.
func (n *LogicalNode[P, A, L]) Explain() string {
	return n.spec.Explain(n.params)
}
