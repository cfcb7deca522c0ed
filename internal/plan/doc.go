// Package plan provides the typed three-stage node pipeline for planpipe.
//
// A node moves through three representations of the same operation:
//
//	[argument string] → Parse node → AST node → Logical node → explain report
//
// Each stage owns a parameter record by value. A kind may reuse one record
// type for every stage (limit, sort) or derive a richer record per stage
// (bar expands its items into a flag and a cost estimate, then into index
// and row estimates).
//
// KIND DECLARATION:
//
// A kind is declared once as a Spec[P, A, L], where P, A and L are its parse,
// AST and logical parameter types. The Spec carries the argument parser, the
// two stage mappings and the label renderers. Nothing in this package knows
// about any concrete kind; adding a kind means writing a new Spec value and
// registering it.
//
// STATIC PATH:
//
// When the kind is known at the call site the generic transformers keep the
// full parameter types:
//
//	parsed, err := catalog.Sort.New("a,b:desc")
//	ast := plan.ParseToAST(parsed)   // *ASTNode[SortParams, SortParams, SortParams]
//	logical := plan.ASTToLogical(ast)
//	logical.Params().Ascending       // false, no assertion needed
//
// A kind without a Spec value cannot be instantiated, so a missing catalog
// entry is a compile error.
//
// DYNAMIC PATH:
//
// When the kind is named by input text, Registry.Lookup returns a Parsed.
// Every stage node carries its own Spec, so Transform and Lower simply ask
// the node for its next stage. The transformers never branch on kind and
// never inspect or assert the concrete node type. An unregistered name
// fails with *UnknownKindError at lookup time.
//
// REGISTRY:
//
// Registry is built in one call from a set of registrants and is read-only
// afterwards, so it can be shared by concurrent pipeline runs without
// locking. It is the only place where a kind is selected by string.
package plan
