// Package kinds declares the reference node kinds for planpipe.
//
// Each file declares one kind: its parameter records and a plan.Spec value.
// Three kinds reuse one record across every stage:
//   - limit: LimitParams{LimitValue}
//   - sort: SortParams{SortKeys, Ascending}
//   - set_metadata: SetMetadataParams{MetaName, Expression}
//
// Two kinds derive richer records per stage:
//   - foo: FooParams → FooASTParams (payload) → FooLogicalParams (cost multiplier)
//   - bar: BarParams → BarASTParams (items, flag, cost) → BarLogicalParams (index, rows, selectivity)
//
// Adding a kind: add a file with its records and a newXSpec constructor, then
// add one field to Catalog and one entry to Registrants. Package plan is not
// touched.
//
// Argument grammars:
//
//	limit         "100"                       decimal integer, >= 0
//	sort          "a,b:desc"                  keys before ':'; ":desc" means descending
//	set_metadata  "score:sum(a,b)"            name before the first ':'; else default_meta
//	foo           "7"                         integer payload; other text uses the default payload
//	bar           "x,y"                       comma-separated items
package kinds
