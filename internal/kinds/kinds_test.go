package kinds

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/planpipe/internal/plan"
)

func newDefaultRegistry(t *testing.T) *plan.Registry {
	t.Helper()
	reg, err := NewRegistry(DefaultPolicy())
	require.NoError(t, err)
	return reg
}

// explainOf runs the dynamic path end to end.
func explainOf(t *testing.T, reg *plan.Registry, kind, arg string) (plan.Parsed, plan.Analyzed, plan.Planned) {
	t.Helper()
	parsed, err := reg.Lookup(kind, arg)
	require.NoError(t, err)
	analyzed := parsed.Analyze()
	return parsed, analyzed, analyzed.Plan()
}

func TestRegistryHoldsReferenceKinds(t *testing.T) {
	reg := newDefaultRegistry(t)

	assert.Equal(t, []plan.Kind{KindBar, KindFoo, KindLimit, KindSetMetadata, KindSort}, reg.Kinds())

	shapes := map[string]string{
		"limit":        "limit_shape",
		"sort":         "sort_shape",
		"set_metadata": "set_metadata_shape",
		"foo":          "foo_shape",
		"bar":          "bar_shape",
	}
	for name, shape := range shapes {
		entry, err := reg.Entry(name)
		require.NoError(t, err, name)
		assert.Equal(t, shape, entry.Shape(), name)
	}
}

func TestKindIsPreservedThroughStages(t *testing.T) {
	reg := newDefaultRegistry(t)
	args := map[string]string{
		"limit":        "10",
		"sort":         "a",
		"set_metadata": "x:1",
		"foo":          "3",
		"bar":          "a,b",
	}
	for name, arg := range args {
		parsed, analyzed, planned := explainOf(t, reg, name, arg)
		assert.Equal(t, plan.Kind(name), parsed.Kind())
		assert.Equal(t, plan.Kind(name), analyzed.Kind())
		assert.Equal(t, plan.Kind(name), planned.Kind())
	}
}

func TestLimit(t *testing.T) {
	reg := newDefaultRegistry(t)

	parsed, analyzed, planned := explainOf(t, reg, "limit", "100")
	assert.Equal(t, "limit_shape", parsed.Shape())
	assert.Equal(t, LimitParams{LimitValue: 100}, parsed.Record())
	assert.Equal(t, "LimitAstNode: (limit=100)", analyzed.DebugName())
	assert.Equal(t, "LimitLogicalNode", planned.DebugName())
	assert.Equal(t,
		"LOGICAL_PLAN:\n"+
			"  Operation: Limit\n"+
			"  Row Limit: 100\n"+
			"  Estimated Memory: 10000 bytes",
		planned.Explain())
}

func TestLimitParse(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		want    int
		wantErr string
	}{
		{name: "plain", arg: "100", want: 100},
		{name: "zero", arg: "0", want: 0},
		{name: "whitespace", arg: " 7 ", want: 7},
		{name: "not a number", arg: "ten", wantErr: "limit must be a decimal integer"},
		{name: "empty", arg: "", wantErr: "limit must be a decimal integer"},
		{name: "negative", arg: "-1", wantErr: "limit must not be negative"},
		{name: "max int32", arg: "2147483647", want: 2147483647},
		{name: "above int32", arg: "2147483648", wantErr: "limit out of range"},
		{name: "max int64", arg: "9223372036854775807", wantErr: "limit out of range"},
		{name: "below int32", arg: "-2147483649", wantErr: "limit out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLimit(tt.arg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, plan.IsArgumentError(err))
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.LimitValue)
		})
	}
}

func TestLimitMemoryAtUpperBound(t *testing.T) {
	reg := newDefaultRegistry(t)

	_, _, planned := explainOf(t, reg, "limit", "2147483647")
	assert.Contains(t, planned.Explain(), "  Row Limit: 2147483647\n")
	assert.Contains(t, planned.Explain(), "  Estimated Memory: 214748364700 bytes")

	_, err := reg.Lookup("limit", "9223372036854775807")
	require.Error(t, err)
	assert.True(t, plan.IsArgumentError(err))
}

func TestSort(t *testing.T) {
	reg := newDefaultRegistry(t)

	parsed, analyzed, planned := explainOf(t, reg, "sort", "field1,field2:desc")
	assert.Equal(t, "sort_shape", parsed.Shape())
	assert.Equal(t, SortParams{SortKeys: []string{"field1", "field2"}, Ascending: false}, parsed.Record())
	assert.Equal(t, "SortAstNode: (keys=2, direction=DESC)", analyzed.DebugName())
	assert.Equal(t, "SortLogicalNode", planned.DebugName())
	assert.Equal(t,
		"LOGICAL_PLAN:\n"+
			"  Operation: Sort\n"+
			"  Sort Keys: [field1, field2]\n"+
			"  Direction: DESCENDING\n"+
			"  Algorithm: QuickSort\n"+
			"  Estimated Cost: 400 units",
		planned.Explain())
}

func TestSortParse(t *testing.T) {
	tests := []struct {
		name      string
		arg       string
		keys      []string
		ascending bool
	}{
		{name: "single key", arg: "name", keys: []string{"name"}, ascending: true},
		{name: "explicit asc", arg: "a,b:asc", keys: []string{"a", "b"}, ascending: true},
		{name: "desc", arg: "a:desc", keys: []string{"a"}, ascending: false},
		{name: "blank keys dropped", arg: " a , ,b ", keys: []string{"a", "b"}, ascending: true},
		{name: "padded suffix", arg: "a, b : desc ", keys: []string{"a", "b"}, ascending: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSort(tt.arg)
			require.NoError(t, err)
			assert.Equal(t, tt.keys, got.SortKeys)
			assert.Equal(t, tt.ascending, got.Ascending)
		})
	}

	_, err := parseSort(":desc")
	require.Error(t, err)
	assert.True(t, plan.IsArgumentError(err))
	assert.Contains(t, err.Error(), "sort needs at least one key")
}

func TestSortParseRejectsMisplacedDirection(t *testing.T) {
	tests := []struct {
		name string
		arg  string
	}{
		{name: "direction before last key", arg: "a:desc,b"},
		{name: "upper case", arg: "a,b:DESC"},
		{name: "unknown direction", arg: "a,b:bogus"},
		{name: "empty direction", arg: "a,b:"},
		{name: "two suffixes", arg: "a:asc:desc"},
		{name: "per-key suffixes", arg: "a:asc,b:desc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSort(tt.arg)
			require.Error(t, err)
			assert.True(t, plan.IsArgumentError(err))
			assert.Contains(t, err.Error(), `sort direction must be a trailing ":asc" or ":desc"`)
		})
	}
}

func TestSortAlgorithmSwitchesAboveThreshold(t *testing.T) {
	reg := newDefaultRegistry(t)

	_, _, planned := explainOf(t, reg, "sort", "a,b,c,d")
	assert.Contains(t, planned.Explain(), "  Algorithm: External Sort")
	assert.Contains(t, planned.Explain(), "  Estimated Cost: 800 units")
	assert.Contains(t, planned.Explain(), "  Direction: ASCENDING")

	_, _, planned = explainOf(t, reg, "sort", "a,b,c")
	assert.Contains(t, planned.Explain(), "  Algorithm: QuickSort")
}

func TestSetMetadata(t *testing.T) {
	reg := newDefaultRegistry(t)

	parsed, analyzed, planned := explainOf(t, reg, "set_metadata", "score:sum(user_score,daily_bonus)")
	assert.Equal(t, "set_metadata_shape", parsed.Shape())
	assert.Equal(t, SetMetadataParams{MetaName: "score", Expression: "sum(user_score,daily_bonus)"}, parsed.Record())
	assert.Equal(t, "SetMetadataAstNode: (name=score, expr=sum(user_score,daily_bonus))", analyzed.DebugName())
	assert.Equal(t, "SetMetadataLogicalNode", planned.DebugName())
	assert.Equal(t,
		"LOGICAL_PLAN:\n"+
			"  Operation: SetMetadata\n"+
			"  Metadata Name: score\n"+
			"  Expression: sum(user_score,daily_bonus)\n"+
			"  Referenced Fields: [daily_bonus, user_score]\n"+
			"  Side Effects: Yes (metadata write)\n"+
			"  Estimated Cost: 10 units",
		planned.Explain())
}

func TestSetMetadataParse(t *testing.T) {
	got, err := parseSetMetadata("price * 2")
	require.NoError(t, err)
	assert.Equal(t, SetMetadataParams{MetaName: defaultMetaName, Expression: "price * 2"}, got)

	got, err = parseSetMetadata("ratio:a:b")
	require.NoError(t, err)
	assert.Equal(t, SetMetadataParams{MetaName: "ratio", Expression: "a:b"}, got)
}

func TestReferencedFields(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []string
	}{
		{name: "arithmetic", expr: "price * qty + price", want: []string{"price", "qty"}},
		{name: "literal only", expr: "1 + 2", want: []string{}},
		{name: "user function callee excluded", expr: "normalize(score)", want: []string{"score"}},
		{name: "comparison", expr: "age >= 18 && country == 'NZ'", want: []string{"age", "country"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ReferencedFields(tt.expr)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := ReferencedFields("price *")
	assert.False(t, ok)
}

func TestSetMetadataUnparsedExpression(t *testing.T) {
	reg := newDefaultRegistry(t)

	_, _, planned := explainOf(t, reg, "set_metadata", "bad:price *")
	assert.Contains(t, planned.Explain(), "  Referenced Fields: (unparsed)")
	assert.Contains(t, planned.Explain(), "  Expression: price *")
}

func TestFoo(t *testing.T) {
	reg := newDefaultRegistry(t)

	parsed, analyzed, planned := explainOf(t, reg, "foo", "7")
	assert.Equal(t, "foo_shape", parsed.Shape())
	assert.Equal(t, FooParams{Data: "7"}, parsed.Record())
	assert.Equal(t, "FooAstNode[foo]: FooNode from parse layer with data: 7 (data=7)", analyzed.DebugName())
	assert.Equal(t, "FooLogicalNode[foo]", planned.DebugName())
	assert.Equal(t,
		"LOGICAL_PLAN:\n"+
			"  Operation: FooOperation\n"+
			"  Type: foo\n"+
			"  Optimization: can_be_pushed_down\n"+
			"  Cost Multiplier: 2\n"+
			"  Estimated Cost: 200 units",
		planned.Explain())
}

func TestFooPayload(t *testing.T) {
	cat := NewCatalog(DefaultPolicy())

	tests := []struct {
		name       string
		arg        string
		payload    int
		multiplier int
	}{
		{name: "positive", arg: "5", payload: 5, multiplier: 2},
		{name: "zero", arg: "0", payload: 0, multiplier: 1},
		{name: "negative", arg: "-3", payload: -3, multiplier: 1},
		{name: "text uses default", arg: "hello", payload: 42, multiplier: 2},
		{name: "empty uses default", arg: "", payload: 42, multiplier: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := cat.Foo.New(tt.arg)
			require.NoError(t, err)
			ast := plan.ParseToAST(node)
			assert.Equal(t, tt.payload, ast.Params().Payload)
			logical := plan.ASTToLogical(ast)
			assert.Equal(t, tt.multiplier, logical.Params().CostMultiplier)
		})
	}
}

func TestBar(t *testing.T) {
	reg := newDefaultRegistry(t)

	parsed, analyzed, planned := explainOf(t, reg, "bar", "a,b")
	assert.Equal(t, "bar_shape", parsed.Shape())
	assert.Equal(t, BarParams{Data: "a,b", Items: []string{"a", "b"}}, parsed.Record())
	assert.Equal(t, "BarAstNode[bar]: BarNode from parse layer with 2 items (items=2, flag=true, cost=21)", analyzed.DebugName())
	assert.Equal(t, "BarLogicalNode[bar]", planned.DebugName())
	assert.Equal(t,
		"LOGICAL_PLAN:\n"+
			"  Operation: BarOperation\n"+
			"  Type: bar\n"+
			"  Optimization: can_use_index\n"+
			"  Index Available: Yes\n"+
			"  Estimated Rows: 200\n"+
			"  Selectivity: 0.1\n"+
			"  Estimated Cost: 50 units",
		planned.Explain())
}

func TestBarWithoutItemsFallsBackToScan(t *testing.T) {
	cat := NewCatalog(DefaultPolicy())

	node, err := cat.Bar.New("")
	require.NoError(t, err)
	logical := plan.ASTToLogical(plan.ParseToAST(node))

	assert.Equal(t, BarLogicalParams{
		NodeType:         "bar",
		OptimizationHint: "full_scan",
		CanUseIndex:      false,
		EstimatedRows:    0,
		Selectivity:      1.0,
	}, logical.Params())
	assert.Contains(t, logical.Explain(), "  Index Available: No")
	assert.Contains(t, logical.Explain(), "  Selectivity: 1\n")
	assert.Contains(t, logical.Explain(), "  Estimated Cost: 200 units")
}

func TestStaticPathTypes(t *testing.T) {
	cat := NewCatalog(DefaultPolicy())

	node, err := cat.Sort.New("x,y:desc")
	require.NoError(t, err)
	var keys []string = plan.ASTToLogical(plan.ParseToAST(node)).Params().SortKeys
	assert.Equal(t, []string{"x", "y"}, keys)

	bar, err := cat.Bar.New("p,q,r")
	require.NoError(t, err)
	var rows int = plan.ASTToLogical(plan.ParseToAST(bar)).Params().EstimatedRows
	assert.Equal(t, 300, rows)
}

func TestStageRecordsDoNotShareSlices(t *testing.T) {
	cat := NewCatalog(DefaultPolicy())

	node, err := cat.Sort.New("a,b")
	require.NoError(t, err)
	ast := plan.ParseToAST(node)
	ast.Params().SortKeys[0] = "mutated"

	assert.Equal(t, []string{"a", "b"}, node.Params().SortKeys)
}

func TestPolicyOverridesExplain(t *testing.T) {
	p := DefaultPolicy()
	p.Limit.BytesPerRow = 8
	p.Sort.CostPerKey = 5
	p.Sort.ExternalSortThreshold = 1
	p.Foo.BaseCost = 7
	p.Bar.IndexCost = 3

	reg, err := NewRegistry(p)
	require.NoError(t, err)

	_, _, planned := explainOf(t, reg, "limit", "10")
	assert.Contains(t, planned.Explain(), "Estimated Memory: 80 bytes")

	_, _, planned = explainOf(t, reg, "sort", "a,b")
	assert.Contains(t, planned.Explain(), "Algorithm: External Sort")
	assert.Contains(t, planned.Explain(), "Estimated Cost: 10 units")

	_, _, planned = explainOf(t, reg, "foo", "1")
	assert.Contains(t, planned.Explain(), "Estimated Cost: 14 units")

	_, _, planned = explainOf(t, reg, "bar", "z")
	assert.Contains(t, planned.Explain(), "Estimated Cost: 3 units")
}

func TestExplainFormat(t *testing.T) {
	reg := newDefaultRegistry(t)

	for _, kind := range reg.Kinds() {
		_, _, planned := explainOf(t, reg, string(kind), "1")
		out := planned.Explain()
		assert.True(t, strings.HasPrefix(out, "LOGICAL_PLAN:\n  Operation: "), kind)
		assert.False(t, strings.HasSuffix(out, "\n"), kind)
		for _, line := range strings.Split(out, "\n")[1:] {
			assert.True(t, strings.HasPrefix(line, "  "), "%s: %q", kind, line)
		}
	}
}

func TestCatalogUsesPolicy(t *testing.T) {
	p := DefaultPolicy()
	p.SetMetadata.Cost = 99
	cat := NewCatalog(p)

	node, err := cat.SetMetadata.New("score:a+b")
	require.NoError(t, err)
	assert.Contains(t, plan.ASTToLogical(plan.ParseToAST(node)).Explain(), "Estimated Cost: 99 units")
	assert.Len(t, cat.Registrants(), 5)
}
