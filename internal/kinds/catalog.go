package kinds

import "github.com/roach88/planpipe/internal/plan"

// Catalog holds one typed spec per reference kind.
//
// The fields give callers the static path: catalog.Sort.New(arg) returns a
// node whose parameters are typed all the way to the logical stage.
// Registrants feeds the same specs to a plan.Registry for the dynamic path.
type Catalog struct {
	Limit       *LimitSpec
	Sort        *SortSpec
	SetMetadata *SetMetadataSpec
	Foo         *FooSpec
	Bar         *BarSpec
}

// NewCatalog builds the reference catalog with the given cost policy.
func NewCatalog(p Policy) *Catalog {
	return &Catalog{
		Limit:       newLimitSpec(p.Limit),
		Sort:        newSortSpec(p.Sort),
		SetMetadata: newSetMetadataSpec(p.SetMetadata),
		Foo:         newFooSpec(p.Foo),
		Bar:         newBarSpec(p.Bar),
	}
}

// Registrants returns every spec in the catalog for name-indexed lookup.
func (c *Catalog) Registrants() []plan.Registrant {
	return []plan.Registrant{c.Limit, c.Sort, c.SetMetadata, c.Foo, c.Bar}
}

// NewRegistry builds a registry holding every reference kind.
func NewRegistry(p Policy) (*plan.Registry, error) {
	return plan.NewRegistry(NewCatalog(p).Registrants()...)
}
