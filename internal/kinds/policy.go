package kinds

// Policy holds the cost constants used by the reference kinds.
//
// The values are illustrative planner policy, not invariants. A Catalog
// fixes its Policy when it is built, so every explain report it produces is
// a function of the node's logical parameters alone.
type Policy struct {
	Limit       LimitPolicy       `yaml:"limit" json:"limit"`
	Sort        SortPolicy        `yaml:"sort" json:"sort"`
	SetMetadata SetMetadataPolicy `yaml:"set_metadata" json:"set_metadata"`
	Foo         FooPolicy         `yaml:"foo" json:"foo"`
	Bar         BarPolicy         `yaml:"bar" json:"bar"`
}

// LimitPolicy configures limit memory estimates.
type LimitPolicy struct {
	BytesPerRow int `yaml:"bytes_per_row" json:"bytes_per_row"`
}

// SortPolicy configures sort cost estimates.
type SortPolicy struct {
	CostPerKey int `yaml:"cost_per_key" json:"cost_per_key"`
	// ExternalSortThreshold is the key count above which an external sort
	// is reported.
	ExternalSortThreshold int `yaml:"external_sort_threshold" json:"external_sort_threshold"`
}

// SetMetadataPolicy configures set_metadata cost estimates.
type SetMetadataPolicy struct {
	Cost int `yaml:"cost" json:"cost"`
}

// FooPolicy configures foo payload handling and cost.
type FooPolicy struct {
	BaseCost int `yaml:"base_cost" json:"base_cost"`
	// DefaultPayload is used when the argument is not an integer.
	DefaultPayload int `yaml:"default_payload" json:"default_payload"`
	// Payloads above PayloadThreshold get BoostedMultiplier, others get 1.
	PayloadThreshold  int `yaml:"payload_threshold" json:"payload_threshold"`
	BoostedMultiplier int `yaml:"boosted_multiplier" json:"boosted_multiplier"`
}

// BarPolicy configures bar row, selectivity and cost estimates.
type BarPolicy struct {
	RowsPerItem        int     `yaml:"rows_per_item" json:"rows_per_item"`
	ItemCost           float64 `yaml:"item_cost" json:"item_cost"`
	IndexedSelectivity float64 `yaml:"indexed_selectivity" json:"indexed_selectivity"`
	IndexCost          int     `yaml:"index_cost" json:"index_cost"`
	ScanCost           int     `yaml:"scan_cost" json:"scan_cost"`
}

// DefaultPolicy returns the reference cost constants.
func DefaultPolicy() Policy {
	return Policy{
		Limit:       LimitPolicy{BytesPerRow: 100},
		Sort:        SortPolicy{CostPerKey: 200, ExternalSortThreshold: 3},
		SetMetadata: SetMetadataPolicy{Cost: 10},
		Foo: FooPolicy{
			BaseCost:          100,
			DefaultPayload:    42,
			PayloadThreshold:  0,
			BoostedMultiplier: 2,
		},
		Bar: BarPolicy{
			RowsPerItem:        100,
			ItemCost:           10.5,
			IndexedSelectivity: 0.1,
			IndexCost:          50,
			ScanCost:           200,
		},
	}
}
