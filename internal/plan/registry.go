package plan

import (
	"fmt"
	"slices"
)

// Registrant is a kind that can be selected by name at run time.
// *Spec implements it for every instantiation.
type Registrant interface {
	Name() Kind
	Shape() string
	Validate() error
	Construct(arg string) (Parsed, error)
}

// Registry maps kind names to parse constructors.
//
// A Registry is fully populated by NewRegistry and never mutated afterwards,
// so one instance can serve concurrent lookups without locking. Registration
// order does not matter.
type Registry struct {
	entries map[Kind]Registrant
}

// NewRegistry builds a registry from the given registrants.
// It fails on a nil registrant, an invalid spec, or a duplicate name.
func NewRegistry(registrants ...Registrant) (*Registry, error) {
	entries := make(map[Kind]Registrant, len(registrants))
	for i, r := range registrants {
		if r == nil {
			return nil, fmt.Errorf("registrant %d is nil", i)
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("registrant %d: %w", i, err)
		}
		name := r.Name()
		if _, exists := entries[name]; exists {
			return nil, fmt.Errorf("node kind %q is already registered", name)
		}
		entries[name] = r
	}
	return &Registry{entries: entries}, nil
}

// Lookup builds the parse node for the named kind from arg.
//
// Returns *UnknownKindError if name was never registered, or the kind's
// *ArgumentError if arg does not parse.
func (r *Registry) Lookup(name, arg string) (Parsed, error) {
	entry, ok := r.entries[Kind(name)]
	if !ok {
		return nil, &UnknownKindError{Name: name}
	}
	return entry.Construct(arg)
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.entries[Kind(name)]
	return ok
}

// Entry returns the registrant for name.
func (r *Registry) Entry(name string) (Registrant, error) {
	entry, ok := r.entries[Kind(name)]
	if !ok {
		return nil, &UnknownKindError{Name: name}
	}
	return entry, nil
}

// Kinds returns all registered kind names in sorted order.
func (r *Registry) Kinds() []Kind {
	kinds := make([]Kind, 0, len(r.entries))
	for k := range r.entries {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// Len returns the number of registered kinds.
func (r *Registry) Len() int {
	return len(r.entries)
}
