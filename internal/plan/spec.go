package plan

import (
	"errors"
	"fmt"
)

// Kind names a node variant, e.g. "limit" or "set_metadata".
type Kind string

// String returns the kind name.
func (k Kind) String() string {
	return string(k)
}

// Spec declares one kind: its parameter shape at each stage and the functions
// that move a node from one stage to the next.
//
// P, A and L are the parse, AST and logical parameter records. A kind that
// keeps one record for the whole pipeline instantiates all three with the
// same type and uses Same (or a cloning function) for the mappings.
//
// Every function must be pure and deterministic. Mappings must not retain or
// share slices of their input; each node owns its record exclusively.
type Spec[P, A, L any] struct {
	// Kind is the registry name.
	Kind Kind

	// Label is the diagnostic shape label reported by parse nodes.
	// Later stages never read it.
	Label string

	// Parse builds parse-stage parameters from a raw argument string.
	Parse func(arg string) (P, error)

	// ToAST maps parse parameters to AST parameters.
	ToAST func(P) A

	// Derive computes logical parameters from AST parameters.
	Derive func(A) L

	// ASTName renders the AST node's debug label.
	ASTName func(A) string

	// LogicalName renders the logical node's debug label.
	LogicalName func(L) string

	// Explain renders the logical node's explain report.
	Explain func(L) string
}

// Name returns the kind name. Part of Registrant.
func (s *Spec[P, A, L]) Name() Kind {
	return s.Kind
}

// Shape returns the diagnostic shape label. Part of Registrant.
func (s *Spec[P, A, L]) Shape() string {
	return s.Label
}

// Validate checks that every stage function is present.
func (s *Spec[P, A, L]) Validate() error {
	if s.Kind == "" {
		return errors.New("spec has empty kind name")
	}
	missing := func(field string) error {
		return fmt.Errorf("spec %q: %s is nil", s.Kind, field)
	}
	switch {
	case s.Parse == nil:
		return missing("Parse")
	case s.ToAST == nil:
		return missing("ToAST")
	case s.Derive == nil:
		return missing("Derive")
	case s.ASTName == nil:
		return missing("ASTName")
	case s.LogicalName == nil:
		return missing("LogicalName")
	case s.Explain == nil:
		return missing("Explain")
	}
	return nil
}

// New parses arg into a typed parse node.
//
// Parser failures are returned as *ArgumentError. A parser that already
// returns an *ArgumentError has it passed through unchanged.
func (s *Spec[P, A, L]) New(arg string) (*ParseNode[P, A, L], error) {
	params, err := s.Parse(arg)
	if err != nil {
		var ae *ArgumentError
		if errors.As(err, &ae) {
			return nil, err
		}
		return nil, NewArgumentError(s.Kind, arg, "parse failed", err)
	}
	return &ParseNode[P, A, L]{spec: s, params: params}, nil
}

// Construct parses arg into a type-erased parse node. Part of Registrant.
func (s *Spec[P, A, L]) Construct(arg string) (Parsed, error) {
	n, err := s.New(arg)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Same is the identity mapping for kinds that reuse one record across stages.
func Same[T any](v T) T {
	return v
}
