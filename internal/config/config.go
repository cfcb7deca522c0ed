// Package config loads the cost policy used by the reference node kinds.
//
// A policy file is YAML holding any subset of the kinds.Policy fields.
// Fields it omits keep their defaults. The merged policy is checked against
// the embedded CUE schema in policy.cue before it is returned.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"

	"github.com/roach88/planpipe/internal/kinds"
)

//go:embed policy.cue
var policySchema string

// Schema returns the CUE source the policy is validated against.
func Schema() string {
	return policySchema
}

// PolicyError reports a policy that could not be read, decoded, or
// validated. Pos is set when the failure maps to a CUE source position.
type PolicyError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *PolicyError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsPolicyError reports whether err is or wraps a *PolicyError.
func IsPolicyError(err error) bool {
	var pe *PolicyError
	return errors.As(err, &pe)
}

// LoadPolicy reads a policy file. An empty path yields the default policy.
func LoadPolicy(path string) (kinds.Policy, error) {
	if path == "" {
		return kinds.DefaultPolicy(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return kinds.Policy{}, &PolicyError{Field: "file", Message: err.Error()}
	}
	p, err := ParsePolicy(data)
	if err != nil {
		return kinds.Policy{}, fmt.Errorf("policy %s: %w", path, err)
	}
	return p, nil
}

// ParsePolicy decodes YAML over the default policy and validates the result.
// Unknown keys and extra documents are rejected. Empty input yields the
// default policy.
func ParsePolicy(data []byte) (kinds.Policy, error) {
	p := kinds.DefaultPolicy()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	err := dec.Decode(&p)
	if err != nil && !errors.Is(err, io.EOF) {
		return kinds.Policy{}, &PolicyError{Field: "yaml", Message: err.Error()}
	}
	if err == nil {
		var extra yaml.Node
		if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
			msg := "policy must be a single YAML document"
			if err != nil {
				msg = err.Error()
			}
			return kinds.Policy{}, &PolicyError{Field: "yaml", Message: msg}
		}
	}

	if err := ValidatePolicy(p); err != nil {
		return kinds.Policy{}, err
	}
	return p, nil
}

// ValidatePolicy checks p against the #Policy definition.
func ValidatePolicy(p kinds.Policy) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(policySchema, cue.Filename("policy.cue"))
	if err := schema.Err(); err != nil {
		return formatCUEError(err)
	}
	def := schema.LookupPath(cue.ParsePath("#Policy"))

	value := ctx.Encode(p)
	if err := value.Err(); err != nil {
		return formatCUEError(err)
	}

	return formatCUEError(def.Unify(value).Validate(cue.Concrete(true)))
}

// formatCUEError turns the first CUE error into a *PolicyError naming the
// offending field.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &PolicyError{Field: "policy", Message: err.Error()}
	}

	first := errs[0]
	msg, args := first.Msg()
	pe := &PolicyError{
		Field:   fieldPath(first.Path()),
		Message: fmt.Sprintf(msg, args...),
	}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		pe.Pos = positions[0]
	}
	return pe
}

// fieldPath joins a CUE path, dropping definition selectors like #Policy.
func fieldPath(path []string) string {
	var parts []string
	for _, p := range path {
		if !strings.HasPrefix(p, "#") {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "policy"
	}
	return strings.Join(parts, ".")
}
