package pipeline

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// AssertGolden compares the rendered report against
// testdata/golden/{name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/pipeline -update
func AssertGolden(t *testing.T, name string, r *Report) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(r.Render()))
}
