package scenario

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunGolden executes a scenario and compares its canonical trace
// snapshot against testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files:
//
//	go test ./internal/scenario -update
//
// Returns an error if the run itself fails; a trace mismatch fails the
// test through goldie.
func RunGolden(t *testing.T, sc *Scenario) error {
	t.Helper()

	res, err := Run(sc)
	if err != nil {
		return err
	}
	snap, err := res.Snapshot()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, sc.Name, snap)
	return nil
}
