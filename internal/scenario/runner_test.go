package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/notary/internal/record"
)

func mustParse(t *testing.T, src string) *Scenario {
	t.Helper()
	sc, err := Parse("inline", []byte(src))
	require.NoError(t, err)
	return sc
}

func TestRunPassingScenario(t *testing.T) {
	sc, err := Load("testdata/scenarios/cross_user.yaml")
	require.NoError(t, err)

	res, err := Run(sc)
	require.NoError(t, err)

	assert.True(t, res.Pass, "failures: %v", res.Failures)
	assert.Len(t, res.Trace, len(sc.Steps))
	assert.Equal(t, 2, res.Registry.Size())
}

func TestRunFrozenClockForcesDuplicates(t *testing.T) {
	sc := mustParse(t, `
name: frozen
signers: [u1]
clock:
  start: 100
  frozen: true
steps:
  - signer: u1
    op: create
    record: r1
    payload: {v: 1}
  - signer: u1
    op: update
    record: r1
    payload: {v: 2}
  - signer: u1
    op: update
    record: r1
    payload: {v: 3}
`)

	res, err := Run(sc)
	require.NoError(t, err)

	require.Len(t, res.Trace, 3)
	assert.True(t, res.Trace[0].OK)
	assert.True(t, res.Trace[1].OK, "first update is a different op kind, admitted")
	assert.False(t, res.Trace[2].OK)
	assert.Equal(t, record.CodeDuplicateOperation, res.Trace[2].Error)
}

func TestRunTickingClockAvoidsCollisions(t *testing.T) {
	sc := mustParse(t, `
name: ticking
signers: [u1]
steps:
  - signer: u1
    op: create
    record: r1
    payload: {v: 1}
  - signer: u1
    op: update
    record: r1
    payload: {v: 2}
  - signer: u1
    op: update
    record: r1
    payload: {v: 3}
`)

	res, err := Run(sc)
	require.NoError(t, err)

	for _, e := range res.Trace {
		assert.True(t, e.OK, "step %d", e.Seq)
	}
}

func TestRunRecordsExpectationFailureAndContinues(t *testing.T) {
	sc := mustParse(t, `
name: mismatch
signers: [u1]
steps:
  - signer: u1
    op: create
    record: r1
    payload: {v: 1}
    expect: {ok: false}
  - signer: u1
    op: read
    record: r1
    expect: {ok: true}
`)

	res, err := Run(sc)
	require.NoError(t, err)

	assert.False(t, res.Pass)
	require.Len(t, res.Failures, 1)
	assert.Contains(t, res.Failures[0], "step 1")
	assert.Len(t, res.Trace, 2, "a failed expectation must not stop the run")
	assert.True(t, res.Trace[1].OK)
}

func TestRunPayloadExpectMismatch(t *testing.T) {
	sc := mustParse(t, `
name: payload_mismatch
signers: [u1]
steps:
  - signer: u1
    op: create
    record: r1
    payload: {v: 1}
  - signer: u1
    op: read
    record: r1
    expect:
      payload: {v: 2}
`)

	res, err := Run(sc)
	require.NoError(t, err)

	assert.False(t, res.Pass)
	require.Len(t, res.Failures, 1)
	assert.Contains(t, res.Failures[0], `"v"`)
}

func TestRunAuditCounts(t *testing.T) {
	sc := mustParse(t, `
name: audit_counts
signers: [u1, u2]
steps:
  - signer: u1
    op: create
    record: a
    payload: {v: 1}
  - signer: u1
    op: delete
    record: a
  - signer: u2
    op: create
    record: b
    payload: {v: 1}
  - signer: u1
    op: audit
  - signer: u2
    op: audit
`)

	res, err := Run(sc)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Trace[3].Count)
	assert.Equal(t, 1, res.Trace[4].Count)
}

func TestSnapshotDeterministic(t *testing.T) {
	sc, err := Load("testdata/scenarios/crud_roundtrip.yaml")
	require.NoError(t, err)

	res1, err := Run(sc)
	require.NoError(t, err)
	res2, err := Run(sc)
	require.NoError(t, err)

	s1, err := res1.Snapshot()
	require.NoError(t, err)
	s2, err := res2.Snapshot()
	require.NoError(t, err)

	assert.Equal(t, s1, s2)
}
