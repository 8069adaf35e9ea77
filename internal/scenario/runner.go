package scenario

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/roach88/notary/internal/canon"
	"github.com/roach88/notary/internal/ledger"
	"github.com/roach88/notary/internal/record"
	"github.com/roach88/notary/internal/testutil"
)

// TraceEntry records the outcome of one executed step.
type TraceEntry struct {
	Seq    int
	Signer string
	Op     string
	Record string
	OK     bool
	Error  record.ErrorCode
	Result canon.Object
	Count  int
}

// Result holds the outcome of a scenario run. An expectation mismatch
// marks the run failed but never stops it: later steps still execute,
// mirroring a driver that carries on after a rejected operation.
type Result struct {
	Scenario string
	Pass     bool
	Failures []string
	Trace    []TraceEntry

	// Registry is the shared ledger after the run, for export or
	// further inspection.
	Registry *ledger.Registry
}

// Run executes a loaded scenario: one registry, one store per signer,
// one deterministic clock shared by all stores.
func Run(sc *Scenario) (*Result, error) {
	start := sc.Clock.Start
	if start == 0 {
		start = 1
	}
	var clock record.Clock
	if sc.Clock.Frozen {
		clock = testutil.NewManualClock(start)
	} else {
		clock = testutil.NewTickingClock(start)
	}

	registry := ledger.NewRegistry()
	stores := make(map[string]*record.Store, len(sc.Signers))
	for _, signer := range sc.Signers {
		stores[signer] = record.NewStore(registry, signer, clock)
	}

	res := &Result{Scenario: sc.Name, Pass: true, Registry: registry}
	for i, step := range sc.Steps {
		store := stores[step.Signer]
		entry := TraceEntry{
			Seq:    i + 1,
			Signer: step.Signer,
			Op:     step.Op,
			Record: step.Record,
			OK:     true,
		}

		var opErr error
		switch step.Op {
		case StepCreate:
			opErr = store.Create(step.Record, step.payload)
		case StepRead:
			entry.Result, opErr = store.Read(step.Record)
		case StepUpdate:
			opErr = store.Update(step.Record, step.payload)
		case StepDelete:
			opErr = store.Delete(step.Record)
		case StepAudit:
			entry.Count = len(store.AuditTrail())
		}

		if opErr != nil {
			entry.OK = false
			var oe *record.OpError
			if !errors.As(opErr, &oe) {
				return nil, fmt.Errorf("step %d: %w", i+1, opErr)
			}
			entry.Error = oe.Code
		}

		res.Trace = append(res.Trace, entry)
		res.checkExpect(i+1, step.Expect, entry)
	}
	return res, nil
}

func (r *Result) checkExpect(seq int, expect *Expect, entry TraceEntry) {
	if expect == nil {
		return
	}
	if expect.OK != nil && *expect.OK != entry.OK {
		r.fail("step %d: expected ok=%t, got ok=%t", seq, *expect.OK, entry.OK)
	}
	if expect.Error != "" && string(entry.Error) != expect.Error {
		r.fail("step %d: expected error %s, got %q", seq, expect.Error, entry.Error)
	}
	for _, k := range expect.payload.SortedKeys() {
		got, ok := entry.Result[k]
		if !ok {
			r.fail("step %d: expected payload key %q missing from result", seq, k)
			continue
		}
		want := expect.payload[k]
		gotJSON, err1 := canon.MarshalCanonical(got)
		wantJSON, err2 := canon.MarshalCanonical(want)
		if err1 != nil || err2 != nil || !bytes.Equal(gotJSON, wantJSON) {
			r.fail("step %d: payload key %q: expected %s, got %s", seq, k, wantJSON, gotJSON)
		}
	}
}

func (r *Result) fail(format string, args ...any) {
	r.Pass = false
	r.Failures = append(r.Failures, fmt.Sprintf(format, args...))
}

// Snapshot serializes the trace as canonical JSON for golden
// comparison. Identical runs produce identical bytes.
func (r *Result) Snapshot() ([]byte, error) {
	trace := make([]any, len(r.Trace))
	for i, e := range r.Trace {
		m := map[string]any{
			"seq":    e.Seq,
			"signer": e.Signer,
			"op":     e.Op,
			"ok":     e.OK,
		}
		if e.Record != "" {
			m["record"] = e.Record
		}
		if e.Error != "" {
			m["error"] = string(e.Error)
		}
		if e.Result != nil {
			m["result"] = e.Result
		}
		if e.Op == StepAudit {
			m["count"] = e.Count
		}
		trace[i] = m
	}
	return canon.MarshalCanonical(map[string]any{
		"scenario": r.Scenario,
		"trace":    trace,
	})
}
