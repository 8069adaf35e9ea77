// Package scenario loads, validates, and executes scripted CRUD
// scenarios against stores sharing one ledger registry.
//
// # Scenario format
//
// Scenarios are YAML files:
//
//	name: duplicate_update
//	description: "Second same-second update is rejected"
//	signers: [user_001]
//	clock:
//	  start: 100
//	  frozen: true
//	steps:
//	  - signer: user_001
//	    op: create
//	    record: customer_001
//	    payload: {name: "John Doe"}
//	    expect: {ok: true}
//	  - signer: user_001
//	    op: update
//	    record: customer_001
//	    payload: {email: "john@example.com"}
//	  - signer: user_001
//	    op: update
//	    record: customer_001
//	    payload: {email: "john@example.com"}
//	    expect: {ok: false, error: DUPLICATE_OPERATION}
//
// Files are schema-checked with CUE (ValidateFile) before Load's
// semantic checks. Runs use deterministic clocks: a ticking clock
// advances one second per mutation, a frozen clock pins every
// operation to the same second to script duplicate rejections.
//
// Traces serialize to canonical JSON, so golden comparison
// (RunGolden) is byte-stable across runs.
package scenario
