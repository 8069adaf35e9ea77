// Package record implements the CRUD store guarded by the ledger
// registry. Every mutation first asks the registry to admit the
// (operation, record, timestamp) triple; the local map changes only if
// admission succeeds.
package record

import (
	"github.com/roach88/notary/internal/canon"
	"github.com/roach88/notary/internal/ledger"
)

// System-managed metadata keys attached to stored payloads.
const (
	MetaCreatedAt = "_created_at"
	MetaCreatedBy = "_created_by"
	MetaUpdatedAt = "_updated_at"
	MetaUpdatedBy = "_updated_by"
	MetaStatus    = "_status"
	MetaCreator   = "_creator"
)

// statusActive is the lifecycle status of a live record.
const statusActive = "active"

// opRead labels read failures in OpError; reads are never admitted to
// the registry.
const opRead ledger.Op = "Read"

// Store is a keyed record store acting on behalf of a single signer
// identity fixed at construction. Multiple stores may share one
// registry; each models an independent principal on the same ledger.
//
// Store itself is single-writer: it has no internal locking beyond
// what the registry provides.
type Store struct {
	registry *ledger.Registry
	signer   string
	clock    Clock
	records  map[string]canon.Object
}

// NewStore creates a store bound to the given registry and signer.
// A nil clock defaults to SystemClock.
func NewStore(registry *ledger.Registry, signer string, clock Clock) *Store {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Store{
		registry: registry,
		signer:   signer,
		clock:    clock,
		records:  make(map[string]canon.Object),
	}
}

// Signer returns the acting principal this store was constructed with.
func (s *Store) Signer() string {
	return s.signer
}

// Len returns the number of live records.
func (s *Store) Len() int {
	return len(s.records)
}

// Create inserts a new record after registry admission. Existing state
// is deliberately NOT checked: admission rejection is the only guard
// against re-creation, so a Create for an id that already exists at a
// fresh timestamp is admitted and overwrites the payload.
//
// The stored record is the payload merged with creation metadata
// (_created_at, _created_by, _status).
func (s *Store) Create(recordID string, payload canon.Object) error {
	ts := s.clock.Now()

	if !s.registry.Admit(ledger.OpCreate, recordID, ts, s.signer) {
		return duplicateErr(ledger.OpCreate, recordID)
	}

	rec := payload.Clone()
	rec[MetaCreatedAt] = canon.Int(ts)
	rec[MetaCreatedBy] = canon.String(s.signer)
	rec[MetaStatus] = canon.String(statusActive)
	s.records[recordID] = rec
	return nil
}

// Read returns the record augmented with a derived _creator field: the
// signer the registry attributed to the record's Create admission.
// Read never mutates registry state.
func (s *Store) Read(recordID string) (canon.Object, error) {
	rec, ok := s.records[recordID]
	if !ok {
		return nil, notFoundErr(opRead, recordID)
	}

	out := rec.Clone()
	if createdAt, ok := rec[MetaCreatedAt].(canon.Int); ok {
		if creator, found := s.registry.Signer(ledger.OpCreate, recordID, int64(createdAt)); found {
			out[MetaCreator] = canon.String(creator)
		}
	}
	return out, nil
}

// Update shallow-merges partial into an existing record after registry
// admission: new keys extend, existing keys are overwritten. On
// success it stamps _updated_at and _updated_by. A rejected admission
// leaves the record untouched.
func (s *Store) Update(recordID string, partial canon.Object) error {
	rec, ok := s.records[recordID]
	if !ok {
		return notFoundErr(ledger.OpUpdate, recordID)
	}

	ts := s.clock.Now()
	if !s.registry.Admit(ledger.OpUpdate, recordID, ts, s.signer) {
		return duplicateErr(ledger.OpUpdate, recordID)
	}

	rec.Merge(partial)
	rec[MetaUpdatedAt] = canon.Int(ts)
	rec[MetaUpdatedBy] = canon.String(s.signer)
	return nil
}

// Delete removes an existing record after registry admission. The
// freed id may be re-created later; the new Create carries a different
// timestamp, so the registry sees a brand-new fingerprint rather than
// a conflict.
func (s *Store) Delete(recordID string) error {
	if _, ok := s.records[recordID]; !ok {
		return notFoundErr(ledger.OpDelete, recordID)
	}

	ts := s.clock.Now()
	if !s.registry.Admit(ledger.OpDelete, recordID, ts, s.signer) {
		return duplicateErr(ledger.OpDelete, recordID)
	}

	delete(s.records, recordID)
	return nil
}

// AuditTrail returns this store's admitted operations in admission
// order.
func (s *Store) AuditTrail() []ledger.Transaction {
	return s.registry.HistoryFor(s.signer)
}
