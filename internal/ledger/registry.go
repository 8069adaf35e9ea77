package ledger

import "sync"

// Transaction is the immutable record of one admitted operation,
// appended in admission order. That order is the audit-trail replay
// order.
type Transaction struct {
	Op          Op          `json:"operation"`
	RecordID    string      `json:"record_id"`
	Timestamp   int64       `json:"timestamp"`
	Signer      string      `json:"signer"`
	Fingerprint Fingerprint `json:"fingerprint"`
}

// Event mirrors a Transaction on the notification surface a caller
// could subscribe to, in the shape an on-chain TransactionExecuted
// event would have.
type Event struct {
	Signer      string      `json:"signer"`
	Fingerprint Fingerprint `json:"fingerprint"`
	Timestamp   int64       `json:"timestamp"`
}

// Registry admits each operation fingerprint at most once and records
// who performed it. Construct with NewRegistry and pass explicitly;
// multiple record stores may share one Registry, modeling independent
// principals writing to a shared ledger.
//
// All methods are safe for concurrent use. Admit's check-then-insert
// holds the lock for the whole step, so the at-most-once invariant
// survives concurrent callers.
type Registry struct {
	mu           sync.Mutex
	signers      map[Fingerprint]string
	transactions []Transaction
	events       []Event
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{signers: make(map[Fingerprint]string)}
}

// Admit validates that the (op, recordID, ts) triple has never been
// admitted. If its fingerprint is already present the call returns
// false and changes nothing, regardless of signer. Otherwise the
// signer is recorded under the fingerprint, one Transaction and one
// Event are appended, and the call returns true.
//
// Admission is atomic: a rejected call leaves no partial state.
func (r *Registry) Admit(op Op, recordID string, ts int64, signer string) bool {
	fp := ComputeFingerprint(op, recordID, ts)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.signers[fp]; exists {
		return false
	}

	r.signers[fp] = signer
	r.transactions = append(r.transactions, Transaction{
		Op:          op,
		RecordID:    recordID,
		Timestamp:   ts,
		Signer:      signer,
		Fingerprint: fp,
	})
	r.events = append(r.events, Event{
		Signer:      signer,
		Fingerprint: fp,
		Timestamp:   ts,
	})
	return true
}

// Signer recomputes the fingerprint for the triple and returns the
// signer recorded at admission, or false if the triple was never
// admitted. Read-only.
func (r *Registry) Signer(op Op, recordID string, ts int64) (string, bool) {
	fp := ComputeFingerprint(op, recordID, ts)

	r.mu.Lock()
	defer r.mu.Unlock()

	signer, ok := r.signers[fp]
	return signer, ok
}

// HistoryFor returns every transaction admitted for the given signer,
// in admission order. The result is a snapshot, not a live view.
func (r *Registry) HistoryFor(signer string) []Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()

	var history []Transaction
	for _, tx := range r.transactions {
		if tx.Signer == signer {
			history = append(history, tx)
		}
	}
	return history
}

// Transactions returns a snapshot of the full ledger in admission
// order.
func (r *Registry) Transactions() []Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Transaction, len(r.transactions))
	copy(out, r.transactions)
	return out
}

// Events returns a snapshot of the event log in admission order.
func (r *Registry) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Size returns the count of distinct admitted fingerprints.
func (r *Registry) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.signers)
}
