package archive

import (
	"context"
	"fmt"

	"github.com/roach88/notary/internal/ledger"
)

// WriteTransaction inserts one ledger transaction at the given
// admission sequence. ON CONFLICT DO NOTHING keeps the write
// idempotent: the ledger's append-only semantics mean a fingerprint
// seen twice is the same transaction.
func (a *Archive) WriteTransaction(ctx context.Context, seq int, tx ledger.Transaction) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO transactions
		(fingerprint, seq, operation, record_id, timestamp, signer)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(fingerprint) DO NOTHING
	`,
		string(tx.Fingerprint),
		seq,
		string(tx.Op),
		tx.RecordID,
		tx.Timestamp,
		tx.Signer,
	)
	if err != nil {
		return fmt.Errorf("write transaction: %w", err)
	}
	return nil
}

// WriteEvent inserts one ledger event at the given admission sequence.
// Idempotent like WriteTransaction.
func (a *Archive) WriteEvent(ctx context.Context, seq int, ev ledger.Event) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO events
		(fingerprint, seq, signer, timestamp)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(fingerprint) DO NOTHING
	`,
		string(ev.Fingerprint),
		seq,
		ev.Signer,
		ev.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}

// WriteLedger dumps the registry's full transaction and event logs in
// admission order. Safe to call more than once against the same
// archive; already-archived fingerprints are skipped.
func (a *Archive) WriteLedger(ctx context.Context, reg *ledger.Registry) error {
	for i, tx := range reg.Transactions() {
		if err := a.WriteTransaction(ctx, i, tx); err != nil {
			return err
		}
	}
	for i, ev := range reg.Events() {
		if err := a.WriteEvent(ctx, i, ev); err != nil {
			return err
		}
	}
	return nil
}
