package archive

import (
	"context"
	"fmt"

	"github.com/roach88/notary/internal/ledger"
)

// Transactions reads archived transactions back in admission order.
// An empty signer returns the whole ledger; otherwise results are
// filtered to that signer.
func (a *Archive) Transactions(ctx context.Context, signer string) ([]ledger.Transaction, error) {
	query := `
		SELECT fingerprint, operation, record_id, timestamp, signer
		FROM transactions
		ORDER BY seq
	`
	args := []any{}
	if signer != "" {
		query = `
			SELECT fingerprint, operation, record_id, timestamp, signer
			FROM transactions
			WHERE signer = ?
			ORDER BY seq
		`
		args = append(args, signer)
	}

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("read transactions: %w", err)
	}
	defer rows.Close()

	var txs []ledger.Transaction
	for rows.Next() {
		var tx ledger.Transaction
		var fp, op string
		if err := rows.Scan(&fp, &op, &tx.RecordID, &tx.Timestamp, &tx.Signer); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Fingerprint = ledger.Fingerprint(fp)
		tx.Op = ledger.Op(op)
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read transactions: %w", err)
	}
	return txs, nil
}

// Events reads archived events back in admission order.
func (a *Archive) Events(ctx context.Context) ([]ledger.Event, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT fingerprint, signer, timestamp
		FROM events
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	defer rows.Close()

	var evs []ledger.Event
	for rows.Next() {
		var ev ledger.Event
		var fp string
		if err := rows.Scan(&fp, &ev.Signer, &ev.Timestamp); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.Fingerprint = ledger.Fingerprint(fp)
		evs = append(evs, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	return evs, nil
}
