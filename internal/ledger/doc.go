// Package ledger implements a local stand-in for an on-chain
// transaction registry. It admits each (operation, record, timestamp)
// triple at most once, attributes every admitted operation to the
// signer that performed it, and keeps an append-only transaction and
// event log for audit queries.
//
// Nothing is ever updated or deleted: a fingerprint that has been
// admitted stays admitted, with its original signer, for the lifetime
// of the registry.
package ledger
