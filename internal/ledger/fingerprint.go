package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/roach88/notary/internal/canon"
)

// Op identifies the kind of operation being admitted.
type Op string

// Operation kinds recognized by the record store. The registry itself
// treats Op as an opaque label; any string works as a key component.
const (
	OpCreate Op = "Create"
	OpUpdate Op = "Update"
	OpDelete Op = "Delete"
)

// fingerprintDomain separates registry fingerprints from any other
// SHA-256 use. The version suffix leaves room for an algorithm change.
const fingerprintDomain = "notary/op/v1"

// Fingerprint is the content-addressed identity of one
// (operation, record, timestamp) triple: 64 hex characters of SHA-256.
// It is not reversible and is used only as a map key.
type Fingerprint string

// ComputeFingerprint derives the fingerprint for an operation triple.
// Pure and deterministic: identical inputs always yield identical
// fingerprints.
//
// The three fields are hashed as a canonical JSON object rather than a
// bare concatenation, so field boundaries are unambiguous:
// ("AB","C",1) and ("A","BC",1) encode differently.
// Format: SHA256(domain + 0x00 + canonicalJSON).
func ComputeFingerprint(op Op, recordID string, ts int64) Fingerprint {
	data, err := canon.MarshalCanonical(canon.Object{
		"op":     canon.String(op),
		"record": canon.String(recordID),
		"ts":     canon.Int(ts),
	})
	if err != nil {
		// Strings and ints always have a canonical form.
		panic(fmt.Sprintf("fingerprint encoding: %v", err))
	}

	h := sha256.New()
	h.Write([]byte(fingerprintDomain))
	h.Write([]byte{0x00})
	h.Write(data)
	return Fingerprint(hex.EncodeToString(h.Sum(nil)))
}
