// Package canon provides the constrained value model shared by the
// ledger and the record store, plus its canonical serialization.
//
// Values are limited to string, int64, bool, array, and object. There
// is deliberately no float type: fingerprints are computed over
// canonical bytes, and float formatting is a portability hazard.
// Null is likewise rejected at every boundary.
//
// MarshalCanonical is the ONLY serialization that may feed a
// fingerprint. It follows RFC 8785: object keys sorted by UTF-16 code
// units, strings NFC-normalized, no HTML escaping.
package canon
