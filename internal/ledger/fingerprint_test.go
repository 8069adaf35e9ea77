package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeFingerprintDeterminism(t *testing.T) {
	fp1 := ComputeFingerprint(OpCreate, "customer_001", 1700000000)
	fp2 := ComputeFingerprint(OpCreate, "customer_001", 1700000000)

	assert.Equal(t, fp1, fp2, "identical inputs must produce identical fingerprints")
	assert.Len(t, string(fp1), 64, "SHA-256 hex is 64 characters")
}

func TestComputeFingerprintFieldSensitivity(t *testing.T) {
	base := ComputeFingerprint(OpCreate, "customer_001", 1700000000)

	assert.NotEqual(t, base, ComputeFingerprint(OpUpdate, "customer_001", 1700000000),
		"different operation should produce a different fingerprint")
	assert.NotEqual(t, base, ComputeFingerprint(OpCreate, "customer_002", 1700000000),
		"different record should produce a different fingerprint")
	assert.NotEqual(t, base, ComputeFingerprint(OpCreate, "customer_001", 1700000001),
		"different timestamp should produce a different fingerprint")
}

func TestComputeFingerprintFieldBoundaries(t *testing.T) {
	// A naive concatenation would hash "ABC1" for both of these.
	fp1 := ComputeFingerprint(Op("AB"), "C", 1)
	fp2 := ComputeFingerprint(Op("A"), "BC", 1)

	assert.NotEqual(t, fp1, fp2, "field boundaries must be unambiguous")
}

func TestComputeFingerprintOpaque(t *testing.T) {
	fp := ComputeFingerprint(OpDelete, "product_001", 42)

	// Hex only; no field content leaks into the digest string.
	assert.Regexp(t, "^[0-9a-f]{64}$", string(fp))
	assert.NotContains(t, string(fp), "product_001")
}
