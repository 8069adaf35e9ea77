package ledger

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmitFirstTime(t *testing.T) {
	r := NewRegistry()

	ok := r.Admit(OpCreate, "customer_001", 100, "user_001")

	assert.True(t, ok)
	assert.Equal(t, 1, r.Size())
	require.Len(t, r.Transactions(), 1)
	require.Len(t, r.Events(), 1)
}

func TestAdmitRejectsDuplicateRegardlessOfSigner(t *testing.T) {
	r := NewRegistry()
	require.True(t, r.Admit(OpCreate, "customer_001", 100, "user_001"))

	ok := r.Admit(OpCreate, "customer_001", 100, "user_002")

	assert.False(t, ok, "same triple must be rejected even for a different signer")
	assert.Equal(t, 1, r.Size(), "rejection leaves size unchanged")
	assert.Empty(t, r.HistoryFor("user_002"), "rejection leaves history unchanged")

	signer, found := r.Signer(OpCreate, "customer_001", 100)
	require.True(t, found)
	assert.Equal(t, "user_001", signer, "first admission keeps its signer")
}

func TestAdmitSameRecordDifferentTimestamps(t *testing.T) {
	r := NewRegistry()

	assert.True(t, r.Admit(OpUpdate, "customer_001", 100, "user_001"))
	assert.True(t, r.Admit(OpUpdate, "customer_001", 101, "user_001"),
		"same record at a later timestamp is a new fingerprint")
	assert.Equal(t, 2, r.Size())
}

func TestSignerUnknownTriple(t *testing.T) {
	r := NewRegistry()

	_, found := r.Signer(OpCreate, "never_admitted", 100)
	assert.False(t, found)
}

func TestHistoryForAdmissionOrder(t *testing.T) {
	r := NewRegistry()
	require.True(t, r.Admit(OpCreate, "a", 1, "user_001"))
	require.True(t, r.Admit(OpCreate, "x", 2, "user_002"))
	require.True(t, r.Admit(OpUpdate, "a", 3, "user_001"))
	require.True(t, r.Admit(OpDelete, "a", 4, "user_001"))

	history := r.HistoryFor("user_001")

	require.Len(t, history, 3)
	assert.Equal(t, OpCreate, history[0].Op)
	assert.Equal(t, OpUpdate, history[1].Op)
	assert.Equal(t, OpDelete, history[2].Op)
	for _, tx := range history {
		assert.Equal(t, "user_001", tx.Signer)
	}
}

func TestHistoryForIsSnapshot(t *testing.T) {
	r := NewRegistry()
	require.True(t, r.Admit(OpCreate, "a", 1, "user_001"))

	history := r.HistoryFor("user_001")
	require.True(t, r.Admit(OpUpdate, "a", 2, "user_001"))

	assert.Len(t, history, 1, "earlier snapshot must not grow")
	assert.Len(t, r.HistoryFor("user_001"), 2)
}

func TestEventsMirrorTransactions(t *testing.T) {
	r := NewRegistry()
	require.True(t, r.Admit(OpCreate, "a", 1, "user_001"))
	require.True(t, r.Admit(OpUpdate, "a", 2, "user_002"))

	txs := r.Transactions()
	evs := r.Events()
	require.Len(t, evs, len(txs))
	for i := range txs {
		assert.Equal(t, txs[i].Signer, evs[i].Signer)
		assert.Equal(t, txs[i].Fingerprint, evs[i].Fingerprint)
		assert.Equal(t, txs[i].Timestamp, evs[i].Timestamp)
	}
}

func TestAdmitConcurrentAtMostOnce(t *testing.T) {
	r := NewRegistry()

	const goroutines = 32
	var wg sync.WaitGroup
	admitted := make([]bool, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			admitted[n] = r.Admit(OpCreate, "contested", 100, "racer")
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, ok := range admitted {
		if ok {
			wins++
		}
	}
	assert.Equal(t, 1, wins, "exactly one concurrent caller may win the fingerprint")
	assert.Equal(t, 1, r.Size())
	assert.Len(t, r.Transactions(), 1)
}
