package finance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailops/backend/internal/domain/shared"
)

func TestNextLedgerEntry(t *testing.T) {
	tenantID := uuid.New()
	entityID := uuid.New()

	t.Run("nil prev starts the chain at zero", func(t *testing.T) {
		entry, err := NextLedgerEntry(tenantID, LedgerEntityCustomer, entityID, nil,
			decimal.NewFromInt(500), decimal.Zero, "Sale SAL-2025-00001")
		require.NoError(t, err)

		assert.True(t, entry.BalanceAfter.Equal(decimal.NewFromInt(500)))
	})

	t.Run("chains from the previous balance", func(t *testing.T) {
		first, err := NextLedgerEntry(tenantID, LedgerEntityCustomer, entityID, nil,
			decimal.NewFromInt(500), decimal.Zero, "Sale")
		require.NoError(t, err)

		second, err := NextLedgerEntry(tenantID, LedgerEntityCustomer, entityID, first,
			decimal.Zero, decimal.NewFromInt(200), "Credit payment")
		require.NoError(t, err)

		assert.True(t, second.BalanceAfter.Equal(decimal.NewFromInt(300)))
	})

	t.Run("rejects an entry with neither debit nor credit", func(t *testing.T) {
		_, err := NextLedgerEntry(tenantID, LedgerEntityCustomer, entityID, nil,
			decimal.Zero, decimal.Zero, "empty")
		require.Error(t, err)
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := NextLedgerEntry(tenantID, LedgerEntityVendor, entityID, nil,
			decimal.NewFromInt(-10), decimal.Zero, "bad")
		require.Error(t, err)
	})

	t.Run("rejects an unknown entity type", func(t *testing.T) {
		_, err := NextLedgerEntry(tenantID, LedgerEntityType("EMPLOYEE"), entityID, nil,
			decimal.NewFromInt(10), decimal.Zero, "bad")
		require.Error(t, err)
	})
}

func TestReplayBalance(t *testing.T) {
	tenantID := uuid.New()
	entityID := uuid.New()

	var entries []*LedgerEntry
	var prev *LedgerEntry
	amounts := []struct{ debit, credit int64 }{
		{1000, 0},
		{0, 300},
		{250, 0},
		{0, 450},
	}
	for _, a := range amounts {
		entry, err := NextLedgerEntry(tenantID, LedgerEntityCustomer, entityID, prev,
			decimal.NewFromInt(a.debit), decimal.NewFromInt(a.credit), "entry")
		require.NoError(t, err)
		entries = append(entries, entry)
		prev = entry
	}

	assert.True(t, ReplayBalance(entries).Equal(decimal.NewFromInt(500)))
	assert.True(t, ReplayBalance(entries).Equal(entries[len(entries)-1].BalanceAfter))
}

func TestVerifyChain(t *testing.T) {
	tenantID := uuid.New()
	entityID := uuid.New()

	first, err := NextLedgerEntry(tenantID, LedgerEntityCustomer, entityID, nil,
		decimal.NewFromInt(1000), decimal.Zero, "first")
	require.NoError(t, err)
	second, err := NextLedgerEntry(tenantID, LedgerEntityCustomer, entityID, first,
		decimal.Zero, decimal.NewFromInt(400), "second")
	require.NoError(t, err)
	third, err := NextLedgerEntry(tenantID, LedgerEntityCustomer, entityID, second,
		decimal.NewFromInt(100), decimal.Zero, "third")
	require.NoError(t, err)

	entries := []*LedgerEntry{first, second, third}
	assert.Equal(t, -1, VerifyChain(entries))

	// Tampering with a stored balance breaks the chain at that index
	second.BalanceAfter = decimal.NewFromInt(999)
	assert.Equal(t, 1, VerifyChain(entries))
}
