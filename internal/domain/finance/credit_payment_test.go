package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailops/backend/internal/domain/shared"
)

func TestNewCreditPayment(t *testing.T) {
	tenantID := uuid.New()
	customerID := uuid.New()

	t.Run("sums cash and online", func(t *testing.T) {
		payment, err := NewCreditPayment(tenantID, customerID,
			decimal.NewFromInt(300), decimal.NewFromInt(200), time.Now())
		require.NoError(t, err)

		assert.True(t, payment.Amount().Equal(decimal.NewFromInt(500)))
		assert.Equal(t, CreditPaymentStatusActive, payment.Status)
		assert.Len(t, payment.GetDomainEvents(), 1)
	})

	t.Run("rejects a zero payment", func(t *testing.T) {
		_, err := NewCreditPayment(tenantID, customerID, decimal.Zero, decimal.Zero, time.Now())
		require.Error(t, err)
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := NewCreditPayment(tenantID, customerID,
			decimal.NewFromInt(-100), decimal.NewFromInt(200), time.Now())
		require.Error(t, err)
	})
}

func TestCreditPaymentCancel(t *testing.T) {
	payment, err := NewCreditPayment(uuid.New(), uuid.New(),
		decimal.NewFromInt(500), decimal.Zero, time.Now())
	require.NoError(t, err)
	payment.ClearDomainEvents()

	require.NoError(t, payment.Cancel())
	assert.True(t, payment.IsCancelled())
	assert.NotNil(t, payment.CancelledAt)
	assert.Len(t, payment.GetDomainEvents(), 1)

	err = payment.Cancel()
	require.Error(t, err)
	assert.Equal(t, "ALREADY_CANCELLED", shared.ErrorCode(err))
}
