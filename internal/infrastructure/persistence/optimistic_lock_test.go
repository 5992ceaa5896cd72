package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailops/backend/internal/domain/catalog"
	"github.com/retailops/backend/internal/domain/finance"
	"github.com/retailops/backend/internal/domain/inventory"
	"github.com/retailops/backend/internal/domain/partner"
	"github.com/retailops/backend/internal/domain/shared"
)

// Two sessions load the same row, both mutate, both write. The first
// version-guarded save wins; the stale one must fail so no update is lost.
func TestSaveWithLock_StaleWriteConflicts(t *testing.T) {
	ctx := context.Background()

	t.Run("concurrent balance updates on one customer", func(t *testing.T) {
		db := setupScopeTestDB(t)
		repo := NewGormCustomerRepository(db)
		tenantID := uuid.New()

		customer, err := partner.NewCustomer(tenantID, "C-001", "Sharma Traders")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, customer))

		first, err := repo.FindByIDForTenant(ctx, tenantID, customer.ID)
		require.NoError(t, err)
		second, err := repo.FindByIDForTenant(ctx, tenantID, customer.ID)
		require.NoError(t, err)

		require.NoError(t, first.IncreaseOutstanding(decimal.NewFromInt(1000)))
		require.NoError(t, repo.SaveWithLock(ctx, first))

		require.NoError(t, second.IncreaseOutstanding(decimal.NewFromInt(400)))
		err = repo.SaveWithLock(ctx, second)
		require.ErrorIs(t, err, shared.ErrConcurrencyConflict)

		found, err := repo.FindByIDForTenant(ctx, tenantID, customer.ID)
		require.NoError(t, err)
		assert.True(t, found.OutstandingBalance.Equal(decimal.NewFromInt(1000)))
		assert.Equal(t, 2, found.GetVersion())
	})

	t.Run("two allocations cannot drain one stock row twice", func(t *testing.T) {
		db := setupScopeTestDB(t)
		repo := NewGormVendorStockRepository(db)
		tenantID := uuid.New()
		vendorID := uuid.New()
		productID := uuid.New()

		stock, err := inventory.NewVendorStock(tenantID, vendorID, productID)
		require.NoError(t, err)
		require.NoError(t, stock.Receive(5, decimal.NewFromInt(400), time.Now()))
		require.NoError(t, repo.Save(ctx, stock))

		first, err := repo.FindByVendorAndProduct(ctx, tenantID, vendorID, productID)
		require.NoError(t, err)
		second, err := repo.FindByVendorAndProduct(ctx, tenantID, vendorID, productID)
		require.NoError(t, err)

		// Both sessions see 5 units and pass the in-memory deduction.
		require.NoError(t, first.Deduct(5))
		require.NoError(t, second.Deduct(5))

		require.NoError(t, repo.SaveWithLock(ctx, first))
		err = repo.SaveWithLock(ctx, second)
		require.ErrorIs(t, err, shared.ErrConcurrencyConflict)

		found, err := repo.FindByVendorAndProduct(ctx, tenantID, vendorID, productID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), found.CurrentStock)
	})

	t.Run("double cancellation of one credit payment", func(t *testing.T) {
		db := setupScopeTestDB(t)
		repo := NewGormCreditPaymentRepository(db)
		tenantID := uuid.New()

		payment, err := finance.NewCreditPayment(tenantID, uuid.New(),
			decimal.NewFromInt(300), decimal.NewFromInt(200), time.Now())
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, payment))

		first, err := repo.FindByIDForTenant(ctx, tenantID, payment.ID)
		require.NoError(t, err)
		second, err := repo.FindByIDForTenant(ctx, tenantID, payment.ID)
		require.NoError(t, err)

		require.NoError(t, first.Cancel())
		require.NoError(t, second.Cancel())

		require.NoError(t, repo.SaveWithLock(ctx, first))
		err = repo.SaveWithLock(ctx, second)
		require.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

// One transaction may save the same aggregate more than once; the repository
// keeps the in-memory version in step with the row so later saves chain.
func TestSaveWithLock_SuccessiveSavesChain(t *testing.T) {
	ctx := context.Background()
	db := setupScopeTestDB(t)
	repo := NewGormProductRepository(db)
	tenantID := uuid.New()

	product, err := catalog.NewProduct(tenantID, "P-001", "Whisky 750ml", decimal.NewFromInt(500), 750, 12)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, product))

	loaded, err := repo.FindByIDForTenant(ctx, tenantID, product.ID)
	require.NoError(t, err)

	require.NoError(t, loaded.SetStock(15))
	require.NoError(t, repo.SaveWithLock(ctx, loaded))

	require.NoError(t, loaded.ResetMorningStock(15, time.Now().AddDate(0, 0, 1)))
	require.NoError(t, repo.SaveWithLock(ctx, loaded))

	found, err := repo.FindByIDForTenant(ctx, tenantID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(15), found.CurrentStock)
	assert.Equal(t, int64(15), found.MorningStock)
	assert.Equal(t, 3, found.GetVersion())
}
