package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/retailops/backend/internal/application/settlement"
	"github.com/retailops/backend/internal/domain/finance"
	"github.com/retailops/backend/internal/domain/partner"
	"github.com/retailops/backend/internal/domain/shared"
	"github.com/retailops/backend/internal/infrastructure/persistence/models"
)

func setupScopeTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(models.AllModels()...)
	require.NoError(t, err)

	return db
}

func newTestCustomer(t *testing.T, tenantID uuid.UUID) *partner.Customer {
	t.Helper()
	customer, err := partner.NewCustomer(tenantID, "C-001", "Sharma Traders")
	require.NoError(t, err)
	return customer
}

func TestGormTransactionScope_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("commits all writes on success", func(t *testing.T) {
		db := setupScopeTestDB(t)
		scope := NewGormTransactionScope(db)
		tenantID := uuid.New()
		customer := newTestCustomer(t, tenantID)

		err := scope.Execute(ctx, func(repos settlement.TransactionalRepositories) error {
			if err := repos.CustomerRepo().Save(ctx, customer); err != nil {
				return err
			}
			entry, err := finance.NextLedgerEntry(tenantID, finance.LedgerEntityCustomer, customer.ID, nil,
				decimal.NewFromInt(1000), decimal.Zero, "Opening")
			if err != nil {
				return err
			}
			return repos.LedgerRepo().Append(ctx, entry)
		})
		require.NoError(t, err)

		found, err := NewGormCustomerRepository(db).FindByIDForTenant(ctx, tenantID, customer.ID)
		require.NoError(t, err)
		assert.Equal(t, customer.Code, found.Code)

		chain, err := NewGormLedgerEntryRepository(db).FindByEntity(ctx, tenantID, finance.LedgerEntityCustomer, customer.ID)
		require.NoError(t, err)
		require.Len(t, chain, 1)
		assert.True(t, chain[0].BalanceAfter.Equal(decimal.NewFromInt(1000)))
	})

	t.Run("rolls back every write on error", func(t *testing.T) {
		db := setupScopeTestDB(t)
		scope := NewGormTransactionScope(db)
		tenantID := uuid.New()
		customer := newTestCustomer(t, tenantID)

		boom := errors.New("late failure")
		err := scope.Execute(ctx, func(repos settlement.TransactionalRepositories) error {
			if err := repos.CustomerRepo().Save(ctx, customer); err != nil {
				return err
			}
			entry, err := finance.NextLedgerEntry(tenantID, finance.LedgerEntityCustomer, customer.ID, nil,
				decimal.NewFromInt(1000), decimal.Zero, "Opening")
			if err != nil {
				return err
			}
			if err := repos.LedgerRepo().Append(ctx, entry); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		_, err = NewGormCustomerRepository(db).FindByIDForTenant(ctx, tenantID, customer.ID)
		assert.True(t, shared.IsNotFound(err))

		chain, err := NewGormLedgerEntryRepository(db).FindByEntity(ctx, tenantID, finance.LedgerEntityCustomer, customer.ID)
		require.NoError(t, err)
		assert.Empty(t, chain)
	})

	t.Run("repositories in the scope see uncommitted writes", func(t *testing.T) {
		db := setupScopeTestDB(t)
		scope := NewGormTransactionScope(db)
		tenantID := uuid.New()
		customer := newTestCustomer(t, tenantID)

		err := scope.Execute(ctx, func(repos settlement.TransactionalRepositories) error {
			if err := repos.CustomerRepo().Save(ctx, customer); err != nil {
				return err
			}
			found, err := repos.CustomerRepo().FindByIDForTenant(ctx, tenantID, customer.ID)
			if err != nil {
				return err
			}
			assert.Equal(t, customer.ID, found.ID)
			return nil
		})
		require.NoError(t, err)
	})
}
