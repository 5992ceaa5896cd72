package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/retailops/backend/internal/application/settlement"
	"github.com/retailops/backend/internal/domain/catalog"
	"github.com/retailops/backend/internal/domain/finance"
	"github.com/retailops/backend/internal/domain/inventory"
	"github.com/retailops/backend/internal/domain/partner"
	"github.com/retailops/backend/internal/domain/trade"
)

// GormTransactionScope implements settlement.TransactionScope using GORM
// transactions. It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos settlement.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all settlement
// repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// ProductRepo returns the product repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// CustomerRepo returns the customer repository scoped to the current transaction.
func (r *gormTransactionalRepositories) CustomerRepo() partner.CustomerRepository {
	return NewGormCustomerRepository(r.tx)
}

// VendorRepo returns the vendor repository scoped to the current transaction.
func (r *gormTransactionalRepositories) VendorRepo() partner.VendorRepository {
	return NewGormVendorRepository(r.tx)
}

// VendorStockRepo returns the vendor stock repository scoped to the current transaction.
func (r *gormTransactionalRepositories) VendorStockRepo() inventory.VendorStockRepository {
	return NewGormVendorStockRepository(r.tx)
}

// StockClosingRepo returns the stock closing repository scoped to the current transaction.
func (r *gormTransactionalRepositories) StockClosingRepo() inventory.StockClosingRepository {
	return NewGormStockClosingRepository(r.tx)
}

// SaleRepo returns the sale repository scoped to the current transaction.
func (r *gormTransactionalRepositories) SaleRepo() trade.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

// PurchaseRepo returns the purchase repository scoped to the current transaction.
func (r *gormTransactionalRepositories) PurchaseRepo() trade.PurchaseRepository {
	return NewGormPurchaseRepository(r.tx)
}

// CreditPaymentRepo returns the credit payment repository scoped to the current transaction.
func (r *gormTransactionalRepositories) CreditPaymentRepo() finance.CreditPaymentRepository {
	return NewGormCreditPaymentRepository(r.tx)
}

// LedgerRepo returns the ledger entry repository scoped to the current transaction.
func (r *gormTransactionalRepositories) LedgerRepo() finance.LedgerEntryRepository {
	return NewGormLedgerEntryRepository(r.tx)
}

// CashbookRepo returns the cashbook repository scoped to the current transaction.
func (r *gormTransactionalRepositories) CashbookRepo() finance.CashbookRepository {
	return NewGormCashbookRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ settlement.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ settlement.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
