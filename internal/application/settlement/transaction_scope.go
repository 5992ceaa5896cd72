package settlement

import (
	"context"

	"github.com/retailops/backend/internal/domain/catalog"
	"github.com/retailops/backend/internal/domain/finance"
	"github.com/retailops/backend/internal/domain/inventory"
	"github.com/retailops/backend/internal/domain/partner"
	"github.com/retailops/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to settlement repositories.
// Every settlement entry point runs exactly one Execute call: all repository
// operations inside it are part of the same database transaction and commit
// or roll back atomically. There is no partial success.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all settlement repositories
// within a transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	ProductRepo() catalog.ProductRepository
	CustomerRepo() partner.CustomerRepository
	VendorRepo() partner.VendorRepository
	VendorStockRepo() inventory.VendorStockRepository
	StockClosingRepo() inventory.StockClosingRepository
	SaleRepo() trade.SaleRepository
	PurchaseRepo() trade.PurchaseRepository
	CreditPaymentRepo() finance.CreditPaymentRepository
	LedgerRepo() finance.LedgerEntryRepository
	CashbookRepo() finance.CashbookRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for tests running against in-memory repositories.
type NoOpTransactionScope struct {
	productRepo       catalog.ProductRepository
	customerRepo      partner.CustomerRepository
	vendorRepo        partner.VendorRepository
	vendorStockRepo   inventory.VendorStockRepository
	stockClosingRepo  inventory.StockClosingRepository
	saleRepo          trade.SaleRepository
	purchaseRepo      trade.PurchaseRepository
	creditPaymentRepo finance.CreditPaymentRepository
	ledgerRepo        finance.LedgerEntryRepository
	cashbookRepo      finance.CashbookRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	productRepo catalog.ProductRepository,
	customerRepo partner.CustomerRepository,
	vendorRepo partner.VendorRepository,
	vendorStockRepo inventory.VendorStockRepository,
	stockClosingRepo inventory.StockClosingRepository,
	saleRepo trade.SaleRepository,
	purchaseRepo trade.PurchaseRepository,
	creditPaymentRepo finance.CreditPaymentRepository,
	ledgerRepo finance.LedgerEntryRepository,
	cashbookRepo finance.CashbookRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		productRepo:       productRepo,
		customerRepo:      customerRepo,
		vendorRepo:        vendorRepo,
		vendorStockRepo:   vendorStockRepo,
		stockClosingRepo:  stockClosingRepo,
		saleRepo:          saleRepo,
		purchaseRepo:      purchaseRepo,
		creditPaymentRepo: creditPaymentRepo,
		ledgerRepo:        ledgerRepo,
		cashbookRepo:      cashbookRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository { return s.productRepo }

// CustomerRepo returns the customer repository.
func (s *NoOpTransactionScope) CustomerRepo() partner.CustomerRepository { return s.customerRepo }

// VendorRepo returns the vendor repository.
func (s *NoOpTransactionScope) VendorRepo() partner.VendorRepository { return s.vendorRepo }

// VendorStockRepo returns the vendor stock repository.
func (s *NoOpTransactionScope) VendorStockRepo() inventory.VendorStockRepository {
	return s.vendorStockRepo
}

// StockClosingRepo returns the stock closing repository.
func (s *NoOpTransactionScope) StockClosingRepo() inventory.StockClosingRepository {
	return s.stockClosingRepo
}

// SaleRepo returns the sale repository.
func (s *NoOpTransactionScope) SaleRepo() trade.SaleRepository { return s.saleRepo }

// PurchaseRepo returns the purchase repository.
func (s *NoOpTransactionScope) PurchaseRepo() trade.PurchaseRepository { return s.purchaseRepo }

// CreditPaymentRepo returns the credit payment repository.
func (s *NoOpTransactionScope) CreditPaymentRepo() finance.CreditPaymentRepository {
	return s.creditPaymentRepo
}

// LedgerRepo returns the ledger entry repository.
func (s *NoOpTransactionScope) LedgerRepo() finance.LedgerEntryRepository { return s.ledgerRepo }

// CashbookRepo returns the cashbook repository.
func (s *NoOpTransactionScope) CashbookRepo() finance.CashbookRepository { return s.cashbookRepo }

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
