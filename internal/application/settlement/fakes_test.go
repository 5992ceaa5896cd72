package settlement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/retailops/backend/internal/domain/catalog"
	"github.com/retailops/backend/internal/domain/finance"
	"github.com/retailops/backend/internal/domain/inventory"
	"github.com/retailops/backend/internal/domain/partner"
	"github.com/retailops/backend/internal/domain/shared"
	"github.com/retailops/backend/internal/domain/trade"
)

// In-memory repositories backing the service tests through a
// NoOpTransactionScope. They mirror the query semantics of the GORM
// implementations closely enough for the settlement flows.

type fakeProductRepo struct {
	products map[uuid.UUID]*catalog.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*catalog.Product)}
}

func (r *fakeProductRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	p, ok := r.products[id]
	if !ok || p.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) FindByIDs(_ context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*catalog.Product, error) {
	var out []*catalog.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok && p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID) ([]*catalog.Product, error) {
	var out []*catalog.Product
	for _, p := range r.products {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Save(_ context.Context, product *catalog.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) SaveWithLock(_ context.Context, product *catalog.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return shared.ErrConcurrencyConflict
	}
	r.products[product.ID] = product
	product.IncrementVersion()
	return nil
}

func (r *fakeProductRepo) RollMorningStockDate(_ context.Context, tenantID uuid.UUID, effectiveDate time.Time) error {
	for _, p := range r.products {
		if p.TenantID == tenantID {
			p.MorningStockDate = effectiveDate
		}
	}
	return nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*partner.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]*partner.Customer)}
}

func (r *fakeCustomerRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	c, ok := r.customers[id]
	if !ok || c.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

func (r *fakeCustomerRepo) Save(_ context.Context, customer *partner.Customer) error {
	r.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) SaveWithLock(_ context.Context, customer *partner.Customer) error {
	if _, ok := r.customers[customer.ID]; !ok {
		return shared.ErrConcurrencyConflict
	}
	r.customers[customer.ID] = customer
	customer.IncrementVersion()
	return nil
}

type fakeVendorRepo struct {
	vendors map[uuid.UUID]*partner.Vendor
}

func newFakeVendorRepo() *fakeVendorRepo {
	return &fakeVendorRepo{vendors: make(map[uuid.UUID]*partner.Vendor)}
}

func (r *fakeVendorRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*partner.Vendor, error) {
	v, ok := r.vendors[id]
	if !ok || v.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return v, nil
}

func (r *fakeVendorRepo) FindActiveForTenant(_ context.Context, tenantID uuid.UUID) ([]*partner.Vendor, error) {
	var out []*partner.Vendor
	for _, v := range r.vendors {
		if v.TenantID == tenantID && v.IsActive() {
			out = append(out, v)
		}
	}
	partner.SortVendorsByPriority(out)
	return out, nil
}

func (r *fakeVendorRepo) Save(_ context.Context, vendor *partner.Vendor) error {
	r.vendors[vendor.ID] = vendor
	return nil
}

type fakeVendorStockRepo struct {
	stocks []*inventory.VendorStock
}

func (r *fakeVendorStockRepo) FindByVendorAndProduct(_ context.Context, tenantID, vendorID, productID uuid.UUID) (*inventory.VendorStock, error) {
	for _, s := range r.stocks {
		if s.TenantID == tenantID && s.VendorID == vendorID && s.ProductID == productID {
			return s, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeVendorStockRepo) FindByProduct(_ context.Context, tenantID, productID uuid.UUID) ([]*inventory.VendorStock, error) {
	var out []*inventory.VendorStock
	for _, s := range r.stocks {
		if s.TenantID == tenantID && s.ProductID == productID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeVendorStockRepo) Save(_ context.Context, stock *inventory.VendorStock) error {
	for i, s := range r.stocks {
		if s.ID == stock.ID {
			r.stocks[i] = stock
			return nil
		}
	}
	r.stocks = append(r.stocks, stock)
	return nil
}

func (r *fakeVendorStockRepo) SaveWithLock(ctx context.Context, stock *inventory.VendorStock) error {
	if err := r.Save(ctx, stock); err != nil {
		return err
	}
	stock.IncrementVersion()
	return nil
}

func (r *fakeVendorStockRepo) SaveAllWithLock(ctx context.Context, stocks []*inventory.VendorStock) error {
	for _, s := range stocks {
		if err := r.SaveWithLock(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

type fakeStockClosingRepo struct {
	closings map[uuid.UUID]*inventory.StockClosing
}

func newFakeStockClosingRepo() *fakeStockClosingRepo {
	return &fakeStockClosingRepo{closings: make(map[uuid.UUID]*inventory.StockClosing)}
}

func (r *fakeStockClosingRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*inventory.StockClosing, error) {
	c, ok := r.closings[id]
	if !ok || c.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

func (r *fakeStockClosingRepo) SaveWithLines(_ context.Context, closing *inventory.StockClosing) error {
	r.closings[closing.ID] = closing
	return nil
}

type fakeSaleRepo struct {
	sales map[uuid.UUID]*trade.Sale
	seq   int
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: make(map[uuid.UUID]*trade.Sale)}
}

func (r *fakeSaleRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*trade.Sale, error) {
	s, ok := r.sales[id]
	if !ok || s.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return s, nil
}

func (r *fakeSaleRepo) SaveWithItems(_ context.Context, sale *trade.Sale) error {
	r.sales[sale.ID] = sale
	return nil
}

func (r *fakeSaleRepo) NextSaleNumber(_ context.Context, _ uuid.UUID) (string, error) {
	r.seq++
	return fmt.Sprintf("SAL-%d-%05d", time.Now().Year(), r.seq), nil
}

type fakePurchaseRepo struct {
	purchases map[uuid.UUID]*trade.Purchase
	seq       int
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{purchases: make(map[uuid.UUID]*trade.Purchase)}
}

func (r *fakePurchaseRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*trade.Purchase, error) {
	p, ok := r.purchases[id]
	if !ok || p.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (r *fakePurchaseRepo) SaveWithItems(_ context.Context, purchase *trade.Purchase) error {
	r.purchases[purchase.ID] = purchase
	return nil
}

func (r *fakePurchaseRepo) NextPurchaseNumber(_ context.Context, _ uuid.UUID) (string, error) {
	r.seq++
	return fmt.Sprintf("PUR-%d-%05d", time.Now().Year(), r.seq), nil
}

type fakeCreditPaymentRepo struct {
	payments map[uuid.UUID]*finance.CreditPayment
}

func newFakeCreditPaymentRepo() *fakeCreditPaymentRepo {
	return &fakeCreditPaymentRepo{payments: make(map[uuid.UUID]*finance.CreditPayment)}
}

func (r *fakeCreditPaymentRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*finance.CreditPayment, error) {
	p, ok := r.payments[id]
	if !ok || p.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (r *fakeCreditPaymentRepo) Save(_ context.Context, payment *finance.CreditPayment) error {
	r.payments[payment.ID] = payment
	return nil
}

func (r *fakeCreditPaymentRepo) SaveWithLock(_ context.Context, payment *finance.CreditPayment) error {
	if _, ok := r.payments[payment.ID]; !ok {
		return shared.ErrConcurrencyConflict
	}
	r.payments[payment.ID] = payment
	payment.IncrementVersion()
	return nil
}

type ledgerKey struct {
	tenantID   uuid.UUID
	entityType finance.LedgerEntityType
	entityID   uuid.UUID
}

type fakeLedgerRepo struct {
	chains map[ledgerKey][]*finance.LedgerEntry
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{chains: make(map[ledgerKey][]*finance.LedgerEntry)}
}

func (r *fakeLedgerRepo) Append(_ context.Context, entry *finance.LedgerEntry) error {
	key := ledgerKey{entry.TenantID, entry.EntityType, entry.EntityID}
	r.chains[key] = append(r.chains[key], entry)
	return nil
}

func (r *fakeLedgerRepo) FindLatestForEntity(_ context.Context, tenantID uuid.UUID, entityType finance.LedgerEntityType, entityID uuid.UUID) (*finance.LedgerEntry, error) {
	chain := r.chains[ledgerKey{tenantID, entityType, entityID}]
	if len(chain) == 0 {
		return nil, shared.ErrNotFound
	}
	return chain[len(chain)-1], nil
}

func (r *fakeLedgerRepo) FindByEntity(_ context.Context, tenantID uuid.UUID, entityType finance.LedgerEntityType, entityID uuid.UUID) ([]*finance.LedgerEntry, error) {
	return r.chains[ledgerKey{tenantID, entityType, entityID}], nil
}

type fakeCashbookRepo struct {
	entries []*finance.CashbookEntry
}

func (r *fakeCashbookRepo) Append(_ context.Context, entry *finance.CashbookEntry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeCashbookRepo) FindByDateRange(_ context.Context, tenantID uuid.UUID, from, to time.Time) ([]*finance.CashbookEntry, error) {
	var out []*finance.CashbookEntry
	for _, e := range r.entries {
		if e.TenantID == tenantID && !e.EntryDate.Before(from) && e.EntryDate.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

// recordingPublisher captures published events for assertions
type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

// fixture wires the fakes behind a NoOpTransactionScope
type fixture struct {
	products      *fakeProductRepo
	customers     *fakeCustomerRepo
	vendors       *fakeVendorRepo
	vendorStocks  *fakeVendorStockRepo
	stockClosings *fakeStockClosingRepo
	sales         *fakeSaleRepo
	purchases     *fakePurchaseRepo
	payments      *fakeCreditPaymentRepo
	ledger        *fakeLedgerRepo
	cashbook      *fakeCashbookRepo
	publisher     *recordingPublisher
	scope         *NoOpTransactionScope
}

func newFixture() *fixture {
	f := &fixture{
		products:      newFakeProductRepo(),
		customers:     newFakeCustomerRepo(),
		vendors:       newFakeVendorRepo(),
		vendorStocks:  &fakeVendorStockRepo{},
		stockClosings: newFakeStockClosingRepo(),
		sales:         newFakeSaleRepo(),
		purchases:     newFakePurchaseRepo(),
		payments:      newFakeCreditPaymentRepo(),
		ledger:        newFakeLedgerRepo(),
		cashbook:      &fakeCashbookRepo{},
		publisher:     &recordingPublisher{},
	}
	f.scope = NewNoOpTransactionScope(
		f.products, f.customers, f.vendors, f.vendorStocks, f.stockClosings,
		f.sales, f.purchases, f.payments, f.ledger, f.cashbook,
	)
	return f
}
