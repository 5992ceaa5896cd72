package settlement

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/retailops/backend/internal/domain/catalog"
	"github.com/retailops/backend/internal/domain/finance"
	"github.com/retailops/backend/internal/domain/inventory"
	"github.com/retailops/backend/internal/domain/partner"
	"github.com/retailops/backend/internal/domain/shared"
)

type saleScenario struct {
	f        *fixture
	service  *SaleService
	tenantID uuid.UUID
	product  *catalog.Product
	customer *partner.Customer
	vendor1  *partner.Vendor
	vendor2  *partner.Vendor
}

// newSaleScenario seeds a product with 15 units spread over two vendors
// (5 on the priority-1 vendor, 10 on the priority-2 vendor).
func newSaleScenario(t *testing.T, cfg Config) *saleScenario {
	t.Helper()
	f := newFixture()
	tenantID := uuid.New()
	ctx := context.Background()

	product, err := catalog.NewProduct(tenantID, "P-001", "Whisky", decimal.NewFromInt(500), 750, 12)
	require.NoError(t, err)
	require.NoError(t, product.SetStock(15))
	require.NoError(t, f.products.Save(ctx, product))

	customer, err := partner.NewCustomer(tenantID, "C-001", "Sharma Traders")
	require.NoError(t, err)
	require.NoError(t, f.customers.Save(ctx, customer))

	vendor1, err := partner.NewVendor(tenantID, "V-001", "First Supply", 1)
	require.NoError(t, err)
	vendor2, err := partner.NewVendor(tenantID, "V-002", "Second Supply", 2)
	require.NoError(t, err)
	require.NoError(t, f.vendors.Save(ctx, vendor1))
	require.NoError(t, f.vendors.Save(ctx, vendor2))

	seed := func(vendorID uuid.UUID, qty int64) {
		stock, err := inventory.NewVendorStock(tenantID, vendorID, product.ID)
		require.NoError(t, err)
		require.NoError(t, stock.Receive(qty, decimal.NewFromInt(400), product.CreatedAt))
		require.NoError(t, f.vendorStocks.Save(ctx, stock))
	}
	seed(vendor1.ID, 5)
	seed(vendor2.ID, 10)

	return &saleScenario{
		f:        f,
		service:  NewSaleService(f.scope, cfg, f.publisher, zap.NewNop()),
		tenantID: tenantID,
		product:  product,
		customer: customer,
		vendor1:  vendor1,
		vendor2:  vendor2,
	}
}

func TestCreateSale(t *testing.T) {
	ctx := context.Background()

	t.Run("allocates across vendors and posts the ledger", func(t *testing.T) {
		sc := newSaleScenario(t, DefaultConfig())

		resp, err := sc.service.CreateSale(ctx, sc.tenantID, CreateSaleRequest{
			CustomerID: &sc.customer.ID,
			Items: []SaleItemRequest{
				{ProductID: sc.product.ID, Quantity: 8},
			},
			CashAmount: decimal.NewFromInt(2000),
		})
		require.NoError(t, err)

		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(4000)))
		assert.True(t, resp.DueAmount.Equal(decimal.NewFromInt(2000)))

		// Priority vendor drained first, overflow on the next
		require.Len(t, resp.Items, 1)
		require.Len(t, resp.Items[0].Allocations, 2)
		assert.Equal(t, sc.vendor1.ID, resp.Items[0].Allocations[0].VendorID)
		assert.Equal(t, int64(5), resp.Items[0].Allocations[0].Quantity)
		assert.Equal(t, sc.vendor2.ID, resp.Items[0].Allocations[1].VendorID)
		assert.Equal(t, int64(3), resp.Items[0].Allocations[1].Quantity)

		assert.Equal(t, int64(7), sc.product.CurrentStock)
		assert.True(t, sc.customer.OutstandingBalance.Equal(decimal.NewFromInt(2000)))

		chain, err := sc.f.ledger.FindByEntity(ctx, sc.tenantID, finance.LedgerEntityCustomer, sc.customer.ID)
		require.NoError(t, err)
		require.Len(t, chain, 1)
		assert.True(t, chain[0].Debit.Equal(decimal.NewFromInt(4000)))
		assert.True(t, chain[0].Credit.Equal(decimal.NewFromInt(2000)))
		assert.True(t, chain[0].BalanceAfter.Equal(decimal.NewFromInt(2000)))

		assert.NotEmpty(t, sc.f.publisher.events)
	})

	t.Run("splits the cart when the total exceeds the value ceiling", func(t *testing.T) {
		cfg := Config{BillValueCeiling: decimal.NewFromInt(1000), BillVolumeCeilingML: 50000}
		sc := newSaleScenario(t, cfg)

		resp, err := sc.service.CreateSale(ctx, sc.tenantID, CreateSaleRequest{
			CustomerID: &sc.customer.ID,
			Items: []SaleItemRequest{
				{ProductID: sc.product.ID, Quantity: 8},
			},
			CashAmount: decimal.NewFromInt(4000),
		})
		require.NoError(t, err)

		require.Len(t, resp.SubBills, 4)
		var quantity int64
		total := decimal.Zero
		for _, bill := range resp.SubBills {
			assert.True(t, bill.TotalAmount.LessThanOrEqual(decimal.NewFromInt(1000)))
			total = total.Add(bill.TotalAmount)
			for _, item := range bill.Items {
				quantity += item.Quantity
			}
		}
		assert.Equal(t, int64(8), quantity)
		assert.True(t, total.Equal(resp.TotalAmount))
	})

	t.Run("rejects a discount above the customer cap before touching stock", func(t *testing.T) {
		sc := newSaleScenario(t, DefaultConfig())
		sc.customer.MaxDiscountPercentage = decimal.NewFromInt(10)

		_, err := sc.service.CreateSale(ctx, sc.tenantID, CreateSaleRequest{
			CustomerID: &sc.customer.ID,
			Items: []SaleItemRequest{
				{ProductID: sc.product.ID, Quantity: 8},
			},
			BillDiscount: decimal.NewFromInt(500),
			CashAmount:   decimal.NewFromInt(3500),
		})
		require.Error(t, err)
		assert.Equal(t, "DISCOUNT_CAP_EXCEEDED", shared.ErrorCode(err))

		assert.Equal(t, int64(15), sc.product.CurrentStock)
		stocks, _ := sc.f.vendorStocks.FindByProduct(ctx, sc.tenantID, sc.product.ID)
		assert.Equal(t, int64(5), stocks[0].CurrentStock)
		assert.Equal(t, int64(10), stocks[1].CurrentStock)
	})

	t.Run("fails when vendor stock cannot cover the quantity", func(t *testing.T) {
		sc := newSaleScenario(t, DefaultConfig())

		_, err := sc.service.CreateSale(ctx, sc.tenantID, CreateSaleRequest{
			CustomerID: &sc.customer.ID,
			Items: []SaleItemRequest{
				{ProductID: sc.product.ID, Quantity: 20},
			},
			CashAmount: decimal.NewFromInt(10000),
		})
		require.Error(t, err)
		assert.Equal(t, "INSUFFICIENT_STOCK", shared.ErrorCode(err))
	})

	t.Run("refuses a walk-in sale carrying a due amount", func(t *testing.T) {
		sc := newSaleScenario(t, DefaultConfig())

		_, err := sc.service.CreateSale(ctx, sc.tenantID, CreateSaleRequest{
			Items: []SaleItemRequest{
				{ProductID: sc.product.ID, Quantity: 2},
			},
			CashAmount: decimal.NewFromInt(100),
		})
		require.Error(t, err)
		assert.Equal(t, "WALKIN_CREDIT_NOT_ALLOWED", shared.ErrorCode(err))
	})

	t.Run("refuses a disabled product", func(t *testing.T) {
		sc := newSaleScenario(t, DefaultConfig())
		sc.product.Status = catalog.ProductStatusDisabled

		_, err := sc.service.CreateSale(ctx, sc.tenantID, CreateSaleRequest{
			CustomerID: &sc.customer.ID,
			Items: []SaleItemRequest{
				{ProductID: sc.product.ID, Quantity: 1},
			},
			CashAmount: decimal.NewFromInt(500),
		})
		require.Error(t, err)
		assert.Equal(t, "PRODUCT_DISABLED", shared.ErrorCode(err))
	})

	t.Run("unknown product is not found", func(t *testing.T) {
		sc := newSaleScenario(t, DefaultConfig())

		_, err := sc.service.CreateSale(ctx, sc.tenantID, CreateSaleRequest{
			CustomerID: &sc.customer.ID,
			Items: []SaleItemRequest{
				{ProductID: uuid.New(), Quantity: 1},
			},
			CashAmount: decimal.NewFromInt(500),
		})
		require.Error(t, err)
		assert.True(t, shared.IsNotFound(err))
	})
}

func TestGetSale(t *testing.T) {
	ctx := context.Background()
	sc := newSaleScenario(t, DefaultConfig())

	created, err := sc.service.CreateSale(ctx, sc.tenantID, CreateSaleRequest{
		CustomerID: &sc.customer.ID,
		Items: []SaleItemRequest{
			{ProductID: sc.product.ID, Quantity: 2},
		},
		CashAmount: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	fetched, err := sc.service.GetSale(ctx, sc.tenantID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.SaleNumber, fetched.SaleNumber)

	_, err = sc.service.GetSale(ctx, uuid.New(), created.ID)
	require.Error(t, err)
	assert.True(t, shared.IsNotFound(err))
}
