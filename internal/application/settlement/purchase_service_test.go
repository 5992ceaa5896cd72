package settlement

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/retailops/backend/internal/domain/catalog"
	"github.com/retailops/backend/internal/domain/finance"
	"github.com/retailops/backend/internal/domain/partner"
	"github.com/retailops/backend/internal/domain/shared"
)

type purchaseScenario struct {
	f        *fixture
	service  *PurchaseService
	tenantID uuid.UUID
	product  *catalog.Product
	vendor   *partner.Vendor
}

func newPurchaseScenario(t *testing.T) *purchaseScenario {
	t.Helper()
	f := newFixture()
	tenantID := uuid.New()
	ctx := context.Background()

	product, err := catalog.NewProduct(tenantID, "P-001", "Whisky", decimal.NewFromInt(500), 750, 12)
	require.NoError(t, err)
	require.NoError(t, f.products.Save(ctx, product))

	vendor, err := partner.NewVendor(tenantID, "V-001", "First Supply", 1)
	require.NoError(t, err)
	require.NoError(t, f.vendors.Save(ctx, vendor))

	return &purchaseScenario{
		f:        f,
		service:  NewPurchaseService(f.scope, f.publisher, zap.NewNop()),
		tenantID: tenantID,
		product:  product,
		vendor:   vendor,
	}
}

func TestCreatePurchase(t *testing.T) {
	ctx := context.Background()

	t.Run("receives stock and posts the vendor ledger", func(t *testing.T) {
		sc := newPurchaseScenario(t)

		resp, err := sc.service.CreatePurchase(ctx, sc.tenantID, CreatePurchaseRequest{
			VendorID: sc.vendor.ID,
			Items: []PurchaseItemRequest{
				{ProductID: sc.product.ID, Cases: 2, Bottles: 3, UnitPrice: decimal.NewFromInt(400)},
			},
			PaidAmount: decimal.NewFromInt(5000),
		})
		require.NoError(t, err)

		require.Len(t, resp.Items, 1)
		assert.Equal(t, int64(27), resp.Items[0].Quantity)
		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(10800)))
		assert.True(t, resp.DueAmount.Equal(decimal.NewFromInt(5800)))
		assert.True(t, strings.HasPrefix(resp.PurchaseNumber, "PUR-"))

		// Aggregate and the (vendor, product) row move together
		assert.Equal(t, int64(27), sc.product.CurrentStock)
		stock, err := sc.f.vendorStocks.FindByVendorAndProduct(ctx, sc.tenantID, sc.vendor.ID, sc.product.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(27), stock.CurrentStock)
		assert.True(t, stock.LastPurchasePrice.Equal(decimal.NewFromInt(400)))

		chain, err := sc.f.ledger.FindByEntity(ctx, sc.tenantID, finance.LedgerEntityVendor, sc.vendor.ID)
		require.NoError(t, err)
		require.Len(t, chain, 1)
		assert.True(t, chain[0].Debit.Equal(decimal.NewFromInt(10800)))
		assert.True(t, chain[0].Credit.Equal(decimal.NewFromInt(5000)))
		assert.True(t, chain[0].BalanceAfter.Equal(decimal.NewFromInt(5800)))
	})

	t.Run("second purchase tops up the existing stock row", func(t *testing.T) {
		sc := newPurchaseScenario(t)

		buy := func(cases int64) {
			_, err := sc.service.CreatePurchase(ctx, sc.tenantID, CreatePurchaseRequest{
				VendorID: sc.vendor.ID,
				Items: []PurchaseItemRequest{
					{ProductID: sc.product.ID, Cases: cases, UnitPrice: decimal.NewFromInt(400)},
				},
			})
			require.NoError(t, err)
		}
		buy(1)
		buy(2)

		assert.Equal(t, int64(36), sc.product.CurrentStock)
		require.Len(t, sc.f.vendorStocks.stocks, 1)
		assert.Equal(t, int64(36), sc.f.vendorStocks.stocks[0].CurrentStock)
	})

	t.Run("refuses a disabled vendor", func(t *testing.T) {
		sc := newPurchaseScenario(t)
		sc.vendor.Status = partner.VendorStatusDisabled

		_, err := sc.service.CreatePurchase(ctx, sc.tenantID, CreatePurchaseRequest{
			VendorID: sc.vendor.ID,
			Items: []PurchaseItemRequest{
				{ProductID: sc.product.ID, Cases: 1, UnitPrice: decimal.NewFromInt(400)},
			},
		})
		require.Error(t, err)
		assert.Equal(t, "VENDOR_DISABLED", shared.ErrorCode(err))
	})

	t.Run("rejects paid above the purchase total", func(t *testing.T) {
		sc := newPurchaseScenario(t)

		_, err := sc.service.CreatePurchase(ctx, sc.tenantID, CreatePurchaseRequest{
			VendorID: sc.vendor.ID,
			Items: []PurchaseItemRequest{
				{ProductID: sc.product.ID, Cases: 1, UnitPrice: decimal.NewFromInt(100)},
			},
			PaidAmount: decimal.NewFromInt(5000),
		})
		require.Error(t, err)
		assert.True(t, shared.IsValidation(err))
	})
}

func TestGetPurchase(t *testing.T) {
	ctx := context.Background()
	sc := newPurchaseScenario(t)

	created, err := sc.service.CreatePurchase(ctx, sc.tenantID, CreatePurchaseRequest{
		VendorID: sc.vendor.ID,
		Items: []PurchaseItemRequest{
			{ProductID: sc.product.ID, Bottles: 6, UnitPrice: decimal.NewFromInt(400)},
		},
	})
	require.NoError(t, err)

	fetched, err := sc.service.GetPurchase(ctx, sc.tenantID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.PurchaseNumber, fetched.PurchaseNumber)

	_, err = sc.service.GetPurchase(ctx, uuid.New(), created.ID)
	require.Error(t, err)
	assert.True(t, shared.IsNotFound(err))
}
