package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailops/backend/internal/domain/shared"
)

func TestNewSaleItem(t *testing.T) {
	t.Run("computes the line total", func(t *testing.T) {
		item, err := NewSaleItem(uuid.New(), "Whisky", 3, decimal.NewFromInt(500), decimal.NewFromInt(100), 750)
		require.NoError(t, err)

		assert.True(t, item.LineTotal.Equal(decimal.NewFromInt(1400)))
		assert.Equal(t, int64(2250), item.TotalVolumeML())
	})

	t.Run("rejects discount above the line amount", func(t *testing.T) {
		_, err := NewSaleItem(uuid.New(), "Whisky", 2, decimal.NewFromInt(100), decimal.NewFromInt(300), 750)
		require.Error(t, err)
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewSaleItem(uuid.New(), "Whisky", 0, decimal.NewFromInt(100), decimal.Zero, 750)
		require.Error(t, err)
	})
}

func TestNewSale(t *testing.T) {
	tenantID := uuid.New()
	customerID := uuid.New()
	saleDate := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	items := func(t *testing.T) []SaleItem {
		return []SaleItem{
			saleItem(t, 2, 500, 0, 750),
			saleItem(t, 1, 300, 50, 1000),
		}
	}

	t.Run("computes totals and due", func(t *testing.T) {
		sale, err := NewSale(tenantID, "SAL-2025-00001", SaleKindOrdinary, &customerID,
			saleDate, items(t), decimal.NewFromInt(50),
			PaymentSplit{Cash: decimal.NewFromInt(500), Online: decimal.NewFromInt(200)})
		require.NoError(t, err)

		assert.True(t, sale.SubtotalAmount.Equal(decimal.NewFromInt(1300)))
		assert.True(t, sale.ItemDiscount.Equal(decimal.NewFromInt(50)))
		assert.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(1200)))
		assert.True(t, sale.PaidAmount.Equal(decimal.NewFromInt(700)))
		assert.True(t, sale.DueAmount.Equal(decimal.NewFromInt(500)))
		assert.Equal(t, SaleStatusActive, sale.Status)
		assert.Len(t, sale.GetDomainEvents(), 1)
	})

	t.Run("walk-in with a due amount is refused", func(t *testing.T) {
		_, err := NewSale(tenantID, "SAL-2025-00002", SaleKindOrdinary, nil,
			saleDate, items(t), decimal.Zero,
			PaymentSplit{Cash: decimal.NewFromInt(100)})
		require.Error(t, err)
		assert.Equal(t, "WALKIN_CREDIT_NOT_ALLOWED", shared.ErrorCode(err))
	})

	t.Run("fully paid walk-in is fine", func(t *testing.T) {
		sale, err := NewSale(tenantID, "SAL-2025-00003", SaleKindOrdinary, nil,
			saleDate, items(t), decimal.Zero,
			PaymentSplit{Cash: decimal.NewFromInt(1250)})
		require.NoError(t, err)
		assert.True(t, sale.DueAmount.IsZero())
	})

	t.Run("shrinkage sale never carries a due", func(t *testing.T) {
		sale, err := NewSale(tenantID, "SAL-2025-00004", SaleKindShrinkage, nil,
			saleDate, items(t), decimal.Zero,
			PaymentSplit{Cash: decimal.NewFromInt(200)})
		require.NoError(t, err)
		assert.True(t, sale.DueAmount.IsZero())
		assert.Equal(t, SaleKindShrinkage, sale.Kind)
	})

	t.Run("rejects paid above total", func(t *testing.T) {
		_, err := NewSale(tenantID, "SAL-2025-00005", SaleKindOrdinary, &customerID,
			saleDate, items(t), decimal.Zero,
			PaymentSplit{Cash: decimal.NewFromInt(2000)})
		require.Error(t, err)
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("rejects discounts above the sale amount", func(t *testing.T) {
		_, err := NewSale(tenantID, "SAL-2025-00006", SaleKindOrdinary, &customerID,
			saleDate, items(t), decimal.NewFromInt(5000),
			PaymentSplit{})
		require.Error(t, err)
	})
}

func TestAttachSubBills(t *testing.T) {
	tenantID := uuid.New()
	customerID := uuid.New()

	items := []SaleItem{saleItem(t, 4, 100, 0, 750)}
	sale, err := NewSale(tenantID, "SAL-2025-00010", SaleKindOrdinary, &customerID,
		time.Now(), items, decimal.Zero, PaymentSplit{Cash: decimal.NewFromInt(400)})
	require.NoError(t, err)

	bills, err := SplitByValue(sale.Items, PaymentSplit{Cash: decimal.NewFromInt(400)}, decimal.NewFromInt(200))
	require.NoError(t, err)
	require.Greater(t, len(bills), 1)

	sale.AttachSubBills(bills)
	require.True(t, sale.HasSubBills())
	for _, b := range sale.SubBills {
		assert.Equal(t, sale.ID, b.SaleID)
		for _, item := range b.Items {
			assert.Equal(t, b.ID, item.SubBillID)
		}
	}
}

func TestNewPurchase(t *testing.T) {
	tenantID := uuid.New()
	vendorID := uuid.New()

	t.Run("flattens cases to bottle units", func(t *testing.T) {
		item, err := NewPurchaseItem(uuid.New(), "Whisky", 2, 3, 12, decimal.NewFromInt(400))
		require.NoError(t, err)

		assert.Equal(t, int64(27), item.Quantity)
		assert.True(t, item.LineTotal.Equal(decimal.NewFromInt(10800)))
	})

	t.Run("zero bottles per case defaults to one", func(t *testing.T) {
		item, err := NewPurchaseItem(uuid.New(), "Whisky", 5, 0, 0, decimal.NewFromInt(100))
		require.NoError(t, err)
		assert.Equal(t, int64(5), item.Quantity)
	})

	t.Run("computes the due amount", func(t *testing.T) {
		item, err := NewPurchaseItem(uuid.New(), "Whisky", 1, 0, 12, decimal.NewFromInt(100))
		require.NoError(t, err)

		purchase, err := NewPurchase(tenantID, "PUR-2025-00001", vendorID,
			time.Now(), []PurchaseItem{item}, decimal.NewFromInt(700))
		require.NoError(t, err)

		assert.True(t, purchase.TotalAmount.Equal(decimal.NewFromInt(1200)))
		assert.True(t, purchase.DueAmount.Equal(decimal.NewFromInt(500)))
		assert.Equal(t, int64(12), purchase.TotalQuantity())
		assert.Len(t, purchase.GetDomainEvents(), 1)
	})

	t.Run("rejects paid above total", func(t *testing.T) {
		item, err := NewPurchaseItem(uuid.New(), "Whisky", 1, 0, 12, decimal.NewFromInt(100))
		require.NoError(t, err)

		_, err = NewPurchase(tenantID, "PUR-2025-00002", vendorID,
			time.Now(), []PurchaseItem{item}, decimal.NewFromInt(1300))
		require.Error(t, err)
		assert.True(t, shared.IsValidation(err))
	})
}
