package trade

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailops/backend/internal/domain/shared"
)

// Event types for trade aggregates
const (
	EventTypeSaleSettled     = "trade.sale.settled"
	EventTypePurchaseSettled = "trade.purchase.settled"
)

// SaleSettledEvent is emitted when a sale commits
type SaleSettledEvent struct {
	shared.BaseDomainEvent
	SaleNumber  string          `json:"sale_number"`
	Kind        SaleKind        `json:"kind"`
	CustomerID  *uuid.UUID      `json:"customer_id,omitempty"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	DueAmount   decimal.Decimal `json:"due_amount"`
	ItemCount   int             `json:"item_count"`
	SubBills    int             `json:"sub_bills"`
}

// NewSaleSettledEvent creates a SaleSettledEvent from a sale
func NewSaleSettledEvent(sale *Sale) *SaleSettledEvent {
	return &SaleSettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleSettled, "Sale", sale.ID, sale.TenantID),
		SaleNumber:      sale.SaleNumber,
		Kind:            sale.Kind,
		CustomerID:      sale.CustomerID,
		TotalAmount:     sale.TotalAmount,
		PaidAmount:      sale.PaidAmount,
		DueAmount:       sale.DueAmount,
		ItemCount:       len(sale.Items),
		SubBills:        len(sale.SubBills),
	}
}

// PurchaseSettledEvent is emitted when a purchase commits
type PurchaseSettledEvent struct {
	shared.BaseDomainEvent
	PurchaseNumber string          `json:"purchase_number"`
	VendorID       uuid.UUID       `json:"vendor_id"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	TotalQuantity  int64           `json:"total_quantity"`
}

// NewPurchaseSettledEvent creates a PurchaseSettledEvent from a purchase
func NewPurchaseSettledEvent(purchase *Purchase) *PurchaseSettledEvent {
	return &PurchaseSettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseSettled, "Purchase", purchase.ID, purchase.TenantID),
		PurchaseNumber:  purchase.PurchaseNumber,
		VendorID:        purchase.VendorID,
		TotalAmount:     purchase.TotalAmount,
		PaidAmount:      purchase.PaidAmount,
		TotalQuantity:   purchase.TotalQuantity(),
	}
}
