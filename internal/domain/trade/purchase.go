package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailops/backend/internal/domain/shared"
)

// PurchaseItem is one line of a vendor purchase. Quantities arrive as
// cases plus loose bottles and are flattened to bottle units before any
// stock mutation.
type PurchaseItem struct {
	ID             uuid.UUID
	PurchaseID     uuid.UUID
	ProductID      uuid.UUID
	ProductName    string
	Cases          int64
	Bottles        int64
	BottlesPerCase int64
	Quantity       int64 // Cases*BottlesPerCase + Bottles
	UnitPrice      decimal.Decimal
	LineTotal      decimal.Decimal
}

// NewPurchaseItem builds a purchase line, flattening the case+bottle count
func NewPurchaseItem(productID uuid.UUID, productName string, cases, bottles, bottlesPerCase int64, unitPrice decimal.Decimal) (PurchaseItem, error) {
	if productID == uuid.Nil {
		return PurchaseItem{}, shared.NewValidationError("Product ID cannot be empty")
	}
	if cases < 0 || bottles < 0 {
		return PurchaseItem{}, shared.NewValidationError("Quantities cannot be negative")
	}
	if bottlesPerCase <= 0 {
		bottlesPerCase = 1
	}
	if unitPrice.IsNegative() {
		return PurchaseItem{}, shared.NewValidationError("Unit price cannot be negative")
	}
	quantity := cases*bottlesPerCase + bottles
	if quantity <= 0 {
		return PurchaseItem{}, shared.NewValidationError("Purchase quantity must be positive")
	}
	return PurchaseItem{
		ID:             uuid.New(),
		ProductID:      productID,
		ProductName:    productName,
		Cases:          cases,
		Bottles:        bottles,
		BottlesPerCase: bottlesPerCase,
		Quantity:       quantity,
		UnitPrice:      unitPrice,
		LineTotal:      unitPrice.Mul(decimal.NewFromInt(quantity)),
	}, nil
}

// Purchase is the aggregate root for stock received from a vendor
type Purchase struct {
	shared.TenantAggregateRoot
	PurchaseNumber string
	VendorID       uuid.UUID
	PurchaseDate   time.Time
	Items          []PurchaseItem
	TotalAmount    decimal.Decimal
	PaidAmount     decimal.Decimal
	DueAmount      decimal.Decimal
}

// NewPurchase assembles a purchase from prepared lines
func NewPurchase(
	tenantID uuid.UUID,
	purchaseNumber string,
	vendorID uuid.UUID,
	purchaseDate time.Time,
	items []PurchaseItem,
	paidAmount decimal.Decimal,
) (*Purchase, error) {
	if purchaseNumber == "" {
		return nil, shared.NewValidationError("Purchase number cannot be empty")
	}
	if vendorID == uuid.Nil {
		return nil, shared.NewValidationError("Vendor ID cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewValidationError("At least one item is required")
	}
	if paidAmount.IsNegative() {
		return nil, shared.NewValidationError("Paid amount cannot be negative")
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal)
	}
	if paidAmount.GreaterThan(total) {
		return nil, shared.NewValidationError("Paid amount cannot exceed the purchase total")
	}

	purchase := &Purchase{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		PurchaseNumber:      purchaseNumber,
		VendorID:            vendorID,
		PurchaseDate:        purchaseDate,
		Items:               items,
		TotalAmount:         total,
		PaidAmount:          paidAmount,
		DueAmount:           total.Sub(paidAmount),
	}
	for idx := range purchase.Items {
		purchase.Items[idx].PurchaseID = purchase.ID
	}

	purchase.AddDomainEvent(NewPurchaseSettledEvent(purchase))
	return purchase, nil
}

// TotalQuantity sums the flattened bottle units of the purchase
func (p *Purchase) TotalQuantity() int64 {
	var sum int64
	for _, item := range p.Items {
		sum += item.Quantity
	}
	return sum
}
