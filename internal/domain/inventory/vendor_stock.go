package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailops/backend/internal/domain/shared"
)

// VendorStock is one (vendor, product) stock row. Rows are created on first
// purchase from a vendor and never deleted; a fully drawn-down row simply
// sits at zero and is skipped by allocation. CurrentStock is never negative.
type VendorStock struct {
	shared.TenantAggregateRoot
	VendorID          uuid.UUID
	ProductID         uuid.UUID
	CurrentStock      int64
	LastPurchasePrice decimal.Decimal
	LastPurchaseDate  *time.Time
}

// NewVendorStock creates a stock row for a (vendor, product) pair
func NewVendorStock(tenantID, vendorID, productID uuid.UUID) (*VendorStock, error) {
	if vendorID == uuid.Nil {
		return nil, shared.NewValidationError("Vendor ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("Product ID cannot be empty")
	}
	return &VendorStock{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		VendorID:            vendorID,
		ProductID:           productID,
	}, nil
}

// Deduct removes quantity from the row. Callers never deduct more than the
// row holds; the allocator caps each draw at the available stock.
func (vs *VendorStock) Deduct(quantity int64) error {
	if quantity <= 0 {
		return shared.NewValidationError("Quantity must be positive")
	}
	if vs.CurrentStock < quantity {
		return shared.ErrInsufficientStock
	}
	vs.CurrentStock -= quantity
	vs.Touch()
	return nil
}

// Receive adds purchased quantity and records the purchase terms
func (vs *VendorStock) Receive(quantity int64, unitPrice decimal.Decimal, purchaseDate time.Time) error {
	if quantity <= 0 {
		return shared.NewValidationError("Quantity must be positive")
	}
	vs.CurrentStock += quantity
	vs.LastPurchasePrice = unitPrice
	vs.LastPurchaseDate = &purchaseDate
	vs.Touch()
	return nil
}

// IsEmpty returns true if the row holds no stock
func (vs *VendorStock) IsEmpty() bool {
	return vs.CurrentStock == 0
}
