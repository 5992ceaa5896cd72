package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailops/backend/internal/domain/shared"
)

// ProductStatus represents the lifecycle status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusDisabled ProductStatus = "DISABLED"
)

// IsValid checks if the status is a valid ProductStatus
func (s ProductStatus) IsValid() bool {
	return s == ProductStatusActive || s == ProductStatusDisabled
}

// String returns the string representation of ProductStatus
func (s ProductStatus) String() string {
	return string(s)
}

// Product is the aggregate root for a sellable item. CurrentStock is the
// aggregate count across all vendor stock rows and must equal the sum of
// those rows after every settlement operation; callers mutate both inside
// the same transaction scope. MorningStock is the baseline against which a
// business day's purchases, sales and discrepancy are measured; it is rolled
// forward by inventory reconciliation.
type Product struct {
	shared.TenantAggregateRoot
	Code             string
	Name             string
	PricePerUnit     decimal.Decimal
	VolumeML         int64 // volume of one bottle, used by the volume-bounded bill split
	BottlesPerCase   int64 // case-to-bottle conversion for purchase entry
	CurrentStock     int64
	MorningStock     int64
	MorningStockDate time.Time
	Status           ProductStatus
}

// NewProduct creates a new product
func NewProduct(tenantID uuid.UUID, code, name string, pricePerUnit decimal.Decimal, volumeML, bottlesPerCase int64) (*Product, error) {
	if code == "" {
		return nil, shared.NewValidationError("Product code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewValidationError("Product name cannot be empty")
	}
	if pricePerUnit.IsNegative() {
		return nil, shared.NewValidationError("Price per unit cannot be negative")
	}
	if volumeML < 0 {
		return nil, shared.NewValidationError("Volume cannot be negative")
	}
	if bottlesPerCase <= 0 {
		bottlesPerCase = 1
	}

	return &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		PricePerUnit:        pricePerUnit,
		VolumeML:            volumeML,
		BottlesPerCase:      bottlesPerCase,
		Status:              ProductStatusActive,
	}, nil
}

// IsActive returns true if the product can be sold
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// DecreaseStock reduces the aggregate stock count. The caller must deduct
// the same quantity from vendor stock rows in the same transaction.
func (p *Product) DecreaseStock(quantity int64) error {
	if quantity <= 0 {
		return shared.NewValidationError("Quantity must be positive")
	}
	if p.CurrentStock < quantity {
		return shared.NewInsufficientStockError(p.Name)
	}
	p.CurrentStock -= quantity
	p.Touch()
	return nil
}

// IncreaseStock raises the aggregate stock count
func (p *Product) IncreaseStock(quantity int64) error {
	if quantity <= 0 {
		return shared.NewValidationError("Quantity must be positive")
	}
	p.CurrentStock += quantity
	p.Touch()
	return nil
}

// SetStock overwrites the aggregate stock count with a physically counted
// figure. Used by reconciliation after the shortfall has been sourced from
// vendor stock rows.
func (p *Product) SetStock(quantity int64) error {
	if quantity < 0 {
		return shared.NewValidationError("Stock cannot be negative")
	}
	p.CurrentStock = quantity
	p.Touch()
	return nil
}

// ResetMorningStock sets the morning baseline and its effective date
func (p *Product) ResetMorningStock(quantity int64, effectiveDate time.Time) error {
	if quantity < 0 {
		return shared.NewValidationError("Morning stock cannot be negative")
	}
	p.MorningStock = quantity
	p.MorningStockDate = effectiveDate
	p.Touch()
	return nil
}

// UnitsFor converts a case+bottle purchase quantity to flat bottle units
func (p *Product) UnitsFor(cases, bottles int64) int64 {
	return cases*p.BottlesPerCase + bottles
}
