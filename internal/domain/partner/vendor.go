package partner

import (
	"sort"

	"github.com/google/uuid"

	"github.com/retailops/backend/internal/domain/shared"
)

// VendorStatus represents the lifecycle status of a vendor
type VendorStatus string

const (
	VendorStatusActive   VendorStatus = "ACTIVE"
	VendorStatusDisabled VendorStatus = "DISABLED"
)

// String returns the string representation of VendorStatus
func (s VendorStatus) String() string {
	return string(s)
}

// Vendor is a supplier holding per-product stock. Priority defines the
// deduction order used by stock allocation: lower values are drawn from
// first. Ties are broken by vendor ID so allocation stays reproducible.
type Vendor struct {
	shared.TenantAggregateRoot
	Code     string
	Name     string
	Priority int
	Status   VendorStatus
}

// NewVendor creates a new vendor
func NewVendor(tenantID uuid.UUID, code, name string, priority int) (*Vendor, error) {
	if code == "" {
		return nil, shared.NewValidationError("Vendor code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewValidationError("Vendor name cannot be empty")
	}
	if priority < 0 {
		return nil, shared.NewValidationError("Vendor priority cannot be negative")
	}
	return &Vendor{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		Priority:            priority,
		Status:              VendorStatusActive,
	}, nil
}

// IsActive returns true if the vendor can supply stock
func (v *Vendor) IsActive() bool {
	return v.Status == VendorStatusActive
}

// SortVendorsByPriority orders vendors ascending by priority, breaking ties
// by vendor ID. Allocation correctness depends only on the priority field at
// call time; there is no cached ordering.
func SortVendorsByPriority(vendors []*Vendor) {
	sort.Slice(vendors, func(i, j int) bool {
		if vendors[i].Priority != vendors[j].Priority {
			return vendors[i].Priority < vendors[j].Priority
		}
		return vendors[i].ID.String() < vendors[j].ID.String()
	})
}
