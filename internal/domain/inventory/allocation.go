package inventory

import (
	"sort"

	"github.com/google/uuid"

	"github.com/retailops/backend/internal/domain/catalog"
	"github.com/retailops/backend/internal/domain/partner"
	"github.com/retailops/backend/internal/domain/shared"
)

// VendorAllocation records how much of a requested quantity one vendor
// supplied. The per-line allocation list is persisted with the sale so an
// audit can replay stock deltas from the sale record alone.
type VendorAllocation struct {
	VendorID uuid.UUID `json:"vendor_id"`
	Quantity int64     `json:"quantity"`
}

// Allocate deducts quantityNeeded from the given stock rows in order,
// drawing min(remaining, row stock) from each and skipping empty rows. The
// rows must already be in vendor priority order (see OrderByVendorPriority).
//
// If the rows are exhausted with quantity still outstanding, the call fails
// with an insufficient-stock error carrying the product name. Rows already
// drawn from HAVE been mutated at that point: the caller runs inside a
// transaction scope and must discard every change when any allocation in
// the operation fails. No partial deduction may survive.
func Allocate(productName string, quantityNeeded int64, stocks []*VendorStock) ([]VendorAllocation, error) {
	if quantityNeeded <= 0 {
		return nil, shared.NewValidationError("Quantity needed must be positive")
	}

	remaining := quantityNeeded
	allocations := make([]VendorAllocation, 0, len(stocks))

	for _, stock := range stocks {
		if remaining == 0 {
			break
		}
		if stock.IsEmpty() {
			continue
		}

		draw := remaining
		if stock.CurrentStock < draw {
			draw = stock.CurrentStock
		}
		if err := stock.Deduct(draw); err != nil {
			return nil, err
		}

		allocations = append(allocations, VendorAllocation{
			VendorID: stock.VendorID,
			Quantity: draw,
		})
		remaining -= draw
	}

	if remaining > 0 {
		return nil, shared.NewInsufficientStockError(productName)
	}
	return allocations, nil
}

// OrderByVendorPriority orders stock rows by their vendor's priority
// (ascending, ties by vendor ID). Rows whose vendor is not in the list are
// dropped: only active vendors may supply stock.
func OrderByVendorPriority(stocks []*VendorStock, vendors []*partner.Vendor) []*VendorStock {
	rank := make(map[uuid.UUID]int, len(vendors))
	ordered := make([]*partner.Vendor, len(vendors))
	copy(ordered, vendors)
	partner.SortVendorsByPriority(ordered)
	for i, v := range ordered {
		rank[v.ID] = i
	}

	eligible := make([]*VendorStock, 0, len(stocks))
	for _, s := range stocks {
		if _, ok := rank[s.VendorID]; ok {
			eligible = append(eligible, s)
		}
	}
	sort.Slice(eligible, func(i, j int) bool {
		return rank[eligible[i].VendorID] < rank[eligible[j].VendorID]
	})
	return eligible
}

// AssertAggregateConsistency verifies the materialized-view invariant:
// Product.CurrentStock equals the sum of its vendor stock rows. Exposed for
// tests and for callers that want a reconciliation check.
func AssertAggregateConsistency(product *catalog.Product, stocks []*VendorStock) error {
	var sum int64
	for _, s := range stocks {
		if s.ProductID != product.ID {
			continue
		}
		sum += s.CurrentStock
	}
	if sum != product.CurrentStock {
		return shared.NewDomainError("STOCK_AGGREGATE_MISMATCH",
			"Product "+product.Name+" aggregate stock diverged from vendor stock rows")
	}
	return nil
}
