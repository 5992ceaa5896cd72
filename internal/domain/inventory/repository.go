package inventory

import (
	"context"

	"github.com/google/uuid"
)

// VendorStockRepository is the persistence port for vendor stock rows
type VendorStockRepository interface {
	FindByVendorAndProduct(ctx context.Context, tenantID, vendorID, productID uuid.UUID) (*VendorStock, error)
	FindByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]*VendorStock, error)
	Save(ctx context.Context, stock *VendorStock) error
	// SaveWithLock updates an existing stock row guarded by its aggregate
	// version, failing with shared.ErrConcurrencyConflict on a stale read.
	SaveWithLock(ctx context.Context, stock *VendorStock) error
	// SaveAllWithLock applies SaveWithLock to every row. Allocation touches
	// several rows per line and saves them together; a conflict on any row
	// aborts the batch.
	SaveAllWithLock(ctx context.Context, stocks []*VendorStock) error
}

// StockClosingRepository is the persistence port for reconciliation snapshots
type StockClosingRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*StockClosing, error)
	SaveWithLines(ctx context.Context, closing *StockClosing) error
}
