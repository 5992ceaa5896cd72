package partner

import (
	"context"

	"github.com/google/uuid"
)

// CustomerRepository is the persistence port for Customer aggregates
type CustomerRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Customer, error)
	Save(ctx context.Context, customer *Customer) error
	// SaveWithLock updates an existing customer guarded by its aggregate
	// version, failing with shared.ErrConcurrencyConflict on a stale read.
	// Balance mutations go through this so concurrent settlements on the
	// same customer serialize.
	SaveWithLock(ctx context.Context, customer *Customer) error
}

// VendorRepository is the persistence port for Vendor aggregates
type VendorRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Vendor, error)
	// FindActiveForTenant returns active vendors; callers order them with
	// SortVendorsByPriority before allocating.
	FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) ([]*Vendor, error)
	Save(ctx context.Context, vendor *Vendor) error
}
