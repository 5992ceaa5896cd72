package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ProductRepository is the persistence port for Product aggregates
type ProductRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*Product, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]*Product, error)
	Save(ctx context.Context, product *Product) error

	// SaveWithLock updates an existing product guarded by its aggregate
	// version. It fails with shared.ErrConcurrencyConflict when another
	// transaction committed a change to the same product first.
	SaveWithLock(ctx context.Context, product *Product) error

	// RollMorningStockDate moves the morning-stock baseline date forward for
	// EVERY product of the tenant. Reconciliation calls this as part of its
	// atomic unit, so an implementation must honor the ambient transaction.
	RollMorningStockDate(ctx context.Context, tenantID uuid.UUID, effectiveDate time.Time) error
}
