package trade

import (
	"context"

	"github.com/google/uuid"
)

// SaleRepository is the persistence port for Sale aggregates
type SaleRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Sale, error)
	// SaveWithItems persists the sale together with its items, vendor
	// allocations and sub-bills in one write.
	SaveWithItems(ctx context.Context, sale *Sale) error
	NextSaleNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
}

// PurchaseRepository is the persistence port for Purchase aggregates
type PurchaseRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Purchase, error)
	SaveWithItems(ctx context.Context, purchase *Purchase) error
	NextPurchaseNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
}
