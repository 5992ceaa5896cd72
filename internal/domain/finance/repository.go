package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LedgerEntryRepository is the persistence port for the running-balance
// journal. Append-only: there is no update or delete.
type LedgerEntryRepository interface {
	Append(ctx context.Context, entry *LedgerEntry) error
	// FindLatestForEntity returns the most recent entry of an entity's
	// chain, or shared.ErrNotFound when the chain is empty.
	FindLatestForEntity(ctx context.Context, tenantID uuid.UUID, entityType LedgerEntityType, entityID uuid.UUID) (*LedgerEntry, error)
	// FindByEntity returns an entity's chain in creation order for replay.
	FindByEntity(ctx context.Context, tenantID uuid.UUID, entityType LedgerEntityType, entityID uuid.UUID) ([]*LedgerEntry, error)
}

// CashbookRepository is the persistence port for till movements
type CashbookRepository interface {
	Append(ctx context.Context, entry *CashbookEntry) error
	FindByDateRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*CashbookEntry, error)
}

// CreditPaymentRepository is the persistence port for credit payments
type CreditPaymentRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*CreditPayment, error)
	Save(ctx context.Context, payment *CreditPayment) error
	// SaveWithLock updates an existing payment guarded by its aggregate
	// version, failing with shared.ErrConcurrencyConflict on a stale read.
	// Cancellation goes through this so a payment is never reversed twice.
	SaveWithLock(ctx context.Context, payment *CreditPayment) error
}
