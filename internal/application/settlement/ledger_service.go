package settlement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/retailops/backend/internal/domain/finance"
	"github.com/retailops/backend/internal/domain/shared"
)

// LedgerService exposes the running-balance journal: manual postings and
// chain queries. The other settlement services post through the same
// appendLedgerEntry helper so every write obeys the chain invariant.
type LedgerService struct {
	scope          TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(scope TransactionScope, eventPublisher shared.EventPublisher, logger *zap.Logger) *LedgerService {
	return &LedgerService{
		scope:          scope,
		eventPublisher: eventPublisher,
		logger:         logger.Named("ledger-service"),
	}
}

// PostEntry appends one entry to an entity's chain
func (s *LedgerService) PostEntry(ctx context.Context, tenantID uuid.UUID, req PostEntryRequest) (*LedgerEntryResponse, error) {
	entityType := finance.LedgerEntityType(req.EntityType)

	var entry *finance.LedgerEntry
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		entry, err = appendLedgerEntry(ctx, repos, tenantID, entityType, req.EntityID, req.Debit, req.Credit, req.Description)
		return err
	})
	if err != nil {
		return nil, err
	}

	publishEvents(ctx, s.eventPublisher, finance.NewLedgerEntryPostedEvent(entry))

	s.logger.Info("ledger entry posted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("entity_type", entityType.String()),
		zap.String("entity_id", req.EntityID.String()),
		zap.String("balance_after", entry.BalanceAfter.String()))

	response := ToLedgerEntryResponse(entry)
	return &response, nil
}

// GetEntityLedger returns an entity's chain in creation order
func (s *LedgerService) GetEntityLedger(ctx context.Context, tenantID uuid.UUID, entityType finance.LedgerEntityType, entityID uuid.UUID) ([]LedgerEntryResponse, error) {
	if !entityType.IsValid() {
		return nil, shared.NewValidationError("Invalid ledger entity type")
	}

	var entries []*finance.LedgerEntry
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		entries, err = repos.LedgerRepo().FindByEntity(ctx, tenantID, entityType, entityID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ToLedgerEntryResponses(entries), nil
}

// GetCashbook returns the till movements of one business day
func (s *LedgerService) GetCashbook(ctx context.Context, tenantID uuid.UUID, day time.Time) ([]CashbookEntryResponse, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	nextDayStart := dayStart.AddDate(0, 0, 1)

	var entries []*finance.CashbookEntry
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		entries, err = repos.CashbookRepo().FindByDateRange(ctx, tenantID, dayStart, nextDayStart)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ToCashbookEntryResponses(entries), nil
}

// appendLedgerEntry reads the tail of the entity's chain and appends the
// next entry. It must run inside the caller's transaction scope: the tail
// read locks the row, so the read-compute-append sequence serializes against
// concurrent posts to the same entity for the life of the transaction.
func appendLedgerEntry(
	ctx context.Context,
	repos TransactionalRepositories,
	tenantID uuid.UUID,
	entityType finance.LedgerEntityType,
	entityID uuid.UUID,
	debit, credit decimal.Decimal,
	description string,
) (*finance.LedgerEntry, error) {
	prev, err := repos.LedgerRepo().FindLatestForEntity(ctx, tenantID, entityType, entityID)
	if err != nil {
		if !shared.IsNotFound(err) {
			return nil, err
		}
		prev = nil
	}

	entry, err := finance.NextLedgerEntry(tenantID, entityType, entityID, prev, debit, credit, description)
	if err != nil {
		return nil, err
	}
	if err := repos.LedgerRepo().Append(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// publishEvents fires events after the enclosing transaction committed.
// Event handling is best effort; a failing subscriber never un-commits the
// settlement.
func publishEvents(ctx context.Context, publisher shared.EventPublisher, events ...shared.DomainEvent) {
	if publisher == nil {
		return
	}
	for _, event := range events {
		_ = publisher.Publish(ctx, event)
	}
}

// drainEvents collects and clears the pending events of an aggregate
func drainEvents(root shared.AggregateRoot) []shared.DomainEvent {
	events := root.GetDomainEvents()
	root.ClearDomainEvents()
	return events
}
