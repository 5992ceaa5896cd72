package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/retailops/backend/internal/domain/audit"
	"github.com/retailops/backend/internal/domain/shared"
)

// Recorder subscribes to all settlement domain events and persists one
// audit row per event. It runs outside the settlement transaction: a failed
// audit write is logged, never a reason to un-commit a settlement.
type Recorder struct {
	repo   audit.AuditLogRepository
	logger *zap.Logger
}

// NewRecorder creates a Recorder
func NewRecorder(repo audit.AuditLogRepository, logger *zap.Logger) *Recorder {
	return &Recorder{
		repo:   repo,
		logger: logger.Named("audit-recorder"),
	}
}

// EventTypes returns an empty slice: the recorder receives every event.
func (r *Recorder) EventTypes() []string {
	return nil
}

// Handle persists one audit row for the event
func (r *Recorder) Handle(ctx context.Context, event shared.DomainEvent) error {
	detail, err := json.Marshal(event)
	if err != nil {
		detail = []byte(fmt.Sprintf("%q", event.EventType()))
	}

	log, err := audit.NewAuditLog(event.TenantID(), event.EventType(), event.AggregateType(), event.AggregateID(), string(detail))
	if err != nil {
		return err
	}
	if err := r.repo.Append(ctx, log); err != nil {
		r.logger.Error("audit append failed",
			zap.String("event_type", event.EventType()),
			zap.String("aggregate_id", event.AggregateID().String()),
			zap.Error(err))
		return err
	}
	return nil
}

var _ shared.EventHandler = (*Recorder)(nil)
