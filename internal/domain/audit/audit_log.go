package audit

import (
	"context"

	"github.com/google/uuid"

	"github.com/retailops/backend/internal/domain/shared"
)

// AuditLog is one append-only row of the settlement audit trail. Every
// committed settlement operation produces one via its domain event.
type AuditLog struct {
	shared.BaseEntity
	TenantID      uuid.UUID
	Action        string
	AggregateType string
	AggregateID   uuid.UUID
	Detail        string
}

// NewAuditLog creates an audit row
func NewAuditLog(tenantID uuid.UUID, action, aggregateType string, aggregateID uuid.UUID, detail string) (*AuditLog, error) {
	if action == "" {
		return nil, shared.NewValidationError("Action cannot be empty")
	}
	return &AuditLog{
		BaseEntity:    shared.NewBaseEntity(),
		TenantID:      tenantID,
		Action:        action,
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		Detail:        detail,
	}, nil
}

// AuditLogRepository is the persistence port for the audit trail
type AuditLogRepository interface {
	Append(ctx context.Context, log *AuditLog) error
	FindByAggregate(ctx context.Context, tenantID uuid.UUID, aggregateType string, aggregateID uuid.UUID) ([]*AuditLog, error)
}
