package models

import (
	"github.com/google/uuid"

	"github.com/retailops/backend/internal/domain/audit"
)

// AuditLogModel is the persistence model for one audit trail row.
type AuditLogModel struct {
	BaseModel
	TenantID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Action        string    `gorm:"type:varchar(100);not null;index"`
	AggregateType string    `gorm:"type:varchar(100);not null"`
	AggregateID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Detail        string    `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (AuditLogModel) TableName() string {
	return "audit_logs"
}

// ToDomain converts the persistence model to a domain AuditLog.
func (m *AuditLogModel) ToDomain() *audit.AuditLog {
	return &audit.AuditLog{
		BaseEntity:    m.BaseModel.ToDomain(),
		TenantID:      m.TenantID,
		Action:        m.Action,
		AggregateType: m.AggregateType,
		AggregateID:   m.AggregateID,
		Detail:        m.Detail,
	}
}

// FromDomain populates the persistence model from a domain AuditLog.
func (m *AuditLogModel) FromDomain(l *audit.AuditLog) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.TenantID = l.TenantID
	m.Action = l.Action
	m.AggregateType = l.AggregateType
	m.AggregateID = l.AggregateID
	m.Detail = l.Detail
}

// AuditLogModelFromDomain creates a new persistence model from a domain AuditLog.
func AuditLogModelFromDomain(l *audit.AuditLog) *AuditLogModel {
	m := &AuditLogModel{}
	m.FromDomain(l)
	return m
}
