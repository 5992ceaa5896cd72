package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailops/backend/internal/domain/audit"
	"github.com/retailops/backend/internal/infrastructure/persistence/models"
)

// GormAuditLogRepository implements audit.AuditLogRepository using GORM
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewGormAuditLogRepository creates a new GormAuditLogRepository
func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Append inserts an audit row
func (r *GormAuditLogRepository) Append(ctx context.Context, log *audit.AuditLog) error {
	model := models.AuditLogModelFromDomain(log)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByAggregate returns the audit trail of one aggregate in creation order
func (r *GormAuditLogRepository) FindByAggregate(ctx context.Context, tenantID uuid.UUID, aggregateType string, aggregateID uuid.UUID) ([]*audit.AuditLog, error) {
	var modelList []models.AuditLogModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND aggregate_type = ? AND aggregate_id = ?", tenantID, aggregateType, aggregateID).
		Order("created_at ASC").
		Find(&modelList).Error; err != nil {
		return nil, err
	}
	logs := make([]*audit.AuditLog, 0, len(modelList))
	for i := range modelList {
		logs = append(logs, modelList[i].ToDomain())
	}
	return logs, nil
}

// Ensure GormAuditLogRepository implements AuditLogRepository
var _ audit.AuditLogRepository = (*GormAuditLogRepository)(nil)
