package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailops/backend/internal/domain/finance"
	"github.com/retailops/backend/internal/infrastructure/persistence/models"
)

// GormCashbookRepository implements finance.CashbookRepository using GORM
type GormCashbookRepository struct {
	db *gorm.DB
}

// NewGormCashbookRepository creates a new GormCashbookRepository
func NewGormCashbookRepository(db *gorm.DB) *GormCashbookRepository {
	return &GormCashbookRepository{db: db}
}

// Append inserts a cashbook entry
func (r *GormCashbookRepository) Append(ctx context.Context, entry *finance.CashbookEntry) error {
	model := models.CashbookEntryModelFromDomain(entry)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByDateRange returns a tenant's till movements within [from, to)
func (r *GormCashbookRepository) FindByDateRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*finance.CashbookEntry, error) {
	var modelList []models.CashbookEntryModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND entry_date >= ? AND entry_date < ?", tenantID, from, to).
		Order("entry_date ASC, created_at ASC").
		Find(&modelList).Error; err != nil {
		return nil, err
	}
	entries := make([]*finance.CashbookEntry, 0, len(modelList))
	for i := range modelList {
		entries = append(entries, modelList[i].ToDomain())
	}
	return entries, nil
}

// Ensure GormCashbookRepository implements CashbookRepository
var _ finance.CashbookRepository = (*GormCashbookRepository)(nil)
