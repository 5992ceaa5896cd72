package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/retailops/backend/internal/domain/finance"
	"github.com/retailops/backend/internal/domain/shared"
	"github.com/retailops/backend/internal/infrastructure/persistence/models"
)

// GormLedgerEntryRepository implements finance.LedgerEntryRepository using
// GORM. The journal is append-only: only Create is ever issued.
type GormLedgerEntryRepository struct {
	db *gorm.DB
}

// NewGormLedgerEntryRepository creates a new GormLedgerEntryRepository
func NewGormLedgerEntryRepository(db *gorm.DB) *GormLedgerEntryRepository {
	return &GormLedgerEntryRepository{db: db}
}

// Append inserts a ledger entry. Existing rows are never touched.
func (r *GormLedgerEntryRepository) Append(ctx context.Context, entry *finance.LedgerEntry) error {
	model := models.LedgerEntryModelFromDomain(entry)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindLatestForEntity returns the most recent entry of an entity's chain,
// or shared.ErrNotFound when the chain is empty. The tail row is read FOR
// UPDATE: concurrent posters to the same chain serialize on it, so the
// read-compute-append sequence cannot fork balanceAfter.
func (r *GormLedgerEntryRepository) FindLatestForEntity(ctx context.Context, tenantID uuid.UUID, entityType finance.LedgerEntityType, entityID uuid.UUID) (*finance.LedgerEntry, error) {
	var model models.LedgerEntryModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND entity_type = ? AND entity_id = ?", tenantID, entityType, entityID).
		Order("posted_at DESC, created_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEntity returns an entity's chain in posting order
func (r *GormLedgerEntryRepository) FindByEntity(ctx context.Context, tenantID uuid.UUID, entityType finance.LedgerEntityType, entityID uuid.UUID) ([]*finance.LedgerEntry, error) {
	var modelList []models.LedgerEntryModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND entity_type = ? AND entity_id = ?", tenantID, entityType, entityID).
		Order("posted_at ASC, created_at ASC").
		Find(&modelList).Error; err != nil {
		return nil, err
	}
	entries := make([]*finance.LedgerEntry, 0, len(modelList))
	for i := range modelList {
		entries = append(entries, modelList[i].ToDomain())
	}
	return entries, nil
}

// Ensure GormLedgerEntryRepository implements LedgerEntryRepository
var _ finance.LedgerEntryRepository = (*GormLedgerEntryRepository)(nil)
