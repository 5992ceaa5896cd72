package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailops/backend/internal/domain/inventory"
	"github.com/retailops/backend/internal/domain/shared"
	"github.com/retailops/backend/internal/infrastructure/persistence/models"
)

// GormStockClosingRepository implements inventory.StockClosingRepository using GORM
type GormStockClosingRepository struct {
	db *gorm.DB
}

// NewGormStockClosingRepository creates a new GormStockClosingRepository
func NewGormStockClosingRepository(db *gorm.DB) *GormStockClosingRepository {
	return &GormStockClosingRepository{db: db}
}

// FindByIDForTenant finds a stock closing by ID within a tenant, lines included
func (r *GormStockClosingRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.StockClosing, error) {
	var model models.StockClosingModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// SaveWithLines persists a stock closing together with its per-product lines
func (r *GormStockClosingRepository) SaveWithLines(ctx context.Context, closing *inventory.StockClosing) error {
	model := models.StockClosingModelFromDomain(closing)
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(model).Error
}

// Ensure GormStockClosingRepository implements StockClosingRepository
var _ inventory.StockClosingRepository = (*GormStockClosingRepository)(nil)
