package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailops/backend/internal/domain/catalog"
	"github.com/retailops/backend/internal/domain/shared"
	"github.com/retailops/backend/internal/infrastructure/persistence/models"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByIDForTenant finds a product by ID within a tenant
func (r *GormProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds all products of a tenant whose IDs are in the given set.
// Missing IDs are simply absent from the result; callers check coverage.
func (r *GormProductRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*catalog.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var modelList []models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&modelList).Error; err != nil {
		return nil, err
	}
	products := make([]*catalog.Product, 0, len(modelList))
	for i := range modelList {
		products = append(products, modelList[i].ToDomain())
	}
	return products, nil
}

// FindAllForTenant finds all products of a tenant
func (r *GormProductRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]*catalog.Product, error) {
	var modelList []models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("code ASC").
		Find(&modelList).Error; err != nil {
		return nil, err
	}
	products := make([]*catalog.Product, 0, len(modelList))
	for i := range modelList {
		products = append(products, modelList[i].ToDomain())
	}
	return products, nil
}

// Save persists a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock updates the product's stock figures guarded by the version it
// was loaded with. Zero rows affected means a concurrent settlement moved
// the same product's stock first.
func (r *GormProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	result := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version).
		Updates(map[string]interface{}{
			"current_stock":      model.CurrentStock,
			"morning_stock":      model.MorningStock,
			"morning_stock_date": model.MorningStockDate,
			"version":            model.Version + 1,
			"updated_at":         model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	product.IncrementVersion()
	return nil
}

// RollMorningStockDate moves the morning-stock baseline date forward for
// every product of the tenant in one statement.
func (r *GormProductRepository) RollMorningStockDate(ctx context.Context, tenantID uuid.UUID, effectiveDate time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("tenant_id = ?", tenantID).
		Update("morning_stock_date", effectiveDate).Error
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
