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

// GormVendorStockRepository implements inventory.VendorStockRepository using GORM
type GormVendorStockRepository struct {
	db *gorm.DB
}

// NewGormVendorStockRepository creates a new GormVendorStockRepository
func NewGormVendorStockRepository(db *gorm.DB) *GormVendorStockRepository {
	return &GormVendorStockRepository{db: db}
}

// FindByVendorAndProduct finds the stock row for one (vendor, product) pair
func (r *GormVendorStockRepository) FindByVendorAndProduct(ctx context.Context, tenantID, vendorID, productID uuid.UUID) (*inventory.VendorStock, error) {
	var model models.VendorStockModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND vendor_id = ? AND product_id = ?", tenantID, vendorID, productID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProduct finds all vendor stock rows holding a product
func (r *GormVendorStockRepository) FindByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]*inventory.VendorStock, error) {
	var modelList []models.VendorStockModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND product_id = ?", tenantID, productID).
		Find(&modelList).Error; err != nil {
		return nil, err
	}
	stocks := make([]*inventory.VendorStock, 0, len(modelList))
	for i := range modelList {
		stocks = append(stocks, modelList[i].ToDomain())
	}
	return stocks, nil
}

// Save persists a vendor stock row
func (r *GormVendorStockRepository) Save(ctx context.Context, stock *inventory.VendorStock) error {
	model := models.VendorStockModelFromDomain(stock)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock updates the stock row guarded by the version it was loaded
// with. Zero rows affected means a concurrent settlement drew from or
// received into the same row first.
func (r *GormVendorStockRepository) SaveWithLock(ctx context.Context, stock *inventory.VendorStock) error {
	model := models.VendorStockModelFromDomain(stock)
	result := r.db.WithContext(ctx).
		Model(&models.VendorStockModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version).
		Updates(map[string]interface{}{
			"current_stock":       model.CurrentStock,
			"last_purchase_price": model.LastPurchasePrice,
			"last_purchase_date":  model.LastPurchaseDate,
			"version":             model.Version + 1,
			"updated_at":          model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	stock.IncrementVersion()
	return nil
}

// SaveAllWithLock updates a batch of stock rows under the version guard.
// Allocation touches several rows per line and saves them together; a
// conflict on any row aborts the batch and the enclosing transaction.
func (r *GormVendorStockRepository) SaveAllWithLock(ctx context.Context, stocks []*inventory.VendorStock) error {
	for _, stock := range stocks {
		if err := r.SaveWithLock(ctx, stock); err != nil {
			return err
		}
	}
	return nil
}

// Ensure GormVendorStockRepository implements VendorStockRepository
var _ inventory.VendorStockRepository = (*GormVendorStockRepository)(nil)
