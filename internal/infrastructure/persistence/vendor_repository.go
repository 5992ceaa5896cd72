package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailops/backend/internal/domain/partner"
	"github.com/retailops/backend/internal/domain/shared"
	"github.com/retailops/backend/internal/infrastructure/persistence/models"
)

// GormVendorRepository implements partner.VendorRepository using GORM
type GormVendorRepository struct {
	db *gorm.DB
}

// NewGormVendorRepository creates a new GormVendorRepository
func NewGormVendorRepository(db *gorm.DB) *GormVendorRepository {
	return &GormVendorRepository{db: db}
}

// FindByIDForTenant finds a vendor by ID within a tenant
func (r *GormVendorRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Vendor, error) {
	var model models.VendorModel
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

// FindActiveForTenant finds all active vendors of a tenant ordered by priority
func (r *GormVendorRepository) FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) ([]*partner.Vendor, error) {
	var modelList []models.VendorModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ?", tenantID, partner.VendorStatusActive).
		Order("priority ASC, id ASC").
		Find(&modelList).Error; err != nil {
		return nil, err
	}
	vendors := make([]*partner.Vendor, 0, len(modelList))
	for i := range modelList {
		vendors = append(vendors, modelList[i].ToDomain())
	}
	return vendors, nil
}

// Save persists a vendor
func (r *GormVendorRepository) Save(ctx context.Context, vendor *partner.Vendor) error {
	model := models.VendorModelFromDomain(vendor)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormVendorRepository implements VendorRepository
var _ partner.VendorRepository = (*GormVendorRepository)(nil)
