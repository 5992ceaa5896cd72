package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailops/backend/internal/domain/finance"
	"github.com/retailops/backend/internal/domain/shared"
	"github.com/retailops/backend/internal/infrastructure/persistence/models"
)

// GormCreditPaymentRepository implements finance.CreditPaymentRepository using GORM
type GormCreditPaymentRepository struct {
	db *gorm.DB
}

// NewGormCreditPaymentRepository creates a new GormCreditPaymentRepository
func NewGormCreditPaymentRepository(db *gorm.DB) *GormCreditPaymentRepository {
	return &GormCreditPaymentRepository{db: db}
}

// FindByIDForTenant finds a credit payment by ID within a tenant
func (r *GormCreditPaymentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.CreditPayment, error) {
	var model models.CreditPaymentModel
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

// Save persists a credit payment
func (r *GormCreditPaymentRepository) Save(ctx context.Context, payment *finance.CreditPayment) error {
	model := models.CreditPaymentModelFromDomain(payment)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock updates the payment guarded by the version it was loaded
// with. Two concurrent cancellations of the same payment serialize here, so
// the customer's balance is never restored twice.
func (r *GormCreditPaymentRepository) SaveWithLock(ctx context.Context, payment *finance.CreditPayment) error {
	model := models.CreditPaymentModelFromDomain(payment)
	result := r.db.WithContext(ctx).
		Model(&models.CreditPaymentModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version).
		Updates(map[string]interface{}{
			"status":       model.Status,
			"cancelled_at": model.CancelledAt,
			"version":      model.Version + 1,
			"updated_at":   model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	payment.IncrementVersion()
	return nil
}

// Ensure GormCreditPaymentRepository implements CreditPaymentRepository
var _ finance.CreditPaymentRepository = (*GormCreditPaymentRepository)(nil)
