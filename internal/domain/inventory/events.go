package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailops/backend/internal/domain/shared"
)

// Event types for inventory operations
const (
	EventTypeStockReconciled = "inventory.stock.reconciled"
)

// StockReconciledEvent is emitted when a reconciliation run commits
type StockReconciledEvent struct {
	shared.BaseDomainEvent
	SaleID                uuid.UUID       `json:"sale_id"`
	ProductsCounted       int             `json:"products_counted"`
	ProductsWithShrinkage int             `json:"products_with_shrinkage"`
	TotalDiscrepancy      int64           `json:"total_discrepancy"`
	TotalDiscrepancyValue decimal.Decimal `json:"total_discrepancy_value"`
}

// NewStockReconciledEvent creates a StockReconciledEvent from a snapshot
func NewStockReconciledEvent(closing *StockClosing, productsCounted int) *StockReconciledEvent {
	withShrinkage := 0
	for _, line := range closing.Lines {
		if line.Discrepancy > 0 {
			withShrinkage++
		}
	}
	return &StockReconciledEvent{
		BaseDomainEvent:       shared.NewBaseDomainEvent(EventTypeStockReconciled, "StockClosing", closing.ID, closing.TenantID),
		SaleID:                closing.SaleID,
		ProductsCounted:       productsCounted,
		ProductsWithShrinkage: withShrinkage,
		TotalDiscrepancy:      closing.TotalDiscrepancy,
		TotalDiscrepancyValue: closing.TotalDiscrepancyValue,
	}
}
