package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailops/backend/internal/domain/shared"
)

// StockClosingLine captures the reconciliation figures for one product.
// Morning/purchased/sold/closing figures are supplied by the caller; the
// engine records them verbatim for the snapshot but recomputes the stock
// difference independently before mutating anything.
type StockClosingLine struct {
	ID               uuid.UUID
	StockClosingID   uuid.UUID
	ProductID        uuid.UUID
	ProductName      string
	MorningStock     int64
	Purchased        int64
	Sold             int64
	SystemStock      int64
	PhysicalCount    int64
	Discrepancy      int64
	DiscrepancyValue decimal.Decimal
}

// StockClosing is the immutable snapshot of one reconciliation run. It
// links to the synthetic shrinkage sale generated for the run.
type StockClosing struct {
	shared.TenantAggregateRoot
	ClosingDate           time.Time
	SaleID                uuid.UUID
	TotalDiscrepancy      int64
	TotalDiscrepancyValue decimal.Decimal
	Lines                 []StockClosingLine
}

// NewStockClosing creates a reconciliation snapshot
func NewStockClosing(tenantID uuid.UUID, closingDate time.Time, saleID uuid.UUID) (*StockClosing, error) {
	if saleID == uuid.Nil {
		return nil, shared.NewValidationError("Sale ID cannot be empty")
	}
	return &StockClosing{
		TenantAggregateRoot:   shared.NewTenantAggregateRoot(tenantID),
		ClosingDate:           closingDate,
		SaleID:                saleID,
		TotalDiscrepancyValue: decimal.Zero,
		Lines:                 make([]StockClosingLine, 0),
	}, nil
}

// AddLine appends one product's figures to the snapshot
func (sc *StockClosing) AddLine(line StockClosingLine) {
	line.ID = uuid.New()
	line.StockClosingID = sc.ID
	sc.Lines = append(sc.Lines, line)
	sc.TotalDiscrepancy += line.Discrepancy
	sc.TotalDiscrepancyValue = sc.TotalDiscrepancyValue.Add(line.DiscrepancyValue)
	sc.Touch()
}
