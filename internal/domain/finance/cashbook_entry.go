package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailops/backend/internal/domain/shared"
)

// CashbookDirection marks a cashbook row as money in or money out
type CashbookDirection string

const (
	CashbookInflow  CashbookDirection = "INFLOW"
	CashbookOutflow CashbookDirection = "OUTFLOW"
)

// String returns the string representation of CashbookDirection
func (d CashbookDirection) String() string {
	return string(d)
}

// CashbookSourceType identifies the document a cashbook row stems from
type CashbookSourceType string

const (
	CashbookSourceCreditPayment CashbookSourceType = "CREDIT_PAYMENT"
	CashbookSourceCreditRefund  CashbookSourceType = "CREDIT_REFUND"
)

// CashbookEntry is an append-only till movement. Credit collection writes
// an inflow; cancelling a collection writes a compensating outflow.
type CashbookEntry struct {
	shared.BaseEntity
	TenantID     uuid.UUID
	Direction    CashbookDirection
	SourceType   CashbookSourceType
	SourceID     uuid.UUID
	CashAmount   decimal.Decimal
	OnlineAmount decimal.Decimal
	EntryDate    time.Time
	Description  string
}

// NewCashbookEntry creates a cashbook row
func NewCashbookEntry(
	tenantID uuid.UUID,
	direction CashbookDirection,
	sourceType CashbookSourceType,
	sourceID uuid.UUID,
	cashAmount, onlineAmount decimal.Decimal,
	entryDate time.Time,
	description string,
) (*CashbookEntry, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewValidationError("Tenant ID cannot be empty")
	}
	if sourceID == uuid.Nil {
		return nil, shared.NewValidationError("Source ID cannot be empty")
	}
	if cashAmount.IsNegative() || onlineAmount.IsNegative() {
		return nil, shared.NewValidationError("Amounts cannot be negative")
	}
	if cashAmount.Add(onlineAmount).IsZero() {
		return nil, shared.NewValidationError("Entry must carry an amount")
	}
	return &CashbookEntry{
		BaseEntity:   shared.NewBaseEntity(),
		TenantID:     tenantID,
		Direction:    direction,
		SourceType:   sourceType,
		SourceID:     sourceID,
		CashAmount:   cashAmount,
		OnlineAmount: onlineAmount,
		EntryDate:    entryDate,
		Description:  description,
	}, nil
}

// Amount is the combined cash and online value of the row
func (e *CashbookEntry) Amount() decimal.Decimal {
	return e.CashAmount.Add(e.OnlineAmount)
}
