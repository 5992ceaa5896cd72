package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailops/backend/internal/domain/shared"
)

// CreditPaymentStatus represents the status of a credit payment
type CreditPaymentStatus string

const (
	CreditPaymentStatusActive    CreditPaymentStatus = "ACTIVE"
	CreditPaymentStatusCancelled CreditPaymentStatus = "CANCELLED"
)

// String returns the string representation of CreditPaymentStatus
func (s CreditPaymentStatus) String() string {
	return string(s)
}

// CreditPayment records a customer paying down their outstanding balance.
// Cancellation never deletes the row: the status flips to CANCELLED and the
// balance/ledger/cashbook effects are compensated by new records.
type CreditPayment struct {
	shared.TenantAggregateRoot
	CustomerID   uuid.UUID
	CashAmount   decimal.Decimal
	OnlineAmount decimal.Decimal
	Status       CreditPaymentStatus
	CreditDate   time.Time
	CancelledAt  *time.Time
}

// NewCreditPayment creates an active credit payment
func NewCreditPayment(tenantID, customerID uuid.UUID, cashAmount, onlineAmount decimal.Decimal, creditDate time.Time) (*CreditPayment, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewValidationError("Customer ID cannot be empty")
	}
	if cashAmount.IsNegative() || onlineAmount.IsNegative() {
		return nil, shared.NewValidationError("Amounts cannot be negative")
	}
	if !cashAmount.Add(onlineAmount).IsPositive() {
		return nil, shared.NewValidationError("Payment amount must be positive")
	}

	payment := &CreditPayment{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		CustomerID:          customerID,
		CashAmount:          cashAmount,
		OnlineAmount:        onlineAmount,
		Status:              CreditPaymentStatusActive,
		CreditDate:          creditDate,
	}
	payment.AddDomainEvent(NewCreditCollectedEvent(payment))
	return payment, nil
}

// Amount is the combined cash and online value of the payment
func (p *CreditPayment) Amount() decimal.Decimal {
	return p.CashAmount.Add(p.OnlineAmount)
}

// IsCancelled returns true if the payment has been reversed
func (p *CreditPayment) IsCancelled() bool {
	return p.Status == CreditPaymentStatusCancelled
}

// Cancel reverses the payment. Cancelling twice is a business rule
// violation so balances are never restored twice.
func (p *CreditPayment) Cancel() error {
	if p.IsCancelled() {
		return shared.NewBusinessRuleError("ALREADY_CANCELLED", "Credit payment is already cancelled")
	}
	now := time.Now()
	p.Status = CreditPaymentStatusCancelled
	p.CancelledAt = &now
	p.Touch()
	p.AddDomainEvent(NewCreditPaymentCancelledEvent(p))
	return nil
}
