package finance

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailops/backend/internal/domain/shared"
)

// Event types for finance records
const (
	EventTypeCreditCollected        = "finance.credit.collected"
	EventTypeCreditPaymentCancelled = "finance.credit.cancelled"
	EventTypeLedgerEntryPosted      = "finance.ledger.posted"
)

// CreditCollectedEvent is emitted when a credit payment commits
type CreditCollectedEvent struct {
	shared.BaseDomainEvent
	CustomerID   uuid.UUID       `json:"customer_id"`
	CashAmount   decimal.Decimal `json:"cash_amount"`
	OnlineAmount decimal.Decimal `json:"online_amount"`
}

// NewCreditCollectedEvent creates a CreditCollectedEvent
func NewCreditCollectedEvent(payment *CreditPayment) *CreditCollectedEvent {
	return &CreditCollectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCreditCollected, "CreditPayment", payment.ID, payment.TenantID),
		CustomerID:      payment.CustomerID,
		CashAmount:      payment.CashAmount,
		OnlineAmount:    payment.OnlineAmount,
	}
}

// CreditPaymentCancelledEvent is emitted when a credit payment is reversed
type CreditPaymentCancelledEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID       `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
}

// NewCreditPaymentCancelledEvent creates a CreditPaymentCancelledEvent
func NewCreditPaymentCancelledEvent(payment *CreditPayment) *CreditPaymentCancelledEvent {
	return &CreditPaymentCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCreditPaymentCancelled, "CreditPayment", payment.ID, payment.TenantID),
		CustomerID:      payment.CustomerID,
		Amount:          payment.Amount(),
	}
}

// LedgerEntryPostedEvent is emitted when a ledger entry is appended
type LedgerEntryPostedEvent struct {
	shared.BaseDomainEvent
	EntityType   LedgerEntityType `json:"entity_type"`
	EntityID     uuid.UUID        `json:"entity_id"`
	Debit        decimal.Decimal  `json:"debit"`
	Credit       decimal.Decimal  `json:"credit"`
	BalanceAfter decimal.Decimal  `json:"balance_after"`
}

// NewLedgerEntryPostedEvent creates a LedgerEntryPostedEvent
func NewLedgerEntryPostedEvent(entry *LedgerEntry) *LedgerEntryPostedEvent {
	return &LedgerEntryPostedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLedgerEntryPosted, "LedgerEntry", entry.ID, entry.TenantID),
		EntityType:      entry.EntityType,
		EntityID:        entry.EntityID,
		Debit:           entry.Debit,
		Credit:          entry.Credit,
		BalanceAfter:    entry.BalanceAfter,
	}
}
