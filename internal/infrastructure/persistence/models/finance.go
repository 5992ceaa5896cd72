package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailops/backend/internal/domain/finance"
)

// LedgerEntryModel is the persistence model for one journal row. The table
// is append-only; repositories never update or delete rows.
type LedgerEntryModel struct {
	BaseModel
	TenantID     uuid.UUID                `gorm:"type:uuid;not null;index:idx_ledger_chain,priority:1"`
	EntityType   finance.LedgerEntityType `gorm:"type:varchar(20);not null;index:idx_ledger_chain,priority:2"`
	EntityID     uuid.UUID                `gorm:"type:uuid;not null;index:idx_ledger_chain,priority:3"`
	Debit        decimal.Decimal          `gorm:"type:decimal(18,4);not null;default:0"`
	Credit       decimal.Decimal          `gorm:"type:decimal(18,4);not null;default:0"`
	BalanceAfter decimal.Decimal          `gorm:"type:decimal(18,4);not null;default:0"`
	Description  string                   `gorm:"type:varchar(500)"`
	PostedAt     time.Time                `gorm:"not null;index:idx_ledger_chain,priority:4"`
}

// TableName returns the table name for GORM
func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}

// ToDomain converts the persistence model to a domain LedgerEntry.
func (m *LedgerEntryModel) ToDomain() *finance.LedgerEntry {
	return &finance.LedgerEntry{
		BaseEntity:   m.BaseModel.ToDomain(),
		TenantID:     m.TenantID,
		EntityType:   m.EntityType,
		EntityID:     m.EntityID,
		Debit:        m.Debit,
		Credit:       m.Credit,
		BalanceAfter: m.BalanceAfter,
		Description:  m.Description,
		PostedAt:     m.PostedAt,
	}
}

// FromDomain populates the persistence model from a domain LedgerEntry.
func (m *LedgerEntryModel) FromDomain(e *finance.LedgerEntry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.TenantID = e.TenantID
	m.EntityType = e.EntityType
	m.EntityID = e.EntityID
	m.Debit = e.Debit
	m.Credit = e.Credit
	m.BalanceAfter = e.BalanceAfter
	m.Description = e.Description
	m.PostedAt = e.PostedAt
}

// LedgerEntryModelFromDomain creates a new persistence model from a domain LedgerEntry.
func LedgerEntryModelFromDomain(e *finance.LedgerEntry) *LedgerEntryModel {
	m := &LedgerEntryModel{}
	m.FromDomain(e)
	return m
}

// CashbookEntryModel is the persistence model for one till movement.
type CashbookEntryModel struct {
	BaseModel
	TenantID     uuid.UUID                  `gorm:"type:uuid;not null;index"`
	Direction    finance.CashbookDirection  `gorm:"type:varchar(10);not null"`
	SourceType   finance.CashbookSourceType `gorm:"type:varchar(30);not null"`
	SourceID     uuid.UUID                  `gorm:"type:uuid;not null;index"`
	CashAmount   decimal.Decimal            `gorm:"type:decimal(18,4);not null;default:0"`
	OnlineAmount decimal.Decimal            `gorm:"type:decimal(18,4);not null;default:0"`
	EntryDate    time.Time                  `gorm:"not null;index"`
	Description  string                     `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (CashbookEntryModel) TableName() string {
	return "cashbook_entries"
}

// ToDomain converts the persistence model to a domain CashbookEntry.
func (m *CashbookEntryModel) ToDomain() *finance.CashbookEntry {
	return &finance.CashbookEntry{
		BaseEntity:   m.BaseModel.ToDomain(),
		TenantID:     m.TenantID,
		Direction:    m.Direction,
		SourceType:   m.SourceType,
		SourceID:     m.SourceID,
		CashAmount:   m.CashAmount,
		OnlineAmount: m.OnlineAmount,
		EntryDate:    m.EntryDate,
		Description:  m.Description,
	}
}

// FromDomain populates the persistence model from a domain CashbookEntry.
func (m *CashbookEntryModel) FromDomain(e *finance.CashbookEntry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.TenantID = e.TenantID
	m.Direction = e.Direction
	m.SourceType = e.SourceType
	m.SourceID = e.SourceID
	m.CashAmount = e.CashAmount
	m.OnlineAmount = e.OnlineAmount
	m.EntryDate = e.EntryDate
	m.Description = e.Description
}

// CashbookEntryModelFromDomain creates a new persistence model from a domain CashbookEntry.
func CashbookEntryModelFromDomain(e *finance.CashbookEntry) *CashbookEntryModel {
	m := &CashbookEntryModel{}
	m.FromDomain(e)
	return m
}

// CreditPaymentModel is the persistence model for the CreditPayment aggregate.
type CreditPaymentModel struct {
	TenantAggregateModel
	CustomerID   uuid.UUID                   `gorm:"type:uuid;not null;index"`
	CashAmount   decimal.Decimal             `gorm:"type:decimal(18,4);not null;default:0"`
	OnlineAmount decimal.Decimal             `gorm:"type:decimal(18,4);not null;default:0"`
	Status       finance.CreditPaymentStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	CreditDate   time.Time                   `gorm:"not null;index"`
	CancelledAt  *time.Time
}

// TableName returns the table name for GORM
func (CreditPaymentModel) TableName() string {
	return "credit_payments"
}

// ToDomain converts the persistence model to a domain CreditPayment.
func (m *CreditPaymentModel) ToDomain() *finance.CreditPayment {
	return &finance.CreditPayment{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		CustomerID:          m.CustomerID,
		CashAmount:          m.CashAmount,
		OnlineAmount:        m.OnlineAmount,
		Status:              m.Status,
		CreditDate:          m.CreditDate,
		CancelledAt:         m.CancelledAt,
	}
}

// FromDomain populates the persistence model from a domain CreditPayment.
func (m *CreditPaymentModel) FromDomain(p *finance.CreditPayment) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.CustomerID = p.CustomerID
	m.CashAmount = p.CashAmount
	m.OnlineAmount = p.OnlineAmount
	m.Status = p.Status
	m.CreditDate = p.CreditDate
	m.CancelledAt = p.CancelledAt
}

// CreditPaymentModelFromDomain creates a new persistence model from a domain CreditPayment.
func CreditPaymentModelFromDomain(p *finance.CreditPayment) *CreditPaymentModel {
	m := &CreditPaymentModel{}
	m.FromDomain(p)
	return m
}
