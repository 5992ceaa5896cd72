package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailops/backend/internal/domain/shared"
)

// LedgerEntityType identifies which kind of party a ledger chain belongs to
type LedgerEntityType string

const (
	LedgerEntityCustomer LedgerEntityType = "CUSTOMER"
	LedgerEntityVendor   LedgerEntityType = "VENDOR"
)

// IsValid returns true if the entity type is valid
func (t LedgerEntityType) IsValid() bool {
	return t == LedgerEntityCustomer || t == LedgerEntityVendor
}

// String returns the string representation of LedgerEntityType
func (t LedgerEntityType) String() string {
	return string(t)
}

// LedgerEntry is one immutable row of the per-entity running-balance
// journal. For a given (entityType, entityId) the chain invariant holds:
// BalanceAfter(n) = BalanceAfter(n-1) + Debit − Credit, starting from zero.
// Entries are append-only; corrections are compensating entries, never
// mutation. Replaying the chain in creation order must reproduce every
// stored BalanceAfter.
type LedgerEntry struct {
	shared.BaseEntity
	TenantID     uuid.UUID
	EntityType   LedgerEntityType
	EntityID     uuid.UUID
	Debit        decimal.Decimal
	Credit       decimal.Decimal
	BalanceAfter decimal.Decimal
	Description  string
	PostedAt     time.Time
}

// NextLedgerEntry builds the entry that follows prev in an entity's chain.
// A nil prev starts the chain at a zero balance.
func NextLedgerEntry(
	tenantID uuid.UUID,
	entityType LedgerEntityType,
	entityID uuid.UUID,
	prev *LedgerEntry,
	debit, credit decimal.Decimal,
	description string,
) (*LedgerEntry, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewValidationError("Tenant ID cannot be empty")
	}
	if !entityType.IsValid() {
		return nil, shared.NewValidationError("Invalid ledger entity type")
	}
	if entityID == uuid.Nil {
		return nil, shared.NewValidationError("Entity ID cannot be empty")
	}
	if debit.IsNegative() || credit.IsNegative() {
		return nil, shared.NewValidationError("Debit and credit cannot be negative")
	}
	if debit.IsZero() && credit.IsZero() {
		return nil, shared.NewValidationError("Entry must carry a debit or a credit")
	}

	previousBalance := decimal.Zero
	if prev != nil {
		previousBalance = prev.BalanceAfter
	}

	return &LedgerEntry{
		BaseEntity:   shared.NewBaseEntity(),
		TenantID:     tenantID,
		EntityType:   entityType,
		EntityID:     entityID,
		Debit:        debit,
		Credit:       credit,
		BalanceAfter: previousBalance.Add(debit).Sub(credit),
		Description:  description,
		PostedAt:     time.Now(),
	}, nil
}

// ReplayBalance recomputes the running balance over entries in creation
// order. A ledger audit compares this against the stored BalanceAfter of
// the last entry.
func ReplayBalance(entries []*LedgerEntry) decimal.Decimal {
	balance := decimal.Zero
	for _, e := range entries {
		balance = balance.Add(e.Debit).Sub(e.Credit)
	}
	return balance
}

// VerifyChain checks the running-balance invariant across entries in
// creation order, returning the index of the first broken link or -1.
func VerifyChain(entries []*LedgerEntry) int {
	balance := decimal.Zero
	for i, e := range entries {
		balance = balance.Add(e.Debit).Sub(e.Credit)
		if !balance.Equal(e.BalanceAfter) {
			return i
		}
	}
	return -1
}
