package partner

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailops/backend/internal/domain/shared"
)

// CustomerStatus represents the lifecycle status of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "ACTIVE"
	CustomerStatusDisabled CustomerStatus = "DISABLED"
)

// String returns the string representation of CustomerStatus
func (s CustomerStatus) String() string {
	return string(s)
}

// discountEpsilon tolerates sub-paisa rounding noise when comparing an
// attempted discount against the customer's cap.
var discountEpsilon = decimal.NewFromFloat(0.01)

// Customer is the aggregate root for a credit customer. OutstandingBalance
// is a running total: it only increases via unpaid sale due amounts and only
// decreases via active credit payments (or increases back via their
// cancellation).
type Customer struct {
	shared.TenantAggregateRoot
	Code                  string
	Name                  string
	Phone                 string
	CreditLimit           decimal.Decimal
	OutstandingBalance    decimal.Decimal
	MaxDiscountPercentage decimal.Decimal // zero means no cap
	Status                CustomerStatus
}

// NewCustomer creates a new customer
func NewCustomer(tenantID uuid.UUID, code, name string) (*Customer, error) {
	if code == "" {
		return nil, shared.NewValidationError("Customer code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewValidationError("Customer name cannot be empty")
	}
	return &Customer{
		TenantAggregateRoot:   shared.NewTenantAggregateRoot(tenantID),
		Code:                  code,
		Name:                  name,
		CreditLimit:           decimal.Zero,
		OutstandingBalance:    decimal.Zero,
		MaxDiscountPercentage: decimal.Zero,
		Status:                CustomerStatusActive,
	}, nil
}

// HasDiscountCap returns true if sales to this customer have a discount ceiling
func (c *Customer) HasDiscountCap() bool {
	return c.MaxDiscountPercentage.IsPositive()
}

// MaxAllowedDiscount computes the discount ceiling for a given subtotal
func (c *Customer) MaxAllowedDiscount(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(c.MaxDiscountPercentage).Div(decimal.NewFromInt(100))
}

// CheckDiscount rejects a total discount that exceeds the customer's cap by
// more than the rounding epsilon.
func (c *Customer) CheckDiscount(subtotal, totalDiscount decimal.Decimal) error {
	if !c.HasDiscountCap() {
		return nil
	}
	maxAllowed := c.MaxAllowedDiscount(subtotal)
	if totalDiscount.Sub(maxAllowed).GreaterThan(discountEpsilon) {
		return shared.NewBusinessRuleError("DISCOUNT_CAP_EXCEEDED",
			"Discount "+totalDiscount.StringFixed(2)+" exceeds the maximum allowed "+maxAllowed.StringFixed(2)+
				" ("+c.MaxDiscountPercentage.String()+"% of "+subtotal.StringFixed(2)+")")
	}
	return nil
}

// IncreaseOutstanding adds an unpaid sale due amount to the running balance
func (c *Customer) IncreaseOutstanding(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewValidationError("Amount must be positive")
	}
	c.OutstandingBalance = c.OutstandingBalance.Add(amount)
	c.Touch()
	return nil
}

// DecreaseOutstanding settles part of the running balance via a credit
// payment. A payment larger than the balance is a business rule violation.
func (c *Customer) DecreaseOutstanding(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewValidationError("Amount must be positive")
	}
	if amount.GreaterThan(c.OutstandingBalance) {
		return shared.NewBusinessRuleError("PAYMENT_EXCEEDS_BALANCE",
			"Payment "+amount.StringFixed(2)+" exceeds outstanding balance "+c.OutstandingBalance.StringFixed(2))
	}
	c.OutstandingBalance = c.OutstandingBalance.Sub(amount)
	c.Touch()
	return nil
}

// RestoreOutstanding re-adds a cancelled credit payment to the balance
func (c *Customer) RestoreOutstanding(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewValidationError("Amount must be positive")
	}
	c.OutstandingBalance = c.OutstandingBalance.Add(amount)
	c.Touch()
	return nil
}
