package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailops/backend/internal/domain/shared"
)

// SaleKind distinguishes ordinary customer sales from the synthetic sale a
// reconciliation run generates for stock shrinkage. Downstream consumers
// branch on this tag instead of sniffing bill-number prefixes.
type SaleKind string

const (
	SaleKindOrdinary  SaleKind = "ORDINARY"
	SaleKindShrinkage SaleKind = "SHRINKAGE_ADJUSTMENT"
)

// IsValid checks if the kind is a valid SaleKind
func (k SaleKind) IsValid() bool {
	return k == SaleKindOrdinary || k == SaleKindShrinkage
}

// String returns the string representation of SaleKind
func (k SaleKind) String() string {
	return string(k)
}

// SaleStatus represents the status of a sale
type SaleStatus string

const (
	SaleStatusActive SaleStatus = "ACTIVE"
	SaleStatusVoided SaleStatus = "VOIDED"
)

// String returns the string representation of SaleStatus
func (s SaleStatus) String() string {
	return string(s)
}

// ItemAllocation records which vendor supplied how much of one sale line
type ItemAllocation struct {
	ID         uuid.UUID
	SaleItemID uuid.UUID
	VendorID   uuid.UUID
	Quantity   int64
}

// SaleItem is one line of a sale. LineTotal = Quantity*UnitPrice − Discount.
// Allocations persist the vendor split so stock deltas can be replayed from
// the sale record alone.
type SaleItem struct {
	ID          uuid.UUID
	SaleID      uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
	LineTotal   decimal.Decimal
	VolumeML    int64
	Allocations []ItemAllocation
}

// NewSaleItem builds a sale line and computes its total
func NewSaleItem(productID uuid.UUID, productName string, quantity int64, unitPrice, discount decimal.Decimal, volumeML int64) (SaleItem, error) {
	if productID == uuid.Nil {
		return SaleItem{}, shared.NewValidationError("Product ID cannot be empty")
	}
	if quantity <= 0 {
		return SaleItem{}, shared.NewValidationError("Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return SaleItem{}, shared.NewValidationError("Unit price cannot be negative")
	}
	if discount.IsNegative() {
		return SaleItem{}, shared.NewValidationError("Discount cannot be negative")
	}
	gross := unitPrice.Mul(decimal.NewFromInt(quantity))
	if discount.GreaterThan(gross) {
		return SaleItem{}, shared.NewValidationError("Discount cannot exceed the line amount")
	}
	return SaleItem{
		ID:          uuid.New(),
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Discount:    discount,
		LineTotal:   gross.Sub(discount),
		VolumeML:    volumeML,
	}, nil
}

// NetUnitPrice is the effective per-unit price after the line discount.
// The value-bounded splitter uses it to decide how many units fit a bill.
func (i *SaleItem) NetUnitPrice() decimal.Decimal {
	return i.LineTotal.Div(decimal.NewFromInt(i.Quantity))
}

// TotalVolumeML is the physical volume of the whole line
func (i *SaleItem) TotalVolumeML() int64 {
	return i.VolumeML * i.Quantity
}

// SetAllocations attaches the vendor allocation split produced for this line
func (i *SaleItem) SetAllocations(allocations []ItemAllocation) {
	for idx := range allocations {
		if allocations[idx].ID == uuid.Nil {
			allocations[idx].ID = uuid.New()
		}
		allocations[idx].SaleItemID = i.ID
	}
	i.Allocations = allocations
}

// AllocatedQuantity sums the vendor allocation quantities for the line
func (i *SaleItem) AllocatedQuantity() int64 {
	var sum int64
	for _, a := range i.Allocations {
		sum += a.Quantity
	}
	return sum
}

// PaymentSplit carries how a sale amount is paid
type PaymentSplit struct {
	Cash   decimal.Decimal
	Online decimal.Decimal
	Credit decimal.Decimal
}

// Paid is the immediately settled part of the payment
func (p PaymentSplit) Paid() decimal.Decimal {
	return p.Cash.Add(p.Online)
}

// Total is the full payment including credit
func (p PaymentSplit) Total() decimal.Decimal {
	return p.Paid().Add(p.Credit)
}

// Sale is the aggregate root for a settled customer transaction. A nil
// CustomerID is a walk-in sale. Sales are created once and never hard
// deleted; reversal is a status flip plus compensating records.
type Sale struct {
	shared.TenantAggregateRoot
	SaleNumber     string
	Kind           SaleKind
	Status         SaleStatus
	CustomerID     *uuid.UUID
	SaleDate       time.Time
	Items          []SaleItem
	SubBills       []SubBill
	SubtotalAmount decimal.Decimal // Σ quantity*unitPrice before any discount
	ItemDiscount   decimal.Decimal // Σ per-line discounts
	BillDiscount   decimal.Decimal
	TotalAmount    decimal.Decimal // subtotal − itemDiscount − billDiscount
	CashAmount     decimal.Decimal
	OnlineAmount   decimal.Decimal
	PaidAmount     decimal.Decimal
	DueAmount      decimal.Decimal
	IsReturned     bool
}

// NewSale assembles a sale from prepared lines and a payment split.
// Ordinary walk-in sales must be fully paid: only a named customer can carry
// a due amount onto their outstanding balance. A shrinkage-adjustment sale
// records whatever cash was counted and never carries a due amount.
func NewSale(
	tenantID uuid.UUID,
	saleNumber string,
	kind SaleKind,
	customerID *uuid.UUID,
	saleDate time.Time,
	items []SaleItem,
	billDiscount decimal.Decimal,
	payment PaymentSplit,
) (*Sale, error) {
	if saleNumber == "" {
		return nil, shared.NewValidationError("Sale number cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewValidationError("Invalid sale kind")
	}
	if len(items) == 0 {
		return nil, shared.NewValidationError("At least one item is required")
	}
	if billDiscount.IsNegative() {
		return nil, shared.NewValidationError("Bill discount cannot be negative")
	}
	if payment.Cash.IsNegative() || payment.Online.IsNegative() {
		return nil, shared.NewValidationError("Payment amounts cannot be negative")
	}

	subtotal := decimal.Zero
	itemDiscount := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity)))
		itemDiscount = itemDiscount.Add(item.Discount)
	}
	total := subtotal.Sub(itemDiscount).Sub(billDiscount)
	if total.IsNegative() {
		return nil, shared.NewValidationError("Discounts cannot exceed the sale amount")
	}

	paid := payment.Paid()
	var due decimal.Decimal
	switch kind {
	case SaleKindShrinkage:
		due = decimal.Zero
	default:
		if paid.GreaterThan(total) {
			return nil, shared.NewValidationError("Paid amount cannot exceed the sale total")
		}
		due = total.Sub(paid)
		if due.IsPositive() && customerID == nil {
			return nil, shared.NewBusinessRuleError("WALKIN_CREDIT_NOT_ALLOWED",
				"Walk-in sales must be fully paid")
		}
	}

	sale := &Sale{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		SaleNumber:          saleNumber,
		Kind:                kind,
		Status:              SaleStatusActive,
		CustomerID:          customerID,
		SaleDate:            saleDate,
		Items:               items,
		SubtotalAmount:      subtotal,
		ItemDiscount:        itemDiscount,
		BillDiscount:        billDiscount,
		TotalAmount:         total,
		CashAmount:          payment.Cash,
		OnlineAmount:        payment.Online,
		PaidAmount:          paid,
		DueAmount:           due,
	}
	for idx := range sale.Items {
		sale.Items[idx].SaleID = sale.ID
		for aIdx := range sale.Items[idx].Allocations {
			sale.Items[idx].Allocations[aIdx].SaleItemID = sale.Items[idx].ID
		}
	}

	sale.AddDomainEvent(NewSaleSettledEvent(sale))
	return sale, nil
}

// TotalDiscount is the combined line and bill discount
func (s *Sale) TotalDiscount() decimal.Decimal {
	return s.ItemDiscount.Add(s.BillDiscount)
}

// AttachSubBills stores the capacity-bounded partition of the cart
func (s *Sale) AttachSubBills(bills []SubBill) {
	for idx := range bills {
		bills[idx].SaleID = s.ID
		for iIdx := range bills[idx].Items {
			bills[idx].Items[iIdx].SubBillID = bills[idx].ID
		}
	}
	s.SubBills = bills
	s.Touch()
}

// HasSubBills returns true if the cart was partitioned
func (s *Sale) HasSubBills() bool {
	return len(s.SubBills) > 0
}
