package trade

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SubBillItem is a partial sale line carried by one sub-bill. The union of
// an item's chunks across all sub-bills reconstructs the original line
// quantity and amount exactly.
type SubBillItem struct {
	ID          uuid.UUID
	SubBillID   uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
	LineTotal   decimal.Decimal
}

// SubBill is one capacity-bounded partition of a sale's cart with its own
// payment split. The value-bounded splitter caps TotalAmount, the
// volume-bounded splitter caps VolumeML; either may overflow by at most the
// unavoidable single-unit case.
type SubBill struct {
	ID           uuid.UUID
	SaleID       uuid.UUID
	Sequence     int
	Items        []SubBillItem
	TotalAmount  decimal.Decimal
	VolumeML     int64
	CashAmount   decimal.Decimal
	OnlineAmount decimal.Decimal
	CreditAmount decimal.Decimal
}

func newSubBill(sequence int) SubBill {
	return SubBill{
		ID:          uuid.New(),
		Sequence:    sequence,
		Items:       make([]SubBillItem, 0),
		TotalAmount: decimal.Zero,
	}
}

func (b *SubBill) addItem(item SubBillItem) {
	item.ID = uuid.New()
	item.SubBillID = b.ID
	b.Items = append(b.Items, item)
	b.TotalAmount = b.TotalAmount.Add(item.LineTotal)
}

// QuantityOf sums the sub-bill's quantity for one product
func (b *SubBill) QuantityOf(productID uuid.UUID) int64 {
	var sum int64
	for _, item := range b.Items {
		if item.ProductID == productID {
			sum += item.Quantity
		}
	}
	return sum
}
