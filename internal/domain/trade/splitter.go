package trade

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/retailops/backend/internal/domain/shared"
)

// itemRemainder tracks the not-yet-assigned part of one sale line while a
// splitter walks it. Money remainders are carried here so that the final
// chunk of a line absorbs any rounding residue: the chunks always sum back
// to the original quantity, discount and total exactly.
type itemRemainder struct {
	item     SaleItem
	quantity int64
	discount decimal.Decimal
	total    decimal.Decimal
}

func newItemRemainder(item SaleItem) *itemRemainder {
	return &itemRemainder{
		item:     item,
		quantity: item.Quantity,
		discount: item.Discount,
		total:    item.LineTotal,
	}
}

// take carves units off the line, pro-rating discount and total, rounding
// intermediate chunks to 2 decimals. The last chunk takes the remainders.
func (r *itemRemainder) take(units int64) SubBillItem {
	var chunkDiscount, chunkTotal decimal.Decimal
	if units >= r.quantity {
		units = r.quantity
		chunkDiscount = r.discount
		chunkTotal = r.total
	} else {
		fraction := decimal.NewFromInt(units).Div(decimal.NewFromInt(r.item.Quantity))
		chunkDiscount = r.item.Discount.Mul(fraction).Round(2)
		chunkTotal = r.item.NetUnitPrice().Mul(decimal.NewFromInt(units)).Round(2)
		if chunkDiscount.GreaterThan(r.discount) {
			chunkDiscount = r.discount
		}
		if chunkTotal.GreaterThan(r.total) {
			chunkTotal = r.total
		}
	}

	r.quantity -= units
	r.discount = r.discount.Sub(chunkDiscount)
	r.total = r.total.Sub(chunkTotal)

	return SubBillItem{
		ProductID:   r.item.ProductID,
		ProductName: r.item.ProductName,
		Quantity:    units,
		UnitPrice:   r.item.UnitPrice,
		Discount:    chunkDiscount,
		LineTotal:   chunkTotal,
	}
}

func (r *itemRemainder) exhausted() bool {
	return r.quantity == 0
}

// SplitByValue partitions sale lines into sub-bills whose totals stay under
// the currency ceiling. Items are walked in their original order; each step
// places floor(remainingCapacity / netUnitPrice) whole units, taking at
// least one unit into an empty bill so progress is guaranteed even when a
// single unit exceeds the ceiling.
func SplitByValue(items []SaleItem, payment PaymentSplit, ceiling decimal.Decimal) ([]SubBill, error) {
	if !ceiling.IsPositive() {
		return nil, shared.NewValidationError("Value ceiling must be positive")
	}
	if len(items) == 0 {
		return nil, shared.NewValidationError("At least one item is required")
	}

	bills := make([]SubBill, 0, 2)
	current := newSubBill(1)
	capacity := ceiling

	closeBill := func() {
		bills = append(bills, current)
		current = newSubBill(len(bills) + 1)
		capacity = ceiling
	}

	for _, item := range items {
		rem := newItemRemainder(item)
		netUnit := item.NetUnitPrice()

		for !rem.exhausted() {
			var fit int64
			if netUnit.IsZero() {
				fit = rem.quantity
			} else {
				fit = capacity.Div(netUnit).IntPart()
			}

			if fit < 1 {
				if len(current.Items) > 0 {
					closeBill()
					continue
				}
				// A single unit is pricier than the ceiling; it still has
				// to go somewhere.
				fit = 1
			}
			if fit > rem.quantity {
				fit = rem.quantity
			}

			chunk := rem.take(fit)
			current.addItem(chunk)
			capacity = capacity.Sub(chunk.LineTotal)

			if !capacity.IsPositive() && !rem.exhausted() {
				closeBill()
			}
		}
	}

	if len(current.Items) > 0 {
		bills = append(bills, current)
	}

	distributePayments(bills, payment)
	return bills, nil
}

// SplitByVolume partitions sale lines into sub-bills whose physical volume
// stays under the ceiling, using first-fit-decreasing: lines are sorted by
// descending per-unit volume, then each remaining quantity tries every open
// bill in order and places as many units as fit. When no bill can take a
// unit, a new bill is opened sized to take at least one, so a unit larger
// than the ceiling still ships alone as the single overflow case.
func SplitByVolume(items []SaleItem, payment PaymentSplit, ceilingML int64) ([]SubBill, error) {
	if ceilingML <= 0 {
		return nil, shared.NewValidationError("Volume ceiling must be positive")
	}
	if len(items) == 0 {
		return nil, shared.NewValidationError("At least one item is required")
	}

	ordered := make([]SaleItem, len(items))
	copy(ordered, items)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].VolumeML > ordered[j].VolumeML
	})

	bills := make([]SubBill, 0, 2)
	remaining := make([]int64, 0, 2) // per-bill remaining volume capacity

	for _, item := range ordered {
		rem := newItemRemainder(item)

		for !rem.exhausted() {
			placed := false
			for idx := range bills {
				var fit int64
				if item.VolumeML == 0 {
					fit = rem.quantity
				} else {
					fit = remaining[idx] / item.VolumeML
				}
				if fit < 1 {
					continue
				}
				if fit > rem.quantity {
					fit = rem.quantity
				}
				chunk := rem.take(fit)
				bills[idx].addItem(chunk)
				bills[idx].VolumeML += fit * item.VolumeML
				remaining[idx] -= fit * item.VolumeML
				placed = true
				break
			}
			if placed {
				continue
			}

			bill := newSubBill(len(bills) + 1)
			var fit int64
			if item.VolumeML == 0 {
				fit = rem.quantity
			} else {
				fit = ceilingML / item.VolumeML
				if fit < 1 {
					fit = 1
				}
			}
			if fit > rem.quantity {
				fit = rem.quantity
			}
			chunk := rem.take(fit)
			bill.addItem(chunk)
			bill.VolumeML = fit * item.VolumeML
			bills = append(bills, bill)
			remaining = append(remaining, ceilingML-fit*item.VolumeML)
		}
	}

	distributePayments(bills, payment)
	return bills, nil
}

// distributePayments spreads cash/online/credit across the bills
// proportionally to each bill's share of total value, rounded to 2 decimals,
// with the last bill absorbing the residue so the parts always sum exactly
// to the originals.
func distributePayments(bills []SubBill, payment PaymentSplit) {
	if len(bills) == 0 {
		return
	}

	grandTotal := decimal.Zero
	for idx := range bills {
		grandTotal = grandTotal.Add(bills[idx].TotalAmount)
	}

	assignedCash := decimal.Zero
	assignedOnline := decimal.Zero
	assignedCredit := decimal.Zero

	for idx := range bills {
		if idx == len(bills)-1 {
			bills[idx].CashAmount = payment.Cash.Sub(assignedCash)
			bills[idx].OnlineAmount = payment.Online.Sub(assignedOnline)
			bills[idx].CreditAmount = payment.Credit.Sub(assignedCredit)
			break
		}

		var share decimal.Decimal
		if grandTotal.IsPositive() {
			share = bills[idx].TotalAmount.Div(grandTotal)
		}
		bills[idx].CashAmount = payment.Cash.Mul(share).Round(2)
		bills[idx].OnlineAmount = payment.Online.Mul(share).Round(2)
		bills[idx].CreditAmount = payment.Credit.Mul(share).Round(2)

		assignedCash = assignedCash.Add(bills[idx].CashAmount)
		assignedOnline = assignedOnline.Add(bills[idx].OnlineAmount)
		assignedCredit = assignedCredit.Add(bills[idx].CreditAmount)
	}
}
