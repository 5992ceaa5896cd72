package settlement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailops/backend/internal/domain/finance"
	"github.com/retailops/backend/internal/domain/inventory"
	"github.com/retailops/backend/internal/domain/trade"
)

// ===================== Requests =====================

// SaleItemRequest is one requested sale line. UnitPrice overrides the
// product master price when set; Discount is an absolute currency amount.
type SaleItemRequest struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  int64            `json:"quantity" binding:"required,gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	Discount  decimal.Decimal  `json:"discount"`
}

// CreateSaleRequest carries one customer transaction to settle. A nil
// CustomerID is a walk-in sale.
type CreateSaleRequest struct {
	CustomerID   *uuid.UUID        `json:"customer_id,omitempty"`
	SaleDate     *time.Time        `json:"sale_date,omitempty"`
	Items        []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
	BillDiscount decimal.Decimal   `json:"bill_discount"`
	CashAmount   decimal.Decimal   `json:"cash_amount"`
	OnlineAmount decimal.Decimal   `json:"online_amount"`
}

// PurchaseItemRequest is one requested purchase line in case+bottle units
type PurchaseItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Cases     int64           `json:"cases" binding:"gte=0"`
	Bottles   int64           `json:"bottles" binding:"gte=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreatePurchaseRequest carries one vendor purchase to settle
type CreatePurchaseRequest struct {
	VendorID     uuid.UUID             `json:"vendor_id" binding:"required"`
	PurchaseDate *time.Time            `json:"purchase_date,omitempty"`
	Items        []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
	PaidAmount   decimal.Decimal       `json:"paid_amount"`
}

// ClosingCountRequest is one product's physical count for reconciliation.
// Morning/purchased/sold figures are supplied by the caller for the snapshot;
// the engine recomputes the stock difference independently.
type ClosingCountRequest struct {
	ProductID     uuid.UUID `json:"product_id" binding:"required"`
	MorningStock  int64     `json:"morning_stock"`
	Purchased     int64     `json:"purchased"`
	Sold          int64     `json:"sold"`
	PhysicalCount int64     `json:"physical_count" binding:"gte=0"`
}

// ReconcileRequest carries one reconciliation run
type ReconcileRequest struct {
	ClosingDate  *time.Time            `json:"closing_date,omitempty"`
	Counts       []ClosingCountRequest `json:"counts" binding:"required,min=1,dive"`
	CashAmount   decimal.Decimal       `json:"cash_amount"`
	OnlineAmount decimal.Decimal       `json:"online_amount"`
}

// CollectRequest carries one credit payment against a customer's balance
type CollectRequest struct {
	CustomerID   uuid.UUID       `json:"customer_id" binding:"required"`
	CashAmount   decimal.Decimal `json:"cash_amount"`
	OnlineAmount decimal.Decimal `json:"online_amount"`
	CreditDate   *time.Time      `json:"credit_date,omitempty"`
}

// PostEntryRequest carries one manual ledger posting
type PostEntryRequest struct {
	EntityType  string          `json:"entity_type" binding:"required,oneof=CUSTOMER VENDOR"`
	EntityID    uuid.UUID       `json:"entity_id" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// ===================== Responses =====================

// VendorAllocationResponse records one vendor's share of a sale line
type VendorAllocationResponse struct {
	VendorID uuid.UUID `json:"vendor_id"`
	Quantity int64     `json:"quantity"`
}

// SaleItemResponse is one settled sale line
type SaleItemResponse struct {
	ID          uuid.UUID                  `json:"id"`
	ProductID   uuid.UUID                  `json:"product_id"`
	ProductName string                     `json:"product_name"`
	Quantity    int64                      `json:"quantity"`
	UnitPrice   decimal.Decimal            `json:"unit_price"`
	Discount    decimal.Decimal            `json:"discount"`
	LineTotal   decimal.Decimal            `json:"line_total"`
	Allocations []VendorAllocationResponse `json:"vendor_allocations"`
}

// SubBillItemResponse is one partial line carried by a sub-bill
type SubBillItemResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// SubBillResponse is one capacity-bounded partition of a sale
type SubBillResponse struct {
	ID           uuid.UUID             `json:"id"`
	Sequence     int                   `json:"sequence"`
	TotalAmount  decimal.Decimal       `json:"total_amount"`
	VolumeML     int64                 `json:"volume_ml"`
	CashAmount   decimal.Decimal       `json:"cash_amount"`
	OnlineAmount decimal.Decimal       `json:"online_amount"`
	CreditAmount decimal.Decimal       `json:"credit_amount"`
	Items        []SubBillItemResponse `json:"items"`
}

// SaleResponse is the settled sale returned to the caller
type SaleResponse struct {
	ID             uuid.UUID          `json:"id"`
	SaleNumber     string             `json:"sale_number"`
	Kind           string             `json:"kind"`
	Status         string             `json:"status"`
	CustomerID     *uuid.UUID         `json:"customer_id,omitempty"`
	SaleDate       time.Time          `json:"sale_date"`
	SubtotalAmount decimal.Decimal    `json:"subtotal_amount"`
	ItemDiscount   decimal.Decimal    `json:"item_discount"`
	BillDiscount   decimal.Decimal    `json:"bill_discount"`
	TotalAmount    decimal.Decimal    `json:"total_amount"`
	CashAmount     decimal.Decimal    `json:"cash_amount"`
	OnlineAmount   decimal.Decimal    `json:"online_amount"`
	PaidAmount     decimal.Decimal    `json:"paid_amount"`
	DueAmount      decimal.Decimal    `json:"due_amount"`
	Items          []SaleItemResponse `json:"items"`
	SubBills       []SubBillResponse  `json:"sub_bills,omitempty"`
}

// PurchaseItemResponse is one settled purchase line
type PurchaseItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Cases       int64           `json:"cases"`
	Bottles     int64           `json:"bottles"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// PurchaseResponse is the settled purchase returned to the caller
type PurchaseResponse struct {
	ID             uuid.UUID              `json:"id"`
	PurchaseNumber string                 `json:"purchase_number"`
	VendorID       uuid.UUID              `json:"vendor_id"`
	PurchaseDate   time.Time              `json:"purchase_date"`
	TotalAmount    decimal.Decimal        `json:"total_amount"`
	PaidAmount     decimal.Decimal        `json:"paid_amount"`
	DueAmount      decimal.Decimal        `json:"due_amount"`
	Items          []PurchaseItemResponse `json:"items"`
}

// StockClosingLineResponse is one product's reconciliation figures
type StockClosingLineResponse struct {
	ProductID        uuid.UUID       `json:"product_id"`
	ProductName      string          `json:"product_name"`
	MorningStock     int64           `json:"morning_stock"`
	Purchased        int64           `json:"purchased"`
	Sold             int64           `json:"sold"`
	SystemStock      int64           `json:"system_stock"`
	PhysicalCount    int64           `json:"physical_count"`
	Discrepancy      int64           `json:"discrepancy"`
	DiscrepancyValue decimal.Decimal `json:"discrepancy_value"`
}

// ReconcileResponse is the result of one reconciliation run
type ReconcileResponse struct {
	StockClosingID        uuid.UUID                  `json:"stock_closing_id"`
	ClosingDate           time.Time                  `json:"closing_date"`
	TotalDiscrepancy      int64                      `json:"total_discrepancy"`
	TotalDiscrepancyValue decimal.Decimal            `json:"total_discrepancy_value"`
	Lines                 []StockClosingLineResponse `json:"lines"`
	Sale                  SaleResponse               `json:"sale"`
}

// CreditPaymentResponse is the created or cancelled credit payment
type CreditPaymentResponse struct {
	ID           uuid.UUID       `json:"id"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	CashAmount   decimal.Decimal `json:"cash_amount"`
	OnlineAmount decimal.Decimal `json:"online_amount"`
	Amount       decimal.Decimal `json:"amount"`
	Status       string          `json:"status"`
	CreditDate   time.Time       `json:"credit_date"`
	CancelledAt  *time.Time      `json:"cancelled_at,omitempty"`
}

// CashbookEntryResponse is one till movement
type CashbookEntryResponse struct {
	ID           uuid.UUID       `json:"id"`
	Direction    string          `json:"direction"`
	SourceType   string          `json:"source_type"`
	SourceID     uuid.UUID       `json:"source_id"`
	CashAmount   decimal.Decimal `json:"cash_amount"`
	OnlineAmount decimal.Decimal `json:"online_amount"`
	Amount       decimal.Decimal `json:"amount"`
	EntryDate    time.Time       `json:"entry_date"`
	Description  string          `json:"description"`
}

// LedgerEntryResponse is one ledger journal row
type LedgerEntryResponse struct {
	ID           uuid.UUID       `json:"id"`
	EntityType   string          `json:"entity_type"`
	EntityID     uuid.UUID       `json:"entity_id"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	Description  string          `json:"description"`
	PostedAt     time.Time       `json:"posted_at"`
}

// ===================== Converters =====================

// ToSaleResponse converts a sale aggregate to its response shape
func ToSaleResponse(sale *trade.Sale) SaleResponse {
	items := make([]SaleItemResponse, 0, len(sale.Items))
	for _, item := range sale.Items {
		allocations := make([]VendorAllocationResponse, 0, len(item.Allocations))
		for _, a := range item.Allocations {
			allocations = append(allocations, VendorAllocationResponse{
				VendorID: a.VendorID,
				Quantity: a.Quantity,
			})
		}
		items = append(items, SaleItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Discount:    item.Discount,
			LineTotal:   item.LineTotal,
			Allocations: allocations,
		})
	}

	bills := make([]SubBillResponse, 0, len(sale.SubBills))
	for _, bill := range sale.SubBills {
		billItems := make([]SubBillItemResponse, 0, len(bill.Items))
		for _, item := range bill.Items {
			billItems = append(billItems, SubBillItemResponse{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				Discount:  item.Discount,
				LineTotal: item.LineTotal,
			})
		}
		bills = append(bills, SubBillResponse{
			ID:           bill.ID,
			Sequence:     bill.Sequence,
			TotalAmount:  bill.TotalAmount,
			VolumeML:     bill.VolumeML,
			CashAmount:   bill.CashAmount,
			OnlineAmount: bill.OnlineAmount,
			CreditAmount: bill.CreditAmount,
			Items:        billItems,
		})
	}

	return SaleResponse{
		ID:             sale.ID,
		SaleNumber:     sale.SaleNumber,
		Kind:           sale.Kind.String(),
		Status:         sale.Status.String(),
		CustomerID:     sale.CustomerID,
		SaleDate:       sale.SaleDate,
		SubtotalAmount: sale.SubtotalAmount,
		ItemDiscount:   sale.ItemDiscount,
		BillDiscount:   sale.BillDiscount,
		TotalAmount:    sale.TotalAmount,
		CashAmount:     sale.CashAmount,
		OnlineAmount:   sale.OnlineAmount,
		PaidAmount:     sale.PaidAmount,
		DueAmount:      sale.DueAmount,
		Items:          items,
		SubBills:       bills,
	}
}

// ToPurchaseResponse converts a purchase aggregate to its response shape
func ToPurchaseResponse(purchase *trade.Purchase) PurchaseResponse {
	items := make([]PurchaseItemResponse, 0, len(purchase.Items))
	for _, item := range purchase.Items {
		items = append(items, PurchaseItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Cases:       item.Cases,
			Bottles:     item.Bottles,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
		})
	}
	return PurchaseResponse{
		ID:             purchase.ID,
		PurchaseNumber: purchase.PurchaseNumber,
		VendorID:       purchase.VendorID,
		PurchaseDate:   purchase.PurchaseDate,
		TotalAmount:    purchase.TotalAmount,
		PaidAmount:     purchase.PaidAmount,
		DueAmount:      purchase.DueAmount,
		Items:          items,
	}
}

// ToReconcileResponse converts a reconciliation snapshot and its sale
func ToReconcileResponse(closing *inventory.StockClosing, sale *trade.Sale) ReconcileResponse {
	lines := make([]StockClosingLineResponse, 0, len(closing.Lines))
	for _, line := range closing.Lines {
		lines = append(lines, StockClosingLineResponse{
			ProductID:        line.ProductID,
			ProductName:      line.ProductName,
			MorningStock:     line.MorningStock,
			Purchased:        line.Purchased,
			Sold:             line.Sold,
			SystemStock:      line.SystemStock,
			PhysicalCount:    line.PhysicalCount,
			Discrepancy:      line.Discrepancy,
			DiscrepancyValue: line.DiscrepancyValue,
		})
	}
	return ReconcileResponse{
		StockClosingID:        closing.ID,
		ClosingDate:           closing.ClosingDate,
		TotalDiscrepancy:      closing.TotalDiscrepancy,
		TotalDiscrepancyValue: closing.TotalDiscrepancyValue,
		Lines:                 lines,
		Sale:                  ToSaleResponse(sale),
	}
}

// ToCreditPaymentResponse converts a credit payment aggregate
func ToCreditPaymentResponse(payment *finance.CreditPayment) CreditPaymentResponse {
	return CreditPaymentResponse{
		ID:           payment.ID,
		CustomerID:   payment.CustomerID,
		CashAmount:   payment.CashAmount,
		OnlineAmount: payment.OnlineAmount,
		Amount:       payment.Amount(),
		Status:       payment.Status.String(),
		CreditDate:   payment.CreditDate,
		CancelledAt:  payment.CancelledAt,
	}
}

// ToLedgerEntryResponse converts a ledger entry
func ToLedgerEntryResponse(entry *finance.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:           entry.ID,
		EntityType:   entry.EntityType.String(),
		EntityID:     entry.EntityID,
		Debit:        entry.Debit,
		Credit:       entry.Credit,
		BalanceAfter: entry.BalanceAfter,
		Description:  entry.Description,
		PostedAt:     entry.PostedAt,
	}
}

// ToCashbookEntryResponses converts a day's till movements
func ToCashbookEntryResponses(entries []*finance.CashbookEntry) []CashbookEntryResponse {
	responses := make([]CashbookEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, CashbookEntryResponse{
			ID:           entry.ID,
			Direction:    entry.Direction.String(),
			SourceType:   string(entry.SourceType),
			SourceID:     entry.SourceID,
			CashAmount:   entry.CashAmount,
			OnlineAmount: entry.OnlineAmount,
			Amount:       entry.Amount(),
			EntryDate:    entry.EntryDate,
			Description:  entry.Description,
		})
	}
	return responses
}

// ToLedgerEntryResponses converts a ledger chain
func ToLedgerEntryResponses(entries []*finance.LedgerEntry) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, ToLedgerEntryResponse(entry))
	}
	return responses
}
