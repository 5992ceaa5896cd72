package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailops/backend/internal/domain/trade"
)

// SaleModel is the persistence model for the Sale aggregate.
type SaleModel struct {
	TenantAggregateModel
	SaleNumber     string           `gorm:"type:varchar(50);not null;uniqueIndex:idx_sale_tenant_number,priority:2"`
	Kind           trade.SaleKind   `gorm:"type:varchar(30);not null;default:'ORDINARY';index"`
	Status         trade.SaleStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	CustomerID     *uuid.UUID       `gorm:"type:uuid;index"`
	SaleDate       time.Time        `gorm:"not null;index"`
	SubtotalAmount decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	ItemDiscount   decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	BillDiscount   decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount    decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	CashAmount     decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	OnlineAmount   decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	PaidAmount     decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	DueAmount      decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	IsReturned     bool             `gorm:"not null;default:false"`
	Items          []SaleItemModel  `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	SubBills       []SubBillModel   `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// SaleItemModel is one line of a sale.
type SaleItemModel struct {
	ID          uuid.UUID             `gorm:"type:uuid;primary_key"`
	SaleID      uuid.UUID             `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID             `gorm:"type:uuid;not null;index"`
	ProductName string                `gorm:"type:varchar(200);not null"`
	Quantity    int64                 `gorm:"not null"`
	UnitPrice   decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	Discount    decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	LineTotal   decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	VolumeML    int64                 `gorm:"not null;default:0"`
	Allocations []ItemAllocationModel `gorm:"foreignKey:SaleItemID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (SaleItemModel) TableName() string {
	return "sale_items"
}

// ItemAllocationModel records which vendor supplied how much of one line.
type ItemAllocationModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	SaleItemID uuid.UUID `gorm:"type:uuid;not null;index"`
	VendorID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity   int64     `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ItemAllocationModel) TableName() string {
	return "sale_item_allocations"
}

// SubBillModel is one capacity-bounded partition of a sale.
type SubBillModel struct {
	ID           uuid.UUID          `gorm:"type:uuid;primary_key"`
	SaleID       uuid.UUID          `gorm:"type:uuid;not null;index"`
	Sequence     int                `gorm:"not null"`
	TotalAmount  decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	VolumeML     int64              `gorm:"not null;default:0"`
	CashAmount   decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	OnlineAmount decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	CreditAmount decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	Items        []SubBillItemModel `gorm:"foreignKey:SubBillID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (SubBillModel) TableName() string {
	return "sale_sub_bills"
}

// SubBillItemModel is a partial sale line carried by one sub-bill.
type SubBillItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	SubBillID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    int64           `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Discount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (SubBillItemModel) TableName() string {
	return "sale_sub_bill_items"
}

// ToDomain converts the persistence model to a domain Sale.
func (m *SaleModel) ToDomain() *trade.Sale {
	items := make([]trade.SaleItem, 0, len(m.Items))
	for _, im := range m.Items {
		allocations := make([]trade.ItemAllocation, 0, len(im.Allocations))
		for _, am := range im.Allocations {
			allocations = append(allocations, trade.ItemAllocation{
				ID:         am.ID,
				SaleItemID: am.SaleItemID,
				VendorID:   am.VendorID,
				Quantity:   am.Quantity,
			})
		}
		items = append(items, trade.SaleItem{
			ID:          im.ID,
			SaleID:      im.SaleID,
			ProductID:   im.ProductID,
			ProductName: im.ProductName,
			Quantity:    im.Quantity,
			UnitPrice:   im.UnitPrice,
			Discount:    im.Discount,
			LineTotal:   im.LineTotal,
			VolumeML:    im.VolumeML,
			Allocations: allocations,
		})
	}

	bills := make([]trade.SubBill, 0, len(m.SubBills))
	for _, bm := range m.SubBills {
		billItems := make([]trade.SubBillItem, 0, len(bm.Items))
		for _, bim := range bm.Items {
			billItems = append(billItems, trade.SubBillItem{
				ID:          bim.ID,
				SubBillID:   bim.SubBillID,
				ProductID:   bim.ProductID,
				ProductName: bim.ProductName,
				Quantity:    bim.Quantity,
				UnitPrice:   bim.UnitPrice,
				Discount:    bim.Discount,
				LineTotal:   bim.LineTotal,
			})
		}
		bills = append(bills, trade.SubBill{
			ID:           bm.ID,
			SaleID:       bm.SaleID,
			Sequence:     bm.Sequence,
			Items:        billItems,
			TotalAmount:  bm.TotalAmount,
			VolumeML:     bm.VolumeML,
			CashAmount:   bm.CashAmount,
			OnlineAmount: bm.OnlineAmount,
			CreditAmount: bm.CreditAmount,
		})
	}

	return &trade.Sale{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		SaleNumber:          m.SaleNumber,
		Kind:                m.Kind,
		Status:              m.Status,
		CustomerID:          m.CustomerID,
		SaleDate:            m.SaleDate,
		Items:               items,
		SubBills:            bills,
		SubtotalAmount:      m.SubtotalAmount,
		ItemDiscount:        m.ItemDiscount,
		BillDiscount:        m.BillDiscount,
		TotalAmount:         m.TotalAmount,
		CashAmount:          m.CashAmount,
		OnlineAmount:        m.OnlineAmount,
		PaidAmount:          m.PaidAmount,
		DueAmount:           m.DueAmount,
		IsReturned:          m.IsReturned,
	}
}

// FromDomain populates the persistence model from a domain Sale.
func (m *SaleModel) FromDomain(s *trade.Sale) {
	m.FromDomainTenantAggregateRoot(s.TenantAggregateRoot)
	m.SaleNumber = s.SaleNumber
	m.Kind = s.Kind
	m.Status = s.Status
	m.CustomerID = s.CustomerID
	m.SaleDate = s.SaleDate
	m.SubtotalAmount = s.SubtotalAmount
	m.ItemDiscount = s.ItemDiscount
	m.BillDiscount = s.BillDiscount
	m.TotalAmount = s.TotalAmount
	m.CashAmount = s.CashAmount
	m.OnlineAmount = s.OnlineAmount
	m.PaidAmount = s.PaidAmount
	m.DueAmount = s.DueAmount
	m.IsReturned = s.IsReturned

	m.Items = make([]SaleItemModel, 0, len(s.Items))
	for _, item := range s.Items {
		allocations := make([]ItemAllocationModel, 0, len(item.Allocations))
		for _, a := range item.Allocations {
			allocations = append(allocations, ItemAllocationModel{
				ID:         a.ID,
				SaleItemID: a.SaleItemID,
				VendorID:   a.VendorID,
				Quantity:   a.Quantity,
			})
		}
		m.Items = append(m.Items, SaleItemModel{
			ID:          item.ID,
			SaleID:      s.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Discount:    item.Discount,
			LineTotal:   item.LineTotal,
			VolumeML:    item.VolumeML,
			Allocations: allocations,
		})
	}

	m.SubBills = make([]SubBillModel, 0, len(s.SubBills))
	for _, bill := range s.SubBills {
		billItems := make([]SubBillItemModel, 0, len(bill.Items))
		for _, item := range bill.Items {
			billItems = append(billItems, SubBillItemModel{
				ID:          item.ID,
				SubBillID:   bill.ID,
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				Discount:    item.Discount,
				LineTotal:   item.LineTotal,
			})
		}
		m.SubBills = append(m.SubBills, SubBillModel{
			ID:           bill.ID,
			SaleID:       s.ID,
			Sequence:     bill.Sequence,
			TotalAmount:  bill.TotalAmount,
			VolumeML:     bill.VolumeML,
			CashAmount:   bill.CashAmount,
			OnlineAmount: bill.OnlineAmount,
			CreditAmount: bill.CreditAmount,
			Items:        billItems,
		})
	}
}

// SaleModelFromDomain creates a new persistence model from a domain Sale.
func SaleModelFromDomain(s *trade.Sale) *SaleModel {
	m := &SaleModel{}
	m.FromDomain(s)
	return m
}

// PurchaseModel is the persistence model for the Purchase aggregate.
type PurchaseModel struct {
	TenantAggregateModel
	PurchaseNumber string              `gorm:"type:varchar(50);not null;uniqueIndex:idx_purchase_tenant_number,priority:2"`
	VendorID       uuid.UUID           `gorm:"type:uuid;not null;index"`
	PurchaseDate   time.Time           `gorm:"not null;index"`
	TotalAmount    decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	PaidAmount     decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	DueAmount      decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	Items          []PurchaseItemModel `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (PurchaseModel) TableName() string {
	return "purchases"
}

// PurchaseItemModel is one line of a purchase.
type PurchaseItemModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key"`
	PurchaseID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName    string          `gorm:"type:varchar(200);not null"`
	Cases          int64           `gorm:"not null;default:0"`
	Bottles        int64           `gorm:"not null;default:0"`
	BottlesPerCase int64           `gorm:"not null;default:1"`
	Quantity       int64           `gorm:"not null"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	LineTotal      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (PurchaseItemModel) TableName() string {
	return "purchase_items"
}

// ToDomain converts the persistence model to a domain Purchase.
func (m *PurchaseModel) ToDomain() *trade.Purchase {
	items := make([]trade.PurchaseItem, 0, len(m.Items))
	for _, im := range m.Items {
		items = append(items, trade.PurchaseItem{
			ID:             im.ID,
			PurchaseID:     im.PurchaseID,
			ProductID:      im.ProductID,
			ProductName:    im.ProductName,
			Cases:          im.Cases,
			Bottles:        im.Bottles,
			BottlesPerCase: im.BottlesPerCase,
			Quantity:       im.Quantity,
			UnitPrice:      im.UnitPrice,
			LineTotal:      im.LineTotal,
		})
	}
	return &trade.Purchase{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		PurchaseNumber:      m.PurchaseNumber,
		VendorID:            m.VendorID,
		PurchaseDate:        m.PurchaseDate,
		Items:               items,
		TotalAmount:         m.TotalAmount,
		PaidAmount:          m.PaidAmount,
		DueAmount:           m.DueAmount,
	}
}

// FromDomain populates the persistence model from a domain Purchase.
func (m *PurchaseModel) FromDomain(p *trade.Purchase) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.PurchaseNumber = p.PurchaseNumber
	m.VendorID = p.VendorID
	m.PurchaseDate = p.PurchaseDate
	m.TotalAmount = p.TotalAmount
	m.PaidAmount = p.PaidAmount
	m.DueAmount = p.DueAmount
	m.Items = make([]PurchaseItemModel, 0, len(p.Items))
	for _, item := range p.Items {
		m.Items = append(m.Items, PurchaseItemModel{
			ID:             item.ID,
			PurchaseID:     p.ID,
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			Cases:          item.Cases,
			Bottles:        item.Bottles,
			BottlesPerCase: item.BottlesPerCase,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			LineTotal:      item.LineTotal,
		})
	}
}

// PurchaseModelFromDomain creates a new persistence model from a domain Purchase.
func PurchaseModelFromDomain(p *trade.Purchase) *PurchaseModel {
	m := &PurchaseModel{}
	m.FromDomain(p)
	return m
}
