package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailops/backend/internal/domain/inventory"
)

// VendorStockModel is the persistence model for a (vendor, product) stock row.
type VendorStockModel struct {
	TenantAggregateModel
	VendorID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_vendor_stock_pair,priority:2"`
	ProductID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_vendor_stock_pair,priority:3;index"`
	CurrentStock      int64           `gorm:"not null;default:0;check:current_stock >= 0"`
	LastPurchasePrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	LastPurchaseDate  *time.Time
}

// TableName returns the table name for GORM
func (VendorStockModel) TableName() string {
	return "vendor_stocks"
}

// ToDomain converts the persistence model to a domain VendorStock.
func (m *VendorStockModel) ToDomain() *inventory.VendorStock {
	return &inventory.VendorStock{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		VendorID:            m.VendorID,
		ProductID:           m.ProductID,
		CurrentStock:        m.CurrentStock,
		LastPurchasePrice:   m.LastPurchasePrice,
		LastPurchaseDate:    m.LastPurchaseDate,
	}
}

// FromDomain populates the persistence model from a domain VendorStock.
func (m *VendorStockModel) FromDomain(vs *inventory.VendorStock) {
	m.FromDomainTenantAggregateRoot(vs.TenantAggregateRoot)
	m.VendorID = vs.VendorID
	m.ProductID = vs.ProductID
	m.CurrentStock = vs.CurrentStock
	m.LastPurchasePrice = vs.LastPurchasePrice
	m.LastPurchaseDate = vs.LastPurchaseDate
}

// VendorStockModelFromDomain creates a new persistence model from a domain VendorStock.
func VendorStockModelFromDomain(vs *inventory.VendorStock) *VendorStockModel {
	m := &VendorStockModel{}
	m.FromDomain(vs)
	return m
}

// StockClosingModel is the persistence model for a reconciliation snapshot.
type StockClosingModel struct {
	TenantAggregateModel
	ClosingDate           time.Time               `gorm:"not null;index"`
	SaleID                uuid.UUID               `gorm:"type:uuid;not null;index"`
	TotalDiscrepancy      int64                   `gorm:"not null;default:0"`
	TotalDiscrepancyValue decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	Lines                 []StockClosingLineModel `gorm:"foreignKey:StockClosingID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (StockClosingModel) TableName() string {
	return "stock_closings"
}

// StockClosingLineModel is one product's figures within a closing snapshot.
type StockClosingLineModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	StockClosingID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName      string          `gorm:"type:varchar(200);not null"`
	MorningStock     int64           `gorm:"not null;default:0"`
	Purchased        int64           `gorm:"not null;default:0"`
	Sold             int64           `gorm:"not null;default:0"`
	SystemStock      int64           `gorm:"not null;default:0"`
	PhysicalCount    int64           `gorm:"not null;default:0"`
	Discrepancy      int64           `gorm:"not null;default:0"`
	DiscrepancyValue decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (StockClosingLineModel) TableName() string {
	return "stock_closing_lines"
}

// ToDomain converts the persistence model to a domain StockClosing.
func (m *StockClosingModel) ToDomain() *inventory.StockClosing {
	lines := make([]inventory.StockClosingLine, 0, len(m.Lines))
	for _, lm := range m.Lines {
		lines = append(lines, inventory.StockClosingLine{
			ID:               lm.ID,
			StockClosingID:   lm.StockClosingID,
			ProductID:        lm.ProductID,
			ProductName:      lm.ProductName,
			MorningStock:     lm.MorningStock,
			Purchased:        lm.Purchased,
			Sold:             lm.Sold,
			SystemStock:      lm.SystemStock,
			PhysicalCount:    lm.PhysicalCount,
			Discrepancy:      lm.Discrepancy,
			DiscrepancyValue: lm.DiscrepancyValue,
		})
	}
	return &inventory.StockClosing{
		TenantAggregateRoot:   m.ToDomainTenantAggregateRoot(),
		ClosingDate:           m.ClosingDate,
		SaleID:                m.SaleID,
		TotalDiscrepancy:      m.TotalDiscrepancy,
		TotalDiscrepancyValue: m.TotalDiscrepancyValue,
		Lines:                 lines,
	}
}

// FromDomain populates the persistence model from a domain StockClosing.
func (m *StockClosingModel) FromDomain(sc *inventory.StockClosing) {
	m.FromDomainTenantAggregateRoot(sc.TenantAggregateRoot)
	m.ClosingDate = sc.ClosingDate
	m.SaleID = sc.SaleID
	m.TotalDiscrepancy = sc.TotalDiscrepancy
	m.TotalDiscrepancyValue = sc.TotalDiscrepancyValue
	m.Lines = make([]StockClosingLineModel, 0, len(sc.Lines))
	for _, line := range sc.Lines {
		m.Lines = append(m.Lines, StockClosingLineModel{
			ID:               line.ID,
			StockClosingID:   sc.ID,
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
}

// StockClosingModelFromDomain creates a new persistence model from a domain StockClosing.
func StockClosingModelFromDomain(sc *inventory.StockClosing) *StockClosingModel {
	m := &StockClosingModel{}
	m.FromDomain(sc)
	return m
}
