package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/retailops/backend/internal/domain/catalog"
)

// ProductModel is the persistence model for the Product aggregate.
type ProductModel struct {
	TenantAggregateModel
	Code             string                `gorm:"type:varchar(50);not null;uniqueIndex:idx_product_tenant_code,priority:2"`
	Name             string                `gorm:"type:varchar(200);not null"`
	PricePerUnit     decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	VolumeML         int64                 `gorm:"not null;default:0"`
	BottlesPerCase   int64                 `gorm:"not null;default:1"`
	CurrentStock     int64                 `gorm:"not null;default:0"`
	MorningStock     int64                 `gorm:"not null;default:0"`
	MorningStockDate time.Time             `gorm:"index"`
	Status           catalog.ProductStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Code:                m.Code,
		Name:                m.Name,
		PricePerUnit:        m.PricePerUnit,
		VolumeML:            m.VolumeML,
		BottlesPerCase:      m.BottlesPerCase,
		CurrentStock:        m.CurrentStock,
		MorningStock:        m.MorningStock,
		MorningStockDate:    m.MorningStockDate,
		Status:              m.Status,
	}
}

// FromDomain populates the persistence model from a domain Product.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.Code = p.Code
	m.Name = p.Name
	m.PricePerUnit = p.PricePerUnit
	m.VolumeML = p.VolumeML
	m.BottlesPerCase = p.BottlesPerCase
	m.CurrentStock = p.CurrentStock
	m.MorningStock = p.MorningStock
	m.MorningStockDate = p.MorningStockDate
	m.Status = p.Status
}

// ProductModelFromDomain creates a new persistence model from a domain Product.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
