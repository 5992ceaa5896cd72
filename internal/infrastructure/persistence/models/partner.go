package models

import (
	"github.com/shopspring/decimal"

	"github.com/retailops/backend/internal/domain/partner"
)

// CustomerModel is the persistence model for the Customer aggregate.
type CustomerModel struct {
	TenantAggregateModel
	Code                  string                 `gorm:"type:varchar(50);not null;uniqueIndex:idx_customer_tenant_code,priority:2"`
	Name                  string                 `gorm:"type:varchar(200);not null"`
	Phone                 string                 `gorm:"type:varchar(50);index"`
	CreditLimit           decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	OutstandingBalance    decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	MaxDiscountPercentage decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	Status                partner.CustomerStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer.
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		TenantAggregateRoot:   m.ToDomainTenantAggregateRoot(),
		Code:                  m.Code,
		Name:                  m.Name,
		Phone:                 m.Phone,
		CreditLimit:           m.CreditLimit,
		OutstandingBalance:    m.OutstandingBalance,
		MaxDiscountPercentage: m.MaxDiscountPercentage,
		Status:                m.Status,
	}
}

// FromDomain populates the persistence model from a domain Customer.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.Code = c.Code
	m.Name = c.Name
	m.Phone = c.Phone
	m.CreditLimit = c.CreditLimit
	m.OutstandingBalance = c.OutstandingBalance
	m.MaxDiscountPercentage = c.MaxDiscountPercentage
	m.Status = c.Status
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

// VendorModel is the persistence model for the Vendor aggregate.
type VendorModel struct {
	TenantAggregateModel
	Code     string               `gorm:"type:varchar(50);not null;uniqueIndex:idx_vendor_tenant_code,priority:2"`
	Name     string               `gorm:"type:varchar(200);not null"`
	Priority int                  `gorm:"not null;default:0;index"`
	Status   partner.VendorStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
}

// TableName returns the table name for GORM
func (VendorModel) TableName() string {
	return "vendors"
}

// ToDomain converts the persistence model to a domain Vendor.
func (m *VendorModel) ToDomain() *partner.Vendor {
	return &partner.Vendor{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Code:                m.Code,
		Name:                m.Name,
		Priority:            m.Priority,
		Status:              m.Status,
	}
}

// FromDomain populates the persistence model from a domain Vendor.
func (m *VendorModel) FromDomain(v *partner.Vendor) {
	m.FromDomainTenantAggregateRoot(v.TenantAggregateRoot)
	m.Code = v.Code
	m.Name = v.Name
	m.Priority = v.Priority
	m.Status = v.Status
}

// VendorModelFromDomain creates a new persistence model from a domain Vendor.
func VendorModelFromDomain(v *partner.Vendor) *VendorModel {
	m := &VendorModel{}
	m.FromDomain(v)
	return m
}
