package models

import (
	"github.com/retailbooks/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product aggregate root.
type ProductModel struct {
	AggregateModel
	Name     string               `gorm:"type:varchar(200);not null;index"`
	Barcode  string               `gorm:"type:varchar(100);index"`
	UnitCost decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Prices   catalog.BranchPrices `gorm:"type:jsonb;not null;default:'{}'"`
	Active   bool                 `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	product := &catalog.Product{
		Name:     m.Name,
		Barcode:  m.Barcode,
		UnitCost: m.UnitCost,
		Prices:   m.Prices,
		Active:   m.Active,
	}
	m.PopulateAggregateRoot(&product.BaseAggregateRoot)
	return product
}

// FromDomain populates the persistence model from a domain Product
func (m *ProductModel) FromDomain(product *catalog.Product) {
	m.FromDomainAggregateRoot(product.BaseAggregateRoot)
	m.Name = product.Name
	m.Barcode = product.Barcode
	m.UnitCost = product.UnitCost
	m.Prices = product.Prices
	m.Active = product.Active
}

// ProductModelFromDomain creates a new persistence model from a domain Product
func ProductModelFromDomain(product *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(product)
	return m
}
