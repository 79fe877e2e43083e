package models

import (
	"gorm.io/gorm"

	"github.com/retailbooks/backend/internal/domain/shared/valueobject"
	"github.com/retailbooks/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// SaleModel is the persistence model for the Sale aggregate root.
// Line items and payment splits are stored inline as JSONB: they have
// no identity outside their sale and are always read together with it.
type SaleModel struct {
	AggregateModel
	Date         valueobject.Date    `gorm:"type:date;not null;index:idx_sales_date_branch,priority:1"`
	CustomerName string              `gorm:"type:varchar(200)"`
	Total        decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	Branch       valueobject.Branch  `gorm:"type:varchar(20);not null;index:idx_sales_date_branch,priority:2"`
	Status       trade.SaleStatus    `gorm:"type:varchar(20);not null;index"`
	Items        trade.SaleItems     `gorm:"type:jsonb;not null;default:'[]'"`
	Payments     trade.PaymentSplits `gorm:"type:jsonb;not null;default:'[]'"`
	CashReceived *decimal.Decimal    `gorm:"type:decimal(18,4)"`
	ChangeAmount *decimal.Decimal    `gorm:"type:decimal(18,4)"`
	CancelReason string              `gorm:"type:varchar(500)"`
	DeletedAt    gorm.DeletedAt      `gorm:"index"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts the persistence model to a domain Sale
func (m *SaleModel) ToDomain() *trade.Sale {
	sale := &trade.Sale{
		Date:         m.Date,
		CustomerName: m.CustomerName,
		Total:        m.Total,
		Branch:       m.Branch,
		Status:       m.Status,
		Items:        m.Items,
		Payments:     m.Payments,
		CashReceived: m.CashReceived,
		ChangeAmount: m.ChangeAmount,
		CancelReason: m.CancelReason,
	}
	m.PopulateAggregateRoot(&sale.BaseAggregateRoot)
	return sale
}

// FromDomain populates the persistence model from a domain Sale
func (m *SaleModel) FromDomain(sale *trade.Sale) {
	m.FromDomainAggregateRoot(sale.BaseAggregateRoot)
	m.Date = sale.Date
	m.CustomerName = sale.CustomerName
	m.Total = sale.Total
	m.Branch = sale.Branch
	m.Status = sale.Status
	m.Items = sale.Items
	m.Payments = sale.Payments
	m.CashReceived = sale.CashReceived
	m.ChangeAmount = sale.ChangeAmount
	m.CancelReason = sale.CancelReason
}

// SaleModelFromDomain creates a new persistence model from a domain Sale
func SaleModelFromDomain(sale *trade.Sale) *SaleModel {
	m := &SaleModel{}
	m.FromDomain(sale)
	return m
}
