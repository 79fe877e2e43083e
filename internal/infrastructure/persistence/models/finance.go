package models

import (
	"github.com/google/uuid"
	"github.com/retailbooks/backend/internal/domain/finance"
	"github.com/retailbooks/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CashClosingModel is the persistence model for the CashClosing aggregate root.
// A day can be closed once per branch; the unique index is the hard backstop
// behind the application-level existence check.
type CashClosingModel struct {
	AggregateModel
	Date             valueobject.Date     `gorm:"type:date;not null;uniqueIndex:idx_closings_date_branch,priority:1"`
	Branch           valueobject.Branch   `gorm:"type:varchar(20);not null;uniqueIndex:idx_closings_date_branch,priority:2"`
	OpeningBalance   decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	TotalIncome      decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	TotalExpense     decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	TotalsByMethod   finance.MethodTotals `gorm:"type:jsonb;not null;default:'{}'"`
	ExpectedInDrawer decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	CashInDrawer     decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Difference       decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Notes            string               `gorm:"type:text"`
	ClosedBy         uuid.UUID            `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (CashClosingModel) TableName() string {
	return "cash_closings"
}

// ToDomain converts the persistence model to a domain CashClosing
func (m *CashClosingModel) ToDomain() *finance.CashClosing {
	closing := &finance.CashClosing{
		Date:             m.Date,
		Branch:           m.Branch,
		OpeningBalance:   m.OpeningBalance,
		TotalIncome:      m.TotalIncome,
		TotalExpense:     m.TotalExpense,
		TotalsByMethod:   m.TotalsByMethod,
		ExpectedInDrawer: m.ExpectedInDrawer,
		CashInDrawer:     m.CashInDrawer,
		Difference:       m.Difference,
		Notes:            m.Notes,
		ClosedBy:         m.ClosedBy,
	}
	m.PopulateAggregateRoot(&closing.BaseAggregateRoot)
	return closing
}

// FromDomain populates the persistence model from a domain CashClosing
func (m *CashClosingModel) FromDomain(closing *finance.CashClosing) {
	m.FromDomainAggregateRoot(closing.BaseAggregateRoot)
	m.Date = closing.Date
	m.Branch = closing.Branch
	m.OpeningBalance = closing.OpeningBalance
	m.TotalIncome = closing.TotalIncome
	m.TotalExpense = closing.TotalExpense
	m.TotalsByMethod = closing.TotalsByMethod
	m.ExpectedInDrawer = closing.ExpectedInDrawer
	m.CashInDrawer = closing.CashInDrawer
	m.Difference = closing.Difference
	m.Notes = closing.Notes
	m.ClosedBy = closing.ClosedBy
}

// CashClosingModelFromDomain creates a new persistence model from a domain CashClosing
func CashClosingModelFromDomain(closing *finance.CashClosing) *CashClosingModel {
	m := &CashClosingModel{}
	m.FromDomain(closing)
	return m
}
