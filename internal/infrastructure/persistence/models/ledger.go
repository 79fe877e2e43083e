package models

import (
	"gorm.io/gorm"

	"github.com/retailbooks/backend/internal/domain/ledger"
	"github.com/retailbooks/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// EntryModel is the persistence model for the ledger Entry aggregate root.
type EntryModel struct {
	AggregateModel
	Date          valueobject.Date             `gorm:"type:date;not null;index:idx_entries_date_branch,priority:1"`
	Description   string                       `gorm:"type:varchar(200);not null"`
	Amount        decimal.Decimal              `gorm:"type:decimal(18,4);not null"`
	Kind          ledger.EntryKind             `gorm:"type:varchar(10);not null;index"`
	Category      string                       `gorm:"type:varchar(100);not null;index"`
	Branch        valueobject.Branch           `gorm:"type:varchar(20);not null;index:idx_entries_date_branch,priority:2"`
	PaymentMethod *valueobject.PaymentMethod   `gorm:"type:varchar(20)"`
	DeletedAt     gorm.DeletedAt               `gorm:"index"`
}

// TableName returns the table name for GORM
func (EntryModel) TableName() string {
	return "ledger_entries"
}

// ToDomain converts the persistence model to a domain Entry
func (m *EntryModel) ToDomain() *ledger.Entry {
	entry := &ledger.Entry{
		Date:          m.Date,
		Description:   m.Description,
		Amount:        m.Amount,
		Kind:          m.Kind,
		Category:      m.Category,
		Branch:        m.Branch,
		PaymentMethod: m.PaymentMethod,
	}
	m.PopulateAggregateRoot(&entry.BaseAggregateRoot)
	return entry
}

// FromDomain populates the persistence model from a domain Entry
func (m *EntryModel) FromDomain(entry *ledger.Entry) {
	m.FromDomainAggregateRoot(entry.BaseAggregateRoot)
	m.Date = entry.Date
	m.Description = entry.Description
	m.Amount = entry.Amount
	m.Kind = entry.Kind
	m.Category = entry.Category
	m.Branch = entry.Branch
	m.PaymentMethod = entry.PaymentMethod
}

// EntryModelFromDomain creates a new persistence model from a domain Entry
func EntryModelFromDomain(entry *ledger.Entry) *EntryModel {
	m := &EntryModel{}
	m.FromDomain(entry)
	return m
}
