package ledger

import (
	"github.com/retailbooks/backend/internal/domain/shared"
	"github.com/retailbooks/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// EntryKind represents the direction of a ledger entry
type EntryKind string

const (
	EntryKindIncome  EntryKind = "INCOME"
	EntryKindExpense EntryKind = "EXPENSE"
)

// IsValid checks if the kind is a valid EntryKind
func (k EntryKind) IsValid() bool {
	switch k {
	case EntryKindIncome, EntryKindExpense:
		return true
	}
	return false
}

// String returns the string representation of EntryKind
func (k EntryKind) String() string {
	return string(k)
}

// ReservedSalesCategory marks legacy income entries that mirror a sale.
// Entries in this category are never counted by reports: revenue from
// sales comes from the sale records themselves, and counting both would
// double the number.
const ReservedSalesCategory = "Vendas"

// Entry represents a manually recorded financial movement.
// Amounts are always non-negative; direction is carried by Kind, never
// by the sign of the amount.
type Entry struct {
	shared.BaseAggregateRoot
	Date          valueobject.Date           `json:"date"`
	Description   string                     `json:"description"`
	Amount        decimal.Decimal            `json:"amount"`
	Kind          EntryKind                  `json:"kind"`
	Category      string                     `json:"category"`
	Branch        valueobject.Branch         `json:"branch"`
	PaymentMethod *valueobject.PaymentMethod `json:"payment_method"`
}

// NewEntry creates a new ledger entry
func NewEntry(
	date valueobject.Date,
	description string,
	amount valueobject.Money,
	kind EntryKind,
	category string,
	branch valueobject.Branch,
) (*Entry, error) {
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Entry date is required")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if len(description) > 200 {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 200 characters")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Entry kind must be INCOME or EXPENSE")
	}
	if category == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category cannot be empty")
	}
	if !branch.IsValid() {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch is not valid")
	}

	entry := &Entry{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Date:              date,
		Description:       description,
		Amount:            amount.Amount(),
		Kind:              kind,
		Category:          category,
		Branch:            branch,
	}

	entry.AddDomainEvent(NewEntryCreatedEvent(entry))

	return entry, nil
}

// SetPaymentMethod attaches an optional payment method
func (e *Entry) SetPaymentMethod(method valueobject.PaymentMethod) error {
	if !method.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is not valid")
	}
	e.PaymentMethod = &method
	return nil
}

// Update replaces the mutable fields of the entry
func (e *Entry) Update(
	date valueobject.Date,
	description string,
	amount valueobject.Money,
	kind EntryKind,
	category string,
	branch valueobject.Branch,
) error {
	if date.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Entry date is required")
	}
	if description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}
	if !kind.IsValid() {
		return shared.NewDomainError("INVALID_KIND", "Entry kind must be INCOME or EXPENSE")
	}
	if category == "" {
		return shared.NewDomainError("INVALID_CATEGORY", "Category cannot be empty")
	}
	if !branch.IsValid() {
		return shared.NewDomainError("INVALID_BRANCH", "Branch is not valid")
	}

	e.Date = date
	e.Description = description
	e.Amount = amount.Amount()
	e.Kind = kind
	e.Category = category
	e.Branch = branch

	e.AddDomainEvent(NewEntryUpdatedEvent(e))

	return nil
}

// IsIncome returns true if the entry is an income movement
func (e *Entry) IsIncome() bool {
	return e.Kind == EntryKindIncome
}

// IsExpense returns true if the entry is an expense movement
func (e *Entry) IsExpense() bool {
	return e.Kind == EntryKindExpense
}

// IsLegacySaleIncome returns true for income entries in the reserved
// sales category. Reports skip these.
func (e *Entry) IsLegacySaleIncome() bool {
	return e.Kind == EntryKindIncome && e.Category == ReservedSalesCategory
}

// GetAmountMoney returns the amount as Money
func (e *Entry) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyBRL(e.Amount)
}
