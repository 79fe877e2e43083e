package ledger

import (
	"fmt"

	"github.com/retailbooks/backend/internal/domain/shared"
	"github.com/retailbooks/backend/internal/domain/shared/valueobject"
)

// RecurringIntent describes an expense repeated monthly over a fixed
// number of installments. It is an input value, never persisted; only
// the expanded entries are stored.
type RecurringIntent struct {
	Description  string
	Amount       valueobject.Money
	Category     string
	Branch       valueobject.Branch
	StartDate    valueobject.Date
	Installments int
}

// Validate checks the intent before expansion
func (i RecurringIntent) Validate() error {
	if i.Description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if i.Amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}
	if i.Category == "" {
		return shared.NewDomainError("INVALID_CATEGORY", "Category cannot be empty")
	}
	if !i.Branch.IsValid() {
		return shared.NewDomainError("INVALID_BRANCH", "Branch is not valid")
	}
	if i.StartDate.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Start date is required")
	}
	if i.Installments < 1 {
		return shared.NewDomainError("INVALID_INSTALLMENTS", "Installments must be at least 1")
	}
	return nil
}

// Expand generates one expense entry per installment. Installment i
// (0-indexed) is dated StartDate plus i calendar months; when the start
// day does not exist in a target month the date rolls into the next
// month (see Date.AddMonths). Descriptions carry an "(i/N)" suffix when
// there is more than one installment.
//
// Expansion is pure: nothing is persisted here. The caller stores the
// returned batch atomically or not at all.
func (i RecurringIntent) Expand() ([]*Entry, error) {
	if err := i.Validate(); err != nil {
		return nil, err
	}

	entries := make([]*Entry, 0, i.Installments)
	for n := 0; n < i.Installments; n++ {
		description := i.Description
		if i.Installments > 1 {
			description = fmt.Sprintf("%s (%d/%d)", i.Description, n+1, i.Installments)
		}
		entry, err := NewEntry(
			i.StartDate.AddMonths(n),
			description,
			i.Amount,
			EntryKindExpense,
			i.Category,
			i.Branch,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
