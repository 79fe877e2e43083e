package finance

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/retailbooks/backend/internal/domain/shared"
	"github.com/retailbooks/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MethodTotals maps a payment method to the amount it collected
type MethodTotals map[valueobject.PaymentMethod]decimal.Decimal

// Value implements driver.Valuer interface for GORM to store as JSONB
func (t MethodTotals) Value() (driver.Value, error) {
	if t == nil {
		return "{}", nil
	}
	return json.Marshal(t)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (t *MethodTotals) Scan(value interface{}) error {
	if value == nil {
		*t = MethodTotals{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if str, ok := value.(string); ok {
			bytes = []byte(str)
		} else {
			return fmt.Errorf("cannot scan %T into MethodTotals", value)
		}
	}
	return json.Unmarshal(bytes, t)
}

// CashClosing is the immutable end-of-day reconciliation snapshot for
// one (date, branch) pair. It records what the drawer should have held
// and what the operator actually counted; the difference is data for
// human judgment, never auto-corrected.
//
// Deleting a closing does not recompute later ones. Later closings
// chain off whatever is the most recent closing strictly before their
// own date at the time they are created.
type CashClosing struct {
	shared.BaseAggregateRoot
	Date             valueobject.Date   `json:"date"`
	Branch           valueobject.Branch `json:"branch"`
	OpeningBalance   decimal.Decimal    `json:"opening_balance"`
	TotalIncome      decimal.Decimal    `json:"total_income"`
	TotalExpense     decimal.Decimal    `json:"total_expense"`
	TotalsByMethod   MethodTotals       `json:"totals_by_method"`
	ExpectedInDrawer decimal.Decimal    `json:"expected_in_drawer"`
	CashInDrawer     decimal.Decimal    `json:"cash_in_drawer"`
	Difference       decimal.Decimal    `json:"difference"`
	Notes            string             `json:"notes"`
	ClosedBy         uuid.UUID          `json:"closed_by"`
}

// NewCashClosing creates the reconciliation snapshot. Difference is
// derived here, never passed in.
func NewCashClosing(
	date valueobject.Date,
	branch valueobject.Branch,
	openingBalance decimal.Decimal,
	totalIncome decimal.Decimal,
	totalExpense decimal.Decimal,
	totalsByMethod MethodTotals,
	expectedInDrawer decimal.Decimal,
	cashInDrawer decimal.Decimal,
	notes string,
	closedBy uuid.UUID,
) (*CashClosing, error) {
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Closing date is required")
	}
	if !branch.IsValid() {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch is not valid")
	}
	if cashInDrawer.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COUNTED_CASH", "Counted cash cannot be negative")
	}
	if closedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Closing user ID cannot be empty")
	}

	if totalsByMethod == nil {
		totalsByMethod = make(MethodTotals)
	}

	closing := &CashClosing{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Date:              date,
		Branch:            branch,
		OpeningBalance:    openingBalance,
		TotalIncome:       totalIncome,
		TotalExpense:      totalExpense,
		TotalsByMethod:    totalsByMethod,
		ExpectedInDrawer:  expectedInDrawer,
		CashInDrawer:      cashInDrawer,
		Difference:        cashInDrawer.Sub(expectedInDrawer),
		Notes:             notes,
		ClosedBy:          closedBy,
	}

	closing.AddDomainEvent(NewCashClosingCreatedEvent(closing))

	return closing, nil
}

// HasShortage returns true when the drawer held less than expected
func (c *CashClosing) HasShortage() bool {
	return c.Difference.IsNegative()
}

// HasSurplus returns true when the drawer held more than expected
func (c *CashClosing) HasSurplus() bool {
	return c.Difference.IsPositive()
}

// IsBalanced returns true when counted cash matched the expectation
func (c *CashClosing) IsBalanced() bool {
	return c.Difference.IsZero()
}
