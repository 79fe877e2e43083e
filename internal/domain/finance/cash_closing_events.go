package finance

import (
	"github.com/retailbooks/backend/internal/domain/shared"
	"github.com/retailbooks/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashClosingCreatedEvent is raised when a day is closed
type CashClosingCreatedEvent struct {
	shared.BaseDomainEvent
	ClosingID        uuid.UUID          `json:"closing_id"`
	Date             valueobject.Date   `json:"date"`
	Branch           valueobject.Branch `json:"branch"`
	OpeningBalance   decimal.Decimal    `json:"opening_balance"`
	ExpectedInDrawer decimal.Decimal    `json:"expected_in_drawer"`
	CashInDrawer     decimal.Decimal    `json:"cash_in_drawer"`
	Difference       decimal.Decimal    `json:"difference"`
	ClosedBy         uuid.UUID          `json:"closed_by"`
}

// EventType returns the event type name
func (e *CashClosingCreatedEvent) EventType() string {
	return "CashClosingCreated"
}

// NewCashClosingCreatedEvent creates a new CashClosingCreatedEvent
func NewCashClosingCreatedEvent(closing *CashClosing) *CashClosingCreatedEvent {
	return &CashClosingCreatedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent("CashClosingCreated", closing.ID, "CashClosing"),
		ClosingID:        closing.ID,
		Date:             closing.Date,
		Branch:           closing.Branch,
		OpeningBalance:   closing.OpeningBalance,
		ExpectedInDrawer: closing.ExpectedInDrawer,
		CashInDrawer:     closing.CashInDrawer,
		Difference:       closing.Difference,
		ClosedBy:         closing.ClosedBy,
	}
}
