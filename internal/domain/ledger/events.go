package ledger

import (
	"github.com/retailbooks/backend/internal/domain/shared"
	"github.com/retailbooks/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryCreatedEvent is raised when a new ledger entry is created
type EntryCreatedEvent struct {
	shared.BaseDomainEvent
	EntryID     uuid.UUID          `json:"entry_id"`
	Date        valueobject.Date   `json:"date"`
	Description string             `json:"description"`
	Amount      decimal.Decimal    `json:"amount"`
	Kind        EntryKind          `json:"kind"`
	Category    string             `json:"category"`
	Branch      valueobject.Branch `json:"branch"`
}

// EventType returns the event type name
func (e *EntryCreatedEvent) EventType() string {
	return "LedgerEntryCreated"
}

// NewEntryCreatedEvent creates a new EntryCreatedEvent
func NewEntryCreatedEvent(entry *Entry) *EntryCreatedEvent {
	return &EntryCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("LedgerEntryCreated", entry.ID, "LedgerEntry"),
		EntryID:         entry.ID,
		Date:            entry.Date,
		Description:     entry.Description,
		Amount:          entry.Amount,
		Kind:            entry.Kind,
		Category:        entry.Category,
		Branch:          entry.Branch,
	}
}

// EntryUpdatedEvent is raised when a ledger entry is edited
type EntryUpdatedEvent struct {
	shared.BaseDomainEvent
	EntryID     uuid.UUID          `json:"entry_id"`
	Date        valueobject.Date   `json:"date"`
	Description string             `json:"description"`
	Amount      decimal.Decimal    `json:"amount"`
	Kind        EntryKind          `json:"kind"`
	Category    string             `json:"category"`
	Branch      valueobject.Branch `json:"branch"`
}

// EventType returns the event type name
func (e *EntryUpdatedEvent) EventType() string {
	return "LedgerEntryUpdated"
}

// NewEntryUpdatedEvent creates a new EntryUpdatedEvent
func NewEntryUpdatedEvent(entry *Entry) *EntryUpdatedEvent {
	return &EntryUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("LedgerEntryUpdated", entry.ID, "LedgerEntry"),
		EntryID:         entry.ID,
		Date:            entry.Date,
		Description:     entry.Description,
		Amount:          entry.Amount,
		Kind:            entry.Kind,
		Category:        entry.Category,
		Branch:          entry.Branch,
	}
}

// RecurringSeriesExpandedEvent is raised when a recurring intent is
// expanded into its installment entries
type RecurringSeriesExpandedEvent struct {
	shared.BaseDomainEvent
	Description  string             `json:"description"`
	Installments int                `json:"installments"`
	StartDate    valueobject.Date   `json:"start_date"`
	Branch       valueobject.Branch `json:"branch"`
	EntryIDs     []uuid.UUID        `json:"entry_ids"`
}

// EventType returns the event type name
func (e *RecurringSeriesExpandedEvent) EventType() string {
	return "RecurringSeriesExpanded"
}

// NewRecurringSeriesExpandedEvent creates a new RecurringSeriesExpandedEvent
func NewRecurringSeriesExpandedEvent(intent RecurringIntent, entries []*Entry) *RecurringSeriesExpandedEvent {
	ids := make([]uuid.UUID, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.ID)
	}
	var first uuid.UUID
	if len(ids) > 0 {
		first = ids[0]
	}
	return &RecurringSeriesExpandedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("RecurringSeriesExpanded", first, "LedgerEntry"),
		Description:     intent.Description,
		Installments:    intent.Installments,
		StartDate:       intent.StartDate,
		Branch:          intent.Branch,
		EntryIDs:        ids,
	}
}
