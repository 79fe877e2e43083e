package trade

import (
	"github.com/retailbooks/backend/internal/domain/shared"
	"github.com/retailbooks/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleCreatedEvent is raised when a sale is opened at checkout
type SaleCreatedEvent struct {
	shared.BaseDomainEvent
	SaleID       uuid.UUID          `json:"sale_id"`
	Date         valueobject.Date   `json:"date"`
	CustomerName string             `json:"customer_name"`
	Total        decimal.Decimal    `json:"total"`
	Branch       valueobject.Branch `json:"branch"`
	ItemCount    int                `json:"item_count"`
}

// EventType returns the event type name
func (e *SaleCreatedEvent) EventType() string {
	return "SaleCreated"
}

// NewSaleCreatedEvent creates a new SaleCreatedEvent
func NewSaleCreatedEvent(sale *Sale) *SaleCreatedEvent {
	return &SaleCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("SaleCreated", sale.ID, "Sale"),
		SaleID:          sale.ID,
		Date:            sale.Date,
		CustomerName:    sale.CustomerName,
		Total:           sale.Total,
		Branch:          sale.Branch,
		ItemCount:       len(sale.Items),
	}
}

// SaleCompletedEvent is raised when a sale is completed
type SaleCompletedEvent struct {
	shared.BaseDomainEvent
	SaleID   uuid.UUID          `json:"sale_id"`
	Date     valueobject.Date   `json:"date"`
	Total    decimal.Decimal    `json:"total"`
	Branch   valueobject.Branch `json:"branch"`
	Payments []PaymentSplit     `json:"payments"`
}

// EventType returns the event type name
func (e *SaleCompletedEvent) EventType() string {
	return "SaleCompleted"
}

// NewSaleCompletedEvent creates a new SaleCompletedEvent
func NewSaleCompletedEvent(sale *Sale) *SaleCompletedEvent {
	return &SaleCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("SaleCompleted", sale.ID, "Sale"),
		SaleID:          sale.ID,
		Date:            sale.Date,
		Total:           sale.Total,
		Branch:          sale.Branch,
		Payments:        sale.Payments,
	}
}

// SaleCancelledEvent is raised when a sale is cancelled
type SaleCancelledEvent struct {
	shared.BaseDomainEvent
	SaleID       uuid.UUID          `json:"sale_id"`
	Date         valueobject.Date   `json:"date"`
	Total        decimal.Decimal    `json:"total"`
	Branch       valueobject.Branch `json:"branch"`
	CancelReason string             `json:"cancel_reason"`
}

// EventType returns the event type name
func (e *SaleCancelledEvent) EventType() string {
	return "SaleCancelled"
}

// NewSaleCancelledEvent creates a new SaleCancelledEvent
func NewSaleCancelledEvent(sale *Sale) *SaleCancelledEvent {
	return &SaleCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("SaleCancelled", sale.ID, "Sale"),
		SaleID:          sale.ID,
		Date:            sale.Date,
		Total:           sale.Total,
		Branch:          sale.Branch,
		CancelReason:    sale.CancelReason,
	}
}

// SaleCorrectedEvent is raised when a completed sale is corrected
type SaleCorrectedEvent struct {
	shared.BaseDomainEvent
	SaleID uuid.UUID          `json:"sale_id"`
	Date   valueobject.Date   `json:"date"`
	Total  decimal.Decimal    `json:"total"`
	Branch valueobject.Branch `json:"branch"`
}

// EventType returns the event type name
func (e *SaleCorrectedEvent) EventType() string {
	return "SaleCorrected"
}

// NewSaleCorrectedEvent creates a new SaleCorrectedEvent
func NewSaleCorrectedEvent(sale *Sale) *SaleCorrectedEvent {
	return &SaleCorrectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("SaleCorrected", sale.ID, "Sale"),
		SaleID:          sale.ID,
		Date:            sale.Date,
		Total:           sale.Total,
		Branch:          sale.Branch,
	}
}
