package trade

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/retailbooks/backend/internal/domain/shared"
	"github.com/retailbooks/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleStatus represents the lifecycle state of a sale
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "PENDING"
	SaleStatusCompleted SaleStatus = "COMPLETED"
	SaleStatusCancelled SaleStatus = "CANCELLED"
)

// IsValid checks if the status is a valid SaleStatus
func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusPending, SaleStatusCompleted, SaleStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of SaleStatus
func (s SaleStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the sale can no longer transition
func (s SaleStatus) IsTerminal() bool {
	return s == SaleStatusCompleted || s == SaleStatusCancelled
}

// CanComplete returns true if the sale can be completed
func (s SaleStatus) CanComplete() bool {
	return s == SaleStatusPending
}

// CanCancel returns true if the sale can be cancelled
func (s SaleStatus) CanCancel() bool {
	return s == SaleStatusPending
}

// SaleItem is one sold line: the unit price is captured at sale time
// and never re-read from the catalog afterwards.
type SaleItem struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Subtotal returns quantity times unit price
func (i SaleItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// SaleItems is a collection of sale line items
type SaleItems []SaleItem

// Value implements driver.Valuer interface for GORM to store as JSONB
func (i SaleItems) Value() (driver.Value, error) {
	if i == nil {
		return "[]", nil
	}
	return json.Marshal(i)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (i *SaleItems) Scan(value interface{}) error {
	if value == nil {
		*i = SaleItems{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if str, ok := value.(string); ok {
			bytes = []byte(str)
		} else {
			return fmt.Errorf("cannot scan %T into SaleItems", value)
		}
	}
	return json.Unmarshal(bytes, i)
}

// PaymentSplit attributes part of the sale total to one payment method
type PaymentSplit struct {
	Method valueobject.PaymentMethod `json:"method"`
	Amount decimal.Decimal           `json:"amount"`
}

// PaymentSplits is a collection of payment splits
type PaymentSplits []PaymentSplit

// Value implements driver.Valuer interface for GORM to store as JSONB
func (p PaymentSplits) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (p *PaymentSplits) Scan(value interface{}) error {
	if value == nil {
		*p = PaymentSplits{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if str, ok := value.(string); ok {
			bytes = []byte(str)
		} else {
			return fmt.Errorf("cannot scan %T into PaymentSplits", value)
		}
	}
	return json.Unmarshal(bytes, p)
}

// Sale represents a revenue event at the counter.
// Only completed sales count toward revenue, cost of goods and cash
// reconciliation; pending sales count toward receivables only, and
// cancelled sales toward nothing.
type Sale struct {
	shared.BaseAggregateRoot
	Date         valueobject.Date   `json:"date"`
	CustomerName string             `json:"customer_name"`
	Total        decimal.Decimal    `json:"total"`
	Branch       valueobject.Branch `json:"branch"`
	Status       SaleStatus         `json:"status"`
	Items        SaleItems          `json:"items"`
	Payments     PaymentSplits      `json:"payments"`
	CashReceived *decimal.Decimal   `json:"cash_received"`
	ChangeAmount *decimal.Decimal   `json:"change_amount"`
	CancelReason string             `json:"cancel_reason"`
}

// NewSale creates a pending sale from its line items.
// The total is derived from the items; a sale with no items is invalid.
func NewSale(
	date valueobject.Date,
	customerName string,
	branch valueobject.Branch,
	items []SaleItem,
) (*Sale, error) {
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Sale date is required")
	}
	if !branch.IsValid() {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch is not valid")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "Sale must have at least one item")
	}

	total := decimal.Zero
	for _, item := range items {
		if item.ProductID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_ITEMS", "Sale item product ID cannot be empty")
		}
		if item.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_ITEMS", "Sale item quantity must be positive")
		}
		if item.UnitPrice.IsNegative() {
			return nil, shared.NewDomainError("INVALID_ITEMS", "Sale item unit price cannot be negative")
		}
		total = total.Add(item.Subtotal())
	}

	sale := &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Date:              date,
		CustomerName:      customerName,
		Total:             total,
		Branch:            branch,
		Status:            SaleStatusPending,
		Items:             items,
	}

	sale.AddDomainEvent(NewSaleCreatedEvent(sale))

	return sale, nil
}

// SetPayments records how the total was tendered. The splits must sum
// to exactly the sale total.
func (s *Sale) SetPayments(splits []PaymentSplit) error {
	if s.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot change payments of a %s sale", s.Status))
	}
	if len(splits) == 0 {
		return shared.NewDomainError("INVALID_PAYMENTS", "At least one payment split is required")
	}

	sum := decimal.Zero
	for _, split := range splits {
		if !split.Method.IsValid() {
			return shared.NewDomainError("INVALID_PAYMENTS", fmt.Sprintf("Unknown payment method %q", split.Method))
		}
		if split.Amount.IsNegative() {
			return shared.NewDomainError("INVALID_PAYMENTS", "Payment split amount cannot be negative")
		}
		sum = sum.Add(split.Amount)
	}
	if !sum.Equal(s.Total) {
		return shared.NewDomainError("INVALID_PAYMENTS",
			fmt.Sprintf("Payment splits sum to %s but sale total is %s", sum, s.Total))
	}

	s.Payments = splits
	return nil
}

// SetSinglePayment records the whole total against one method
func (s *Sale) SetSinglePayment(method valueobject.PaymentMethod) error {
	return s.SetPayments([]PaymentSplit{{Method: method, Amount: s.Total}})
}

// RegisterCashTender records the bills handed over for the cash portion
// and the change returned. Only meaningful when some split is cash.
func (s *Sale) RegisterCashTender(received decimal.Decimal) error {
	cashDue := s.CashPortion()
	if cashDue.IsZero() {
		return shared.NewDomainError("INVALID_TENDER", "Sale has no cash payment to tender against")
	}
	if received.LessThan(cashDue) {
		return shared.NewDomainError("INVALID_TENDER",
			fmt.Sprintf("Cash received %s is less than the cash portion %s", received, cashDue))
	}
	change := received.Sub(cashDue)
	s.CashReceived = &received
	s.ChangeAmount = &change
	return nil
}

// Complete finishes the sale. Payments must be recorded first.
func (s *Sale) Complete() error {
	if !s.Status.CanComplete() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete sale in %s status", s.Status))
	}
	if len(s.Payments) == 0 {
		return shared.NewDomainError("INVALID_PAYMENTS", "Cannot complete a sale without payments")
	}

	s.Status = SaleStatusCompleted
	s.AddDomainEvent(NewSaleCompletedEvent(s))

	return nil
}

// Cancel voids a pending sale
func (s *Sale) Cancel(reason string) error {
	if !s.Status.CanCancel() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel sale in %s status", s.Status))
	}

	s.Status = SaleStatusCancelled
	s.CancelReason = reason
	s.AddDomainEvent(NewSaleCancelledEvent(s))

	return nil
}

// Correct replaces the items and payments of a completed sale.
// Completed sales are otherwise immutable; a correction is an explicit,
// audited replacement, not an edit.
func (s *Sale) Correct(items []SaleItem, splits []PaymentSplit) error {
	if s.Status != SaleStatusCompleted {
		return shared.NewDomainError("INVALID_STATE", "Only completed sales can be corrected")
	}
	if len(items) == 0 {
		return shared.NewDomainError("INVALID_ITEMS", "Sale must have at least one item")
	}

	total := decimal.Zero
	for _, item := range items {
		if item.Quantity <= 0 {
			return shared.NewDomainError("INVALID_ITEMS", "Sale item quantity must be positive")
		}
		if item.UnitPrice.IsNegative() {
			return shared.NewDomainError("INVALID_ITEMS", "Sale item unit price cannot be negative")
		}
		total = total.Add(item.Subtotal())
	}

	sum := decimal.Zero
	for _, split := range splits {
		if !split.Method.IsValid() {
			return shared.NewDomainError("INVALID_PAYMENTS", fmt.Sprintf("Unknown payment method %q", split.Method))
		}
		sum = sum.Add(split.Amount)
	}
	if !sum.Equal(total) {
		return shared.NewDomainError("INVALID_PAYMENTS",
			fmt.Sprintf("Payment splits sum to %s but corrected total is %s", sum, total))
	}

	s.Items = items
	s.Payments = splits
	s.Total = total
	s.CashReceived = nil
	s.ChangeAmount = nil
	s.AddDomainEvent(NewSaleCorrectedEvent(s))

	return nil
}

// IsCompleted returns true if the sale is completed
func (s *Sale) IsCompleted() bool {
	return s.Status == SaleStatusCompleted
}

// IsPending returns true if the sale is pending
func (s *Sale) IsPending() bool {
	return s.Status == SaleStatusPending
}

// IsCancelled returns true if the sale is cancelled
func (s *Sale) IsCancelled() bool {
	return s.Status == SaleStatusCancelled
}

// CashPortion returns the amount of the total paid in physical cash
func (s *Sale) CashPortion() decimal.Decimal {
	cash := decimal.Zero
	for _, split := range s.Payments {
		if split.Method.IsCash() {
			cash = cash.Add(split.Amount)
		}
	}
	return cash
}

// AmountByMethod returns the tendered amount per payment method
func (s *Sale) AmountByMethod() map[valueobject.PaymentMethod]decimal.Decimal {
	byMethod := make(map[valueobject.PaymentMethod]decimal.Decimal)
	for _, split := range s.Payments {
		byMethod[split.Method] = byMethod[split.Method].Add(split.Amount)
	}
	return byMethod
}

// GetTotalMoney returns the total as Money
func (s *Sale) GetTotalMoney() valueobject.Money {
	return valueobject.NewMoneyBRL(s.Total)
}
