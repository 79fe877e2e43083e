package finance

import (
	"context"

	"github.com/retailbooks/backend/internal/domain/shared"
	"github.com/retailbooks/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// CashClosingFilter defines filtering options for closing queries
type CashClosingFilter struct {
	shared.Filter
	Branch valueobject.BranchFilter
	Range  valueobject.DateRange
}

// CashClosingRepository defines the interface for cash closing persistence
type CashClosingRepository interface {
	// FindByID finds a closing by ID
	FindByID(ctx context.Context, id uuid.UUID) (*CashClosing, error)

	// FindByDateAndBranch finds the closing for an exact (date, branch)
	// pair; returns nil without error when the day is still open
	FindByDateAndBranch(ctx context.Context, date valueobject.Date, branch valueobject.Branch) (*CashClosing, error)

	// FindLatestBefore finds the closing with the greatest date strictly
	// before the given date for a branch; returns nil without error when
	// there is none
	FindLatestBefore(ctx context.Context, date valueobject.Date, branch valueobject.Branch) (*CashClosing, error)

	// FindAllForBranch returns the closing history for a branch, newest
	// first
	FindAllForBranch(ctx context.Context, branch valueobject.Branch, dateRange valueobject.DateRange) ([]CashClosing, error)

	// FindAll finds closings matching the filter, newest first
	FindAll(ctx context.Context, filter CashClosingFilter) ([]CashClosing, error)

	// Save persists a new closing. Closings are immutable; Save never
	// updates an existing row
	Save(ctx context.Context, closing *CashClosing) error

	// Delete removes a closing. Later closings are not recomputed.
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts closings matching the filter
	Count(ctx context.Context, filter CashClosingFilter) (int64, error)
}
