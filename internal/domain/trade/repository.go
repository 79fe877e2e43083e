package trade

import (
	"context"

	"github.com/retailbooks/backend/internal/domain/shared"
	"github.com/retailbooks/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// SaleFilter defines filtering options for sale queries
type SaleFilter struct {
	shared.Filter
	Branch valueobject.BranchFilter
	Range  valueobject.DateRange
	Status *SaleStatus
}

// SaleRepository defines the interface for sale persistence
type SaleRepository interface {
	// FindByID finds a sale by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)

	// FindAll finds sales matching the filter, newest first
	FindAll(ctx context.Context, filter SaleFilter) ([]Sale, error)

	// FindInRange finds all sales for a branch filter within a date
	// range, regardless of status
	FindInRange(ctx context.Context, branch valueobject.BranchFilter, dateRange valueobject.DateRange) ([]Sale, error)

	// Save creates or updates a sale
	Save(ctx context.Context, sale *Sale) error

	// Delete removes a sale
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts sales matching the filter
	Count(ctx context.Context, filter SaleFilter) (int64, error)
}
