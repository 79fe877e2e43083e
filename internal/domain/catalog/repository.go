package catalog

import (
	"context"

	"github.com/retailbooks/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductFilter defines filtering options for product queries
type ProductFilter struct {
	shared.Filter
	ActiveOnly bool
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDs loads the products for a set of IDs; missing IDs are
	// simply absent from the result, never an error
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Product, error)

	// FindAll finds products matching the filter
	FindAll(ctx context.Context, filter ProductFilter) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete removes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter ProductFilter) (int64, error)
}
