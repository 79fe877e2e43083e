package ledger

import (
	"context"

	"github.com/retailbooks/backend/internal/domain/shared"
	"github.com/retailbooks/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// EntryFilter defines filtering options for ledger entry queries
type EntryFilter struct {
	shared.Filter
	Branch   valueobject.BranchFilter
	Range    valueobject.DateRange
	Kind     *EntryKind
	Category *string
}

// EntryRepository defines the interface for ledger entry persistence
type EntryRepository interface {
	// FindByID finds an entry by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Entry, error)

	// FindAll finds entries matching the filter, newest first
	FindAll(ctx context.Context, filter EntryFilter) ([]Entry, error)

	// FindInRange finds all entries for a branch filter within a date range
	FindInRange(ctx context.Context, branch valueobject.BranchFilter, dateRange valueobject.DateRange) ([]Entry, error)

	// Save creates or updates an entry
	Save(ctx context.Context, entry *Entry) error

	// SaveBatch persists a batch of entries in one transaction.
	// Either every entry is stored or none is; recurring installment
	// series rely on this.
	SaveBatch(ctx context.Context, entries []*Entry) error

	// Delete removes an entry
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts entries matching the filter
	Count(ctx context.Context, filter EntryFilter) (int64, error)
}
