package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/retailbooks/backend/internal/domain/ledger"
	"github.com/retailbooks/backend/internal/domain/shared"
	"github.com/retailbooks/backend/internal/domain/shared/valueobject"
	"github.com/retailbooks/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormEntryRepository implements ledger.EntryRepository using GORM
type GormEntryRepository struct {
	db *gorm.DB
}

// NewGormEntryRepository creates a new GormEntryRepository
func NewGormEntryRepository(db *gorm.DB) *GormEntryRepository {
	return &GormEntryRepository{db: db}
}

// FindByID finds an entry by its ID
func (r *GormEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	var model models.EntryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds entries matching the filter, newest first
func (r *GormEntryRepository) FindAll(ctx context.Context, filter ledger.EntryFilter) ([]ledger.Entry, error) {
	var entryModels []models.EntryModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.EntryModel{}), filter)

	sortField := ValidateSortField(filter.OrderBy, EntrySortFields, "date")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		offset := (filter.Page - 1) * filter.PageSize
		if offset > 0 {
			query = query.Offset(offset)
		}
	}

	if err := query.Find(&entryModels).Error; err != nil {
		return nil, err
	}
	entries := make([]ledger.Entry, len(entryModels))
	for i, model := range entryModels {
		entries[i] = *model.ToDomain()
	}
	return entries, nil
}

// FindInRange finds all entries for a branch filter within a date range
func (r *GormEntryRepository) FindInRange(ctx context.Context, branch valueobject.BranchFilter, dateRange valueobject.DateRange) ([]ledger.Entry, error) {
	var entryModels []models.EntryModel
	query := applyScope(r.db.WithContext(ctx).Model(&models.EntryModel{}), branch, dateRange)

	if err := query.Order("date DESC").Find(&entryModels).Error; err != nil {
		return nil, err
	}
	entries := make([]ledger.Entry, len(entryModels))
	for i, model := range entryModels {
		entries[i] = *model.ToDomain()
	}
	return entries, nil
}

// Save creates or updates an entry
func (r *GormEntryRepository) Save(ctx context.Context, entry *ledger.Entry) error {
	model := models.EntryModelFromDomain(entry)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveBatch persists a batch of entries atomically
func (r *GormEntryRepository) SaveBatch(ctx context.Context, entries []*ledger.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	entryModels := make([]*models.EntryModel, len(entries))
	for i, entry := range entries {
		entryModels[i] = models.EntryModelFromDomain(entry)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&entryModels).Error
	})
}

// Delete removes an entry
func (r *GormEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.EntryModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts entries matching the filter
func (r *GormEntryRepository) Count(ctx context.Context, filter ledger.EntryFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.EntryModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter conditions without sorting or pagination
func (r *GormEntryRepository) applyFilter(query *gorm.DB, filter ledger.EntryFilter) *gorm.DB {
	query = applyScope(query, filter.Branch, filter.Range)

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("(description ILIKE ? OR category ILIKE ?)", searchPattern, searchPattern)
	}
	if filter.Kind != nil {
		query = query.Where("kind = ?", *filter.Kind)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	return query
}

// applyScope narrows a query to a branch filter and date range. All
// dated tables share the branch/date column names, so the reporting
// repositories reuse this.
func applyScope(query *gorm.DB, branch valueobject.BranchFilter, dateRange valueobject.DateRange) *gorm.DB {
	if !branch.IsAll() {
		query = query.Where("branch = ?", branch.Branch())
	}
	if !dateRange.Start.IsZero() {
		query = query.Where("date >= ?", dateRange.Start)
	}
	if !dateRange.End.IsZero() {
		query = query.Where("date <= ?", dateRange.End)
	}
	return query
}
