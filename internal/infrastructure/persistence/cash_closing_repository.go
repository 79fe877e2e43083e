package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/retailbooks/backend/internal/domain/finance"
	"github.com/retailbooks/backend/internal/domain/shared"
	"github.com/retailbooks/backend/internal/domain/shared/valueobject"
	"github.com/retailbooks/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCashClosingRepository implements finance.CashClosingRepository using GORM
type GormCashClosingRepository struct {
	db *gorm.DB
}

// NewGormCashClosingRepository creates a new GormCashClosingRepository
func NewGormCashClosingRepository(db *gorm.DB) *GormCashClosingRepository {
	return &GormCashClosingRepository{db: db}
}

// FindByID finds a closing by its ID
func (r *GormCashClosingRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.CashClosing, error) {
	var model models.CashClosingModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByDateAndBranch finds the closing for an exact (date, branch) pair.
// Returns nil without error when the day is still open.
func (r *GormCashClosingRepository) FindByDateAndBranch(ctx context.Context, date valueobject.Date, branch valueobject.Branch) (*finance.CashClosing, error) {
	var model models.CashClosingModel
	if err := r.db.WithContext(ctx).
		Where("date = ? AND branch = ?", date, branch).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindLatestBefore finds the closing with the greatest date strictly
// before the given date for a branch. Gap days are skipped naturally:
// the query walks back over dates that were never closed.
func (r *GormCashClosingRepository) FindLatestBefore(ctx context.Context, date valueobject.Date, branch valueobject.Branch) (*finance.CashClosing, error) {
	var model models.CashClosingModel
	if err := r.db.WithContext(ctx).
		Where("date < ? AND branch = ?", date, branch).
		Order("date DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForBranch returns the closing history for a branch, newest first
func (r *GormCashClosingRepository) FindAllForBranch(ctx context.Context, branch valueobject.Branch, dateRange valueobject.DateRange) ([]finance.CashClosing, error) {
	var closingModels []models.CashClosingModel
	query := applyScope(r.db.WithContext(ctx).Model(&models.CashClosingModel{}), valueobject.FilterBranch(branch), dateRange)

	if err := query.Order("date DESC").Find(&closingModels).Error; err != nil {
		return nil, err
	}
	closings := make([]finance.CashClosing, len(closingModels))
	for i, model := range closingModels {
		closings[i] = *model.ToDomain()
	}
	return closings, nil
}

// FindAll finds closings matching the filter, newest first
func (r *GormCashClosingRepository) FindAll(ctx context.Context, filter finance.CashClosingFilter) ([]finance.CashClosing, error) {
	var closingModels []models.CashClosingModel
	query := applyScope(r.db.WithContext(ctx).Model(&models.CashClosingModel{}), filter.Branch, filter.Range)

	sortField := ValidateSortField(filter.OrderBy, CashClosingSortFields, "date")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		offset := (filter.Page - 1) * filter.PageSize
		if offset > 0 {
			query = query.Offset(offset)
		}
	}

	if err := query.Find(&closingModels).Error; err != nil {
		return nil, err
	}
	closings := make([]finance.CashClosing, len(closingModels))
	for i, model := range closingModels {
		closings[i] = *model.ToDomain()
	}
	return closings, nil
}

// Save persists a new closing. Closings are immutable, so this is
// always an insert; the unique (date, branch) index rejects a second
// closing that slipped past the application check.
func (r *GormCashClosingRepository) Save(ctx context.Context, closing *finance.CashClosing) error {
	model := models.CashClosingModelFromDomain(closing)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrDayAlreadyClosed
		}
		return err
	}
	return nil
}

// Delete removes a closing. Later closings are not recomputed.
func (r *GormCashClosingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CashClosingModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts closings matching the filter
func (r *GormCashClosingRepository) Count(ctx context.Context, filter finance.CashClosingFilter) (int64, error) {
	var count int64
	query := applyScope(r.db.WithContext(ctx).Model(&models.CashClosingModel{}), filter.Branch, filter.Range)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
