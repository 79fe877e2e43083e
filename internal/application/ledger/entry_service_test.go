package ledger

import (
	"context"
	"testing"

	"github.com/retailbooks/backend/internal/domain/ledger"
	"github.com/retailbooks/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockEntryRepository is a mock implementation of ledger.EntryRepository
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindAll(ctx context.Context, filter ledger.EntryFilter) ([]ledger.Entry, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ledger.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindInRange(ctx context.Context, branch valueobject.BranchFilter, dateRange valueobject.DateRange) ([]ledger.Entry, error) {
	args := m.Called(ctx, branch, dateRange)
	return args.Get(0).([]ledger.Entry), args.Error(1)
}

func (m *MockEntryRepository) Save(ctx context.Context, entry *ledger.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) SaveBatch(ctx context.Context, entries []*ledger.Entry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEntryRepository) Count(ctx context.Context, filter ledger.EntryFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func TestEntryServiceCreateEntry(t *testing.T) {
	ctx := context.Background()

	t.Run("creates and persists a valid entry", func(t *testing.T) {
		repo := new(MockEntryRepository)
		repo.On("Save", ctx, mock.AnythingOfType("*ledger.Entry")).Return(nil)
		service := NewEntryService(repo)

		response, err := service.CreateEntry(ctx, CreateEntryRequest{
			Date:          "2025-03-10",
			Description:   "Electricity bill",
			Amount:        decimal.NewFromFloat(230.50),
			Kind:          "EXPENSE",
			Category:      "Utilities",
			Branch:        "PRIMARY",
			PaymentMethod: "PIX",
		})
		require.NoError(t, err)
		assert.Equal(t, "2025-03-10", response.Date)
		assert.Equal(t, "EXPENSE", response.Kind)
		require.NotNil(t, response.PaymentMethod)
		assert.Equal(t, "PIX", *response.PaymentMethod)
		repo.AssertExpectations(t)
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		repo := new(MockEntryRepository)
		service := NewEntryService(repo)

		_, err := service.CreateEntry(ctx, CreateEntryRequest{
			Date:        "10/03/2025",
			Description: "x",
			Amount:      decimal.NewFromInt(1),
			Kind:        "EXPENSE",
			Category:    "Misc",
			Branch:      "PRIMARY",
		})
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("rejects invalid kind", func(t *testing.T) {
		repo := new(MockEntryRepository)
		service := NewEntryService(repo)

		_, err := service.CreateEntry(ctx, CreateEntryRequest{
			Date:        "2025-03-10",
			Description: "x",
			Amount:      decimal.NewFromInt(1),
			Kind:        "TRANSFER",
			Category:    "Misc",
			Branch:      "PRIMARY",
		})
		assert.Error(t, err)
	})
}

func TestEntryServiceCreateRecurring(t *testing.T) {
	ctx := context.Background()

	t.Run("persists the whole installment series atomically", func(t *testing.T) {
		repo := new(MockEntryRepository)
		var saved []*ledger.Entry
		repo.On("SaveBatch", ctx, mock.AnythingOfType("[]*ledger.Entry")).Run(func(args mock.Arguments) {
			saved = args.Get(1).([]*ledger.Entry)
		}).Return(nil)
		service := NewEntryService(repo)

		responses, err := service.CreateRecurring(ctx, CreateRecurringRequest{
			Description:  "Office rent",
			Amount:       decimal.NewFromInt(1500),
			Category:     "Rent",
			Branch:       "PRIMARY",
			StartDate:    "2025-01-15",
			Installments: 6,
		})
		require.NoError(t, err)
		require.Len(t, responses, 6)
		require.Len(t, saved, 6)
		assert.Equal(t, "Office rent (1/6)", responses[0].Description)
		assert.Equal(t, "Office rent (6/6)", responses[5].Description)
		assert.Equal(t, "2025-06-15", responses[5].Date)
	})

	t.Run("rejects installments below one", func(t *testing.T) {
		repo := new(MockEntryRepository)
		service := NewEntryService(repo)

		_, err := service.CreateRecurring(ctx, CreateRecurringRequest{
			Description:  "Office rent",
			Amount:       decimal.NewFromInt(1500),
			Category:     "Rent",
			Branch:       "PRIMARY",
			StartDate:    "2025-01-15",
			Installments: 0,
		})
		assert.Error(t, err)
		repo.AssertNotCalled(t, "SaveBatch")
	})
}

func TestEntryServiceUpdateEntry(t *testing.T) {
	ctx := context.Background()

	existing := func(t *testing.T) *ledger.Entry {
		entry, err := ledger.NewEntry(
			valueobject.MustParseDate("2025-03-10"),
			"Rent",
			valueobject.NewMoneyBRLFromFloat(1500),
			ledger.EntryKindExpense,
			"Rent",
			valueobject.BranchPrimary,
		)
		require.NoError(t, err)
		return entry
	}

	t.Run("updates an existing entry", func(t *testing.T) {
		entry := existing(t)
		repo := new(MockEntryRepository)
		repo.On("FindByID", ctx, entry.ID).Return(entry, nil)
		repo.On("Save", ctx, entry).Return(nil)
		service := NewEntryService(repo)

		response, err := service.UpdateEntry(ctx, entry.ID, UpdateEntryRequest{
			Date:        "2025-03-11",
			Description: "Rent adjusted",
			Amount:      decimal.NewFromInt(1600),
			Kind:        "EXPENSE",
			Category:    "Rent",
			Branch:      "SECONDARY",
		})
		require.NoError(t, err)
		assert.Equal(t, "Rent adjusted", response.Description)
		assert.Equal(t, "SECONDARY", response.Branch)
	})

	t.Run("returns not found for missing entry", func(t *testing.T) {
		repo := new(MockEntryRepository)
		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(nil, nil)
		service := NewEntryService(repo)

		_, err := service.UpdateEntry(ctx, id, UpdateEntryRequest{
			Date:        "2025-03-11",
			Description: "x",
			Amount:      decimal.NewFromInt(1),
			Kind:        "EXPENSE",
			Category:    "Misc",
			Branch:      "PRIMARY",
		})
		assert.Error(t, err)
	})
}

func TestEntryServiceDeleteEntry(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes an existing entry", func(t *testing.T) {
		entry, err := ledger.NewEntry(
			valueobject.MustParseDate("2025-03-10"),
			"Rent",
			valueobject.NewMoneyBRLFromFloat(1500),
			ledger.EntryKindExpense,
			"Rent",
			valueobject.BranchPrimary,
		)
		require.NoError(t, err)

		repo := new(MockEntryRepository)
		repo.On("FindByID", ctx, entry.ID).Return(entry, nil)
		repo.On("Delete", ctx, entry.ID).Return(nil)
		service := NewEntryService(repo)

		require.NoError(t, service.DeleteEntry(ctx, entry.ID))
		repo.AssertExpectations(t)
	})

	t.Run("returns not found for missing entry", func(t *testing.T) {
		repo := new(MockEntryRepository)
		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(nil, nil)
		service := NewEntryService(repo)

		assert.Error(t, service.DeleteEntry(ctx, id))
	})
}
