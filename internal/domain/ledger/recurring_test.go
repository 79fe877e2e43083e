package ledger

import (
	"testing"

	"github.com/retailbooks/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validIntent() RecurringIntent {
	return RecurringIntent{
		Description:  "Office rent",
		Amount:       valueobject.NewMoneyBRLFromFloat(1500),
		Category:     "Rent",
		Branch:       valueobject.BranchPrimary,
		StartDate:    valueobject.MustParseDate("2025-01-15"),
		Installments: 6,
	}
}

func TestRecurringIntentExpand(t *testing.T) {
	t.Run("generates one entry per installment", func(t *testing.T) {
		entries, err := validIntent().Expand()
		require.NoError(t, err)
		require.Len(t, entries, 6)

		for i, entry := range entries {
			assert.Equal(t, EntryKindExpense, entry.Kind)
			assert.Equal(t, "Rent", entry.Category)
			assert.Equal(t, valueobject.BranchPrimary, entry.Branch)
			assert.Equal(t, 1500.0, entry.GetAmountMoney().Float64())
			assert.Equal(t, valueobject.MustParseDate("2025-01-15").AddMonths(i), entry.Date)
		}

		assert.Equal(t, "Office rent (1/6)", entries[0].Description)
		assert.Equal(t, "Office rent (6/6)", entries[5].Description)
		assert.Equal(t, "2025-06-15", entries[5].Date.String())
	})

	t.Run("single installment keeps description unchanged", func(t *testing.T) {
		intent := validIntent()
		intent.Installments = 1
		entries, err := intent.Expand()
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Office rent", entries[0].Description)
		assert.Equal(t, "2025-01-15", entries[0].Date.String())
	})

	t.Run("start day overflow rolls into next month", func(t *testing.T) {
		intent := validIntent()
		intent.StartDate = valueobject.MustParseDate("2025-01-31")
		intent.Installments = 3
		entries, err := intent.Expand()
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "2025-01-31", entries[0].Date.String())
		assert.Equal(t, "2025-03-03", entries[1].Date.String())
		assert.Equal(t, "2025-03-31", entries[2].Date.String())
	})

	t.Run("entries get distinct ids", func(t *testing.T) {
		entries, err := validIntent().Expand()
		require.NoError(t, err)
		seen := make(map[string]bool)
		for _, entry := range entries {
			assert.False(t, seen[entry.ID.String()])
			seen[entry.ID.String()] = true
		}
	})
}

func TestRecurringIntentValidate(t *testing.T) {
	t.Run("rejects zero installments", func(t *testing.T) {
		intent := validIntent()
		intent.Installments = 0
		_, err := intent.Expand()
		assert.Error(t, err)
	})

	t.Run("rejects empty description", func(t *testing.T) {
		intent := validIntent()
		intent.Description = ""
		_, err := intent.Expand()
		assert.Error(t, err)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		intent := validIntent()
		intent.Amount = valueobject.NewMoneyBRLFromFloat(-10)
		_, err := intent.Expand()
		assert.Error(t, err)
	})

	t.Run("rejects missing start date", func(t *testing.T) {
		intent := validIntent()
		intent.StartDate = valueobject.Date{}
		_, err := intent.Expand()
		assert.Error(t, err)
	})

	t.Run("rejects unknown branch", func(t *testing.T) {
		intent := validIntent()
		intent.Branch = valueobject.Branch("DEPOT")
		_, err := intent.Expand()
		assert.Error(t, err)
	})
}
