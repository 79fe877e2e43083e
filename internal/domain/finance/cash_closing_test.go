package finance

import (
	"testing"

	"github.com/retailbooks/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCashClosing(t *testing.T) {
	date := valueobject.MustParseDate("2024-03-10")
	operator := uuid.New()

	t.Run("derives difference from counted and expected", func(t *testing.T) {
		closing, err := NewCashClosing(
			date,
			valueobject.BranchPrimary,
			decimal.NewFromFloat(50),
			decimal.NewFromFloat(100),
			decimal.NewFromFloat(10),
			map[valueobject.PaymentMethod]decimal.Decimal{
				valueobject.PaymentMethodCash: decimal.NewFromFloat(100),
			},
			decimal.NewFromFloat(140),
			decimal.NewFromFloat(135),
			"short",
			operator,
		)
		require.NoError(t, err)
		assert.True(t, closing.Difference.Equal(decimal.NewFromFloat(-5)))
		assert.True(t, closing.HasShortage())
		assert.False(t, closing.HasSurplus())
		assert.False(t, closing.IsBalanced())
		assert.Len(t, closing.GetDomainEvents(), 1)
	})

	t.Run("balanced closing", func(t *testing.T) {
		closing, err := NewCashClosing(date, valueobject.BranchPrimary,
			decimal.Zero, decimal.Zero, decimal.Zero, nil,
			decimal.NewFromFloat(80), decimal.NewFromFloat(80), "", operator)
		require.NoError(t, err)
		assert.True(t, closing.IsBalanced())
	})

	t.Run("surplus closing", func(t *testing.T) {
		closing, err := NewCashClosing(date, valueobject.BranchPrimary,
			decimal.Zero, decimal.Zero, decimal.Zero, nil,
			decimal.NewFromFloat(80), decimal.NewFromFloat(95), "", operator)
		require.NoError(t, err)
		assert.True(t, closing.HasSurplus())
		assert.True(t, closing.Difference.Equal(decimal.NewFromFloat(15)))
	})

	t.Run("rejects zero date", func(t *testing.T) {
		_, err := NewCashClosing(valueobject.Date{}, valueobject.BranchPrimary,
			decimal.Zero, decimal.Zero, decimal.Zero, nil,
			decimal.Zero, decimal.Zero, "", operator)
		assert.Error(t, err)
	})

	t.Run("rejects invalid branch", func(t *testing.T) {
		_, err := NewCashClosing(date, valueobject.Branch("KIOSK"),
			decimal.Zero, decimal.Zero, decimal.Zero, nil,
			decimal.Zero, decimal.Zero, "", operator)
		assert.Error(t, err)
	})

	t.Run("rejects negative counted cash", func(t *testing.T) {
		_, err := NewCashClosing(date, valueobject.BranchPrimary,
			decimal.Zero, decimal.Zero, decimal.Zero, nil,
			decimal.Zero, decimal.NewFromFloat(-1), "", operator)
		assert.Error(t, err)
	})

	t.Run("rejects empty operator", func(t *testing.T) {
		_, err := NewCashClosing(date, valueobject.BranchPrimary,
			decimal.Zero, decimal.Zero, decimal.Zero, nil,
			decimal.Zero, decimal.Zero, "", uuid.Nil)
		assert.Error(t, err)
	})
}
