package finance

import (
	"testing"

	"github.com/retailbooks/backend/internal/domain/ledger"
	"github.com/retailbooks/backend/internal/domain/shared/valueobject"
	"github.com/retailbooks/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClosing(t *testing.T, date string, branch valueobject.Branch, cashInDrawer float64) CashClosing {
	t.Helper()
	closing, err := NewCashClosing(
		valueobject.MustParseDate(date),
		branch,
		decimal.Zero,
		decimal.Zero,
		decimal.Zero,
		nil,
		decimal.NewFromFloat(cashInDrawer),
		decimal.NewFromFloat(cashInDrawer),
		"",
		uuid.New(),
	)
	require.NoError(t, err)
	return *closing
}

func TestReconciliationServiceCloseDay(t *testing.T) {
	service := NewReconciliationService()
	operator := uuid.New()

	t.Run("day with sale, prior closing and out-of-day expense", func(t *testing.T) {
		closing, err := service.CloseDay(CloseDayRequest{
			Date:   valueobject.MustParseDate("2024-03-10"),
			Branch: valueobject.BranchPrimary,
			Sales: []trade.Sale{
				completedSale(t, "2024-03-10", "A", 100, valueobject.BranchPrimary, valueobject.PaymentMethodCash),
			},
			Entries: []ledger.Entry{
				testEntry(t, "2024-03-05", "B", 30, ledger.EntryKindExpense, "Misc", valueobject.BranchPrimary),
			},
			PriorClosings: []CashClosing{
				testClosing(t, "2024-03-01", valueobject.BranchPrimary, 50),
			},
			CountedCash: decimal.NewFromFloat(150),
			ClosedBy:    operator,
		})
		require.NoError(t, err)

		assert.True(t, closing.OpeningBalance.Equal(decimal.NewFromFloat(50)))
		assert.True(t, closing.TotalExpense.IsZero())
		assert.True(t, closing.ExpectedInDrawer.Equal(decimal.NewFromFloat(150)))
		assert.True(t, closing.Difference.IsZero())
		assert.True(t, closing.IsBalanced())
	})

	t.Run("opening balance skips closing gaps", func(t *testing.T) {
		closing, err := service.CloseDay(CloseDayRequest{
			Date:   valueobject.MustParseDate("2024-03-03"),
			Branch: valueobject.BranchPrimary,
			PriorClosings: []CashClosing{
				testClosing(t, "2024-03-01", valueobject.BranchPrimary, 500),
			},
			CountedCash: decimal.NewFromFloat(500),
			ClosedBy:    operator,
		})
		require.NoError(t, err)
		assert.True(t, closing.OpeningBalance.Equal(decimal.NewFromFloat(500)))
	})

	t.Run("picks the most recent strictly prior closing", func(t *testing.T) {
		closing, err := service.CloseDay(CloseDayRequest{
			Date:   valueobject.MustParseDate("2024-03-10"),
			Branch: valueobject.BranchPrimary,
			PriorClosings: []CashClosing{
				testClosing(t, "2024-03-01", valueobject.BranchPrimary, 100),
				testClosing(t, "2024-03-08", valueobject.BranchPrimary, 250),
				testClosing(t, "2024-03-10", valueobject.BranchPrimary, 999), // same day, not prior
				testClosing(t, "2024-03-12", valueobject.BranchPrimary, 999), // future
				testClosing(t, "2024-03-09", valueobject.BranchSecondary, 999),
			},
			CountedCash: decimal.NewFromFloat(250),
			ClosedBy:    operator,
		})
		require.NoError(t, err)
		assert.True(t, closing.OpeningBalance.Equal(decimal.NewFromFloat(250)))
	})

	t.Run("no prior closing means zero opening balance", func(t *testing.T) {
		closing, err := service.CloseDay(CloseDayRequest{
			Date:        valueobject.MustParseDate("2024-03-10"),
			Branch:      valueobject.BranchPrimary,
			CountedCash: decimal.Zero,
			ClosedBy:    operator,
		})
		require.NoError(t, err)
		assert.True(t, closing.OpeningBalance.IsZero())
		assert.True(t, closing.ExpectedInDrawer.IsZero())
	})

	t.Run("only the cash split of a mixed sale moves the drawer", func(t *testing.T) {
		sale := splitSale(t, "2024-03-10", valueobject.BranchPrimary, []trade.PaymentSplit{
			{Method: valueobject.PaymentMethodCash, Amount: decimal.NewFromFloat(60)},
			{Method: valueobject.PaymentMethodCard, Amount: decimal.NewFromFloat(40)},
		})

		closing, err := service.CloseDay(CloseDayRequest{
			Date:        valueobject.MustParseDate("2024-03-10"),
			Branch:      valueobject.BranchPrimary,
			Sales:       []trade.Sale{sale},
			CountedCash: decimal.NewFromFloat(60),
			ClosedBy:    operator,
		})
		require.NoError(t, err)
		assert.True(t, closing.ExpectedInDrawer.Equal(decimal.NewFromFloat(60)))
		assert.True(t, closing.TotalIncome.Equal(decimal.NewFromFloat(100)))
		assert.True(t, closing.TotalsByMethod[valueobject.PaymentMethodCash].Equal(decimal.NewFromFloat(60)))
		assert.True(t, closing.TotalsByMethod[valueobject.PaymentMethodCard].Equal(decimal.NewFromFloat(40)))
	})

	t.Run("same-day expenses reduce the expectation", func(t *testing.T) {
		closing, err := service.CloseDay(CloseDayRequest{
			Date:   valueobject.MustParseDate("2024-03-10"),
			Branch: valueobject.BranchPrimary,
			Sales: []trade.Sale{
				completedSale(t, "2024-03-10", "A", 200, valueobject.BranchPrimary, valueobject.PaymentMethodCash),
			},
			Entries: []ledger.Entry{
				testEntry(t, "2024-03-10", "Fuel", 45, ledger.EntryKindExpense, "Logistics", valueobject.BranchPrimary),
				testEntry(t, "2024-03-10", "Other branch", 99, ledger.EntryKindExpense, "Logistics", valueobject.BranchSecondary),
			},
			CountedCash: decimal.NewFromFloat(155),
			ClosedBy:    operator,
		})
		require.NoError(t, err)
		assert.True(t, closing.TotalExpense.Equal(decimal.NewFromFloat(45)))
		assert.True(t, closing.ExpectedInDrawer.Equal(decimal.NewFromFloat(155)))
	})

	t.Run("a mismatch is recorded, never rejected", func(t *testing.T) {
		closing, err := service.CloseDay(CloseDayRequest{
			Date:   valueobject.MustParseDate("2024-03-10"),
			Branch: valueobject.BranchPrimary,
			Sales: []trade.Sale{
				completedSale(t, "2024-03-10", "A", 100, valueobject.BranchPrimary, valueobject.PaymentMethodCash),
			},
			CountedCash: decimal.NewFromFloat(92.50),
			Notes:       "till was short",
			ClosedBy:    operator,
		})
		require.NoError(t, err)
		assert.True(t, closing.Difference.Equal(decimal.NewFromFloat(-7.50)))
		assert.True(t, closing.HasShortage())
		assert.Equal(t, "till was short", closing.Notes)
	})

	t.Run("rejects negative counted cash", func(t *testing.T) {
		_, err := service.CloseDay(CloseDayRequest{
			Date:        valueobject.MustParseDate("2024-03-10"),
			Branch:      valueobject.BranchPrimary,
			CountedCash: decimal.NewFromFloat(-1),
			ClosedBy:    operator,
		})
		assert.Error(t, err)
	})

	t.Run("rejects missing date or branch", func(t *testing.T) {
		_, err := service.CloseDay(CloseDayRequest{
			Branch:      valueobject.BranchPrimary,
			CountedCash: decimal.Zero,
			ClosedBy:    operator,
		})
		assert.Error(t, err)

		_, err = service.CloseDay(CloseDayRequest{
			Date:        valueobject.MustParseDate("2024-03-10"),
			Branch:      valueobject.Branch("KIOSK"),
			CountedCash: decimal.Zero,
			ClosedBy:    operator,
		})
		assert.Error(t, err)
	})
}

func TestReconciliationServiceVerifyDay(t *testing.T) {
	service := NewReconciliationService()

	t.Run("reports gross cash and change for tendered sales", func(t *testing.T) {
		sale, err := trade.NewSale(valueobject.MustParseDate("2024-03-10"), "Ana", valueobject.BranchPrimary,
			[]trade.SaleItem{{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.NewFromFloat(80)}})
		require.NoError(t, err)
		require.NoError(t, sale.SetSinglePayment(valueobject.PaymentMethodCash))
		require.NoError(t, sale.RegisterCashTender(decimal.NewFromFloat(100)))
		require.NoError(t, sale.Complete())

		verification, err := service.VerifyDay(valueobject.MustParseDate("2024-03-10"), valueobject.BranchPrimary, []trade.Sale{*sale})
		require.NoError(t, err)
		assert.Equal(t, 1, verification.CompletedSales)
		assert.True(t, verification.CashSales.Equal(decimal.NewFromFloat(80)))
		assert.True(t, verification.GrossCashReceived.Equal(decimal.NewFromFloat(100)))
		assert.True(t, verification.ChangeGiven.Equal(decimal.NewFromFloat(20)))
	})

	t.Run("sale without tender contributes its cash portion", func(t *testing.T) {
		sales := []trade.Sale{
			completedSale(t, "2024-03-10", "A", 50, valueobject.BranchPrimary, valueobject.PaymentMethodCash),
		}

		verification, err := service.VerifyDay(valueobject.MustParseDate("2024-03-10"), valueobject.BranchPrimary, sales)
		require.NoError(t, err)
		assert.True(t, verification.GrossCashReceived.Equal(decimal.NewFromFloat(50)))
		assert.True(t, verification.ChangeGiven.IsZero())
	})

	t.Run("ignores other days and branches", func(t *testing.T) {
		sales := []trade.Sale{
			completedSale(t, "2024-03-09", "A", 50, valueobject.BranchPrimary, valueobject.PaymentMethodCash),
			completedSale(t, "2024-03-10", "B", 60, valueobject.BranchSecondary, valueobject.PaymentMethodCash),
		}

		verification, err := service.VerifyDay(valueobject.MustParseDate("2024-03-10"), valueobject.BranchPrimary, sales)
		require.NoError(t, err)
		assert.Equal(t, 0, verification.CompletedSales)
		assert.True(t, verification.CashSales.IsZero())
	})
}

func TestLatestClosingBefore(t *testing.T) {
	closings := []CashClosing{
		testClosing(t, "2024-03-01", valueobject.BranchPrimary, 100),
		testClosing(t, "2024-03-05", valueobject.BranchPrimary, 200),
		testClosing(t, "2024-03-05", valueobject.BranchSecondary, 300),
	}

	t.Run("finds latest strictly prior for the branch", func(t *testing.T) {
		latest := LatestClosingBefore(closings, valueobject.MustParseDate("2024-03-06"), valueobject.BranchPrimary)
		require.NotNil(t, latest)
		assert.Equal(t, "2024-03-05", latest.Date.String())
	})

	t.Run("same-day closings are not prior", func(t *testing.T) {
		latest := LatestClosingBefore(closings, valueobject.MustParseDate("2024-03-05"), valueobject.BranchPrimary)
		require.NotNil(t, latest)
		assert.Equal(t, "2024-03-01", latest.Date.String())
	})

	t.Run("returns nil when nothing is prior", func(t *testing.T) {
		assert.Nil(t, LatestClosingBefore(closings, valueobject.MustParseDate("2024-03-01"), valueobject.BranchPrimary))
		assert.Nil(t, LatestClosingBefore(nil, valueobject.MustParseDate("2024-03-10"), valueobject.BranchPrimary))
	})
}
