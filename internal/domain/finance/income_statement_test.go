package finance

import (
	"testing"

	"github.com/retailbooks/backend/internal/domain/catalog"
	"github.com/retailbooks/backend/internal/domain/ledger"
	"github.com/retailbooks/backend/internal/domain/shared/valueobject"
	"github.com/retailbooks/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(t *testing.T, name string, cost float64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, decimal.NewFromFloat(cost))
	require.NoError(t, err)
	return product
}

func saleWithItems(t *testing.T, date string, branch valueobject.Branch, items []trade.SaleItem) trade.Sale {
	t.Helper()
	sale, err := trade.NewSale(valueobject.MustParseDate(date), "Customer", branch, items)
	require.NoError(t, err)
	require.NoError(t, sale.SetSinglePayment(valueobject.PaymentMethodCash))
	require.NoError(t, sale.Complete())
	return *sale
}

func TestIncomeStatementBuilderBuild(t *testing.T) {
	builder := NewIncomeStatementBuilder()
	allBranches := valueobject.FilterAllBranches()
	everything := valueobject.DateRange{}

	t.Run("values goods at current unit cost", func(t *testing.T) {
		water := testProduct(t, "Mineral water", 1.20)
		gas := testProduct(t, "Gas canister", 70.00)
		products := map[uuid.UUID]*catalog.Product{water.ID: water, gas.ID: gas}

		sales := []trade.Sale{
			saleWithItems(t, "2025-03-10", valueobject.BranchPrimary, []trade.SaleItem{
				{ProductID: water.ID, Quantity: 10, UnitPrice: decimal.NewFromFloat(3.50)},
				{ProductID: gas.ID, Quantity: 1, UnitPrice: decimal.NewFromFloat(110.00)},
			}),
		}

		statement := builder.Build(sales, nil, products, allBranches, everything)
		assert.True(t, statement.GrossRevenue.Equal(decimal.NewFromFloat(145.00)))
		assert.True(t, statement.COGS.Equal(decimal.NewFromFloat(82.00)))
		assert.True(t, statement.GrossProfit.Equal(decimal.NewFromFloat(63.00)))
	})

	t.Run("missing product contributes zero cost", func(t *testing.T) {
		sales := []trade.Sale{
			saleWithItems(t, "2025-03-10", valueobject.BranchPrimary, []trade.SaleItem{
				{ProductID: uuid.New(), Quantity: 5, UnitPrice: decimal.NewFromFloat(20)},
			}),
		}

		statement := builder.Build(sales, nil, map[uuid.UUID]*catalog.Product{}, allBranches, everything)
		assert.True(t, statement.GrossRevenue.Equal(decimal.NewFromFloat(100)))
		assert.True(t, statement.COGS.IsZero())
		assert.True(t, statement.GrossProfit.Equal(decimal.NewFromFloat(100)))
	})

	t.Run("groups expenses by category then description", func(t *testing.T) {
		entries := []ledger.Entry{
			testEntry(t, "2025-03-01", "Rent march", 1500, ledger.EntryKindExpense, "Rent", valueobject.BranchPrimary),
			testEntry(t, "2025-03-05", "Electricity", 200, ledger.EntryKindExpense, "Utilities", valueobject.BranchPrimary),
			testEntry(t, "2025-03-06", "Water", 90, ledger.EntryKindExpense, "Utilities", valueobject.BranchPrimary),
			testEntry(t, "2025-03-20", "Electricity", 50, ledger.EntryKindExpense, "Utilities", valueobject.BranchPrimary),
			testEntry(t, "2025-03-07", "Freight reimbursement", 40, ledger.EntryKindIncome, "Other", valueobject.BranchPrimary),
		}

		statement := builder.Build(nil, entries, nil, allBranches, everything)
		assert.True(t, statement.TotalExpenses.Equal(decimal.NewFromFloat(1840)))
		require.Len(t, statement.ExpenseGroups, 2)

		rent := statement.ExpenseGroups[0]
		assert.Equal(t, "Rent", rent.Category)
		assert.True(t, rent.Total.Equal(decimal.NewFromFloat(1500)))

		utilities := statement.ExpenseGroups[1]
		assert.Equal(t, "Utilities", utilities.Category)
		assert.True(t, utilities.Total.Equal(decimal.NewFromFloat(340)))
		require.Len(t, utilities.Lines, 2)
		assert.Equal(t, "Electricity", utilities.Lines[0].Description)
		assert.True(t, utilities.Lines[0].Amount.Equal(decimal.NewFromFloat(250)))
		assert.Equal(t, "Water", utilities.Lines[1].Description)
	})

	t.Run("net profit reconciles with gross profit and expenses", func(t *testing.T) {
		water := testProduct(t, "Mineral water", 1.20)
		products := map[uuid.UUID]*catalog.Product{water.ID: water}

		sales := []trade.Sale{
			saleWithItems(t, "2025-03-10", valueobject.BranchPrimary, []trade.SaleItem{
				{ProductID: water.ID, Quantity: 100, UnitPrice: decimal.NewFromFloat(3.00)},
			}),
		}
		entries := []ledger.Entry{
			testEntry(t, "2025-03-12", "Fuel", 60, ledger.EntryKindExpense, "Logistics", valueobject.BranchPrimary),
		}

		statement := builder.Build(sales, entries, products, allBranches, everything)
		assert.True(t, statement.NetProfit.Equal(statement.GrossProfit.Sub(statement.TotalExpenses)))
		assert.True(t, statement.NetProfit.Equal(decimal.NewFromFloat(120)))
		assert.True(t, statement.MarginPct.Equal(decimal.NewFromFloat(40)))
	})

	t.Run("margin is zero on zero revenue", func(t *testing.T) {
		entries := []ledger.Entry{
			testEntry(t, "2025-03-12", "Fuel", 60, ledger.EntryKindExpense, "Logistics", valueobject.BranchPrimary),
		}

		statement := builder.Build(nil, entries, nil, allBranches, everything)
		assert.True(t, statement.GrossRevenue.IsZero())
		assert.True(t, statement.MarginPct.IsZero())
		assert.True(t, statement.NetProfit.Equal(decimal.NewFromFloat(-60)))
	})

	t.Run("filters by branch and range", func(t *testing.T) {
		water := testProduct(t, "Mineral water", 1.00)
		products := map[uuid.UUID]*catalog.Product{water.ID: water}

		sales := []trade.Sale{
			saleWithItems(t, "2025-03-10", valueobject.BranchPrimary, []trade.SaleItem{
				{ProductID: water.ID, Quantity: 1, UnitPrice: decimal.NewFromFloat(3)},
			}),
			saleWithItems(t, "2025-03-10", valueobject.BranchSecondary, []trade.SaleItem{
				{ProductID: water.ID, Quantity: 1, UnitPrice: decimal.NewFromFloat(5)},
			}),
			saleWithItems(t, "2025-04-10", valueobject.BranchPrimary, []trade.SaleItem{
				{ProductID: water.ID, Quantity: 1, UnitPrice: decimal.NewFromFloat(7)},
			}),
		}
		march := valueobject.NewDateRange(valueobject.MustParseDate("2025-03-01"), valueobject.MustParseDate("2025-03-31"))

		statement := builder.Build(sales, nil, products, valueobject.FilterBranch(valueobject.BranchPrimary), march)
		assert.True(t, statement.GrossRevenue.Equal(decimal.NewFromFloat(3)))
	})

	t.Run("pending sales never enter the statement", func(t *testing.T) {
		pending := pendingSaleOn(t, "2025-03-10", 500, valueobject.BranchPrimary)

		statement := builder.Build([]trade.Sale{pending}, nil, nil, allBranches, everything)
		assert.True(t, statement.GrossRevenue.IsZero())
	})
}
