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

func testEntry(t *testing.T, date string, description string, amount float64, kind ledger.EntryKind, category string, branch valueobject.Branch) ledger.Entry {
	t.Helper()
	entry, err := ledger.NewEntry(
		valueobject.MustParseDate(date),
		description,
		valueobject.NewMoneyBRLFromFloat(amount),
		kind,
		category,
		branch,
	)
	require.NoError(t, err)
	return *entry
}

func completedSale(t *testing.T, date string, customer string, total float64, branch valueobject.Branch, method valueobject.PaymentMethod) trade.Sale {
	t.Helper()
	sale, err := trade.NewSale(
		valueobject.MustParseDate(date),
		customer,
		branch,
		[]trade.SaleItem{{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.NewFromFloat(total)}},
	)
	require.NoError(t, err)
	require.NoError(t, sale.SetSinglePayment(method))
	require.NoError(t, sale.Complete())
	return *sale
}

func splitSale(t *testing.T, date string, branch valueobject.Branch, splits []trade.PaymentSplit) trade.Sale {
	t.Helper()
	total := decimal.Zero
	for _, split := range splits {
		total = total.Add(split.Amount)
	}
	sale, err := trade.NewSale(
		valueobject.MustParseDate(date),
		"Split customer",
		branch,
		[]trade.SaleItem{{ProductID: uuid.New(), Quantity: 1, UnitPrice: total}},
	)
	require.NoError(t, err)
	require.NoError(t, sale.SetPayments(splits))
	require.NoError(t, sale.Complete())
	return *sale
}

func sumByKind(records []UnifiedRecord, kind ledger.EntryKind) decimal.Decimal {
	sum := decimal.Zero
	for _, record := range records {
		if record.Kind == kind {
			sum = sum.Add(record.Amount)
		}
	}
	return sum
}

func TestLedgerUnifierUnify(t *testing.T) {
	unifier := NewLedgerUnifier()
	everything := valueobject.DateRange{}
	allBranches := valueobject.FilterAllBranches()

	t.Run("merges entries and completed sales", func(t *testing.T) {
		entries := []ledger.Entry{
			testEntry(t, "2025-03-05", "Stock purchase", 300, ledger.EntryKindExpense, "Inventory", valueobject.BranchPrimary),
			testEntry(t, "2025-03-06", "Equipment resale", 80, ledger.EntryKindIncome, "Other", valueobject.BranchPrimary),
		}
		sales := []trade.Sale{
			completedSale(t, "2025-03-07", "Ana", 120, valueobject.BranchPrimary, valueobject.PaymentMethodCash),
		}

		records := unifier.Unify(entries, sales, allBranches, everything)
		require.Len(t, records, 3)
		assert.Equal(t, "2025-03-07", records[0].Date.String())
		assert.Equal(t, RecordSourceSale, records[0].Source)
	})

	t.Run("drops legacy sales-category income entries", func(t *testing.T) {
		entries := []ledger.Entry{
			testEntry(t, "2025-03-05", "Daily sales", 500, ledger.EntryKindIncome, ledger.ReservedSalesCategory, valueobject.BranchPrimary),
			testEntry(t, "2025-03-05", "Freight reimbursement", 40, ledger.EntryKindIncome, "Other", valueobject.BranchPrimary),
		}
		sales := []trade.Sale{
			completedSale(t, "2025-03-05", "Ana", 500, valueobject.BranchPrimary, valueobject.PaymentMethodCash),
		}

		records := unifier.Unify(entries, sales, allBranches, everything)
		require.Len(t, records, 2)
		assert.True(t, sumByKind(records, ledger.EntryKindIncome).Equal(decimal.NewFromFloat(540)))
	})

	t.Run("keeps expense entries in the reserved category", func(t *testing.T) {
		entries := []ledger.Entry{
			testEntry(t, "2025-03-05", "Refund paid out", 50, ledger.EntryKindExpense, ledger.ReservedSalesCategory, valueobject.BranchPrimary),
		}
		records := unifier.Unify(entries, nil, allBranches, everything)
		require.Len(t, records, 1)
	})

	t.Run("split sale yields one record per split summing to total", func(t *testing.T) {
		sale := splitSale(t, "2025-03-08", valueobject.BranchPrimary, []trade.PaymentSplit{
			{Method: valueobject.PaymentMethodCash, Amount: decimal.NewFromFloat(70)},
			{Method: valueobject.PaymentMethodCard, Amount: decimal.NewFromFloat(30)},
		})

		records := unifier.Unify(nil, []trade.Sale{sale}, allBranches, everything)
		require.Len(t, records, 2)
		assert.True(t, sumByKind(records, ledger.EntryKindIncome).Equal(sale.Total))
		assert.NotEqual(t, records[0].ID, records[1].ID)
		for _, record := range records {
			assert.Equal(t, sale.ID, record.SourceID)
			require.NotNil(t, record.PaymentMethod)
		}
	})

	t.Run("synthetic totals equal sale totals", func(t *testing.T) {
		sales := []trade.Sale{
			completedSale(t, "2025-03-01", "A", 100, valueobject.BranchPrimary, valueobject.PaymentMethodCash),
			completedSale(t, "2025-03-02", "B", 250.75, valueobject.BranchPrimary, valueobject.PaymentMethodPix),
			splitSale(t, "2025-03-03", valueobject.BranchPrimary, []trade.PaymentSplit{
				{Method: valueobject.PaymentMethodCash, Amount: decimal.NewFromFloat(60)},
				{Method: valueobject.PaymentMethodCard, Amount: decimal.NewFromFloat(40)},
			}),
		}

		records := unifier.Unify(nil, sales, allBranches, everything)
		assert.True(t, sumByKind(records, ledger.EntryKindIncome).Equal(decimal.NewFromFloat(450.75)))
	})

	t.Run("excludes pending and cancelled sales", func(t *testing.T) {
		pending, err := trade.NewSale(valueobject.MustParseDate("2025-03-04"), "P", valueobject.BranchPrimary,
			[]trade.SaleItem{{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.NewFromFloat(10)}})
		require.NoError(t, err)

		cancelled, err := trade.NewSale(valueobject.MustParseDate("2025-03-04"), "C", valueobject.BranchPrimary,
			[]trade.SaleItem{{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.NewFromFloat(10)}})
		require.NoError(t, err)
		require.NoError(t, cancelled.Cancel("gave up"))

		records := unifier.Unify(nil, []trade.Sale{*pending, *cancelled}, allBranches, everything)
		assert.Empty(t, records)
	})

	t.Run("filters by branch and date range", func(t *testing.T) {
		entries := []ledger.Entry{
			testEntry(t, "2025-03-05", "Primary expense", 10, ledger.EntryKindExpense, "Misc", valueobject.BranchPrimary),
			testEntry(t, "2025-03-05", "Secondary expense", 20, ledger.EntryKindExpense, "Misc", valueobject.BranchSecondary),
			testEntry(t, "2025-04-05", "Out of range", 30, ledger.EntryKindExpense, "Misc", valueobject.BranchPrimary),
		}
		march := valueobject.NewDateRange(valueobject.MustParseDate("2025-03-01"), valueobject.MustParseDate("2025-03-31"))

		records := unifier.Unify(entries, nil, valueobject.FilterBranch(valueobject.BranchPrimary), march)
		require.Len(t, records, 1)
		assert.Equal(t, "Primary expense", records[0].Description)
	})

	t.Run("ordering is descending date then descending id", func(t *testing.T) {
		entries := []ledger.Entry{
			testEntry(t, "2025-03-01", "a", 1, ledger.EntryKindExpense, "Misc", valueobject.BranchPrimary),
			testEntry(t, "2025-03-03", "b", 1, ledger.EntryKindExpense, "Misc", valueobject.BranchPrimary),
			testEntry(t, "2025-03-02", "c", 1, ledger.EntryKindExpense, "Misc", valueobject.BranchPrimary),
			testEntry(t, "2025-03-02", "d", 1, ledger.EntryKindExpense, "Misc", valueobject.BranchPrimary),
		}

		records := unifier.Unify(entries, nil, allBranches, everything)
		require.Len(t, records, 4)
		for i := 1; i < len(records); i++ {
			cmp := records[i-1].Date.Compare(records[i].Date)
			if cmp == 0 {
				assert.Greater(t, records[i-1].ID.String(), records[i].ID.String())
			} else {
				assert.Equal(t, 1, cmp)
			}
		}
	})

	t.Run("unification is idempotent", func(t *testing.T) {
		entries := []ledger.Entry{
			testEntry(t, "2025-03-01", "a", 12, ledger.EntryKindExpense, "Misc", valueobject.BranchPrimary),
		}
		sales := []trade.Sale{
			completedSale(t, "2025-03-02", "Ana", 99, valueobject.BranchPrimary, valueobject.PaymentMethodCard),
			splitSale(t, "2025-03-02", valueobject.BranchPrimary, []trade.PaymentSplit{
				{Method: valueobject.PaymentMethodCash, Amount: decimal.NewFromFloat(5)},
				{Method: valueobject.PaymentMethodPix, Amount: decimal.NewFromFloat(15)},
			}),
		}

		first := unifier.Unify(entries, sales, allBranches, everything)
		second := unifier.Unify(entries, sales, allBranches, everything)
		assert.Equal(t, first, second)
	})
}

func TestSaleRecordIDs(t *testing.T) {
	saleID := uuid.New()

	t.Run("deterministic per sale", func(t *testing.T) {
		assert.Equal(t, SaleRecordID(saleID), SaleRecordID(saleID))
		assert.NotEqual(t, SaleRecordID(saleID), SaleRecordID(uuid.New()))
	})

	t.Run("deterministic per split", func(t *testing.T) {
		assert.Equal(t, SaleSplitRecordID(saleID, 0), SaleSplitRecordID(saleID, 0))
		assert.NotEqual(t, SaleSplitRecordID(saleID, 0), SaleSplitRecordID(saleID, 1))
		assert.NotEqual(t, SaleRecordID(saleID), SaleSplitRecordID(saleID, 0))
	})
}
