package finance

import (
	"sort"

	"github.com/retailbooks/backend/internal/domain/catalog"
	"github.com/retailbooks/backend/internal/domain/ledger"
	"github.com/retailbooks/backend/internal/domain/shared/valueobject"
	"github.com/retailbooks/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseLine is one description-level row inside an expense category
type ExpenseLine struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// ExpenseGroup is one category of operating expenses with its rows
type ExpenseGroup struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Lines    []ExpenseLine   `json:"lines"`
}

// IncomeStatement is the management income statement (DRE) for one
// period: revenue, cost of goods, operating expenses and the resulting
// net profit. It is a pure period statement and never carries balances
// from earlier periods.
type IncomeStatement struct {
	GrossRevenue  decimal.Decimal `json:"gross_revenue"`
	COGS          decimal.Decimal `json:"cogs"`
	GrossProfit   decimal.Decimal `json:"gross_profit"`
	ExpenseGroups []ExpenseGroup  `json:"expense_groups"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetProfit     decimal.Decimal `json:"net_profit"`
	MarginPct     decimal.Decimal `json:"margin_pct"`
}

// IncomeStatementBuilder derives income statements from sales, ledger
// entries and catalog costs. Stateless; safe for concurrent use.
type IncomeStatementBuilder struct{}

// NewIncomeStatementBuilder creates a new IncomeStatementBuilder
func NewIncomeStatementBuilder() *IncomeStatementBuilder {
	return &IncomeStatementBuilder{}
}

// Build computes the statement for a branch filter and date range.
//
// Goods sold are valued at each product's current unit cost, not at a
// cost snapshot taken when the sale happened. A line item whose product
// no longer exists contributes zero cost; reporting degrades instead of
// failing. Expenses group by category and then by description within
// the category. The margin is zero whenever gross revenue is zero.
func (b *IncomeStatementBuilder) Build(
	sales []trade.Sale,
	entries []ledger.Entry,
	products map[uuid.UUID]*catalog.Product,
	branch valueobject.BranchFilter,
	dateRange valueobject.DateRange,
) IncomeStatement {
	statement := IncomeStatement{
		GrossRevenue:  decimal.Zero,
		COGS:          decimal.Zero,
		TotalExpenses: decimal.Zero,
	}

	for i := range sales {
		sale := &sales[i]
		if !sale.IsCompleted() || !branch.Matches(sale.Branch) || !dateRange.Contains(sale.Date) {
			continue
		}
		statement.GrossRevenue = statement.GrossRevenue.Add(sale.Total)
		for _, item := range sale.Items {
			product, ok := products[item.ProductID]
			if !ok {
				continue
			}
			cost := product.UnitCost.Mul(decimal.NewFromInt(int64(item.Quantity)))
			statement.COGS = statement.COGS.Add(cost)
		}
	}
	statement.GrossProfit = statement.GrossRevenue.Sub(statement.COGS)

	type lineKey struct{ category, description string }
	categoryTotals := make(map[string]decimal.Decimal)
	lineTotals := make(map[lineKey]decimal.Decimal)
	for i := range entries {
		entry := &entries[i]
		if !entry.IsExpense() || !branch.Matches(entry.Branch) || !dateRange.Contains(entry.Date) {
			continue
		}
		statement.TotalExpenses = statement.TotalExpenses.Add(entry.Amount)
		categoryTotals[entry.Category] = categoryTotals[entry.Category].Add(entry.Amount)
		key := lineKey{entry.Category, entry.Description}
		lineTotals[key] = lineTotals[key].Add(entry.Amount)
	}

	statement.ExpenseGroups = make([]ExpenseGroup, 0, len(categoryTotals))
	for category, total := range categoryTotals {
		group := ExpenseGroup{Category: category, Total: total}
		for key, amount := range lineTotals {
			if key.category == category {
				group.Lines = append(group.Lines, ExpenseLine{Description: key.description, Amount: amount})
			}
		}
		sort.Slice(group.Lines, func(i, j int) bool {
			if !group.Lines[i].Amount.Equal(group.Lines[j].Amount) {
				return group.Lines[i].Amount.GreaterThan(group.Lines[j].Amount)
			}
			return group.Lines[i].Description < group.Lines[j].Description
		})
		statement.ExpenseGroups = append(statement.ExpenseGroups, group)
	}
	sort.Slice(statement.ExpenseGroups, func(i, j int) bool {
		if !statement.ExpenseGroups[i].Total.Equal(statement.ExpenseGroups[j].Total) {
			return statement.ExpenseGroups[i].Total.GreaterThan(statement.ExpenseGroups[j].Total)
		}
		return statement.ExpenseGroups[i].Category < statement.ExpenseGroups[j].Category
	})

	statement.NetProfit = statement.GrossProfit.Sub(statement.TotalExpenses)
	if statement.GrossRevenue.IsPositive() {
		statement.MarginPct = statement.NetProfit.Div(statement.GrossRevenue).Mul(oneHundred)
	} else {
		statement.MarginPct = decimal.Zero
	}

	return statement
}
