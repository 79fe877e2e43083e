package finance

import (
	"context"

	"github.com/retailbooks/backend/internal/domain/catalog"
	"github.com/retailbooks/backend/internal/domain/finance"
	"github.com/retailbooks/backend/internal/domain/ledger"
	"github.com/retailbooks/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IncomeStatementService assembles the inputs for the DRE builder:
// sales and entries for the window, plus the current catalog costs.
type IncomeStatementService struct {
	entryRepo   ledger.EntryRepository
	saleRepo    trade.SaleRepository
	productRepo catalog.ProductRepository
	builder     *finance.IncomeStatementBuilder
}

// NewIncomeStatementService creates a new IncomeStatementService
func NewIncomeStatementService(
	entryRepo ledger.EntryRepository,
	saleRepo trade.SaleRepository,
	productRepo catalog.ProductRepository,
) *IncomeStatementService {
	return &IncomeStatementService{
		entryRepo:   entryRepo,
		saleRepo:    saleRepo,
		productRepo: productRepo,
		builder:     finance.NewIncomeStatementBuilder(),
	}
}

// StatementRequest selects the reporting window
type StatementRequest struct {
	Branch   string `form:"branch"`
	FromDate string `form:"from_date"`
	ToDate   string `form:"to_date"`
}

// StatementResponse is the income statement payload
type StatementResponse struct {
	GrossRevenue  decimal.Decimal        `json:"gross_revenue"`
	COGS          decimal.Decimal        `json:"cogs"`
	GrossProfit   decimal.Decimal        `json:"gross_profit"`
	ExpenseGroups []finance.ExpenseGroup `json:"expense_groups"`
	TotalExpenses decimal.Decimal        `json:"total_expenses"`
	NetProfit     decimal.Decimal        `json:"net_profit"`
	MarginPct     decimal.Decimal        `json:"margin_pct"`
}

// GetStatement builds the income statement for the window
func (s *IncomeStatementService) GetStatement(ctx context.Context, req StatementRequest) (*StatementResponse, error) {
	branch, dateRange, err := parseScope(req.Branch, req.FromDate, req.ToDate)
	if err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.FindInRange(ctx, branch, dateRange)
	if err != nil {
		return nil, err
	}
	sales, err := s.saleRepo.FindInRange(ctx, branch, dateRange)
	if err != nil {
		return nil, err
	}

	productIDs := make([]uuid.UUID, 0)
	seen := make(map[uuid.UUID]bool)
	for i := range sales {
		for _, item := range sales[i].Items {
			if !seen[item.ProductID] {
				seen[item.ProductID] = true
				productIDs = append(productIDs, item.ProductID)
			}
		}
	}
	products, err := s.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	statement := s.builder.Build(sales, entries, products, branch, dateRange)

	return &StatementResponse{
		GrossRevenue:  statement.GrossRevenue,
		COGS:          statement.COGS,
		GrossProfit:   statement.GrossProfit,
		ExpenseGroups: statement.ExpenseGroups,
		TotalExpenses: statement.TotalExpenses,
		NetProfit:     statement.NetProfit,
		MarginPct:     statement.MarginPct,
	}, nil
}
