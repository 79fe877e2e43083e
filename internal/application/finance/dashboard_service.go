package finance

import (
	"context"

	"github.com/retailbooks/backend/internal/domain/finance"
	"github.com/retailbooks/backend/internal/domain/ledger"
	"github.com/retailbooks/backend/internal/domain/shared"
	"github.com/retailbooks/backend/internal/domain/shared/valueobject"
	"github.com/retailbooks/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// DashboardService computes the period summaries behind the dashboard
// cards: revenue, receivables, expenses, carried balance and their
// trend against the previous period.
type DashboardService struct {
	entryRepo  ledger.EntryRepository
	saleRepo   trade.SaleRepository
	aggregator *finance.PeriodAggregator
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(entryRepo ledger.EntryRepository, saleRepo trade.SaleRepository) *DashboardService {
	return &DashboardService{
		entryRepo:  entryRepo,
		saleRepo:   saleRepo,
		aggregator: finance.NewPeriodAggregator(),
	}
}

// SummaryRequest selects the reference period for the dashboard
type SummaryRequest struct {
	Reference   string `form:"reference"`
	Granularity string `form:"granularity"`
	Branch      string `form:"branch"`
}

// PeriodSummaryResponse is one period's aggregate block
type PeriodSummaryResponse struct {
	PeriodStart        string          `json:"period_start"`
	PeriodEnd          string          `json:"period_end"`
	Revenue            decimal.Decimal `json:"revenue"`
	PendingReceivables decimal.Decimal `json:"pending_receivables"`
	Expenses           decimal.Decimal `json:"expenses"`
	AccumulatedBalance decimal.Decimal `json:"accumulated_balance"`
	NetResult          decimal.Decimal `json:"net_result"`
}

// TrendResponse is the percentage change per metric
type TrendResponse struct {
	Revenue            decimal.Decimal `json:"revenue"`
	PendingReceivables decimal.Decimal `json:"pending_receivables"`
	Expenses           decimal.Decimal `json:"expenses"`
}

// SummaryResponse is the dashboard payload
type SummaryResponse struct {
	Current  PeriodSummaryResponse `json:"current"`
	Previous PeriodSummaryResponse `json:"previous"`
	Trend    TrendResponse         `json:"trend"`
}

// GetSummary computes the dashboard aggregates for a reference date,
// granularity and branch filter. An empty reference defaults to today;
// an empty granularity defaults to the month view.
func (s *DashboardService) GetSummary(ctx context.Context, req SummaryRequest) (*SummaryResponse, error) {
	reference := valueobject.Today()
	if req.Reference != "" {
		parsed, err := valueobject.ParseDate(req.Reference)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_DATE", "reference must be in YYYY-MM-DD format")
		}
		reference = parsed
	}

	granularity := finance.GranularityMonth
	if req.Granularity != "" {
		granularity = finance.Granularity(req.Granularity)
		if !granularity.IsValid() {
			return nil, shared.NewDomainError("INVALID_GRANULARITY", "Granularity must be DAY, WEEK or MONTH")
		}
	}

	branch, ok := valueobject.ParseBranchFilter(req.Branch)
	if !ok {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch is not valid")
	}

	// The carried balance walks all history, so the snapshot is
	// unbounded on both sides.
	entries, err := s.entryRepo.FindInRange(ctx, branch, valueobject.DateRange{})
	if err != nil {
		return nil, err
	}
	sales, err := s.saleRepo.FindInRange(ctx, branch, valueobject.DateRange{})
	if err != nil {
		return nil, err
	}

	report, err := s.aggregator.AggregateWithTrend(reference, granularity, branch, sales, entries)
	if err != nil {
		return nil, err
	}

	return &SummaryResponse{
		Current:  toPeriodSummaryResponse(report.Current),
		Previous: toPeriodSummaryResponse(report.Previous),
		Trend: TrendResponse{
			Revenue:            report.Trend.Revenue,
			PendingReceivables: report.Trend.PendingReceivables,
			Expenses:           report.Trend.Expenses,
		},
	}, nil
}

func toPeriodSummaryResponse(summary finance.PeriodSummary) PeriodSummaryResponse {
	return PeriodSummaryResponse{
		PeriodStart:        summary.Period.Start.String(),
		PeriodEnd:          summary.Period.End.String(),
		Revenue:            summary.Revenue,
		PendingReceivables: summary.PendingReceivables,
		Expenses:           summary.Expenses,
		AccumulatedBalance: summary.AccumulatedBalance,
		NetResult:          summary.NetResult,
	}
}
