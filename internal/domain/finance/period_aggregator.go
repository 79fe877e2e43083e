package finance

import (
	"github.com/retailbooks/backend/internal/domain/ledger"
	"github.com/retailbooks/backend/internal/domain/shared"
	"github.com/retailbooks/backend/internal/domain/shared/valueobject"
	"github.com/retailbooks/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// Granularity represents the reporting period size
type Granularity string

const (
	GranularityDay   Granularity = "DAY"
	GranularityWeek  Granularity = "WEEK"
	GranularityMonth Granularity = "MONTH"
)

// IsValid checks if the granularity is a valid Granularity
func (g Granularity) IsValid() bool {
	switch g {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return true
	}
	return false
}

// String returns the string representation of Granularity
func (g Granularity) String() string {
	return string(g)
}

// PeriodBounds returns the inclusive date range of the period
// containing the reference date. Weeks run Sunday through Saturday;
// months cover the full calendar month.
func PeriodBounds(reference valueobject.Date, granularity Granularity) (valueobject.DateRange, error) {
	switch granularity {
	case GranularityDay:
		return valueobject.SingleDay(reference), nil
	case GranularityWeek:
		return valueobject.NewDateRange(reference.StartOfWeek(), reference.EndOfWeek()), nil
	case GranularityMonth:
		return valueobject.NewDateRange(reference.StartOfMonth(), reference.EndOfMonth()), nil
	default:
		return valueobject.DateRange{}, shared.NewDomainError("INVALID_GRANULARITY", "Granularity must be DAY, WEEK or MONTH")
	}
}

// PeriodSummary holds the aggregates for one reporting period.
// AccumulatedBalance is the running net position carried in from all
// history before the period start; it is never reset per period.
type PeriodSummary struct {
	Period             valueobject.DateRange `json:"period"`
	Revenue            decimal.Decimal       `json:"revenue"`
	PendingReceivables decimal.Decimal       `json:"pending_receivables"`
	Expenses           decimal.Decimal       `json:"expenses"`
	AccumulatedBalance decimal.Decimal       `json:"accumulated_balance"`
	NetResult          decimal.Decimal       `json:"net_result"`
}

// TrendDelta is the percentage change of each metric against the
// immediately preceding period of equal granularity. A zero previous
// value reports +100 when the current value is positive, 0 otherwise,
// so the signal stays meaningful without dividing by zero.
type TrendDelta struct {
	Revenue            decimal.Decimal `json:"revenue"`
	PendingReceivables decimal.Decimal `json:"pending_receivables"`
	Expenses           decimal.Decimal `json:"expenses"`
}

// PeriodReport is a period summary with its trend against the prior period
type PeriodReport struct {
	Current  PeriodSummary `json:"current"`
	Previous PeriodSummary `json:"previous"`
	Trend    TrendDelta    `json:"trend"`
}

// PeriodAggregator computes period-bounded financial aggregates over
// in-memory snapshots of sales and ledger entries. It holds no state
// and is safe for concurrent use.
type PeriodAggregator struct{}

// NewPeriodAggregator creates a new PeriodAggregator
func NewPeriodAggregator() *PeriodAggregator {
	return &PeriodAggregator{}
}

// Aggregate computes the summary for the period containing the
// reference date.
//
// Revenue counts completed sales in range; pending sales feed only the
// receivables figure and cancelled sales count toward nothing. The
// accumulated balance walks all history strictly before the period
// start: every income entry outside the reserved sales category, plus
// every completed sale, minus every expense entry. Comparisons are
// whole-day, so a record dated on the period start day is inside the
// period, never in the carried balance.
func (a *PeriodAggregator) Aggregate(
	reference valueobject.Date,
	granularity Granularity,
	branch valueobject.BranchFilter,
	sales []trade.Sale,
	entries []ledger.Entry,
) (PeriodSummary, error) {
	period, err := PeriodBounds(reference, granularity)
	if err != nil {
		return PeriodSummary{}, err
	}

	summary := PeriodSummary{
		Period:             period,
		Revenue:            decimal.Zero,
		PendingReceivables: decimal.Zero,
		Expenses:           decimal.Zero,
		AccumulatedBalance: decimal.Zero,
	}

	for i := range sales {
		sale := &sales[i]
		if sale.Date.IsZero() || !branch.Matches(sale.Branch) {
			continue
		}
		switch {
		case period.Contains(sale.Date):
			if sale.IsCompleted() {
				summary.Revenue = summary.Revenue.Add(sale.Total)
			} else if sale.IsPending() {
				summary.PendingReceivables = summary.PendingReceivables.Add(sale.Total)
			}
		case sale.Date.Before(period.Start):
			if sale.IsCompleted() {
				summary.AccumulatedBalance = summary.AccumulatedBalance.Add(sale.Total)
			}
		}
	}

	for i := range entries {
		entry := &entries[i]
		if entry.Date.IsZero() || !branch.Matches(entry.Branch) {
			continue
		}
		switch {
		case period.Contains(entry.Date):
			if entry.IsExpense() {
				summary.Expenses = summary.Expenses.Add(entry.Amount)
			}
		case entry.Date.Before(period.Start):
			if entry.IsExpense() {
				summary.AccumulatedBalance = summary.AccumulatedBalance.Sub(entry.Amount)
			} else if entry.IsIncome() && !entry.IsLegacySaleIncome() {
				summary.AccumulatedBalance = summary.AccumulatedBalance.Add(entry.Amount)
			}
		}
	}

	summary.NetResult = summary.Revenue.Sub(summary.Expenses).Add(summary.AccumulatedBalance)

	return summary, nil
}

// AggregateWithTrend computes the summary for the reference period and
// for the immediately preceding period, plus the per-metric deltas.
func (a *PeriodAggregator) AggregateWithTrend(
	reference valueobject.Date,
	granularity Granularity,
	branch valueobject.BranchFilter,
	sales []trade.Sale,
	entries []ledger.Entry,
) (PeriodReport, error) {
	current, err := a.Aggregate(reference, granularity, branch, sales, entries)
	if err != nil {
		return PeriodReport{}, err
	}

	// The day before the period start always falls in the previous
	// period, whatever the granularity.
	previousReference := current.Period.Start.AddDays(-1)
	previous, err := a.Aggregate(previousReference, granularity, branch, sales, entries)
	if err != nil {
		return PeriodReport{}, err
	}

	return PeriodReport{
		Current:  current,
		Previous: previous,
		Trend: TrendDelta{
			Revenue:            percentDelta(current.Revenue, previous.Revenue),
			PendingReceivables: percentDelta(current.PendingReceivables, previous.PendingReceivables),
			Expenses:           percentDelta(current.Expenses, previous.Expenses),
		},
	}, nil
}

var oneHundred = decimal.NewFromInt(100)

func percentDelta(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.IsPositive() {
			return oneHundred
		}
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(oneHundred)
}
