package finance

import (
	"github.com/retailbooks/backend/internal/domain/ledger"
	"github.com/retailbooks/backend/internal/domain/shared"
	"github.com/retailbooks/backend/internal/domain/shared/valueobject"
	"github.com/retailbooks/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReconciliationService is the domain service that closes a cash day.
// It computes the expected drawer amount from the chain of prior
// closings and the day's cash movements, then records the counted cash
// against it.
//
// The service itself is pure: it computes over the snapshots it is
// given and persists nothing. It also does not enforce one closing per
// (date, branch) - callers must serialize concurrent closes of the same
// day or two closings could chain off the same opening balance.
type ReconciliationService struct{}

// NewReconciliationService creates a new ReconciliationService
func NewReconciliationService() *ReconciliationService {
	return &ReconciliationService{}
}

// CloseDayRequest carries the snapshot needed to close one day.
// Sales and Entries may span any range; the service picks out the
// target day itself. PriorClosings should hold the branch's closing
// history (any order).
type CloseDayRequest struct {
	Date          valueobject.Date
	Branch        valueobject.Branch
	Sales         []trade.Sale
	Entries       []ledger.Entry
	PriorClosings []CashClosing
	CountedCash   decimal.Decimal
	Notes         string
	ClosedBy      uuid.UUID
}

// CloseDay builds the reconciliation snapshot for the requested day.
//
// The opening balance is the counted cash of the most recent closing
// strictly before the target date for the branch, or zero when there is
// none; gaps in the closing history are skipped, not treated as zero
// days. Cash from sales is attributed per payment split, so of a sale
// paid half cash, half card, only the cash half moves the drawer.
// Expected cash is opening balance plus cash sales minus the day's
// expenses. A difference between counted and expected cash is recorded,
// never rejected.
func (s *ReconciliationService) CloseDay(req CloseDayRequest) (*CashClosing, error) {
	if req.Date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Closing date is required")
	}
	if !req.Branch.IsValid() {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch is not valid")
	}
	if req.CountedCash.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COUNTED_CASH", "Counted cash cannot be negative")
	}

	openingBalance := decimal.Zero
	if prior := LatestClosingBefore(req.PriorClosings, req.Date, req.Branch); prior != nil {
		openingBalance = prior.CashInDrawer
	}

	totalsByMethod := make(map[valueobject.PaymentMethod]decimal.Decimal)
	totalIncome := decimal.Zero
	for i := range req.Sales {
		sale := &req.Sales[i]
		if !sale.IsCompleted() || sale.Branch != req.Branch || !sale.Date.Equal(req.Date) {
			continue
		}
		totalIncome = totalIncome.Add(sale.Total)
		for method, amount := range sale.AmountByMethod() {
			totalsByMethod[method] = totalsByMethod[method].Add(amount)
		}
	}
	cashSales := totalsByMethod[valueobject.PaymentMethodCash]

	dayExpenses := decimal.Zero
	for i := range req.Entries {
		entry := &req.Entries[i]
		if !entry.IsExpense() || entry.Branch != req.Branch || !entry.Date.Equal(req.Date) {
			continue
		}
		dayExpenses = dayExpenses.Add(entry.Amount)
	}

	expected := openingBalance.Add(cashSales).Sub(dayExpenses)

	return NewCashClosing(
		req.Date,
		req.Branch,
		openingBalance,
		totalIncome,
		dayExpenses,
		totalsByMethod,
		expected,
		req.CountedCash,
		req.Notes,
		req.ClosedBy,
	)
}

// LatestClosingBefore returns the closing with the greatest date
// strictly before the target date for the branch, or nil when none
// exists. Ties on the same date resolve to the last one seen.
func LatestClosingBefore(closings []CashClosing, date valueobject.Date, branch valueobject.Branch) *CashClosing {
	var latest *CashClosing
	for i := range closings {
		closing := &closings[i]
		if closing.Branch != branch || !closing.Date.Before(date) {
			continue
		}
		if latest == nil || !closing.Date.Before(latest.Date) {
			latest = closing
		}
	}
	return latest
}

// DayVerification is the operator sanity view of a day's cash flow,
// independent of the opening-balance chain: gross bills taken in,
// change handed back, and the net cash attributed to the day.
type DayVerification struct {
	Date              valueobject.Date   `json:"date"`
	Branch            valueobject.Branch `json:"branch"`
	CashSales         decimal.Decimal    `json:"cash_sales"`
	GrossCashReceived decimal.Decimal    `json:"gross_cash_received"`
	ChangeGiven       decimal.Decimal    `json:"change_given"`
	CompletedSales    int                `json:"completed_sales"`
}

// VerifyDay summarizes the cash physically handled during one day
// before the operator commits the closing. Sales without a recorded
// tender contribute their cash portion to GrossCashReceived with no
// change.
func (s *ReconciliationService) VerifyDay(
	date valueobject.Date,
	branch valueobject.Branch,
	sales []trade.Sale,
) (DayVerification, error) {
	if date.IsZero() {
		return DayVerification{}, shared.NewDomainError("INVALID_DATE", "Verification date is required")
	}
	if !branch.IsValid() {
		return DayVerification{}, shared.NewDomainError("INVALID_BRANCH", "Branch is not valid")
	}

	verification := DayVerification{
		Date:              date,
		Branch:            branch,
		CashSales:         decimal.Zero,
		GrossCashReceived: decimal.Zero,
		ChangeGiven:       decimal.Zero,
	}

	for i := range sales {
		sale := &sales[i]
		if !sale.IsCompleted() || sale.Branch != branch || !sale.Date.Equal(date) {
			continue
		}
		verification.CompletedSales++

		cash := sale.CashPortion()
		verification.CashSales = verification.CashSales.Add(cash)
		if sale.CashReceived != nil {
			verification.GrossCashReceived = verification.GrossCashReceived.Add(*sale.CashReceived)
			if sale.ChangeAmount != nil {
				verification.ChangeGiven = verification.ChangeGiven.Add(*sale.ChangeAmount)
			}
		} else {
			verification.GrossCashReceived = verification.GrossCashReceived.Add(cash)
		}
	}

	return verification, nil
}
