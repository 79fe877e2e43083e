package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/retailbooks/backend/internal/domain/finance"
	"github.com/retailbooks/backend/internal/domain/ledger"
	"github.com/retailbooks/backend/internal/domain/shared"
	"github.com/retailbooks/backend/internal/domain/shared/valueobject"
	"github.com/retailbooks/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DayLocker serializes day closings per (date, branch). The engine
// computes over a snapshot; without this, two concurrent closes of the
// same day could both chain off the same opening balance.
type DayLocker interface {
	// Acquire takes the lock for a key, returning a release func.
	// Returns shared.ErrConcurrencyConflict when the key is held.
	Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error)
}

// defaultCloseLockTTL bounds how long a crashed closer can hold the day lock
const defaultCloseLockTTL = 30 * time.Second

// CashClosingService orchestrates end-of-day reconciliation: it locks
// the (date, branch) pair, rejects re-closing, feeds the engine a
// consistent snapshot and persists the resulting closing.
type CashClosingService struct {
	closingRepo    finance.CashClosingRepository
	entryRepo      ledger.EntryRepository
	saleRepo       trade.SaleRepository
	locker         DayLocker
	lockTTL        time.Duration
	reconciliation *finance.ReconciliationService
}

// NewCashClosingService creates a new CashClosingService
func NewCashClosingService(
	closingRepo finance.CashClosingRepository,
	entryRepo ledger.EntryRepository,
	saleRepo trade.SaleRepository,
	locker DayLocker,
) *CashClosingService {
	return &CashClosingService{
		closingRepo:    closingRepo,
		entryRepo:      entryRepo,
		saleRepo:       saleRepo,
		locker:         locker,
		lockTTL:        defaultCloseLockTTL,
		reconciliation: finance.NewReconciliationService(),
	}
}

// SetLockTTL overrides the day lock TTL, typically from configuration
func (s *CashClosingService) SetLockTTL(ttl time.Duration) {
	if ttl > 0 {
		s.lockTTL = ttl
	}
}

// CloseDayRequest represents a request to close one day's drawer
type CloseDayRequest struct {
	Date        string          `json:"date" binding:"required"`
	Branch      string          `json:"branch" binding:"required"`
	CountedCash decimal.Decimal `json:"counted_cash"`
	Notes       string          `json:"notes"`
	ClosedBy    uuid.UUID       `json:"-"`
}

// CashClosingResponse represents a cash closing in API responses
type CashClosingResponse struct {
	ID               uuid.UUID                  `json:"id"`
	Date             string                     `json:"date"`
	Branch           string                     `json:"branch"`
	OpeningBalance   decimal.Decimal            `json:"opening_balance"`
	TotalIncome      decimal.Decimal            `json:"total_income"`
	TotalExpense     decimal.Decimal            `json:"total_expense"`
	TotalsByMethod   map[string]decimal.Decimal `json:"totals_by_method"`
	ExpectedInDrawer decimal.Decimal            `json:"expected_in_drawer"`
	CashInDrawer     decimal.Decimal            `json:"cash_in_drawer"`
	Difference       decimal.Decimal            `json:"difference"`
	Notes            string                     `json:"notes,omitempty"`
	ClosedBy         uuid.UUID                  `json:"closed_by"`
	CreatedAt        time.Time                  `json:"created_at"`
}

// DayVerificationResponse is the pre-closing sanity view
type DayVerificationResponse struct {
	Date              string          `json:"date"`
	Branch            string          `json:"branch"`
	CashSales         decimal.Decimal `json:"cash_sales"`
	GrossCashReceived decimal.Decimal `json:"gross_cash_received"`
	ChangeGiven       decimal.Decimal `json:"change_given"`
	CompletedSales    int             `json:"completed_sales"`
}

// ClosingListFilter defines filtering options for closing list queries
type ClosingListFilter struct {
	Branch   string `form:"branch"`
	FromDate string `form:"from_date"`
	ToDate   string `form:"to_date"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// CloseDay closes the drawer for one (date, branch) pair.
//
// The day lock and the existence check together enforce what the
// engine deliberately does not: one meaningful closing per day per
// branch. Within the lock the service reads the day's sales and
// expenses plus the branch's latest prior closing, runs the engine,
// and persists the snapshot.
func (s *CashClosingService) CloseDay(ctx context.Context, req CloseDayRequest) (*CashClosingResponse, error) {
	date, err := valueobject.ParseDate(req.Date)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_DATE", "Date must be in YYYY-MM-DD format")
	}
	branch := valueobject.Branch(req.Branch)
	if !branch.IsValid() {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch is not valid")
	}

	release, err := s.locker.Acquire(ctx, closeLockKey(date, branch), s.lockTTL)
	if err != nil {
		return nil, err
	}
	defer release()

	existing, err := s.closingRepo.FindByDateAndBranch(ctx, date, branch)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrDayAlreadyClosed
	}

	day := valueobject.SingleDay(date)
	branchOnly := valueobject.FilterBranch(branch)
	sales, err := s.saleRepo.FindInRange(ctx, branchOnly, day)
	if err != nil {
		return nil, err
	}
	entries, err := s.entryRepo.FindInRange(ctx, branchOnly, day)
	if err != nil {
		return nil, err
	}

	var priorClosings []finance.CashClosing
	if prior, err := s.closingRepo.FindLatestBefore(ctx, date, branch); err != nil {
		return nil, err
	} else if prior != nil {
		priorClosings = []finance.CashClosing{*prior}
	}

	closing, err := s.reconciliation.CloseDay(finance.CloseDayRequest{
		Date:          date,
		Branch:        branch,
		Sales:         sales,
		Entries:       entries,
		PriorClosings: priorClosings,
		CountedCash:   req.CountedCash,
		Notes:         req.Notes,
		ClosedBy:      req.ClosedBy,
	})
	if err != nil {
		return nil, err
	}

	if err := s.closingRepo.Save(ctx, closing); err != nil {
		return nil, err
	}
	return toCashClosingResponse(closing), nil
}

// VerifyDay returns the operator sanity view for a day before closing
func (s *CashClosingService) VerifyDay(ctx context.Context, dateParam, branchParam string) (*DayVerificationResponse, error) {
	date, err := valueobject.ParseDate(dateParam)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_DATE", "Date must be in YYYY-MM-DD format")
	}
	branch := valueobject.Branch(branchParam)
	if !branch.IsValid() {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch is not valid")
	}

	sales, err := s.saleRepo.FindInRange(ctx, valueobject.FilterBranch(branch), valueobject.SingleDay(date))
	if err != nil {
		return nil, err
	}

	verification, err := s.reconciliation.VerifyDay(date, branch, sales)
	if err != nil {
		return nil, err
	}

	return &DayVerificationResponse{
		Date:              verification.Date.String(),
		Branch:            verification.Branch.String(),
		CashSales:         verification.CashSales,
		GrossCashReceived: verification.GrossCashReceived,
		ChangeGiven:       verification.ChangeGiven,
		CompletedSales:    verification.CompletedSales,
	}, nil
}

// GetClosing gets a closing by ID
func (s *CashClosingService) GetClosing(ctx context.Context, id uuid.UUID) (*CashClosingResponse, error) {
	closing, err := s.closingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if closing == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Cash closing not found")
	}
	return toCashClosingResponse(closing), nil
}

// ListClosings lists closings with filtering, newest first
func (s *CashClosingService) ListClosings(ctx context.Context, filter ClosingListFilter) ([]CashClosingResponse, int64, error) {
	branch, dateRange, err := parseScope(filter.Branch, filter.FromDate, filter.ToDate)
	if err != nil {
		return nil, 0, err
	}

	domainFilter := finance.CashClosingFilter{Branch: branch, Range: dateRange}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize

	closings, err := s.closingRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.closingRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CashClosingResponse, 0, len(closings))
	for i := range closings {
		responses = append(responses, *toCashClosingResponse(&closings[i]))
	}
	return responses, total, nil
}

// GetBranchHistory returns the full closing chain for one branch,
// newest first. Unlike ListClosings it is not paginated: the chain is
// what the operator reads to follow opening balances across gaps.
func (s *CashClosingService) GetBranchHistory(ctx context.Context, branchParam, fromParam, toParam string) ([]CashClosingResponse, error) {
	branch := valueobject.Branch(branchParam)
	if !branch.IsValid() {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch is not valid")
	}
	_, dateRange, err := parseScope("", fromParam, toParam)
	if err != nil {
		return nil, err
	}

	closings, err := s.closingRepo.FindAllForBranch(ctx, branch, dateRange)
	if err != nil {
		return nil, err
	}

	responses := make([]CashClosingResponse, 0, len(closings))
	for i := range closings {
		responses = append(responses, *toCashClosingResponse(&closings[i]))
	}
	return responses, nil
}

// DeleteClosing removes a closing. Later closings keep the opening
// balances they were created with; nothing is recomputed.
func (s *CashClosingService) DeleteClosing(ctx context.Context, id uuid.UUID) error {
	closing, err := s.closingRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if closing == nil {
		return shared.NewDomainError("NOT_FOUND", "Cash closing not found")
	}
	return s.closingRepo.Delete(ctx, id)
}

func closeLockKey(date valueobject.Date, branch valueobject.Branch) string {
	return fmt.Sprintf("cash-closing:%s:%s", date, branch)
}

func toCashClosingResponse(closing *finance.CashClosing) *CashClosingResponse {
	totals := make(map[string]decimal.Decimal, len(closing.TotalsByMethod))
	for method, amount := range closing.TotalsByMethod {
		totals[method.String()] = amount
	}
	return &CashClosingResponse{
		ID:               closing.ID,
		Date:             closing.Date.String(),
		Branch:           closing.Branch.String(),
		OpeningBalance:   closing.OpeningBalance,
		TotalIncome:      closing.TotalIncome,
		TotalExpense:     closing.TotalExpense,
		TotalsByMethod:   totals,
		ExpectedInDrawer: closing.ExpectedInDrawer,
		CashInDrawer:     closing.CashInDrawer,
		Difference:       closing.Difference,
		Notes:            closing.Notes,
		ClosedBy:         closing.ClosedBy,
		CreatedAt:        closing.CreatedAt,
	}
}
