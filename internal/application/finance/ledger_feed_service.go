package finance

import (
	"context"

	"github.com/retailbooks/backend/internal/domain/finance"
	"github.com/retailbooks/backend/internal/domain/ledger"
	"github.com/retailbooks/backend/internal/domain/shared"
	"github.com/retailbooks/backend/internal/domain/shared/valueobject"
	"github.com/retailbooks/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerFeedService builds the combined transaction view of manual
// entries and completed sales for one branch or all of them.
type LedgerFeedService struct {
	entryRepo ledger.EntryRepository
	saleRepo  trade.SaleRepository
	unifier   *finance.LedgerUnifier
}

// NewLedgerFeedService creates a new LedgerFeedService
func NewLedgerFeedService(entryRepo ledger.EntryRepository, saleRepo trade.SaleRepository) *LedgerFeedService {
	return &LedgerFeedService{
		entryRepo: entryRepo,
		saleRepo:  saleRepo,
		unifier:   finance.NewLedgerUnifier(),
	}
}

// FeedRequest selects the slice of the ledger to unify
type FeedRequest struct {
	Branch   string `form:"branch"`
	FromDate string `form:"from_date"`
	ToDate   string `form:"to_date"`
}

// FeedRecordResponse is one row of the unified feed
type FeedRecordResponse struct {
	ID            uuid.UUID       `json:"id"`
	Source        string          `json:"source"`
	SourceID      uuid.UUID       `json:"source_id"`
	Date          string          `json:"date"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Kind          string          `json:"kind"`
	Category      string          `json:"category"`
	Branch        string          `json:"branch"`
	PaymentMethod *string         `json:"payment_method,omitempty"`
}

// GetFeed returns the unified transaction view, newest first
func (s *LedgerFeedService) GetFeed(ctx context.Context, req FeedRequest) ([]FeedRecordResponse, error) {
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

	records := s.unifier.Unify(entries, sales, branch, dateRange)

	responses := make([]FeedRecordResponse, 0, len(records))
	for _, record := range records {
		response := FeedRecordResponse{
			ID:          record.ID,
			Source:      record.Source.String(),
			SourceID:    record.SourceID,
			Date:        record.Date.String(),
			Description: record.Description,
			Amount:      record.Amount,
			Kind:        record.Kind.String(),
			Category:    record.Category,
			Branch:      record.Branch.String(),
		}
		if record.PaymentMethod != nil {
			method := record.PaymentMethod.String()
			response.PaymentMethod = &method
		}
		responses = append(responses, response)
	}
	return responses, nil
}

// parseScope turns the branch/date query parameters shared by the
// reporting services into domain filters
func parseScope(branchParam, fromParam, toParam string) (valueobject.BranchFilter, valueobject.DateRange, error) {
	branch, ok := valueobject.ParseBranchFilter(branchParam)
	if !ok {
		return valueobject.BranchFilter{}, valueobject.DateRange{}, shared.NewDomainError("INVALID_BRANCH", "Branch is not valid")
	}

	var dateRange valueobject.DateRange
	if fromParam != "" {
		from, err := valueobject.ParseDate(fromParam)
		if err != nil {
			return valueobject.BranchFilter{}, valueobject.DateRange{}, shared.NewDomainError("INVALID_DATE", "from_date must be in YYYY-MM-DD format")
		}
		dateRange.Start = from
	}
	if toParam != "" {
		to, err := valueobject.ParseDate(toParam)
		if err != nil {
			return valueobject.BranchFilter{}, valueobject.DateRange{}, shared.NewDomainError("INVALID_DATE", "to_date must be in YYYY-MM-DD format")
		}
		dateRange.End = to
	}
	return branch, dateRange, nil
}
