package ledger

import (
	"context"
	"time"

	"github.com/retailbooks/backend/internal/domain/ledger"
	"github.com/retailbooks/backend/internal/domain/shared"
	"github.com/retailbooks/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryService provides application-level ledger entry operations
type EntryService struct {
	entryRepo ledger.EntryRepository
}

// NewEntryService creates a new EntryService
func NewEntryService(entryRepo ledger.EntryRepository) *EntryService {
	return &EntryService{entryRepo: entryRepo}
}

// EntryResponse represents a ledger entry in API responses
type EntryResponse struct {
	ID            uuid.UUID       `json:"id"`
	Date          string          `json:"date"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Kind          string          `json:"kind"`
	Category      string          `json:"category"`
	Branch        string          `json:"branch"`
	PaymentMethod *string         `json:"payment_method,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Version       int             `json:"version"`
}

// CreateEntryRequest represents a request to create a ledger entry
type CreateEntryRequest struct {
	Date          string          `json:"date" binding:"required"`
	Description   string          `json:"description" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Kind          string          `json:"kind" binding:"required,oneof=INCOME EXPENSE"`
	Category      string          `json:"category" binding:"required"`
	Branch        string          `json:"branch" binding:"required"`
	PaymentMethod string          `json:"payment_method"`
}

// UpdateEntryRequest represents a request to update a ledger entry
type UpdateEntryRequest struct {
	Date          string          `json:"date" binding:"required"`
	Description   string          `json:"description" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Kind          string          `json:"kind" binding:"required,oneof=INCOME EXPENSE"`
	Category      string          `json:"category" binding:"required"`
	Branch        string          `json:"branch" binding:"required"`
	PaymentMethod string          `json:"payment_method"`
}

// CreateRecurringRequest represents a request to expand a recurring
// expense into monthly installment entries
type CreateRecurringRequest struct {
	Description  string          `json:"description" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Category     string          `json:"category" binding:"required"`
	Branch       string          `json:"branch" binding:"required"`
	StartDate    string          `json:"start_date" binding:"required"`
	Installments int             `json:"installments" binding:"required,min=1"`
}

// EntryListFilter defines filtering options for entry list queries
type EntryListFilter struct {
	Branch   string `form:"branch"`
	FromDate string `form:"from_date"`
	ToDate   string `form:"to_date"`
	Kind     string `form:"kind"`
	Category string `form:"category"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// CreateEntry records a new manual ledger entry
func (s *EntryService) CreateEntry(ctx context.Context, req CreateEntryRequest) (*EntryResponse, error) {
	date, err := valueobject.ParseDate(req.Date)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_DATE", "Date must be in YYYY-MM-DD format")
	}

	entry, err := ledger.NewEntry(
		date,
		req.Description,
		valueobject.NewMoneyBRL(req.Amount),
		ledger.EntryKind(req.Kind),
		req.Category,
		valueobject.Branch(req.Branch),
	)
	if err != nil {
		return nil, err
	}

	if req.PaymentMethod != "" {
		if err := entry.SetPaymentMethod(valueobject.PaymentMethod(req.PaymentMethod)); err != nil {
			return nil, err
		}
	}

	if err := s.entryRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	return toEntryResponse(entry), nil
}

// CreateRecurring expands a recurring intent and persists the whole
// installment series in one transaction
func (s *EntryService) CreateRecurring(ctx context.Context, req CreateRecurringRequest) ([]EntryResponse, error) {
	startDate, err := valueobject.ParseDate(req.StartDate)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_DATE", "Start date must be in YYYY-MM-DD format")
	}

	intent := ledger.RecurringIntent{
		Description:  req.Description,
		Amount:       valueobject.NewMoneyBRL(req.Amount),
		Category:     req.Category,
		Branch:       valueobject.Branch(req.Branch),
		StartDate:    startDate,
		Installments: req.Installments,
	}

	entries, err := intent.Expand()
	if err != nil {
		return nil, err
	}

	if err := s.entryRepo.SaveBatch(ctx, entries); err != nil {
		return nil, err
	}

	responses := make([]EntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, *toEntryResponse(entry))
	}
	return responses, nil
}

// GetEntry gets a ledger entry by ID
func (s *EntryService) GetEntry(ctx context.Context, id uuid.UUID) (*EntryResponse, error) {
	entry, err := s.entryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Ledger entry not found")
	}
	return toEntryResponse(entry), nil
}

// UpdateEntry edits a ledger entry
func (s *EntryService) UpdateEntry(ctx context.Context, id uuid.UUID, req UpdateEntryRequest) (*EntryResponse, error) {
	entry, err := s.entryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Ledger entry not found")
	}

	date, err := valueobject.ParseDate(req.Date)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_DATE", "Date must be in YYYY-MM-DD format")
	}

	if err := entry.Update(
		date,
		req.Description,
		valueobject.NewMoneyBRL(req.Amount),
		ledger.EntryKind(req.Kind),
		req.Category,
		valueobject.Branch(req.Branch),
	); err != nil {
		return nil, err
	}

	if req.PaymentMethod != "" {
		if err := entry.SetPaymentMethod(valueobject.PaymentMethod(req.PaymentMethod)); err != nil {
			return nil, err
		}
	} else {
		entry.PaymentMethod = nil
	}

	if err := s.entryRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	return toEntryResponse(entry), nil
}

// DeleteEntry removes a ledger entry
func (s *EntryService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	entry, err := s.entryRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if entry == nil {
		return shared.NewDomainError("NOT_FOUND", "Ledger entry not found")
	}
	return s.entryRepo.Delete(ctx, id)
}

// ListEntries lists ledger entries with filtering
func (s *EntryService) ListEntries(ctx context.Context, filter EntryListFilter) ([]EntryResponse, int64, error) {
	domainFilter, err := toEntryFilter(filter)
	if err != nil {
		return nil, 0, err
	}

	entries, err := s.entryRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.entryRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]EntryResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, *toEntryResponse(&entries[i]))
	}
	return responses, total, nil
}

func toEntryFilter(filter EntryListFilter) (ledger.EntryFilter, error) {
	branch, ok := valueobject.ParseBranchFilter(filter.Branch)
	if !ok {
		return ledger.EntryFilter{}, shared.NewDomainError("INVALID_BRANCH", "Branch is not valid")
	}

	domainFilter := ledger.EntryFilter{Branch: branch}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search

	if filter.FromDate != "" {
		from, err := valueobject.ParseDate(filter.FromDate)
		if err != nil {
			return ledger.EntryFilter{}, shared.NewDomainError("INVALID_DATE", "from_date must be in YYYY-MM-DD format")
		}
		domainFilter.Range.Start = from
	}
	if filter.ToDate != "" {
		to, err := valueobject.ParseDate(filter.ToDate)
		if err != nil {
			return ledger.EntryFilter{}, shared.NewDomainError("INVALID_DATE", "to_date must be in YYYY-MM-DD format")
		}
		domainFilter.Range.End = to
	}
	if filter.Kind != "" {
		kind := ledger.EntryKind(filter.Kind)
		if !kind.IsValid() {
			return ledger.EntryFilter{}, shared.NewDomainError("INVALID_KIND", "Entry kind must be INCOME or EXPENSE")
		}
		domainFilter.Kind = &kind
	}
	if filter.Category != "" {
		category := filter.Category
		domainFilter.Category = &category
	}

	return domainFilter, nil
}

func toEntryResponse(entry *ledger.Entry) *EntryResponse {
	response := &EntryResponse{
		ID:          entry.ID,
		Date:        entry.Date.String(),
		Description: entry.Description,
		Amount:      entry.Amount,
		Kind:        entry.Kind.String(),
		Category:    entry.Category,
		Branch:      entry.Branch.String(),
		CreatedAt:   entry.CreatedAt,
		UpdatedAt:   entry.UpdatedAt,
		Version:     entry.Version,
	}
	if entry.PaymentMethod != nil {
		method := entry.PaymentMethod.String()
		response.PaymentMethod = &method
	}
	return response
}
