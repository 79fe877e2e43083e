package trade

import (
	"context"
	"time"

	"github.com/retailbooks/backend/internal/domain/shared"
	"github.com/retailbooks/backend/internal/domain/shared/valueobject"
	"github.com/retailbooks/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleService provides application-level sale operations
type SaleService struct {
	saleRepo trade.SaleRepository
}

// NewSaleService creates a new SaleService
func NewSaleService(saleRepo trade.SaleRepository) *SaleService {
	return &SaleService{saleRepo: saleRepo}
}

// SaleItemRequest is one line item of a checkout request
type SaleItemRequest struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// PaymentSplitRequest attributes part of the total to one method
type PaymentSplitRequest struct {
	Method string          `json:"method" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// CreateSaleRequest represents a checkout request
type CreateSaleRequest struct {
	Date         string                `json:"date" binding:"required"`
	CustomerName string                `json:"customer_name"`
	Branch       string                `json:"branch" binding:"required"`
	Items        []SaleItemRequest     `json:"items" binding:"required,min=1"`
	Payments     []PaymentSplitRequest `json:"payments"`
	CashReceived *decimal.Decimal      `json:"cash_received"`
	Complete     bool                  `json:"complete"`
}

// CorrectSaleRequest replaces the items and payments of a completed sale
type CorrectSaleRequest struct {
	Items    []SaleItemRequest     `json:"items" binding:"required,min=1"`
	Payments []PaymentSplitRequest `json:"payments" binding:"required,min=1"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID           uuid.UUID             `json:"id"`
	Date         string                `json:"date"`
	CustomerName string                `json:"customer_name"`
	Total        decimal.Decimal       `json:"total"`
	Branch       string                `json:"branch"`
	Status       string                `json:"status"`
	Items        []trade.SaleItem      `json:"items"`
	Payments     []trade.PaymentSplit  `json:"payments"`
	CashReceived *decimal.Decimal      `json:"cash_received,omitempty"`
	ChangeAmount *decimal.Decimal      `json:"change_amount,omitempty"`
	CancelReason string                `json:"cancel_reason,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
	Version      int                   `json:"version"`
}

// SaleListFilter defines filtering options for sale list queries
type SaleListFilter struct {
	Branch   string `form:"branch"`
	FromDate string `form:"from_date"`
	ToDate   string `form:"to_date"`
	Status   string `form:"status"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// CreateSale records a checkout. When the request carries payments and
// the complete flag, the sale is completed in the same step, which is
// the common counter flow; otherwise it stays pending.
func (s *SaleService) CreateSale(ctx context.Context, req CreateSaleRequest) (*SaleResponse, error) {
	date, err := valueobject.ParseDate(req.Date)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_DATE", "Date must be in YYYY-MM-DD format")
	}

	items := make([]trade.SaleItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, trade.SaleItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	sale, err := trade.NewSale(date, req.CustomerName, valueobject.Branch(req.Branch), items)
	if err != nil {
		return nil, err
	}

	if len(req.Payments) > 0 {
		if err := sale.SetPayments(toPaymentSplits(req.Payments)); err != nil {
			return nil, err
		}
	}
	if req.CashReceived != nil {
		if err := sale.RegisterCashTender(*req.CashReceived); err != nil {
			return nil, err
		}
	}
	if req.Complete {
		if err := sale.Complete(); err != nil {
			return nil, err
		}
	}

	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}

	return toSaleResponse(sale), nil
}

// CompleteSale completes a pending sale
func (s *SaleService) CompleteSale(ctx context.Context, id uuid.UUID, payments []PaymentSplitRequest) (*SaleResponse, error) {
	sale, err := s.findSale(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(payments) > 0 {
		if err := sale.SetPayments(toPaymentSplits(payments)); err != nil {
			return nil, err
		}
	}
	if err := sale.Complete(); err != nil {
		return nil, err
	}

	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// CancelSale voids a pending sale
func (s *SaleService) CancelSale(ctx context.Context, id uuid.UUID, reason string) (*SaleResponse, error) {
	sale, err := s.findSale(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sale.Cancel(reason); err != nil {
		return nil, err
	}
	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// CorrectSale replaces the items and payments of a completed sale
func (s *SaleService) CorrectSale(ctx context.Context, id uuid.UUID, req CorrectSaleRequest) (*SaleResponse, error) {
	sale, err := s.findSale(ctx, id)
	if err != nil {
		return nil, err
	}

	items := make([]trade.SaleItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, trade.SaleItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	if err := sale.Correct(items, toPaymentSplits(req.Payments)); err != nil {
		return nil, err
	}
	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// GetSale gets a sale by ID
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.findSale(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// ListSales lists sales with filtering
func (s *SaleService) ListSales(ctx context.Context, filter SaleListFilter) ([]SaleResponse, int64, error) {
	domainFilter, err := toSaleFilter(filter)
	if err != nil {
		return nil, 0, err
	}

	sales, err := s.saleRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.saleRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SaleResponse, 0, len(sales))
	for i := range sales {
		responses = append(responses, *toSaleResponse(&sales[i]))
	}
	return responses, total, nil
}

func (s *SaleService) findSale(ctx context.Context, id uuid.UUID) (*trade.Sale, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Sale not found")
	}
	return sale, nil
}

func toPaymentSplits(requests []PaymentSplitRequest) []trade.PaymentSplit {
	splits := make([]trade.PaymentSplit, 0, len(requests))
	for _, req := range requests {
		splits = append(splits, trade.PaymentSplit{
			Method: valueobject.PaymentMethod(req.Method),
			Amount: req.Amount,
		})
	}
	return splits
}

func toSaleFilter(filter SaleListFilter) (trade.SaleFilter, error) {
	branch, ok := valueobject.ParseBranchFilter(filter.Branch)
	if !ok {
		return trade.SaleFilter{}, shared.NewDomainError("INVALID_BRANCH", "Branch is not valid")
	}

	domainFilter := trade.SaleFilter{Branch: branch}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search

	if filter.FromDate != "" {
		from, err := valueobject.ParseDate(filter.FromDate)
		if err != nil {
			return trade.SaleFilter{}, shared.NewDomainError("INVALID_DATE", "from_date must be in YYYY-MM-DD format")
		}
		domainFilter.Range.Start = from
	}
	if filter.ToDate != "" {
		to, err := valueobject.ParseDate(filter.ToDate)
		if err != nil {
			return trade.SaleFilter{}, shared.NewDomainError("INVALID_DATE", "to_date must be in YYYY-MM-DD format")
		}
		domainFilter.Range.End = to
	}
	if filter.Status != "" {
		status := trade.SaleStatus(filter.Status)
		if !status.IsValid() {
			return trade.SaleFilter{}, shared.NewDomainError("INVALID_STATUS", "Sale status is not valid")
		}
		domainFilter.Status = &status
	}

	return domainFilter, nil
}

func toSaleResponse(sale *trade.Sale) *SaleResponse {
	return &SaleResponse{
		ID:           sale.ID,
		Date:         sale.Date.String(),
		CustomerName: sale.CustomerName,
		Total:        sale.Total,
		Branch:       sale.Branch.String(),
		Status:       sale.Status.String(),
		Items:        sale.Items,
		Payments:     sale.Payments,
		CashReceived: sale.CashReceived,
		ChangeAmount: sale.ChangeAmount,
		CancelReason: sale.CancelReason,
		CreatedAt:    sale.CreatedAt,
		UpdatedAt:    sale.UpdatedAt,
		Version:      sale.Version,
	}
}
