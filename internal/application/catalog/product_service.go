package catalog

import (
	"context"
	"time"

	"github.com/retailbooks/backend/internal/domain/catalog"
	"github.com/retailbooks/backend/internal/domain/shared"
	"github.com/retailbooks/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductService provides application-level product operations
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID        uuid.UUID                  `json:"id"`
	Name      string                     `json:"name"`
	Barcode   string                     `json:"barcode,omitempty"`
	UnitCost  decimal.Decimal            `json:"unit_cost"`
	Prices    map[string]decimal.Decimal `json:"prices"`
	Active    bool                       `json:"active"`
	CreatedAt time.Time                  `json:"created_at"`
	UpdatedAt time.Time                  `json:"updated_at"`
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name     string                     `json:"name" binding:"required"`
	Barcode  string                     `json:"barcode"`
	UnitCost decimal.Decimal            `json:"unit_cost" binding:"required"`
	Prices   map[string]decimal.Decimal `json:"prices"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name     string                     `json:"name" binding:"required"`
	Barcode  string                     `json:"barcode"`
	UnitCost decimal.Decimal            `json:"unit_cost" binding:"required"`
	Prices   map[string]decimal.Decimal `json:"prices"`
	Active   *bool                      `json:"active"`
}

// ProductListFilter defines filtering options for product list queries
type ProductListFilter struct {
	Search     string `form:"search"`
	ActiveOnly bool   `form:"active_only"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Name, req.UnitCost)
	if err != nil {
		return nil, err
	}
	product.Barcode = req.Barcode

	for branchName, price := range req.Prices {
		if err := product.SetPrice(valueobject.Branch(branchName), price); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetProduct gets a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// UpdateProduct updates a product's name, cost and prices
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	product.Name = req.Name
	product.Barcode = req.Barcode

	if err := product.UpdateCost(req.UnitCost); err != nil {
		return nil, err
	}
	for branchName, price := range req.Prices {
		if err := product.SetPrice(valueobject.Branch(branchName), price); err != nil {
			return nil, err
		}
	}
	if req.Active != nil {
		if *req.Active {
			product.Activate()
		} else {
			product.Deactivate()
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// DeleteProduct removes a product. Past sales referencing it fall back
// to zero-cost valuation in income statements.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findProduct(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := catalog.ProductFilter{ActiveOnly: filter.ActiveOnly}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, *toProductResponse(&products[i]))
	}
	return responses, total, nil
}

func (s *ProductService) findProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
	}
	return product, nil
}

func toProductResponse(product *catalog.Product) *ProductResponse {
	prices := make(map[string]decimal.Decimal, len(product.Prices))
	for branch, price := range product.Prices {
		prices[branch.String()] = price
	}
	return &ProductResponse{
		ID:        product.ID,
		Name:      product.Name,
		Barcode:   product.Barcode,
		UnitCost:  product.UnitCost,
		Prices:    prices,
		Active:    product.Active,
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	}
}
