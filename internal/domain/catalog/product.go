package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/retailbooks/backend/internal/domain/shared"
	"github.com/retailbooks/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// BranchPrices maps a branch to the product's retail price there
type BranchPrices map[valueobject.Branch]decimal.Decimal

// Value implements driver.Valuer interface for GORM to store as JSONB
func (p BranchPrices) Value() (driver.Value, error) {
	if p == nil {
		return "{}", nil
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (p *BranchPrices) Scan(value interface{}) error {
	if value == nil {
		*p = BranchPrices{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if str, ok := value.(string); ok {
			bytes = []byte(str)
		} else {
			return fmt.Errorf("cannot scan %T into BranchPrices", value)
		}
	}
	return json.Unmarshal(bytes, p)
}

// Product is the cost and price reference for sold goods.
// UnitCost is the current replacement cost; income statements value the
// goods sold at this current cost, not at a historical snapshot.
type Product struct {
	shared.BaseAggregateRoot
	Name     string                                 `json:"name"`
	Barcode  string                                 `json:"barcode"`
	UnitCost decimal.Decimal                        `json:"unit_cost"`
	Prices   BranchPrices    `json:"prices"`
	Active   bool                                   `json:"active"`
}

// NewProduct creates a new product
func NewProduct(name string, unitCost decimal.Decimal) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		UnitCost:          unitCost,
		Prices:            make(BranchPrices),
		Active:            true,
	}, nil
}

// UpdateCost replaces the current unit cost
func (p *Product) UpdateCost(unitCost decimal.Decimal) error {
	if unitCost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}
	p.UnitCost = unitCost
	return nil
}

// SetPrice sets the retail price for one branch
func (p *Product) SetPrice(branch valueobject.Branch, price decimal.Decimal) error {
	if !branch.IsValid() {
		return shared.NewDomainError("INVALID_BRANCH", "Branch is not valid")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if p.Prices == nil {
		p.Prices = make(BranchPrices)
	}
	p.Prices[branch] = price
	return nil
}

// PriceFor returns the retail price for a branch; the second return is
// false when no price is configured for it
func (p *Product) PriceFor(branch valueobject.Branch) (decimal.Decimal, bool) {
	price, ok := p.Prices[branch]
	return price, ok
}

// Deactivate removes the product from active listings without losing
// its cost reference for past sales
func (p *Product) Deactivate() {
	p.Active = false
}

// Activate restores the product to active listings
func (p *Product) Activate() {
	p.Active = true
}
