package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/meridianfood/backend/internal/domain/shared"
)

// ProductRepository provides access to catalog products
type ProductRepository interface {
	shared.Repository[Product]
	FindByCode(ctx context.Context, code string) (*Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	// FindRelatedIndividuals returns INDIVIDUAL products whose sales fold into
	// the given HORECA product's consolidation row.
	FindRelatedIndividuals(ctx context.Context, horecaProductID uuid.UUID) ([]Product, error)
}

// PlatedDishRepository provides access to plated-dish recipes
type PlatedDishRepository interface {
	shared.Repository[PlatedDish]
	// FindByProduct returns the dish for a product with ingredients preloaded,
	// or shared.ErrNotFound when the product has no recipe.
	FindByProduct(ctx context.Context, productID uuid.UUID) (*PlatedDish, error)
	FindByProducts(ctx context.Context, productIDs []uuid.UUID) ([]PlatedDish, error)
}

// BranchRepository provides access to dispatch branches
type BranchRepository interface {
	shared.Repository[Branch]
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Branch, error)
}

// CompanyRepository provides access to customer companies
type CompanyRepository interface {
	shared.Repository[Company]
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Company, error)
}

// ProductionAreaRepository provides access to production areas
type ProductionAreaRepository interface {
	shared.Repository[ProductionArea]
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]ProductionArea, error)
}

// WarehouseRepository provides access to warehouses
type WarehouseRepository interface {
	shared.Repository[Warehouse]
	// FindDefault returns the default warehouse, or shared.ErrNotFound when
	// none is flagged. Callers treat the missing default as soft: inventory 0.
	FindDefault(ctx context.Context) (*Warehouse, error)
}
