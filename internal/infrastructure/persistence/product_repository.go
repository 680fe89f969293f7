package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/meridianfood/backend/internal/domain/catalog"
	"github.com/meridianfood/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByCode finds a product by its code
func (r *GormProductRepository) FindByCode(ctx context.Context, code string) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(code)).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByIDs finds multiple products by their IDs
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}

	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindRelatedIndividuals returns INDIVIDUAL products whose sales fold into the
// given HORECA product's consolidation row
func (r *GormProductRepository) FindRelatedIndividuals(ctx context.Context, horecaProductID uuid.UUID) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Where("classification = ? AND related_horeca_product_id = ?",
			catalog.ClassificationIndividual, horecaProductID).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindAll finds all products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Product{}), filter)

	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// Delete deletes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts products matching the filter
func (r *GormProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&catalog.Product{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormProductRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ProductSortFields, "name")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormProductRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "classification":
			query = query.Where("classification = ?", value)
		case "active":
			query = query.Where("active = ?", value)
		}
	}
	return query
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
