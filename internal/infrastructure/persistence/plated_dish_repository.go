package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/meridianfood/backend/internal/domain/catalog"
	"github.com/meridianfood/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormPlatedDishRepository implements PlatedDishRepository using GORM
type GormPlatedDishRepository struct {
	db *gorm.DB
}

// NewGormPlatedDishRepository creates a new GormPlatedDishRepository
func NewGormPlatedDishRepository(db *gorm.DB) *GormPlatedDishRepository {
	return &GormPlatedDishRepository{db: db}
}

// FindByID finds a plated dish by its ID with ingredients preloaded
func (r *GormPlatedDishRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.PlatedDish, error) {
	var dish catalog.PlatedDish
	if err := r.db.WithContext(ctx).
		Preload("Ingredients").
		First(&dish, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &dish, nil
}

// FindByProduct returns the dish for a product with ingredients preloaded, or
// shared.ErrNotFound when the product has no recipe
func (r *GormPlatedDishRepository) FindByProduct(ctx context.Context, productID uuid.UUID) (*catalog.PlatedDish, error) {
	var dish catalog.PlatedDish
	if err := r.db.WithContext(ctx).
		Preload("Ingredients").
		Where("product_id = ?", productID).
		First(&dish).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &dish, nil
}

// FindByProducts returns the dishes for a set of products, ingredients preloaded
func (r *GormPlatedDishRepository) FindByProducts(ctx context.Context, productIDs []uuid.UUID) ([]catalog.PlatedDish, error) {
	if len(productIDs) == 0 {
		return []catalog.PlatedDish{}, nil
	}

	var dishes []catalog.PlatedDish
	if err := r.db.WithContext(ctx).
		Preload("Ingredients").
		Where("product_id IN ?", productIDs).
		Find(&dishes).Error; err != nil {
		return nil, err
	}
	return dishes, nil
}

// FindAll finds all plated dishes matching the filter
func (r *GormPlatedDishRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.PlatedDish, error) {
	var dishes []catalog.PlatedDish
	query := r.db.WithContext(ctx).Model(&catalog.PlatedDish{}).Preload("Ingredients")

	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	query = query.Order("name ASC")

	if err := query.Find(&dishes).Error; err != nil {
		return nil, err
	}
	return dishes, nil
}

// Save creates or updates a plated dish
func (r *GormPlatedDishRepository) Save(ctx context.Context, dish *catalog.PlatedDish) error {
	return r.db.WithContext(ctx).Save(dish).Error
}

// Delete deletes a plated dish
func (r *GormPlatedDishRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.PlatedDish{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts plated dishes matching the filter
func (r *GormPlatedDishRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&catalog.PlatedDish{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormPlatedDishRepository implements PlatedDishRepository
var _ catalog.PlatedDishRepository = (*GormPlatedDishRepository)(nil)
