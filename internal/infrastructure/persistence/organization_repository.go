package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/meridianfood/backend/internal/domain/catalog"
	"github.com/meridianfood/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormBranchRepository implements BranchRepository using GORM
type GormBranchRepository struct {
	db *gorm.DB
}

// NewGormBranchRepository creates a new GormBranchRepository
func NewGormBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: db}
}

// FindByID finds a branch by its ID
func (r *GormBranchRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Branch, error) {
	var branch catalog.Branch
	if err := r.db.WithContext(ctx).First(&branch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &branch, nil
}

// FindByIDs finds multiple branches by their IDs
func (r *GormBranchRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Branch, error) {
	if len(ids) == 0 {
		return []catalog.Branch{}, nil
	}

	var branches []catalog.Branch
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

// FindAll finds all branches matching the filter
func (r *GormBranchRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Branch, error) {
	var branches []catalog.Branch
	query := r.db.WithContext(ctx).Model(&catalog.Branch{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if err := query.Order("name ASC").Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

// Save creates or updates a branch
func (r *GormBranchRepository) Save(ctx context.Context, branch *catalog.Branch) error {
	return r.db.WithContext(ctx).Save(branch).Error
}

// Delete deletes a branch
func (r *GormBranchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Branch{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts branches matching the filter
func (r *GormBranchRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&catalog.Branch{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GormCompanyRepository implements CompanyRepository using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// FindByID finds a company by its ID
func (r *GormCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Company, error) {
	var company catalog.Company
	if err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

// FindByIDs finds multiple companies by their IDs
func (r *GormCompanyRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Company, error) {
	if len(ids) == 0 {
		return []catalog.Company{}, nil
	}

	var companies []catalog.Company
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// FindAll finds all companies matching the filter
func (r *GormCompanyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Company, error) {
	var companies []catalog.Company
	query := r.db.WithContext(ctx).Model(&catalog.Company{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ? OR tax_id ILIKE ?", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}
	if excluded, ok := filter.Filters["excluded_from_consolidation"]; ok {
		query = query.Where("excluded_from_consolidation = ?", excluded)
	}
	if err := query.Order("name ASC").Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// Save creates or updates a company
func (r *GormCompanyRepository) Save(ctx context.Context, company *catalog.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

// Delete deletes a company
func (r *GormCompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Company{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts companies matching the filter
func (r *GormCompanyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&catalog.Company{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GormProductionAreaRepository implements ProductionAreaRepository using GORM
type GormProductionAreaRepository struct {
	db *gorm.DB
}

// NewGormProductionAreaRepository creates a new GormProductionAreaRepository
func NewGormProductionAreaRepository(db *gorm.DB) *GormProductionAreaRepository {
	return &GormProductionAreaRepository{db: db}
}

// FindByID finds a production area by its ID
func (r *GormProductionAreaRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductionArea, error) {
	var area catalog.ProductionArea
	if err := r.db.WithContext(ctx).First(&area, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &area, nil
}

// FindByIDs finds multiple production areas by their IDs
func (r *GormProductionAreaRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.ProductionArea, error) {
	if len(ids) == 0 {
		return []catalog.ProductionArea{}, nil
	}

	var areas []catalog.ProductionArea
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&areas).Error; err != nil {
		return nil, err
	}
	return areas, nil
}

// FindAll finds all production areas matching the filter
func (r *GormProductionAreaRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.ProductionArea, error) {
	var areas []catalog.ProductionArea
	query := r.db.WithContext(ctx).Model(&catalog.ProductionArea{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if err := query.Order("name ASC").Find(&areas).Error; err != nil {
		return nil, err
	}
	return areas, nil
}

// Save creates or updates a production area
func (r *GormProductionAreaRepository) Save(ctx context.Context, area *catalog.ProductionArea) error {
	return r.db.WithContext(ctx).Save(area).Error
}

// Delete deletes a production area
func (r *GormProductionAreaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.ProductionArea{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts production areas matching the filter
func (r *GormProductionAreaRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&catalog.ProductionArea{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure implementations satisfy the catalog interfaces
var _ catalog.BranchRepository = (*GormBranchRepository)(nil)
var _ catalog.CompanyRepository = (*GormCompanyRepository)(nil)
var _ catalog.ProductionAreaRepository = (*GormProductionAreaRepository)(nil)
