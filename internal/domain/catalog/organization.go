package catalog

import (
	"github.com/meridianfood/backend/internal/domain/shared"
)

// Branch is a dispatch branch. Branch names become the dynamic columns of the
// consolidation report, sorted alphabetically.
type Branch struct {
	shared.BaseAggregateRoot
	Code   string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name   string `gorm:"type:varchar(255);not null"`
	Active bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Branch) TableName() string {
	return "branches"
}

// NewBranch creates a dispatch branch
func NewBranch(code, name string) (*Branch, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Branch code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Branch name cannot be empty")
	}
	return &Branch{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Active:            true,
	}, nil
}

// Company is a customer company. Companies flagged as excluded from
// consolidation have their quantities tracked separately in production-area
// roll-ups instead of being mixed into branch totals.
type Company struct {
	shared.BaseAggregateRoot
	Name                      string `gorm:"type:varchar(255);not null"`
	TaxID                     string `gorm:"type:varchar(50);uniqueIndex"`
	ExcludedFromConsolidation bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Company) TableName() string {
	return "companies"
}

// NewCompany creates a customer company
func NewCompany(name, taxID string) (*Company, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Company name cannot be empty")
	}
	return &Company{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		TaxID:             taxID,
	}, nil
}

// ProductionArea is a facility grouping used to roll up ingredient demand for
// kitchen planning (e.g. cold kitchen, bakery, butchery).
type ProductionArea struct {
	shared.BaseAggregateRoot
	Name string `gorm:"type:varchar(255);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (ProductionArea) TableName() string {
	return "production_areas"
}

// NewProductionArea creates a production area
func NewProductionArea(name string) (*ProductionArea, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Production area name cannot be empty")
	}
	return &ProductionArea{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
	}, nil
}
