package catalog

import (
	"github.com/google/uuid"

	"github.com/meridianfood/backend/internal/domain/shared"
)

// ProductClassification distinguishes bulk HORECA dishes from direct-sale products
type ProductClassification string

const (
	// ClassificationHoreca is a bulk/shared dish produced and packaged for multiple servings
	ClassificationHoreca ProductClassification = "HORECA"
	// ClassificationIndividual is a product sold as a single unit
	ClassificationIndividual ProductClassification = "INDIVIDUAL"
)

// String returns the string representation of ProductClassification
func (c ProductClassification) String() string {
	return string(c)
}

// IsValid returns true if the classification is valid
func (c ProductClassification) IsValid() bool {
	switch c {
	case ClassificationHoreca, ClassificationIndividual:
		return true
	}
	return false
}

// Product represents a sellable/producible item in the catalog.
// An INDIVIDUAL product may be related to a HORECA product, in which case its
// sales are reported under the HORECA row of the consolidation report instead
// of as an independent row.
type Product struct {
	shared.BaseAggregateRoot
	Code                   string                `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name                   string                `gorm:"type:varchar(255);not null"`
	Classification         ProductClassification `gorm:"type:varchar(20);not null;index"`
	RelatedHorecaProductID *uuid.UUID            `gorm:"type:uuid;index"`
	Unit                   string                `gorm:"type:varchar(20);not null;default:'UND'"`
	Active                 bool                  `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new catalog product
func NewProduct(code, name string, classification ProductClassification, unit string) (*Product, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if !classification.IsValid() {
		return nil, shared.NewDomainError("INVALID_CLASSIFICATION", "Invalid product classification")
	}
	if unit == "" {
		unit = "UND"
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Classification:    classification,
		Unit:              unit,
		Active:            true,
	}, nil
}

// IsHoreca returns true if the product is a bulk HORECA dish
func (p *Product) IsHoreca() bool {
	return p.Classification == ClassificationHoreca
}

// IsIndividual returns true if the product is a direct-sale item
func (p *Product) IsIndividual() bool {
	return p.Classification == ClassificationIndividual
}

// RelateToHoreca links an INDIVIDUAL product to the HORECA dish it is a
// portioned version of. HORECA products cannot be related to other products.
func (p *Product) RelateToHoreca(horecaProductID uuid.UUID) error {
	if p.IsHoreca() {
		return shared.NewDomainError("INVALID_RELATION", "A HORECA product cannot be related to another product")
	}
	if horecaProductID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Related product ID cannot be empty")
	}
	p.RelatedHorecaProductID = &horecaProductID
	p.IncrementVersion()
	return nil
}

// HasHorecaRelation returns true if the product folds into a HORECA report row
func (p *Product) HasHorecaRelation() bool {
	return p.RelatedHorecaProductID != nil && *p.RelatedHorecaProductID != uuid.Nil
}
