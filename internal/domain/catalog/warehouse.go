package catalog

import (
	"github.com/meridianfood/backend/internal/domain/shared"
)

// Warehouse is a physical stock location. At most one warehouse is flagged as
// the default; initial inventory for demand calculation is read from it.
type Warehouse struct {
	shared.BaseAggregateRoot
	Code      string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name      string `gorm:"type:varchar(255);not null"`
	IsDefault bool   `gorm:"not null;default:false;index"`
	Active    bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}

// NewWarehouse creates a warehouse
func NewWarehouse(code, name string) (*Warehouse, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Warehouse code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Warehouse name cannot be empty")
	}
	return &Warehouse{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Active:            true,
	}, nil
}

// MarkDefault flags this warehouse as the default stock source
func (w *Warehouse) MarkDefault() {
	w.IsDefault = true
	w.IncrementVersion()
}
