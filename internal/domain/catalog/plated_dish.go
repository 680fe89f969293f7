package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/meridianfood/backend/internal/domain/shared"
)

// PlatedDish is the recipe head for a product that participates in plated-dish
// production. Not every product has one; products without a dish are simply
// absent from ingredient packaging reports.
type PlatedDish struct {
	shared.BaseAggregateRoot
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Name      string    `gorm:"type:varchar(255);not null"`

	Ingredients []DishIngredient `gorm:"foreignKey:PlatedDishID;references:ID"`
}

// TableName returns the table name for GORM
func (PlatedDish) TableName() string {
	return "plated_dishes"
}

// NewPlatedDish creates a recipe head for a product
func NewPlatedDish(productID uuid.UUID, name string) (*PlatedDish, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Dish name cannot be empty")
	}

	return &PlatedDish{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		Name:              name,
		Ingredients:       make([]DishIngredient, 0),
	}, nil
}

// AddIngredient appends an ingredient line to the recipe
func (d *PlatedDish) AddIngredient(name, unit string, perServing, maxPerBag decimal.Decimal, productionAreaID uuid.UUID) (*DishIngredient, error) {
	ing, err := NewDishIngredient(d.ID, name, unit, perServing, maxPerBag, productionAreaID)
	if err != nil {
		return nil, err
	}
	d.Ingredients = append(d.Ingredients, *ing)
	d.IncrementVersion()
	return ing, nil
}

// DishIngredient is one recipe line: how much of an ingredient goes into one
// serving, and the bag capacity used when the ingredient is packaged for
// dispatch to branches.
type DishIngredient struct {
	shared.BaseEntity
	PlatedDishID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name               string          `gorm:"type:varchar(255);not null"`
	Unit               string          `gorm:"type:varchar(20);not null;default:'GR'"`
	QuantityPerServing decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	MaxQuantityPerBag  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ProductionAreaID   uuid.UUID       `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (DishIngredient) TableName() string {
	return "dish_ingredients"
}

// NewDishIngredient creates a recipe line
func NewDishIngredient(dishID uuid.UUID, name, unit string, perServing, maxPerBag decimal.Decimal, productionAreaID uuid.UUID) (*DishIngredient, error) {
	if dishID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DISH", "Plated dish ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Ingredient name cannot be empty")
	}
	if perServing.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity per serving must be positive")
	}
	if maxPerBag.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Max quantity per bag must be positive")
	}
	if unit == "" {
		unit = "GR"
	}

	return &DishIngredient{
		BaseEntity:         shared.NewBaseEntity(),
		PlatedDishID:       dishID,
		Name:               name,
		Unit:               unit,
		QuantityPerServing: perServing,
		MaxQuantityPerBag:  maxPerBag,
		ProductionAreaID:   productionAreaID,
	}, nil
}

// TotalForServings returns the ingredient quantity needed for the given serving count
func (i *DishIngredient) TotalForServings(servings int64) decimal.Decimal {
	return i.QuantityPerServing.Mul(decimal.NewFromInt(servings))
}
