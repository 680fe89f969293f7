package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConsolidationReport is the nested consolidation tree built from a set of
// production orders: one row per plated dish, each with its packaged
// ingredients broken down by dispatch branch.
type ConsolidationReport struct {
	GeneratedAt     time.Time `json:"generated_at"`
	BranchNames     []string  `json:"branch_names"`
	Dishes          []DishRow `json:"dishes"`
	TotalIndividual int64     `json:"total_individual"`
	TotalHoreca     int64     `json:"total_horeca"`
	TotalBags       int       `json:"total_bags"`
}

// DishRow is one plated dish in the consolidation tree. TotalHoreca counts
// servings covered by the selected production orders; TotalIndividual counts
// related direct-sale units across all customer orders in the covered window.
type DishRow struct {
	ProductID       uuid.UUID       `json:"product_id"`
	DishName        string          `json:"dish_name"`
	TotalHoreca     int64           `json:"total_horeca"`
	TotalIndividual int64           `json:"total_individual"`
	Ingredients     []IngredientRow `json:"ingredients"`
}

// IngredientRow is one recipe line of a dish with its per-branch packaging
type IngredientRow struct {
	Name               string          `json:"name"`
	Unit               string          `json:"unit"`
	QuantityPerServing decimal.Decimal `json:"quantity_per_serving"`
	Branches           []BranchPacking `json:"branches"`
	Consolidated       []string        `json:"consolidated"`
	BagCount           int             `json:"bag_count"`
}

// BranchPacking is the packaged quantity of one ingredient for one branch
type BranchPacking struct {
	BranchName  string            `json:"branch_name"`
	Quantity    decimal.Decimal   `json:"quantity"`
	Weights     []decimal.Decimal `json:"weights"`
	Description []string          `json:"description"`
}

// ProductionAreaReport regroups the same production orders by the ingredient's
// production area for kitchen roll-ups.
type ProductionAreaReport struct {
	GeneratedAt time.Time `json:"generated_at"`
	Areas       []AreaRow `json:"areas"`
}

// AreaRow aggregates ingredient demand for one production area
type AreaRow struct {
	ProductionAreaID uuid.UUID           `json:"production_area_id"`
	AreaName         string              `json:"area_name"`
	Ingredients      []AreaIngredientRow `json:"ingredients"`
}

// AreaIngredientRow is one ingredient's total demand within an area.
// ExcludedQuantity is the share attributable to companies flagged as excluded
// from the consolidated report.
type AreaIngredientRow struct {
	Name             string          `json:"name"`
	Unit             string          `json:"unit"`
	Quantity         decimal.Decimal `json:"quantity"`
	ExcludedQuantity decimal.Decimal `json:"excluded_quantity"`
}

// Flatten renders the consolidation tree as tabular rows for export. The
// header holds the fixed prefix columns, one column per branch (names
// ascending) and the fixed suffix columns; detail rows follow, one per
// (dish, ingredient); the trailing TOTAL row carries only the totals.
func Flatten(report *ConsolidationReport) [][]string {
	header := []string{"dish_name", "ingredient_name", "quantity_per_serving", "individual_count"}
	header = append(header, report.BranchNames...)
	header = append(header, "total_horeca", "total_bags")

	rows := [][]string{header}
	for _, dish := range report.Dishes {
		for _, ing := range dish.Ingredients {
			row := []string{
				dish.DishName,
				ing.Name,
				ing.QuantityPerServing.String(),
				strconv.FormatInt(dish.TotalIndividual, 10),
			}
			byBranch := make(map[string][]string, len(ing.Branches))
			for _, b := range ing.Branches {
				byBranch[b.BranchName] = b.Description
			}
			for _, name := range report.BranchNames {
				row = append(row, strings.Join(byBranch[name], ", "))
			}
			row = append(row,
				strconv.FormatInt(dish.TotalHoreca, 10),
				strconv.Itoa(ing.BagCount),
			)
			rows = append(rows, row)
		}
	}

	total := []string{"TOTAL", "", "", strconv.FormatInt(report.TotalIndividual, 10)}
	for range report.BranchNames {
		total = append(total, "")
	}
	total = append(total,
		strconv.FormatInt(report.TotalHoreca, 10),
		strconv.Itoa(report.TotalBags),
	)
	return append(rows, total)
}
