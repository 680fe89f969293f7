package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// ProductionOrderSortFields contains allowed sort fields for production orders
var ProductionOrderSortFields = map[string]bool{
	"id":                    true,
	"created_at":            true,
	"updated_at":            true,
	"sequence":              true,
	"status":                true,
	"initial_dispatch_date": true,
	"final_dispatch_date":   true,
	"preparation_time":      true,
}

// CustomerOrderSortFields contains allowed sort fields for customer orders
var CustomerOrderSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"dispatch_date": true,
	"status":        true,
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"code":           true,
	"name":           true,
	"classification": true,
}

// WarehouseStockSortFields contains allowed sort fields for stock counters
var WarehouseStockSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"quantity":       true,
	"stock_taken_at": true,
}
