package shared

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the base contract for aggregate persistence. Aggregate
// repositories embed it and add their own finders, like the production-order
// repository's sequence and overlap queries.
type Repository[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindAll(ctx context.Context, filter Filter) ([]T, error)
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter Filter) (int64, error)
}

// Filter carries list-query options. OrderBy is validated against a
// per-repository whitelist before reaching SQL; Filters holds exact-match
// column constraints.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]any
}

// Offset returns the row offset for the filter's page, zero when unpaged
func (f Filter) Offset() int {
	if f.Page <= 0 || f.PageSize <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}
