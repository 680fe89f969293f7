package report

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// ReportCache stores built consolidation reports keyed by their order-id set.
// A cache miss is reported as (nil, nil); implementations decide the TTL.
// Callers treat any error as soft and rebuild the report.
type ReportCache interface {
	Get(ctx context.Context, key string) (*ConsolidationReport, error)
	Set(ctx context.Context, key string, report *ConsolidationReport) error
}

// CacheKey derives a deterministic cache key from a set of production order
// ids: the same set always yields the same key regardless of call order.
func CacheKey(orderIDs []uuid.UUID) string {
	ids := make([]string, 0, len(orderIDs))
	for _, id := range orderIDs {
		ids = append(ids, id.String())
	}
	sort.Strings(ids)
	return "report:consolidation:" + strings.Join(ids, ",")
}
