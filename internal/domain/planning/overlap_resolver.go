package planning

import (
	"context"
)

// OverlapResolver finds the prior production orders whose dispatch range
// intersects a new order's range. Priors are all non-cancelled orders created
// before the current one (lower sequence), newest first: later runs are
// assumed to carry the most complete view of demand.
type OverlapResolver struct {
	orderRepo ProductionOrderRepository
}

// NewOverlapResolver creates an OverlapResolver
func NewOverlapResolver(orderRepo ProductionOrderRepository) *OverlapResolver {
	return &OverlapResolver{orderRepo: orderRepo}
}

// FindOverlapping returns prior overlapping orders, sequence descending.
// An empty result is valid: the current order simply has no priors.
func (r *OverlapResolver) FindOverlapping(ctx context.Context, current *ProductionOrder) ([]ProductionOrder, error) {
	candidates, err := r.orderRepo.FindPriorActive(ctx, current.Sequence)
	if err != nil {
		return nil, err
	}

	overlapping := make([]ProductionOrder, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.OverlapsRange(current.InitialDispatchDate, current.FinalDispatchDate) {
			overlapping = append(overlapping, candidate)
		}
	}
	return overlapping, nil
}
