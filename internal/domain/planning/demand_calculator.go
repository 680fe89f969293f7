package planning

import (
	"github.com/google/uuid"
)

// DemandCalculator computes per-product incremental demand for a production
// order, reconciling it against what overlapping prior orders already covered.
type DemandCalculator struct{}

// NewDemandCalculator creates a DemandCalculator
func NewDemandCalculator() *DemandCalculator {
	return &DemandCalculator{}
}

// MaxCovered returns the most complete known coverage of a product inside the
// current order's dispatch range, frozen at each prior order's creation time.
//
// For every prior order the range is clamped to the shared window and that
// order's snapshot quantities inside the window are summed. The result is the
// MAXIMUM of those per-order sums, never their sum: priors can overlap each
// other and snapshot the same underlying source orders, so summing would
// double-count.
func (c *DemandCalculator) MaxCovered(
	productID uuid.UUID,
	priors []ProductionOrder,
	current *ProductionOrder,
	snapshotsByOrder map[uuid.UUID][]CoverageSnapshot,
) int64 {
	var maxCovered int64
	for i := range priors {
		prior := &priors[i]
		start, end, ok := prior.OverlapWindow(current.InitialDispatchDate, current.FinalDispatchDate)
		if !ok {
			continue
		}

		// A prior that never snapshotted this product contributes nothing.
		var covered int64
		for _, snap := range snapshotsByOrder[prior.ID] {
			if snap.ProductID != productID {
				continue
			}
			if snap.InWindow(start, end) {
				covered += snap.QuantityCovered
			}
		}
		if covered > maxCovered {
			maxCovered = covered
		}
	}
	return maxCovered
}

// OrderedQuantityNew isolates the demand that did not exist (or was not yet
// assigned) when the best prior snapshot was taken.
func (c *DemandCalculator) OrderedQuantityNew(totalOrdered, maxCovered int64) int64 {
	remaining := totalOrdered - maxCovered
	if remaining < 0 {
		return 0
	}
	return remaining
}

// TotalToProduce applies the manual-override rule and nets out warehouse
// stock: max(0, effective - initialInventory), where effective is the manual
// quantity when positive, the incremental ordered quantity otherwise.
func (c *DemandCalculator) TotalToProduce(manualQuantity, orderedQuantityNew, initialInventory int64) int64 {
	effective := orderedQuantityNew
	if manualQuantity > 0 {
		effective = manualQuantity
	}
	total := effective - initialInventory
	if total < 0 {
		return 0
	}
	return total
}
