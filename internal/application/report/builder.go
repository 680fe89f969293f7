package report

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/meridianfood/backend/internal/domain/catalog"
	"github.com/meridianfood/backend/internal/domain/ordering"
	"github.com/meridianfood/backend/internal/domain/packing"
	"github.com/meridianfood/backend/internal/domain/planning"
	"github.com/meridianfood/backend/internal/domain/shared"
)

// ConsolidationReportBuilder aggregates many production orders' coverage
// snapshots into consolidation and production-area reports. Products without
// plated-dish metadata do not participate and are skipped silently.
type ConsolidationReportBuilder struct {
	orderRepo         planning.ProductionOrderRepository
	snapshotRepo      planning.CoverageSnapshotRepository
	customerOrderRepo ordering.CustomerOrderRepository
	productRepo       catalog.ProductRepository
	dishRepo          catalog.PlatedDishRepository
	branchRepo        catalog.BranchRepository
	companyRepo       catalog.CompanyRepository
	areaRepo          catalog.ProductionAreaRepository
	cache             ReportCache
	logger            *zap.Logger
}

// NewConsolidationReportBuilder creates a ConsolidationReportBuilder.
// cache may be nil; reports are then always rebuilt.
func NewConsolidationReportBuilder(
	orderRepo planning.ProductionOrderRepository,
	snapshotRepo planning.CoverageSnapshotRepository,
	customerOrderRepo ordering.CustomerOrderRepository,
	productRepo catalog.ProductRepository,
	dishRepo catalog.PlatedDishRepository,
	branchRepo catalog.BranchRepository,
	companyRepo catalog.CompanyRepository,
	areaRepo catalog.ProductionAreaRepository,
	cache ReportCache,
	logger *zap.Logger,
) *ConsolidationReportBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsolidationReportBuilder{
		orderRepo:         orderRepo,
		snapshotRepo:      snapshotRepo,
		customerOrderRepo: customerOrderRepo,
		productRepo:       productRepo,
		dishRepo:          dishRepo,
		branchRepo:        branchRepo,
		companyRepo:       companyRepo,
		areaRepo:          areaRepo,
		cache:             cache,
		logger:            logger,
	}
}

// snapshotFacts is the deduplicated working set loaded for a report run.
// A source order line snapshotted by two overlapping production orders is
// counted once.
type snapshotFacts struct {
	snapshots  []planning.CoverageSnapshot
	orders     []planning.ProductionOrder
	windowFrom time.Time
	windowTo   time.Time
}

// Build produces the consolidation tree for the given production orders
func (b *ConsolidationReportBuilder) Build(ctx context.Context, orderIDs []uuid.UUID) (*ConsolidationReport, error) {
	if cached := b.fromCache(ctx, orderIDs); cached != nil {
		return cached, nil
	}

	facts, err := b.loadFacts(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	// Servings per product per branch, from the deduplicated snapshots.
	type productKey struct {
		productID uuid.UUID
		branchID  uuid.UUID
	}
	servings := make(map[productKey]int64)
	productServings := make(map[uuid.UUID]int64)
	branchIDs := make(map[uuid.UUID]bool)
	for _, snap := range facts.snapshots {
		servings[productKey{snap.ProductID, snap.BranchID}] += snap.QuantityCovered
		productServings[snap.ProductID] += snap.QuantityCovered
		branchIDs[snap.BranchID] = true
	}

	branchNames, branchNameByID, err := b.loadBranches(ctx, branchIDs)
	if err != nil {
		return nil, err
	}

	productIDs := make([]uuid.UUID, 0, len(productServings))
	for id := range productServings {
		productIDs = append(productIDs, id)
	}
	products, err := b.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	dishes, err := b.dishRepo.FindByProducts(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	dishByProduct := make(map[uuid.UUID]*catalog.PlatedDish, len(dishes))
	for i := range dishes {
		dishByProduct[dishes[i].ProductID] = &dishes[i]
	}

	report := &ConsolidationReport{
		GeneratedAt: time.Now(),
		BranchNames: branchNames,
		Dishes:      make([]DishRow, 0, len(products)),
	}

	for i := range products {
		product := &products[i]
		// Related INDIVIDUAL products surface under their HORECA row.
		if product.IsIndividual() && product.HasHorecaRelation() {
			continue
		}
		dish, ok := dishByProduct[product.ID]
		if !ok {
			continue
		}

		row := DishRow{
			ProductID: product.ID,
			DishName:  dish.Name,
		}
		if product.IsHoreca() {
			row.TotalHoreca = productServings[product.ID]
			row.TotalIndividual, err = b.relatedIndividualSales(ctx, product.ID, facts)
			if err != nil {
				return nil, err
			}
		} else {
			row.TotalIndividual = productServings[product.ID]
		}

		for _, ing := range dish.Ingredients {
			ingRow := IngredientRow{
				Name:               ing.Name,
				Unit:               ing.Unit,
				QuantityPerServing: ing.QuantityPerServing,
			}
			allWeights := make([]decimal.Decimal, 0)
			for _, branchID := range sortedBranchIDs(branchIDs, branchNameByID) {
				count := servings[productKey{product.ID, branchID}]
				if count == 0 {
					continue
				}
				quantity := ing.TotalForServings(count)
				weights := packing.Pack(quantity, ing.MaxQuantityPerBag)
				ingRow.Branches = append(ingRow.Branches, BranchPacking{
					BranchName:  branchNameByID[branchID],
					Quantity:    quantity,
					Weights:     weights,
					Description: packing.Describe(weights, ing.Unit),
				})
				allWeights = append(allWeights, weights...)
			}
			ingRow.Consolidated = packing.Describe(allWeights, ing.Unit)
			ingRow.BagCount = len(allWeights)
			report.TotalBags += ingRow.BagCount
			row.Ingredients = append(row.Ingredients, ingRow)
		}

		report.TotalHoreca += row.TotalHoreca
		report.TotalIndividual += row.TotalIndividual
		report.Dishes = append(report.Dishes, row)
	}

	sort.Slice(report.Dishes, func(i, j int) bool {
		return report.Dishes[i].DishName < report.Dishes[j].DishName
	})

	b.toCache(ctx, orderIDs, report)
	return report, nil
}

// BuildByProductionArea regroups the selected orders' demand by the
// ingredient's production area. Quantities derive from each line's incremental
// OrderedQuantityNew so demand already reconciled by an overlapping prior
// order is not counted twice; excluded-company shares are tracked separately,
// deduplicated by (customer order, product, company).
func (b *ConsolidationReportBuilder) BuildByProductionArea(ctx context.Context, orderIDs []uuid.UUID) (*ProductionAreaReport, error) {
	facts, err := b.loadFacts(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	// Incremental servings per product over the selected orders.
	newServings := make(map[uuid.UUID]int64)
	for i := range facts.orders {
		for _, line := range facts.orders[i].Lines {
			newServings[line.ProductID] += line.OrderedQuantityNew
		}
	}

	excludedServings, err := b.excludedServings(ctx, facts)
	if err != nil {
		return nil, err
	}

	productIDs := make([]uuid.UUID, 0, len(newServings))
	for id := range newServings {
		productIDs = append(productIDs, id)
	}
	dishes, err := b.dishRepo.FindByProducts(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	type areaIngredientKey struct {
		areaID uuid.UUID
		name   string
		unit   string
	}
	quantities := make(map[areaIngredientKey]decimal.Decimal)
	excluded := make(map[areaIngredientKey]decimal.Decimal)
	areaIDs := make(map[uuid.UUID]bool)

	for i := range dishes {
		dish := &dishes[i]
		count := newServings[dish.ProductID]
		excludedCount := excludedServings[dish.ProductID]
		if count == 0 && excludedCount == 0 {
			continue
		}
		for _, ing := range dish.Ingredients {
			key := areaIngredientKey{ing.ProductionAreaID, ing.Name, ing.Unit}
			quantities[key] = quantities[key].Add(ing.TotalForServings(count))
			if excludedCount > 0 {
				excluded[key] = excluded[key].Add(ing.TotalForServings(excludedCount))
			}
			areaIDs[ing.ProductionAreaID] = true
		}
	}

	areaNames, err := b.loadAreaNames(ctx, areaIDs)
	if err != nil {
		return nil, err
	}

	byArea := make(map[uuid.UUID]*AreaRow)
	for key, qty := range quantities {
		row, ok := byArea[key.areaID]
		if !ok {
			row = &AreaRow{ProductionAreaID: key.areaID, AreaName: areaNames[key.areaID]}
			byArea[key.areaID] = row
		}
		row.Ingredients = append(row.Ingredients, AreaIngredientRow{
			Name:             key.name,
			Unit:             key.unit,
			Quantity:         qty,
			ExcludedQuantity: excluded[key],
		})
	}

	result := &ProductionAreaReport{GeneratedAt: time.Now()}
	for _, row := range byArea {
		sort.Slice(row.Ingredients, func(i, j int) bool {
			return row.Ingredients[i].Name < row.Ingredients[j].Name
		})
		result.Areas = append(result.Areas, *row)
	}
	sort.Slice(result.Areas, func(i, j int) bool {
		return result.Areas[i].AreaName < result.Areas[j].AreaName
	})
	return result, nil
}

// loadFacts loads the selected orders and their snapshots, deduplicating
// snapshots of the same source order line across overlapping orders. Orders
// are walked by sequence descending so the latest order's snapshot of a
// shared line wins, keeping repeated builds stable.
func (b *ConsolidationReportBuilder) loadFacts(ctx context.Context, orderIDs []uuid.UUID) (*snapshotFacts, error) {
	orders, err := b.orderRepo.FindByIDs(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, shared.NewDomainError("NO_ORDERS", "No production orders found for the report")
	}

	byOrder, err := b.snapshotRepo.FindByProductionOrders(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	facts := &snapshotFacts{orders: orders}
	facts.windowFrom = orders[0].InitialDispatchDate
	facts.windowTo = orders[0].FinalDispatchDate
	for i := range orders {
		if orders[i].InitialDispatchDate.Before(facts.windowFrom) {
			facts.windowFrom = orders[i].InitialDispatchDate
		}
		if orders[i].FinalDispatchDate.After(facts.windowTo) {
			facts.windowTo = orders[i].FinalDispatchDate
		}
	}

	bySequence := make([]planning.ProductionOrder, len(orders))
	copy(bySequence, orders)
	sort.Slice(bySequence, func(i, j int) bool {
		return bySequence[i].Sequence > bySequence[j].Sequence
	})

	seen := make(map[uuid.UUID]bool)
	for i := range bySequence {
		for _, snap := range byOrder[bySequence[i].ID] {
			if seen[snap.OrderLineID] {
				continue
			}
			seen[snap.OrderLineID] = true
			facts.snapshots = append(facts.snapshots, snap)
		}
	}
	return facts, nil
}

// relatedIndividualSales counts direct sales of INDIVIDUAL products related
// to the HORECA product, over all customer orders in the covered window.
func (b *ConsolidationReportBuilder) relatedIndividualSales(ctx context.Context, horecaProductID uuid.UUID, facts *snapshotFacts) (int64, error) {
	related, err := b.productRepo.FindRelatedIndividuals(ctx, horecaProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	var total int64
	for i := range related {
		sum, err := b.customerOrderRepo.SumQuantityByProductInRange(ctx, related[i].ID, facts.windowFrom, facts.windowTo)
		if err != nil {
			return 0, err
		}
		total += sum
	}
	return total, nil
}

// excludedServings sums snapshot quantities attributable to excluded
// companies, deduplicated by (customer order, product, company).
func (b *ConsolidationReportBuilder) excludedServings(ctx context.Context, facts *snapshotFacts) (map[uuid.UUID]int64, error) {
	companyIDs := make(map[uuid.UUID]bool)
	for _, snap := range facts.snapshots {
		companyIDs[snap.CompanyID] = true
	}
	ids := make([]uuid.UUID, 0, len(companyIDs))
	for id := range companyIDs {
		ids = append(ids, id)
	}
	companies, err := b.companyRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	excluded := make(map[uuid.UUID]bool)
	for i := range companies {
		if companies[i].ExcludedFromConsolidation {
			excluded[companies[i].ID] = true
		}
	}

	type dedupKey struct {
		customerOrderID uuid.UUID
		productID       uuid.UUID
		companyID       uuid.UUID
	}
	seen := make(map[dedupKey]bool)
	result := make(map[uuid.UUID]int64)
	for _, snap := range facts.snapshots {
		if !excluded[snap.CompanyID] {
			continue
		}
		key := dedupKey{snap.CustomerOrderID, snap.ProductID, snap.CompanyID}
		if seen[key] {
			continue
		}
		seen[key] = true
		result[snap.ProductID] += snap.QuantityCovered
	}
	return result, nil
}

func (b *ConsolidationReportBuilder) loadBranches(ctx context.Context, branchIDs map[uuid.UUID]bool) ([]string, map[uuid.UUID]string, error) {
	ids := make([]uuid.UUID, 0, len(branchIDs))
	for id := range branchIDs {
		ids = append(ids, id)
	}
	branches, err := b.branchRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	nameByID := make(map[uuid.UUID]string, len(branches))
	names := make([]string, 0, len(branches))
	for i := range branches {
		nameByID[branches[i].ID] = branches[i].Name
		names = append(names, branches[i].Name)
	}
	sort.Strings(names)
	return names, nameByID, nil
}

func (b *ConsolidationReportBuilder) loadAreaNames(ctx context.Context, areaIDs map[uuid.UUID]bool) (map[uuid.UUID]string, error) {
	ids := make([]uuid.UUID, 0, len(areaIDs))
	for id := range areaIDs {
		ids = append(ids, id)
	}
	areas, err := b.areaRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(areas))
	for i := range areas {
		names[areas[i].ID] = areas[i].Name
	}
	return names, nil
}

func sortedBranchIDs(branchIDs map[uuid.UUID]bool, nameByID map[uuid.UUID]string) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(branchIDs))
	for id := range branchIDs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return nameByID[ids[i]] < nameByID[ids[j]] })
	return ids
}

func (b *ConsolidationReportBuilder) fromCache(ctx context.Context, orderIDs []uuid.UUID) *ConsolidationReport {
	if b.cache == nil {
		return nil
	}
	report, err := b.cache.Get(ctx, CacheKey(orderIDs))
	if err != nil {
		b.logger.Warn("report cache read failed, rebuilding", zap.Error(err))
		return nil
	}
	return report
}

func (b *ConsolidationReportBuilder) toCache(ctx context.Context, orderIDs []uuid.UUID, report *ConsolidationReport) {
	if b.cache == nil {
		return
	}
	if err := b.cache.Set(ctx, CacheKey(orderIDs), report); err != nil {
		b.logger.Warn("report cache write failed", zap.Error(err))
	}
}
