package planning

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meridianfood/backend/internal/domain/catalog"
	"github.com/meridianfood/backend/internal/domain/inventory"
	"github.com/meridianfood/backend/internal/domain/planning"
	"github.com/meridianfood/backend/internal/domain/shared"
)

// CreateProductionOrderCommand carries the inputs for a new production run
type CreateProductionOrderCommand struct {
	InitialDispatchDate time.Time
	FinalDispatchDate   time.Time
	PreparationTime     time.Time
	Notes               string
}

// PlanningService orchestrates the production-order lifecycle: creating runs
// with incrementally reconciled demand, executing them into warehouse stock,
// cancelling, and deleting cancelled runs.
type PlanningService struct {
	orderRepo     planning.ProductionOrderRepository
	warehouseRepo catalog.WarehouseRepository
	resolver      *planning.OverlapResolver
	calculator    *planning.DemandCalculator
	scope         TransactionScope
	eventBus      shared.EventBus
	logger        *zap.Logger
}

// NewPlanningService creates a PlanningService. A nil event bus disables
// event publication.
func NewPlanningService(
	orderRepo planning.ProductionOrderRepository,
	warehouseRepo catalog.WarehouseRepository,
	scope TransactionScope,
	eventBus shared.EventBus,
	logger *zap.Logger,
) *PlanningService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanningService{
		orderRepo:     orderRepo,
		warehouseRepo: warehouseRepo,
		resolver:      planning.NewOverlapResolver(orderRepo),
		calculator:    planning.NewDemandCalculator(),
		scope:         scope,
		eventBus:      eventBus,
		logger:        logger,
	}
}

// publishEvents flushes an aggregate's recorded events after a successful
// commit. Publication failures are logged, never surfaced to the caller.
func (s *PlanningService) publishEvents(ctx context.Context, order *planning.ProductionOrder) {
	if s.eventBus == nil {
		return
	}
	events := order.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish domain events",
			zap.String("order_id", order.ID.String()), zap.Error(err))
	}
	order.ClearDomainEvents()
}

// productDemand aggregates one product's sourcing inside the dispatch range
type productDemand struct {
	productID uuid.UUID
	total     int64
	snapshots []planning.CoverageSnapshot
}

// CreateProductionOrder creates a draft run for a dispatch range. It sums
// source-order demand per product, reconciles it against overlapping prior
// runs' coverage snapshots, nets out default-warehouse stock, and freezes its
// own coverage snapshots, all in one transaction.
func (s *PlanningService) CreateProductionOrder(ctx context.Context, cmd CreateProductionOrderCommand) (*planning.ProductionOrder, error) {
	order, err := planning.NewProductionOrder(cmd.InitialDispatchDate, cmd.FinalDispatchDate, cmd.PreparationTime)
	if err != nil {
		return nil, err
	}
	order.Notes = cmd.Notes

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		// Persist first: the DB assigns the sequence used for prior ordering.
		if err := repos.Orders().Save(ctx, order); err != nil {
			return err
		}

		demands, err := s.collectDemand(ctx, repos, order)
		if err != nil {
			return err
		}

		priors, err := s.resolver.FindOverlapping(ctx, order)
		if err != nil {
			return err
		}
		priorSnapshots, err := s.loadPriorSnapshots(ctx, repos, priors)
		if err != nil {
			return err
		}

		defaultWarehouse := s.findDefaultWarehouse(ctx)

		allSnapshots := make([]planning.CoverageSnapshot, 0)
		for _, demand := range demands {
			maxCovered := s.calculator.MaxCovered(demand.productID, priors, order, priorSnapshots)
			orderedNew := s.calculator.OrderedQuantityNew(demand.total, maxCovered)

			inventoryQty := s.initialInventory(ctx, repos, defaultWarehouse, demand.productID)

			line, err := planning.NewProductionOrderLine(order.ID, demand.productID, demand.total)
			if err != nil {
				return err
			}
			line.ApplyDemand(orderedNew, inventoryQty)

			// Demand values are still being derived here; the downstream
			// order-link synchronization must not fire on this save.
			if err := repos.Lines().Save(ctx, line, true); err != nil {
				return err
			}
			order.Lines = append(order.Lines, *line)
			allSnapshots = append(allSnapshots, demand.snapshots...)
		}

		if len(allSnapshots) > 0 {
			if err := repos.Snapshots().AppendAll(ctx, allSnapshots); err != nil {
				return err
			}
		}

		order.AddDomainEvent(planning.NewProductionOrderCreatedEvent(order))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)
	s.logger.Info("production order created",
		zap.String("order_id", order.ID.String()),
		zap.Int64("sequence", order.Sequence),
		zap.Int("lines", len(order.Lines)))
	return order, nil
}

// collectDemand sums active source-order lines per product inside the range
// and prepares the coverage snapshot rows that freeze what this run covers.
func (s *PlanningService) collectDemand(ctx context.Context, repos TransactionalRepositories, order *planning.ProductionOrder) ([]productDemand, error) {
	sourceOrders, err := repos.CustomerOrders().FindActiveInDispatchRange(ctx, order.InitialDispatchDate, order.FinalDispatchDate)
	if err != nil {
		return nil, err
	}

	byProduct := make(map[uuid.UUID]*productDemand)
	for i := range sourceOrders {
		source := &sourceOrders[i]
		for _, line := range source.Lines {
			demand, ok := byProduct[line.ProductID]
			if !ok {
				demand = &productDemand{productID: line.ProductID}
				byProduct[line.ProductID] = demand
			}
			demand.total += line.Quantity

			snap, err := planning.NewCoverageSnapshot(
				order.ID, source.ID, line.ID, line.ProductID,
				line.Quantity, source.DispatchDate, source.BranchID, source.CompanyID,
			)
			if err != nil {
				return nil, err
			}
			demand.snapshots = append(demand.snapshots, *snap)
		}
	}

	demands := make([]productDemand, 0, len(byProduct))
	for _, d := range byProduct {
		demands = append(demands, *d)
	}
	sort.Slice(demands, func(i, j int) bool {
		return demands[i].productID.String() < demands[j].productID.String()
	})
	return demands, nil
}

func (s *PlanningService) loadPriorSnapshots(ctx context.Context, repos TransactionalRepositories, priors []planning.ProductionOrder) (map[uuid.UUID][]planning.CoverageSnapshot, error) {
	if len(priors) == 0 {
		return map[uuid.UUID][]planning.CoverageSnapshot{}, nil
	}
	ids := make([]uuid.UUID, len(priors))
	for i := range priors {
		ids[i] = priors[i].ID
	}
	return repos.Snapshots().FindByProductionOrders(ctx, ids)
}

// findDefaultWarehouse resolves the default warehouse; a missing default is
// soft: demand is computed against zero inventory.
func (s *PlanningService) findDefaultWarehouse(ctx context.Context) *catalog.Warehouse {
	warehouse, err := s.warehouseRepo.FindDefault(ctx)
	if err != nil {
		s.logger.Warn("no default warehouse configured, treating initial inventory as zero", zap.Error(err))
		return nil
	}
	return warehouse
}

func (s *PlanningService) initialInventory(ctx context.Context, repos TransactionalRepositories, warehouse *catalog.Warehouse, productID uuid.UUID) int64 {
	if warehouse == nil {
		return 0
	}
	stock, err := repos.Stocks().FindByWarehouseAndProduct(ctx, warehouse.ID, productID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("failed to read warehouse stock, treating initial inventory as zero",
				zap.String("product_id", productID.String()), zap.Error(err))
		}
		return 0
	}
	return stock.Quantity
}

// RecalculateDemand re-runs the incremental computation for a draft order,
// preserving manual overrides.
func (s *PlanningService) RecalculateDemand(ctx context.Context, orderID uuid.UUID) (*planning.ProductionOrder, error) {
	var order *planning.ProductionOrder
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if !order.IsDraft() {
			return shared.NewDomainError("INVALID_STATE", "Demand can only be recalculated on draft production orders")
		}

		lines, err := repos.Lines().FindByOrder(ctx, orderID)
		if err != nil {
			return err
		}

		priors, err := s.resolver.FindOverlapping(ctx, order)
		if err != nil {
			return err
		}
		priorSnapshots, err := s.loadPriorSnapshots(ctx, repos, priors)
		if err != nil {
			return err
		}
		defaultWarehouse := s.findDefaultWarehouse(ctx)

		order.Lines = order.Lines[:0]
		for i := range lines {
			line := &lines[i]
			total, err := repos.CustomerOrders().SumQuantityByProductInRange(ctx, line.ProductID, order.InitialDispatchDate, order.FinalDispatchDate)
			if err != nil {
				return err
			}
			line.OrderedQuantity = total

			maxCovered := s.calculator.MaxCovered(line.ProductID, priors, order, priorSnapshots)
			orderedNew := s.calculator.OrderedQuantityNew(total, maxCovered)
			inventoryQty := s.initialInventory(ctx, repos, defaultWarehouse, line.ProductID)

			manual := line.ManualQuantity
			line.ApplyDemand(orderedNew, inventoryQty)
			if manual > 0 {
				if err := line.SetManualQuantity(manual, inventoryQty); err != nil {
					return err
				}
			}

			if err := repos.Lines().Save(ctx, line, true); err != nil {
				return err
			}
			order.Lines = append(order.Lines, *line)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// SetManualQuantity records an operator bring-forward override on one line.
// This is the manual edit path: the save keeps downstream sync enabled.
func (s *PlanningService) SetManualQuantity(ctx context.Context, orderID, productID uuid.UUID, quantity int64) (*planning.ProductionOrderLine, error) {
	var line *planning.ProductionOrderLine
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order.IsCancelled() {
			return shared.NewDomainError("INVALID_STATE", "Cancelled production orders cannot be edited")
		}

		line, err = repos.Lines().FindByOrderAndProduct(ctx, orderID, productID)
		if err != nil {
			return err
		}

		defaultWarehouse := s.findDefaultWarehouse(ctx)
		inventoryQty := s.initialInventory(ctx, repos, defaultWarehouse, productID)

		if err := line.SetManualQuantity(quantity, inventoryQty); err != nil {
			return err
		}
		return repos.Lines().Save(ctx, line, false)
	})
	if err != nil {
		return nil, err
	}
	return line, nil
}

// ExecuteProductionOrder transitions a draft run to EXECUTED and moves every
// line's production target into default-warehouse stock through a warehouse
// transaction, atomically.
func (s *PlanningService) ExecuteProductionOrder(ctx context.Context, orderID uuid.UUID) (*planning.ProductionOrder, error) {
	defaultWarehouse, err := s.warehouseRepo.FindDefault(ctx)
	if err != nil {
		return nil, shared.NewDomainError("NO_DEFAULT_WAREHOUSE", "A default warehouse is required to execute a production order")
	}

	var order *planning.ProductionOrder
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := order.Execute(); err != nil {
			return err
		}

		lines, err := repos.Lines().FindByOrder(ctx, orderID)
		if err != nil {
			return err
		}

		tx, err := inventory.NewWarehouseTransaction(order.ID)
		if err != nil {
			return err
		}
		for i := range lines {
			line := &lines[i]
			if line.TotalToProduce == 0 {
				continue
			}
			before := s.currentStock(ctx, repos, defaultWarehouse.ID, line.ProductID)
			if err := tx.AddLine(defaultWarehouse.ID, line.ProductID, line.TotalToProduce, before, before+line.TotalToProduce); err != nil {
				return err
			}
		}

		applier := inventory.NewStockApplier(repos.Stocks(), repos.Movements())
		if err := applier.ApplyTransaction(ctx, tx); err != nil {
			return err
		}
		if err := repos.WarehouseTransactions().Save(ctx, tx); err != nil {
			return err
		}
		return repos.Orders().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)
	s.logger.Info("production order executed",
		zap.String("order_id", order.ID.String()),
		zap.Int64("sequence", order.Sequence))
	return order, nil
}

func (s *PlanningService) currentStock(ctx context.Context, repos TransactionalRepositories, warehouseID, productID uuid.UUID) int64 {
	stock, err := repos.Stocks().FindByWarehouseAndProduct(ctx, warehouseID, productID)
	if err != nil {
		return 0
	}
	return stock.Quantity
}

// CancelProductionOrder moves an order to its terminal CANCELLED state.
// Cancellation is rejected when a later executed run shares the date range;
// an executed order being cancelled has its warehouse transaction reverted.
func (s *PlanningService) CancelProductionOrder(ctx context.Context, orderID uuid.UUID) (*planning.ProductionOrder, error) {
	var order *planning.ProductionOrder
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		later, err := repos.Orders().FindLaterExecutedOverlapping(ctx, order)
		if err != nil {
			return err
		}

		wasExecuted := order.IsExecuted()
		if err := order.Cancel(len(later) > 0); err != nil {
			return err
		}

		if wasExecuted {
			tx, err := repos.WarehouseTransactions().FindByProductionOrder(ctx, order.ID)
			if err != nil && !errors.Is(err, shared.ErrNotFound) {
				return err
			}
			if tx != nil {
				applier := inventory.NewStockApplier(repos.Stocks(), repos.Movements())
				if err := applier.RevertTransaction(ctx, tx); err != nil {
					return err
				}
				if err := repos.WarehouseTransactions().Save(ctx, tx); err != nil {
					return err
				}
			}
		}
		return repos.Orders().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)
	s.logger.Info("production order cancelled", zap.String("order_id", order.ID.String()))
	return order, nil
}

// DeleteProductionOrder removes a CANCELLED order together with its demand
// lines and coverage snapshots in one transaction. Any other status is
// rejected with planning.ErrOrderNotDeletable and nothing is touched.
func (s *PlanningService) DeleteProductionOrder(ctx context.Context, orderID uuid.UUID) error {
	var sequence int64
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := order.EnsureDeletable(); err != nil {
			return err
		}
		sequence = order.Sequence

		if err := repos.Snapshots().DeleteByProductionOrder(ctx, order.ID); err != nil {
			return err
		}
		if err := repos.Lines().DeleteByOrder(ctx, order.ID); err != nil {
			return err
		}
		return repos.Orders().Delete(ctx, order.ID)
	})
	if err != nil {
		return err
	}

	if s.eventBus != nil {
		if err := s.eventBus.Publish(ctx, planning.NewProductionOrderDeletedEvent(orderID, sequence)); err != nil {
			s.logger.Warn("failed to publish domain events",
				zap.String("order_id", orderID.String()), zap.Error(err))
		}
	}
	s.logger.Info("production order deleted", zap.String("order_id", orderID.String()))
	return nil
}

// GetProductionOrder loads one order with its demand lines
func (s *PlanningService) GetProductionOrder(ctx context.Context, orderID uuid.UUID) (*planning.ProductionOrder, error) {
	return s.orderRepo.FindByID(ctx, orderID)
}

// ListProductionOrders returns orders for the given filter
func (s *PlanningService) ListProductionOrders(ctx context.Context, filter shared.Filter) ([]planning.ProductionOrder, int64, error) {
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}
