package planning

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/meridianfood/backend/internal/domain/catalog"
	"github.com/meridianfood/backend/internal/domain/inventory"
	"github.com/meridianfood/backend/internal/domain/ordering"
	"github.com/meridianfood/backend/internal/domain/planning"
	"github.com/meridianfood/backend/internal/domain/shared"
)

// In-memory repositories backing the service tests. Sequence assignment
// mimics the database autoincrement on first save.

type memOrderRepo struct {
	mu      sync.Mutex
	orders  map[uuid.UUID]*planning.ProductionOrder
	nextSeq int64
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: map[uuid.UUID]*planning.ProductionOrder{}, nextSeq: 1}
}

func (r *memOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*planning.ProductionOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *order
	return &cp, nil
}

func (r *memOrderRepo) FindAll(_ context.Context, _ shared.Filter) ([]planning.ProductionOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]planning.ProductionOrder, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	return out, nil
}

func (r *memOrderRepo) Save(_ context.Context, order *planning.ProductionOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if order.Sequence == 0 {
		order.Sequence = r.nextSeq
		r.nextSeq++
	}
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *memOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *memOrderRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.orders)), nil
}

func (r *memOrderRepo) FindBySequence(_ context.Context, sequence int64) (*planning.ProductionOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.Sequence == sequence {
			cp := *o
			return &cp, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memOrderRepo) FindPriorActive(_ context.Context, beforeSequence int64) ([]planning.ProductionOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]planning.ProductionOrder, 0)
	for _, o := range r.orders {
		if o.Sequence < beforeSequence && !o.IsCancelled() {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sequence > out[j].Sequence })
	return out, nil
}

func (r *memOrderRepo) FindLaterExecutedOverlapping(_ context.Context, order *planning.ProductionOrder) ([]planning.ProductionOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]planning.ProductionOrder, 0)
	for _, o := range r.orders {
		if o.Sequence > order.Sequence && o.IsExecuted() &&
			o.OverlapsRange(order.InitialDispatchDate, order.FinalDispatchDate) {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *memOrderRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]planning.ProductionOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]planning.ProductionOrder, 0, len(ids))
	for _, id := range ids {
		if o, ok := r.orders[id]; ok {
			out = append(out, *o)
		}
	}
	return out, nil
}

type lineSave struct {
	productID uuid.UUID
	skipSync  bool
}

type memLineRepo struct {
	mu    sync.Mutex
	lines map[uuid.UUID]*planning.ProductionOrderLine
	saves []lineSave
}

func newMemLineRepo() *memLineRepo {
	return &memLineRepo{lines: map[uuid.UUID]*planning.ProductionOrderLine{}}
}

func (r *memLineRepo) FindByOrder(_ context.Context, orderID uuid.UUID) ([]planning.ProductionOrderLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]planning.ProductionOrderLine, 0)
	for _, l := range r.lines {
		if l.ProductionOrderID == orderID {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID.String() < out[j].ProductID.String() })
	return out, nil
}

func (r *memLineRepo) FindByOrderAndProduct(_ context.Context, orderID, productID uuid.UUID) (*planning.ProductionOrderLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.lines {
		if l.ProductionOrderID == orderID && l.ProductID == productID {
			cp := *l
			return &cp, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memLineRepo) Save(_ context.Context, line *planning.ProductionOrderLine, skipDownstreamSync bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *line
	r.lines[line.ID] = &cp
	r.saves = append(r.saves, lineSave{productID: line.ProductID, skipSync: skipDownstreamSync})
	return nil
}

func (r *memLineRepo) DeleteByOrder(_ context.Context, orderID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, l := range r.lines {
		if l.ProductionOrderID == orderID {
			delete(r.lines, id)
		}
	}
	return nil
}

type memSnapshotRepo struct {
	mu        sync.Mutex
	snapshots []planning.CoverageSnapshot
}

func newMemSnapshotRepo() *memSnapshotRepo { return &memSnapshotRepo{} }

func (r *memSnapshotRepo) AppendAll(_ context.Context, snapshots []planning.CoverageSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = append(r.snapshots, snapshots...)
	return nil
}

func (r *memSnapshotRepo) FindByProductionOrder(_ context.Context, orderID uuid.UUID) ([]planning.CoverageSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]planning.CoverageSnapshot, 0)
	for _, s := range r.snapshots {
		if s.ProductionOrderID == orderID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memSnapshotRepo) FindByProductionOrders(_ context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]planning.CoverageSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[uuid.UUID]bool, len(orderIDs))
	for _, id := range orderIDs {
		wanted[id] = true
	}
	out := make(map[uuid.UUID][]planning.CoverageSnapshot)
	for _, s := range r.snapshots {
		if wanted[s.ProductionOrderID] {
			out[s.ProductionOrderID] = append(out[s.ProductionOrderID], s)
		}
	}
	return out, nil
}

func (r *memSnapshotRepo) DeleteByProductionOrder(_ context.Context, orderID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.snapshots[:0]
	for _, s := range r.snapshots {
		if s.ProductionOrderID != orderID {
			kept = append(kept, s)
		}
	}
	r.snapshots = kept
	return nil
}

type memCustomerOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*ordering.CustomerOrder
}

func newMemCustomerOrderRepo() *memCustomerOrderRepo {
	return &memCustomerOrderRepo{orders: map[uuid.UUID]*ordering.CustomerOrder{}}
}

func (r *memCustomerOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*ordering.CustomerOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *memCustomerOrderRepo) FindAll(_ context.Context, _ shared.Filter) ([]ordering.CustomerOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ordering.CustomerOrder, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *memCustomerOrderRepo) Save(_ context.Context, order *ordering.CustomerOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *memCustomerOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.orders, id)
	return nil
}

func (r *memCustomerOrderRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.orders)), nil
}

func (r *memCustomerOrderRepo) FindActiveInDispatchRange(_ context.Context, from, to time.Time) ([]ordering.CustomerOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ordering.CustomerOrder, 0)
	for _, o := range r.orders {
		if o.IsActive() && !o.DispatchDate.Before(from) && !o.DispatchDate.After(to) {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DispatchDate.Before(out[j].DispatchDate) })
	return out, nil
}

func (r *memCustomerOrderRepo) SumQuantityByProductInRange(_ context.Context, productID uuid.UUID, from, to time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for _, o := range r.orders {
		if !o.IsActive() || o.DispatchDate.Before(from) || o.DispatchDate.After(to) {
			continue
		}
		for _, l := range o.Lines {
			if l.ProductID == productID {
				total += l.Quantity
			}
		}
	}
	return total, nil
}

type memStockRepo struct {
	mu     sync.Mutex
	stocks map[uuid.UUID]*inventory.WarehouseStock
}

func newMemStockRepo() *memStockRepo {
	return &memStockRepo{stocks: map[uuid.UUID]*inventory.WarehouseStock{}}
}

func (r *memStockRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.WarehouseStock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stocks[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memStockRepo) FindAll(_ context.Context, _ shared.Filter) ([]inventory.WarehouseStock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]inventory.WarehouseStock, 0, len(r.stocks))
	for _, s := range r.stocks {
		out = append(out, *s)
	}
	return out, nil
}

func (r *memStockRepo) Save(_ context.Context, stock *inventory.WarehouseStock) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *stock
	r.stocks[stock.ID] = &cp
	return nil
}

func (r *memStockRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.stocks, id)
	return nil
}

func (r *memStockRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.stocks)), nil
}

func (r *memStockRepo) FindByWarehouseAndProduct(_ context.Context, warehouseID, productID uuid.UUID) (*inventory.WarehouseStock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.stocks {
		if s.WarehouseID == warehouseID && s.ProductID == productID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memStockRepo) FindByWarehouse(_ context.Context, warehouseID uuid.UUID) ([]inventory.WarehouseStock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]inventory.WarehouseStock, 0)
	for _, s := range r.stocks {
		if s.WarehouseID == warehouseID {
			out = append(out, *s)
		}
	}
	return out, nil
}

type memMovementRepo struct {
	mu        sync.Mutex
	movements []inventory.StockMovement
}

func newMemMovementRepo() *memMovementRepo { return &memMovementRepo{} }

func (r *memMovementRepo) Append(_ context.Context, movement *inventory.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movements = append(r.movements, *movement)
	return nil
}

func (r *memMovementRepo) FindByWarehouseAndProduct(_ context.Context, warehouseID, productID uuid.UUID, _ shared.Filter) ([]inventory.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]inventory.StockMovement, 0)
	for _, m := range r.movements {
		if m.WarehouseID == warehouseID && m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

type memTxRepo struct {
	mu  sync.Mutex
	txs map[uuid.UUID]*inventory.WarehouseTransaction
}

func newMemTxRepo() *memTxRepo {
	return &memTxRepo{txs: map[uuid.UUID]*inventory.WarehouseTransaction{}}
}

func (r *memTxRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.WarehouseTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.txs[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *tx
	return &cp, nil
}

func (r *memTxRepo) FindAll(_ context.Context, _ shared.Filter) ([]inventory.WarehouseTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]inventory.WarehouseTransaction, 0, len(r.txs))
	for _, tx := range r.txs {
		out = append(out, *tx)
	}
	return out, nil
}

func (r *memTxRepo) Save(_ context.Context, tx *inventory.WarehouseTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *tx
	r.txs[tx.ID] = &cp
	return nil
}

func (r *memTxRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.txs, id)
	return nil
}

func (r *memTxRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.txs)), nil
}

func (r *memTxRepo) FindByProductionOrder(_ context.Context, orderID uuid.UUID) (*inventory.WarehouseTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tx := range r.txs {
		if tx.ProductionOrderID == orderID {
			cp := *tx
			return &cp, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memTxRepo) FindPending(_ context.Context) ([]inventory.WarehouseTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]inventory.WarehouseTransaction, 0)
	for _, tx := range r.txs {
		if tx.Status == inventory.TransactionPending {
			out = append(out, *tx)
		}
	}
	return out, nil
}

type memWarehouseRepo struct {
	mu         sync.Mutex
	warehouses map[uuid.UUID]*catalog.Warehouse
}

func newMemWarehouseRepo() *memWarehouseRepo {
	return &memWarehouseRepo{warehouses: map[uuid.UUID]*catalog.Warehouse{}}
}

func (r *memWarehouseRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Warehouse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.warehouses[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *w
	return &cp, nil
}

func (r *memWarehouseRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Warehouse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]catalog.Warehouse, 0, len(r.warehouses))
	for _, w := range r.warehouses {
		out = append(out, *w)
	}
	return out, nil
}

func (r *memWarehouseRepo) Save(_ context.Context, warehouse *catalog.Warehouse) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *warehouse
	r.warehouses[warehouse.ID] = &cp
	return nil
}

func (r *memWarehouseRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.warehouses, id)
	return nil
}

func (r *memWarehouseRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.warehouses)), nil
}

func (r *memWarehouseRepo) FindDefault(_ context.Context) (*catalog.Warehouse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.warehouses {
		if w.IsDefault {
			cp := *w
			return &cp, nil
		}
	}
	return nil, shared.ErrNotFound
}
