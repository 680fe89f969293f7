package handler

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/meridianfood/backend/internal/domain/catalog"
	"github.com/meridianfood/backend/internal/domain/inventory"
	"github.com/meridianfood/backend/internal/domain/ordering"
	"github.com/meridianfood/backend/internal/domain/planning"
	"github.com/meridianfood/backend/internal/domain/shared"
)

// In-memory repositories backing handler tests; the real application
// services run on top of them through NoOpTransactionScope.

type mockOrderRepo struct {
	orders  map[uuid.UUID]*planning.ProductionOrder
	nextSeq int64
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[uuid.UUID]*planning.ProductionOrder), nextSeq: 1}
}

func (m *mockOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*planning.ProductionOrder, error) {
	if order, ok := m.orders[id]; ok {
		return order, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockOrderRepo) FindAll(_ context.Context, _ shared.Filter) ([]planning.ProductionOrder, error) {
	result := make([]planning.ProductionOrder, 0, len(m.orders))
	for _, order := range m.orders {
		result = append(result, *order)
	}
	return result, nil
}

func (m *mockOrderRepo) Save(_ context.Context, order *planning.ProductionOrder) error {
	if order.Sequence == 0 {
		order.Sequence = m.nextSeq
		m.nextSeq++
	}
	m.orders[order.ID] = order
	return nil
}

func (m *mockOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.orders[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.orders, id)
	return nil
}

func (m *mockOrderRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(m.orders)), nil
}

func (m *mockOrderRepo) FindBySequence(_ context.Context, sequence int64) (*planning.ProductionOrder, error) {
	for _, order := range m.orders {
		if order.Sequence == sequence {
			return order, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *mockOrderRepo) FindPriorActive(_ context.Context, beforeSequence int64) ([]planning.ProductionOrder, error) {
	var result []planning.ProductionOrder
	for _, order := range m.orders {
		if order.Sequence < beforeSequence && !order.IsCancelled() {
			result = append(result, *order)
		}
	}
	return result, nil
}

func (m *mockOrderRepo) FindLaterExecutedOverlapping(_ context.Context, order *planning.ProductionOrder) ([]planning.ProductionOrder, error) {
	var result []planning.ProductionOrder
	for _, other := range m.orders {
		if other.Sequence > order.Sequence && other.IsExecuted() &&
			other.OverlapsRange(order.InitialDispatchDate, order.FinalDispatchDate) {
			result = append(result, *other)
		}
	}
	return result, nil
}

func (m *mockOrderRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]planning.ProductionOrder, error) {
	var result []planning.ProductionOrder
	for _, id := range ids {
		if order, ok := m.orders[id]; ok {
			result = append(result, *order)
		}
	}
	return result, nil
}

type mockLineRepo struct {
	lines map[uuid.UUID][]*planning.ProductionOrderLine
	// orders that a non-suppressed save synced downstream
	synced []uuid.UUID
}

func newMockLineRepo() *mockLineRepo {
	return &mockLineRepo{lines: make(map[uuid.UUID][]*planning.ProductionOrderLine)}
}

func (m *mockLineRepo) FindByOrder(_ context.Context, orderID uuid.UUID) ([]planning.ProductionOrderLine, error) {
	result := make([]planning.ProductionOrderLine, 0, len(m.lines[orderID]))
	for _, line := range m.lines[orderID] {
		result = append(result, *line)
	}
	return result, nil
}

func (m *mockLineRepo) FindByOrderAndProduct(_ context.Context, orderID, productID uuid.UUID) (*planning.ProductionOrderLine, error) {
	for _, line := range m.lines[orderID] {
		if line.ProductID == productID {
			return line, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *mockLineRepo) Save(_ context.Context, line *planning.ProductionOrderLine, skipDownstreamSync bool) error {
	existing := m.lines[line.ProductionOrderID]
	found := false
	for i, l := range existing {
		if l.ID == line.ID {
			existing[i] = line
			found = true
			break
		}
	}
	if !found {
		m.lines[line.ProductionOrderID] = append(existing, line)
	}
	if !skipDownstreamSync {
		m.synced = append(m.synced, line.ID)
	}
	return nil
}

func (m *mockLineRepo) DeleteByOrder(_ context.Context, orderID uuid.UUID) error {
	delete(m.lines, orderID)
	return nil
}

type mockSnapshotRepo struct {
	snapshots []planning.CoverageSnapshot
}

func (m *mockSnapshotRepo) AppendAll(_ context.Context, snapshots []planning.CoverageSnapshot) error {
	m.snapshots = append(m.snapshots, snapshots...)
	return nil
}

func (m *mockSnapshotRepo) FindByProductionOrder(_ context.Context, orderID uuid.UUID) ([]planning.CoverageSnapshot, error) {
	var result []planning.CoverageSnapshot
	for _, snap := range m.snapshots {
		if snap.ProductionOrderID == orderID {
			result = append(result, snap)
		}
	}
	return result, nil
}

func (m *mockSnapshotRepo) FindByProductionOrders(_ context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]planning.CoverageSnapshot, error) {
	result := make(map[uuid.UUID][]planning.CoverageSnapshot)
	for _, id := range orderIDs {
		snaps, _ := m.FindByProductionOrder(context.Background(), id)
		if len(snaps) > 0 {
			result[id] = snaps
		}
	}
	return result, nil
}

func (m *mockSnapshotRepo) DeleteByProductionOrder(_ context.Context, orderID uuid.UUID) error {
	kept := m.snapshots[:0]
	for _, snap := range m.snapshots {
		if snap.ProductionOrderID != orderID {
			kept = append(kept, snap)
		}
	}
	m.snapshots = kept
	return nil
}

type mockCustomerOrderRepo struct {
	active    []ordering.CustomerOrder
	sumByProd map[uuid.UUID]int64
}

func newMockCustomerOrderRepo() *mockCustomerOrderRepo {
	return &mockCustomerOrderRepo{sumByProd: make(map[uuid.UUID]int64)}
}

func (m *mockCustomerOrderRepo) FindByID(_ context.Context, _ uuid.UUID) (*ordering.CustomerOrder, error) {
	return nil, shared.ErrNotFound
}

func (m *mockCustomerOrderRepo) FindAll(_ context.Context, _ shared.Filter) ([]ordering.CustomerOrder, error) {
	return m.active, nil
}

func (m *mockCustomerOrderRepo) Save(_ context.Context, _ *ordering.CustomerOrder) error { return nil }

func (m *mockCustomerOrderRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func (m *mockCustomerOrderRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(m.active)), nil
}

func (m *mockCustomerOrderRepo) FindActiveInDispatchRange(_ context.Context, _, _ time.Time) ([]ordering.CustomerOrder, error) {
	return m.active, nil
}

func (m *mockCustomerOrderRepo) SumQuantityByProductInRange(_ context.Context, productID uuid.UUID, _, _ time.Time) (int64, error) {
	return m.sumByProd[productID], nil
}

type stockKey struct {
	warehouseID uuid.UUID
	productID   uuid.UUID
}

type mockStockRepo struct {
	stocks map[stockKey]*inventory.WarehouseStock
}

func newMockStockRepo() *mockStockRepo {
	return &mockStockRepo{stocks: make(map[stockKey]*inventory.WarehouseStock)}
}

func (m *mockStockRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.WarehouseStock, error) {
	for _, stock := range m.stocks {
		if stock.ID == id {
			return stock, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *mockStockRepo) FindAll(_ context.Context, _ shared.Filter) ([]inventory.WarehouseStock, error) {
	result := make([]inventory.WarehouseStock, 0, len(m.stocks))
	for _, stock := range m.stocks {
		result = append(result, *stock)
	}
	return result, nil
}

func (m *mockStockRepo) Save(_ context.Context, stock *inventory.WarehouseStock) error {
	m.stocks[stockKey{stock.WarehouseID, stock.ProductID}] = stock
	return nil
}

func (m *mockStockRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func (m *mockStockRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(m.stocks)), nil
}

func (m *mockStockRepo) FindByWarehouseAndProduct(_ context.Context, warehouseID, productID uuid.UUID) (*inventory.WarehouseStock, error) {
	if stock, ok := m.stocks[stockKey{warehouseID, productID}]; ok {
		return stock, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockStockRepo) FindByWarehouse(_ context.Context, warehouseID uuid.UUID) ([]inventory.WarehouseStock, error) {
	var result []inventory.WarehouseStock
	for key, stock := range m.stocks {
		if key.warehouseID == warehouseID {
			result = append(result, *stock)
		}
	}
	return result, nil
}

type mockMovementRepo struct {
	movements []inventory.StockMovement
}

func (m *mockMovementRepo) Append(_ context.Context, movement *inventory.StockMovement) error {
	m.movements = append(m.movements, *movement)
	return nil
}

func (m *mockMovementRepo) FindByWarehouseAndProduct(_ context.Context, warehouseID, productID uuid.UUID, _ shared.Filter) ([]inventory.StockMovement, error) {
	var result []inventory.StockMovement
	for _, movement := range m.movements {
		if movement.WarehouseID == warehouseID && movement.ProductID == productID {
			result = append(result, movement)
		}
	}
	return result, nil
}

type mockTxRepo struct {
	transactions map[uuid.UUID]*inventory.WarehouseTransaction
}

func newMockTxRepo() *mockTxRepo {
	return &mockTxRepo{transactions: make(map[uuid.UUID]*inventory.WarehouseTransaction)}
}

func (m *mockTxRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.WarehouseTransaction, error) {
	if tx, ok := m.transactions[id]; ok {
		return tx, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockTxRepo) FindAll(_ context.Context, _ shared.Filter) ([]inventory.WarehouseTransaction, error) {
	result := make([]inventory.WarehouseTransaction, 0, len(m.transactions))
	for _, tx := range m.transactions {
		result = append(result, *tx)
	}
	return result, nil
}

func (m *mockTxRepo) Save(_ context.Context, tx *inventory.WarehouseTransaction) error {
	m.transactions[tx.ID] = tx
	return nil
}

func (m *mockTxRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.transactions, id)
	return nil
}

func (m *mockTxRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(m.transactions)), nil
}

func (m *mockTxRepo) FindByProductionOrder(_ context.Context, orderID uuid.UUID) (*inventory.WarehouseTransaction, error) {
	for _, tx := range m.transactions {
		if tx.ProductionOrderID == orderID {
			return tx, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *mockTxRepo) FindPending(_ context.Context) ([]inventory.WarehouseTransaction, error) {
	var result []inventory.WarehouseTransaction
	for _, tx := range m.transactions {
		if tx.Status == inventory.TransactionPending {
			result = append(result, *tx)
		}
	}
	return result, nil
}

type mockWarehouseRepo struct {
	warehouses map[uuid.UUID]*catalog.Warehouse
}

func newMockWarehouseRepo() *mockWarehouseRepo {
	return &mockWarehouseRepo{warehouses: make(map[uuid.UUID]*catalog.Warehouse)}
}

func (m *mockWarehouseRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Warehouse, error) {
	if warehouse, ok := m.warehouses[id]; ok {
		return warehouse, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockWarehouseRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Warehouse, error) {
	result := make([]catalog.Warehouse, 0, len(m.warehouses))
	for _, warehouse := range m.warehouses {
		result = append(result, *warehouse)
	}
	return result, nil
}

func (m *mockWarehouseRepo) Save(_ context.Context, warehouse *catalog.Warehouse) error {
	m.warehouses[warehouse.ID] = warehouse
	return nil
}

func (m *mockWarehouseRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.warehouses, id)
	return nil
}

func (m *mockWarehouseRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(m.warehouses)), nil
}

func (m *mockWarehouseRepo) FindDefault(_ context.Context) (*catalog.Warehouse, error) {
	for _, warehouse := range m.warehouses {
		if warehouse.IsDefault {
			return warehouse, nil
		}
	}
	return nil, shared.ErrNotFound
}

type mockProductRepo struct {
	products map[uuid.UUID]*catalog.Product
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[uuid.UUID]*catalog.Product)}
}

func (m *mockProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	if product, ok := m.products[id]; ok {
		return product, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockProductRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Product, error) {
	result := make([]catalog.Product, 0, len(m.products))
	for _, product := range m.products {
		result = append(result, *product)
	}
	return result, nil
}

func (m *mockProductRepo) Save(_ context.Context, product *catalog.Product) error {
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.products, id)
	return nil
}

func (m *mockProductRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(m.products)), nil
}

func (m *mockProductRepo) FindByCode(_ context.Context, code string) (*catalog.Product, error) {
	for _, product := range m.products {
		if product.Code == code {
			return product, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *mockProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	var result []catalog.Product
	for _, id := range ids {
		if product, ok := m.products[id]; ok {
			result = append(result, *product)
		}
	}
	return result, nil
}

func (m *mockProductRepo) FindRelatedIndividuals(_ context.Context, horecaProductID uuid.UUID) ([]catalog.Product, error) {
	var result []catalog.Product
	for _, product := range m.products {
		if product.IsIndividual() && product.RelatedHorecaProductID != nil &&
			*product.RelatedHorecaProductID == horecaProductID {
			result = append(result, *product)
		}
	}
	return result, nil
}

type mockDishRepo struct {
	dishes map[uuid.UUID]*catalog.PlatedDish // keyed by product id
}

func newMockDishRepo() *mockDishRepo {
	return &mockDishRepo{dishes: make(map[uuid.UUID]*catalog.PlatedDish)}
}

func (m *mockDishRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.PlatedDish, error) {
	for _, dish := range m.dishes {
		if dish.ID == id {
			return dish, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *mockDishRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.PlatedDish, error) {
	result := make([]catalog.PlatedDish, 0, len(m.dishes))
	for _, dish := range m.dishes {
		result = append(result, *dish)
	}
	return result, nil
}

func (m *mockDishRepo) Save(_ context.Context, dish *catalog.PlatedDish) error {
	m.dishes[dish.ProductID] = dish
	return nil
}

func (m *mockDishRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func (m *mockDishRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(m.dishes)), nil
}

func (m *mockDishRepo) FindByProduct(_ context.Context, productID uuid.UUID) (*catalog.PlatedDish, error) {
	if dish, ok := m.dishes[productID]; ok {
		return dish, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockDishRepo) FindByProducts(_ context.Context, productIDs []uuid.UUID) ([]catalog.PlatedDish, error) {
	var result []catalog.PlatedDish
	for _, id := range productIDs {
		if dish, ok := m.dishes[id]; ok {
			result = append(result, *dish)
		}
	}
	return result, nil
}

type mockBranchRepo struct {
	branches map[uuid.UUID]*catalog.Branch
}

func newMockBranchRepo() *mockBranchRepo {
	return &mockBranchRepo{branches: make(map[uuid.UUID]*catalog.Branch)}
}

func (m *mockBranchRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Branch, error) {
	if branch, ok := m.branches[id]; ok {
		return branch, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockBranchRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Branch, error) {
	result := make([]catalog.Branch, 0, len(m.branches))
	for _, branch := range m.branches {
		result = append(result, *branch)
	}
	return result, nil
}

func (m *mockBranchRepo) Save(_ context.Context, branch *catalog.Branch) error {
	m.branches[branch.ID] = branch
	return nil
}

func (m *mockBranchRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func (m *mockBranchRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(m.branches)), nil
}

func (m *mockBranchRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]catalog.Branch, error) {
	var result []catalog.Branch
	for _, id := range ids {
		if branch, ok := m.branches[id]; ok {
			result = append(result, *branch)
		}
	}
	return result, nil
}

type mockCompanyRepo struct {
	companies map[uuid.UUID]*catalog.Company
}

func newMockCompanyRepo() *mockCompanyRepo {
	return &mockCompanyRepo{companies: make(map[uuid.UUID]*catalog.Company)}
}

func (m *mockCompanyRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Company, error) {
	if company, ok := m.companies[id]; ok {
		return company, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockCompanyRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Company, error) {
	result := make([]catalog.Company, 0, len(m.companies))
	for _, company := range m.companies {
		result = append(result, *company)
	}
	return result, nil
}

func (m *mockCompanyRepo) Save(_ context.Context, company *catalog.Company) error {
	m.companies[company.ID] = company
	return nil
}

func (m *mockCompanyRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func (m *mockCompanyRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(m.companies)), nil
}

func (m *mockCompanyRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]catalog.Company, error) {
	var result []catalog.Company
	for _, id := range ids {
		if company, ok := m.companies[id]; ok {
			result = append(result, *company)
		}
	}
	return result, nil
}

type mockAreaRepo struct {
	areas map[uuid.UUID]*catalog.ProductionArea
}

func newMockAreaRepo() *mockAreaRepo {
	return &mockAreaRepo{areas: make(map[uuid.UUID]*catalog.ProductionArea)}
}

func (m *mockAreaRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.ProductionArea, error) {
	if area, ok := m.areas[id]; ok {
		return area, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockAreaRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.ProductionArea, error) {
	result := make([]catalog.ProductionArea, 0, len(m.areas))
	for _, area := range m.areas {
		result = append(result, *area)
	}
	return result, nil
}

func (m *mockAreaRepo) Save(_ context.Context, area *catalog.ProductionArea) error {
	m.areas[area.ID] = area
	return nil
}

func (m *mockAreaRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func (m *mockAreaRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(m.areas)), nil
}

func (m *mockAreaRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]catalog.ProductionArea, error) {
	var result []catalog.ProductionArea
	for _, id := range ids {
		if area, ok := m.areas[id]; ok {
			result = append(result, *area)
		}
	}
	return result, nil
}
