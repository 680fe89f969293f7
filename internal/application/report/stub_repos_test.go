package report

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/meridianfood/backend/internal/domain/catalog"
	"github.com/meridianfood/backend/internal/domain/ordering"
	"github.com/meridianfood/backend/internal/domain/planning"
	"github.com/meridianfood/backend/internal/domain/shared"
)

// Slice-backed stubs implementing just enough of each repository for the
// builder tests.

type stubOrderRepo struct {
	orders []planning.ProductionOrder
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*planning.ProductionOrder, error) {
	for i := range r.orders {
		if r.orders[i].ID == id {
			return &r.orders[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *stubOrderRepo) FindAll(_ context.Context, _ shared.Filter) ([]planning.ProductionOrder, error) {
	return r.orders, nil
}

func (r *stubOrderRepo) Save(_ context.Context, _ *planning.ProductionOrder) error { return nil }
func (r *stubOrderRepo) Delete(_ context.Context, _ uuid.UUID) error               { return nil }

func (r *stubOrderRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.orders)), nil
}

func (r *stubOrderRepo) FindBySequence(_ context.Context, sequence int64) (*planning.ProductionOrder, error) {
	for i := range r.orders {
		if r.orders[i].Sequence == sequence {
			return &r.orders[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *stubOrderRepo) FindPriorActive(_ context.Context, beforeSequence int64) ([]planning.ProductionOrder, error) {
	out := make([]planning.ProductionOrder, 0)
	for i := range r.orders {
		if r.orders[i].Sequence < beforeSequence && !r.orders[i].IsCancelled() {
			out = append(out, r.orders[i])
		}
	}
	return out, nil
}

func (r *stubOrderRepo) FindLaterExecutedOverlapping(_ context.Context, _ *planning.ProductionOrder) ([]planning.ProductionOrder, error) {
	return nil, nil
}

func (r *stubOrderRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]planning.ProductionOrder, error) {
	out := make([]planning.ProductionOrder, 0, len(ids))
	for _, id := range ids {
		for i := range r.orders {
			if r.orders[i].ID == id {
				out = append(out, r.orders[i])
			}
		}
	}
	return out, nil
}

type stubSnapshotRepo struct {
	snapshots []planning.CoverageSnapshot
}

func (r *stubSnapshotRepo) AppendAll(_ context.Context, snapshots []planning.CoverageSnapshot) error {
	r.snapshots = append(r.snapshots, snapshots...)
	return nil
}

func (r *stubSnapshotRepo) FindByProductionOrder(_ context.Context, orderID uuid.UUID) ([]planning.CoverageSnapshot, error) {
	out := make([]planning.CoverageSnapshot, 0)
	for _, s := range r.snapshots {
		if s.ProductionOrderID == orderID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *stubSnapshotRepo) FindByProductionOrders(_ context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]planning.CoverageSnapshot, error) {
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

func (r *stubSnapshotRepo) DeleteByProductionOrder(_ context.Context, _ uuid.UUID) error { return nil }

type stubCustomerOrderRepo struct {
	sums map[uuid.UUID]int64
}

func (r *stubCustomerOrderRepo) FindByID(_ context.Context, _ uuid.UUID) (*ordering.CustomerOrder, error) {
	return nil, shared.ErrNotFound
}

func (r *stubCustomerOrderRepo) FindAll(_ context.Context, _ shared.Filter) ([]ordering.CustomerOrder, error) {
	return nil, nil
}

func (r *stubCustomerOrderRepo) Save(_ context.Context, _ *ordering.CustomerOrder) error { return nil }
func (r *stubCustomerOrderRepo) Delete(_ context.Context, _ uuid.UUID) error             { return nil }

func (r *stubCustomerOrderRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return 0, nil
}

func (r *stubCustomerOrderRepo) FindActiveInDispatchRange(_ context.Context, _, _ time.Time) ([]ordering.CustomerOrder, error) {
	return nil, nil
}

func (r *stubCustomerOrderRepo) SumQuantityByProductInRange(_ context.Context, productID uuid.UUID, _, _ time.Time) (int64, error) {
	return r.sums[productID], nil
}

type stubProductRepo struct {
	products []catalog.Product
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	for i := range r.products {
		if r.products[i].ID == id {
			return &r.products[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *stubProductRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Product, error) {
	return r.products, nil
}

func (r *stubProductRepo) Save(_ context.Context, _ *catalog.Product) error { return nil }
func (r *stubProductRepo) Delete(_ context.Context, _ uuid.UUID) error      { return nil }

func (r *stubProductRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *stubProductRepo) FindByCode(_ context.Context, code string) (*catalog.Product, error) {
	for i := range r.products {
		if r.products[i].Code == code {
			return &r.products[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *stubProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	out := make([]catalog.Product, 0)
	for i := range r.products {
		if wanted[r.products[i].ID] {
			out = append(out, r.products[i])
		}
	}
	return out, nil
}

func (r *stubProductRepo) FindRelatedIndividuals(_ context.Context, horecaProductID uuid.UUID) ([]catalog.Product, error) {
	out := make([]catalog.Product, 0)
	for i := range r.products {
		p := r.products[i]
		if p.HasHorecaRelation() && *p.RelatedHorecaProductID == horecaProductID {
			out = append(out, p)
		}
	}
	return out, nil
}

type stubDishRepo struct {
	dishes []catalog.PlatedDish
}

func (r *stubDishRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.PlatedDish, error) {
	for i := range r.dishes {
		if r.dishes[i].ID == id {
			return &r.dishes[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *stubDishRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.PlatedDish, error) {
	return r.dishes, nil
}

func (r *stubDishRepo) Save(_ context.Context, _ *catalog.PlatedDish) error { return nil }
func (r *stubDishRepo) Delete(_ context.Context, _ uuid.UUID) error         { return nil }

func (r *stubDishRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.dishes)), nil
}

func (r *stubDishRepo) FindByProduct(_ context.Context, productID uuid.UUID) (*catalog.PlatedDish, error) {
	for i := range r.dishes {
		if r.dishes[i].ProductID == productID {
			return &r.dishes[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *stubDishRepo) FindByProducts(_ context.Context, productIDs []uuid.UUID) ([]catalog.PlatedDish, error) {
	wanted := make(map[uuid.UUID]bool, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = true
	}
	out := make([]catalog.PlatedDish, 0)
	for i := range r.dishes {
		if wanted[r.dishes[i].ProductID] {
			out = append(out, r.dishes[i])
		}
	}
	return out, nil
}

type stubBranchRepo struct {
	branches []catalog.Branch
}

func (r *stubBranchRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Branch, error) {
	for i := range r.branches {
		if r.branches[i].ID == id {
			return &r.branches[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *stubBranchRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Branch, error) {
	return r.branches, nil
}

func (r *stubBranchRepo) Save(_ context.Context, _ *catalog.Branch) error { return nil }
func (r *stubBranchRepo) Delete(_ context.Context, _ uuid.UUID) error     { return nil }

func (r *stubBranchRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.branches)), nil
}

func (r *stubBranchRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]catalog.Branch, error) {
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	out := make([]catalog.Branch, 0)
	for i := range r.branches {
		if wanted[r.branches[i].ID] {
			out = append(out, r.branches[i])
		}
	}
	return out, nil
}

type stubCompanyRepo struct {
	companies []catalog.Company
}

func (r *stubCompanyRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Company, error) {
	for i := range r.companies {
		if r.companies[i].ID == id {
			return &r.companies[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *stubCompanyRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Company, error) {
	return r.companies, nil
}

func (r *stubCompanyRepo) Save(_ context.Context, _ *catalog.Company) error { return nil }
func (r *stubCompanyRepo) Delete(_ context.Context, _ uuid.UUID) error      { return nil }

func (r *stubCompanyRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.companies)), nil
}

func (r *stubCompanyRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]catalog.Company, error) {
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	out := make([]catalog.Company, 0)
	for i := range r.companies {
		if wanted[r.companies[i].ID] {
			out = append(out, r.companies[i])
		}
	}
	return out, nil
}

type stubAreaRepo struct {
	names map[uuid.UUID]string
}

func (r *stubAreaRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.ProductionArea, error) {
	name, ok := r.names[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	area := catalog.ProductionArea{Name: name}
	area.ID = id
	return &area, nil
}

func (r *stubAreaRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.ProductionArea, error) {
	out := make([]catalog.ProductionArea, 0, len(r.names))
	for id, name := range r.names {
		area := catalog.ProductionArea{Name: name}
		area.ID = id
		out = append(out, area)
	}
	return out, nil
}

func (r *stubAreaRepo) Save(_ context.Context, _ *catalog.ProductionArea) error { return nil }
func (r *stubAreaRepo) Delete(_ context.Context, _ uuid.UUID) error             { return nil }

func (r *stubAreaRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.names)), nil
}

func (r *stubAreaRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]catalog.ProductionArea, error) {
	out := make([]catalog.ProductionArea, 0, len(ids))
	for _, id := range ids {
		if name, ok := r.names[id]; ok {
			area := catalog.ProductionArea{Name: name}
			area.ID = id
			out = append(out, area)
		}
	}
	return out, nil
}

type stubCache struct {
	entries map[string]*ConsolidationReport
	sets    int
}

func newStubCache() *stubCache {
	return &stubCache{entries: map[string]*ConsolidationReport{}}
}

func (c *stubCache) Get(_ context.Context, key string) (*ConsolidationReport, error) {
	return c.entries[key], nil
}

func (c *stubCache) Set(_ context.Context, key string, report *ConsolidationReport) error {
	c.entries[key] = report
	c.sets++
	return nil
}
