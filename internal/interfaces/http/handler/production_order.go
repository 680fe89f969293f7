package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	planningapp "github.com/meridianfood/backend/internal/application/planning"
	"github.com/meridianfood/backend/internal/domain/planning"
	"github.com/meridianfood/backend/internal/domain/shared"
	"github.com/meridianfood/backend/internal/interfaces/http/dto"
)

const dateLayout = "2006-01-02"

// ProductionOrderHandler handles production-order API endpoints
type ProductionOrderHandler struct {
	BaseHandler
	service *planningapp.PlanningService
}

// NewProductionOrderHandler creates a new ProductionOrderHandler
func NewProductionOrderHandler(service *planningapp.PlanningService) *ProductionOrderHandler {
	return &ProductionOrderHandler{service: service}
}

// CreateProductionOrderRequest represents a request to create a production order
type CreateProductionOrderRequest struct {
	InitialDispatchDate string `json:"initial_dispatch_date" binding:"required,datetime=2006-01-02"`
	FinalDispatchDate   string `json:"final_dispatch_date" binding:"required,datetime=2006-01-02"`
	PreparationTime     string `json:"preparation_time" binding:"omitempty"`
	Notes               string `json:"notes" binding:"max=500"`
}

// SetManualQuantityRequest overrides one demand line's manual quantity
type SetManualQuantityRequest struct {
	Quantity int64 `json:"quantity" binding:"min=0"`
}

// ProductionOrderLineResponse is one product's demand inside an order
type ProductionOrderLineResponse struct {
	ID                 uuid.UUID `json:"id"`
	ProductID          uuid.UUID `json:"product_id"`
	OrderedQuantity    int64     `json:"ordered_quantity"`
	OrderedQuantityNew int64     `json:"ordered_quantity_new"`
	ManualQuantity     int64     `json:"manual_quantity"`
	TotalToProduce     int64     `json:"total_to_produce"`
}

// ProductionOrderResponse is the API representation of a production order
type ProductionOrderResponse struct {
	ID                  uuid.UUID                     `json:"id"`
	Sequence            int64                         `json:"sequence"`
	Status              string                        `json:"status"`
	InitialDispatchDate string                        `json:"initial_dispatch_date"`
	FinalDispatchDate   string                        `json:"final_dispatch_date"`
	PreparationTime     time.Time                     `json:"preparation_time"`
	Notes               string                        `json:"notes,omitempty"`
	Lines               []ProductionOrderLineResponse `json:"lines"`
	CreatedAt           time.Time                     `json:"created_at"`
	UpdatedAt           time.Time                     `json:"updated_at"`
}

func toProductionOrderResponse(order *planning.ProductionOrder) ProductionOrderResponse {
	lines := make([]ProductionOrderLineResponse, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, ProductionOrderLineResponse{
			ID:                 line.ID,
			ProductID:          line.ProductID,
			OrderedQuantity:    line.OrderedQuantity,
			OrderedQuantityNew: line.OrderedQuantityNew,
			ManualQuantity:     line.ManualQuantity,
			TotalToProduce:     line.TotalToProduce,
		})
	}
	return ProductionOrderResponse{
		ID:                  order.ID,
		Sequence:            order.Sequence,
		Status:              order.Status.String(),
		InitialDispatchDate: order.InitialDispatchDate.Format(dateLayout),
		FinalDispatchDate:   order.FinalDispatchDate.Format(dateLayout),
		PreparationTime:     order.PreparationTime,
		Notes:               order.Notes,
		Lines:               lines,
		CreatedAt:           order.CreatedAt,
		UpdatedAt:           order.UpdatedAt,
	}
}

// Create creates a draft production order for a dispatch range, computing its
// incremental demand lines in the same unit of work
func (h *ProductionOrderHandler) Create(c *gin.Context) {
	var req CreateProductionOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	initial, _ := time.Parse(dateLayout, req.InitialDispatchDate)
	final, _ := time.Parse(dateLayout, req.FinalDispatchDate)

	preparation := time.Time{}
	if req.PreparationTime != "" {
		parsed, err := time.Parse(time.RFC3339, req.PreparationTime)
		if err != nil {
			h.BadRequest(c, "preparation_time must be RFC3339")
			return
		}
		preparation = parsed
	}

	order, err := h.service.CreateProductionOrder(c.Request.Context(), planningapp.CreateProductionOrderCommand{
		InitialDispatchDate: initial,
		FinalDispatchDate:   final,
		PreparationTime:     preparation,
		Notes:               req.Notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toProductionOrderResponse(order))
}

// GetByID retrieves a production order with its demand lines
func (h *ProductionOrderHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, c.Param("id"))
	if !ok {
		return
	}

	order, err := h.service.GetProductionOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toProductionOrderResponse(order))
}

// List returns production orders with pagination and optional filters
func (h *ProductionOrderHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
		Filters:  make(map[string]interface{}),
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}
	if from := c.Query("dispatch_from"); from != "" {
		filter.Filters["dispatch_from"] = from
	}
	if to := c.Query("dispatch_to"); to != "" {
		filter.Filters["dispatch_to"] = to
	}

	orders, total, err := h.service.ListProductionOrders(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	responses := make([]ProductionOrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, toProductionOrderResponse(&orders[i]))
	}

	h.SuccessWithMeta(c, responses, total, filter.Page, filter.PageSize)
}

// Recalculate recomputes the order's demand lines from current source orders,
// prior coverage and warehouse stock
func (h *ProductionOrderHandler) Recalculate(c *gin.Context) {
	id, ok := h.parseID(c, c.Param("id"))
	if !ok {
		return
	}

	order, err := h.service.RecalculateDemand(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toProductionOrderResponse(order))
}

// SetManualQuantity overrides the manual quantity of one demand line. The
// matching source order lines are re-linked as part of the save.
func (h *ProductionOrderHandler) SetManualQuantity(c *gin.Context) {
	orderID, ok := h.parseID(c, c.Param("id"))
	if !ok {
		return
	}
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req SetManualQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	line, err := h.service.SetManualQuantity(c.Request.Context(), orderID, productID, req.Quantity)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ProductionOrderLineResponse{
		ID:                 line.ID,
		ProductID:          line.ProductID,
		OrderedQuantity:    line.OrderedQuantity,
		OrderedQuantityNew: line.OrderedQuantityNew,
		ManualQuantity:     line.ManualQuantity,
		TotalToProduce:     line.TotalToProduce,
	})
}

// Execute transitions the order to EXECUTED and applies its warehouse
// transaction
func (h *ProductionOrderHandler) Execute(c *gin.Context) {
	id, ok := h.parseID(c, c.Param("id"))
	if !ok {
		return
	}

	order, err := h.service.ExecuteProductionOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toProductionOrderResponse(order))
}

// Cancel transitions the order to its terminal CANCELLED state
func (h *ProductionOrderHandler) Cancel(c *gin.Context) {
	id, ok := h.parseID(c, c.Param("id"))
	if !ok {
		return
	}

	order, err := h.service.CancelProductionOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toProductionOrderResponse(order))
}

// Delete removes a cancelled production order and its snapshots
func (h *ProductionOrderHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, c.Param("id"))
	if !ok {
		return
	}

	if err := h.service.DeleteProductionOrder(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *ProductionOrderHandler) parseID(c *gin.Context, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		h.BadRequest(c, "Invalid production order ID")
		return uuid.Nil, false
	}
	return id, true
}

// RegisterRoutes registers all production-order routes
func (h *ProductionOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/production-orders")
	{
		orders.POST("", h.Create)
		orders.GET("", h.List)
		orders.GET("/:id", h.GetByID)
		orders.POST("/:id/recalculate", h.Recalculate)
		orders.PUT("/:id/lines/:product_id/quantity", h.SetManualQuantity)
		orders.POST("/:id/execute", h.Execute)
		orders.POST("/:id/cancel", h.Cancel)
		orders.DELETE("/:id", h.Delete)
	}
}
