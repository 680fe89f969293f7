package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	inventoryapp "github.com/meridianfood/backend/internal/application/inventory"
	"github.com/meridianfood/backend/internal/domain/inventory"
	"github.com/meridianfood/backend/internal/domain/shared"
	"github.com/meridianfood/backend/internal/interfaces/http/dto"
)

// StockHandler handles warehouse stock and transaction API endpoints
type StockHandler struct {
	BaseHandler
	service *inventoryapp.StockLedgerService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(service *inventoryapp.StockLedgerService) *StockHandler {
	return &StockHandler{service: service}
}

// AdjustStockRequest moves stock in or out of a warehouse with an audit source
type AdjustStockRequest struct {
	Quantity   int64  `json:"quantity" binding:"required,min=1"`
	SourceType string `json:"source_type" binding:"required,max=30"`
	SourceID   string `json:"source_id" binding:"required,max=50"`
}

// TransferStockRequest moves stock of one product between two warehouses
type TransferStockRequest struct {
	ProductID       string `json:"product_id" binding:"required,uuid"`
	FromWarehouseID string `json:"from_warehouse_id" binding:"required,uuid"`
	ToWarehouseID   string `json:"to_warehouse_id" binding:"required,uuid"`
	Quantity        int64  `json:"quantity" binding:"required,min=1"`
}

// WarehouseStockResponse is the API representation of one stock position
type WarehouseStockResponse struct {
	WarehouseID  uuid.UUID `json:"warehouse_id"`
	ProductID    uuid.UUID `json:"product_id"`
	Quantity     int64     `json:"quantity"`
	Unit         string    `json:"unit"`
	StockTakenAt time.Time `json:"stock_taken_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toStockResponse(stock *inventory.WarehouseStock) WarehouseStockResponse {
	return WarehouseStockResponse{
		WarehouseID:  stock.WarehouseID,
		ProductID:    stock.ProductID,
		Quantity:     stock.Quantity,
		Unit:         stock.Unit,
		StockTakenAt: stock.StockTakenAt,
		UpdatedAt:    stock.UpdatedAt,
	}
}

// StockMovementResponse is one ledger entry of a stock position
type StockMovementResponse struct {
	ID            uuid.UUID `json:"id"`
	MovementType  string    `json:"movement_type"`
	Quantity      int64     `json:"quantity"`
	BalanceBefore int64     `json:"balance_before"`
	BalanceAfter  int64     `json:"balance_after"`
	SourceType    string    `json:"source_type"`
	SourceID      string    `json:"source_id"`
	MovedAt       time.Time `json:"moved_at"`
}

// WarehouseTransactionLineResponse is one precomputed stock delta of a
// warehouse transaction
type WarehouseTransactionLineResponse struct {
	WarehouseID uuid.UUID `json:"warehouse_id"`
	ProductID   uuid.UUID `json:"product_id"`
	Quantity    int64     `json:"quantity"`
	StockBefore int64     `json:"stock_before"`
	StockAfter  int64     `json:"stock_after"`
}

// WarehouseTransactionResponse is the API representation of a warehouse
// transaction
type WarehouseTransactionResponse struct {
	ID                uuid.UUID                          `json:"id"`
	ProductionOrderID uuid.UUID                          `json:"production_order_id"`
	Status            string                             `json:"status"`
	ExecutedAt        *time.Time                         `json:"executed_at,omitempty"`
	CancelledAt       *time.Time                         `json:"cancelled_at,omitempty"`
	Lines             []WarehouseTransactionLineResponse `json:"lines"`
	CreatedAt         time.Time                          `json:"created_at"`
}

func toTransactionResponse(tx *inventory.WarehouseTransaction) WarehouseTransactionResponse {
	lines := make([]WarehouseTransactionLineResponse, 0, len(tx.Lines))
	for _, line := range tx.Lines {
		lines = append(lines, WarehouseTransactionLineResponse{
			WarehouseID: line.WarehouseID,
			ProductID:   line.ProductID,
			Quantity:    line.Quantity,
			StockBefore: line.StockBefore,
			StockAfter:  line.StockAfter,
		})
	}
	return WarehouseTransactionResponse{
		ID:                tx.ID,
		ProductionOrderID: tx.ProductionOrderID,
		Status:            string(tx.Status),
		ExecutedAt:        tx.ExecutedAt,
		CancelledAt:       tx.CancelledAt,
		Lines:             lines,
		CreatedAt:         tx.CreatedAt,
	}
}

// GetStock returns the current quantity of one product in one warehouse.
// Never-held products report zero.
func (h *StockHandler) GetStock(c *gin.Context) {
	warehouseID, productID, ok := h.parsePair(c)
	if !ok {
		return
	}

	quantity, err := h.service.GetStock(c.Request.Context(), warehouseID, productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{
		"warehouse_id": warehouseID,
		"product_id":   productID,
		"quantity":     quantity,
	})
}

// ListStock returns all stock positions of a warehouse
func (h *StockHandler) ListStock(c *gin.Context) {
	warehouseID, err := uuid.Parse(c.Param("warehouse_id"))
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID")
		return
	}

	stocks, err := h.service.ListStock(c.Request.Context(), warehouseID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	responses := make([]WarehouseStockResponse, 0, len(stocks))
	for i := range stocks {
		responses = append(responses, toStockResponse(&stocks[i]))
	}

	h.Success(c, responses)
}

// GetMovements returns the movement history of one stock position
func (h *StockHandler) GetMovements(c *gin.Context) {
	warehouseID, productID, ok := h.parsePair(c)
	if !ok {
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		Filters:  make(map[string]interface{}),
	}
	if movementType := c.Query("movement_type"); movementType != "" {
		filter.Filters["movement_type"] = movementType
	}
	if sourceType := c.Query("source_type"); sourceType != "" {
		filter.Filters["source_type"] = sourceType
	}

	movements, err := h.service.GetMovements(c.Request.Context(), warehouseID, productID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	responses := make([]StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		responses = append(responses, StockMovementResponse{
			ID:            m.ID,
			MovementType:  string(m.MovementType),
			Quantity:      m.Quantity,
			BalanceBefore: m.BalanceBefore,
			BalanceAfter:  m.BalanceAfter,
			SourceType:    m.SourceType,
			SourceID:      m.SourceID,
			MovedAt:       m.MovedAt,
		})
	}

	h.Success(c, responses)
}

// Increment adds stock to one position and appends a ledger entry
func (h *StockHandler) Increment(c *gin.Context) {
	warehouseID, productID, ok := h.parsePair(c)
	if !ok {
		return
	}

	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	stock, err := h.service.Increment(c.Request.Context(), warehouseID, productID, req.Quantity, req.SourceType, req.SourceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toStockResponse(stock))
}

// Decrement removes stock from one position and appends a ledger entry
func (h *StockHandler) Decrement(c *gin.Context) {
	warehouseID, productID, ok := h.parsePair(c)
	if !ok {
		return
	}

	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	stock, err := h.service.Decrement(c.Request.Context(), warehouseID, productID, req.Quantity, req.SourceType, req.SourceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toStockResponse(stock))
}

// Transfer moves stock of one product between warehouses in one transaction
func (h *StockHandler) Transfer(c *gin.Context) {
	var req TransferStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	productID, _ := uuid.Parse(req.ProductID)
	fromID, _ := uuid.Parse(req.FromWarehouseID)
	toID, _ := uuid.Parse(req.ToWarehouseID)

	if err := h.service.Transfer(c.Request.Context(), productID, fromID, toID, req.Quantity); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ListPendingTransactions returns warehouse transactions awaiting execution
func (h *StockHandler) ListPendingTransactions(c *gin.Context) {
	transactions, err := h.service.ListPendingTransactions(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	responses := make([]WarehouseTransactionResponse, 0, len(transactions))
	for i := range transactions {
		responses = append(responses, toTransactionResponse(&transactions[i]))
	}

	h.Success(c, responses)
}

// ExecuteTransaction applies a pending transaction's stock deltas
func (h *StockHandler) ExecuteTransaction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transaction ID")
		return
	}

	tx, err := h.service.ExecuteTransaction(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toTransactionResponse(tx))
}

// CancelTransaction cancels a pending transaction without touching stock
func (h *StockHandler) CancelTransaction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transaction ID")
		return
	}

	tx, err := h.service.CancelTransaction(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toTransactionResponse(tx))
}

func (h *StockHandler) parsePair(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	warehouseID, err := uuid.Parse(c.Param("warehouse_id"))
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID")
		return uuid.Nil, uuid.Nil, false
	}
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return uuid.Nil, uuid.Nil, false
	}
	return warehouseID, productID, true
}

// RegisterRoutes registers all stock and transaction routes
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stock := rg.Group("/warehouses/:warehouse_id/stock")
	{
		stock.GET("", h.ListStock)
		stock.GET("/:product_id", h.GetStock)
		stock.GET("/:product_id/movements", h.GetMovements)
		stock.POST("/:product_id/increment", h.Increment)
		stock.POST("/:product_id/decrement", h.Decrement)
	}

	rg.POST("/stock/transfer", h.Transfer)

	transactions := rg.Group("/warehouse-transactions")
	{
		transactions.GET("/pending", h.ListPendingTransactions)
		transactions.POST("/:id/execute", h.ExecuteTransaction)
		transactions.POST("/:id/cancel", h.CancelTransaction)
	}
}
