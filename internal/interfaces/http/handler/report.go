package handler

import (
	"encoding/csv"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reportapp "github.com/meridianfood/backend/internal/application/report"
)

// ReportHandler handles consolidation report API endpoints
type ReportHandler struct {
	BaseHandler
	builder *reportapp.ConsolidationReportBuilder
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(builder *reportapp.ConsolidationReportBuilder) *ReportHandler {
	return &ReportHandler{builder: builder}
}

// BuildReportRequest selects the production orders a report is built from
type BuildReportRequest struct {
	OrderIDs []string `json:"order_ids" binding:"required,min=1,dive,uuid"`
}

func (r BuildReportRequest) ids() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.OrderIDs))
	for _, raw := range r.OrderIDs {
		// binding:"dive,uuid" already validated the format
		id, _ := uuid.Parse(raw)
		ids = append(ids, id)
	}
	return ids
}

// Consolidation builds the nested consolidation report for a set of
// production orders
func (h *ReportHandler) Consolidation(c *gin.Context) {
	var req BuildReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	report, err := h.builder.Build(c.Request.Context(), req.ids())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, report)
}

// ConsolidationExport builds the consolidation report and streams it as CSV:
// header, one row per dish ingredient, trailing TOTAL row
func (h *ReportHandler) ConsolidationExport(c *gin.Context) {
	var req BuildReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	report, err := h.builder.Build(c.Request.Context(), req.ids())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="consolidation.csv"`)
	c.Status(http.StatusOK)

	writer := csv.NewWriter(c.Writer)
	if err := writer.WriteAll(reportapp.Flatten(report)); err != nil {
		// Headers are already out; nothing sensible left to send
		_ = c.Error(err)
	}
}

// ProductionAreas builds the kitchen roll-up grouped by production area
func (h *ReportHandler) ProductionAreas(c *gin.Context) {
	var req BuildReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	report, err := h.builder.BuildByProductionArea(c.Request.Context(), req.ids())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, report)
}

// RegisterRoutes registers all report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.POST("/consolidation", h.Consolidation)
		reports.POST("/consolidation/export", h.ConsolidationExport)
		reports.POST("/production-areas", h.ProductionAreas)
	}
}
