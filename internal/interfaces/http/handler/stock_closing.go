package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/retailops/backend/internal/application/settlement"
	"github.com/retailops/backend/internal/interfaces/http/dto"
)

// StockClosingHandler handles reconciliation API endpoints
type StockClosingHandler struct {
	BaseHandler
	reconciliationService *settlement.ReconciliationService
}

// NewStockClosingHandler creates a new StockClosingHandler
func NewStockClosingHandler(reconciliationService *settlement.ReconciliationService) *StockClosingHandler {
	return &StockClosingHandler{reconciliationService: reconciliationService}
}

// RegisterRoutes registers stock closing routes
func (h *StockClosingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	closings := rg.Group("/stock-closings")
	{
		closings.POST("", h.Reconcile)
		closings.GET("/:id", h.GetByID)
	}
}

// Reconcile runs end-of-day reconciliation: snapshots counted figures,
// books shortfalls as a shrinkage sale and rolls the morning baseline.
func (h *StockClosingHandler) Reconcile(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant ID")
		return
	}

	var req settlement.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.reconciliationService.Reconcile(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID returns a reconciliation snapshot with its per-product lines
func (h *StockClosingHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant ID")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid stock closing ID")
		return
	}
	closingID := uuid.MustParse(uri.ID)

	resp, err := h.reconciliationService.GetStockClosing(c.Request.Context(), tenantID, closingID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
