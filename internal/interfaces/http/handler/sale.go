package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/retailops/backend/internal/application/settlement"
	"github.com/retailops/backend/internal/interfaces/http/dto"
)

// SaleHandler handles sale settlement API endpoints
type SaleHandler struct {
	BaseHandler
	saleService *settlement.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService *settlement.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// RegisterRoutes registers sale routes
func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/sales")
	{
		sales.POST("", h.Create)
		sales.GET("/:id", h.GetByID)
	}
}

// Create settles a new sale: allocates vendor stock, splits oversized
// bills and posts the customer ledger in one transaction.
func (h *SaleHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant ID")
		return
	}

	var req settlement.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.saleService.CreateSale(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID returns a settled sale with items, allocations and sub-bills
func (h *SaleHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant ID")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid sale ID")
		return
	}
	saleID := uuid.MustParse(uri.ID)

	resp, err := h.saleService.GetSale(c.Request.Context(), tenantID, saleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
