package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/retailops/backend/internal/application/settlement"
	"github.com/retailops/backend/internal/interfaces/http/dto"
)

// PurchaseHandler handles purchase settlement API endpoints
type PurchaseHandler struct {
	BaseHandler
	purchaseService *settlement.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(purchaseService *settlement.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// RegisterRoutes registers purchase routes
func (h *PurchaseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	purchases := rg.Group("/purchases")
	{
		purchases.POST("", h.Create)
		purchases.GET("/:id", h.GetByID)
	}
}

// Create settles a purchase: receives stock into the vendor's rows and
// posts the vendor ledger in one transaction.
func (h *PurchaseHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant ID")
		return
	}

	var req settlement.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.purchaseService.CreatePurchase(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID returns a settled purchase with its items
func (h *PurchaseHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant ID")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid purchase ID")
		return
	}
	purchaseID := uuid.MustParse(uri.ID)

	resp, err := h.purchaseService.GetPurchase(c.Request.Context(), tenantID, purchaseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
