package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/retailops/backend/internal/application/settlement"
	"github.com/retailops/backend/internal/interfaces/http/dto"
)

// CreditPaymentHandler handles credit collection API endpoints
type CreditPaymentHandler struct {
	BaseHandler
	creditService *settlement.CreditService
}

// NewCreditPaymentHandler creates a new CreditPaymentHandler
func NewCreditPaymentHandler(creditService *settlement.CreditService) *CreditPaymentHandler {
	return &CreditPaymentHandler{creditService: creditService}
}

// RegisterRoutes registers credit payment routes
func (h *CreditPaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/credit-payments")
	{
		payments.POST("", h.Collect)
		payments.POST("/:id/cancel", h.Cancel)
	}
}

// Collect records a payment against a customer's outstanding balance
func (h *CreditPaymentHandler) Collect(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant ID")
		return
	}

	var req settlement.CollectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.creditService.Collect(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Cancel reverses a credit payment: the customer's balance, the ledger
// and the cashbook are all compensated.
func (h *CreditPaymentHandler) Cancel(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant ID")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid payment ID")
		return
	}
	paymentID := uuid.MustParse(uri.ID)

	resp, err := h.creditService.CancelPayment(c.Request.Context(), tenantID, paymentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
