package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/retailops/backend/internal/application/settlement"
	"github.com/retailops/backend/internal/domain/finance"
)

// LedgerHandler handles running-balance ledger API endpoints
type LedgerHandler struct {
	BaseHandler
	ledgerService *settlement.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *settlement.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// RegisterRoutes registers ledger routes
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	ledger := rg.Group("/ledger-entries")
	{
		ledger.POST("", h.PostEntry)
		ledger.GET("/:entityType/:entityId", h.GetEntityLedger)
	}
	rg.GET("/cashbook", h.GetCashbook)
}

// ledgerURI binds the ledger chain path parameters
type ledgerURI struct {
	EntityType string `uri:"entityType" binding:"required,oneof=CUSTOMER VENDOR"`
	EntityID   string `uri:"entityId" binding:"required,uuid"`
}

// PostEntry appends a manual adjustment entry to an entity's chain
func (h *LedgerHandler) PostEntry(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant ID")
		return
	}

	var req settlement.PostEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.ledgerService.PostEntry(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetEntityLedger returns an entity's full chain in posting order
func (h *LedgerHandler) GetEntityLedger(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant ID")
		return
	}

	var uri ledgerURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid ledger chain parameters")
		return
	}
	entityID := uuid.MustParse(uri.EntityID)

	resp, err := h.ledgerService.GetEntityLedger(c.Request.Context(), tenantID, finance.LedgerEntityType(uri.EntityType), entityID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetCashbook returns the till movements of one day (?date=2006-01-02,
// defaulting to today)
func (h *LedgerHandler) GetCashbook(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant ID")
		return
	}

	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		day, err = time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
	}

	resp, err := h.ledgerService.GetCashbook(c.Request.Context(), tenantID, day)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
