package settlement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/retailops/backend/internal/domain/catalog"
	"github.com/retailops/backend/internal/domain/inventory"
	"github.com/retailops/backend/internal/domain/partner"
	"github.com/retailops/backend/internal/domain/shared"
	"github.com/retailops/backend/internal/domain/trade"
)

// ReconciliationService compares physical counts against system stock,
// sources any shortfall from vendor stock in priority order, records the
// shrinkage as a synthetic sale plus an immutable closing snapshot, and
// rolls the morning-stock baseline forward for the whole tenant.
type ReconciliationService struct {
	scope          TransactionScope
	config         Config
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewReconciliationService creates a new ReconciliationService
func NewReconciliationService(scope TransactionScope, config Config, eventPublisher shared.EventPublisher, logger *zap.Logger) *ReconciliationService {
	return &ReconciliationService{
		scope:          scope,
		config:         config,
		eventPublisher: eventPublisher,
		logger:         logger.Named("reconciliation-service"),
	}
}

// Reconcile runs one end-of-day reconciliation. Everything from the first
// vendor stock deduction to the global morning-stock rollover is one atomic
// unit; a single unsourceable shortfall aborts the whole run.
func (s *ReconciliationService) Reconcile(ctx context.Context, tenantID uuid.UUID, req ReconcileRequest) (*ReconcileResponse, error) {
	if len(req.Counts) == 0 {
		return nil, shared.NewValidationError("At least one closing count is required")
	}
	if req.CashAmount.IsNegative() || req.OnlineAmount.IsNegative() {
		return nil, shared.NewValidationError("Payment amounts cannot be negative")
	}
	seen := make(map[uuid.UUID]bool, len(req.Counts))
	for _, count := range req.Counts {
		if count.PhysicalCount < 0 {
			return nil, shared.NewValidationError("Physical count cannot be negative")
		}
		if seen[count.ProductID] {
			return nil, shared.NewValidationError("Duplicate product in closing counts")
		}
		seen[count.ProductID] = true
	}

	closingDate := time.Now()
	if req.ClosingDate != nil {
		closingDate = *req.ClosingDate
	}
	dayStart := time.Date(closingDate.Year(), closingDate.Month(), closingDate.Day(), 0, 0, 0, 0, closingDate.Location())
	saleDate := dayStart.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	nextDayStart := dayStart.AddDate(0, 0, 1)

	var (
		sale    *trade.Sale
		closing *inventory.StockClosing
		events  []shared.DomainEvent
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		vendors, err := repos.VendorRepo().FindActiveForTenant(ctx, tenantID)
		if err != nil {
			return err
		}

		items := make([]trade.SaleItem, 0, len(req.Counts))
		closingLines := make([]inventory.StockClosingLine, 0, len(req.Counts))

		for _, count := range req.Counts {
			product, err := repos.ProductRepo().FindByIDForTenant(ctx, tenantID, count.ProductID)
			if err != nil {
				return err
			}

			// The difference is recomputed from live stock; the caller's
			// morning/purchased/sold figures are trusted for the snapshot only.
			systemStock := product.CurrentStock
			difference := systemStock - count.PhysicalCount

			line := inventory.StockClosingLine{
				ProductID:        product.ID,
				ProductName:      product.Name,
				MorningStock:     count.MorningStock,
				Purchased:        count.Purchased,
				Sold:             count.Sold,
				SystemStock:      systemStock,
				PhysicalCount:    count.PhysicalCount,
				DiscrepancyValue: decimal.Zero,
			}

			if difference > 0 {
				item, err := s.sourceShortfall(ctx, repos, product, difference, count.PhysicalCount, vendors)
				if err != nil {
					return err
				}
				items = append(items, item)
				line.Discrepancy = difference
				line.DiscrepancyValue = product.PricePerUnit.Mul(decimal.NewFromInt(difference))
			}

			if err := product.ResetMorningStock(count.PhysicalCount, nextDayStart); err != nil {
				return err
			}
			if err := repos.ProductRepo().SaveWithLock(ctx, product); err != nil {
				return err
			}
			closingLines = append(closingLines, line)
		}

		if len(items) == 0 {
			return shared.NewBusinessRuleError("NOTHING_TO_RECONCILE", "No product shows a stock shortfall")
		}

		saleNumber, err := repos.SaleRepo().NextSaleNumber(ctx, tenantID)
		if err != nil {
			return err
		}
		payment := trade.PaymentSplit{Cash: req.CashAmount, Online: req.OnlineAmount}
		sale, err = trade.NewSale(tenantID, saleNumber, trade.SaleKindShrinkage, nil, saleDate, items, decimal.Zero, payment)
		if err != nil {
			return err
		}

		var totalVolume int64
		for _, item := range sale.Items {
			totalVolume += item.TotalVolumeML()
		}
		if totalVolume > s.config.BillVolumeCeilingML {
			bills, err := trade.SplitByVolume(sale.Items, payment, s.config.BillVolumeCeilingML)
			if err != nil {
				return err
			}
			sale.AttachSubBills(bills)
		}

		if err := repos.SaleRepo().SaveWithItems(ctx, sale); err != nil {
			return err
		}

		closing, err = inventory.NewStockClosing(tenantID, closingDate, sale.ID)
		if err != nil {
			return err
		}
		for _, line := range closingLines {
			closing.AddLine(line)
		}
		if err := repos.StockClosingRepo().SaveWithLines(ctx, closing); err != nil {
			return err
		}

		// Global baseline reset: every product of the tenant, counted or not.
		if err := repos.ProductRepo().RollMorningStockDate(ctx, tenantID, nextDayStart); err != nil {
			return err
		}

		events = append(drainEvents(sale), inventory.NewStockReconciledEvent(closing, len(req.Counts)))
		return nil
	})
	if err != nil {
		return nil, err
	}

	publishEvents(ctx, s.eventPublisher, events...)

	s.logger.Info("stock reconciled",
		zap.String("tenant_id", tenantID.String()),
		zap.String("sale_number", sale.SaleNumber),
		zap.Int64("total_discrepancy", closing.TotalDiscrepancy),
		zap.String("discrepancy_value", closing.TotalDiscrepancyValue.String()))

	response := ToReconcileResponse(closing, sale)
	return &response, nil
}

// GetStockClosing retrieves a reconciliation snapshot
func (s *ReconciliationService) GetStockClosing(ctx context.Context, tenantID, closingID uuid.UUID) (*ReconcileResponse, error) {
	var (
		closing *inventory.StockClosing
		sale    *trade.Sale
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		closing, err = repos.StockClosingRepo().FindByIDForTenant(ctx, tenantID, closingID)
		if err != nil {
			return err
		}
		sale, err = repos.SaleRepo().FindByIDForTenant(ctx, tenantID, closing.SaleID)
		return err
	})
	if err != nil {
		return nil, err
	}
	response := ToReconcileResponse(closing, sale)
	return &response, nil
}

// sourceShortfall draws the missing quantity from the product's vendor
// stock in priority order, pins the aggregate to the physical count, and
// returns the zero-discount synthetic sale line recording the shrinkage.
func (s *ReconciliationService) sourceShortfall(
	ctx context.Context,
	repos TransactionalRepositories,
	product *catalog.Product,
	difference int64,
	physicalCount int64,
	vendors []*partner.Vendor,
) (trade.SaleItem, error) {
	stocks, err := repos.VendorStockRepo().FindByProduct(ctx, product.TenantID, product.ID)
	if err != nil {
		return trade.SaleItem{}, err
	}
	ordered := inventory.OrderByVendorPriority(stocks, vendors)

	allocations, err := inventory.Allocate(product.Name, difference, ordered)
	if err != nil {
		return trade.SaleItem{}, err
	}
	if err := repos.VendorStockRepo().SaveAllWithLock(ctx, ordered); err != nil {
		return trade.SaleItem{}, err
	}

	if err := product.SetStock(physicalCount); err != nil {
		return trade.SaleItem{}, err
	}

	item, err := trade.NewSaleItem(product.ID, product.Name, difference, product.PricePerUnit, decimal.Zero, product.VolumeML)
	if err != nil {
		return trade.SaleItem{}, err
	}
	mapped := make([]trade.ItemAllocation, 0, len(allocations))
	for _, a := range allocations {
		mapped = append(mapped, trade.ItemAllocation{VendorID: a.VendorID, Quantity: a.Quantity})
	}
	item.SetAllocations(mapped)
	return item, nil
}
