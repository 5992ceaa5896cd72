package settlement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retailops/backend/internal/domain/finance"
	"github.com/retailops/backend/internal/domain/inventory"
	"github.com/retailops/backend/internal/domain/shared"
	"github.com/retailops/backend/internal/domain/trade"
)

// PurchaseService settles vendor purchases: vendor stock and product
// aggregate increments, the purchase record, and the vendor ledger post
// inside the same transaction scope.
type PurchaseService struct {
	scope          TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(scope TransactionScope, eventPublisher shared.EventPublisher, logger *zap.Logger) *PurchaseService {
	return &PurchaseService{
		scope:          scope,
		eventPublisher: eventPublisher,
		logger:         logger.Named("purchase-service"),
	}
}

// CreatePurchase settles one vendor purchase. The ledger post against the
// vendor is part of the same atomic unit as the stock and record writes, so
// a failing post rolls the whole purchase back.
func (s *PurchaseService) CreatePurchase(ctx context.Context, tenantID uuid.UUID, req CreatePurchaseRequest) (*PurchaseResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewValidationError("At least one item is required")
	}
	if req.PaidAmount.IsNegative() {
		return nil, shared.NewValidationError("Paid amount cannot be negative")
	}

	purchaseDate := time.Now()
	if req.PurchaseDate != nil {
		purchaseDate = *req.PurchaseDate
	}

	var (
		purchase *trade.Purchase
		events   []shared.DomainEvent
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		vendor, err := repos.VendorRepo().FindByIDForTenant(ctx, tenantID, req.VendorID)
		if err != nil {
			return err
		}
		if !vendor.IsActive() {
			return shared.NewBusinessRuleError("VENDOR_DISABLED", "Vendor "+vendor.Name+" cannot supply stock")
		}

		items := make([]trade.PurchaseItem, 0, len(req.Items))
		for _, itemReq := range req.Items {
			product, err := repos.ProductRepo().FindByIDForTenant(ctx, tenantID, itemReq.ProductID)
			if err != nil {
				return err
			}

			item, err := trade.NewPurchaseItem(product.ID, product.Name, itemReq.Cases, itemReq.Bottles, product.BottlesPerCase, itemReq.UnitPrice)
			if err != nil {
				return err
			}
			items = append(items, item)

			if err := s.receiveStock(ctx, repos, tenantID, vendor.ID, product.ID, item, purchaseDate); err != nil {
				return err
			}
			if err := product.IncreaseStock(item.Quantity); err != nil {
				return err
			}
			if err := repos.ProductRepo().SaveWithLock(ctx, product); err != nil {
				return err
			}
		}

		purchaseNumber, err := repos.PurchaseRepo().NextPurchaseNumber(ctx, tenantID)
		if err != nil {
			return err
		}
		purchase, err = trade.NewPurchase(tenantID, purchaseNumber, vendor.ID, purchaseDate, items, req.PaidAmount)
		if err != nil {
			return err
		}
		if err := repos.PurchaseRepo().SaveWithItems(ctx, purchase); err != nil {
			return err
		}

		entry, err := appendLedgerEntry(ctx, repos, tenantID, finance.LedgerEntityVendor, vendor.ID,
			purchase.TotalAmount, purchase.PaidAmount, "Purchase "+purchase.PurchaseNumber)
		if err != nil {
			return err
		}

		events = append(drainEvents(purchase), finance.NewLedgerEntryPostedEvent(entry))
		return nil
	})
	if err != nil {
		return nil, err
	}

	publishEvents(ctx, s.eventPublisher, events...)

	s.logger.Info("purchase settled",
		zap.String("tenant_id", tenantID.String()),
		zap.String("purchase_number", purchase.PurchaseNumber),
		zap.String("total_amount", purchase.TotalAmount.String()),
		zap.Int64("quantity", purchase.TotalQuantity()))

	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// GetPurchase retrieves a settled purchase
func (s *PurchaseService) GetPurchase(ctx context.Context, tenantID, purchaseID uuid.UUID) (*PurchaseResponse, error) {
	var purchase *trade.Purchase
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		purchase, err = repos.PurchaseRepo().FindByIDForTenant(ctx, tenantID, purchaseID)
		return err
	})
	if err != nil {
		return nil, err
	}
	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// receiveStock adds the purchased quantity to the (vendor, product) stock
// row, creating the row on first purchase from that vendor. Top-ups of an
// existing row go through the version guard so a concurrent sale drawing
// from the same row cannot be overwritten.
func (s *PurchaseService) receiveStock(ctx context.Context, repos TransactionalRepositories, tenantID, vendorID, productID uuid.UUID, item trade.PurchaseItem, purchaseDate time.Time) error {
	stock, err := repos.VendorStockRepo().FindByVendorAndProduct(ctx, tenantID, vendorID, productID)
	if err != nil {
		if !shared.IsNotFound(err) {
			return err
		}
		stock, err = inventory.NewVendorStock(tenantID, vendorID, productID)
		if err != nil {
			return err
		}
		if err := stock.Receive(item.Quantity, item.UnitPrice, purchaseDate); err != nil {
			return err
		}
		return repos.VendorStockRepo().Save(ctx, stock)
	}
	if err := stock.Receive(item.Quantity, item.UnitPrice, purchaseDate); err != nil {
		return err
	}
	return repos.VendorStockRepo().SaveWithLock(ctx, stock)
}
