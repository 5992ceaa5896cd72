package settlement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/retailops/backend/internal/domain/catalog"
	"github.com/retailops/backend/internal/domain/finance"
	"github.com/retailops/backend/internal/domain/inventory"
	"github.com/retailops/backend/internal/domain/partner"
	"github.com/retailops/backend/internal/domain/shared"
	"github.com/retailops/backend/internal/domain/trade"
)

// SaleService settles customer transactions: discount-cap enforcement,
// priority-ordered stock allocation, balance and ledger updates, and
// value-bounded sub-bill generation, all inside one transaction scope.
type SaleService struct {
	scope          TransactionScope
	config         Config
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewSaleService creates a new SaleService
func NewSaleService(scope TransactionScope, config Config, eventPublisher shared.EventPublisher, logger *zap.Logger) *SaleService {
	return &SaleService{
		scope:          scope,
		config:         config,
		eventPublisher: eventPublisher,
		logger:         logger.Named("sale-service"),
	}
}

// CreateSale settles one customer transaction. Any failure, from the
// discount check through the ledger post, rolls back every stock deduction
// and balance change made for this sale.
func (s *SaleService) CreateSale(ctx context.Context, tenantID uuid.UUID, req CreateSaleRequest) (*SaleResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewValidationError("At least one item is required")
	}
	if req.CashAmount.IsNegative() || req.OnlineAmount.IsNegative() {
		return nil, shared.NewValidationError("Payment amounts cannot be negative")
	}
	if req.BillDiscount.IsNegative() {
		return nil, shared.NewValidationError("Bill discount cannot be negative")
	}

	saleDate := time.Now()
	if req.SaleDate != nil {
		saleDate = *req.SaleDate
	}

	var (
		sale   *trade.Sale
		events []shared.DomainEvent
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		products, err := s.loadProducts(ctx, repos, tenantID, req.Items)
		if err != nil {
			return err
		}

		items, subtotal, itemDiscount, err := buildSaleItems(req.Items, products)
		if err != nil {
			return err
		}

		// Discount cap first: reject before any stock is touched.
		var customer *partner.Customer
		if req.CustomerID != nil {
			customer, err = repos.CustomerRepo().FindByIDForTenant(ctx, tenantID, *req.CustomerID)
			if err != nil {
				return err
			}
			if err := customer.CheckDiscount(subtotal, itemDiscount.Add(req.BillDiscount)); err != nil {
				return err
			}
		}

		vendors, err := repos.VendorRepo().FindActiveForTenant(ctx, tenantID)
		if err != nil {
			return err
		}

		for idx := range items {
			product := products[items[idx].ProductID]
			if err := s.allocateLine(ctx, repos, product, &items[idx], vendors); err != nil {
				return err
			}
		}

		saleNumber, err := repos.SaleRepo().NextSaleNumber(ctx, tenantID)
		if err != nil {
			return err
		}

		payment := trade.PaymentSplit{Cash: req.CashAmount, Online: req.OnlineAmount}
		sale, err = trade.NewSale(tenantID, saleNumber, trade.SaleKindOrdinary, req.CustomerID, saleDate, items, req.BillDiscount, payment)
		if err != nil {
			return err
		}

		if sale.TotalAmount.GreaterThan(s.config.BillValueCeiling) {
			split := trade.PaymentSplit{Cash: sale.CashAmount, Online: sale.OnlineAmount, Credit: sale.DueAmount}
			bills, err := trade.SplitByValue(sale.Items, split, s.config.BillValueCeiling)
			if err != nil {
				return err
			}
			sale.AttachSubBills(bills)
		}

		if customer != nil && sale.DueAmount.IsPositive() {
			if err := customer.IncreaseOutstanding(sale.DueAmount); err != nil {
				return err
			}
			if err := repos.CustomerRepo().SaveWithLock(ctx, customer); err != nil {
				return err
			}
		}

		if err := repos.SaleRepo().SaveWithItems(ctx, sale); err != nil {
			return err
		}

		if customer != nil && !sale.TotalAmount.IsZero() {
			entry, err := appendLedgerEntry(ctx, repos, tenantID, finance.LedgerEntityCustomer, customer.ID,
				sale.TotalAmount, sale.PaidAmount, "Sale "+sale.SaleNumber)
			if err != nil {
				return err
			}
			events = append(events, finance.NewLedgerEntryPostedEvent(entry))
		}

		events = append(drainEvents(sale), events...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	publishEvents(ctx, s.eventPublisher, events...)

	s.logger.Info("sale settled",
		zap.String("tenant_id", tenantID.String()),
		zap.String("sale_number", sale.SaleNumber),
		zap.String("total_amount", sale.TotalAmount.String()),
		zap.Int("sub_bills", len(sale.SubBills)))

	response := ToSaleResponse(sale)
	return &response, nil
}

// GetSale retrieves a settled sale
func (s *SaleService) GetSale(ctx context.Context, tenantID, saleID uuid.UUID) (*SaleResponse, error) {
	var sale *trade.Sale
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		sale, err = repos.SaleRepo().FindByIDForTenant(ctx, tenantID, saleID)
		return err
	})
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

func (s *SaleService) loadProducts(ctx context.Context, repos TransactionalRepositories, tenantID uuid.UUID, items []SaleItemRequest) (map[uuid.UUID]*catalog.Product, error) {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := repos.ProductRepo().FindByIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, shared.NewNotFoundError("Product")
		}
		if !product.IsActive() {
			return nil, shared.NewBusinessRuleError("PRODUCT_DISABLED", "Product "+product.Name+" is not sellable")
		}
	}
	return byID, nil
}

// allocateLine draws the line quantity from vendor stock in priority order
// and keeps the product aggregate in step with the per-vendor deductions.
func (s *SaleService) allocateLine(ctx context.Context, repos TransactionalRepositories, product *catalog.Product, item *trade.SaleItem, vendors []*partner.Vendor) error {
	stocks, err := repos.VendorStockRepo().FindByProduct(ctx, product.TenantID, product.ID)
	if err != nil {
		return err
	}
	ordered := inventory.OrderByVendorPriority(stocks, vendors)

	allocations, err := inventory.Allocate(product.Name, item.Quantity, ordered)
	if err != nil {
		return err
	}
	if err := repos.VendorStockRepo().SaveAllWithLock(ctx, ordered); err != nil {
		return err
	}

	if err := product.DecreaseStock(item.Quantity); err != nil {
		return err
	}
	if err := repos.ProductRepo().SaveWithLock(ctx, product); err != nil {
		return err
	}

	mapped := make([]trade.ItemAllocation, 0, len(allocations))
	for _, a := range allocations {
		mapped = append(mapped, trade.ItemAllocation{VendorID: a.VendorID, Quantity: a.Quantity})
	}
	item.SetAllocations(mapped)
	return nil
}

// buildSaleItems turns requested lines into domain sale items, pricing each
// from the product master unless the request overrides the unit price.
func buildSaleItems(reqs []SaleItemRequest, products map[uuid.UUID]*catalog.Product) ([]trade.SaleItem, decimal.Decimal, decimal.Decimal, error) {
	items := make([]trade.SaleItem, 0, len(reqs))
	subtotal := decimal.Zero
	itemDiscount := decimal.Zero

	for _, req := range reqs {
		product := products[req.ProductID]
		unitPrice := product.PricePerUnit
		if req.UnitPrice != nil {
			unitPrice = *req.UnitPrice
		}

		item, err := trade.NewSaleItem(product.ID, product.Name, req.Quantity, unitPrice, req.Discount, product.VolumeML)
		if err != nil {
			return nil, decimal.Zero, decimal.Zero, err
		}
		items = append(items, item)
		subtotal = subtotal.Add(unitPrice.Mul(decimal.NewFromInt(req.Quantity)))
		itemDiscount = itemDiscount.Add(req.Discount)
	}
	return items, subtotal, itemDiscount, nil
}
