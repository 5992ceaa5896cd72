package settlement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/retailops/backend/internal/domain/finance"
	"github.com/retailops/backend/internal/domain/shared"
)

// CreditService records customer payments against their outstanding balance
// and reverses them with compensating records. Balance, ledger and cashbook
// effects of one call share a single transaction scope.
type CreditService struct {
	scope          TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewCreditService creates a new CreditService
func NewCreditService(scope TransactionScope, eventPublisher shared.EventPublisher, logger *zap.Logger) *CreditService {
	return &CreditService{
		scope:          scope,
		eventPublisher: eventPublisher,
		logger:         logger.Named("credit-service"),
	}
}

// Collect settles a credit payment: creates the ACTIVE payment, decrements
// the customer's outstanding balance, posts a ledger credit and a cashbook
// inflow. A payment exceeding the balance is rejected with no side effects.
func (s *CreditService) Collect(ctx context.Context, tenantID uuid.UUID, req CollectRequest) (*CreditPaymentResponse, error) {
	creditDate := time.Now()
	if req.CreditDate != nil {
		creditDate = *req.CreditDate
	}

	var (
		payment *finance.CreditPayment
		events  []shared.DomainEvent
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		customer, err := repos.CustomerRepo().FindByIDForTenant(ctx, tenantID, req.CustomerID)
		if err != nil {
			return err
		}

		payment, err = finance.NewCreditPayment(tenantID, customer.ID, req.CashAmount, req.OnlineAmount, creditDate)
		if err != nil {
			return err
		}

		if err := customer.DecreaseOutstanding(payment.Amount()); err != nil {
			return err
		}
		if err := repos.CustomerRepo().SaveWithLock(ctx, customer); err != nil {
			return err
		}
		if err := repos.CreditPaymentRepo().Save(ctx, payment); err != nil {
			return err
		}

		entry, err := appendLedgerEntry(ctx, repos, tenantID, finance.LedgerEntityCustomer, customer.ID,
			decimal.Zero, payment.Amount(), "Credit payment received")
		if err != nil {
			return err
		}

		inflow, err := finance.NewCashbookEntry(tenantID, finance.CashbookInflow, finance.CashbookSourceCreditPayment,
			payment.ID, payment.CashAmount, payment.OnlineAmount, creditDate, "Credit payment from "+customer.Name)
		if err != nil {
			return err
		}
		if err := repos.CashbookRepo().Append(ctx, inflow); err != nil {
			return err
		}

		events = append(drainEvents(payment), finance.NewLedgerEntryPostedEvent(entry))
		return nil
	})
	if err != nil {
		return nil, err
	}

	publishEvents(ctx, s.eventPublisher, events...)

	s.logger.Info("credit payment collected",
		zap.String("tenant_id", tenantID.String()),
		zap.String("payment_id", payment.ID.String()),
		zap.String("amount", payment.Amount().String()))

	response := ToCreditPaymentResponse(payment)
	return &response, nil
}

// CancelPayment reverses a credit payment: restores the customer's balance,
// flips the payment to CANCELLED, posts a compensating ledger debit and a
// cashbook outflow. Cancelling an already-cancelled payment fails without
// touching balances. The original payment row is never deleted.
func (s *CreditService) CancelPayment(ctx context.Context, tenantID, paymentID uuid.UUID) (*CreditPaymentResponse, error) {
	var (
		payment *finance.CreditPayment
		events  []shared.DomainEvent
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		payment, err = repos.CreditPaymentRepo().FindByIDForTenant(ctx, tenantID, paymentID)
		if err != nil {
			return err
		}
		if err := payment.Cancel(); err != nil {
			return err
		}

		customer, err := repos.CustomerRepo().FindByIDForTenant(ctx, tenantID, payment.CustomerID)
		if err != nil {
			return err
		}
		if err := customer.RestoreOutstanding(payment.Amount()); err != nil {
			return err
		}
		if err := repos.CustomerRepo().SaveWithLock(ctx, customer); err != nil {
			return err
		}
		if err := repos.CreditPaymentRepo().SaveWithLock(ctx, payment); err != nil {
			return err
		}

		entry, err := appendLedgerEntry(ctx, repos, tenantID, finance.LedgerEntityCustomer, customer.ID,
			payment.Amount(), decimal.Zero, "Credit payment cancelled")
		if err != nil {
			return err
		}

		outflow, err := finance.NewCashbookEntry(tenantID, finance.CashbookOutflow, finance.CashbookSourceCreditRefund,
			payment.ID, payment.CashAmount, payment.OnlineAmount, time.Now(), "Credit payment reversal for "+customer.Name)
		if err != nil {
			return err
		}
		if err := repos.CashbookRepo().Append(ctx, outflow); err != nil {
			return err
		}

		events = append(drainEvents(payment), finance.NewLedgerEntryPostedEvent(entry))
		return nil
	})
	if err != nil {
		return nil, err
	}

	publishEvents(ctx, s.eventPublisher, events...)

	s.logger.Info("credit payment cancelled",
		zap.String("tenant_id", tenantID.String()),
		zap.String("payment_id", payment.ID.String()),
		zap.String("amount", payment.Amount().String()))

	response := ToCreditPaymentResponse(payment)
	return &response, nil
}
