package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/isp_bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/isp_bookkeeping_app/internal/core/domain"
	portssvc "github.com/SscSPs/isp_bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/isp_bookkeeping_app/internal/core/state"
	"github.com/SscSPs/isp_bookkeeping_app/internal/dto"
	"github.com/SscSPs/isp_bookkeeping_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

const monthsPerYear = 12

// customerService implements the CustomerSvcFacade interface
type customerService struct {
	BaseService
	state *state.Container
	links portssvc.ReminderLinkBuilder
}

// NewCustomerService creates a new customer service with the provided options
func NewCustomerService(st *state.Container, links portssvc.ReminderLinkBuilder, options ...ServiceOption) portssvc.CustomerSvcFacade {
	return &customerService{
		BaseService: newBaseService(options),
		state:       st,
		links:       links,
	}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

func (s *customerService) ListCustomers(ctx context.Context, params dto.ListCustomersParams) ([]domain.Customer, error) {
	all := s.state.Customers()
	out := make([]domain.Customer, 0, len(all))
	for _, c := range all {
		if params.Status != "" && c.Status != params.Status {
			continue
		}
		if !c.MatchesQuery(params.Query) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	customers := s.state.Customers()
	idx := domain.FindCustomer(customers, customerID)
	if idx < 0 {
		return nil, apperrors.NewAppError(apperrors.ErrNotFound, "customer %s", customerID)
	}
	return &customers[idx], nil
}

func (s *customerService) GetTotalDue(ctx context.Context, customerID string) (decimal.Decimal, error) {
	c, err := s.GetCustomerByID(ctx, customerID)
	if err != nil {
		return decimal.Zero, err
	}
	return accounting.ComputeTotalDue(*c), nil
}

func (s *customerService) ReminderLink(ctx context.Context, customerID string) (string, error) {
	c, err := s.GetCustomerByID(ctx, customerID)
	if err != nil {
		return "", err
	}
	link, err := s.links.ReminderLink(*c, accounting.ComputeTotalDue(*c), s.state.Settings())
	if err != nil {
		s.LogError(ctx, err, "Failed to build reminder link", slog.String("customer_id", customerID))
		return "", fmt.Errorf("failed to build reminder link: %w", err)
	}
	return link, nil
}

func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*domain.Customer, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = s.IDs.NewID("C")
	}

	fee := decimal.Zero
	if req.MonthlyFee != nil {
		fee = *req.MonthlyFee
	}
	annual := fee.Mul(decimal.NewFromInt(monthsPerYear))
	if req.RemainingAnnualBalance != nil {
		annual = *req.RemainingAnnualBalance
	}

	customer := domain.Customer{
		ID:                     id,
		Name:                   strings.TrimSpace(req.Name),
		Phone:                  strings.TrimSpace(req.Phone),
		Type:                   req.Type,
		DueDate:                req.DueDate,
		MonthlyFee:             fee,
		AccumulatedDebt:        decimal.Zero,
		RemainingAnnualBalance: annual,
		Status:                 domain.StatusUnpaid,
	}
	if err := customer.Validate(); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrValidation, "%s", err.Error())
	}

	_, err := s.state.UpdateCustomers(ctx, func(customers []domain.Customer) ([]domain.Customer, error) {
		if domain.FindCustomer(customers, id) >= 0 {
			return nil, apperrors.NewAppError(apperrors.ErrDuplicate, "customer id %s is already in use", id)
		}
		return append(customers, customer), nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create customer", slog.String("customer_id", id))
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	s.LogInfo(ctx, "Customer created", slog.String("customer_id", id), slog.String("type", string(customer.Type)))
	return &customer, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest) (*domain.Customer, error) {
	var updated domain.Customer
	_, err := s.state.UpdateCustomers(ctx, func(customers []domain.Customer) ([]domain.Customer, error) {
		idx := domain.FindCustomer(customers, customerID)
		if idx < 0 {
			return nil, apperrors.NewAppError(apperrors.ErrNotFound, "customer %s", customerID)
		}

		c := customers[idx]
		c.Name = strings.TrimSpace(req.Name)
		c.Phone = strings.TrimSpace(req.Phone)
		c.Type = req.Type
		c.DueDate = req.DueDate
		if req.MonthlyFee != nil {
			c.MonthlyFee = *req.MonthlyFee
		}
		if req.AccumulatedDebt != nil {
			c.AccumulatedDebt = *req.AccumulatedDebt
		}
		if req.RemainingAnnualBalance != nil {
			c.RemainingAnnualBalance = *req.RemainingAnnualBalance
		}
		if req.Status != nil {
			c.Status = *req.Status
		}
		if err := c.Validate(); err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrValidation, "%s", err.Error())
		}

		customers[idx] = c
		updated = c
		return customers, nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update customer", slog.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return &updated, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, customerID string) error {
	_, err := s.state.UpdateCustomers(ctx, func(customers []domain.Customer) ([]domain.Customer, error) {
		idx := domain.FindCustomer(customers, customerID)
		if idx < 0 {
			return nil, apperrors.NewAppError(apperrors.ErrNotFound, "customer %s", customerID)
		}
		return append(customers[:idx], customers[idx+1:]...), nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete customer", slog.String("customer_id", customerID))
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	s.LogInfo(ctx, "Customer deleted", slog.String("customer_id", customerID))
	return nil
}

func (s *customerService) SettlePayment(ctx context.Context, customerID string, method domain.PaymentMethod) (*domain.Customer, *domain.Transaction, error) {
	if !method.Valid() {
		return nil, nil, apperrors.NewAppError(apperrors.ErrValidation, "unknown payment method %q", method)
	}

	txID := s.IDs.NewID("T")
	today := s.Today()
	customer, tx, err := s.state.SettleCustomer(ctx, customerID, func(c domain.Customer) (domain.Customer, domain.Transaction, error) {
		return accounting.SettlePayment(c, method, txID, today)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to settle payment", slog.String("customer_id", customerID))
		return nil, nil, fmt.Errorf("failed to settle payment: %w", err)
	}

	s.LogInfo(ctx, "Payment settled",
		slog.String("customer_id", customerID),
		slog.String("transaction_id", tx.ID),
		slog.String("amount", tx.Amount.String()),
		slog.String("method", string(method)))
	return &customer, &tx, nil
}

func (s *customerService) AdvanceBillingCycle(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.state.UpdateCustomers(ctx, func(customers []domain.Customer) ([]domain.Customer, error) {
		return accounting.AdvanceAll(customers), nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to advance billing cycle")
		return nil, fmt.Errorf("failed to advance billing cycle: %w", err)
	}

	s.LogInfo(ctx, "Billing cycle advanced", slog.Int("customers", len(customers)), slog.String("date", s.Today()))
	return customers, nil
}
