package services

import (
	"context"

	"github.com/SscSPs/isp_bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/isp_bookkeeping_app/internal/dto"
	"github.com/shopspring/decimal"
)

// CustomerReaderSvc defines read operations for customer data
type CustomerReaderSvc interface {
	// ListCustomers returns customers matching the search query and optional status.
	ListCustomers(ctx context.Context, params dto.ListCustomersParams) ([]domain.Customer, error)

	// GetCustomerByID retrieves a customer by id.
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// GetTotalDue returns monthly fee plus accumulated debt.
	GetTotalDue(ctx context.Context, customerID string) (decimal.Decimal, error)

	// ReminderLink builds a pre-filled payment reminder chat link for the customer.
	ReminderLink(ctx context.Context, customerID string) (string, error)
}

// CustomerWriterSvc defines write operations for customer data
type CustomerWriterSvc interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest) (*domain.Customer, error)
	// DeleteCustomer removes the customer. Transactions referencing it are kept.
	DeleteCustomer(ctx context.Context, customerID string) error
}

// BillingSvc defines the billing state transitions
type BillingSvc interface {
	// SettlePayment pays off the customer's total due and records the income.
	SettlePayment(ctx context.Context, customerID string, method domain.PaymentMethod) (*domain.Customer, *domain.Transaction, error)

	// AdvanceBillingCycle rolls every customer into the next period.
	AdvanceBillingCycle(ctx context.Context) ([]domain.Customer, error)
}

// CustomerSvcFacade combines all customer-related service interfaces
type CustomerSvcFacade interface {
	CustomerReaderSvc
	CustomerWriterSvc
	BillingSvc
}

// ReminderLinkBuilder produces an outbound message link. It never sends anything.
type ReminderLinkBuilder interface {
	ReminderLink(customer domain.Customer, totalDue decimal.Decimal, settings domain.CompanySettings) (string, error)
}
