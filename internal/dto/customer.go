package dto

import (
	"github.com/SscSPs/isp_bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/isp_bookkeeping_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest defines the data needed to register a new subscriber.
// ID is optional; a time-based one is assigned when empty.
type CreateCustomerRequest struct {
	ID                     string                  `json:"id" binding:"omitempty,max=64"`
	Name                   string                  `json:"name" binding:"required"`
	Phone                  string                  `json:"phone" binding:"required"`
	Type                   domain.SubscriptionType `json:"type" binding:"required,subscription_type"`
	DueDate                int                     `json:"dueDate" binding:"required,min=1,max=31"`
	MonthlyFee             *decimal.Decimal        `json:"monthlyFee" binding:"required,min=0"`
	RemainingAnnualBalance *decimal.Decimal        `json:"remainingAnnualBalance" binding:"omitempty,min=0"`
}

// UpdateCustomerRequest is a full edit of a customer. Nil optional fields keep their current value.
type UpdateCustomerRequest struct {
	Name                   string                  `json:"name" binding:"required"`
	Phone                  string                  `json:"phone" binding:"required"`
	Type                   domain.SubscriptionType `json:"type" binding:"required,subscription_type"`
	DueDate                int                     `json:"dueDate" binding:"required,min=1,max=31"`
	MonthlyFee             *decimal.Decimal        `json:"monthlyFee" binding:"required,min=0"`
	AccumulatedDebt        *decimal.Decimal        `json:"accumulatedDebt" binding:"omitempty,min=0"`
	RemainingAnnualBalance *decimal.Decimal        `json:"remainingAnnualBalance" binding:"omitempty,min=0"`
	Status                 *domain.CustomerStatus  `json:"status" binding:"omitempty,customer_status"`
}

// ListCustomersParams filters the customer list.
type ListCustomersParams struct {
	Query  string                `form:"q"`
	Status domain.CustomerStatus `form:"status" binding:"omitempty,customer_status"`
}

// CustomerResponse is a customer plus its current total due.
type CustomerResponse struct {
	ID                     string                  `json:"id"`
	Name                   string                  `json:"name"`
	Phone                  string                  `json:"phone"`
	Type                   domain.SubscriptionType `json:"type"`
	DueDate                int                     `json:"dueDate"`
	MonthlyFee             decimal.Decimal         `json:"monthlyFee"`
	AccumulatedDebt        decimal.Decimal         `json:"accumulatedDebt"`
	RemainingAnnualBalance decimal.Decimal         `json:"remainingAnnualBalance"`
	Status                 domain.CustomerStatus   `json:"status"`
	LastPaymentDate        *string                 `json:"lastPaymentDate,omitempty"`
	TotalDue               decimal.Decimal         `json:"totalDue"`
}

// ToCustomerResponse converts a domain.Customer to CustomerResponse DTO
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:                     c.ID,
		Name:                   c.Name,
		Phone:                  c.Phone,
		Type:                   c.Type,
		DueDate:                c.DueDate,
		MonthlyFee:             c.MonthlyFee,
		AccumulatedDebt:        c.AccumulatedDebt,
		RemainingAnnualBalance: c.RemainingAnnualBalance,
		Status:                 c.Status,
		LastPaymentDate:        c.LastPaymentDate,
		TotalDue:               accounting.ComputeTotalDue(*c),
	}
}

// ToListCustomerResponse converts a slice of domain.Customer to CustomerResponse DTOs
func ToListCustomerResponse(customers []domain.Customer) []CustomerResponse {
	res := make([]CustomerResponse, len(customers))
	for i := range customers {
		res[i] = ToCustomerResponse(&customers[i])
	}
	return res
}

// SettlePaymentRequest picks how the customer paid.
type SettlePaymentRequest struct {
	Method domain.PaymentMethod `json:"method" binding:"required,payment_method"`
}

// SettlePaymentResponse returns both records the settlement produced.
type SettlePaymentResponse struct {
	Customer    CustomerResponse    `json:"customer"`
	Transaction TransactionResponse `json:"transaction"`
}

// AdvanceCycleResponse lists every customer after the rollover.
type AdvanceCycleResponse struct {
	Count     int                `json:"count"`
	Customers []CustomerResponse `json:"customers"`
}

// TotalDueResponse breaks down what a customer owes.
type TotalDueResponse struct {
	CustomerID      string          `json:"customerId"`
	MonthlyFee      decimal.Decimal `json:"monthlyFee"`
	AccumulatedDebt decimal.Decimal `json:"accumulatedDebt"`
	TotalDue        decimal.Decimal `json:"totalDue"`
}

// ReminderLinkResponse carries a pre-filled chat link.
type ReminderLinkResponse struct {
	URL string `json:"url"`
}
