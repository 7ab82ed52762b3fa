package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CustomerStatus is the billing state of a customer in the current cycle.
type CustomerStatus string

const (
	StatusPaid   CustomerStatus = "paid"
	StatusUnpaid CustomerStatus = "unpaid"
)

// Valid reports whether s is one of the known statuses.
func (s CustomerStatus) Valid() bool {
	switch s {
	case StatusPaid, StatusUnpaid:
		return true
	default:
		return false
	}
}

// SubscriptionType is the kind of internet plan a customer subscribes to.
type SubscriptionType string

const (
	SubscriptionPPPoE        SubscriptionType = "PPPoE"
	SubscriptionStatic       SubscriptionType = "Static"
	SubscriptionHotspot      SubscriptionType = "Hotspot"
	SubscriptionMitraVoucher SubscriptionType = "Mitra Voucher"
)

// Valid reports whether t is one of the known subscription types.
func (t SubscriptionType) Valid() bool {
	switch t {
	case SubscriptionPPPoE, SubscriptionStatic, SubscriptionHotspot, SubscriptionMitraVoucher:
		return true
	default:
		return false
	}
}

// Customer is a subscriber billed monthly.
type Customer struct {
	ID                     string           `json:"id"`
	Name                   string           `json:"name"`
	Phone                  string           `json:"phone"`
	Type                   SubscriptionType `json:"type"`
	DueDate                int              `json:"dueDate"` // day of month, 1-31
	MonthlyFee             decimal.Decimal  `json:"monthlyFee"`
	AccumulatedDebt        decimal.Decimal  `json:"accumulatedDebt"`        // unpaid charges from earlier cycles
	RemainingAnnualBalance decimal.Decimal  `json:"remainingAnnualBalance"` // informational countdown
	Status                 CustomerStatus   `json:"status"`
	LastPaymentDate        *string          `json:"lastPaymentDate,omitempty"`
}

// Validate checks the field-level invariants of a customer record.
func (c Customer) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("customer id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("customer name is required")
	}
	if !c.Type.Valid() {
		return fmt.Errorf("unknown subscription type %q", c.Type)
	}
	if !c.Status.Valid() {
		return fmt.Errorf("unknown customer status %q", c.Status)
	}
	if c.DueDate < 1 || c.DueDate > 31 {
		return fmt.Errorf("due date must be between 1 and 31, got %d", c.DueDate)
	}
	if c.MonthlyFee.IsNegative() {
		return fmt.Errorf("monthly fee must not be negative")
	}
	if c.AccumulatedDebt.IsNegative() {
		return fmt.Errorf("accumulated debt must not be negative")
	}
	if c.RemainingAnnualBalance.IsNegative() {
		return fmt.Errorf("remaining annual balance must not be negative")
	}
	return nil
}

// MatchesQuery reports whether the customer's name (case-insensitive) or phone contains q.
// An empty query matches everything.
func (c Customer) MatchesQuery(q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), strings.ToLower(q)) ||
		strings.Contains(c.Phone, q)
}

// FindCustomer returns the index of the customer with the given id, or -1.
func FindCustomer(customers []Customer, id string) int {
	for i := range customers {
		if customers[i].ID == id {
			return i
		}
	}
	return -1
}
