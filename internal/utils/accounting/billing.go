package accounting

import (
	"fmt"

	"github.com/SscSPs/isp_bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ComputeTotalDue is what a customer owes right now: this cycle's fee plus carried debt.
func ComputeTotalDue(c domain.Customer) decimal.Decimal {
	return c.MonthlyFee.Add(c.AccumulatedDebt)
}

// SettlePayment pays off a customer's total due in full.
// It returns the updated customer and the income transaction to prepend to the log.
// monthlyFee and remainingAnnualBalance are not touched by settlement.
func SettlePayment(c domain.Customer, method domain.PaymentMethod, txID, today string) (domain.Customer, domain.Transaction, error) {
	if !method.Valid() {
		return domain.Customer{}, domain.Transaction{}, fmt.Errorf("unknown payment method %q", method)
	}

	customerID := c.ID
	tx := domain.Transaction{
		ID:          txID,
		Date:        today,
		Description: fmt.Sprintf("Pembayaran Tagihan Internet - %s (%s)", c.Name, method),
		Amount:      ComputeTotalDue(c),
		Type:        domain.Income,
		Method:      method,
		Category:    domain.CategoryBillPayment,
		CustomerID:  &customerID,
	}

	paidOn := today
	updated := c
	updated.Status = domain.StatusPaid
	updated.AccumulatedDebt = decimal.Zero
	updated.LastPaymentDate = &paidOn

	return updated, tx, nil
}

// AdvanceBillingCycle rolls one customer into the next billing period.
//
// Known defect: nothing records which period was last advanced, so running this
// twice in the same period adds the monthly fee to debt twice.
func AdvanceBillingCycle(c domain.Customer) domain.Customer {
	updated := c

	updated.RemainingAnnualBalance = c.RemainingAnnualBalance.Sub(c.MonthlyFee)
	if updated.RemainingAnnualBalance.IsNegative() {
		updated.RemainingAnnualBalance = decimal.Zero
	}

	switch c.Status {
	case domain.StatusUnpaid:
		updated.AccumulatedDebt = c.AccumulatedDebt.Add(c.MonthlyFee)
	case domain.StatusPaid:
		// debt is carried as-is; it may be nonzero if status was edited by hand
	default:
		// validated records never get here; roll over like unpaid
		updated.AccumulatedDebt = c.AccumulatedDebt.Add(c.MonthlyFee)
	}

	updated.Status = domain.StatusUnpaid
	return updated
}

// AdvanceAll applies AdvanceBillingCycle to every customer, keeping order.
func AdvanceAll(customers []domain.Customer) []domain.Customer {
	out := make([]domain.Customer, len(customers))
	for i, c := range customers {
		out[i] = AdvanceBillingCycle(c)
	}
	return out
}
