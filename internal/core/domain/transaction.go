package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether money came in or went out.
type TransactionType string

const (
	Income  TransactionType = "Income"
	Expense TransactionType = "Expense"
)

// Valid reports whether t is Income or Expense.
func (t TransactionType) Valid() bool {
	switch t {
	case Income, Expense:
		return true
	default:
		return false
	}
}

// PaymentMethod is how money moved.
type PaymentMethod string

const (
	MethodTransfer PaymentMethod = "Transfer"
	MethodCash     PaymentMethod = "Cash"

	// legacyCash is how older snapshots spelled cash payments.
	legacyCash = "Tunai"
)

// PaymentMethods lists every method in display order.
var PaymentMethods = []PaymentMethod{MethodTransfer, MethodCash}

// Valid reports whether m is Transfer or Cash.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodTransfer, MethodCash:
		return true
	default:
		return false
	}
}

// UnmarshalJSON accepts the legacy "Tunai" spelling as Cash.
func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == legacyCash {
		s = string(MethodCash)
	}
	*m = PaymentMethod(s)
	return nil
}

// CategoryBillPayment marks transactions produced by settling a customer's bill.
const CategoryBillPayment = "Bill Payment"

// CategoryGeneral is the default category for manually entered transactions.
const CategoryGeneral = "General"

// Transaction is one immutable entry in the append-only cash book.
type Transaction struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"` // YYYY-MM-DD, compared as a string
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"` // always positive
	Type        TransactionType `json:"type"`
	Method      PaymentMethod   `json:"method"`
	Category    string          `json:"category,omitempty"`
	ProofImage  string          `json:"proofImage,omitempty"`
	CustomerID  *string         `json:"customerId,omitempty"` // non-owning back reference
}

// Validate checks the field-level invariants of a transaction.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("transaction id is required")
	}
	if strings.TrimSpace(t.Date) == "" {
		return fmt.Errorf("transaction date is required")
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("transaction amount must be positive")
	}
	if !t.Type.Valid() {
		return fmt.Errorf("unknown transaction type %q", t.Type)
	}
	if !t.Method.Valid() {
		return fmt.Errorf("unknown payment method %q", t.Method)
	}
	return nil
}

// MatchesQuery reports whether the description (case-insensitive) or the amount's
// decimal string contains q. An empty query matches everything.
func (t Transaction) MatchesQuery(q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Description), strings.ToLower(q)) ||
		strings.Contains(t.Amount.String(), q)
}
