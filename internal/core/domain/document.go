package domain

import "github.com/shopspring/decimal"

// CustomerInvoice is the data printed on a customer's monthly bill.
type CustomerInvoice struct {
	Customer    Customer
	BillingDate string // YYYY-MM-DD, used for the "Bulan" line
	TotalDue    decimal.Decimal
	Settings    CompanySettings
}

// ManualInvoice is a free-form invoice not tied to a customer record.
type ManualInvoice struct {
	Date        string
	To          string
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Settings    CompanySettings
}

// Total is quantity times unit price.
func (m ManualInvoice) Total() decimal.Decimal {
	return m.UnitPrice.Mul(decimal.NewFromInt(m.Quantity))
}
