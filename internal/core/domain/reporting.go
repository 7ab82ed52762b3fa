package domain

import "github.com/shopspring/decimal"

// Summary is the income/expense breakdown of a set of transactions.
type Summary struct {
	Income          decimal.Decimal                   `json:"income"`
	Expense         decimal.Decimal                   `json:"expense"`
	Profit          decimal.Decimal                   `json:"profit"` // may be negative
	IncomeByMethod  map[PaymentMethod]decimal.Decimal `json:"incomeByMethod"`
	ExpenseByMethod map[PaymentMethod]decimal.Decimal `json:"expenseByMethod"`
}

// TimeSeriesPoint aggregates all transactions sharing one literal date.
type TimeSeriesPoint struct {
	Date           string          `json:"date"`
	Income         decimal.Decimal `json:"income"`
	Expense        decimal.Decimal `json:"expense"`
	Cash           decimal.Decimal `json:"cash"`     // gross cash movement, both directions
	Transfer       decimal.Decimal `json:"transfer"` // gross transfer movement, both directions
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// InvestorShare is one investor's cut of profit.
type InvestorShare struct {
	Investor Investor        `json:"investor"`
	Amount   decimal.Decimal `json:"amount"`
}

// MonthlyReport bundles everything printed on the monthly financial report.
type MonthlyReport struct {
	Period       string          `json:"period"`
	Summary      Summary         `json:"summary"`
	Shares       []InvestorShare `json:"shares"`
	Transactions []Transaction   `json:"transactions"`
}
