package dto

import (
	"github.com/SscSPs/isp_bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportPeriodParams optionally narrows a report to one year-month.
type ReportPeriodParams struct {
	Period string `form:"period" binding:"omitempty,yearmonth"`
}

// MonthlyReportParams requires a year-month.
type MonthlyReportParams struct {
	Period string `form:"period" binding:"required,yearmonth"`
}

// SummaryResponse represents the income/expense summary report response
type SummaryResponse struct {
	Period          string                                   `json:"period,omitempty"`
	Income          decimal.Decimal                          `json:"income"`
	Expense         decimal.Decimal                          `json:"expense"`
	Profit          decimal.Decimal                          `json:"profit"`
	IncomeByMethod  map[domain.PaymentMethod]decimal.Decimal `json:"incomeByMethod"`
	ExpenseByMethod map[domain.PaymentMethod]decimal.Decimal `json:"expenseByMethod"`
}

// ToSummaryResponse converts a domain summary to a DTO response
func ToSummaryResponse(period string, s *domain.Summary) SummaryResponse {
	return SummaryResponse{
		Period:          period,
		Income:          s.Income,
		Expense:         s.Expense,
		Profit:          s.Profit,
		IncomeByMethod:  s.IncomeByMethod,
		ExpenseByMethod: s.ExpenseByMethod,
	}
}

// InvestorShareResponse is one investor's allocation of profit.
type InvestorShareResponse struct {
	InvestorID      string          `json:"investorId"`
	Name            string          `json:"name"`
	SharePercentage decimal.Decimal `json:"sharePercentage"`
	Amount          decimal.Decimal `json:"amount"`
}

func ToInvestorShareResponses(shares []domain.InvestorShare) []InvestorShareResponse {
	res := make([]InvestorShareResponse, len(shares))
	for i, s := range shares {
		res[i] = InvestorShareResponse{
			InvestorID:      s.Investor.ID,
			Name:            s.Investor.Name,
			SharePercentage: s.Investor.SharePercentage,
			Amount:          s.Amount,
		}
	}
	return res
}

// MonthlyReportResponse represents the monthly financial report response
type MonthlyReportResponse struct {
	Period       string                  `json:"period"`
	Summary      SummaryResponse         `json:"summary"`
	Shares       []InvestorShareResponse `json:"shares"`
	Transactions []TransactionResponse   `json:"transactions"`
}

// ToMonthlyReportResponse converts a domain monthly report to a DTO response
func ToMonthlyReportResponse(r *domain.MonthlyReport) MonthlyReportResponse {
	return MonthlyReportResponse{
		Period:       r.Period,
		Summary:      ToSummaryResponse(r.Period, &r.Summary),
		Shares:       ToInvestorShareResponses(r.Shares),
		Transactions: ToListTransactionResponse(r.Transactions),
	}
}

// ManualInvoiceRequest defines a free-form invoice.
type ManualInvoiceRequest struct {
	To          string          `json:"to" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Quantity    int64           `json:"quantity" binding:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"required,gt=0"`
	Date        string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
}
