package accounting

import (
	"sort"
	"strings"

	"github.com/SscSPs/isp_bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

func newMethodTotals() map[domain.PaymentMethod]decimal.Decimal {
	totals := make(map[domain.PaymentMethod]decimal.Decimal, len(domain.PaymentMethods))
	for _, m := range domain.PaymentMethods {
		totals[m] = decimal.Zero
	}
	return totals
}

// Summarize totals income and expense, each also split by payment method.
// Both method maps always carry every known method, zero if unused.
func Summarize(txs []domain.Transaction) domain.Summary {
	s := domain.Summary{
		Income:          decimal.Zero,
		Expense:         decimal.Zero,
		IncomeByMethod:  newMethodTotals(),
		ExpenseByMethod: newMethodTotals(),
	}

	for _, tx := range txs {
		switch tx.Type {
		case domain.Income:
			s.Income = s.Income.Add(tx.Amount)
			s.IncomeByMethod[tx.Method] = s.IncomeByMethod[tx.Method].Add(tx.Amount)
		case domain.Expense:
			s.Expense = s.Expense.Add(tx.Amount)
			s.ExpenseByMethod[tx.Method] = s.ExpenseByMethod[tx.Method].Add(tx.Amount)
		}
	}

	s.Profit = s.Income.Sub(s.Expense)
	return s
}

// TimeSeries groups transactions by their literal date and walks the groups in
// ascending order, accumulating income minus expense into RunningBalance.
// Cash and Transfer hold gross movement through that method regardless of direction.
func TimeSeries(txs []domain.Transaction) []domain.TimeSeriesPoint {
	groups := make(map[string]*domain.TimeSeriesPoint)
	for _, tx := range txs {
		p, ok := groups[tx.Date]
		if !ok {
			p = &domain.TimeSeriesPoint{
				Date:     tx.Date,
				Income:   decimal.Zero,
				Expense:  decimal.Zero,
				Cash:     decimal.Zero,
				Transfer: decimal.Zero,
			}
			groups[tx.Date] = p
		}

		switch tx.Type {
		case domain.Income:
			p.Income = p.Income.Add(tx.Amount)
		case domain.Expense:
			p.Expense = p.Expense.Add(tx.Amount)
		}

		switch tx.Method {
		case domain.MethodCash:
			p.Cash = p.Cash.Add(tx.Amount)
		case domain.MethodTransfer:
			p.Transfer = p.Transfer.Add(tx.Amount)
		}
	}

	dates := make([]string, 0, len(groups))
	for d := range groups {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	points := make([]domain.TimeSeriesPoint, 0, len(dates))
	balance := decimal.Zero
	for _, d := range dates {
		p := groups[d]
		balance = balance.Add(p.Income).Sub(p.Expense)
		p.RunningBalance = balance
		points = append(points, *p)
	}
	return points
}

// ProfitShare allocates profit to each investor by percentage.
// Percentages are not required to sum to 100 and negative profit gives negative shares.
func ProfitShare(profit decimal.Decimal, investors []domain.Investor) []domain.InvestorShare {
	shares := make([]domain.InvestorShare, 0, len(investors))
	for _, inv := range investors {
		shares = append(shares, domain.InvestorShare{
			Investor: inv,
			Amount:   profit.Mul(inv.SharePercentage).Div(hundred),
		})
	}
	return shares
}

// PeriodFilter keeps transactions whose date string starts with yearMonth (e.g. "2023-10").
// This is literal prefix matching, not a calendar range.
func PeriodFilter(txs []domain.Transaction, yearMonth string) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		if strings.HasPrefix(tx.Date, yearMonth) {
			out = append(out, tx)
		}
	}
	return out
}

// MonthlyReport builds the data behind the printed monthly financial report.
func MonthlyReport(txs []domain.Transaction, period string, investors []domain.Investor) domain.MonthlyReport {
	inPeriod := PeriodFilter(txs, period)
	summary := Summarize(inPeriod)
	return domain.MonthlyReport{
		Period:       period,
		Summary:      summary,
		Shares:       ProfitShare(summary.Profit, investors),
		Transactions: inPeriod,
	}
}
