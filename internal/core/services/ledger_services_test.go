package services_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/SscSPs/isp_bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/isp_bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/isp_bookkeeping_app/internal/core/ports/repositories"
	"github.com/SscSPs/isp_bookkeeping_app/internal/core/services"
	"github.com/SscSPs/isp_bookkeeping_app/internal/core/state"
	"github.com/SscSPs/isp_bookkeeping_app/internal/dto"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
)

// --- Transactions ---

func (s *ServicesTestSuite) TestCreateTransaction_Defaults() {
	tx, err := s.services.Transaction.CreateTransaction(s.ctx, dto.CreateTransactionRequest{
		Description: "Beli kabel LAN",
		Amount:      dec(85000),
		Type:        domain.Expense,
		Method:      domain.MethodCash,
	})
	s.Require().NoError(err)

	s.Equal("TX-1", tx.ID)
	s.Equal(testToday, tx.Date)
	s.Equal(domain.CategoryGeneral, tx.Category)
	s.Nil(tx.CustomerID)

	txs := s.reload().Transactions()
	s.Require().Len(txs, 4)
	s.Equal("TX-1", txs[0].ID)
}

func (s *ServicesTestSuite) TestCreateTransaction_Invalid() {
	_, err := s.services.Transaction.CreateTransaction(s.ctx, dto.CreateTransactionRequest{
		Description: "Nothing",
		Amount:      dec(0),
		Type:        domain.Income,
		Method:      domain.MethodTransfer,
	})
	s.True(errors.Is(err, apperrors.ErrValidation))
	s.Len(s.state.Transactions(), 3)
}

func (s *ServicesTestSuite) TestListTransactions_Filters() {
	ids := func(txs []domain.Transaction) []string {
		out := make([]string, len(txs))
		for i, tx := range txs {
			out[i] = tx.ID
		}
		return out
	}

	tests := []struct {
		name   string
		params dto.ListTransactionsParams
		want   []string
		total  int
	}{
		{name: "period", params: dto.ListTransactionsParams{Period: "2023-10", Limit: 50}, want: []string{"T001", "T002", "T003"}, total: 3},
		{name: "other period", params: dto.ListTransactionsParams{Period: "2023-11", Limit: 50}, want: []string{}, total: 0},
		{name: "type", params: dto.ListTransactionsParams{Type: domain.Expense, Limit: 50}, want: []string{"T002"}, total: 1},
		{name: "method", params: dto.ListTransactionsParams{Method: domain.MethodCash, Limit: 50}, want: []string{"T003"}, total: 1},
		{name: "customer", params: dto.ListTransactionsParams{CustomerID: "C002", Limit: 50}, want: []string{"T003"}, total: 1},
		{name: "search description", params: dto.ListTransactionsParams{Query: "MODAL", Limit: 50}, want: []string{"T001"}, total: 1},
		{name: "search amount", params: dto.ListTransactionsParams{Query: "750000", Limit: 50}, want: []string{"T002"}, total: 1},
		{name: "page", params: dto.ListTransactionsParams{Limit: 2, Offset: 1}, want: []string{"T002", "T003"}, total: 3},
		{name: "past the end", params: dto.ListTransactionsParams{Limit: 2, Offset: 5}, want: []string{}, total: 3},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			txs, total, err := s.services.Transaction.ListTransactions(s.ctx, tt.params)
			s.Require().NoError(err)
			s.Equal(tt.want, ids(txs))
			s.Equal(tt.total, total)
		})
	}
}

// --- Investors and settings ---

func (s *ServicesTestSuite) TestInvestors_AddAndRemove() {
	inv, err := s.services.Investor.AddInvestor(s.ctx, dto.CreateInvestorRequest{Name: "Investor C", SharePercentage: decPtr(60)})
	s.Require().NoError(err)
	s.Equal("INV-1", inv.ID)

	// shares are allowed to exceed 100 in total
	all, err := s.services.Investor.ListInvestors(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 3)

	s.Require().NoError(s.services.Investor.RemoveInvestor(s.ctx, "1"))
	persisted := s.reload().Investors()
	s.Require().Len(persisted, 2)
	s.Equal("2", persisted[0].ID)
	s.Equal("INV-1", persisted[1].ID)

	err = s.services.Investor.RemoveInvestor(s.ctx, "1")
	s.True(errors.Is(err, apperrors.ErrNotFound))
}

func (s *ServicesTestSuite) TestAddInvestor_OutOfRange() {
	_, err := s.services.Investor.AddInvestor(s.ctx, dto.CreateInvestorRequest{Name: "Greedy", SharePercentage: decPtr(120)})
	s.True(errors.Is(err, apperrors.ErrValidation))
}

func (s *ServicesTestSuite) TestSettings_SaveOverwrites() {
	saved, err := s.services.Settings.SaveSettings(s.ctx, dto.UpdateSettingsRequest{Name: "NET JAYA", BankName: "BRI"})
	s.Require().NoError(err)
	s.Equal("NET JAYA", saved.Name)
	s.Empty(saved.Address, "fields not sent are cleared")

	got, err := s.services.Settings.GetSettings(s.ctx)
	s.Require().NoError(err)
	s.Equal(*saved, *got)
	s.Equal("BRI", s.reload().Settings().BankName)
}

// --- Reporting ---

func (s *ServicesTestSuite) TestSummary_Seed() {
	summary, err := s.services.Reporting.Summary(s.ctx, "")
	s.Require().NoError(err)

	s.True(summary.Income.Equal(dec(5300000)), summary.Income.String())
	s.True(summary.Expense.Equal(dec(750000)))
	s.True(summary.Profit.Equal(dec(4550000)))
	s.True(summary.IncomeByMethod[domain.MethodTransfer].Equal(dec(5000000)))
	s.True(summary.IncomeByMethod[domain.MethodCash].Equal(dec(300000)))
	s.True(summary.ExpenseByMethod[domain.MethodTransfer].Equal(dec(750000)))
	s.True(summary.ExpenseByMethod[domain.MethodCash].IsZero())

	empty, err := s.services.Reporting.Summary(s.ctx, "2024-01")
	s.Require().NoError(err)
	s.True(empty.Profit.IsZero())
}

func (s *ServicesTestSuite) TestProfitShares_Seed() {
	shares, err := s.services.Reporting.ProfitShares(s.ctx, "2023-10")
	s.Require().NoError(err)
	s.Require().Len(shares, 2)
	s.True(shares[0].Amount.Equal(dec(1365000)), shares[0].Amount.String())
	s.True(shares[1].Amount.Equal(dec(910000)))
}

func (s *ServicesTestSuite) TestTimeSeries_Seed() {
	points, err := s.services.Reporting.TimeSeries(s.ctx, "")
	s.Require().NoError(err)
	s.Require().Len(points, 3)

	s.Equal("2023-10-01", points[0].Date)
	s.Equal("2023-10-10", points[2].Date)
	s.True(points[1].Transfer.Equal(dec(750000)), "expense counts toward its method")
	s.True(points[1].RunningBalance.Equal(dec(4250000)))
	s.True(points[2].RunningBalance.Equal(dec(4550000)))
}

func (s *ServicesTestSuite) TestMonthlyReport() {
	_, err := s.services.Reporting.MonthlyReport(s.ctx, "")
	s.True(errors.Is(err, apperrors.ErrValidation))

	report, err := s.services.Reporting.MonthlyReport(s.ctx, "2023-10")
	s.Require().NoError(err)
	s.Equal("2023-10", report.Period)
	s.Len(report.Transactions, 3)
	s.Len(report.Shares, 2)
	s.True(report.Summary.Profit.Equal(dec(4550000)))
}

// --- Documents ---

func (s *ServicesTestSuite) TestCustomerInvoicePDF() {
	var buf bytes.Buffer
	s.renderer.On("RenderCustomerInvoice", &buf, mock.MatchedBy(func(inv domain.CustomerInvoice) bool {
		return inv.Customer.ID == "C001" &&
			inv.BillingDate == testToday &&
			inv.TotalDue.Equal(dec(150000)) &&
			inv.Settings.Name == "DGN NETWORK"
	})).Return(nil).Once()

	s.Require().NoError(s.services.Document.CustomerInvoicePDF(s.ctx, &buf, "C001"))
}

func (s *ServicesTestSuite) TestCustomerInvoicePDF_NotFound() {
	err := s.services.Document.CustomerInvoicePDF(s.ctx, io.Discard, "C404")
	s.True(errors.Is(err, apperrors.ErrNotFound))
	s.renderer.AssertNotCalled(s.T(), "RenderCustomerInvoice", mock.Anything, mock.Anything)
}

func (s *ServicesTestSuite) TestMonthlyReportPDF() {
	s.renderer.On("RenderMonthlyReport", io.Discard,
		mock.MatchedBy(func(r domain.MonthlyReport) bool { return r.Period == "2023-10" && len(r.Transactions) == 3 }),
		domain.SeedSettings(),
	).Return(nil).Once()

	s.Require().NoError(s.services.Document.MonthlyReportPDF(s.ctx, io.Discard, "2023-10"))
}

func (s *ServicesTestSuite) TestManualInvoicePDF() {
	s.renderer.On("RenderManualInvoice", io.Discard, mock.MatchedBy(func(inv domain.ManualInvoice) bool {
		return inv.Date == testToday && inv.To == "PT Maju" && inv.Total().Equal(dec(750000))
	})).Return(nil).Once()

	err := s.services.Document.ManualInvoicePDF(s.ctx, io.Discard, dto.ManualInvoiceRequest{
		To:          " PT Maju ",
		Description: "Instalasi",
		Quantity:    3,
		UnitPrice:   dec(250000),
	})
	s.Require().NoError(err)
	// rendering never touches state
	s.Len(s.state.Transactions(), 3)
}

func (s *ServicesTestSuite) TestRendererError() {
	s.renderer.On("RenderCustomerInvoice", mock.Anything, mock.Anything).Return(errors.New("font missing")).Once()

	err := s.services.Document.CustomerInvoicePDF(s.ctx, io.Discard, "C002")
	s.Require().Error(err)
	s.Contains(err.Error(), "font missing")
}

// --- Auth ---

func (s *ServicesTestSuite) TestLogin() {
	token, expiresAt, err := s.services.Auth.Login(s.ctx, "admin", "s3cret")
	s.Require().NoError(err)
	s.Equal(testNow.Add(s.cfg.JWTExpiryDuration), expiresAt)

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithTimeFunc(func() time.Time { return testNow.Add(time.Minute) }))
	s.Require().NoError(err)
	s.Equal("admin", claims.Subject)
	s.Equal("isp-test", claims.Issuer)
}

func (s *ServicesTestSuite) TestLogin_Rejected() {
	_, _, err := s.services.Auth.Login(s.ctx, "admin", "wrong")
	s.True(errors.Is(err, apperrors.ErrUnauthorized))

	_, _, err = s.services.Auth.Login(s.ctx, "root", "s3cret")
	s.True(errors.Is(err, apperrors.ErrUnauthorized))
}

// --- Store failures ---

type MockStateRepository struct {
	mock.Mock
}

func (m *MockStateRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStateRepository) Set(ctx context.Context, key string, blob []byte) error {
	args := m.Called(ctx, key, blob)
	return args.Error(0)
}

func (m *MockStateRepository) Close(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

var _ portsrepo.StateRepositoryFacade = (*MockStateRepository)(nil)

func (s *ServicesTestSuite) TestSettlePayment_StoreFailureLeavesStateUntouched() {
	repo := new(MockStateRepository)
	repo.On("Get", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound)
	// seed write-backs succeed, every later write fails
	repo.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil).Times(len(portsrepo.StateKeys))
	repo.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))

	st, err := state.Load(s.ctx, repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.Require().NoError(err)
	customerSvc := services.NewCustomerService(st, s.links,
		services.WithClock(func() time.Time { return testNow }),
		services.WithIDGenerator(&sequentialIDs{}),
	)

	_, _, err = customerSvc.SettlePayment(s.ctx, "C001", domain.MethodTransfer)
	s.Require().Error(err)
	s.Contains(err.Error(), "disk full")
	s.False(errors.Is(err, apperrors.ErrNotFound))

	s.Equal(domain.StatusUnpaid, st.Customers()[0].Status)
	s.Len(st.Transactions(), 3)
}
