package services_test

import (
	"errors"

	"github.com/SscSPs/isp_bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/isp_bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/isp_bookkeeping_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func isCustomer(id string) interface{} {
	return mock.MatchedBy(func(c domain.Customer) bool { return c.ID == id })
}

func isAmount(v int64) interface{} {
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(v)) })
}

func (s *ServicesTestSuite) TestCreateCustomer_Defaults() {
	c, err := s.services.Customer.CreateCustomer(s.ctx, dto.CreateCustomerRequest{
		Name:       "  Siti Aminah ",
		Phone:      "628777",
		Type:       domain.SubscriptionStatic,
		DueDate:    20,
		MonthlyFee: decPtr(200000),
	})
	s.Require().NoError(err)

	s.Equal("C-1", c.ID)
	s.Equal("Siti Aminah", c.Name)
	s.Equal(domain.StatusUnpaid, c.Status)
	s.True(c.AccumulatedDebt.IsZero())
	s.True(c.RemainingAnnualBalance.Equal(dec(2400000)), c.RemainingAnnualBalance.String())
	s.Nil(c.LastPaymentDate)

	persisted := s.reload().Customers()
	s.Require().Len(persisted, 3)
	s.Equal("C-1", persisted[2].ID)
}

func (s *ServicesTestSuite) TestCreateCustomer_ExplicitIDAndBalance() {
	c, err := s.services.Customer.CreateCustomer(s.ctx, dto.CreateCustomerRequest{
		ID:                     "C100",
		Name:                   "Toko Sinar",
		Phone:                  "62811",
		Type:                   domain.SubscriptionMitraVoucher,
		DueDate:                1,
		MonthlyFee:             decPtr(50000),
		RemainingAnnualBalance: decPtr(0),
	})
	s.Require().NoError(err)
	s.Equal("C100", c.ID)
	s.True(c.RemainingAnnualBalance.IsZero())
}

func (s *ServicesTestSuite) TestCreateCustomer_DuplicateID() {
	_, err := s.services.Customer.CreateCustomer(s.ctx, dto.CreateCustomerRequest{
		ID: "C001", Name: "Dup", Phone: "1", Type: domain.SubscriptionPPPoE, DueDate: 1, MonthlyFee: decPtr(1),
	})
	s.Require().Error(err)
	s.True(errors.Is(err, apperrors.ErrDuplicate))
	s.Len(s.state.Customers(), 2)
}

func (s *ServicesTestSuite) TestCreateCustomer_Invalid() {
	_, err := s.services.Customer.CreateCustomer(s.ctx, dto.CreateCustomerRequest{
		Name: "Bad", Phone: "1", Type: "Fiber", DueDate: 1, MonthlyFee: decPtr(1),
	})
	s.Require().Error(err)
	s.True(errors.Is(err, apperrors.ErrValidation))
}

func (s *ServicesTestSuite) TestListCustomers_Filters() {
	all, err := s.services.Customer.ListCustomers(s.ctx, dto.ListCustomersParams{})
	s.Require().NoError(err)
	s.Len(all, 2)

	byName, err := s.services.Customer.ListCustomers(s.ctx, dto.ListCustomersParams{Query: "warung"})
	s.Require().NoError(err)
	s.Require().Len(byName, 1)
	s.Equal("C002", byName[0].ID)

	byPhone, err := s.services.Customer.ListCustomers(s.ctx, dto.ListCustomersParams{Query: "81234"})
	s.Require().NoError(err)
	s.Require().Len(byPhone, 1)
	s.Equal("C001", byPhone[0].ID)

	unpaid, err := s.services.Customer.ListCustomers(s.ctx, dto.ListCustomersParams{Status: domain.StatusUnpaid})
	s.Require().NoError(err)
	s.Require().Len(unpaid, 1)
	s.Equal("C001", unpaid[0].ID)
}

func (s *ServicesTestSuite) TestGetCustomer_NotFound() {
	_, err := s.services.Customer.GetCustomerByID(s.ctx, "C404")
	s.True(errors.Is(err, apperrors.ErrNotFound))

	_, err = s.services.Customer.GetTotalDue(s.ctx, "C404")
	s.True(errors.Is(err, apperrors.ErrNotFound))
}

func (s *ServicesTestSuite) TestUpdateCustomer() {
	status := domain.StatusPaid
	c, err := s.services.Customer.UpdateCustomer(s.ctx, "C001", dto.UpdateCustomerRequest{
		Name:            "Budi S.",
		Phone:           "628123456789",
		Type:            domain.SubscriptionStatic,
		DueDate:         7,
		MonthlyFee:      decPtr(175000),
		AccumulatedDebt: decPtr(25000),
		Status:          &status,
	})
	s.Require().NoError(err)
	s.Equal("Budi S.", c.Name)
	s.Equal(domain.SubscriptionStatic, c.Type)
	s.True(c.MonthlyFee.Equal(dec(175000)))
	s.True(c.AccumulatedDebt.Equal(dec(25000)))
	s.Equal(domain.StatusPaid, c.Status)
	// omitted fields keep their value
	s.True(c.RemainingAnnualBalance.IsZero())

	persisted := s.reload().Customers()
	s.Equal("Budi S.", persisted[0].Name)

	_, err = s.services.Customer.UpdateCustomer(s.ctx, "C404", dto.UpdateCustomerRequest{
		Name: "x", Phone: "1", Type: domain.SubscriptionPPPoE, DueDate: 1, MonthlyFee: decPtr(1),
	})
	s.True(errors.Is(err, apperrors.ErrNotFound))
}

func (s *ServicesTestSuite) TestDeleteCustomer_KeepsTransactions() {
	s.Require().NoError(s.services.Customer.DeleteCustomer(s.ctx, "C002"))

	customers := s.reload().Customers()
	s.Require().Len(customers, 1)
	s.Equal("C001", customers[0].ID)

	// T003 still references the deleted customer
	txs := s.state.Transactions()
	s.Len(txs, 3)
	s.Equal("C002", *txs[2].CustomerID)

	err := s.services.Customer.DeleteCustomer(s.ctx, "C002")
	s.True(errors.Is(err, apperrors.ErrNotFound))
}

func (s *ServicesTestSuite) TestSettlePayment_PaysFullTotalDue() {
	_, err := s.services.Customer.AdvanceBillingCycle(s.ctx)
	s.Require().NoError(err)

	due, err := s.services.Customer.GetTotalDue(s.ctx, "C001")
	s.Require().NoError(err)
	s.True(due.Equal(dec(300000)), due.String())

	customer, tx, err := s.services.Customer.SettlePayment(s.ctx, "C001", domain.MethodCash)
	s.Require().NoError(err)

	s.Equal(domain.StatusPaid, customer.Status)
	s.True(customer.AccumulatedDebt.IsZero())
	s.Require().NotNil(customer.LastPaymentDate)
	s.Equal(testToday, *customer.LastPaymentDate)
	s.True(customer.MonthlyFee.Equal(dec(150000)))

	s.Equal("T-1", tx.ID)
	s.Equal(testToday, tx.Date)
	s.True(tx.Amount.Equal(dec(300000)))
	s.Equal(domain.Income, tx.Type)
	s.Equal(domain.MethodCash, tx.Method)
	s.Equal(domain.CategoryBillPayment, tx.Category)
	s.Equal("Pembayaran Tagihan Internet - Budi Santoso (Cash)", tx.Description)
	s.Require().NotNil(tx.CustomerID)
	s.Equal("C001", *tx.CustomerID)

	reloaded := s.reload()
	txs := reloaded.Transactions()
	s.Require().Len(txs, 4)
	s.Equal("T-1", txs[0].ID, "settlement is prepended")
	s.Equal(domain.StatusPaid, reloaded.Customers()[0].Status)
}

func (s *ServicesTestSuite) TestSettlePayment_Errors() {
	_, _, err := s.services.Customer.SettlePayment(s.ctx, "C001", "Cheque")
	s.True(errors.Is(err, apperrors.ErrValidation))

	_, _, err = s.services.Customer.SettlePayment(s.ctx, "C404", domain.MethodTransfer)
	s.True(errors.Is(err, apperrors.ErrNotFound))

	s.Len(s.state.Transactions(), 3)
}

func (s *ServicesTestSuite) TestAdvanceBillingCycle_TwiceDoubleCounts() {
	first, err := s.services.Customer.AdvanceBillingCycle(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(first, 2)
	s.True(first[0].AccumulatedDebt.Equal(dec(150000)))
	s.True(first[1].AccumulatedDebt.IsZero(), "paid customer carries no new debt")
	for _, c := range first {
		s.Equal(domain.StatusUnpaid, c.Status)
	}

	second, err := s.services.Customer.AdvanceBillingCycle(s.ctx)
	s.Require().NoError(err)
	s.True(second[0].AccumulatedDebt.Equal(dec(300000)))
	s.True(second[1].AccumulatedDebt.Equal(dec(300000)))

	persisted := s.reload().Customers()
	s.True(persisted[0].AccumulatedDebt.Equal(dec(300000)))
}

func (s *ServicesTestSuite) TestReminderLink() {
	s.links.On("ReminderLink", isCustomer("C001"), isAmount(150000), domain.SeedSettings()).
		Return("https://wa.me/628123456789?text=hi", nil).Once()

	link, err := s.services.Customer.ReminderLink(s.ctx, "C001")
	s.Require().NoError(err)
	s.Equal("https://wa.me/628123456789?text=hi", link)
}

func (s *ServicesTestSuite) TestReminderLink_BuilderError() {
	s.links.On("ReminderLink", isCustomer("C001"), isAmount(150000), mock.Anything).
		Return("", apperrors.NewAppError(apperrors.ErrValidation, "no phone")).Once()

	_, err := s.services.Customer.ReminderLink(s.ctx, "C001")
	s.True(errors.Is(err, apperrors.ErrValidation))
}
