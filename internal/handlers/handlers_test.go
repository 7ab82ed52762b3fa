package handlers_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/isp_bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/isp_bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/isp_bookkeeping_app/internal/dto"
	"github.com/SscSPs/isp_bookkeeping_app/internal/handlers"
	"github.com/SscSPs/isp_bookkeeping_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/ulule/limiter/v3"
)

// --- Test Suite ---
type HandlersTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockCustomers    *MockCustomerService
	mockTransactions *MockTransactionService
	mockReporting    *MockReportingService
	mockDocuments    *MockDocumentService
	jwtSecret        string
}

func (suite *HandlersTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterValidators())
}

// generateTestToken creates a signed JWT for the given subject.
func (suite *HandlersTestSuite) generateTestToken(subject string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "isp-test",
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlersTestSuite) SetupTest() {
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockCustomers = new(MockCustomerService)
	suite.mockTransactions = new(MockTransactionService)
	suite.mockReporting = new(MockReportingService)
	suite.mockDocuments = new(MockDocumentService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterCustomerRoutes(v1, suite.mockCustomers, suite.mockDocuments, nil)
	handlers.RegisterTransactionRoutes(v1, suite.mockTransactions)
	handlers.RegisterReportingRoutes(v1, suite.mockReporting, suite.mockDocuments)
	handlers.RegisterInvoiceRoutes(v1, suite.mockDocuments)
}

func (suite *HandlersTestSuite) TearDownTest() {
	suite.mockCustomers.AssertExpectations(suite.T())
	suite.mockTransactions.AssertExpectations(suite.T())
	suite.mockReporting.AssertExpectations(suite.T())
	suite.mockDocuments.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) do(method, url, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, url, nil)
	} else {
		req = httptest.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("admin"))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) errorBody(w *httptest.ResponseRecorder) string {
	var body handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func testCustomer() *domain.Customer {
	return &domain.Customer{
		ID:              "C001",
		Name:            "Budi Santoso",
		Phone:           "628123456789",
		Type:            domain.SubscriptionPPPoE,
		DueDate:         5,
		MonthlyFee:      decimal.NewFromInt(150000),
		AccumulatedDebt: decimal.NewFromInt(150000),
		Status:          domain.StatusUnpaid,
	}
}

// --- Auth ---

func (suite *HandlersTestSuite) TestMissingToken() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("Authorization header required", suite.errorBody(w))
	suite.mockCustomers.AssertNotCalled(suite.T(), "ListCustomers", mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestExpiredToken() {
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("Token has expired", suite.errorBody(w))
}

// --- Customers ---

func (suite *HandlersTestSuite) TestListCustomers_WithTotalDue() {
	suite.mockCustomers.On("ListCustomers", mock.Anything, dto.ListCustomersParams{Query: "budi", Status: domain.StatusUnpaid}).
		Return([]domain.Customer{*testCustomer()}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/customers?q=budi&status=unpaid", "")
	suite.Equal(http.StatusOK, w.Code)

	var body []dto.CustomerResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().Len(body, 1)
	suite.Equal("C001", body[0].ID)
	suite.True(body[0].TotalDue.Equal(decimal.NewFromInt(300000)), body[0].TotalDue.String())
}

func (suite *HandlersTestSuite) TestListCustomers_BadStatus() {
	w := suite.do(http.MethodGet, "/api/v1/customers?status=overdue", "")
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestCreateCustomer() {
	suite.mockCustomers.On("CreateCustomer", mock.Anything, mock.MatchedBy(func(req dto.CreateCustomerRequest) bool {
		return req.Name == "Siti" && req.MonthlyFee != nil && req.MonthlyFee.Equal(decimal.NewFromInt(200000)) && req.RemainingAnnualBalance == nil
	})).Return(&domain.Customer{ID: "C-9", Name: "Siti", Status: domain.StatusUnpaid}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/customers",
		`{"name":"Siti","phone":"0812","type":"Static","dueDate":20,"monthlyFee":"200000"}`)
	suite.Equal(http.StatusCreated, w.Code)

	var body dto.CustomerResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("C-9", body.ID)
}

func (suite *HandlersTestSuite) TestCreateCustomer_ZeroFeeAllowed() {
	suite.mockCustomers.On("CreateCustomer", mock.Anything, mock.Anything).
		Return(&domain.Customer{ID: "C-10", Name: "Free"}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/customers",
		`{"name":"Free","phone":"0812","type":"Hotspot","dueDate":1,"monthlyFee":0}`)
	suite.Equal(http.StatusCreated, w.Code)
}

func (suite *HandlersTestSuite) TestCreateCustomer_ValidationErrors() {
	tests := []struct {
		name string
		body string
	}{
		{"unknown type", `{"name":"A","phone":"1","type":"Fiber","dueDate":1,"monthlyFee":1}`},
		{"negative fee", `{"name":"A","phone":"1","type":"PPPoE","dueDate":1,"monthlyFee":-5}`},
		{"missing fee", `{"name":"A","phone":"1","type":"PPPoE","dueDate":1}`},
		{"due date out of range", `{"name":"A","phone":"1","type":"PPPoE","dueDate":32,"monthlyFee":1}`},
		{"malformed", `{"name":`},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.do(http.MethodPost, "/api/v1/customers", tt.body)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.mockCustomers.AssertNotCalled(suite.T(), "CreateCustomer", mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestCreateCustomer_Duplicate() {
	suite.mockCustomers.On("CreateCustomer", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewAppError(apperrors.ErrDuplicate, "customer id C001 already exists")).Once()

	w := suite.do(http.MethodPost, "/api/v1/customers",
		`{"id":"C001","name":"A","phone":"1","type":"PPPoE","dueDate":1,"monthlyFee":1}`)
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlersTestSuite) TestGetCustomer_NotFound() {
	suite.mockCustomers.On("GetCustomerByID", mock.Anything, "C404").
		Return(nil, apperrors.NewAppError(apperrors.ErrNotFound, "customer C404")).Once()

	w := suite.do(http.MethodGet, "/api/v1/customers/C404", "")
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestTotalDue() {
	suite.mockCustomers.On("GetCustomerByID", mock.Anything, "C001").Return(testCustomer(), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/customers/C001/total-due", "")
	suite.Equal(http.StatusOK, w.Code)

	var body dto.TotalDueResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.True(body.TotalDue.Equal(decimal.NewFromInt(300000)))
	suite.True(body.AccumulatedDebt.Equal(decimal.NewFromInt(150000)))
}

func (suite *HandlersTestSuite) TestDeleteCustomer() {
	suite.mockCustomers.On("DeleteCustomer", mock.Anything, "C001").Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/customers/C001", "")
	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlersTestSuite) TestReminderLink() {
	suite.mockCustomers.On("ReminderLink", mock.Anything, "C001").Return("https://wa.me/628123456789?text=Halo", nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/customers/C001/reminder", "")
	suite.Equal(http.StatusOK, w.Code)

	var body dto.ReminderLinkResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("https://wa.me/628123456789?text=Halo", body.URL)
}

// --- Billing ---

func (suite *HandlersTestSuite) TestSettlePayment() {
	paid := testCustomer()
	paid.Status = domain.StatusPaid
	paid.AccumulatedDebt = decimal.Zero
	customerID := "C001"
	tx := &domain.Transaction{
		ID:         "T-1",
		Date:       "2023-10-15",
		Amount:     decimal.NewFromInt(300000),
		Type:       domain.Income,
		Method:     domain.MethodCash,
		Category:   domain.CategoryBillPayment,
		CustomerID: &customerID,
	}
	suite.mockCustomers.On("SettlePayment", mock.Anything, "C001", domain.MethodCash).Return(paid, tx, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/customers/C001/settle", `{"method":"Cash"}`)
	suite.Equal(http.StatusOK, w.Code)

	var body dto.SettlePaymentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(domain.StatusPaid, body.Customer.Status)
	suite.Equal("T-1", body.Transaction.ID)
	suite.True(body.Transaction.Amount.Equal(decimal.NewFromInt(300000)))
}

func (suite *HandlersTestSuite) TestSettlePayment_UnknownMethod() {
	w := suite.do(http.MethodPost, "/api/v1/customers/C001/settle", `{"method":"Cheque"}`)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockCustomers.AssertNotCalled(suite.T(), "SettlePayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestSettlePayment_StoreFailureHidesDetails() {
	suite.mockCustomers.On("SettlePayment", mock.Anything, "C001", domain.MethodTransfer).
		Return(nil, nil, errors.New("failed to persist customers: disk full")).Once()

	w := suite.do(http.MethodPost, "/api/v1/customers/C001/settle", `{"method":"Transfer"}`)
	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal("Failed to settle payment", suite.errorBody(w))
}

func (suite *HandlersTestSuite) TestAdvanceBillingCycle() {
	suite.mockCustomers.On("AdvanceBillingCycle", mock.Anything).
		Return([]domain.Customer{*testCustomer(), {ID: "C002", Status: domain.StatusUnpaid}}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/billing/advance", "")
	suite.Equal(http.StatusOK, w.Code)

	var body dto.AdvanceCycleResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(2, body.Count)
	suite.Len(body.Customers, 2)
}

// --- Transactions ---

func (suite *HandlersTestSuite) TestListTransactions_DefaultPage() {
	suite.mockTransactions.On("ListTransactions", mock.Anything, mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
		return p.Limit == 50 && p.Offset == 0 && p.Method == domain.MethodCash
	})).Return([]domain.Transaction{{ID: "T003", Amount: decimal.NewFromInt(300000)}}, 7, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions?method=Cash", "")
	suite.Equal(http.StatusOK, w.Code)

	var body dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(7, body.Total)
	suite.Equal(50, body.Limit)
	suite.Require().Len(body.Transactions, 1)
	suite.Equal("T003", body.Transactions[0].ID)
}

func (suite *HandlersTestSuite) TestListTransactions_BadQuery() {
	for _, q := range []string{"method=Tunai", "type=Refund", "limit=501", "offset=-1"} {
		w := suite.do(http.MethodGet, "/api/v1/transactions?"+q, "")
		suite.Equal(http.StatusBadRequest, w.Code, q)
	}
}

func (suite *HandlersTestSuite) TestCreateTransaction() {
	suite.mockTransactions.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(req dto.CreateTransactionRequest) bool {
		return req.Amount.Equal(decimal.RequireFromString("85000.50")) && req.Type == domain.Expense
	})).Return(&domain.Transaction{ID: "TX-1", Amount: decimal.RequireFromString("85000.50"), Type: domain.Expense}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions",
		`{"description":"Kabel","amount":"85000.50","type":"Expense","method":"Cash"}`)
	suite.Equal(http.StatusCreated, w.Code)
	suite.Contains(w.Body.String(), `"amount":"85000.5"`)
}

func (suite *HandlersTestSuite) TestCreateTransaction_NonPositiveAmount() {
	w := suite.do(http.MethodPost, "/api/v1/transactions",
		`{"description":"Kabel","amount":"-1","type":"Expense","method":"Cash"}`)
	suite.Equal(http.StatusBadRequest, w.Code)
}

// --- Reports and documents ---

func (suite *HandlersTestSuite) TestSummary_BadPeriod() {
	for _, period := range []string{"2023-13", "2023-1", "oct"} {
		w := suite.do(http.MethodGet, "/api/v1/reports/summary?period="+period, "")
		suite.Equal(http.StatusBadRequest, w.Code, period)
	}
	suite.mockReporting.AssertNotCalled(suite.T(), "Summary", mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestSummary() {
	suite.mockReporting.On("Summary", mock.Anything, "2023-10").Return(&domain.Summary{
		Income:  decimal.NewFromInt(5300000),
		Expense: decimal.NewFromInt(750000),
		Profit:  decimal.NewFromInt(4550000),
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/summary?period=2023-10", "")
	suite.Equal(http.StatusOK, w.Code)

	var body dto.SummaryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("2023-10", body.Period)
	suite.True(body.Profit.Equal(decimal.NewFromInt(4550000)))
}

func (suite *HandlersTestSuite) TestMonthlyReport_RequiresPeriod() {
	w := suite.do(http.MethodGet, "/api/v1/reports/monthly", "")
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/reports/monthly.pdf", "")
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestMonthlyReportPDF() {
	suite.mockDocuments.On("MonthlyReportPDF", mock.Anything, mock.Anything, "2023-10").Run(writePDF).Return(nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/monthly.pdf?period=2023-10", "")
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("application/pdf", w.Header().Get("Content-Type"))
	suite.Equal(`attachment; filename="Laporan_Keuangan_2023-10.pdf"`, w.Header().Get("Content-Disposition"))
	suite.True(strings.HasPrefix(w.Body.String(), "%PDF-"))
}

func (suite *HandlersTestSuite) TestCustomerInvoicePDF() {
	suite.mockDocuments.On("CustomerInvoicePDF", mock.Anything, mock.Anything, "C001").Run(writePDF).Return(nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/customers/C001/invoice.pdf", "")
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("application/pdf", w.Header().Get("Content-Type"))
	suite.Contains(w.Header().Get("Content-Disposition"), "Invoice_C001.pdf")
}

func (suite *HandlersTestSuite) TestCustomerInvoicePDF_NotFound() {
	suite.mockDocuments.On("CustomerInvoicePDF", mock.Anything, mock.Anything, "C404").
		Return(apperrors.NewAppError(apperrors.ErrNotFound, "customer C404")).Once()

	w := suite.do(http.MethodGet, "/api/v1/customers/C404/invoice.pdf", "")
	suite.Equal(http.StatusNotFound, w.Code)
	suite.NotEqual("application/pdf", w.Header().Get("Content-Type"))
}

func (suite *HandlersTestSuite) TestManualInvoicePDF() {
	suite.mockDocuments.On("ManualInvoicePDF", mock.Anything, mock.Anything, mock.MatchedBy(func(req dto.ManualInvoiceRequest) bool {
		return req.To == "PT Maju" && req.Quantity == 3
	})).Run(writePDF).Return(nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/invoices/manual.pdf",
		`{"to":"PT Maju","description":"Instalasi","quantity":3,"unitPrice":"250000"}`)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("application/pdf", w.Header().Get("Content-Type"))
}

func (suite *HandlersTestSuite) TestManualInvoicePDF_Invalid() {
	w := suite.do(http.MethodPost, "/api/v1/invoices/manual.pdf",
		`{"to":"PT Maju","description":"Instalasi","quantity":0,"unitPrice":"250000"}`)
	suite.Equal(http.StatusBadRequest, w.Code)
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

// --- Login ---

func newLoginRouter(authService *MockAuthService, rate limiter.Rate) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers.RegisterAuthRoutes(r.Group("/api/v1"), authService, rate)
	return r
}

func postLogin(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogin(t *testing.T) {
	authService := new(MockAuthService)
	expiresAt := time.Date(2023, 10, 15, 10, 30, 0, 0, time.UTC)
	authService.On("Login", mock.Anything, "admin", "s3cret").Return("signed-token", expiresAt, nil).Once()
	authService.On("Login", mock.Anything, "admin", "nope").
		Return("", time.Time{}, apperrors.NewAppError(apperrors.ErrUnauthorized, "invalid username or password")).Once()

	r := newLoginRouter(authService, limiter.Rate{Period: time.Minute, Limit: 10})

	w := postLogin(r, `{"username":"admin","password":"s3cret"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body dto.LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.AccessToken != "signed-token" || body.TokenType != "Bearer" || !body.ExpiresAt.Equal(expiresAt) {
		t.Errorf("unexpected login response %+v", body)
	}

	w = postLogin(r, `{"username":"admin","password":"nope"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}

	w = postLogin(r, `{"username":"admin"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing password, got %d", w.Code)
	}

	authService.AssertExpectations(t)
}

func TestLogin_RateLimited(t *testing.T) {
	authService := new(MockAuthService)
	authService.On("Login", mock.Anything, mock.Anything, mock.Anything).
		Return("", time.Time{}, apperrors.NewAppError(apperrors.ErrUnauthorized, "invalid username or password"))

	r := newLoginRouter(authService, limiter.Rate{Period: time.Minute, Limit: 2})

	for i := 1; i <= 2; i++ {
		w := postLogin(r, fmt.Sprintf(`{"username":"admin","password":"guess-%d"}`, i))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i, w.Code)
		}
	}

	w := postLogin(r, `{"username":"admin","password":"guess-3"}`)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after the limit, got %d", w.Code)
	}
	authService.AssertNumberOfCalls(t, "Login", 2)
}
