package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/isp_bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/isp_bookkeeping_app/internal/dto"
	"github.com/SscSPs/isp_bookkeeping_app/internal/middleware"
	"github.com/SscSPs/isp_bookkeeping_app/internal/utils"
	"github.com/SscSPs/isp_bookkeeping_app/internal/utils/accounting"
	"github.com/gin-gonic/gin"
)

// customerHandler handles HTTP requests related to customers and their bills.
type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
	documentService portssvc.DocumentService
	posthogClient   *utils.PosthogClientWrapper
}

// RegisterCustomerRoutes registers routes related to customers.
func RegisterCustomerRoutes(
	rg *gin.RouterGroup,
	customerService portssvc.CustomerSvcFacade,
	documentService portssvc.DocumentService,
	posthogClient *utils.PosthogClientWrapper,
) {
	h := &customerHandler{
		customerService: customerService,
		documentService: documentService,
		posthogClient:   posthogClient,
	}

	customers := rg.Group("/customers")
	{
		customers.GET("", h.listCustomers)
		customers.POST("", h.createCustomer)
		customers.GET("/:id", h.getCustomer)
		customers.PUT("/:id", h.updateCustomer)
		customers.DELETE("/:id", h.deleteCustomer)
		customers.POST("/:id/settle", h.settlePayment)
		customers.GET("/:id/total-due", h.getTotalDue)
		customers.GET("/:id/reminder", h.getReminderLink)
		customers.GET("/:id/invoice.pdf", h.getInvoicePDF)
	}

	rg.POST("/billing/advance", h.advanceBillingCycle)
}

// listCustomers godoc
// @Summary List customers
// @Description Lists customers, optionally filtered by a name/phone search and status
// @Tags customers
// @Produce json
// @Param q query string false "Search by name (case-insensitive) or phone"
// @Param status query string false "paid or unpaid"
// @Success 200 {array} dto.CustomerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers [get]
func (h *customerHandler) listCustomers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListCustomersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid query parameters for ListCustomers", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	customers, err := h.customerService.ListCustomers(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "list customers")
		return
	}

	c.JSON(http.StatusOK, dto.ToListCustomerResponse(customers))
}

// createCustomer godoc
// @Summary Register a customer
// @Description Adds a subscriber. The id is generated when omitted and the annual balance defaults to twelve months of fees.
// @Tags customers
// @Accept json
// @Produce json
// @Param customer body dto.CreateCustomerRequest true "Customer details"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Customer id already in use"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers [post]
func (h *customerHandler) createCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCustomer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "create customer")
		return
	}

	logger.Info("Customer created", slog.String("customer_id", customer.ID))
	c.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

// getCustomer godoc
// @Summary Get a customer by ID
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} dto.CustomerResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers/{id} [get]
func (h *customerHandler) getCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("customer_id", c.Param("id")))

	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "retrieve customer")
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// updateCustomer godoc
// @Summary Update a customer
// @Description Replaces the editable fields of a customer. Omitted debt, balance and status are left unchanged.
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param customer body dto.UpdateCustomerRequest true "Customer details"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers/{id} [put]
func (h *customerHandler) updateCustomer(c *gin.Context) {
	customerID := c.Param("id")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("customer_id", customerID))

	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateCustomer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), customerID, req)
	if err != nil {
		respondServiceError(c, logger, err, "update customer")
		return
	}

	logger.Info("Customer updated")
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// deleteCustomer godoc
// @Summary Delete a customer
// @Description Removes the customer. Transactions that reference it are kept.
// @Tags customers
// @Param id path string true "Customer ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers/{id} [delete]
func (h *customerHandler) deleteCustomer(c *gin.Context) {
	customerID := c.Param("id")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("customer_id", customerID))

	if err := h.customerService.DeleteCustomer(c.Request.Context(), customerID); err != nil {
		respondServiceError(c, logger, err, "delete customer")
		return
	}

	logger.Info("Customer deleted")
	c.Status(http.StatusNoContent)
}

// settlePayment godoc
// @Summary Settle a customer's bill
// @Description Records an income transaction for the full amount due and marks the customer paid.
// @Tags billing
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param payment body dto.SettlePaymentRequest true "Payment method"
// @Success 200 {object} dto.SettlePaymentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers/{id}/settle [post]
func (h *customerHandler) settlePayment(c *gin.Context) {
	customerID := c.Param("id")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("customer_id", customerID))

	var req dto.SettlePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SettlePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	customer, tx, err := h.customerService.SettlePayment(c.Request.Context(), customerID, req.Method)
	if err != nil {
		respondServiceError(c, logger, err, "settle payment")
		return
	}

	logger.Info("Payment settled", slog.String("transaction_id", tx.ID), slog.String("amount", tx.Amount.String()))
	middleware.PosthogEvent(c, h.posthogClient, "bill_settled", map[string]any{
		"customer_id": customer.ID,
		"amount":      tx.Amount.InexactFloat64(),
		"method":      string(tx.Method),
	})

	c.JSON(http.StatusOK, dto.SettlePaymentResponse{
		Customer:    dto.ToCustomerResponse(customer),
		Transaction: dto.ToTransactionResponse(tx),
	})
}

// getTotalDue godoc
// @Summary Get what a customer owes
// @Description Monthly fee plus accumulated debt, regardless of status.
// @Tags billing
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} dto.TotalDueResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers/{id}/total-due [get]
func (h *customerHandler) getTotalDue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("customer_id", c.Param("id")))

	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "compute total due")
		return
	}

	c.JSON(http.StatusOK, dto.TotalDueResponse{
		CustomerID:      customer.ID,
		MonthlyFee:      customer.MonthlyFee,
		AccumulatedDebt: customer.AccumulatedDebt,
		TotalDue:        accounting.ComputeTotalDue(*customer),
	})
}

// getReminderLink godoc
// @Summary Build a payment reminder link
// @Description Returns a chat link with a pre-filled reminder message. Nothing is sent.
// @Tags billing
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} dto.ReminderLinkResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers/{id}/reminder [get]
func (h *customerHandler) getReminderLink(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("customer_id", c.Param("id")))

	link, err := h.customerService.ReminderLink(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "build reminder link")
		return
	}

	c.JSON(http.StatusOK, dto.ReminderLinkResponse{URL: link})
}

// getInvoicePDF godoc
// @Summary Download a customer's invoice
// @Tags documents
// @Produce application/pdf
// @Param id path string true "Customer ID"
// @Success 200 {file} file
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers/{id}/invoice.pdf [get]
func (h *customerHandler) getInvoicePDF(c *gin.Context) {
	customerID := c.Param("id")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("customer_id", customerID))

	var buf bytes.Buffer
	if err := h.documentService.CustomerInvoicePDF(c.Request.Context(), &buf, customerID); err != nil {
		respondServiceError(c, logger, err, "render invoice")
		return
	}

	sendPDF(c, fmt.Sprintf("Invoice_%s.pdf", customerID), &buf)
}

// advanceBillingCycle godoc
// @Summary Start the next billing period
// @Description Rolls every customer over: unpaid customers carry the current fee into their debt and all become unpaid.
// @Tags billing
// @Produce json
// @Success 200 {object} dto.AdvanceCycleResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /billing/advance [post]
func (h *customerHandler) advanceBillingCycle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	customers, err := h.customerService.AdvanceBillingCycle(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "advance billing cycle")
		return
	}

	logger.Info("Billing cycle advanced", slog.Int("customer_count", len(customers)))
	middleware.PosthogEvent(c, h.posthogClient, "billing_cycle_advanced", map[string]any{
		"customer_count": len(customers),
	})

	c.JSON(http.StatusOK, dto.AdvanceCycleResponse{
		Count:     len(customers),
		Customers: dto.ToListCustomerResponse(customers),
	})
}

func sendPDF(c *gin.Context, filename string, buf *bytes.Buffer) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
