package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/isp_bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/isp_bookkeeping_app/internal/dto"
	"github.com/SscSPs/isp_bookkeeping_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type invoiceHandler struct {
	documentService portssvc.DocumentService
}

// RegisterInvoiceRoutes registers the free-form invoice route.
func RegisterInvoiceRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentService) {
	h := &invoiceHandler{documentService: documentService}

	rg.POST("/invoices/manual.pdf", h.createManualInvoice)
}

// createManualInvoice godoc
// @Summary Render a manual invoice
// @Description Lays out a one-line invoice for any recipient. Nothing is recorded.
// @Tags documents
// @Accept json
// @Produce application/pdf
// @Param invoice body dto.ManualInvoiceRequest true "Invoice details"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/manual.pdf [post]
func (h *invoiceHandler) createManualInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ManualInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ManualInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := h.documentService.ManualInvoicePDF(c.Request.Context(), &buf, req); err != nil {
		respondServiceError(c, logger, err, "render manual invoice")
		return
	}

	sendPDF(c, "Invoice_Manual.pdf", &buf)
}
