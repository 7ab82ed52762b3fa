package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/isp_bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/isp_bookkeeping_app/internal/dto"
	"github.com/SscSPs/isp_bookkeeping_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
	documentService  portssvc.DocumentService
}

// RegisterReportingRoutes registers the report routes. Every report takes an optional
// year-month period; the monthly report requires one.
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService, documentService portssvc.DocumentService) {
	h := &reportingHandler{
		reportingService: reportingService,
		documentService:  documentService,
	}

	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.getSummary)
		reports.GET("/time-series", h.getTimeSeries)
		reports.GET("/profit-share", h.getProfitShare)
		reports.GET("/monthly", h.getMonthlyReport)
		reports.GET("/monthly.pdf", h.getMonthlyReportPDF)
	}
}

// bindPeriod reads the optional period; it writes a 400 and returns false when invalid.
func bindPeriod(c *gin.Context, logger *slog.Logger) (string, bool) {
	var params dto.ReportPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid report period", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid period, expected YYYY-MM: " + err.Error()})
		return "", false
	}
	return params.Period, true
}

func bindRequiredPeriod(c *gin.Context, logger *slog.Logger) (string, bool) {
	var params dto.MonthlyReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid monthly report period", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "A period in YYYY-MM format is required: " + err.Error()})
		return "", false
	}
	return params.Period, true
}

// getSummary godoc
// @Summary Income and expense summary
// @Description Totals income and expense, split by payment method, over the period (all time when omitted)
// @Tags reports
// @Produce json
// @Param period query string false "Year-month, e.g. 2023-10"
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportingHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	period, ok := bindPeriod(c, logger)
	if !ok {
		return
	}

	summary, err := h.reportingService.Summary(c.Request.Context(), period)
	if err != nil {
		respondServiceError(c, logger, err, "compute summary")
		return
	}

	c.JSON(http.StatusOK, dto.ToSummaryResponse(period, summary))
}

// getTimeSeries godoc
// @Summary Daily cash flow
// @Description Per-date income, expense and method totals with a running balance, oldest first
// @Tags reports
// @Produce json
// @Param period query string false "Year-month, e.g. 2023-10"
// @Success 200 {array} domain.TimeSeriesPoint
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/time-series [get]
func (h *reportingHandler) getTimeSeries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	period, ok := bindPeriod(c, logger)
	if !ok {
		return
	}

	points, err := h.reportingService.TimeSeries(c.Request.Context(), period)
	if err != nil {
		respondServiceError(c, logger, err, "compute time series")
		return
	}

	c.JSON(http.StatusOK, points)
}

// getProfitShare godoc
// @Summary Investor profit shares
// @Description Each investor's percentage of the period's profit. Negative profit gives negative shares.
// @Tags reports
// @Produce json
// @Param period query string false "Year-month, e.g. 2023-10"
// @Success 200 {array} dto.InvestorShareResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/profit-share [get]
func (h *reportingHandler) getProfitShare(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	period, ok := bindPeriod(c, logger)
	if !ok {
		return
	}

	shares, err := h.reportingService.ProfitShares(c.Request.Context(), period)
	if err != nil {
		respondServiceError(c, logger, err, "compute profit shares")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvestorShareResponses(shares))
}

// getMonthlyReport godoc
// @Summary Monthly financial report
// @Tags reports
// @Produce json
// @Param period query string true "Year-month, e.g. 2023-10"
// @Success 200 {object} dto.MonthlyReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/monthly [get]
func (h *reportingHandler) getMonthlyReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	period, ok := bindRequiredPeriod(c, logger)
	if !ok {
		return
	}

	report, err := h.reportingService.MonthlyReport(c.Request.Context(), period)
	if err != nil {
		respondServiceError(c, logger, err, "build monthly report")
		return
	}

	c.JSON(http.StatusOK, dto.ToMonthlyReportResponse(report))
}

// getMonthlyReportPDF godoc
// @Summary Download the monthly financial report
// @Tags documents
// @Produce application/pdf
// @Param period query string true "Year-month, e.g. 2023-10"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/monthly.pdf [get]
func (h *reportingHandler) getMonthlyReportPDF(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	period, ok := bindRequiredPeriod(c, logger)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.documentService.MonthlyReportPDF(c.Request.Context(), &buf, period); err != nil {
		respondServiceError(c, logger, err, "render monthly report")
		return
	}

	sendPDF(c, fmt.Sprintf("Laporan_Keuangan_%s.pdf", period), &buf)
}
