package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/SscSPs/isp_bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/isp_bookkeeping_app/internal/core/domain"
	portssvc "github.com/SscSPs/isp_bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/isp_bookkeeping_app/internal/core/state"
	"github.com/SscSPs/isp_bookkeeping_app/internal/dto"
	"github.com/SscSPs/isp_bookkeeping_app/internal/utils/accounting"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	state *state.Container
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(st *state.Container, options ...ServiceOption) portssvc.ReportingService {
	return &reportingService{BaseService: newBaseService(options), state: st}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

func (s *reportingService) transactionsFor(period string) []domain.Transaction {
	txs := s.state.Transactions()
	if period == "" {
		return txs
	}
	return accounting.PeriodFilter(txs, period)
}

func (s *reportingService) Summary(ctx context.Context, period string) (*domain.Summary, error) {
	summary := accounting.Summarize(s.transactionsFor(period))
	s.LogDebug(ctx, "Summary computed", slog.String("period", period), slog.String("profit", summary.Profit.String()))
	return &summary, nil
}

func (s *reportingService) TimeSeries(ctx context.Context, period string) ([]domain.TimeSeriesPoint, error) {
	return accounting.TimeSeries(s.transactionsFor(period)), nil
}

func (s *reportingService) ProfitShares(ctx context.Context, period string) ([]domain.InvestorShare, error) {
	summary := accounting.Summarize(s.transactionsFor(period))
	return accounting.ProfitShare(summary.Profit, s.state.Investors()), nil
}

func (s *reportingService) MonthlyReport(ctx context.Context, period string) (*domain.MonthlyReport, error) {
	if strings.TrimSpace(period) == "" {
		return nil, apperrors.NewAppError(apperrors.ErrValidation, "period is required")
	}
	report := accounting.MonthlyReport(s.state.Transactions(), period, s.state.Investors())
	s.LogInfo(ctx, "Monthly report generated",
		slog.String("period", period),
		slog.Int("transactions", len(report.Transactions)),
		slog.String("profit", report.Summary.Profit.String()))
	return &report, nil
}

// documentService renders documents from current state. It never mutates state.
type documentService struct {
	BaseService
	state     *state.Container
	reporting portssvc.ReportingService
	renderer  portssvc.DocumentRenderer
}

func NewDocumentService(st *state.Container, reporting portssvc.ReportingService, renderer portssvc.DocumentRenderer, options ...ServiceOption) portssvc.DocumentService {
	return &documentService{
		BaseService: newBaseService(options),
		state:       st,
		reporting:   reporting,
		renderer:    renderer,
	}
}

var _ portssvc.DocumentService = (*documentService)(nil)

func (s *documentService) CustomerInvoicePDF(ctx context.Context, w io.Writer, customerID string) error {
	customers := s.state.Customers()
	idx := domain.FindCustomer(customers, customerID)
	if idx < 0 {
		return apperrors.NewAppError(apperrors.ErrNotFound, "customer %s", customerID)
	}

	inv := domain.CustomerInvoice{
		Customer:    customers[idx],
		BillingDate: s.Today(),
		TotalDue:    accounting.ComputeTotalDue(customers[idx]),
		Settings:    s.state.Settings(),
	}
	if err := s.renderer.RenderCustomerInvoice(w, inv); err != nil {
		s.LogError(ctx, err, "Failed to render customer invoice", slog.String("customer_id", customerID))
		return fmt.Errorf("failed to render invoice: %w", err)
	}
	return nil
}

func (s *documentService) MonthlyReportPDF(ctx context.Context, w io.Writer, period string) error {
	report, err := s.reporting.MonthlyReport(ctx, period)
	if err != nil {
		return err
	}
	if err := s.renderer.RenderMonthlyReport(w, *report, s.state.Settings()); err != nil {
		s.LogError(ctx, err, "Failed to render monthly report", slog.String("period", period))
		return fmt.Errorf("failed to render monthly report: %w", err)
	}
	return nil
}

func (s *documentService) ManualInvoicePDF(ctx context.Context, w io.Writer, req dto.ManualInvoiceRequest) error {
	if req.Quantity < 1 || !req.UnitPrice.IsPositive() {
		return apperrors.NewAppError(apperrors.ErrValidation, "quantity and unit price must be positive")
	}
	date := req.Date
	if date == "" {
		date = s.Today()
	}

	inv := domain.ManualInvoice{
		Date:        date,
		To:          strings.TrimSpace(req.To),
		Description: strings.TrimSpace(req.Description),
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		Settings:    s.state.Settings(),
	}
	if err := s.renderer.RenderManualInvoice(w, inv); err != nil {
		s.LogError(ctx, err, "Failed to render manual invoice")
		return fmt.Errorf("failed to render manual invoice: %w", err)
	}
	return nil
}
