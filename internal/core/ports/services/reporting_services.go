package services

import (
	"context"
	"io"

	"github.com/SscSPs/isp_bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/isp_bookkeeping_app/internal/dto"
)

// ReportingService defines operations for generating financial reports.
// An empty period means all transactions.
type ReportingService interface {
	// Summary totals income and expense, split by payment method.
	Summary(ctx context.Context, period string) (*domain.Summary, error)

	// TimeSeries returns per-date totals with a running balance, oldest date first.
	TimeSeries(ctx context.Context, period string) ([]domain.TimeSeriesPoint, error)

	// ProfitShares allocates the period's profit to every investor.
	ProfitShares(ctx context.Context, period string) ([]domain.InvestorShare, error)

	// MonthlyReport gathers everything printed on the monthly report.
	MonthlyReport(ctx context.Context, period string) (*domain.MonthlyReport, error)
}

// DocumentService renders printable documents on request.
type DocumentService interface {
	CustomerInvoicePDF(ctx context.Context, w io.Writer, customerID string) error
	MonthlyReportPDF(ctx context.Context, w io.Writer, period string) error
	ManualInvoicePDF(ctx context.Context, w io.Writer, req dto.ManualInvoiceRequest) error
}

// DocumentRenderer lays out documents. Implementations must not touch application state.
type DocumentRenderer interface {
	RenderCustomerInvoice(w io.Writer, inv domain.CustomerInvoice) error
	RenderMonthlyReport(w io.Writer, report domain.MonthlyReport, settings domain.CompanySettings) error
	RenderManualInvoice(w io.Writer, inv domain.ManualInvoice) error
}
