package services

import (
	portssvc "github.com/SscSPs/isp_bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/isp_bookkeeping_app/internal/core/state"
	"github.com/SscSPs/isp_bookkeeping_app/internal/platform/config"
)

// NewServiceContainer wires every service over one state container.
func NewServiceContainer(cfg *config.Config, st *state.Container, renderer portssvc.DocumentRenderer, links portssvc.ReminderLinkBuilder, options ...ServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Customer = NewCustomerService(st, links, options...)
	container.Transaction = NewTransactionService(st, options...)
	container.Investor = NewInvestorService(st, options...)
	container.Settings = NewSettingsService(st, options...)
	container.Reporting = NewReportingService(st, options...)
	container.Document = NewDocumentService(st, container.Reporting, renderer, options...)
	container.Auth = NewAuthService(cfg, options...)

	return container
}
