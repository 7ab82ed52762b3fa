package services

import (
	"context"

	"github.com/SscSPs/isp_bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/isp_bookkeeping_app/internal/dto"
)

// InvestorSvcFacade manages the investors that share profit
type InvestorSvcFacade interface {
	ListInvestors(ctx context.Context) ([]domain.Investor, error)
	AddInvestor(ctx context.Context, req dto.CreateInvestorRequest) (*domain.Investor, error)
	RemoveInvestor(ctx context.Context, investorID string) error
}

// SettingsSvcFacade reads and overwrites the company settings
type SettingsSvcFacade interface {
	GetSettings(ctx context.Context) (*domain.CompanySettings, error)
	SaveSettings(ctx context.Context, req dto.UpdateSettingsRequest) (*domain.CompanySettings, error)
}
