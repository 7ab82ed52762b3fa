package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/isp_bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/isp_bookkeeping_app/internal/core/domain"
	portssvc "github.com/SscSPs/isp_bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/isp_bookkeeping_app/internal/core/state"
	"github.com/SscSPs/isp_bookkeeping_app/internal/dto"
)

type investorService struct {
	BaseService
	state *state.Container
}

func NewInvestorService(st *state.Container, options ...ServiceOption) portssvc.InvestorSvcFacade {
	return &investorService{BaseService: newBaseService(options), state: st}
}

var _ portssvc.InvestorSvcFacade = (*investorService)(nil)

func (s *investorService) ListInvestors(ctx context.Context) ([]domain.Investor, error) {
	return s.state.Investors(), nil
}

// AddInvestor appends an investor. Percentages across investors are not required to sum to 100.
func (s *investorService) AddInvestor(ctx context.Context, req dto.CreateInvestorRequest) (*domain.Investor, error) {
	inv := domain.Investor{
		ID:   s.IDs.NewID("INV"),
		Name: strings.TrimSpace(req.Name),
	}
	if req.SharePercentage != nil {
		inv.SharePercentage = *req.SharePercentage
	}
	if err := inv.Validate(); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrValidation, "%s", err.Error())
	}

	if _, err := s.state.UpdateInvestors(ctx, func(investors []domain.Investor) ([]domain.Investor, error) {
		return append(investors, inv), nil
	}); err != nil {
		s.LogError(ctx, err, "Failed to add investor", slog.String("investor_id", inv.ID))
		return nil, fmt.Errorf("failed to add investor: %w", err)
	}

	s.LogInfo(ctx, "Investor added", slog.String("investor_id", inv.ID), slog.String("share", inv.SharePercentage.String()))
	return &inv, nil
}

func (s *investorService) RemoveInvestor(ctx context.Context, investorID string) error {
	_, err := s.state.UpdateInvestors(ctx, func(investors []domain.Investor) ([]domain.Investor, error) {
		for i := range investors {
			if investors[i].ID == investorID {
				return append(investors[:i], investors[i+1:]...), nil
			}
		}
		return nil, apperrors.NewAppError(apperrors.ErrNotFound, "investor %s", investorID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to remove investor", slog.String("investor_id", investorID))
		return fmt.Errorf("failed to remove investor: %w", err)
	}
	return nil
}

type settingsService struct {
	BaseService
	state *state.Container
}

func NewSettingsService(st *state.Container, options ...ServiceOption) portssvc.SettingsSvcFacade {
	return &settingsService{BaseService: newBaseService(options), state: st}
}

var _ portssvc.SettingsSvcFacade = (*settingsService)(nil)

func (s *settingsService) GetSettings(ctx context.Context) (*domain.CompanySettings, error) {
	settings := s.state.Settings()
	return &settings, nil
}

// SaveSettings overwrites every field of the settings record.
func (s *settingsService) SaveSettings(ctx context.Context, req dto.UpdateSettingsRequest) (*domain.CompanySettings, error) {
	saved, err := s.state.UpdateSettings(ctx, func(domain.CompanySettings) (domain.CompanySettings, error) {
		return req.ToCompanySettings(), nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save settings")
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	s.LogInfo(ctx, "Settings saved", slog.String("company", saved.Name))
	return &saved, nil
}
