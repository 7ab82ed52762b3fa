package dto

import (
	"github.com/SscSPs/isp_bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvestorRequest defines the data needed to add an investor.
type CreateInvestorRequest struct {
	Name            string           `json:"name" binding:"required"`
	SharePercentage *decimal.Decimal `json:"sharePercentage" binding:"required,min=0,max=100"`
}

// InvestorResponse defines the data returned for an investor.
type InvestorResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	SharePercentage decimal.Decimal `json:"sharePercentage"`
}

// ToInvestorResponse converts a domain.Investor to InvestorResponse DTO
func ToInvestorResponse(inv *domain.Investor) InvestorResponse {
	return InvestorResponse{ID: inv.ID, Name: inv.Name, SharePercentage: inv.SharePercentage}
}

func ToListInvestorResponse(investors []domain.Investor) []InvestorResponse {
	res := make([]InvestorResponse, len(investors))
	for i := range investors {
		res[i] = ToInvestorResponse(&investors[i])
	}
	return res
}

// UpdateSettingsRequest overwrites the company settings record.
type UpdateSettingsRequest struct {
	Name          string `json:"name" binding:"required"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	LogoURL       string `json:"logoUrl" binding:"omitempty,url"`
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	AccountHolder string `json:"accountHolder"`
	DirectorName  string `json:"directorName"`
}

// ToCompanySettings maps the request onto the domain record.
func (r UpdateSettingsRequest) ToCompanySettings() domain.CompanySettings {
	return domain.CompanySettings{
		Name:          r.Name,
		Address:       r.Address,
		Phone:         r.Phone,
		LogoURL:       r.LogoURL,
		BankName:      r.BankName,
		AccountNumber: r.AccountNumber,
		AccountHolder: r.AccountHolder,
		DirectorName:  r.DirectorName,
	}
}
