package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Investor receives a fixed percentage of net profit.
type Investor struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	SharePercentage decimal.Decimal `json:"sharePercentage"` // 0-100; not required to sum to 100 across investors
}

var hundred = decimal.NewFromInt(100)

// Validate checks the investor's name and percentage range.
func (i Investor) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("investor name is required")
	}
	if i.SharePercentage.IsNegative() || i.SharePercentage.GreaterThan(hundred) {
		return fmt.Errorf("share percentage must be between 0 and 100, got %s", i.SharePercentage)
	}
	return nil
}

// CompanySettings is the singleton record printed on invoices and reports.
type CompanySettings struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	LogoURL       string `json:"logoUrl"`
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	AccountHolder string `json:"accountHolder"`
	DirectorName  string `json:"directorName"`
}
