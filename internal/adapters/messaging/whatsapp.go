package messaging

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/SscSPs/isp_bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/isp_bookkeeping_app/internal/core/domain"
	portssvc "github.com/SscSPs/isp_bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/isp_bookkeeping_app/internal/utils"
	"github.com/shopspring/decimal"
)

const defaultBaseURL = "https://wa.me/"

// WhatsAppLinkBuilder builds click-to-chat links with a pre-filled payment reminder.
type WhatsAppLinkBuilder struct {
	baseURL string
}

// NewWhatsAppLinkBuilder returns a builder targeting wa.me.
func NewWhatsAppLinkBuilder() *WhatsAppLinkBuilder {
	return &WhatsAppLinkBuilder{baseURL: defaultBaseURL}
}

var _ portssvc.ReminderLinkBuilder = (*WhatsAppLinkBuilder)(nil)

// ReminderLink returns https://wa.me/<phone>?text=<message>. A local number starting
// with 0 is rewritten to the 62 country code.
func (b *WhatsAppLinkBuilder) ReminderLink(customer domain.Customer, totalDue decimal.Decimal, settings domain.CompanySettings) (string, error) {
	phone := normalizePhone(customer.Phone)
	if phone == "" {
		return "", apperrors.NewAppError(apperrors.ErrValidation, "customer %s has no usable phone number", customer.ID)
	}

	text := url.QueryEscape(reminderMessage(customer, totalDue, settings))
	// wa.me renders '+' literally
	text = strings.ReplaceAll(text, "+", "%20")

	return b.baseURL + phone + "?text=" + text, nil
}

func reminderMessage(customer domain.Customer, totalDue decimal.Decimal, settings domain.CompanySettings) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Halo kak %s, ini adalah notifikasi tagihan internet bulan ini sebesar %s", customer.Name, utils.FormatRupiah(totalDue))
	fmt.Fprintf(&sb, " (jatuh tempo tanggal %d).", customer.DueDate)
	if settings.BankName != "" && settings.AccountNumber != "" {
		fmt.Fprintf(&sb, " Pembayaran dapat ditransfer ke %s %s", settings.BankName, settings.AccountNumber)
		if settings.AccountHolder != "" {
			fmt.Fprintf(&sb, " a.n %s", settings.AccountHolder)
		}
		sb.WriteString(".")
	}
	sb.WriteString(" Mohon segera melakukan pembayaran ya. Terima kasih!")
	if settings.Name != "" {
		fmt.Fprintf(&sb, " - %s", settings.Name)
	}
	return sb.String()
}

func normalizePhone(raw string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if strings.HasPrefix(digits, "0") {
		digits = "62" + digits[1:]
	}
	return digits
}
