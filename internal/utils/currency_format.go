package utils

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatRupiah renders an amount the way Indonesian invoices print it: "Rp 1.500.000".
// Fractions are rounded to whole rupiah; negative amounts keep their sign.
func FormatRupiah(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	prefix := "Rp "
	if rounded.IsNegative() {
		prefix = "-Rp "
		rounded = rounded.Neg()
	}
	return prefix + idPrinter.Sprintf("%d", rounded.IntPart())
}
