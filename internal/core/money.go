package core

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idrPrinter = message.NewPrinter(language.Indonesian)

// FormatIDR renders an amount as Indonesian rupiah with no fractional digits,
// e.g. "Rp 1.500.000.000". Negative amounts carry a leading minus.
func FormatIDR(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	return sign + "Rp " + idrPrinter.Sprintf("%d", rounded.IntPart())
}

// FormatPercent renders a provision rate such as 0.5 as "50%".
func FormatPercent(rate decimal.Decimal) string {
	return rate.Shift(2).Round(0).String() + "%"
}
