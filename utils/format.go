package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney renders a USD amount with two decimals and thousands separators
func FormatMoney(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)

	whole, frac, _ := strings.Cut(d.Abs().StringFixed(2), ".")

	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// FormatPercent renders p with the given number of decimals followed by a percent sign
func FormatPercent(p float64, places int32) string {
	return decimal.NewFromFloat(p).StringFixed(places) + "%"
}
