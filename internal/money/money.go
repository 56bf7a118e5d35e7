// Package money formats amounts for display.
package money

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the label used until SetCurrency is called.
const DefaultCurrency = "KSh"

var currency = DefaultCurrency

// SetCurrency replaces the label prefixed to every displayed amount. It is
// meant to be called once at startup; an empty label keeps the current one.
func SetCurrency(label string) {
	if label = strings.TrimSpace(label); label != "" {
		currency = label
	}
}

// Currency returns the label prefixed to every displayed amount.
func Currency() string {
	return currency
}

// Format renders d with grouped thousands and two decimals, e.g. "KSh 1,234.50".
func Format(d decimal.Decimal) string {
	return currency + " " + Plain(d)
}

// Plain renders d like Format but without the currency label.
func Plain(d decimal.Decimal) string {
	r := d.Round(2)
	abs := r.Abs()

	fixed := abs.StringFixed(2)
	whole := humanize.BigComma(abs.Truncate(0).BigInt())
	out := whole + fixed[strings.IndexByte(fixed, '.'):]

	if r.IsNegative() {
		return "-" + out
	}

	return out
}

// Signed renders a signed amount with an explicit "+" or "-". Zero carries no
// sign.
func Signed(d decimal.Decimal) string {
	switch {
	case d.IsPositive():
		return "+" + Format(d)
	case d.IsNegative():
		return "-" + Format(d.Abs())
	}

	return Format(d)
}
