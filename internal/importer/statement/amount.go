package statement

import (
	"strings"

	"github.com/shopspring/decimal"
)

var amountNoise = strings.NewReplacer(
	"KSh", "",
	"KES", "",
	",", "",
	" ", "",
	"\u00a0", "",
)

// parseAmount reads amounts like "1,234.50", "-588.74" or "KSh 2,000".
// Accounting negatives such as "(40.00)" are accepted too.
func parseAmount(s string) (decimal.Decimal, error) {
	clean := amountNoise.Replace(strings.TrimSpace(s))

	negative := strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")")
	if negative {
		clean = strings.Trim(clean, "()")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, err
	}

	if negative {
		d = d.Neg()
	}

	return d.Round(2), nil
}
