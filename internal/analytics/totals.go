// Package analytics derives dashboard figures from an in-memory transaction
// list. Every function is pure: the same slice and clock give the same result,
// and an empty slice yields zero values rather than an error.
package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/savvy/internal/transaction"
)

var hundred = decimal.NewFromInt(100)

type Totals struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Balance  decimal.Decimal
	// SavingsRate is Balance as a percentage of Income, 0 without income.
	SavingsRate float64
}

func Summarize(txs []*transaction.Transaction) Totals {
	var t Totals

	for _, tx := range txs {
		if tx.Type == transaction.TypeIncome {
			t.Income = t.Income.Add(tx.Amount)
			continue
		}

		t.Expenses = t.Expenses.Add(tx.Amount)
	}

	t.Balance = t.Income.Sub(t.Expenses)
	t.SavingsRate = percent(t.Balance, t.Income)

	return t
}

// percent returns part/whole*100, or 0 when whole is zero.
func percent(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}

	return part.Div(whole).Mul(hundred).InexactFloat64()
}
