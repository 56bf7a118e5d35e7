package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/savvy/internal/transaction"
)

// RecentDays is the trailing window of the dashboard's spending breakdown.
const RecentDays = 30

type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}

// RecentSince returns the start of the trailing RecentDays window ending at now.
func RecentSince(now time.Time) time.Time {
	return now.AddDate(0, 0, -RecentDays)
}

// CategoryBreakdown sums expenses per category, largest first. A zero since
// includes every expense; otherwise only those dated on or after since.
func CategoryBreakdown(txs []*transaction.Transaction, since time.Time) []CategoryAmount {
	sums := make(map[string]decimal.Decimal)

	var from time.Time
	if !since.IsZero() {
		from = transaction.DateOnly(since)
	}

	for _, tx := range txs {
		if tx.Type != transaction.TypeExpense {
			continue
		}

		if !from.IsZero() && tx.Date.Before(from) {
			continue
		}

		sums[tx.Category] = sums[tx.Category].Add(tx.Amount)
	}

	out := make([]CategoryAmount, 0, len(sums))
	for category, amount := range sums {
		out = append(out, CategoryAmount{Category: category, Amount: amount})
	}

	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}

		return out[i].Category < out[j].Category
	})

	return out
}
