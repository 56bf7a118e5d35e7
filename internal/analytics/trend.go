package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/savvy/internal/transaction"
)

const (
	MonthlyBuckets = 6
	WeeklyBuckets  = 8
)

type MonthBucket struct {
	Key      string // YYYY-MM
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Balance  decimal.Decimal
}

// Label renders the bucket as "Jan 25".
func (b MonthBucket) Label() string {
	t, err := time.Parse("2006-01", b.Key)
	if err != nil {
		return b.Key
	}

	return t.Format("Jan 06")
}

type WeekBucket struct {
	Key    string // YYYY-Wnn
	Amount decimal.Decimal
}

// Label renders the bucket as "2025 W07".
func (b WeekBucket) Label() string {
	return strings.Replace(b.Key, "-W", " W", 1)
}

// MonthlyTrend groups transactions by calendar month and returns the most
// recent MonthlyBuckets months that have data, oldest first.
func MonthlyTrend(txs []*transaction.Transaction) []MonthBucket {
	buckets := make(map[string]*MonthBucket)

	for _, tx := range txs {
		key := tx.Date.Format("2006-01")

		b, ok := buckets[key]
		if !ok {
			b = &MonthBucket{Key: key}
			buckets[key] = b
		}

		if tx.Type == transaction.TypeIncome {
			b.Income = b.Income.Add(tx.Amount)
		} else {
			b.Expenses = b.Expenses.Add(tx.Amount)
		}
	}

	out := make([]MonthBucket, 0, len(buckets))
	for _, b := range buckets {
		b.Balance = b.Income.Sub(b.Expenses)
		out = append(out, *b)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })

	return lastN(out, MonthlyBuckets)
}

// WeeklyTrend sums expenses per WeekKey and returns the most recent
// WeeklyBuckets weeks that have data, oldest first.
func WeeklyTrend(txs []*transaction.Transaction) []WeekBucket {
	sums := make(map[string]decimal.Decimal)

	for _, tx := range txs {
		if tx.Type != transaction.TypeExpense {
			continue
		}

		key := WeekKey(tx.Date)
		sums[key] = sums[key].Add(tx.Amount)
	}

	out := make([]WeekBucket, 0, len(sums))
	for key, amount := range sums {
		out = append(out, WeekBucket{Key: key, Amount: amount})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })

	return lastN(out, WeeklyBuckets)
}

// WeekKey buckets a date as "{year}-W{nn}" with
// nn = ceil((daysSinceJan1 + weekday(Jan 1) + 1) / 7).
// This is not ISO-8601 week numbering: weeks never roll over into the
// neighbouring year, and a year can reach week 54.
func WeekKey(date time.Time) string {
	jan1 := time.Date(date.Year(), time.January, 1, 0, 0, 0, 0, date.Location())
	pastDays := date.YearDay() - 1
	week := (pastDays + int(jan1.Weekday()) + 1 + 6) / 7

	return fmt.Sprintf("%d-W%02d", date.Year(), week)
}

func lastN[T any](s []T, n int) []T {
	if len(s) <= n {
		return s
	}

	return s[len(s)-n:]
}
