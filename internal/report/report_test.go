package report_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/savvy/internal/report"
	"github.com/MrJamesThe3rd/savvy/internal/transaction"
)

var now = time.Date(2025, 6, 18, 15, 4, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return transaction.DateOnly(now.AddDate(0, 0, -n))
}

func sample() []*transaction.Transaction {
	return []*transaction.Transaction{
		{Type: transaction.TypeIncome, Category: "Salary", Description: "June salary", Amount: decimal.NewFromInt(85000), Date: daysAgo(3)},
		{Type: transaction.TypeExpense, Category: "Food & Dining", Description: `He said "hi"`, Amount: decimal.RequireFromString("450.5"), Date: daysAgo(10)},
		{Type: transaction.TypeExpense, Category: "Travel", Description: "Mombasa, return", Amount: decimal.NewFromInt(6000), Date: daysAgo(40)},
		{Type: transaction.TypeExpense, Category: "Shopping", Description: "Shoes", Amount: decimal.NewFromInt(3000), Date: daysAgo(200)},
		{Type: transaction.TypeExpense, Category: "Other", Description: "Old", Amount: decimal.NewFromInt(10), Date: daysAgo(400)},
	}
}

func TestNew_Ranges(t *testing.T) {
	tests := []struct {
		rng  report.Range
		want int
	}{
		{report.RangeMonth, 2},
		{report.RangeQuarter, 3},
		{report.RangeYear, 4},
		{report.RangeAll, 5},
	}

	for _, tt := range tests {
		t.Run(string(tt.rng), func(t *testing.T) {
			rep := report.New(sample(), tt.rng, now)
			assert.Len(t, rep.Transactions, tt.want)
		})
	}
}

func TestNew_MonthRangeBoundaries(t *testing.T) {
	rep := report.New(sample(), report.RangeMonth, now)

	var descriptions []string
	for _, tx := range rep.Transactions {
		descriptions = append(descriptions, tx.Description)
	}

	assert.Contains(t, descriptions, `He said "hi"`)
	assert.NotContains(t, descriptions, "Mombasa, return")

	edge := report.New([]*transaction.Transaction{
		{Type: transaction.TypeExpense, Amount: decimal.NewFromInt(1), Date: transaction.DateOnly(now.AddDate(0, -1, 0))},
	}, report.RangeMonth, now)
	assert.Len(t, edge.Transactions, 1, "cutoff day is inclusive")
}

func TestNew_Totals(t *testing.T) {
	rep := report.New(sample(), report.RangeMonth, now)

	assert.True(t, rep.Totals.Income.Equal(decimal.NewFromInt(85000)))
	assert.True(t, rep.Totals.Expenses.Equal(decimal.RequireFromString("450.5")))
	assert.True(t, rep.Totals.Balance.Equal(decimal.RequireFromString("84549.5")))
}

func TestWriteCSV(t *testing.T) {
	rep := report.New(sample(), report.RangeAll, now)

	var buf bytes.Buffer
	require.NoError(t, rep.WriteCSV(&buf))

	assert.True(t, strings.HasPrefix(buf.String(), "Date,Type,Category,Description,Amount\n"))
	assert.Contains(t, buf.String(), `"He said ""hi"""`)
	assert.Contains(t, buf.String(), `"Mombasa, return"`)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(rep.Transactions)+1)

	assert.Equal(t, []string{daysAgo(10).Format(time.DateOnly), "expense", "Food & Dining", `He said "hi"`, "450.50"}, records[2])
}

func TestWriteCSV_Empty(t *testing.T) {
	rep := report.New(nil, report.RangeMonth, now)

	var buf bytes.Buffer
	require.NoError(t, rep.WriteCSV(&buf))
	assert.Equal(t, "Date,Type,Category,Description,Amount\n", buf.String())
}

func TestWritePDF(t *testing.T) {
	tests := []struct {
		name string
		txs  []*transaction.Transaction
	}{
		{name: "Empty"},
		{name: "Sample", txs: sample()},
		{name: "ManyPages", txs: func() []*transaction.Transaction {
			var out []*transaction.Transaction
			for i := range 150 {
				out = append(out, &transaction.Transaction{
					Type:        transaction.TypeExpense,
					Category:    "Food & Dining",
					Description: strings.Repeat("very long description ", 5),
					Amount:      decimal.NewFromInt(int64(i)),
					Date:        daysAgo(i % 20),
				})
			}
			return out
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := report.New(tt.txs, report.RangeAll, now)

			var buf bytes.Buffer
			require.NoError(t, rep.WritePDF(&buf))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
		})
	}
}

func TestFilename(t *testing.T) {
	rep := report.New(nil, report.RangeQuarter, now)

	assert.Equal(t, "financial-data-quarter-2025-06-18.csv", rep.Filename(report.FormatCSV))
	assert.Equal(t, "financial-report-quarter-2025-06-18.pdf", rep.Filename(report.FormatPDF))
}

func TestParse(t *testing.T) {
	rng, err := report.ParseRange("year")
	require.NoError(t, err)
	assert.Equal(t, report.RangeYear, rng)

	_, err = report.ParseRange("decade")
	assert.ErrorIs(t, err, report.ErrInvalidRange)

	f, err := report.ParseFormat("pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", f.ContentType())

	_, err = report.ParseFormat("xlsx")
	assert.ErrorIs(t, err, report.ErrInvalidFormat)
}
