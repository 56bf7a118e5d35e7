// Package report renders a date-ranged transaction list as a CSV download or a
// paginated PDF summary.
package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/savvy/internal/analytics"
	"github.com/MrJamesThe3rd/savvy/internal/transaction"
)

var (
	ErrInvalidRange  = errors.New("invalid report range")
	ErrInvalidFormat = errors.New("invalid report format")
)

type Range string

const (
	RangeAll     Range = "all"
	RangeMonth   Range = "month"
	RangeQuarter Range = "quarter"
	RangeYear    Range = "year"
)

var Ranges = []Range{RangeMonth, RangeQuarter, RangeYear, RangeAll}

func ParseRange(s string) (Range, error) {
	switch r := Range(s); r {
	case RangeAll, RangeMonth, RangeQuarter, RangeYear:
		return r, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidRange, s)
}

// Cutoff returns the earliest date kept by r. ok is false for RangeAll.
func (r Range) Cutoff(now time.Time) (cutoff time.Time, ok bool) {
	switch r {
	case RangeMonth:
		cutoff = now.AddDate(0, -1, 0)
	case RangeQuarter:
		cutoff = now.AddDate(0, -3, 0)
	case RangeYear:
		cutoff = now.AddDate(-1, 0, 0)
	default:
		return time.Time{}, false
	}

	return transaction.DateOnly(cutoff), true
}

// Label is the capitalised range shown in the PDF header.
func (r Range) Label() string {
	switch r {
	case RangeMonth:
		return "Month"
	case RangeQuarter:
		return "Quarter"
	case RangeYear:
		return "Year"
	default:
		return "All"
	}
}

type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatCSV, FormatPDF:
		return f, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
}

func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}

	return "text/csv; charset=utf-8"
}

// Report is a filtered snapshot of transactions with its totals. A report with
// no rows is valid and renders headers only.
type Report struct {
	Range        Range
	GeneratedAt  time.Time
	Transactions []*transaction.Transaction
	Totals       analytics.Totals
}

// New keeps the transactions dated on or after rng's cutoff, preserving order.
func New(txs []*transaction.Transaction, rng Range, now time.Time) *Report {
	kept := txs

	if cutoff, ok := rng.Cutoff(now); ok {
		kept = make([]*transaction.Transaction, 0, len(txs))

		for _, tx := range txs {
			if !tx.Date.Before(cutoff) {
				kept = append(kept, tx)
			}
		}
	}

	return &Report{
		Range:        rng,
		GeneratedAt:  now,
		Transactions: kept,
		Totals:       analytics.Summarize(kept),
	}
}

// Filename names the download, e.g. financial-data-month-2025-06-18.csv.
func (r *Report) Filename(f Format) string {
	date := r.GeneratedAt.Format(time.DateOnly)

	if f == FormatPDF {
		return fmt.Sprintf("financial-report-%s-%s.pdf", r.Range, date)
	}

	return fmt.Sprintf("financial-data-%s-%s.csv", r.Range, date)
}
