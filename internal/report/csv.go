package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

var csvHeader = []string{"Date", "Type", "Category", "Description", "Amount"}

// WriteCSV writes one row per transaction under a fixed header. Quoting follows
// RFC 4180, so descriptions may carry commas, quotes and newlines.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("report: writing csv header: %w", err)
	}

	for _, tx := range r.Transactions {
		record := []string{
			tx.Date.Format(time.DateOnly),
			string(tx.Type),
			tx.Category,
			tx.Description,
			tx.Amount.StringFixed(2),
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("report: writing csv row: %w", err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("report: flushing csv: %w", err)
	}

	return nil
}
