// Package statement turns CSV statements into transaction params. It knows
// savvy's own export and a few common mobile-money and bank layouts, and picks
// one by matching header names.
package statement

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/savvy/internal/encoding"
	"github.com/MrJamesThe3rd/savvy/internal/transaction"
)

var (
	ErrUnknownProfile = errors.New("unknown statement format")
	ErrNoHeader       = errors.New("no matching statement header found")
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse reads r using the named profile, or detects one when name is empty.
// Rows without a parseable date or with a zero amount are skipped.
func (p *Parser) Parse(r io.Reader, name string) ([]transaction.CreateParams, error) {
	var forced *Profile

	if name != "" {
		if forced = lookup(name); forced == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProfile, name)
		}
	}

	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read statement: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = enc.DetectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows, forced)
	if profile == nil {
		return nil, fmt.Errorf("%w: expected one of %s", ErrNoHeader, strings.Join(Names(), ", "))
	}

	return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for the first header that satisfies a profile.
// Statements often carry account details above the header.
func detectProfile(rows [][]string, forced *Profile) (*Profile, colIndex, int) {
	candidates := profiles
	if forced != nil {
		candidates = []Profile{*forced}
	}

	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[strings.ToLower(name)] = i
			}
		}

		for i := range candidates {
			if matchesProfile(&candidates[i], cols) {
				return &candidates[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[strings.ToLower(name)]; !ok {
			return false
		}
	}

	return true
}

func (c colIndex) get(name string) int {
	if name == "" {
		return -1
	}

	if i, ok := c[strings.ToLower(name)]; ok {
		return i
	}

	return -1
}

// headerRowNum is the 0-based index of the first data row, for error messages.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]transaction.CreateParams, error) {
	dateIdx := cols.get(p.DateCol)
	descIdx := cols.get(p.DescCol)
	catIdx := cols.get(p.CategoryCol)

	var txs []transaction.CreateParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 1

		date, ok := parseDate(row, dateIdx, p.DateLayouts)
		if !ok {
			continue
		}

		desc := cellValue(row, descIdx)
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		amount, txType, err := extractAmount(p, cols, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		if amount.IsZero() {
			continue
		}

		txs = append(txs, transaction.CreateParams{
			Type:        txType,
			Category:    cellValue(row, catIdx),
			Description: desc,
			Amount:      amount,
			Date:        date,
		})
	}

	return txs, nil
}

// parseDate returns false for empty or unparseable cells such as footers.
func parseDate(row []string, idx int, layouts []string) (time.Time, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return transaction.DateOnly(t), true
		}
	}

	return time.Time{}, false
}

func extractAmount(p *Profile, cols colIndex, row []string) (decimal.Decimal, transaction.Type, error) {
	switch p.AmountMode {
	case amountTyped:
		return typedAmount(row, cols.get(p.TypeCol), cols.get(p.AmountCol))
	case amountSigned:
		return signedAmount(row, cols.get(p.AmountCol))
	case amountSplit:
		return splitAmount(row, cols.get(p.DebitCol), cols.get(p.CreditCol))
	}

	return decimal.Zero, "", fmt.Errorf("unsupported amount layout in %s", p.Name)
}

func typedAmount(row []string, typeIdx, amountIdx int) (decimal.Decimal, transaction.Type, error) {
	txType := transaction.Type(strings.ToLower(cellValue(row, typeIdx)))
	if !txType.Valid() {
		return decimal.Zero, "", fmt.Errorf("%w: %q", transaction.ErrInvalidType, cellValue(row, typeIdx))
	}

	amount, err := parseAmount(cellValue(row, amountIdx))
	if err != nil {
		return decimal.Zero, "", fmt.Errorf("invalid amount %q", cellValue(row, amountIdx))
	}

	return amount.Abs(), txType, nil
}

func signedAmount(row []string, idx int) (decimal.Decimal, transaction.Type, error) {
	s := cellValue(row, idx)
	if s == "" {
		return decimal.Zero, "", nil
	}

	amount, err := parseAmount(s)
	if err != nil {
		return decimal.Zero, "", fmt.Errorf("invalid amount %q", s)
	}

	if amount.IsNegative() {
		return amount.Neg(), transaction.TypeExpense, nil
	}

	return amount, transaction.TypeIncome, nil
}

// splitAmount prefers the money-out column when both are filled.
func splitAmount(row []string, debitIdx, creditIdx int) (decimal.Decimal, transaction.Type, error) {
	if s := cellValue(row, debitIdx); s != "" {
		amount, err := parseAmount(s)
		if err != nil {
			return decimal.Zero, "", fmt.Errorf("invalid amount %q", s)
		}

		if !amount.IsZero() {
			return amount.Abs(), transaction.TypeExpense, nil
		}
	}

	if s := cellValue(row, creditIdx); s != "" {
		amount, err := parseAmount(s)
		if err != nil {
			return decimal.Zero, "", fmt.Errorf("invalid amount %q", s)
		}

		return amount.Abs(), transaction.TypeIncome, nil
	}

	return decimal.Zero, "", nil
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
