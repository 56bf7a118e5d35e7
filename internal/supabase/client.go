// Package supabase implements the domain repositories on top of a Supabase
// project's REST interface. Row-level security scopes every query to the
// signed-in user; the explicit user_id filters keep the queries correct when
// the client runs with a service key instead.
package supabase

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/supabase-community/supabase-go"
)

const (
	tableTransactions = "transactions"
	tableBudgets      = "budgets"
	tableGoals        = "goals"
	tableBills        = "bills"
	tableRecurring    = "recurring_transactions"
	tableRules        = "category_rules"
)

// returnRows asks PostgREST to echo written rows, which carry generated ids
// and timestamps and let deletes report how many rows matched.
const returnRows = "representation"

func NewClient(url, key string) (*supabase.Client, error) {
	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("creating supabase client: %w", err)
	}

	return client, nil
}

// isUniqueViolation recognises PostgREST's rendering of Postgres error 23505.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()

	return strings.Contains(msg, "23505") || strings.Contains(msg, "duplicate key")
}

var errEmptyResponse = errors.New("empty response")

func decodeRows[T any](data []byte) ([]T, error) {
	var rows []T
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decoding rows: %w", err)
	}

	return rows, nil
}

func decodeOne[T any](data []byte) (T, error) {
	var zero T

	rows, err := decodeRows[T](data)
	if err != nil {
		return zero, err
	}

	if len(rows) == 0 {
		return zero, errEmptyResponse
	}

	return rows[0], nil
}

func parseDate(s string) (time.Time, error) {
	if len(s) > len(time.DateOnly) {
		s = s[:len(time.DateOnly)]
	}

	return time.Parse(time.DateOnly, s)
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}

	t, err := parseDate(*s)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}

	return new(t.Format(time.DateOnly))
}
