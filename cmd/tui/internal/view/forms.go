package view

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/savvy/internal/budget"
	"github.com/MrJamesThe3rd/savvy/internal/goal"
	"github.com/MrJamesThe3rd/savvy/internal/session"
	"github.com/MrJamesThe3rd/savvy/internal/transaction"
)

// inputError marks a failure caused by what the user typed.
type inputError struct{ error }

func (e inputError) Unwrap() error { return e.error }

var validationErrors = []error{
	transaction.ErrMissingField,
	transaction.ErrInvalidType,
	transaction.ErrNegativeAmount,
	budget.ErrAlreadyExists,
	budget.ErrMissingCategory,
	budget.ErrInvalidPeriod,
	budget.ErrNonPositiveAmount,
	goal.ErrMissingName,
	goal.ErrNonPositiveTarget,
	goal.ErrNegativeCurrent,
	goal.ErrNonPositiveProgress,
	goal.ErrNotFound,
	session.ErrNotSignedIn,
}

// failure renders err for the status line. Errors the user can act on are
// shown as they are; anything else is logged and reported generically.
func failure(action string, err error) string {
	var in inputError
	if errors.As(err, &in) {
		return err.Error()
	}

	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return err.Error()
		}
	}

	slog.Error("failed to "+action, "error", err)

	return fmt.Sprintf("Failed to %s. Please try again.", action)
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}

		return nil
	}
}

// validAmount accepts a decimal that is not negative, or strictly positive
// when positive is set.
func validAmount(positive bool) func(string) error {
	return func(s string) error {
		d, err := decimal.NewFromString(strings.TrimSpace(s))
		if err != nil {
			return errors.New("enter a number, e.g. 1250.50")
		}

		if positive && !d.IsPositive() {
			return errors.New("amount must be greater than zero")
		}

		if d.IsNegative() {
			return errors.New("amount must not be negative")
		}

		return nil
	}
}

func validDate(mandatory bool) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" && !mandatory {
			return nil
		}

		if _, err := time.Parse(time.DateOnly, s); err != nil {
			return errors.New("use YYYY-MM-DD")
		}

		return nil
	}
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, inputError{fmt.Errorf("invalid amount %q", s)}
	}

	return d, nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, inputError{fmt.Errorf("invalid date %q", s)}
	}

	return &d, nil
}
