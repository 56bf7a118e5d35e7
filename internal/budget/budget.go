package budget

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("budget not found")
	ErrInvalidPeriod     = errors.New("period must be weekly or monthly")
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
	ErrMissingCategory   = errors.New("category is required")
)

// ConflictError reports that the user already has a budget for the same
// category and period. It matches ErrAlreadyExists with errors.Is.
type ConflictError struct {
	Category string
	Period   Period
}

var ErrAlreadyExists = errors.New("budget already exists")

func (e *ConflictError) Error() string {
	return fmt.Sprintf("You already have a %s budget for %s", e.Period, e.Category)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// Period is how often a budget resets.
type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

func (p Period) Valid() bool {
	return p == PeriodWeekly || p == PeriodMonthly
}

// Budget is a per-category spending ceiling.
type Budget struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Category  string
	Amount    decimal.Decimal
	Period    Period
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// PeriodRange returns the calendar dates a new budget covers when created at now.
// Weekly runs from the most recent Sunday for seven days; monthly covers the
// whole calendar month.
func PeriodRange(period Period, now time.Time) (time.Time, time.Time) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if period == PeriodWeekly {
		start := day.AddDate(0, 0, -int(day.Weekday()))
		return start, start.AddDate(0, 0, 6)
	}

	start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)

	return start, start.AddDate(0, 1, -1)
}
