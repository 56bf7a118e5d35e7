// Package obligation reads future-dated money commitments: bills and
// recurring transactions. Neither is turned into a transaction here.
package obligation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/savvy/internal/transaction"
)

type Frequency string

const (
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

type Bill struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Name         string
	Category     string
	Amount       decimal.Decimal
	Frequency    Frequency
	DueDate      time.Time
	IsPaid       bool
	ReminderDays int
	CreatedAt    time.Time
}

// InReminderWindow reports whether an unpaid bill should be surfaced at now:
// it is overdue or due within its reminder days.
func (b *Bill) InReminderWindow(now time.Time) bool {
	if b.IsPaid {
		return false
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	return !b.DueDate.After(today.AddDate(0, 0, b.ReminderDays))
}

type RecurringTransaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Type        transaction.Type
	Category    string
	Description string
	Amount      decimal.Decimal
	Frequency   Frequency
	StartDate   time.Time
	EndDate     *time.Time
	NextDueDate time.Time
	IsActive    bool
	CreatedAt   time.Time
}
