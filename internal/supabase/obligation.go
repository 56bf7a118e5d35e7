package supabase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"

	"github.com/MrJamesThe3rd/savvy/internal/obligation"
	"github.com/MrJamesThe3rd/savvy/internal/transaction"
)

type billRow struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"user_id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Amount       decimal.Decimal `json:"amount"`
	Frequency    string          `json:"frequency"`
	DueDate      string          `json:"due_date"`
	IsPaid       bool            `json:"is_paid"`
	ReminderDays int             `json:"reminder_days"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (r billRow) toDomain() (*obligation.Bill, error) {
	due, err := parseDate(r.DueDate)
	if err != nil {
		return nil, fmt.Errorf("parsing bill due date: %w", err)
	}

	return &obligation.Bill{
		ID:           r.ID,
		UserID:       r.UserID,
		Name:         r.Name,
		Category:     r.Category,
		Amount:       r.Amount,
		Frequency:    obligation.Frequency(r.Frequency),
		DueDate:      due,
		IsPaid:       r.IsPaid,
		ReminderDays: r.ReminderDays,
		CreatedAt:    r.CreatedAt,
	}, nil
}

type recurringRow struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Frequency   string          `json:"frequency"`
	StartDate   string          `json:"start_date"`
	EndDate     *string         `json:"end_date"`
	NextDueDate string          `json:"next_due_date"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (r recurringRow) toDomain() (*obligation.RecurringTransaction, error) {
	start, err := parseDate(r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parsing recurring start date: %w", err)
	}

	end, err := parseOptionalDate(r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("parsing recurring end date: %w", err)
	}

	next, err := parseDate(r.NextDueDate)
	if err != nil {
		return nil, fmt.Errorf("parsing recurring next due date: %w", err)
	}

	return &obligation.RecurringTransaction{
		ID:          r.ID,
		UserID:      r.UserID,
		Type:        transaction.Type(r.Type),
		Category:    r.Category,
		Description: r.Description,
		Amount:      r.Amount,
		Frequency:   obligation.Frequency(r.Frequency),
		StartDate:   start,
		EndDate:     end,
		NextDueDate: next,
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
	}, nil
}

type ObligationRepository struct {
	client *supabase.Client
}

func NewObligationRepository(client *supabase.Client) *ObligationRepository {
	return &ObligationRepository{client: client}
}

func (r *ObligationRepository) ListBills(_ context.Context, userID uuid.UUID) ([]*obligation.Bill, error) {
	data, _, err := r.client.From(tableBills).
		Select("*", "", false).
		Eq("user_id", userID.String()).
		Order("due_date", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("listing bills: %w", err)
	}

	rows, err := decodeRows[billRow](data)
	if err != nil {
		return nil, fmt.Errorf("listing bills: %w", err)
	}

	bills := make([]*obligation.Bill, 0, len(rows))

	for _, row := range rows {
		b, err := row.toDomain()
		if err != nil {
			return nil, err
		}

		bills = append(bills, b)
	}

	return bills, nil
}

func (r *ObligationRepository) ListRecurring(_ context.Context, userID uuid.UUID) ([]*obligation.RecurringTransaction, error) {
	data, _, err := r.client.From(tableRecurring).
		Select("*", "", false).
		Eq("user_id", userID.String()).
		Order("next_due_date", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("listing recurring transactions: %w", err)
	}

	rows, err := decodeRows[recurringRow](data)
	if err != nil {
		return nil, fmt.Errorf("listing recurring transactions: %w", err)
	}

	out := make([]*obligation.RecurringTransaction, 0, len(rows))

	for _, row := range rows {
		rt, err := row.toDomain()
		if err != nil {
			return nil, err
		}

		out = append(out, rt)
	}

	return out, nil
}
