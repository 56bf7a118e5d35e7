package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/savvy/internal/obligation"
	"github.com/MrJamesThe3rd/savvy/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListBills(ctx context.Context, userID uuid.UUID) ([]*obligation.Bill, error) {
	query := `
		SELECT id, user_id, name, category, amount, frequency, due_date, is_paid, reminder_days, created_at
		FROM bills
		WHERE user_id = $1
		ORDER BY due_date ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing bills: %w", err)
	}
	defer rows.Close()

	var bills []*obligation.Bill

	for rows.Next() {
		var b obligation.Bill

		var freq string

		if err := rows.Scan(
			&b.ID, &b.UserID, &b.Name, &b.Category, &b.Amount, &freq, &b.DueDate,
			&b.IsPaid, &b.ReminderDays, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning bill: %w", err)
		}

		b.Frequency = obligation.Frequency(freq)
		bills = append(bills, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bills: %w", err)
	}

	return bills, nil
}

func (s *Store) ListRecurring(ctx context.Context, userID uuid.UUID) ([]*obligation.RecurringTransaction, error) {
	query := `
		SELECT id, user_id, type, category, description, amount, frequency, start_date, end_date,
			next_due_date, is_active, created_at
		FROM recurring_transactions
		WHERE user_id = $1
		ORDER BY next_due_date ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing recurring transactions: %w", err)
	}
	defer rows.Close()

	var items []*obligation.RecurringTransaction

	for rows.Next() {
		var r obligation.RecurringTransaction

		var typ, freq string

		var endDate sql.NullTime

		if err := rows.Scan(
			&r.ID, &r.UserID, &typ, &r.Category, &r.Description, &r.Amount, &freq, &r.StartDate, &endDate,
			&r.NextDueDate, &r.IsActive, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning recurring transaction: %w", err)
		}

		r.Type = transaction.Type(typ)
		r.Frequency = obligation.Frequency(freq)

		if endDate.Valid {
			r.EndDate = &endDate.Time
		}

		items = append(items, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recurring transactions: %w", err)
	}

	return items, nil
}
