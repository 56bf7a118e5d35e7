package supabase

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/savvy/internal/budget"
	"github.com/MrJamesThe3rd/savvy/internal/goal"
	"github.com/MrJamesThe3rd/savvy/internal/obligation"
	"github.com/MrJamesThe3rd/savvy/internal/transaction"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"Nil", nil, false},
		{"Code", errors.New(`(23505) duplicate key value violates unique constraint "budgets_user_category_period_key"`), true},
		{"MessageOnly", errors.New("duplicate key value"), true},
		{"Other", errors.New("(42501) permission denied"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUniqueViolation(tt.err))
		})
	}
}

func TestTransactionRow(t *testing.T) {
	data := []byte(`[{
		"id": "0b7f6a57-3f55-4a57-9d61-1a2b3c4d5e6f",
		"user_id": "7d1f4b8e-3c2a-4f5e-9a1b-2c3d4e5f6a7b",
		"type": "expense",
		"category": "Food & Dining",
		"description": "Lunch",
		"amount": 450.5,
		"date": "2025-03-14",
		"created_at": "2025-03-14T12:30:00.123456+00:00",
		"updated_at": null
	}]`)

	row, err := decodeOne[transactionRow](data)
	require.NoError(t, err)

	tx, err := row.toDomain()
	require.NoError(t, err)

	assert.Equal(t, transaction.TypeExpense, tx.Type)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("450.5")))
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), tx.Date)
	assert.Nil(t, tx.UpdatedAt)

	ins, err := json.Marshal(toTransactionInsert(tx))
	require.NoError(t, err)
	assert.Contains(t, string(ins), `"date":"2025-03-14"`)
	assert.NotContains(t, string(ins), `"id"`)
}

func TestDecodeOne_Empty(t *testing.T) {
	_, err := decodeOne[transactionRow]([]byte(`[]`))
	assert.ErrorIs(t, err, errEmptyResponse)

	_, err = decodeOne[transactionRow]([]byte(`{`))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, errEmptyResponse)
}

func TestBudgetRow(t *testing.T) {
	row := budgetRow{
		ID:        uuid.New(),
		Category:  "Food & Dining",
		Amount:    decimal.NewFromInt(250),
		Period:    "weekly",
		StartDate: "2025-06-15",
		EndDate:   "2025-06-21",
	}

	b, err := row.toDomain()
	require.NoError(t, err)
	assert.Equal(t, budget.PeriodWeekly, b.Period)
	assert.Equal(t, time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC), b.EndDate)

	row.StartDate = "15/06/2025"
	_, err = row.toDomain()
	assert.Error(t, err)
}

func TestGoalRow(t *testing.T) {
	target := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	g := &goal.Goal{
		Name:         "Emergency fund",
		TargetAmount: decimal.NewFromInt(100000),
		TargetDate:   &target,
	}

	ins := toGoalInsert(g)
	assert.Nil(t, ins.Description)
	require.NotNil(t, ins.TargetDate)
	assert.Equal(t, "2025-12-31", *ins.TargetDate)

	row := goalRow{
		Name:          g.Name,
		Description:   new("Six months of rent"),
		TargetAmount:  g.TargetAmount,
		CurrentAmount: decimal.NewFromInt(100000),
		TargetDate:    ins.TargetDate,
		IsCompleted:   true,
	}

	got, err := row.toDomain()
	require.NoError(t, err)
	assert.Equal(t, "Six months of rent", got.Description)
	assert.Empty(t, got.Category)
	assert.Equal(t, &target, got.TargetDate)
	assert.True(t, got.IsCompleted)

	row.TargetDate = nil
	got, err = row.toDomain()
	require.NoError(t, err)
	assert.Nil(t, got.TargetDate)
}

func TestRecurringRow(t *testing.T) {
	row := recurringRow{
		Type:        "income",
		Frequency:   "monthly",
		StartDate:   "2025-01-01",
		NextDueDate: "2025-07-01",
		IsActive:    true,
	}

	rt, err := row.toDomain()
	require.NoError(t, err)
	assert.Equal(t, obligation.FrequencyMonthly, rt.Frequency)
	assert.Equal(t, transaction.TypeIncome, rt.Type)
	assert.Nil(t, rt.EndDate)
}
