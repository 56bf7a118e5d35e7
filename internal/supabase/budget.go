package supabase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"

	"github.com/MrJamesThe3rd/savvy/internal/budget"
)

type budgetRow struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Period    string          `json:"period"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt *time.Time      `json:"updated_at"`
}

type budgetInsert struct {
	UserID    uuid.UUID       `json:"user_id"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Period    string          `json:"period"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
}

func (r budgetRow) toDomain() (*budget.Budget, error) {
	start, err := parseDate(r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parsing budget start date: %w", err)
	}

	end, err := parseDate(r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("parsing budget end date: %w", err)
	}

	return &budget.Budget{
		ID:        r.ID,
		UserID:    r.UserID,
		Category:  r.Category,
		Amount:    r.Amount,
		Period:    budget.Period(r.Period),
		StartDate: start,
		EndDate:   end,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

type BudgetRepository struct {
	client *supabase.Client
}

func NewBudgetRepository(client *supabase.Client) *BudgetRepository {
	return &BudgetRepository{client: client}
}

func (r *BudgetRepository) CreateBudget(_ context.Context, b *budget.Budget) error {
	data, _, err := r.client.From(tableBudgets).
		Insert(budgetInsert{
			UserID:    b.UserID,
			Category:  b.Category,
			Amount:    b.Amount,
			Period:    string(b.Period),
			StartDate: b.StartDate.Format(time.DateOnly),
			EndDate:   b.EndDate.Format(time.DateOnly),
		}, false, "", returnRows, "").
		Execute()
	if err != nil {
		if isUniqueViolation(err) {
			return budget.ErrAlreadyExists
		}

		return fmt.Errorf("creating budget: %w", err)
	}

	row, err := decodeOne[budgetRow](data)
	if err != nil {
		return fmt.Errorf("creating budget: %w", err)
	}

	b.ID = row.ID
	b.CreatedAt = row.CreatedAt
	b.UpdatedAt = row.UpdatedAt

	return nil
}

func (r *BudgetRepository) FindBudget(_ context.Context, userID uuid.UUID, category string, period budget.Period) (*budget.Budget, error) {
	data, _, err := r.client.From(tableBudgets).
		Select("*", "", false).
		Eq("user_id", userID.String()).
		Eq("category", category).
		Eq("period", string(period)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("finding budget: %w", err)
	}

	row, err := decodeOne[budgetRow](data)
	if err != nil {
		if errors.Is(err, errEmptyResponse) {
			return nil, budget.ErrNotFound
		}

		return nil, fmt.Errorf("finding budget: %w", err)
	}

	return row.toDomain()
}

func (r *BudgetRepository) ListBudgets(_ context.Context, userID uuid.UUID) ([]*budget.Budget, error) {
	data, _, err := r.client.From(tableBudgets).
		Select("*", "", false).
		Eq("user_id", userID.String()).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}

	rows, err := decodeRows[budgetRow](data)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}

	budgets := make([]*budget.Budget, 0, len(rows))

	for _, row := range rows {
		b, err := row.toDomain()
		if err != nil {
			return nil, err
		}

		budgets = append(budgets, b)
	}

	return budgets, nil
}

func (r *BudgetRepository) DeleteBudget(_ context.Context, userID, id uuid.UUID) error {
	data, _, err := r.client.From(tableBudgets).
		Delete(returnRows, "").
		Eq("id", id.String()).
		Eq("user_id", userID.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}

	rows, err := decodeRows[budgetRow](data)
	if err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}

	if len(rows) == 0 {
		return budget.ErrNotFound
	}

	return nil
}
