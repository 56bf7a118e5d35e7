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

	"github.com/MrJamesThe3rd/savvy/internal/goal"
)

type goalRow struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"user_id"`
	Name          string          `json:"name"`
	Description   *string         `json:"description"`
	Category      *string         `json:"category"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	TargetDate    *string         `json:"target_date"`
	IsCompleted   bool            `json:"is_completed"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     *time.Time      `json:"updated_at"`
}

type goalInsert struct {
	UserID        uuid.UUID       `json:"user_id"`
	Name          string          `json:"name"`
	Description   *string         `json:"description"`
	Category      *string         `json:"category"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	TargetDate    *string         `json:"target_date"`
	IsCompleted   bool            `json:"is_completed"`
}

type goalProgressUpdate struct {
	CurrentAmount decimal.Decimal `json:"current_amount"`
	IsCompleted   bool            `json:"is_completed"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

func toGoalInsert(g *goal.Goal) goalInsert {
	return goalInsert{
		UserID:        g.UserID,
		Name:          g.Name,
		Description:   optionalString(g.Description),
		Category:      optionalString(g.Category),
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		TargetDate:    formatOptionalDate(g.TargetDate),
		IsCompleted:   g.IsCompleted,
	}
}

func (r goalRow) toDomain() (*goal.Goal, error) {
	target, err := parseOptionalDate(r.TargetDate)
	if err != nil {
		return nil, fmt.Errorf("parsing goal target date: %w", err)
	}

	return &goal.Goal{
		ID:            r.ID,
		UserID:        r.UserID,
		Name:          r.Name,
		Description:   derefString(r.Description),
		Category:      derefString(r.Category),
		TargetAmount:  r.TargetAmount,
		CurrentAmount: r.CurrentAmount,
		TargetDate:    target,
		IsCompleted:   r.IsCompleted,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}, nil
}

type GoalRepository struct {
	client *supabase.Client
	now    func() time.Time
}

func NewGoalRepository(client *supabase.Client) *GoalRepository {
	return &GoalRepository{client: client, now: time.Now}
}

func (r *GoalRepository) CreateGoal(_ context.Context, g *goal.Goal) error {
	data, _, err := r.client.From(tableGoals).
		Insert(toGoalInsert(g), false, "", returnRows, "").
		Execute()
	if err != nil {
		return fmt.Errorf("creating goal: %w", err)
	}

	row, err := decodeOne[goalRow](data)
	if err != nil {
		return fmt.Errorf("creating goal: %w", err)
	}

	g.ID = row.ID
	g.CreatedAt = row.CreatedAt
	g.UpdatedAt = row.UpdatedAt

	return nil
}

func (r *GoalRepository) GetGoal(_ context.Context, userID, id uuid.UUID) (*goal.Goal, error) {
	data, _, err := r.client.From(tableGoals).
		Select("*", "", false).
		Eq("id", id.String()).
		Eq("user_id", userID.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("getting goal: %w", err)
	}

	row, err := decodeOne[goalRow](data)
	if err != nil {
		if errors.Is(err, errEmptyResponse) {
			return nil, goal.ErrNotFound
		}

		return nil, fmt.Errorf("getting goal: %w", err)
	}

	return row.toDomain()
}

func (r *GoalRepository) ListGoals(_ context.Context, userID uuid.UUID) ([]*goal.Goal, error) {
	data, _, err := r.client.From(tableGoals).
		Select("*", "", false).
		Eq("user_id", userID.String()).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}

	rows, err := decodeRows[goalRow](data)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}

	goals := make([]*goal.Goal, 0, len(rows))

	for _, row := range rows {
		g, err := row.toDomain()
		if err != nil {
			return nil, err
		}

		goals = append(goals, g)
	}

	return goals, nil
}

func (r *GoalRepository) UpdateProgress(_ context.Context, g *goal.Goal) error {
	data, _, err := r.client.From(tableGoals).
		Update(goalProgressUpdate{
			CurrentAmount: g.CurrentAmount,
			IsCompleted:   g.IsCompleted,
			UpdatedAt:     r.now().UTC(),
		}, returnRows, "").
		Eq("id", g.ID.String()).
		Eq("user_id", g.UserID.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("updating goal progress: %w", err)
	}

	row, err := decodeOne[goalRow](data)
	if err != nil {
		if errors.Is(err, errEmptyResponse) {
			return goal.ErrNotFound
		}

		return fmt.Errorf("updating goal progress: %w", err)
	}

	g.UpdatedAt = row.UpdatedAt

	return nil
}

func (r *GoalRepository) DeleteGoal(_ context.Context, userID, id uuid.UUID) error {
	data, _, err := r.client.From(tableGoals).
		Delete(returnRows, "").
		Eq("id", id.String()).
		Eq("user_id", userID.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}

	rows, err := decodeRows[goalRow](data)
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}

	if len(rows) == 0 {
		return goal.ErrNotFound
	}

	return nil
}
