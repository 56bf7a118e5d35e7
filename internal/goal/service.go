package goal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=goal
type Repository interface {
	CreateGoal(ctx context.Context, g *Goal) error
	GetGoal(ctx context.Context, userID, id uuid.UUID) (*Goal, error)
	ListGoals(ctx context.Context, userID uuid.UUID) ([]*Goal, error)
	UpdateProgress(ctx context.Context, g *Goal) error
	DeleteGoal(ctx context.Context, userID, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	UserID        uuid.UUID
	Name          string
	Description   string
	Category      string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	TargetDate    *time.Time
}

func (p CreateParams) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrMissingName
	}

	if !p.TargetAmount.IsPositive() {
		return ErrNonPositiveTarget
	}

	if p.CurrentAmount.IsNegative() {
		return ErrNegativeCurrent
	}

	return nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Goal, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	g := &Goal{
		UserID:        params.UserID,
		Name:          strings.TrimSpace(params.Name),
		Description:   strings.TrimSpace(params.Description),
		Category:      params.Category,
		TargetAmount:  params.TargetAmount,
		CurrentAmount: params.CurrentAmount,
	}

	if params.TargetDate != nil {
		d := time.Date(params.TargetDate.Year(), params.TargetDate.Month(), params.TargetDate.Day(), 0, 0, 0, 0, time.UTC)
		g.TargetDate = &d
	}

	g.IsCompleted = g.Reached()

	if err := s.repo.CreateGoal(ctx, g); err != nil {
		return nil, err
	}

	return g, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Goal, error) {
	return s.repo.ListGoals(ctx, userID)
}

// AddProgress adds amount to the goal and persists the new total together
// with the recomputed completion flag.
func (s *Service) AddProgress(ctx context.Context, userID, id uuid.UUID, amount decimal.Decimal) (*Goal, error) {
	if !amount.IsPositive() {
		return nil, ErrNonPositiveProgress
	}

	g, err := s.repo.GetGoal(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	g.Contribute(amount)

	if err := s.repo.UpdateProgress(ctx, g); err != nil {
		return nil, fmt.Errorf("updating goal progress: %w", err)
	}

	return g, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.DeleteGoal(ctx, userID, id)
}
