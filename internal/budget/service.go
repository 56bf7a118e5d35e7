package budget

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/savvy/internal/metrics"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=budget
type Repository interface {
	CreateBudget(ctx context.Context, b *Budget) error
	FindBudget(ctx context.Context, userID uuid.UUID, category string, period Period) (*Budget, error)
	ListBudgets(ctx context.Context, userID uuid.UUID) ([]*Budget, error)
	DeleteBudget(ctx context.Context, userID, id uuid.UUID) error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock overrides the time source used to derive budget dates.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

type CreateParams struct {
	UserID   uuid.UUID
	Category string
	Amount   decimal.Decimal
	Period   Period
}

func (p CreateParams) Validate() error {
	if strings.TrimSpace(p.Category) == "" {
		return ErrMissingCategory
	}

	if !p.Period.Valid() {
		return ErrInvalidPeriod
	}

	if !p.Amount.IsPositive() {
		return ErrNonPositiveAmount
	}

	return nil
}

// Create derives the period dates and inserts the budget. A second budget for
// the same (user, category, period) fails with a *ConflictError, whether the
// duplicate is spotted up front or by the store's uniqueness constraint.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Budget, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	category := strings.TrimSpace(params.Category)
	conflict := &ConflictError{Category: category, Period: params.Period}

	existing, err := s.repo.FindBudget(ctx, params.UserID, category, params.Period)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("checking existing budget: %w", err)
	}

	if existing != nil {
		metrics.BudgetConflictsTotal.Inc()
		return nil, conflict
	}

	start, end := PeriodRange(params.Period, s.now())

	b := &Budget{
		UserID:    params.UserID,
		Category:  category,
		Amount:    params.Amount,
		Period:    params.Period,
		StartDate: start,
		EndDate:   end,
	}

	if err := s.repo.CreateBudget(ctx, b); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			metrics.BudgetConflictsTotal.Inc()
			return nil, conflict
		}

		return nil, err
	}

	return b, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Budget, error) {
	return s.repo.ListBudgets(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.DeleteBudget(ctx, userID, id)
}
