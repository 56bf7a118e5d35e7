package obligation

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=obligation
type Repository interface {
	ListBills(ctx context.Context, userID uuid.UUID) ([]*Bill, error)
	ListRecurring(ctx context.Context, userID uuid.UUID) ([]*RecurringTransaction, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Bills(ctx context.Context, userID uuid.UUID) ([]*Bill, error) {
	return s.repo.ListBills(ctx, userID)
}

func (s *Service) Recurring(ctx context.Context, userID uuid.UUID) ([]*RecurringTransaction, error) {
	return s.repo.ListRecurring(ctx, userID)
}

// UpcomingBills returns unpaid bills inside their reminder window, soonest first.
func (s *Service) UpcomingBills(ctx context.Context, userID uuid.UUID, now time.Time) ([]*Bill, error) {
	bills, err := s.repo.ListBills(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing bills: %w", err)
	}

	var upcoming []*Bill

	for _, b := range bills {
		if b.InReminderWindow(now) {
			upcoming = append(upcoming, b)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].DueDate.Before(upcoming[j].DueDate)
	})

	return upcoming, nil
}

// DueRecurring returns active recurring transactions whose next due date is on
// or before now and whose end date, if any, has not passed.
func (s *Service) DueRecurring(ctx context.Context, userID uuid.UUID, now time.Time) ([]*RecurringTransaction, error) {
	items, err := s.repo.ListRecurring(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing recurring transactions: %w", err)
	}

	var due []*RecurringTransaction

	for _, r := range items {
		if !r.IsActive || r.NextDueDate.After(now) {
			continue
		}

		if r.EndDate != nil && r.EndDate.Before(r.NextDueDate) {
			continue
		}

		due = append(due, r)
	}

	return due, nil
}
