package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/savvy/internal/transaction"
)

var (
	ErrEmptyRule     = errors.New("pattern and category are required")
	ErrAlreadyExists = errors.New("a rule for this pattern already exists")
)

// Rule assigns Category to any transaction whose description contains Pattern,
// ignoring case.
type Rule struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Pattern   string
	Category  string
	CreatedAt time.Time
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	ListRules(ctx context.Context, userID uuid.UUID) ([]*Rule, error)
	CreateRule(ctx context.Context, r *Rule) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Match returns the category of the longest pattern found in description, or
// "" when no rule applies. Equal-length patterns resolve to the newest rule.
func Match(rules []*Rule, description string) string {
	desc := strings.ToLower(description)

	var best *Rule

	for _, r := range rules {
		if r.Pattern == "" || !strings.Contains(desc, strings.ToLower(r.Pattern)) {
			continue
		}

		if best == nil ||
			len(r.Pattern) > len(best.Pattern) ||
			(len(r.Pattern) == len(best.Pattern) && r.CreatedAt.After(best.CreatedAt)) {
			best = r
		}
	}

	if best == nil {
		return ""
	}

	return best.Category
}

// Suggest returns a category for description from the user's rules.
// Returns empty string if no match found.
func (s *Service) Suggest(ctx context.Context, userID uuid.UUID, description string) (string, error) {
	rules, err := s.repo.ListRules(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("listing rules: %w", err)
	}

	return Match(rules, description), nil
}

// Learn remembers that descriptions containing pattern belong to category.
func (s *Service) Learn(ctx context.Context, userID uuid.UUID, pattern, category string) (*Rule, error) {
	pattern = strings.TrimSpace(pattern)
	category = strings.TrimSpace(category)

	if pattern == "" || category == "" {
		return nil, ErrEmptyRule
	}

	r := &Rule{UserID: userID, Pattern: pattern, Category: category}

	if err := s.repo.CreateRule(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

func (s *Service) Rules(ctx context.Context, userID uuid.UUID) ([]*Rule, error) {
	return s.repo.ListRules(ctx, userID)
}

// Categorize fills in the category of every param that has none, using one
// rule lookup for the whole batch. Params without a match are left untouched.
func (s *Service) Categorize(ctx context.Context, userID uuid.UUID, params []transaction.CreateParams) error {
	var rules []*Rule

	for i := range params {
		if strings.TrimSpace(params[i].Category) != "" {
			continue
		}

		if rules == nil {
			var err error

			rules, err = s.repo.ListRules(ctx, userID)
			if err != nil {
				return fmt.Errorf("listing rules: %w", err)
			}

			if rules == nil {
				rules = []*Rule{}
			}
		}

		params[i].Category = Match(rules, params[i].Description)
	}

	return nil
}
