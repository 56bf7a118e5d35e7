package supabase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"

	"github.com/MrJamesThe3rd/savvy/internal/matching"
)

type ruleRow struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Pattern   string    `json:"pattern"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

type ruleInsert struct {
	UserID   uuid.UUID `json:"user_id"`
	Pattern  string    `json:"pattern"`
	Category string    `json:"category"`
}

type RuleRepository struct {
	client *supabase.Client
}

func NewRuleRepository(client *supabase.Client) *RuleRepository {
	return &RuleRepository{client: client}
}

func (r *RuleRepository) ListRules(_ context.Context, userID uuid.UUID) ([]*matching.Rule, error) {
	data, _, err := r.client.From(tableRules).
		Select("*", "", false).
		Eq("user_id", userID.String()).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("listing rules: %w", err)
	}

	rows, err := decodeRows[ruleRow](data)
	if err != nil {
		return nil, fmt.Errorf("listing rules: %w", err)
	}

	rules := make([]*matching.Rule, 0, len(rows))
	for _, row := range rows {
		rules = append(rules, &matching.Rule{
			ID:        row.ID,
			UserID:    row.UserID,
			Pattern:   row.Pattern,
			Category:  row.Category,
			CreatedAt: row.CreatedAt,
		})
	}

	return rules, nil
}

func (r *RuleRepository) CreateRule(_ context.Context, rule *matching.Rule) error {
	data, _, err := r.client.From(tableRules).
		Insert(ruleInsert{UserID: rule.UserID, Pattern: rule.Pattern, Category: rule.Category}, false, "", returnRows, "").
		Execute()
	if err != nil {
		if isUniqueViolation(err) {
			return matching.ErrAlreadyExists
		}

		return fmt.Errorf("creating rule: %w", err)
	}

	row, err := decodeOne[ruleRow](data)
	if err != nil {
		return fmt.Errorf("creating rule: %w", err)
	}

	rule.ID = row.ID
	rule.CreatedAt = row.CreatedAt

	return nil
}
