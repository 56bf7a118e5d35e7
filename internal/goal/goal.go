package goal

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound            = errors.New("goal not found")
	ErrMissingName         = errors.New("name is required")
	ErrNonPositiveTarget   = errors.New("target amount must be greater than zero")
	ErrNegativeCurrent     = errors.New("current amount must not be negative")
	ErrNonPositiveProgress = errors.New("progress amount must be greater than zero")
)

// Goal is a savings target tracked by incremental contributions.
type Goal struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Name          string
	Description   string
	Category      string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	TargetDate    *time.Time
	IsCompleted   bool
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// Reached reports whether the saved amount covers the target.
func (g *Goal) Reached() bool {
	return g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// Contribute adds amount to the saved total and recomputes completion.
func (g *Goal) Contribute(amount decimal.Decimal) {
	g.CurrentAmount = g.CurrentAmount.Add(amount)
	g.IsCompleted = g.Reached()
}
