package analytics

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/savvy/internal/budget"
	"github.com/MrJamesThe3rd/savvy/internal/goal"
	"github.com/MrJamesThe3rd/savvy/internal/transaction"
)

type BudgetStatus string

const (
	BudgetOverBudget BudgetStatus = "Over Budget"
	BudgetAlert      BudgetStatus = "Alert"
	BudgetWarning    BudgetStatus = "Warning"
	BudgetOnTrack    BudgetStatus = "On Track"
)

// BudgetStatusFor maps a consumption percentage to its label. Thresholds are
// inclusive lower bounds checked highest first.
func BudgetStatusFor(pct float64) BudgetStatus {
	switch {
	case pct >= 100:
		return BudgetOverBudget
	case pct >= 80:
		return BudgetAlert
	case pct >= 60:
		return BudgetWarning
	default:
		return BudgetOnTrack
	}
}

type BudgetProgress struct {
	Budget *budget.Budget
	Spent  decimal.Decimal
	// Remaining goes negative once the budget is exceeded.
	Remaining decimal.Decimal
	// Percentage is clamped to [0, 100].
	Percentage float64
	Status     BudgetStatus
}

// BudgetProgressFor measures spending against b for the calendar month of now,
// whatever the budget's period.
func BudgetProgressFor(b *budget.Budget, txs []*transaction.Transaction, now time.Time) BudgetProgress {
	var spent decimal.Decimal

	for _, tx := range txs {
		if tx.Type != transaction.TypeExpense || tx.Category != b.Category {
			continue
		}

		if tx.Date.Year() != now.Year() || tx.Date.Month() != now.Month() {
			continue
		}

		spent = spent.Add(tx.Amount)
	}

	pct := math.Max(0, math.Min(100, percent(spent, b.Amount)))

	return BudgetProgress{
		Budget:     b,
		Spent:      spent,
		Remaining:  b.Amount.Sub(spent),
		Percentage: pct,
		Status:     BudgetStatusFor(pct),
	}
}

// BudgetSlice is one segment of the budget distribution chart.
type BudgetSlice struct {
	Category  string
	Budgeted  decimal.Decimal
	Spent     decimal.Decimal
	Remaining decimal.Decimal // floored at zero
}

func BudgetDistribution(budgets []*budget.Budget, txs []*transaction.Transaction, now time.Time) []BudgetSlice {
	out := make([]BudgetSlice, 0, len(budgets))

	for _, b := range budgets {
		p := BudgetProgressFor(b, txs, now)

		out = append(out, BudgetSlice{
			Category:  b.Category,
			Budgeted:  b.Amount,
			Spent:     p.Spent,
			Remaining: decimal.Max(decimal.Zero, p.Remaining),
		})
	}

	return out
}

type GoalStatus string

const (
	GoalCompleted   GoalStatus = "Completed"
	GoalOverdue     GoalStatus = "Overdue"
	GoalAlmostThere GoalStatus = "Almost There"
	GoalOnTrack     GoalStatus = "On Track"
	GoalJustStarted GoalStatus = "Just Started"
)

type GoalProgress struct {
	Goal *goal.Goal
	// Percentage is uncapped; Display is capped at 100 for progress bars.
	Percentage float64
	Display    float64
	Remaining  decimal.Decimal
	// DaysLeft is nil without a target date and negative once it has passed.
	DaysLeft *int
	Status   GoalStatus
}

func GoalProgressFor(g *goal.Goal, now time.Time) GoalProgress {
	p := GoalProgress{
		Goal:       g,
		Percentage: percent(g.CurrentAmount, g.TargetAmount),
		Remaining:  g.TargetAmount.Sub(g.CurrentAmount),
	}

	p.Display = math.Min(100, p.Percentage)

	if g.TargetDate != nil {
		days := int(math.Ceil(g.TargetDate.Sub(now).Hours() / 24))
		p.DaysLeft = &days
	}

	switch {
	case g.IsCompleted:
		p.Status = GoalCompleted
	case p.DaysLeft != nil && *p.DaysLeft < 0:
		p.Status = GoalOverdue
	case p.Percentage >= 75:
		p.Status = GoalAlmostThere
	case p.Percentage >= 50:
		p.Status = GoalOnTrack
	default:
		p.Status = GoalJustStarted
	}

	return p
}
