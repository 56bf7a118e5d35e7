package main

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/savvy/internal/budget"
	"github.com/MrJamesThe3rd/savvy/internal/goal"
	"github.com/MrJamesThe3rd/savvy/internal/transaction"
)

var merchants = map[string][]string{
	"Food & Dining":     {"Naivas", "Carrefour", "Java House", "Artcaffe", "Kilimanjaro Food Court"},
	"Transportation":    {"Uber", "Bolt", "Matatu fare", "Shell fuel", "Little Cab"},
	"Shopping":          {"Jumia", "Kilimall", "Mr Price", "Bata"},
	"Entertainment":     {"Showmax", "Netflix", "Century Cinemax", "Spotify"},
	"Bills & Utilities": {"KPLC tokens", "Nairobi Water", "Safaricom Home Fibre", "Airtime"},
	"Healthcare":        {"Goodlife Pharmacy", "Aga Khan clinic", "Dental check-up"},
	"Education":         {"Udemy course", "Text Book Centre", "School fees"},
	"Travel":            {"Kenya Airways", "SGR ticket", "Airbnb"},
	"Other":             {"M-Pesa charges", "Gift", "Donation"},
}

var spendRange = map[string][2]float64{
	"Food & Dining":     {150, 4500},
	"Transportation":    {80, 2500},
	"Shopping":          {500, 12000},
	"Entertainment":     {300, 2000},
	"Bills & Utilities": {500, 6000},
	"Healthcare":        {400, 8000},
	"Education":         {1000, 15000},
	"Travel":            {2500, 30000},
	"Other":             {50, 3000},
}

var goalNames = []string{"Emergency fund", "New laptop", "Holiday in Zanzibar", "Car deposit", "Wedding"}

// generator produces plausible demo data. A fixed seed gives the same data.
type generator struct {
	faker *gofakeit.Faker
	now   time.Time
}

func newGenerator(seed int64, now time.Time) *generator {
	return &generator{faker: gofakeit.New(seed), now: transaction.DateOnly(now)}
}

func (g *generator) amount(lo, hi float64) decimal.Decimal {
	return decimal.NewFromFloat(g.faker.Price(lo, hi)).Round(2)
}

// transactions covers the current month and the months before it. Each month
// gets a salary on the 1st and perMonth expenses, none dated after today.
func (g *generator) transactions(months, perMonth int) []transaction.CreateParams {
	var out []transaction.CreateParams

	first := time.Date(g.now.Year(), g.now.Month(), 1, 0, 0, 0, 0, time.UTC)

	for i := months - 1; i >= 0; i-- {
		start := first.AddDate(0, -i, 0)
		end := start.AddDate(0, 1, -1)
		if end.After(g.now) {
			end = g.now
		}

		out = append(out, transaction.CreateParams{
			Type:        transaction.TypeIncome,
			Category:    "Salary",
			Description: start.Format("January") + " salary",
			Amount:      decimal.NewFromInt(int64(g.faker.Number(60, 120)) * 1000),
			Date:        start,
		})

		if g.faker.Bool() {
			out = append(out, transaction.CreateParams{
				Type:        transaction.TypeIncome,
				Category:    g.faker.RandomString([]string{"Freelance", "Business", "Investments", "Gifts"}),
				Description: g.faker.Company(),
				Amount:      g.amount(2000, 40000),
				Date:        g.day(start, end),
			})
		}

		for range perMonth {
			category := g.faker.RandomString(transaction.ExpenseCategories)
			bounds := spendRange[category]

			out = append(out, transaction.CreateParams{
				Type:        transaction.TypeExpense,
				Category:    category,
				Description: g.faker.RandomString(merchants[category]),
				Amount:      g.amount(bounds[0], bounds[1]),
				Date:        g.day(start, end),
			})
		}
	}

	return out
}

func (g *generator) day(start, end time.Time) time.Time {
	days := int(end.Sub(start).Hours() / 24)
	if days <= 0 {
		return start
	}

	return start.AddDate(0, 0, g.faker.Number(0, days))
}

// budgets picks distinct expense categories for monthly budgets.
func (g *generator) budgets(userID uuid.UUID, n int) []budget.CreateParams {
	categories := append([]string(nil), transaction.ExpenseCategories...)
	g.faker.ShuffleStrings(categories)

	out := make([]budget.CreateParams, 0, n)
	for _, c := range categories[:min(n, len(categories))] {
		bounds := spendRange[c]

		out = append(out, budget.CreateParams{
			UserID:   userID,
			Category: c,
			Amount:   decimal.NewFromInt(int64(bounds[1]*4/1000+1) * 1000),
			Period:   budget.PeriodMonthly,
		})
	}

	return out
}

func (g *generator) goals(userID uuid.UUID, n int) []goal.CreateParams {
	names := append([]string(nil), goalNames...)
	g.faker.ShuffleStrings(names)

	out := make([]goal.CreateParams, 0, n)
	for _, name := range names[:min(n, len(names))] {
		target := decimal.NewFromInt(int64(g.faker.Number(20, 300)) * 1000)
		saved := target.Mul(decimal.NewFromFloat(g.faker.Float64Range(0, 0.9))).Round(0)
		due := g.now.AddDate(0, g.faker.Number(2, 18), 0)

		out = append(out, goal.CreateParams{
			UserID:        userID,
			Name:          name,
			Description:   g.faker.Sentence(6),
			TargetAmount:  target,
			CurrentAmount: saved,
			TargetDate:    &due,
		})
	}

	return out
}
