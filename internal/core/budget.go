package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget status tiers, evaluated high to low.
const (
	TierOK       BudgetTier = "ok"
	TierWarning  BudgetTier = "warning"
	TierCritical BudgetTier = "critical"
)

type BudgetTier string

var (
	hundred      = decimal.NewFromInt(100)
	warningLine  = decimal.NewFromInt(75)
	criticalLine = decimal.NewFromInt(90)
)

// BudgetStatus is the evaluation of a single budget against its
// computed spend.
type BudgetStatus struct {
	Spent      Money           `json:"spent"`
	Percentage decimal.Decimal `json:"percentage"`
	Remaining  Money           `json:"remaining"`
	Tier       BudgetTier      `json:"tier"`
}

// EvaluateBudget computes the spent-versus-limit percentage, the
// remaining amount and the status tier. The percentage is capped at
// 100. A non-positive limit yields 0% rather than an error: this is a
// display computation and stays total; limits are validated at
// creation time.
func EvaluateBudget(limit, spent Money) BudgetStatus {
	percentage := decimal.Zero
	if limit.IsPositive() {
		percentage = spent.Decimal().Div(limit.Decimal()).Mul(hundred)
		if percentage.Cmp(hundred) > 0 {
			percentage = hundred
		}
	}
	return BudgetStatus{
		Spent:      spent,
		Percentage: percentage,
		Remaining:  limit.Sub(spent),
		Tier:       tierFor(percentage),
	}
}

func tierFor(percentage decimal.Decimal) BudgetTier {
	switch {
	case percentage.Cmp(criticalLine) >= 0:
		return TierCritical
	case percentage.Cmp(warningLine) >= 0:
		return TierWarning
	default:
		return TierOK
	}
}

// OverallBudgetStatus aggregates all budgets into a single figure:
// total limit, total spent and the overall percentage rounded half-up
// to a whole number. Spent figures come from spentByCategory keyed by
// budget category; missing categories count as zero.
type OverallBudgetStatus struct {
	TotalLimit        Money `json:"totalLimit"`
	TotalSpent        Money `json:"totalSpent"`
	OverallPercentage int   `json:"overallPercentage"`
}

func EvaluateOverallBudgets(budgets []Budget, spentByCategory map[string]Money) OverallBudgetStatus {
	totalLimit := ZeroMoney
	totalSpent := ZeroMoney
	for _, b := range budgets {
		totalLimit = totalLimit.Add(b.Limit)
		totalSpent = totalSpent.Add(spentByCategory[b.Category])
	}
	percentage := 0
	if totalLimit.IsPositive() {
		percentage = int(totalSpent.Decimal().Mul(hundred).DivRound(totalLimit.Decimal(), 0).IntPart())
	}
	return OverallBudgetStatus{
		TotalLimit:        totalLimit,
		TotalSpent:        totalSpent,
		OverallPercentage: percentage,
	}
}

// PeriodWindow returns the inclusive [from, to] date range of the
// budget period containing ref: the ISO week (Monday start), calendar
// month, calendar quarter or calendar year.
func PeriodWindow(period Frequency, ref Date) (Date, Date) {
	year, month, day := ref.Date()
	switch period {
	case FrequencyWeekly:
		weekday := int(ref.Weekday())
		if weekday == 0 { // Sunday closes the week
			weekday = 7
		}
		from := NewDate(year, int(month), day-(weekday-1))
		return from, from.AddDate(0, 0, 6)
	case FrequencyQuarterly:
		quarterStart := (int(month)-1)/3*3 + 1
		from := NewDate(year, quarterStart, 1)
		return from, from.AddDate(0, 3, -1)
	case FrequencyYearly:
		return NewDate(year, 1, 1), NewDate(year, 12, 31)
	default: // monthly
		from := NewDate(year, int(month), 1)
		return from, from.AddDate(0, 1, -1)
	}
}

// BudgetWindow is PeriodWindow anchored at the current date.
func BudgetWindow(period Frequency, now time.Time) (Date, Date) {
	return PeriodWindow(period, DateOf(now))
}
