package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ProjectionEntry is one month of a savings interest projection.
type ProjectionEntry struct {
	Month    string `json:"month"`
	Interest Money  `json:"interest"`
	Balance  Money  `json:"balance"`
}

var twelve = decimal.NewFromInt(12)

// MonthlyRate converts an annual percentage rate (4.5 meaning 4.5%/yr)
// to a monthly fraction, rounded half-up to eight decimal places at
// each division step.
func MonthlyRate(annualRatePercent Money) decimal.Decimal {
	return annualRatePercent.Decimal().
		DivRound(hundred, 8).
		DivRound(twelve, 8)
}

// ProjectInterest computes a month-by-month compounding projection of
// a savings balance over the given horizon. For each month the interest
// is the running balance times the monthly rate, rounded half-up to two
// places, and is then added to the balance. A nil rate or a zero rate
// yields a flat projection; a zero horizon yields an empty slice. The
// starting balance itself is not emitted as a row.
//
// Pure function of its inputs: callers pass the reference date used for
// the month labels, so identical inputs always produce identical output.
func ProjectInterest(balance Money, annualRatePercent *Money, months int, from Date) []ProjectionEntry {
	if months <= 0 {
		return nil
	}
	monthlyRate := decimal.Zero
	if annualRatePercent != nil {
		monthlyRate = MonthlyRate(*annualRatePercent)
	}
	entries := make([]ProjectionEntry, 0, months)
	for i := 0; i < months; i++ {
		monthDate := from.AddDate(0, i+1, 0)
		interest := balance.MulRate(monthlyRate).Round2()
		balance = balance.Add(interest)
		entries = append(entries, ProjectionEntry{
			Month:    monthLabel(monthDate),
			Interest: interest,
			Balance:  balance,
		})
	}
	return entries
}

// monthLabel renders e.g. "SEPTEMBER 2026".
func monthLabel(d Date) string {
	return strings.ToUpper(d.Month().String()) + " " + d.Format("2006")
}
