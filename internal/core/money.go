// Package core holds the domain model and the pure financial
// calculations: transaction aggregation, budget evaluation, bill
// status derivation and savings interest projection.
//
// Amounts are exact decimals. Rounding to two places happens only at
// presentation boundaries, never during intermediate aggregation.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an exact decimal monetary amount.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney is the zero amount. The Money zero value is equivalent.
var ZeroMoney = Money{}

// NewMoney wraps a decimal as Money.
func NewMoney(d decimal.Decimal) Money {
	return Money{amount: d}
}

// MoneyFromInt creates a whole-unit amount, mainly for tests.
func MoneyFromInt(v int64) Money {
	return Money{amount: decimal.NewFromInt(v)}
}

// ParseMoney parses a decimal amount. It accepts both dot (12.34) and
// comma (12,34) decimal separators.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	return Money{amount: d}, nil
}

// MustMoney parses an amount and panics on error. Test helper.
func MustMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// ParsePositiveMoney parses an amount and rejects zero and negative
// values. Used at the API boundary where only positive amounts make
// sense (transaction amounts, deposits, budget limits).
func ParsePositiveMoney(s string) (Money, error) {
	m, err := ParseMoney(s)
	if err != nil {
		return Money{}, err
	}
	if !m.IsPositive() {
		return Money{}, ErrInvalidAmount
	}
	return m, nil
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// MulRate multiplies the amount by a plain decimal rate.
func (m Money) MulRate(rate decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(rate)}
}

// Cmp compares two amounts: -1 if m < other, 0 if equal, 1 if m > other.
func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

func (m Money) IsZero() bool     { return m.amount.IsZero() }
func (m Money) IsPositive() bool { return m.amount.IsPositive() }
func (m Money) IsNegative() bool { return m.amount.IsNegative() }

// Neg returns the amount with its sign flipped.
func (m Money) Neg() Money {
	return Money{amount: m.amount.Neg()}
}

// Abs returns the absolute amount.
func (m Money) Abs() Money {
	return Money{amount: m.amount.Abs()}
}

// Round2 rounds half-up to two decimal places. Display boundary only.
func (m Money) Round2() Money {
	return Money{amount: m.amount.Round(2)}
}

// Decimal exposes the underlying decimal for rate arithmetic.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String renders the exact amount without forced scale.
func (m Money) String() string {
	return m.amount.String()
}

// MarshalJSON renders the amount as a JSON number with two decimal
// places, matching what API clients display.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.amount.StringFixed(2)), nil
}

// UnmarshalJSON accepts both JSON numbers and quoted decimal strings.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*m = Money{}
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return ErrInvalidAmount
	}
	m.amount = d
	return nil
}
