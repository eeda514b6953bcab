package core

// TransactionFilter selects transactions by type, category and an
// inclusive date range. Zero-valued fields match everything.
type TransactionFilter struct {
	Type     TransactionType
	Category string
	From     Date
	To       Date
}

// Matches reports whether t satisfies every set predicate field.
// Range boundaries are inclusive.
func (f TransactionFilter) Matches(t Transaction) bool {
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if !f.From.IsZero() && t.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && t.Date.After(f.To) {
		return false
	}
	return true
}

// SumTransactions adds up the amounts of all transactions matching the
// filter. An empty list or no matches yields a zero sum and zero count.
func SumTransactions(transactions []Transaction, filter TransactionFilter) (Money, int) {
	sum := ZeroMoney
	count := 0
	for _, t := range transactions {
		if !filter.Matches(t) {
			continue
		}
		sum = sum.Add(t.Amount)
		count++
	}
	return sum, count
}

// Summary holds the dashboard totals derived from a transaction list.
type Summary struct {
	Income       Money `json:"income"`
	Expenses     Money `json:"expenses"`
	Balance      Money `json:"balance"`
	IncomeCount  int   `json:"incomeCount"`
	ExpenseCount int   `json:"expenseCount"`
}

// Summarize computes total income, total expenses and the resulting
// balance (income minus expenses) over the given transactions.
func Summarize(transactions []Transaction) Summary {
	income, incomeCount := SumTransactions(transactions, TransactionFilter{Type: Income})
	expenses, expenseCount := SumTransactions(transactions, TransactionFilter{Type: Expense})
	return Summary{
		Income:       income,
		Expenses:     expenses,
		Balance:      income.Sub(expenses),
		IncomeCount:  incomeCount,
		ExpenseCount: expenseCount,
	}
}

// SpentByCategory sums expense amounts per category. Transactions with
// an empty category are grouped under the empty string.
func SpentByCategory(transactions []Transaction) map[string]Money {
	spent := make(map[string]Money)
	for _, t := range transactions {
		if t.Type != Expense {
			continue
		}
		spent[t.Category] = spent[t.Category].Add(t.Amount)
	}
	return spent
}
