package core

import "sort"

type (
	// Totals are the summed income and expense amounts of a filtered set.
	Totals struct {
		Income  Money `json:"income"`
		Expense Money `json:"expense"`
	}

	// CategoryAmount is an expense amount aggregated by category name.
	CategoryAmount struct {
		Name   string `json:"name"`
		Amount Money  `json:"amount"`
	}
)

// TotalsByType sums transaction amounts by type inside window w.
func TotalsByType(txs []Transaction, b Bounds, w Window) Totals {
	var t Totals
	for _, tx := range txs {
		if !b.Contains(tx.Date, w) {
			continue
		}
		switch tx.Type {
		case Income:
			t.Income = t.Income.Add(tx.Amount)
		case Expense:
			t.Expense = t.Expense.Add(tx.Amount)
		}
	}
	return t
}

// SpendingByCategory sums expense amounts per category inside window w.
// Income is excluded, and categories with no spend in the window are absent
// rather than zero-valued; legend/chart consumers depend on that. Entries
// are ordered by first appearance in the ledger.
func SpendingByCategory(txs []Transaction, b Bounds, w Window) []CategoryAmount {
	sums := make(map[string]int64)
	var order []string
	for _, tx := range txs {
		if tx.Type != Expense || !b.Contains(tx.Date, w) {
			continue
		}
		if _, seen := sums[tx.Category]; !seen {
			order = append(order, tx.Category)
		}
		sums[tx.Category] += tx.Amount.Cents
	}

	out := make([]CategoryAmount, 0, len(order))
	for _, name := range order {
		out = append(out, CategoryAmount{Name: name, Amount: Money{Cents: sums[name]}})
	}
	return out
}

// SortedByDateDescending returns a copy of txs ordered newest first.
// Same-date entries keep their insertion order; the sort is explicitly
// stable so repeated renders of the same ledger agree.
func SortedByDateDescending(txs []Transaction) []Transaction {
	out := make([]Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}
