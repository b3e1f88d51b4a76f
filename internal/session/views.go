package session

import (
	"fokus/internal/core"
)

const recentLimit = 5

// DashboardView is the at-a-glance summary: balance, goal progress, the
// current month's budget state and the most recent movements.
type DashboardView struct {
	Balance     core.Money         `json:"balance"`
	Dream       core.Dream         `json:"dream"`
	GoalPercent float64            `json:"goal_percent"`
	Budget      core.BudgetReport  `json:"budget"`
	Message     string             `json:"message,omitempty"`
	Recent      []core.Transaction `json:"recent"`
}

// HistoryView lists transactions inside a window, newest first, with
// income/expense totals for the same window.
type HistoryView struct {
	Window       core.Window        `json:"window"`
	Transactions []core.Transaction `json:"transactions"`
	Totals       core.Totals        `json:"totals"`
}

// AnalysisView reports windowed spending against the monthly limit plus the
// per-category breakdown. The limit is always the monthly one regardless of
// window; the comparison is indicative, not pro-rated.
type AnalysisView struct {
	Window     core.Window           `json:"window"`
	Budget     core.BudgetReport     `json:"budget"`
	ByCategory []core.CategoryAmount `json:"by_category"`
}

func (s *Session) Dashboard() DashboardView {
	s.mu.Lock()
	defer s.mu.Unlock()

	bounds := core.Classify(s.clock())
	budget := s.monthBudget(bounds)

	var message string
	switch budget.Status {
	case core.StatusWarning:
		message = s.doc.Settings.Motivation.Warning
	case core.StatusDanger:
		message = s.doc.Settings.Motivation.Danger
	}

	recent := core.SortedByDateDescending(s.doc.Transactions)
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	return DashboardView{
		Balance:     s.doc.Balance,
		Dream:       s.doc.Dream,
		GoalPercent: core.GoalProgress(s.doc.Balance, s.doc.Dream.TargetAmount),
		Budget:      budget,
		Message:     message,
		Recent:      recent,
	}
}

func (s *Session) History(window core.Window) HistoryView {
	s.mu.Lock()
	defer s.mu.Unlock()

	bounds := core.Classify(s.clock())
	txs := core.SortedByDateDescending(bounds.Filter(s.doc.Transactions, window))

	return HistoryView{
		Window:       window,
		Transactions: txs,
		Totals:       core.TotalsByType(s.doc.Transactions, bounds, window),
	}
}

func (s *Session) Analysis(window core.Window) AnalysisView {
	s.mu.Lock()
	defer s.mu.Unlock()

	bounds := core.Classify(s.clock())
	totals := core.TotalsByType(s.doc.Transactions, bounds, window)

	return AnalysisView{
		Window:     window,
		Budget:     core.EvaluateBudget(s.doc.Settings.MonthlyLimit, totals.Expense),
		ByCategory: core.SpendingByCategory(s.doc.Transactions, bounds, window),
	}
}

// Settings returns a snapshot copy; the categories slice is detached so
// callers cannot mutate session state through it.
func (s *Session) Settings() core.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.doc.Settings
	out.Categories = append([]string(nil), s.doc.Settings.Categories...)
	return out
}

func (s *Session) Dream() core.Dream {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Dream
}

func (s *Session) Balance() core.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Balance
}
