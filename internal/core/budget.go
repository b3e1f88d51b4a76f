package core

const (
	StatusUnconfigured BudgetStatus = "unconfigured"
	StatusSafe         BudgetStatus = "safe"
	StatusWarning      BudgetStatus = "warning"
	StatusDanger       BudgetStatus = "danger"
)

// Tier thresholds, in percent of the limit still remaining. These are the
// core business rule and are deliberately not configurable.
const (
	safeThresholdPercent   = 40
	dangerThresholdPercent = 10
)

type (
	// BudgetStatus is one of the four budget-health tiers.
	BudgetStatus string

	// BudgetReport relates spend in a window to the configured limit.
	BudgetReport struct {
		Limit            Money        `json:"limit"`
		Spent            Money        `json:"spent"`
		Remaining        Money        `json:"remaining"`
		RemainingPercent float64      `json:"remaining_percent"`
		Status           BudgetStatus `json:"status"`
	}
)

// EvaluateBudget derives the remaining budget and health tier from a limit
// and the spend inside a window. Remaining may go negative. A zero limit is
// the "unconfigured" sentinel and reports no percentage.
func EvaluateBudget(limit, spent Money) BudgetReport {
	report := BudgetReport{
		Limit:     limit,
		Spent:     spent,
		Remaining: limit.Sub(spent),
	}

	if limit.Cents == 0 {
		report.Status = StatusUnconfigured
		return report
	}

	report.RemainingPercent = float64(report.Remaining.Cents) / float64(limit.Cents) * 100

	switch {
	case report.RemainingPercent > safeThresholdPercent:
		report.Status = StatusSafe
	case report.RemainingPercent > dangerThresholdPercent:
		report.Status = StatusWarning
	default:
		report.Status = StatusDanger
	}
	return report
}
