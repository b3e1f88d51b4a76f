package core

// GoalProgress derives the savings progress percentage from the current
// balance and the goal's target amount, clamped to [0, 100]. A balance past
// the target reads 100% and a negative balance reads 0%; both are deliberate
// floor/ceiling policies, not errors. A zero target always reads 0%.
func GoalProgress(balance, target Money) float64 {
	if target.Cents <= 0 {
		return 0
	}
	percent := float64(balance.Cents) / float64(target.Cents) * 100
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}
