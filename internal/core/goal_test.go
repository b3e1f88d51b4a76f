package core

import "testing"

func TestGoalProgress(t *testing.T) {
	cases := []struct {
		name            string
		balance, target int64
		want            float64
	}{
		{"halfway", 50_00, 100_00, 50},
		{"over target clamps to 100", 150_00, 100_00, 100},
		{"negative balance clamps to 0", -20_00, 100_00, 0},
		{"zero target reads 0", 10_00, 0, 0},
		{"exactly on target", 100_00, 100_00, 100},
		{"empty balance", 0, 100_00, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := GoalProgress(Money{Cents: tc.balance}, Money{Cents: tc.target})
			if got != tc.want {
				t.Fatalf("progress = %v, want %v", got, tc.want)
			}
		})
	}
}
