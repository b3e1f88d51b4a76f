package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"-1", 0, false},
		{"0", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestParseNonNegativeCents(t *testing.T) {
	// Zero is the "unconfigured" sentinel for limits and targets.
	got, err := ParseNonNegativeCents("0")
	if err != nil || got != 0 {
		t.Fatalf("expected 0, got %d (err=%v)", got, err)
	}
	if _, err := ParseNonNegativeCents("-5"); err == nil {
		t.Fatal("negative values are still rejected")
	}
	got, err = ParseNonNegativeCents("12,34")
	if err != nil || got != 1234 {
		t.Fatalf("expected 1234, got %d (err=%v)", got, err)
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := Money{Cents: 250}
	b := Money{Cents: 400}
	if a.Add(b).Cents != 650 {
		t.Fatal("add")
	}
	if a.Sub(b).Cents != -150 {
		t.Fatal("sub may go negative")
	}
	if (Money{Cents: 150}).Units() != 1.5 {
		t.Fatal("units")
	}
}
