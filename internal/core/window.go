package core

import "time"

const (
	WindowToday Window = "today"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
	WindowYear  Window = "year"
	WindowAll   Window = "all"
)

type (
	// Window names a time range used to filter transactions.
	Window string

	// Bounds holds the boundary dates of every window relative to one
	// observation of "now". Compute it once per request via Classify.
	Bounds struct {
		Today      Date
		WeekStart  Date
		MonthStart Date
		YearStart  Date
	}
)

// Classify derives the window boundary dates from now. The week starts on
// the most recent Sunday on or before now; month and year start on their
// first calendar day.
func Classify(now time.Time) Bounds {
	year, month, day := now.Date()
	loc := now.Location()
	today := time.Date(year, month, day, 0, 0, 0, 0, loc)

	return Bounds{
		Today:      DateOf(today),
		WeekStart:  DateOf(today.AddDate(0, 0, -int(today.Weekday()))),
		MonthStart: DateOf(time.Date(year, month, 1, 0, 0, 0, 0, loc)),
		YearStart:  DateOf(time.Date(year, 1, 1, 0, 0, 0, 0, loc)),
	}
}

// Contains reports whether d falls inside window w. Ranged windows span
// [start, today] inclusive, so a future-dated entry equal to today is in and
// anything later is out. Unknown window names behave as "all"; callers
// already rely on that fallback.
func (b Bounds) Contains(d Date, w Window) bool {
	switch w {
	case WindowToday:
		return d == b.Today
	case WindowWeek:
		return d >= b.WeekStart && d <= b.Today
	case WindowMonth:
		return d >= b.MonthStart && d <= b.Today
	case WindowYear:
		return d >= b.YearStart && d <= b.Today
	default:
		return true
	}
}

// Filter returns the transactions whose dates fall inside window w,
// preserving order.
func (b Bounds) Filter(txs []Transaction, w Window) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if b.Contains(tx.Date, w) {
			out = append(out, tx)
		}
	}
	return out
}
