package core

import (
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day in zero-padded YYYY-MM-DD form with no time
// component. Because the form is zero-padded, ordinary string ordering on
// valid Dates agrees with calendar ordering, and the window membership rules
// below rely on exactly that comparison. Persisted data depends on this law,
// so it must not be "fixed" into time.Time comparisons.
type Date string

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

// ParseDate validates s as a calendar date and returns it as a Date.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return "", ErrMissingDate
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", ErrInvalidDate
	}
	return Date(s), nil
}

func (d Date) Validate() error {
	_, err := ParseDate(string(d))
	return err
}

// Time returns the date at midnight UTC. It panics on malformed dates, which
// cannot be constructed through ParseDate/DateOf.
func (d Date) Time() time.Time {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		panic("core: malformed date " + string(d))
	}
	return t
}

// ValidateClockTime checks an HH:MM wall-clock string.
func ValidateClockTime(s string) error {
	if _, err := time.Parse("15:04", s); err != nil {
		return ErrInvalidTime
	}
	return nil
}
