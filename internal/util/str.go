package util

import (
	"fmt"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

// ParseDateBound parses a user-given date filter, either "YYYY-MM-DD HH:MM"
// or "YYYY-MM-DD", in the given location.
// A date-only value is expanded to the start of the day or, if endOfDay is
// set, to its last second.
func ParseDateBound(str string, loc *time.Location, endOfDay bool) (time.Time, error) {
	if t, err := time.ParseInLocation(dateTimeLayout, str, loc); err == nil {
		return t, nil
	}

	t, err := time.ParseInLocation(dateLayout, str, loc)
	if err != nil {
		return time.Time{}, ErrPublic(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD or YYYY-MM-DD HH:MM", str))
	}

	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Second)
	}

	return t, nil
}

// Datetime is the format to use anywhere we need to output a date+time to an user.
func Datetime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// Date is the format to use anywhere we need to output a date to an user.
func Date(t time.Time) string {
	return t.Format(dateLayout)
}
