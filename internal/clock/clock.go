// Package clock provides an injectable time source so that day-boundary
// logic (rollover, streaks, deadlines) can be tested deterministically.
package clock

import "time"

// Clock supplies the current wall-clock time and the current calendar
// date. All date-granularity comparisons in the application go through
// Today rather than raw timestamps.
type Clock interface {
	Now() time.Time
	Today() string
}

// System is the real clock, in local time.
type System struct{}

func (System) Now() time.Time { return time.Now() }

func (System) Today() string { return time.Now().Format("2006-01-02") }

// Fixed is a clock pinned to a single instant, for tests.
type Fixed struct {
	Time time.Time
}

func (f Fixed) Now() time.Time { return f.Time }

func (f Fixed) Today() string { return f.Time.Format("2006-01-02") }

// DaysBetween returns the number of calendar days from date a to date b,
// both in "2006-01-02" form. The result is positive when b is after a.
// Dates are compared as civil dates, so daylight-saving shifts cannot
// make two adjacent days look like the same day or a two-day gap.
func DaysBetween(a, b string) (int, error) {
	ta, err := time.ParseInLocation("2006-01-02", a, time.UTC)
	if err != nil {
		return 0, err
	}
	tb, err := time.ParseInLocation("2006-01-02", b, time.UTC)
	if err != nil {
		return 0, err
	}
	return int(tb.Sub(ta).Hours() / 24), nil
}
