package market

import (
	"fmt"
	"strings"
	"time"
)

type TimeRange string

const (
	Range10m TimeRange = "10m"
	Range30m TimeRange = "30m"
	Range1h  TimeRange = "1h"
	Range1D  TimeRange = "1D"
	Range1M  TimeRange = "1M"
)

// TimeRanges lists the ranges in selector order.
var TimeRanges = []TimeRange{
	Range10m,
	Range30m,
	Range1h,
	Range1D,
	Range1M,
}

// DefaultRange is shown when no range has been chosen.
const DefaultRange = Range1M

func (r TimeRange) String() string { return string(r) }

func (r TimeRange) Valid() bool {
	for _, tr := range TimeRanges {
		if r == tr {
			return true
		}
	}
	return false
}

// WindowStart returns the beginning of the look-back window ending at now.
//
// 1M steps back one calendar month keeping the time of day. When the day of
// month does not exist in the previous month it is clamped to that month's
// last day, so 2024-03-31 becomes 2024-02-29 rather than overflowing into
// March.
func (r TimeRange) WindowStart(now time.Time) (time.Time, error) {
	switch r {
	case Range10m:
		return now.Add(-10 * time.Minute), nil
	case Range30m:
		return now.Add(-30 * time.Minute), nil
	case Range1h:
		return now.Add(-time.Hour), nil
	case Range1D:
		return now.Add(-24 * time.Hour), nil
	case Range1M:
		return previousMonth(now), nil
	default:
		return time.Time{}, fmt.Errorf("%w: range %q", ErrInvalidSelection, string(r))
	}
}

func previousMonth(t time.Time) time.Time {
	y, m, d := t.Date()
	firstOfPrev := time.Date(y, m-1, 1, 0, 0, 0, 0, t.Location())
	py, pm, _ := firstOfPrev.Date()
	if last := daysIn(py, pm, t.Location()); d > last {
		d = last
	}
	return time.Date(py, pm, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(y int, m time.Month, loc *time.Location) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, loc).Day()
}

// ParseTimeRange accepts the exact selector labels ("10m", "1D", ...).
// "1m" and "1M" differ, so matching is case-sensitive.
func ParseTimeRange(s string) (TimeRange, error) {
	r := TimeRange(strings.TrimSpace(s))
	if !r.Valid() {
		return "", fmt.Errorf("%w: range %q", ErrInvalidSelection, s)
	}
	return r, nil
}
