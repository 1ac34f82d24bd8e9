package dataset

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrIncompleteRange means fewer than two dates were chosen. It is a prompt state, not a failure.
var ErrIncompleteRange = errors.New("select both a start and an end date")

// DateRange is an inclusive [Start, End] selection. A zero endpoint means "not chosen yet".
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Complete reports whether both endpoints have been supplied.
func (r DateRange) Complete() bool { return !r.Start.IsZero() && !r.End.IsZero() }

// Contains reports whether t lies within the inclusive range.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

func (r DateRange) String() string {
	f := func(t time.Time) string {
		if t.IsZero() {
			return "?"
		}
		return t.Format(DateLayout)
	}
	return f(r.Start) + " .. " + f(r.End)
}

// ParseDate parses a YYYY-MM-DD value; blank input yields the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// ParseDateRange parses both endpoints. Blank endpoints are allowed and leave the range incomplete.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := ParseDate(start)
	if err != nil {
		return DateRange{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return DateRange{}, err
	}
	return DateRange{Start: s, End: e}, nil
}

// Bounds returns the first and last date present in the daily table.
func (d *Dataset) Bounds() DateRange {
	if d == nil || len(d.Days) == 0 {
		return DateRange{}
	}
	r := DateRange{Start: d.Days[0].Date, End: d.Days[0].Date}
	for _, day := range d.Days[1:] {
		if day.Date.Before(r.Start) {
			r.Start = day.Date
		}
		if day.Date.After(r.End) {
			r.End = day.Date
		}
	}
	return r
}

// Clamp constrains a selection to the dataset bounds the way the date picker does.
// Reversed endpoints are swapped; missing endpoints stay missing.
func (d *Dataset) Clamp(r DateRange) DateRange {
	b := d.Bounds()
	if !b.Complete() {
		return r
	}
	clamp := func(t time.Time) time.Time {
		if t.IsZero() {
			return t
		}
		if t.Before(b.Start) {
			return b.Start
		}
		if t.After(b.End) {
			return b.End
		}
		return t
	}
	out := DateRange{Start: clamp(r.Start), End: clamp(r.End)}
	if out.Complete() && out.End.Before(out.Start) {
		out.Start, out.End = out.End, out.Start
	}
	return out
}

// FilterRange returns the rows whose date lies within r, inclusive, in original order.
// An incomplete range yields ErrIncompleteRange.
func FilterRange(days []DailyRecord, r DateRange) ([]DailyRecord, error) {
	if !r.Complete() {
		return nil, ErrIncompleteRange
	}
	out := make([]DailyRecord, 0, len(days))
	for _, d := range days {
		if r.Contains(d.Date) {
			out = append(out, d)
		}
	}
	return out, nil
}

// Filter applies FilterRange to the dataset's daily table.
func (d *Dataset) Filter(r DateRange) ([]DailyRecord, error) {
	if d == nil {
		return nil, ErrIncompleteRange
	}
	return FilterRange(d.Days, r)
}
