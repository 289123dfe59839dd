// Package aggregation turns flat record sets into period-scoped summaries,
// trend series and counterparty ledgers.
//
// Every function here is pure: it reads the records it is given, never
// mutates them, keeps no state between calls and never returns an error.
// Missing numeric data counts as zero and missing text as the empty string.
package aggregation

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Record is the read-only view the engine needs of a dated entry.
type Record interface {
	RecordDate() time.Time
	// RecordMeasure is the amount of a financial record or 1/0 for a
	// completed/missed habit entry.
	RecordMeasure() decimal.Decimal
	RecordCategory() string
	RecordKind() string
}

// Mode selects the granularity of a window.
type Mode string

const (
	ModeMonth Mode = "month"
	ModeYear  Mode = "year"
)

// Supported calendar range. Dates outside it are never part of any window.
const (
	MinYear = 1000
	MaxYear = 9999
)

// MonthNames are the canonical month names accepted at the API boundary.
var MonthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var monthAbbreviations = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// ParseMonth resolves a canonical month name, ignoring case and surrounding spaces.
func ParseMonth(name string) (time.Month, bool) {
	name = strings.TrimSpace(name)
	for i, n := range MonthNames {
		if strings.EqualFold(n, name) {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

// Window is the year, and optionally the month, records are scoped to.
type Window struct {
	Mode  Mode
	Year  int
	Month time.Month // Only used in month mode
}

// MonthWindow returns a month-scoped window.
func MonthWindow(year int, month time.Month) Window {
	return Window{Mode: ModeMonth, Year: year, Month: month}
}

// YearWindow returns a year-scoped window.
func YearWindow(year int) Window {
	return Window{Mode: ModeYear, Year: year}
}

// Supported reports whether the window lies in the supported calendar range
// and, in month mode, names a real month.
func (w Window) Supported() bool {
	if w.Year < MinYear || w.Year > MaxYear {
		return false
	}
	switch w.Mode {
	case ModeYear:
		return true
	case ModeMonth:
		return w.Month >= time.January && w.Month <= time.December
	default:
		return false
	}
}

// Contains reports whether t falls inside the window. Only the calendar date
// of t is consulted, in t's own location.
func (w Window) Contains(t time.Time) bool {
	if !w.Supported() || t.IsZero() {
		return false
	}
	if t.Year() != w.Year {
		return false
	}
	return w.Mode == ModeYear || t.Month() == w.Month
}

// Months returns the number of calendar months the window spans.
func (w Window) Months() int {
	if !w.Supported() {
		return 0
	}
	if w.Mode == ModeYear {
		return 12
	}
	return 1
}

// Bounds returns the first and last calendar day of the window in UTC.
func (w Window) Bounds() (start, end time.Time) {
	if w.Mode == ModeMonth {
		start = time.Date(w.Year, w.Month, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, -1)
	}
	start = time.Date(w.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, time.Date(w.Year, time.December, 31, 0, 0, 0, 0, time.UTC)
}

// Label returns a human-readable label such as "March 2025" or "2025".
func (w Window) Label() string {
	if w.Mode == ModeMonth && w.Supported() {
		return fmt.Sprintf("%s %d", MonthNames[w.Month-1], w.Year)
	}
	return fmt.Sprintf("%d", w.Year)
}

// DaysInMonth returns the number of days of month in year.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FilterByWindow returns the records whose date falls within w, in input order.
func FilterByWindow[R Record](records []R, w Window) []R {
	out := make([]R, 0, len(records))
	for _, r := range records {
		if w.Contains(r.RecordDate()) {
			out = append(out, r)
		}
	}
	return out
}
