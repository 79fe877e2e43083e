package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the canonical wire format for calendar dates
const DateLayout = "2006-01-02"

// Date is a calendar day (year-month-day) with no time or timezone
// component. Financial records are keyed by calendar day; carrying a
// time-of-day or zone invites off-by-one-day errors, so dates are
// normalized to this value object at the boundary.
// It is immutable and totally ordered.
type Date struct {
	year  int
	month time.Month
	day   int
}

// NewDate creates a Date from year, month and day.
// Out-of-range components are normalized the way time.Date normalizes
// them (e.g. January 32 becomes February 1).
func NewDate(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

// ParseDate parses a date in YYYY-MM-DD format
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}, nil
}

// MustParseDate parses a date in YYYY-MM-DD format, panics on error.
// Intended for literals in tests and migrations.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DateOf truncates a time.Time to its calendar day in the time's location
func DateOf(t time.Time) Date {
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

// Today returns the current calendar day in local time
func Today() Date {
	return DateOf(time.Now())
}

// Year returns the year component
func (d Date) Year() int {
	return d.year
}

// Month returns the month component
func (d Date) Month() time.Month {
	return d.month
}

// Day returns the day-of-month component
func (d Date) Day() int {
	return d.day
}

// IsZero returns true for the zero Date
func (d Date) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

// Time returns the date at midnight UTC
func (d Date) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// String returns the date in YYYY-MM-DD format
func (d Date) String() string {
	return d.Time().Format(DateLayout)
}

// Weekday returns the day of the week (Sunday = 0)
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// Compare returns -1, 0 or +1 ordering this date against other
func (d Date) Compare(other Date) int {
	switch {
	case d.year != other.year:
		return sign(d.year - other.year)
	case d.month != other.month:
		return sign(int(d.month) - int(other.month))
	default:
		return sign(d.day - other.day)
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// Before returns true if d is strictly before other
func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

// After returns true if d is strictly after other
func (d Date) After(other Date) bool {
	return d.Compare(other) > 0
}

// Equal returns true if both dates are the same calendar day
func (d Date) Equal(other Date) bool {
	return d.Compare(other) == 0
}

// AddDays returns the date n days after d (n may be negative)
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// AddMonths returns the date n calendar months after d.
// When the day-of-month does not exist in the target month the result
// rolls into the following month (January 31 plus one month is March 2
// or March 3). Recurring installments keep this overflow as-is.
func (d Date) AddMonths(n int) Date {
	return DateOf(d.Time().AddDate(0, n, 0))
}

// StartOfWeek returns the Sunday on or before d
func (d Date) StartOfWeek() Date {
	return d.AddDays(-int(d.Weekday()))
}

// EndOfWeek returns the Saturday on or after d
func (d Date) EndOfWeek() Date {
	return d.StartOfWeek().AddDays(6)
}

// StartOfMonth returns the first day of d's month
func (d Date) StartOfMonth() Date {
	return Date{year: d.year, month: d.month, day: 1}
}

// EndOfMonth returns the last day of d's month
func (d Date) EndOfMonth() Date {
	return d.StartOfMonth().AddMonths(1).AddDays(-1)
}

// MarshalJSON implements json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer for database storage
func (d Date) Value() (driver.Value, error) {
	return d.Time(), nil
}

// Scan implements sql.Scanner for database retrieval
func (d *Date) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}
}

// DateRange is an inclusive calendar-day range.
// A zero Start or End leaves that side unbounded.
type DateRange struct {
	Start Date
	End   Date
}

// NewDateRange creates an inclusive date range
func NewDateRange(start, end Date) DateRange {
	return DateRange{Start: start, End: end}
}

// SingleDay returns the range covering exactly one calendar day
func SingleDay(d Date) DateRange {
	return DateRange{Start: d, End: d}
}

// Contains returns true if the date falls within the range
func (r DateRange) Contains(d Date) bool {
	if !r.Start.IsZero() && d.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && d.After(r.End) {
		return false
	}
	return true
}
