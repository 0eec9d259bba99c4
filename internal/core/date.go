package core

import (
	"strings"
	"time"
)

// ISODate is the calendar-date layout used on the wire.
const ISODate = "2006-01-02"

// Date is a calendar date without a meaningful time component. It parses
// from either a plain ISO date or a full RFC3339 timestamp and always
// formats back as the calendar date it was parsed in, so an expense dated
// 2025-10-15T10:00:00Z prefills an edit form as exactly 2025-10-15
// regardless of the viewer's time zone.
type Date struct {
	time.Time
}

// ParseDate accepts "YYYY-MM-DD" or an RFC3339 timestamp. The time and
// zone portions of a timestamp are kept only to preserve the calendar
// date; they are never converted to another location.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(ISODate, s); err == nil {
		return Date{Time: t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// NewDate creates a Date from year, month and day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

// ISO renders the date as "YYYY-MM-DD", the form-prefill representation.
func (d Date) ISO() string {
	return d.Time.Format(ISODate)
}

// Display renders the date with the given layout (for example
// "02/01/2006" for day/month/year order).
func (d Date) Display(layout string) string {
	return d.Time.Format(layout)
}

// MarshalJSON encodes the date as a plain ISO calendar date.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.ISO() + `"`), nil
}

// UnmarshalJSON accepts both ISO dates and RFC3339 timestamps.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
