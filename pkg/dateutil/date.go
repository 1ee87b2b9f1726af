package dateutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is a civil calendar day with no time of day and no zone, stored as
// midnight UTC. Locations only matter when turning an instant into a Date.
// Date is immutable; the zero Date is "no date" and reports IsZero() == true.
type Date struct {
	t time.Time
}

// NewDate returns the day y-m-d. Out-of-range values normalize like time.Date.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime returns the calendar day t falls on in t's own location
func FromTime(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Parse reads a day written in layout
func Parse(layout, s string) (Date, error) {
	t, err := time.Parse(layout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return FromTime(t), nil
}

func (d Date) IsZero() bool { return d.t.IsZero() }
func (d Date) Time() time.Time { return d.t } // midnight UTC
func (d Date) Year() int { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }

// AddDays moves n days forward (or back for negative n)
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// AddMonths moves n months, clamping the day to the target month's length
// so 2025-01-31 + 1 month is 2025-02-28, never March.
func (d Date) AddMonths(n int) Date {
	total := int(d.Month()) - 1 + n
	year := d.Year() + floorDiv(total, 12)
	month := time.Month(floorMod(total, 12) + 1)
	return clamped(year, month, d.Day())
}

// SetMonth replaces the month, keeping year and (clamped) day
func (d Date) SetMonth(month time.Month) Date {
	return clamped(d.Year(), month, d.Day())
}

// SetYear replaces the year, keeping month and (clamped) day
func (d Date) SetYear(year int) Date {
	return clamped(year, d.Month(), d.Day())
}

func (d Date) SameDay(o Date) bool {
	return d.t.Equal(o.t)
}

// SameMonth reports whether both days fall in the same year and month
func (d Date) SameMonth(o Date) bool {
	return d.Year() == o.Year() && d.Month() == o.Month()
}

// Compare returns -1, 0 or +1 ordering the two days
func (d Date) Compare(o Date) int {
	switch {
	case d.t.Before(o.t):
		return -1
	case d.t.After(o.t):
		return 1
	}
	return 0
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool { return d.Compare(o) > 0 }

func (d Date) StartOfMonth() Date {
	return NewDate(d.Year(), d.Month(), 1)
}

func (d Date) EndOfMonth() Date {
	return NewDate(d.Year(), d.Month(), DaysInMonth(d.Year(), d.Month()))
}

func (d Date) StartOfWeek(weekStart time.Weekday) Date {
	return Date{t: StartOfWeek(d.t, weekStart)}
}

func (d Date) EndOfWeek(weekStart time.Weekday) Date {
	return Date{t: StartOfWeek(d.t, weekStart).AddDate(0, 0, 6)}
}

// String returns the ISO form, or "" for the zero Date
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(ISOLayout)
}

// Format renders d with a display pattern such as "DD/MM/YYYY" or "MMMM D, YYYY".
// Supported tokens: YYYY YY MMMM MMM MM M DD D dddd ddd dd d. Text inside [brackets]
// is copied literally. Anything else passes through unchanged.
func (d Date) Format(pattern string) string {
	if d.IsZero() {
		return ""
	}
	var b strings.Builder
	for i := 0; i < len(pattern); {
		if pattern[i] == '[' {
			end := strings.IndexByte(pattern[i:], ']')
			if end > 0 {
				b.WriteString(pattern[i+1 : i+end])
				i += end + 1
				continue
			}
		}
		tok := nextToken(pattern[i:])
		if tok == "" {
			b.WriteByte(pattern[i])
			i++
			continue
		}
		b.WriteString(d.token(tok))
		i += len(tok)
	}
	return b.String()
}

var formatTokens = []string{"YYYY", "YY", "MMMM", "MMM", "MM", "M", "DD", "D", "dddd", "ddd", "dd", "d"}

func nextToken(s string) string {
	for _, tok := range formatTokens {
		if strings.HasPrefix(s, tok) {
			return tok
		}
	}
	return ""
}

func (d Date) token(tok string) string {
	switch tok {
	case "YYYY":
		return fmt.Sprintf("%04d", d.Year())
	case "YY":
		return fmt.Sprintf("%02d", d.Year()%100)
	case "MMMM":
		return d.Month().String()
	case "MMM":
		return d.Month().String()[:3]
	case "MM":
		return fmt.Sprintf("%02d", int(d.Month()))
	case "M":
		return strconv.Itoa(int(d.Month()))
	case "DD":
		return fmt.Sprintf("%02d", d.Day())
	case "D":
		return strconv.Itoa(d.Day())
	case "dddd":
		return d.Weekday().String()
	case "ddd":
		return d.Weekday().String()[:3]
	case "dd":
		return d.Weekday().String()[:2]
	case "d":
		return strconv.Itoa(int(d.Weekday()))
	}
	return tok
}

func clamped(year int, month time.Month, day int) Date {
	if n := DaysInMonth(year, month); day > n {
		day = n
	}
	return NewDate(year, month, day)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
