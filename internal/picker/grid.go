package picker

import (
	"time"

	"github.com/username/datepicker/pkg/dateutil"
)

// DayCell is one rendered grid position
type DayCell struct {
	Date           dateutil.Date
	IsCurrentMonth bool
	IsToday        bool
	IsSelected     bool
	IsDisabled     bool
	HasSchedule    bool
	ScheduleCount  int
}

// GenerateGrid returns every day from the start of the week containing the first
// of viewMonth through the end of the week containing its last day.
// The result length is always a multiple of 7 (28 to 42 days).
func GenerateGrid(viewMonth dateutil.Date, weekStart time.Weekday) []dateutil.Date {
	start := viewMonth.StartOfMonth().StartOfWeek(weekStart)
	end := viewMonth.EndOfMonth().EndOfWeek(weekStart)

	days := make([]dateutil.Date, 0, 42)
	for current := start; !current.After(end); current = current.AddDays(1) {
		days = append(days, current)
	}
	return days
}

// WeekdayHeaders returns the short weekday names in grid column order
func WeekdayHeaders(weekStart time.Weekday) []string {
	headers := make([]string, 7)
	for i := range headers {
		headers[i] = time.Weekday((int(weekStart) + i) % 7).String()[:3]
	}
	return headers
}
