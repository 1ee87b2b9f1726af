package schedule

import (
	"sort"
	"time"

	"github.com/username/datepicker/internal/picker"
	"github.com/username/datepicker/pkg/dateutil"
	"github.com/username/datepicker/pkg/random"
)

// FromStrings wraps raw "YYYY-MM-DD" strings. They stay unparsed until the
// engine looks them up, so bad entries only lose their own indicator.
func FromStrings(values []string) picker.ScheduleSet {
	return picker.Strings(values...)
}

// Demo picks n random days of month, mimicking a calendar's "add demo events" action
func Demo(month dateutil.Date, n int, weekdaysOnly bool) picker.ScheduleSet {
	dates := random.SelectRandomDaysOfMonth(month.Time(), n, weekdaysOnly)

	set := make(picker.ScheduleSet, len(dates))
	for i, d := range dates {
		set[i] = picker.ScheduleDate(dateutil.FromTime(d))
	}
	return set
}

// Merge concatenates sets
func Merge(sets ...picker.ScheduleSet) picker.ScheduleSet {
	var out picker.ScheduleSet
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}

func sortDates(dates []dateutil.Date) {
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})
}

func dayEnd(d dateutil.Date) time.Time {
	return dateutil.EndOfDay(d.Time())
}
