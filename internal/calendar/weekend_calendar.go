package calendar

import (
	"time"

	"github.com/username/datepicker/pkg/dateutil"
)

const defaultWorkingHours = 8

// WeekendCalendar treats Monday-Friday as 8h workdays and Saturday/Sunday as weekends.
// It never fails and is the fallback for the file-based calendars.
type WeekendCalendar struct{}

// NewWeekendCalendar creates a WeekendCalendar
func NewWeekendCalendar() *WeekendCalendar {
	return &WeekendCalendar{}
}

// IsWorkday checks if the given date is a working day
func (wc *WeekendCalendar) IsWorkday(date time.Time) (bool, int, error) {
	day := wc.dayInfo(date)
	return day.IsWorkday, day.WorkingHours, nil
}

// GetDayInfo returns detailed info for a specific day
func (wc *WeekendCalendar) GetDayInfo(date time.Time) (*DayInfo, error) {
	day := wc.dayInfo(date)
	return &day, nil
}

// GetMonthInfo returns calendar info for the entire month
func (wc *WeekendCalendar) GetMonthInfo(year int, month time.Month) (*MonthInfo, error) {
	monthInfo := &MonthInfo{Year: year, Month: month}
	for day := 1; day <= dateutil.DaysInMonth(year, month); day++ {
		monthInfo.tally(wc.dayInfo(time.Date(year, month, day, 0, 0, 0, 0, time.UTC)))
	}
	return monthInfo, nil
}

func (wc *WeekendCalendar) dayInfo(date time.Time) DayInfo {
	if dateutil.IsWeekend(date) {
		return DayInfo{Date: dateutil.StartOfDay(date), Type: DayTypeWeekend}
	}
	return DayInfo{
		Date:         dateutil.StartOfDay(date),
		Type:         DayTypeWorkday,
		WorkingHours: defaultWorkingHours,
		IsWorkday:    true,
	}
}
