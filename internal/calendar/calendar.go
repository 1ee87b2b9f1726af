package calendar

import (
	"time"

	"github.com/username/datepicker/internal/picker"
	"github.com/username/datepicker/pkg/dateutil"
	"go.uber.org/zap"
)

// DayType represents the type of day
type DayType int

const (
	DayTypeWorkday DayType = iota + 1
	DayTypeWeekend
	DayTypeHoliday
	DayTypeShortened
)

func (t DayType) String() string {
	switch t {
	case DayTypeWorkday:
		return "workday"
	case DayTypeWeekend:
		return "weekend"
	case DayTypeHoliday:
		return "holiday"
	case DayTypeShortened:
		return "shortened"
	}
	return "unknown"
}

// DayInfo represents information about a specific day
type DayInfo struct {
	Date         time.Time
	Type         DayType
	WorkingHours int
	IsWorkday    bool
	Note         string
}

// MonthInfo represents calendar information for a month
type MonthInfo struct {
	Year         int
	Month        time.Month
	WorkingHours int // Total working hours in the month
	WorkDays     int
	Weekends     int
	Holidays     int
	Days         []DayInfo
}

// Calendar interface for checking working days
type Calendar interface {
	// IsWorkday checks if the given date is a working day
	IsWorkday(date time.Time) (bool, int, error)

	// GetMonthInfo returns calendar info for the entire month
	GetMonthInfo(year int, month time.Month) (*MonthInfo, error)

	// GetDayInfo returns detailed info for a specific day
	GetDayInfo(date time.Time) (*DayInfo, error)
}

// NonWorkdays turns cal into a picker predicate that disables weekends and holidays.
// Lookup errors leave the day enabled.
func NonWorkdays(cal Calendar, logger *zap.Logger) picker.DisablePredicate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(date dateutil.Date) bool {
		isWorkday, _, err := cal.IsWorkday(date.Time())
		if err != nil {
			logger.Debug("Calendar lookup failed, leaving day enabled",
				zap.String("date", date.String()),
				zap.Error(err))
			return false
		}
		return !isWorkday
	}
}

// tally adds a day to the month statistics
func (m *MonthInfo) tally(day DayInfo) {
	m.Days = append(m.Days, day)
	switch {
	case day.IsWorkday:
		m.WorkDays++
		m.WorkingHours += day.WorkingHours
	case day.Type == DayTypeWeekend:
		m.Weekends++
	case day.Type == DayTypeHoliday:
		m.Holidays++
	}
}

// findDay returns the entry for date within the month
func (m *MonthInfo) findDay(date time.Time) (*DayInfo, bool) {
	for i := range m.Days {
		if dateutil.IsSameDay(m.Days[i].Date, date) {
			day := m.Days[i]
			return &day, true
		}
	}
	return nil, false
}

func monthKey(year int, month time.Month) string {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}
