package calendar

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// CompositeCalendar asks the primary calendar first and falls back on error.
// Typical wiring: FileCalendar or YearFileCalendar over a WeekendCalendar.
type CompositeCalendar struct {
	primary  Calendar
	fallback Calendar
	logger   *zap.Logger
}

// NewCompositeCalendar creates a new CompositeCalendar
func NewCompositeCalendar(primary, fallback Calendar, logger *zap.Logger) *CompositeCalendar {
	return &CompositeCalendar{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// IsWorkday checks if the given date is a working day
func (cc *CompositeCalendar) IsWorkday(date time.Time) (bool, int, error) {
	isWorkday, hours, err := cc.primary.IsWorkday(date)
	if err == nil {
		return isWorkday, hours, nil
	}

	cc.logger.Debug("Primary calendar has no entry, using fallback",
		zap.Time("date", date),
		zap.Error(err))

	return cc.fallback.IsWorkday(date)
}

// GetMonthInfo returns calendar info for the entire month
func (cc *CompositeCalendar) GetMonthInfo(year int, month time.Month) (*MonthInfo, error) {
	monthInfo, err := cc.primary.GetMonthInfo(year, month)
	if err == nil {
		return monthInfo, nil
	}

	cc.logger.Debug("Primary calendar has no month, using fallback",
		zap.Int("year", year),
		zap.Int("month", int(month)),
		zap.Error(err))

	return cc.fallback.GetMonthInfo(year, month)
}

// GetDayInfo returns detailed info for a specific day
func (cc *CompositeCalendar) GetDayInfo(date time.Time) (*DayInfo, error) {
	dayInfo, err := cc.primary.GetDayInfo(date)
	if err == nil {
		return dayInfo, nil
	}

	cc.logger.Debug("Primary calendar has no entry, using fallback",
		zap.Time("date", date),
		zap.Error(err))

	return cc.fallback.GetDayInfo(date)
}

// LoadPrimary loads the primary calendar when it is backed by a file
func (cc *CompositeCalendar) LoadPrimary() error {
	if fc, ok := cc.primary.(*FileCalendar); ok {
		if err := fc.Load(); err != nil {
			return fmt.Errorf("failed to load primary calendar: %w", err)
		}
		cc.logger.Info("Primary calendar loaded successfully")
	}
	return nil
}
