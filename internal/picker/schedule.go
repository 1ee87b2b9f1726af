package picker

import (
	"github.com/username/datepicker/pkg/dateutil"
	"go.uber.org/zap"
)

// ScheduleLayout is the fixed layout raw schedule strings are parsed with
const ScheduleLayout = dateutil.ISOLayout

// ScheduleEntry is either an already parsed day or a raw string
type ScheduleEntry struct {
	date dateutil.Date
	raw  string
}

// ScheduleDate wraps a parsed day
func ScheduleDate(d dateutil.Date) ScheduleEntry {
	return ScheduleEntry{date: d}
}

// ScheduleString wraps a raw "YYYY-MM-DD" string; it is parsed on every lookup
func ScheduleString(s string) ScheduleEntry {
	return ScheduleEntry{raw: s}
}

// String returns the entry as given
func (e ScheduleEntry) String() string {
	if e.raw != "" || e.date.IsZero() {
		return e.raw
	}
	return e.date.String()
}

func (e ScheduleEntry) resolve() (dateutil.Date, error) {
	if !e.date.IsZero() {
		return e.date, nil
	}
	return dateutil.Parse(ScheduleLayout, e.raw)
}

// ScheduleSet is the caller's list of days carrying an indicator.
// The engine never mutates it.
type ScheduleSet []ScheduleEntry

// Strings builds a ScheduleSet from raw strings
func Strings(values ...string) ScheduleSet {
	set := make(ScheduleSet, 0, len(values))
	for _, v := range values {
		set = append(set, ScheduleString(v))
	}
	return set
}

// Dates builds a ScheduleSet from parsed days
func Dates(values ...dateutil.Date) ScheduleSet {
	set := make(ScheduleSet, 0, len(values))
	for _, v := range values {
		set = append(set, ScheduleDate(v))
	}
	return set
}

// HasSchedule reports whether any entry falls on date. Entries that fail to
// parse count as non-matching; logger may be nil.
func HasSchedule(date dateutil.Date, set ScheduleSet, logger *zap.Logger) bool {
	for _, entry := range set {
		d, err := entry.resolve()
		if err != nil {
			logUnparseable(logger, entry, err)
			continue
		}
		if d.SameDay(date) {
			return true
		}
	}
	return false
}

// CountSchedule returns how many entries fall on date
func CountSchedule(date dateutil.Date, set ScheduleSet, logger *zap.Logger) int {
	count := 0
	for _, entry := range set {
		d, err := entry.resolve()
		if err != nil {
			logUnparseable(logger, entry, err)
			continue
		}
		if d.SameDay(date) {
			count++
		}
	}
	return count
}

func logUnparseable(logger *zap.Logger, entry ScheduleEntry, err error) {
	if logger == nil {
		return
	}
	logger.Debug("Ignoring unparseable schedule entry",
		zap.String("entry", entry.raw),
		zap.Error(err))
}
