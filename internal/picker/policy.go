package picker

import (
	"github.com/username/datepicker/pkg/dateutil"
)

// DisablePredicate reports whether a day must not be selectable
type DisablePredicate func(date dateutil.Date) bool

// IsDisabled reports whether date falls outside [minDate, maxDate].
// Bounds are inclusive and compared by calendar day; a nil bound is open.
func IsDisabled(date dateutil.Date, minDate, maxDate *dateutil.Date) bool {
	if minDate != nil && date.Before(*minDate) {
		return true
	}
	if maxDate != nil && date.After(*maxDate) {
		return true
	}
	return false
}

// Policy combines range bounds, past/future relative to today, and a custom predicate.
// Any one of them disables a day.
type Policy struct {
	MinDate       *dateutil.Date
	MaxDate       *dateutil.Date
	DisablePast   bool
	DisableFuture bool
	ShouldDisable DisablePredicate
}

// Disabled evaluates the policy for date; today anchors DisablePast/DisableFuture
func (p Policy) Disabled(date, today dateutil.Date) bool {
	if IsDisabled(date, p.MinDate, p.MaxDate) {
		return true
	}
	if p.DisablePast && date.Before(today) {
		return true
	}
	if p.DisableFuture && date.After(today) {
		return true
	}
	if p.ShouldDisable != nil && p.ShouldDisable(date) {
		return true
	}
	return false
}

// AnyOf disables a day when any of preds does. Nil entries are skipped.
func AnyOf(preds ...DisablePredicate) DisablePredicate {
	return func(date dateutil.Date) bool {
		for _, pred := range preds {
			if pred != nil && pred(date) {
				return true
			}
		}
		return false
	}
}

// DisableWeekends disables Saturdays and Sundays
func DisableWeekends() DisablePredicate {
	return func(date dateutil.Date) bool {
		return dateutil.IsWeekend(date.Time())
	}
}
