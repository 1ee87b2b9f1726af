package schedule

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"
	"github.com/username/datepicker/internal/picker"
	"github.com/username/datepicker/pkg/dateutil"
	"go.uber.org/zap"
)

const defaultMaxOccurrences = 1000

// ICSLoader turns iCalendar files into schedule sets
type ICSLoader struct {
	logger         *zap.Logger
	location       *time.Location
	maxOccurrences int
}

// NewICSLoader creates a loader converting timed events into loc (time.Local when nil)
func NewICSLoader(loc *time.Location, logger *zap.Logger) *ICSLoader {
	if loc == nil {
		loc = time.Local
	}
	return &ICSLoader{
		logger:         logger,
		location:       loc,
		maxOccurrences: defaultMaxOccurrences,
	}
}

// LoadFile reads path and returns the event days within [rangeStart, rangeEnd]
func (l *ICSLoader) LoadFile(path string, rangeStart, rangeEnd dateutil.Date) (picker.ScheduleSet, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ics file: %w", err)
	}

	set, err := l.Parse(bytes.NewReader(body), rangeStart, rangeEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	l.logger.Info("ICS schedule loaded",
		zap.String("file", path),
		zap.Int("days", len(set)))

	return set, nil
}

// Parse reads one iCalendar payload. Recurring events are expanded with their
// RRULE and EXDATEs; events that cannot be read are logged and skipped.
func (l *ICSLoader) Parse(r io.Reader, rangeStart, rangeEnd dateutil.Date) (picker.ScheduleSet, error) {
	if rangeEnd.Before(rangeStart) {
		return nil, errors.New("range end is before range start")
	}

	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("invalid calendar: %w", err)
	}

	var days []dateutil.Date
	for _, ev := range cal.Events() {
		occ, err := l.eventDays(ev, rangeStart, rangeEnd)
		if err != nil {
			l.logger.Warn("Skipping calendar event",
				zap.String("uid", propValue(ev, ical.ComponentPropertyUniqueId)),
				zap.Error(err))
			continue
		}
		days = append(days, occ...)
	}

	sortDates(days)
	return picker.Dates(days...), nil
}

func (l *ICSLoader) eventDays(ev *ical.VEvent, rangeStart, rangeEnd dateutil.Date) ([]dateutil.Date, error) {
	start, allDay, err := eventStart(ev, l.location)
	if err != nil {
		return nil, err
	}

	rawRule := propValue(ev, ical.ComponentPropertyRrule)
	if rawRule == "" {
		d := l.toDay(start, allDay)
		if d.Before(rangeStart) || d.After(rangeEnd) {
			return nil, nil
		}
		return []dateutil.Date{d}, nil
	}

	rule, err := rrule.StrToRRule(rawRule)
	if err != nil {
		return nil, fmt.Errorf("bad RRULE %q: %w", rawRule, err)
	}
	rule.DTStart(start)

	var set rrule.Set
	set.RRule(rule)
	for _, ex := range exDates(ev, start.Location()) {
		set.ExDate(ex)
	}

	// Widen by a day on each side so zone shifts cannot drop edge occurrences
	from := rangeStart.AddDays(-1).Time().In(start.Location())
	to := dayEnd(rangeEnd.AddDays(1)).In(start.Location())
	occurrences := set.Between(from, to, true)

	if len(occurrences) > l.maxOccurrences {
		l.logger.Warn("Truncating recurring event",
			zap.String("uid", propValue(ev, ical.ComponentPropertyUniqueId)),
			zap.Int("occurrences", len(occurrences)),
			zap.Int("cap", l.maxOccurrences))
		occurrences = occurrences[:l.maxOccurrences]
	}

	days := make([]dateutil.Date, 0, len(occurrences))
	for _, occ := range occurrences {
		d := l.toDay(occ, allDay)
		if d.Before(rangeStart) || d.After(rangeEnd) {
			continue
		}
		days = append(days, d)
	}
	return days, nil
}

// toDay maps an occurrence to its display day. All-day events keep their
// calendar date; timed events are converted to the loader's location first.
func (l *ICSLoader) toDay(t time.Time, allDay bool) dateutil.Date {
	if allDay {
		return dateutil.FromTime(t)
	}
	return dateutil.FromTime(t.In(l.location))
}

func eventStart(ev *ical.VEvent, loc *time.Location) (time.Time, bool, error) {
	prop := ev.GetProperty(ical.ComponentPropertyDtStart)
	if prop == nil || prop.Value == "" {
		return time.Time{}, false, errors.New("missing DTSTART")
	}

	allDay := !strings.Contains(prop.Value, "T")
	if vs, ok := prop.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		allDay = true
	}

	if allDay {
		if t, err := ev.GetAllDayStartAt(); err == nil {
			return t, true, nil
		}
	} else if t, err := ev.GetStartAt(); err == nil {
		return t, false, nil
	}

	t, err := parseICSTime(prop.Value, loc)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("bad DTSTART %q: %w", prop.Value, err)
	}
	return t, allDay, nil
}

// exDates reads EXDATE values; floating values are taken in loc, the event's zone
func exDates(ev *ical.VEvent, loc *time.Location) []time.Time {
	var out []time.Time
	for _, p := range ev.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			if t, err := parseICSTime(part, loc); err == nil {
				out = append(out, t)
			}
		}
	}
	return out
}

// parseICSTime handles the basic DATE, floating DATE-TIME and UTC DATE-TIME forms
func parseICSTime(v string, loc *time.Location) (time.Time, error) {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return time.Time{}, errors.New("empty time value")
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, loc)
	}
	return time.ParseInLocation("20060102", v, loc)
}

func propValue(ev *ical.VEvent, prop ical.ComponentProperty) string {
	if p := ev.GetProperty(prop); p != nil {
		return p.Value
	}
	return ""
}
