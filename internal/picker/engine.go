package picker

import (
	"fmt"
	"time"

	"github.com/username/datepicker/pkg/dateutil"
	"go.uber.org/zap"
)

// DefaultFormat is the display pattern used when Options.Format is empty
const DefaultFormat = "DD/MM/YYYY"

// DefaultYearSpan is how many years either side of the current one YearOptions lists
const DefaultYearSpan = 50

// State is the popover state of a picker
type State int

const (
	StateClosed State = iota
	StateOpen
)

func (s State) String() string {
	if s == StateOpen {
		return "open"
	}
	return "closed"
}

// Direction for NavigateMonth
type Direction int

const (
	Prev Direction = -1
	Next Direction = 1
)

// Mode selects between the built-in grid and an external date widget
type Mode int

const (
	// ModeCustom renders the engine's own day grid and month/year dropdowns
	ModeCustom Mode = iota
	// ModeDelegate hands value, bounds and indicators to an external widget
	ModeDelegate
)

func (m Mode) String() string {
	if m == ModeDelegate {
		return "delegate"
	}
	return "custom"
}

// ParseMode maps "custom" / "delegate" to a Mode
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "custom":
		return ModeCustom, nil
	case "delegate":
		return ModeDelegate, nil
	}
	return ModeCustom, fmt.Errorf("unknown picker mode %q", s)
}

// Option is one entry of a month or year dropdown
type Option struct {
	Value int
	Label string
}

// Options configures an Engine
type Options struct {
	Initial       *dateutil.Date
	MinDate       *dateutil.Date
	MaxDate       *dateutil.Date
	DisablePast   bool
	DisableFuture bool
	ShouldDisable DisablePredicate
	Schedule      ScheduleSet
	Format        string
	WeekStart     time.Weekday
	Mode          Mode

	// Disabled turns the whole picker inert: Open and Toggle do nothing
	Disabled bool

	// Clock supplies "now"; time.Now when nil
	Clock func() time.Time

	// OnChange is called once per successful selection, and with nil on Clear
	OnChange func(selected *dateutil.Date)

	Logger *zap.Logger
}

// Engine holds the view state of one picker. It is driven from a single
// event loop and is not safe for concurrent use.
type Engine struct {
	opts      Options
	policy    Policy
	logger    *zap.Logger
	state     State
	selected  *dateutil.Date
	viewMonth dateutil.Date
}

// NewEngine creates a closed picker whose view month holds the initial value, or today
func NewEngine(opts Options) *Engine {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Format == "" {
		opts.Format = DefaultFormat
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	e := &Engine{
		opts: opts,
		policy: Policy{
			MinDate:       opts.MinDate,
			MaxDate:       opts.MaxDate,
			DisablePast:   opts.DisablePast,
			DisableFuture: opts.DisableFuture,
			ShouldDisable: opts.ShouldDisable,
		},
		logger: opts.Logger,
		state:  StateClosed,
	}

	if opts.Initial != nil && !opts.Initial.IsZero() {
		initial := *opts.Initial
		e.selected = &initial
		e.viewMonth = initial
	} else {
		e.viewMonth = e.today()
	}

	return e
}

func (e *Engine) today() dateutil.Date {
	return dateutil.FromTime(e.opts.Clock())
}

// State returns whether the popover is open
func (e *Engine) State() State { return e.state }

// IsOpen is State() == StateOpen
func (e *Engine) IsOpen() bool { return e.state == StateOpen }

// Mode returns the configured rendering mode
func (e *Engine) Mode() Mode { return e.opts.Mode }

// Format returns the display pattern
func (e *Engine) Format() string { return e.opts.Format }

// WeekStart returns the first weekday of grid rows
func (e *Engine) WeekStart() time.Weekday { return e.opts.WeekStart }

// Schedule returns the schedule set the engine was created with
func (e *Engine) Schedule() ScheduleSet { return e.opts.Schedule }

// Policy returns the disabled-date policy in effect
func (e *Engine) Policy() Policy { return e.policy }

// Selected returns a copy of the selected day, or nil
func (e *Engine) Selected() *dateutil.Date {
	if e.selected == nil {
		return nil
	}
	d := *e.selected
	return &d
}

// ViewMonth returns a day inside the displayed month; only year and month are meaningful
func (e *Engine) ViewMonth() dateutil.Date { return e.viewMonth }

// DisplayValue is the selected day in the display format, or ""
func (e *Engine) DisplayValue() string {
	if e.selected == nil {
		return ""
	}
	return e.selected.Format(e.opts.Format)
}

// IsDisabled applies the engine's policy to date
func (e *Engine) IsDisabled(date dateutil.Date) bool {
	return e.policy.Disabled(date, e.today())
}

// HasSchedule reports whether date carries a schedule indicator
func (e *Engine) HasSchedule(date dateutil.Date) bool {
	return HasSchedule(date, e.opts.Schedule, e.logger)
}

// Open shows the popover and moves the view to the selected day's month, or today's
func (e *Engine) Open() {
	if e.opts.Disabled {
		return
	}
	e.state = StateOpen
	if e.selected != nil {
		e.viewMonth = *e.selected
	} else {
		e.viewMonth = e.today()
	}
}

// Close hides the popover; the selection is untouched
func (e *Engine) Close() {
	e.state = StateClosed
}

// Toggle opens a closed picker and closes an open one
func (e *Engine) Toggle() {
	if e.state == StateOpen {
		e.Close()
		return
	}
	e.Open()
}

// SelectDay selects date, closes the popover and notifies OnChange.
// A disabled date is ignored: nothing changes and nothing is emitted.
// It returns whether the selection took effect.
func (e *Engine) SelectDay(date dateutil.Date) bool {
	if date.IsZero() {
		return false
	}
	if e.IsDisabled(date) {
		e.logger.Debug("Ignoring selection of disabled day",
			zap.String("date", date.String()))
		return false
	}

	selected := date
	e.selected = &selected
	e.state = StateClosed

	e.logger.Debug("Day selected", zap.String("date", date.String()))
	e.emit()
	return true
}

// GoToToday selects today under the same rules as SelectDay and shows its month
func (e *Engine) GoToToday() bool {
	today := e.today()
	if !e.SelectDay(today) {
		return false
	}
	e.viewMonth = today
	return true
}

// Clear removes the selection and notifies OnChange with nil
func (e *Engine) Clear() {
	e.selected = nil
	e.emit()
}

// Reset drops the selection and returns the view to today's month without notifying
func (e *Engine) Reset() {
	e.selected = nil
	e.viewMonth = e.today()
}

// NavigateMonth moves the view one month back or forward
func (e *Engine) NavigateMonth(dir Direction) {
	if dir == Prev {
		e.viewMonth = e.viewMonth.AddMonths(-1)
		return
	}
	e.viewMonth = e.viewMonth.AddMonths(1)
}

// SetMonth replaces the view month's month, keeping its year
func (e *Engine) SetMonth(month time.Month) {
	if month < time.January || month > time.December {
		return
	}
	e.viewMonth = e.viewMonth.SetMonth(month)
}

// SetMonthIndex is SetMonth with a zero-based index as dropdowns use (0 = January)
func (e *Engine) SetMonthIndex(index int) {
	e.SetMonth(time.Month(index + 1))
}

// MonthIndex returns the zero-based month of the view
func (e *Engine) MonthIndex() int {
	return int(e.viewMonth.Month()) - 1
}

// SetYear replaces the view month's year, keeping its month
func (e *Engine) SetYear(year int) {
	e.viewMonth = e.viewMonth.SetYear(year)
}

// Cells materializes the grid for the current view month
func (e *Engine) Cells() []DayCell {
	today := e.today()
	days := GenerateGrid(e.viewMonth, e.opts.WeekStart)

	cells := make([]DayCell, len(days))
	for i, day := range days {
		count := CountSchedule(day, e.opts.Schedule, e.logger)
		cells[i] = DayCell{
			Date:           day,
			IsCurrentMonth: day.SameMonth(e.viewMonth),
			IsToday:        day.SameDay(today),
			IsSelected:     e.selected != nil && day.SameDay(*e.selected),
			IsDisabled:     e.policy.Disabled(day, today),
			HasSchedule:    count > 0,
			ScheduleCount:  count,
		}
	}
	return cells
}

// WeekdayHeaders returns the column headers matching Cells()
func (e *Engine) WeekdayHeaders() []string {
	return WeekdayHeaders(e.opts.WeekStart)
}

// MonthOptions lists the twelve months for a dropdown, values 0-11
func (e *Engine) MonthOptions() []Option {
	options := make([]Option, 12)
	for i := range options {
		options[i] = Option{Value: i, Label: time.Month(i + 1).String()}
	}
	return options
}

// YearOptions lists the current year ± span for a dropdown
func (e *Engine) YearOptions(span int) []Option {
	if span < 0 {
		span = DefaultYearSpan
	}
	current := e.today().Year()
	options := make([]Option, 0, 2*span+1)
	for year := current - span; year <= current+span; year++ {
		options = append(options, Option{Value: year, Label: fmt.Sprintf("%d", year)})
	}
	return options
}

func (e *Engine) emit() {
	if e.opts.OnChange == nil {
		return
	}
	e.opts.OnChange(e.Selected())
}
