package picker

import (
	"testing"
	"time"

	"github.com/username/datepicker/pkg/dateutil"
	"go.uber.org/zap"
)

// fixedClock pins "now" to 2025-06-11 10:00 UTC
func fixedClock() time.Time {
	return time.Date(2025, 6, 11, 10, 0, 0, 0, time.UTC)
}

type recorder struct {
	calls []*dateutil.Date
}

func (r *recorder) onChange(d *dateutil.Date) {
	r.calls = append(r.calls, d)
}

func newTestEngine(opts Options) (*Engine, *recorder) {
	rec := &recorder{}
	if opts.Clock == nil {
		opts.Clock = fixedClock
	}
	opts.OnChange = rec.onChange
	opts.Logger = zap.NewNop()
	return NewEngine(opts), rec
}

func TestNewEngine_InitialState(t *testing.T) {
	e, _ := newTestEngine(Options{})

	if e.State() != StateClosed {
		t.Errorf("State() = %v, want closed", e.State())
	}
	if e.Selected() != nil {
		t.Errorf("Selected() = %v, want nil", e.Selected())
	}
	if got := e.ViewMonth().Format("YYYY-MM"); got != "2025-06" {
		t.Errorf("ViewMonth() = %v, want 2025-06", got)
	}
	if e.Format() != DefaultFormat {
		t.Errorf("Format() = %q, want %q", e.Format(), DefaultFormat)
	}

	e2, _ := newTestEngine(Options{Initial: datePtr("2024-12-25")})
	if got := e2.ViewMonth().Format("YYYY-MM"); got != "2024-12" {
		t.Errorf("ViewMonth() with initial = %v, want 2024-12", got)
	}
	if got := e2.DisplayValue(); got != "25/12/2024" {
		t.Errorf("DisplayValue() = %q, want 25/12/2024", got)
	}
}

func TestEngine_OpenResetsViewMonth(t *testing.T) {
	e, _ := newTestEngine(Options{Initial: datePtr("2025-01-15")})
	e.NavigateMonth(Next)
	e.NavigateMonth(Next)

	e.Open()
	if !e.IsOpen() {
		t.Fatal("Open() did not open")
	}
	if got := e.ViewMonth().Format("YYYY-MM"); got != "2025-01" {
		t.Errorf("ViewMonth() after Open = %v, want 2025-01", got)
	}

	e2, _ := newTestEngine(Options{})
	e2.SetYear(2030)
	e2.Open()
	if got := e2.ViewMonth().Format("YYYY-MM"); got != "2025-06" {
		t.Errorf("ViewMonth() after Open without selection = %v, want 2025-06", got)
	}
}

func TestEngine_CloseIsIdempotent(t *testing.T) {
	e, rec := newTestEngine(Options{Initial: datePtr("2025-06-01")})

	e.Close()
	e.Close()
	if e.State() != StateClosed {
		t.Errorf("State() = %v, want closed", e.State())
	}
	if got := e.Selected().String(); got != "2025-06-01" {
		t.Errorf("Close() changed selection to %v", got)
	}
	if len(rec.calls) != 0 {
		t.Errorf("Close() emitted %d notifications", len(rec.calls))
	}
}

func TestEngine_SelectDay(t *testing.T) {
	e, rec := newTestEngine(Options{})
	e.Open()

	day := mustParse("2025-06-20")
	if !e.SelectDay(day) {
		t.Fatal("SelectDay() returned false for enabled day")
	}
	if e.State() != StateClosed {
		t.Errorf("State() after SelectDay = %v, want closed", e.State())
	}
	if got := e.Selected().String(); got != "2025-06-20" {
		t.Errorf("Selected() = %v, want 2025-06-20", got)
	}
	if len(rec.calls) != 1 || rec.calls[0].String() != "2025-06-20" {
		t.Fatalf("OnChange calls = %v, want one with 2025-06-20", rec.calls)
	}

	// Not deduplicated
	e.Open()
	e.SelectDay(day)
	if len(rec.calls) != 2 {
		t.Errorf("OnChange calls = %d, want 2", len(rec.calls))
	}
	if got := e.Selected().String(); got != "2025-06-20" {
		t.Errorf("Selected() = %v, want 2025-06-20", got)
	}
}

func TestEngine_SelectDisabledDayIsIgnored(t *testing.T) {
	e, rec := newTestEngine(Options{
		Initial: datePtr("2025-01-15"),
		MinDate: datePtr("2025-01-10"),
		MaxDate: datePtr("2025-01-20"),
	})
	e.Open()

	if e.SelectDay(mustParse("2025-01-21")) {
		t.Error("SelectDay() returned true for disabled day")
	}
	if e.State() != StateOpen {
		t.Errorf("State() = %v, want open", e.State())
	}
	if got := e.Selected().String(); got != "2025-01-15" {
		t.Errorf("Selected() = %v, want unchanged 2025-01-15", got)
	}
	if len(rec.calls) != 0 {
		t.Errorf("OnChange called %d times, want 0", len(rec.calls))
	}
}

func TestEngine_NavigateMonth(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		dir     Direction
		want    string
	}{
		{"December to January", "2025-12-15", Next, "2026-01"},
		{"January to December", "2025-01-15", Prev, "2024-12"},
		{"31st forward", "2025-01-31", Next, "2025-02"},
		{"31st back", "2025-03-31", Prev, "2025-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, rec := newTestEngine(Options{Initial: datePtr(tt.initial)})
			e.Open()
			e.NavigateMonth(tt.dir)

			if got := e.ViewMonth().Format("YYYY-MM"); got != tt.want {
				t.Errorf("NavigateMonth(%v) from %v = %v, want %v", tt.dir, tt.initial, got, tt.want)
			}
			if !e.IsOpen() {
				t.Error("NavigateMonth() closed the picker")
			}
			if got := e.Selected().String(); got != tt.initial {
				t.Errorf("NavigateMonth() changed selection to %v", got)
			}
			if len(rec.calls) != 0 {
				t.Error("NavigateMonth() emitted a notification")
			}
		})
	}
}

func TestEngine_SetMonthRoundTrip(t *testing.T) {
	for _, year := range []int{2023, 2024, 2025} {
		e, _ := newTestEngine(Options{Initial: datePtr("2025-01-31")})
		e.SetYear(year)
		for index := 0; index < 12; index++ {
			e.SetMonthIndex(index)
			if got := e.MonthIndex(); got != index {
				t.Errorf("SetMonthIndex(%d) in %d: MonthIndex() = %d", index, year, got)
			}
			if e.ViewMonth().Year() != year {
				t.Errorf("SetMonthIndex(%d) changed year to %d", index, e.ViewMonth().Year())
			}
		}
		if got := e.Selected().String(); got != "2025-01-31" {
			t.Errorf("SetMonth/SetYear changed selection to %v", got)
		}
	}
}

func TestEngine_SetMonthIgnoresInvalidIndex(t *testing.T) {
	e, _ := newTestEngine(Options{Initial: datePtr("2025-04-10")})
	e.SetMonthIndex(12)
	e.SetMonthIndex(-1)
	if got := e.ViewMonth().Format("YYYY-MM"); got != "2025-04" {
		t.Errorf("ViewMonth() = %v, want 2025-04", got)
	}
}

func TestEngine_GoToToday(t *testing.T) {
	e, rec := newTestEngine(Options{Initial: datePtr("2023-02-02")})
	e.Open()

	if !e.GoToToday() {
		t.Fatal("GoToToday() returned false")
	}
	if got := e.Selected().String(); got != "2025-06-11" {
		t.Errorf("Selected() = %v, want 2025-06-11", got)
	}
	if got := e.ViewMonth().Format("YYYY-MM"); got != "2025-06" {
		t.Errorf("ViewMonth() = %v, want 2025-06", got)
	}
	if e.IsOpen() {
		t.Error("GoToToday() should close the picker")
	}
	if len(rec.calls) != 1 {
		t.Errorf("OnChange calls = %d, want 1", len(rec.calls))
	}

	blocked, blockedRec := newTestEngine(Options{MaxDate: datePtr("2025-06-01")})
	blocked.Open()
	if blocked.GoToToday() {
		t.Error("GoToToday() should be ignored when today is disabled")
	}
	if blocked.Selected() != nil || len(blockedRec.calls) != 0 || !blocked.IsOpen() {
		t.Error("ignored GoToToday() changed state")
	}
}

func TestEngine_ClearAndReset(t *testing.T) {
	e, rec := newTestEngine(Options{Initial: datePtr("2024-02-29")})

	e.Clear()
	if e.Selected() != nil {
		t.Errorf("Selected() after Clear = %v, want nil", e.Selected())
	}
	if len(rec.calls) != 1 || rec.calls[0] != nil {
		t.Errorf("Clear() should emit exactly one nil notification, got %v", rec.calls)
	}
	if e.DisplayValue() != "" {
		t.Errorf("DisplayValue() = %q, want empty", e.DisplayValue())
	}

	e.SelectDay(mustParse("2024-03-01"))
	e.SetYear(2001)
	e.Reset()
	if e.Selected() != nil {
		t.Errorf("Selected() after Reset = %v, want nil", e.Selected())
	}
	if got := e.ViewMonth().Format("YYYY-MM"); got != "2025-06" {
		t.Errorf("ViewMonth() after Reset = %v, want 2025-06", got)
	}
}

func TestEngine_DisabledPickerDoesNotOpen(t *testing.T) {
	e, _ := newTestEngine(Options{Disabled: true})
	e.Open()
	e.Toggle()
	if e.IsOpen() {
		t.Error("disabled picker opened")
	}
}

func TestEngine_Toggle(t *testing.T) {
	e, _ := newTestEngine(Options{})
	e.Toggle()
	if !e.IsOpen() {
		t.Fatal("Toggle() from closed should open")
	}
	e.Toggle()
	if e.IsOpen() {
		t.Error("Toggle() from open should close")
	}
}

func TestEngine_Cells(t *testing.T) {
	e, _ := newTestEngine(Options{
		Initial:  datePtr("2025-06-20"),
		MinDate:  datePtr("2025-06-05"),
		Schedule: Strings("2025-06-11", "2025-06-11", "2025-06-30", "bad"),
	})

	cells := e.Cells()
	if len(cells)%7 != 0 {
		t.Fatalf("len(Cells()) = %d, want multiple of 7", len(cells))
	}

	selected := 0
	byDate := make(map[string]DayCell)
	for _, c := range cells {
		byDate[c.Date.String()] = c
		if c.IsSelected {
			selected++
		}
	}

	if selected != 1 {
		t.Errorf("selected cells = %d, want 1", selected)
	}
	if c := byDate["2025-06-11"]; !c.IsToday || !c.HasSchedule || c.ScheduleCount != 2 {
		t.Errorf("2025-06-11 cell = %+v, want today with 2 schedules", c)
	}
	if c := byDate["2025-06-04"]; !c.IsDisabled || !c.IsCurrentMonth {
		t.Errorf("2025-06-04 cell = %+v, want disabled current-month", c)
	}
	if c := byDate["2025-06-05"]; c.IsDisabled {
		t.Errorf("2025-06-05 cell should be enabled")
	}
	if c := byDate["2025-06-01"]; c.IsCurrentMonth != true {
		t.Errorf("2025-06-01 should be in the current month")
	}
	if c := byDate["2025-07-05"]; c.IsCurrentMonth {
		t.Errorf("2025-07-05 should be padding")
	}
	if c := byDate["2025-06-20"]; !c.IsSelected {
		t.Errorf("2025-06-20 should be selected")
	}
}

func TestEngine_CellsNoSelection(t *testing.T) {
	e, _ := newTestEngine(Options{})
	for _, c := range e.Cells() {
		if c.IsSelected {
			t.Fatalf("cell %v selected with no selection", c.Date)
		}
	}
}

func TestEngine_TodayInMidnightGapZone(t *testing.T) {
	havana, err := time.LoadLocation("America/Havana")
	if err != nil {
		t.Fatal(err)
	}
	// 2025-03-09 00:00 does not exist in Havana; 01:30 is the first hour of the day
	clock := func() time.Time { return time.Date(2025, 3, 9, 1, 30, 0, 0, havana) }
	e, _ := newTestEngine(Options{Clock: clock})

	if got := e.ViewMonth().String(); got != "2025-03-09" {
		t.Errorf("ViewMonth() = %v, want 2025-03-09", got)
	}

	cells := e.Cells()
	if len(cells) != 42 {
		t.Fatalf("len(Cells()) = %d, want 42", len(cells))
	}
	today := 0
	for _, c := range cells {
		if c.IsToday {
			today++
			if c.Date.String() != "2025-03-09" {
				t.Errorf("today cell = %v, want 2025-03-09", c.Date)
			}
		}
	}
	if today != 1 {
		t.Errorf("today cells = %d, want 1", today)
	}
}

func TestEngine_Options(t *testing.T) {
	e, _ := newTestEngine(Options{})

	months := e.MonthOptions()
	if len(months) != 12 || months[0].Label != "January" || months[11].Value != 11 {
		t.Errorf("MonthOptions() = %v", months)
	}

	years := e.YearOptions(DefaultYearSpan)
	if len(years) != 101 {
		t.Fatalf("len(YearOptions(50)) = %d, want 101", len(years))
	}
	if years[0].Value != 1975 || years[100].Value != 2075 || years[50].Label != "2025" {
		t.Errorf("YearOptions(50) range = %d..%d", years[0].Value, years[100].Value)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"", ModeCustom, false},
		{"custom", ModeCustom, false},
		{"delegate", ModeDelegate, false},
		{"mui", ModeCustom, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
