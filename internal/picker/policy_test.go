package picker

import (
	"testing"

	"github.com/username/datepicker/pkg/dateutil"
)

func mustParse(s string) dateutil.Date {
	d, err := dateutil.Parse(dateutil.ISOLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func datePtr(s string) *dateutil.Date {
	d := mustParse(s)
	return &d
}

func TestIsDisabled_Bounds(t *testing.T) {
	minDate := datePtr("2025-01-10")
	maxDate := datePtr("2025-01-20")

	tests := []struct {
		date string
		want bool
	}{
		{"2025-01-09", true},
		{"2025-01-10", false},
		{"2025-01-15", false},
		{"2025-01-20", false},
		{"2025-01-21", true},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			got := IsDisabled(mustParse(tt.date), minDate, maxDate)
			if got != tt.want {
				t.Errorf("IsDisabled(%v) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestIsDisabled_NoBounds(t *testing.T) {
	if IsDisabled(mustParse("1900-01-01"), nil, nil) {
		t.Error("IsDisabled() without bounds should be false")
	}
}

func TestIsDisabled_MonotonicInBounds(t *testing.T) {
	narrowMin, narrowMax := datePtr("2025-03-10"), datePtr("2025-03-20")
	wideMin, wideMax := datePtr("2025-03-05"), datePtr("2025-03-25")

	day := mustParse("2025-03-01")
	for i := 0; i < 31; i++ {
		narrow := IsDisabled(day, narrowMin, narrowMax)
		wide := IsDisabled(day, wideMin, wideMax)
		if wide && !narrow {
			t.Errorf("%v disabled by wider bounds but enabled by narrower ones", day)
		}
		day = day.AddDays(1)
	}
}

func TestPolicy_Disabled(t *testing.T) {
	today := mustParse("2025-06-11") // Wednesday

	tests := []struct {
		name   string
		policy Policy
		date   string
		want   bool
	}{
		{"empty policy", Policy{}, "2025-06-14", false},
		{"past disabled", Policy{DisablePast: true}, "2025-06-10", true},
		{"today not past", Policy{DisablePast: true}, "2025-06-11", false},
		{"future disabled", Policy{DisableFuture: true}, "2025-06-12", true},
		{"today not future", Policy{DisableFuture: true}, "2025-06-11", false},
		{"weekend predicate", Policy{ShouldDisable: DisableWeekends()}, "2025-06-14", true},
		{"weekday passes predicate", Policy{ShouldDisable: DisableWeekends()}, "2025-06-13", false},
		{"predicate ORs with range", Policy{MinDate: datePtr("2025-06-01"), ShouldDisable: DisableWeekends()}, "2025-05-30", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.policy.Disabled(mustParse(tt.date), today)
			if got != tt.want {
				t.Errorf("Disabled(%v) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestAnyOf(t *testing.T) {
	thirteenth := func(d dateutil.Date) bool { return d.Day() == 13 }
	pred := AnyOf(nil, thirteenth, DisableWeekends())

	if !pred(mustParse("2025-06-13")) {
		t.Error("AnyOf() should disable Friday the 13th")
	}
	if !pred(mustParse("2025-06-15")) {
		t.Error("AnyOf() should disable Sunday")
	}
	if pred(mustParse("2025-06-16")) {
		t.Error("AnyOf() should allow Monday the 16th")
	}
	if AnyOf()(mustParse("2025-06-15")) {
		t.Error("empty AnyOf() should never disable")
	}
}
