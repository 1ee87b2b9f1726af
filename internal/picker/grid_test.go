package picker

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/username/datepicker/pkg/dateutil"
)

func TestGenerateGrid_February2025(t *testing.T) {
	days := GenerateGrid(mustParse("2025-02-14"), time.Sunday)

	if len(days) != 35 {
		t.Fatalf("GenerateGrid(2025-02) returned %d days, want 35", len(days))
	}
	if got := days[0].String(); got != "2025-01-26" {
		t.Errorf("first cell = %v, want 2025-01-26", got)
	}
	if days[0].Weekday() != time.Sunday {
		t.Errorf("first cell weekday = %v, want Sunday", days[0].Weekday())
	}
	if got := days[len(days)-1].String(); got != "2025-03-01" {
		t.Errorf("last cell = %v, want 2025-03-01", got)
	}
	if days[len(days)-1].Weekday() != time.Saturday {
		t.Errorf("last cell weekday = %v, want Saturday", days[len(days)-1].Weekday())
	}
}

func TestGenerateGrid_WholeWeeksAndEveryDayOnce(t *testing.T) {
	for _, weekStart := range []time.Weekday{time.Sunday, time.Monday} {
		month := mustParse("2020-01-01")
		for i := 0; i < 96; i++ {
			days := GenerateGrid(month, weekStart)

			if len(days)%7 != 0 || len(days) < 28 || len(days) > 42 {
				t.Fatalf("GenerateGrid(%v, %v) length = %d, want multiple of 7 in [28, 42]",
					month.Format("YYYY-MM"), weekStart, len(days))
			}
			if days[0].Weekday() != weekStart {
				t.Errorf("GenerateGrid(%v, %v) first weekday = %v",
					month.Format("YYYY-MM"), weekStart, days[0].Weekday())
			}

			seen := make(map[int]int)
			for j, d := range days {
				if j > 0 && d.Compare(days[j-1].AddDays(1)) != 0 {
					t.Fatalf("GenerateGrid(%v) not contiguous at %d", month.Format("YYYY-MM"), j)
				}
				if d.SameMonth(month) {
					seen[d.Day()]++
				}
			}
			want := dateutil.DaysInMonth(month.Year(), month.Month())
			if len(seen) != want {
				t.Errorf("GenerateGrid(%v) covers %d days of the month, want %d",
					month.Format("YYYY-MM"), len(seen), want)
			}
			for day, n := range seen {
				if n != 1 {
					t.Errorf("GenerateGrid(%v) day %d appears %d times", month.Format("YYYY-MM"), day, n)
				}
			}

			month = month.AddMonths(1)
		}
	}
}

// Havana moves clocks forward at midnight; Apia skipped 2011-12-30 entirely.
func TestGenerateGrid_MidnightGapZones(t *testing.T) {
	for _, name := range []string{"America/Havana", "Pacific/Apia"} {
		loc, err := time.LoadLocation(name)
		if err != nil {
			t.Fatal(err)
		}

		for year := 2011; year <= 2026; year++ {
			for month := time.January; month <= time.December; month++ {
				view := dateutil.FromTime(time.Date(year, month, 15, 12, 0, 0, 0, loc))
				days := GenerateGrid(view, time.Sunday)

				if len(days)%7 != 0 || len(days) > 42 {
					t.Fatalf("%s %v: GenerateGrid length = %d", name, view.Format("YYYY-MM"), len(days))
				}
				seen := make(map[string]bool)
				for _, d := range days {
					if seen[d.String()] {
						t.Fatalf("%s %v: day %v appears twice", name, view.Format("YYYY-MM"), d)
					}
					seen[d.String()] = true
				}
				for day := 1; day <= dateutil.DaysInMonth(year, month); day++ {
					if !seen[dateutil.NewDate(year, month, day).String()] {
						t.Errorf("%s %v: day %d missing", name, view.Format("YYYY-MM"), day)
					}
				}
			}
		}
	}
}

func TestGenerateGrid_Pure(t *testing.T) {
	a := GenerateGrid(mustParse("2025-08-03"), time.Sunday)
	b := GenerateGrid(mustParse("2025-08-29"), time.Sunday)

	if len(a) != len(b) {
		t.Fatalf("grids for the same month differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !a[i].SameDay(b[i]) {
			t.Errorf("cell %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestWeekdayHeaders(t *testing.T) {
	tests := []struct {
		name      string
		weekStart time.Weekday
		first     string
		last      string
	}{
		{"Sunday first", time.Sunday, "Sun", "Sat"},
		{"Monday first", time.Monday, "Mon", "Sun"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := WeekdayHeaders(tt.weekStart)
			if len(headers) != 7 || headers[0] != tt.first || headers[6] != tt.last {
				t.Errorf("WeekdayHeaders(%v) = %v, want %s..%s", tt.weekStart, headers, tt.first, tt.last)
			}
		})
	}
}
